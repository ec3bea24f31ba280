package domain

import "time"

// Period is the billing cadence of a rental. The canonical ordering used
// when presenting price options is daily, weekly, biweekly, monthly.
type Period string

const (
	PeriodDaily    Period = "DAILY"
	PeriodWeekly   Period = "WEEKLY"
	PeriodBiweekly Period = "BIWEEKLY"
	PeriodMonthly  Period = "MONTHLY"
)

// Valid reports whether p is one of the supported billing periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodBiweekly, PeriodMonthly:
		return true
	}
	return false
}

// Equipment is one rentable inventory item. Prices are per billing period,
// in cents; a nil price means the period is not offered for this item. An
// item needs at least one configured price before it can be rented.
type Equipment struct {
	ID            string   `json:"id" firestore:"id"`
	Name          string   `json:"name" firestore:"name"`
	Category      string   `json:"category" firestore:"category"`
	SerialNumbers []string `json:"serial_numbers,omitempty" firestore:"serial_numbers"`

	PurchaseCostCents *int64 `json:"purchase_cost_cents,omitempty" firestore:"purchase_cost_cents"`

	DailyPriceCents    *int64 `json:"daily_price_cents,omitempty" firestore:"daily_price_cents"`
	WeeklyPriceCents   *int64 `json:"weekly_price_cents,omitempty" firestore:"weekly_price_cents"`
	BiweeklyPriceCents *int64 `json:"biweekly_price_cents,omitempty" firestore:"biweekly_price_cents"`
	MonthlyPriceCents  *int64 `json:"monthly_price_cents,omitempty" firestore:"monthly_price_cents"`

	Notes     string    `json:"notes" firestore:"notes"`
	CreatedOn time.Time `json:"created_on" firestore:"created_on"`
	UpdatedOn time.Time `json:"updated_on" firestore:"updated_on"`
}

// HasAnyPrice reports whether at least one period price is configured.
func (e *Equipment) HasAnyPrice() bool {
	return e.DailyPriceCents != nil || e.WeeklyPriceCents != nil ||
		e.BiweeklyPriceCents != nil || e.MonthlyPriceCents != nil
}
