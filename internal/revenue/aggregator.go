package revenue

import (
	"sort"
	"time"

	"locagest-backend/internal/domain"
)

// PaidRental pairs a paid rental with its client's display name. The name
// is pure presentation passthrough; all aggregation works on the rental.
type PaidRental struct {
	Rental     domain.Rental `json:"rental"`
	ClientName string        `json:"client_name"`
}

// MonthYear is one revenue bucket, keyed by the effective date of a paid
// rental.
type MonthYear struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// EffectiveDate is the date a paid rental counts towards: the payment date
// when one was recorded, otherwise the expected end date. The fallback keeps
// records with a missing payment timestamp visible instead of silently
// dropping them from the report.
func EffectiveDate(r domain.Rental) time.Time {
	if r.PaymentDate != nil {
		return *r.PaymentDate
	}
	return r.ExpectedEndDate
}

// TotalRevenueCents sums the cycle amounts of the given paid rentals.
// Empty input yields 0.
func TotalRevenueCents(records []domain.Rental) int64 {
	var total int64
	for i := range records {
		total += records[i].AmountCents
	}
	return total
}

// AvailableMonths returns the distinct (month, year) buckets present in the
// records' effective dates, sorted descending by year then month.
func AvailableMonths(records []domain.Rental) []MonthYear {
	seen := make(map[MonthYear]struct{})
	var months []MonthYear
	for i := range records {
		d := EffectiveDate(records[i])
		my := MonthYear{Month: d.Month(), Year: d.Year()}
		if _, ok := seen[my]; ok {
			continue
		}
		seen[my] = struct{}{}
		months = append(months, my)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months
}

// FilterByMonth keeps the records whose effective date falls in the given
// month and year. A nil month or year means no filter on that component.
func FilterByMonth(records []domain.Rental, month *time.Month, year *int) []domain.Rental {
	if month == nil && year == nil {
		return records
	}
	var out []domain.Rental
	for i := range records {
		d := EffectiveDate(records[i])
		if month != nil && d.Month() != *month {
			continue
		}
		if year != nil && d.Year() != *year {
			continue
		}
		out = append(out, records[i])
	}
	return out
}

// ProfitCents is total revenue minus the equipment's one-time purchase cost.
// The cost is sunk, not apportioned per month: profit is always computed
// from the unfiltered total, while a month filter narrows revenue only.
// A nil cost counts as zero.
func ProfitCents(totalRevenueCents int64, purchaseCostCents *int64) int64 {
	if purchaseCostCents == nil {
		return totalRevenueCents
	}
	return totalRevenueCents - *purchaseCostCents
}
