package pricing

import (
	"locagest-backend/internal/domain"
)

// CanonicalPeriods is the fixed presentation order for price options.
var CanonicalPeriods = []domain.Period{
	domain.PeriodDaily,
	domain.PeriodWeekly,
	domain.PeriodBiweekly,
	domain.PeriodMonthly,
}

// AvailablePeriods returns the periods for which the equipment has a
// configured price, in canonical order.
func AvailablePeriods(eq domain.Equipment) []domain.Period {
	var periods []domain.Period
	for _, p := range CanonicalPeriods {
		if _, ok := PriceFor(eq, p); ok {
			periods = append(periods, p)
		}
	}
	return periods
}

// PriceFor looks up the cents price for a period. The second return is
// false when the period is not configured for this item.
func PriceFor(eq domain.Equipment, period domain.Period) (int64, bool) {
	var price *int64
	switch period {
	case domain.PeriodDaily:
		price = eq.DailyPriceCents
	case domain.PeriodWeekly:
		price = eq.WeeklyPriceCents
	case domain.PeriodBiweekly:
		price = eq.BiweeklyPriceCents
	case domain.PeriodMonthly:
		price = eq.MonthlyPriceCents
	}
	if price == nil {
		return 0, false
	}
	return *price, true
}

// FirstAvailablePrice returns the first configured (period, price) pair in
// canonical order. Used as the default suggestion when an item is picked
// for a new rental. ok is false when no price is configured at all.
func FirstAvailablePrice(eq domain.Equipment) (domain.Period, int64, bool) {
	for _, p := range CanonicalPeriods {
		if cents, ok := PriceFor(eq, p); ok {
			return p, cents, true
		}
	}
	return "", 0, false
}
