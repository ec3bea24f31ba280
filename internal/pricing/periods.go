package pricing

import (
	"time"

	"locagest-backend/internal/domain"
)

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	}
	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}
	return 31
}

// CycleEnd returns the end date of one billing cycle starting at start.
// Daily/weekly/biweekly cycles are fixed spans; a monthly cycle lands on the
// same day of the next month, clamped to that month's length (Jan 31 ->
// Feb 28/29). Used to suggest an expected end date for new rentals and a
// default target date for renewals.
func CycleEnd(start time.Time, period domain.Period) time.Time {
	switch period {
	case domain.PeriodDaily:
		return start.AddDate(0, 0, 1)
	case domain.PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case domain.PeriodBiweekly:
		return start.AddDate(0, 0, 14)
	case domain.PeriodMonthly:
		year, month, day := start.Date()
		month++
		if month > time.December {
			month = time.January
			year++
		}
		if max := DaysInMonth(year, month); day > max {
			day = max
		}
		return time.Date(year, month, day, start.Hour(), start.Minute(), start.Second(), 0, start.Location())
	default:
		return start
	}
}

// CycleDays is the nominal length of a billing cycle in days, with the
// monthly cycle measured from the given start date.
func CycleDays(start time.Time, period domain.Period) int {
	return int(CycleEnd(start, period).Sub(start).Hours() / 24)
}
