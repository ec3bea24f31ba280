package lifecycle

import (
	"math"
	"time"

	"locagest-backend/internal/domain"
)

// AlertThresholdDays is how many days before the expected end date a
// contract starts counting as near due.
const AlertThresholdDays = 3

type Urgency string

const (
	UrgencyNormal  Urgency = "NORMAL"
	UrgencyNearDue Urgency = "NEAR_DUE"
	UrgencyOverdue Urgency = "OVERDUE"
)

// Classify derives the urgency bucket of a rental as of now. Finalized
// contracts carry no urgency. The day difference is the floor of the exact
// duration, so a contract 12 hours past its end date already counts as
// overdue.
func Classify(r domain.Rental, now time.Time) Urgency {
	return ClassifyWithThreshold(r, now, AlertThresholdDays)
}

// ClassifyWithThreshold is Classify with a caller-chosen near-due window.
func ClassifyWithThreshold(r domain.Rental, now time.Time, thresholdDays int) Urgency {
	if r.ContractStatus == domain.ContractStatusFinalized {
		return UrgencyNormal
	}

	diffDays := int(math.Floor(r.ExpectedEndDate.Sub(now).Hours() / 24))
	switch {
	case diffDays < 0:
		return UrgencyOverdue
	case diffDays <= thresholdDays:
		return UrgencyNearDue
	default:
		return UrgencyNormal
	}
}
