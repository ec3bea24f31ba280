package domain

import "time"

type NotificationKind string

const (
	NotificationKindNearDue         NotificationKind = "NEAR_DUE"
	NotificationKindOverdue         NotificationKind = "OVERDUE"
	NotificationKindRentalFinalized NotificationKind = "RENTAL_FINALIZED"
	NotificationKindRentalRenewed   NotificationKind = "RENTAL_RENEWED"
)

type Notification struct {
	ID        string           `json:"id" firestore:"id"`
	Kind      NotificationKind `json:"kind" firestore:"kind"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	RentalID  string           `json:"rental_id,omitempty" firestore:"rental_id"`
	Read      bool             `json:"read" firestore:"read"`
	CreatedOn time.Time        `json:"created_on" firestore:"created_on"`
}
