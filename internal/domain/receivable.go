package domain

import "time"

// Receivable is one billing cycle of a rental: the initial term plus one per
// renewal. RenewalNumber 0 is the initial cycle. Receivables are created by
// the service layer alongside the rental and on every renewal, and are
// cascade-deleted with their rental.
type Receivable struct {
	ID            string        `json:"id" firestore:"id"`
	RentalID      string        `json:"rental_id" firestore:"rental_id"`
	AmountCents   int64         `json:"amount_cents" firestore:"amount_cents"`
	DueDate       time.Time     `json:"due_date" firestore:"due_date"`
	Status        PaymentStatus `json:"status" firestore:"status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty" firestore:"paid_at"`
	RenewalNumber int32         `json:"renewal_number" firestore:"renewal_number"`
	CreatedOn     time.Time     `json:"created_on" firestore:"created_on"`
}
