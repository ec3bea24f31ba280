package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

type DeliveryStatus string

const (
	DeliveryStatusNotScheduled DeliveryStatus = "NOT_SCHEDULED"
	DeliveryStatusScheduled    DeliveryStatus = "SCHEDULED"
	DeliveryStatusDelivered    DeliveryStatus = "DELIVERED"
)

type CollectionStatus string

const (
	CollectionStatusNotCollected CollectionStatus = "NOT_COLLECTED"
	CollectionStatusCollected    CollectionStatus = "COLLECTED"
)

// ContractStatus is derived by the lifecycle engine and is never set
// directly by callers. A rental is FINALIZED exactly when it is both
// paid and collected.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusFinalized ContractStatus = "FINALIZED"
)

// Rental is one contract linking a client and one or more equipment items
// for a priced period. The three status axes (payment, delivery, collection)
// are independent; ContractStatus is owned by the lifecycle engine.
type Rental struct {
	ID           string   `json:"id" firestore:"id"`
	ClientID     string   `json:"client_id" firestore:"client_id"`
	EquipmentIDs []string `json:"equipment_ids" firestore:"equipment_ids"`

	AmountCents     int64     `json:"amount_cents" firestore:"amount_cents"`
	Period          Period    `json:"period" firestore:"period"`
	StartDate       time.Time `json:"start_date" firestore:"start_date"`
	ExpectedEndDate time.Time `json:"expected_end_date" firestore:"expected_end_date"`

	PaymentStatus  PaymentStatus `json:"payment_status" firestore:"payment_status"`
	PaymentDate    *time.Time    `json:"payment_date,omitempty" firestore:"payment_date"`
	PaymentDueDate *time.Time    `json:"payment_due_date,omitempty" firestore:"payment_due_date"`

	DeliveryStatus        DeliveryStatus `json:"delivery_status" firestore:"delivery_status"`
	ScheduledDeliveryDate *time.Time     `json:"scheduled_delivery_date,omitempty" firestore:"scheduled_delivery_date"`
	DeliveredAt           *time.Time     `json:"delivered_at,omitempty" firestore:"delivered_at"`

	CollectionStatus CollectionStatus `json:"collection_status" firestore:"collection_status"`
	CollectedAt      *time.Time       `json:"collected_at,omitempty" firestore:"collected_at"`

	InvoiceRequired bool `json:"invoice_required" firestore:"invoice_required"`
	InvoiceIssued   bool `json:"invoice_issued" firestore:"invoice_issued"`

	ContractStatus ContractStatus `json:"contract_status" firestore:"contract_status"`

	RenewalCount  int32      `json:"renewal_count" firestore:"renewal_count"`
	LastRenewedAt *time.Time `json:"last_renewed_at,omitempty" firestore:"last_renewed_at"`

	// Version is the optimistic-concurrency token checked by repository
	// updates. It is bumped on every successful save.
	Version int64 `json:"version" firestore:"version"`

	CreatedOn time.Time `json:"created_on" firestore:"created_on"`
	UpdatedOn time.Time `json:"updated_on" firestore:"updated_on"`
}

// IsActive reports whether lifecycle transitions may still be applied.
func (r *Rental) IsActive() bool {
	return r.ContractStatus == ContractStatusActive
}

// References reports whether the rental includes the given equipment item.
func (r *Rental) References(equipmentID string) bool {
	for _, id := range r.EquipmentIDs {
		if id == equipmentID {
			return true
		}
	}
	return false
}
