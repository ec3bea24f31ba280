package lifecycle

import (
	"time"

	"locagest-backend/internal/domain"
)

// Engine applies lifecycle transitions to rental contracts. Every method
// takes the current record by value and returns the transitioned copy; the
// caller is responsible for persisting it. The input record is never
// mutated.
//
// Finalization is evaluated only inside MarkPaid and MarkCollected. A record
// that already satisfies both axes through some other path (an import, a
// manual fix) is not swept into FINALIZED retroactively.
type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{clock: clock}
}

// MarkPaid records payment of the current billing cycle. Calling it on a
// record that is already paid is a no-op: the record comes back unchanged
// and the original payment date is kept. Finalizes the contract when the
// equipment has already been collected.
func (e *Engine) MarkPaid(r domain.Rental) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("mark paid", "contract is finalized")
	}
	if r.PaymentStatus == domain.PaymentStatusPaid {
		return r, nil
	}

	now := e.clock.Now()
	r.PaymentStatus = domain.PaymentStatusPaid
	r.PaymentDate = &now
	if r.CollectionStatus == domain.CollectionStatusCollected {
		r.ContractStatus = domain.ContractStatusFinalized
	}
	return r, nil
}

// ScheduleDelivery plans a delivery date. Only valid before the equipment
// has been delivered.
func (e *Engine) ScheduleDelivery(r domain.Rental, date time.Time) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("schedule delivery", "contract is finalized")
	}
	if r.DeliveryStatus == domain.DeliveryStatusDelivered {
		return r, domain.NewInvalidTransition("schedule delivery", "equipment already delivered")
	}

	r.DeliveryStatus = domain.DeliveryStatusScheduled
	r.ScheduledDeliveryDate = &date
	return r, nil
}

// MarkDelivered records that the equipment reached the client. Idempotent
// when already delivered. Does not affect the contract status.
func (e *Engine) MarkDelivered(r domain.Rental) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("mark delivered", "contract is finalized")
	}
	if r.DeliveryStatus == domain.DeliveryStatusDelivered {
		return r, nil
	}

	now := e.clock.Now()
	r.DeliveryStatus = domain.DeliveryStatusDelivered
	r.DeliveredAt = &now
	return r, nil
}

// MarkCollected records that the equipment came back. Collection before
// delivery is not a valid real-world sequence; the UI hides the action but
// the engine still defends the invariant. Finalizes the contract when the
// cycle is already paid.
func (e *Engine) MarkCollected(r domain.Rental) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("mark collected", "contract is finalized")
	}
	if r.DeliveryStatus != domain.DeliveryStatusDelivered {
		return r, domain.NewInvalidTransition("mark collected", "equipment has not been delivered")
	}
	if r.CollectionStatus == domain.CollectionStatusCollected {
		return r, nil
	}

	now := e.clock.Now()
	r.CollectionStatus = domain.CollectionStatusCollected
	r.CollectedAt = &now
	if r.PaymentStatus == domain.PaymentStatusPaid {
		r.ContractStatus = domain.ContractStatusFinalized
	}
	return r, nil
}

// MarkInvoiceIssued flags the fiscal invoice as issued. Only meaningful on
// contracts that require one.
func (e *Engine) MarkInvoiceIssued(r domain.Rental) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("mark invoice issued", "contract is finalized")
	}
	if !r.InvoiceRequired {
		return r, domain.NewInvalidTransition("mark invoice issued", "contract does not require an invoice")
	}

	r.InvoiceIssued = true
	return r, nil
}

// Renew extends the contract term to newEndDate, optionally changing the
// cycle amount. A renewal always opens a new unpaid billing cycle: payment
// status is reset to PENDING regardless of the prior cycle's state, the
// payment date is cleared, and the renewal counter is incremented. Delivery
// and collection state are untouched, the equipment stays in the field.
// The caller creates the matching receivable with the new RenewalCount.
func (e *Engine) Renew(r domain.Rental, newEndDate time.Time, newAmountCents *int64) (domain.Rental, error) {
	if !r.IsActive() {
		return r, domain.NewInvalidTransition("renew", "contract is finalized")
	}
	if newEndDate.Before(r.ExpectedEndDate) {
		return r, domain.NewInvalidTransition("renew", "new end date must not be earlier than the current end date")
	}
	if newAmountCents != nil && *newAmountCents <= 0 {
		return r, domain.NewValidationError("amount_cents", "renewal amount must be positive")
	}

	now := e.clock.Now()
	r.ExpectedEndDate = newEndDate
	if newAmountCents != nil {
		r.AmountCents = *newAmountCents
	}
	r.PaymentStatus = domain.PaymentStatusPending
	r.PaymentDate = nil
	r.RenewalCount++
	r.LastRenewedAt = &now
	return r, nil
}
