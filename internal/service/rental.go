package service

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/pricing"
	"locagest-backend/internal/repository"
)

type rentalService struct {
	rentals     repository.RentalRepository
	clients     repository.ClientRepository
	equipment   repository.EquipmentRepository
	receivables repository.ReceivableRepository
	notes       repository.NotificationRepository
	email       EmailService
	engine      *lifecycle.Engine
	clock       lifecycle.Clock
}

// NewRentalService wires the rental orchestration. email may be nil, in
// which case finalization notices are skipped and only in-app notifications
// are raised.
func NewRentalService(
	rentals repository.RentalRepository,
	clients repository.ClientRepository,
	equipment repository.EquipmentRepository,
	receivables repository.ReceivableRepository,
	notes repository.NotificationRepository,
	email EmailService,
	engine *lifecycle.Engine,
	clock lifecycle.Clock,
) RentalService {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	return &rentalService{
		rentals:     rentals,
		clients:     clients,
		equipment:   equipment,
		receivables: receivables,
		notes:       notes,
		email:       email,
		engine:      engine,
		clock:       clock,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	if in.ClientID == "" {
		return nil, domain.NewValidationError("client_id", "client id is required")
	}
	if len(in.EquipmentIDs) == 0 {
		return nil, domain.NewValidationError("equipment_ids", "at least one equipment id is required")
	}
	if in.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "amount must be positive")
	}
	if !in.Period.Valid() {
		return nil, domain.NewValidationError("period", fmt.Sprintf("unknown billing period %q", in.Period))
	}
	if in.StartDate.IsZero() {
		return nil, domain.NewValidationError("start_date", "start date is required")
	}

	client, err := s.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	rented, err := s.rentedSet(ctx)
	if err != nil {
		return nil, err
	}
	for _, eqID := range in.EquipmentIDs {
		eq, err := s.equipment.GetByID(ctx, eqID)
		if err != nil {
			return nil, err
		}
		if !eq.HasAnyPrice() {
			return nil, domain.NewValidationError("equipment_ids", fmt.Sprintf("equipment %s has no rental price configured", eq.Name))
		}
		if _, busy := rented[eqID]; busy {
			return nil, domain.NewConflictError("equipment", fmt.Sprintf("equipment %s is attached to an active rental", eq.Name))
		}
	}

	end := in.ExpectedEndDate
	if end.IsZero() {
		end = pricing.CycleEnd(in.StartDate, in.Period)
	}
	if end.Before(in.StartDate) {
		return nil, domain.NewValidationError("expected_end_date", "expected end date precedes the start date")
	}

	invoiceRequired := client.RequiresInvoice
	if in.InvoiceRequired != nil {
		invoiceRequired = *in.InvoiceRequired
	}

	now := s.clock.Now()
	rt := &domain.Rental{
		ID:               uuid.New().String(),
		ClientID:         in.ClientID,
		EquipmentIDs:     in.EquipmentIDs,
		AmountCents:      in.AmountCents,
		Period:           in.Period,
		StartDate:        in.StartDate,
		ExpectedEndDate:  end,
		PaymentStatus:    domain.PaymentStatusPending,
		PaymentDueDate:   in.PaymentDueDate,
		DeliveryStatus:   domain.DeliveryStatusNotScheduled,
		CollectionStatus: domain.CollectionStatusNotCollected,
		InvoiceRequired:  invoiceRequired,
		ContractStatus:   domain.ContractStatusActive,
		CreatedOn:        now,
		UpdatedOn:        now,
	}
	if err := s.rentals.Create(ctx, rt); err != nil {
		return nil, err
	}

	due := end
	if in.PaymentDueDate != nil {
		due = *in.PaymentDueDate
	}
	rcv := &domain.Receivable{
		ID:            uuid.New().String(),
		RentalID:      rt.ID,
		AmountCents:   rt.AmountCents,
		DueDate:       due,
		Status:        domain.PaymentStatusPending,
		RenewalNumber: 0,
		CreatedOn:     now,
	}
	if err := s.receivables.Create(ctx, rcv); err != nil {
		logger.Error("rental created but initial receivable failed", "rental_id", rt.ID, "error", err)
		return nil, err
	}

	logger.Info("rental created", "rental_id", rt.ID, "client_id", rt.ClientID, "equipment_count", len(rt.EquipmentIDs))
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*RentalView, error) {
	rt, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := RentalView{Rental: *rt, Urgency: lifecycle.Classify(*rt, s.clock.Now())}
	if client, err := s.clients.GetByID(ctx, rt.ClientID); err == nil {
		view.ClientName = client.Name
	}
	return &view, nil
}

func (s *rentalService) ListRentals(ctx context.Context) ([]RentalView, error) {
	records, err := s.rentals.List(ctx)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	now := s.clock.Now()
	views := make([]RentalView, 0, len(records))
	for _, rt := range records {
		name, ok := names[rt.ClientID]
		if !ok {
			if client, err := s.clients.GetByID(ctx, rt.ClientID); err == nil {
				name = client.Name
			}
			names[rt.ClientID] = name
		}
		views = append(views, RentalView{Rental: rt, ClientName: name, Urgency: lifecycle.Classify(rt, now)})
	}
	return views, nil
}

// transition loads a rental, applies fn, and persists the result only when
// the record actually changed. The repository enforces the version check.
func (s *rentalService) transition(ctx context.Context, id string, fn func(domain.Rental) (domain.Rental, error)) (*domain.Rental, error) {
	rt, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(*rt)
	if err != nil {
		return nil, err
	}
	if reflect.DeepEqual(next, *rt) {
		return rt, nil
	}
	if err := s.rentals.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *rentalService) MarkPaid(ctx context.Context, id string) (*domain.Rental, error) {
	rt, err := s.transition(ctx, id, s.engine.MarkPaid)
	if err != nil {
		return nil, err
	}
	if err := s.settleCurrentReceivable(ctx, rt); err != nil {
		logger.Warn("receivable settlement failed after payment", "rental_id", rt.ID, "error", err)
	}
	s.notifyIfFinalized(ctx, rt)
	return rt, nil
}

func (s *rentalService) ScheduleDelivery(ctx context.Context, id string, date time.Time) (*domain.Rental, error) {
	return s.transition(ctx, id, func(r domain.Rental) (domain.Rental, error) {
		return s.engine.ScheduleDelivery(r, date)
	})
}

func (s *rentalService) MarkDelivered(ctx context.Context, id string) (*domain.Rental, error) {
	return s.transition(ctx, id, s.engine.MarkDelivered)
}

func (s *rentalService) MarkCollected(ctx context.Context, id string) (*domain.Rental, error) {
	rt, err := s.transition(ctx, id, s.engine.MarkCollected)
	if err != nil {
		return nil, err
	}
	s.notifyIfFinalized(ctx, rt)
	return rt, nil
}

func (s *rentalService) MarkInvoiceIssued(ctx context.Context, id string) (*domain.Rental, error) {
	return s.transition(ctx, id, s.engine.MarkInvoiceIssued)
}

func (s *rentalService) Renew(ctx context.Context, id string, newEndDate time.Time, newAmountCents *int64) (*domain.Rental, error) {
	rt, err := s.transition(ctx, id, func(r domain.Rental) (domain.Rental, error) {
		return s.engine.Renew(r, newEndDate, newAmountCents)
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rcv := &domain.Receivable{
		ID:            uuid.New().String(),
		RentalID:      rt.ID,
		AmountCents:   rt.AmountCents,
		DueDate:       rt.ExpectedEndDate,
		Status:        domain.PaymentStatusPending,
		RenewalNumber: rt.RenewalCount,
		CreatedOn:     now,
	}
	if err := s.receivables.Create(ctx, rcv); err != nil {
		logger.Error("renewal receivable creation failed", "rental_id", rt.ID, "error", err)
		return nil, err
	}

	s.createNotification(ctx, domain.NotificationKindRentalRenewed, rt.ID,
		fmt.Sprintf("Rental renewed through %s (cycle %d)", rt.ExpectedEndDate.Format("2006-01-02"), rt.RenewalCount))
	logger.Info("rental renewed", "rental_id", rt.ID, "renewal_count", rt.RenewalCount, "new_end", rt.ExpectedEndDate)
	return rt, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, id string) error {
	if _, err := s.rentals.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.receivables.DeleteByRental(ctx, id); err != nil {
		return err
	}
	return s.rentals.Delete(ctx, id)
}

func (s *rentalService) ListReceivables(ctx context.Context, rentalID string) ([]domain.Receivable, error) {
	if _, err := s.rentals.GetByID(ctx, rentalID); err != nil {
		return nil, err
	}
	return s.receivables.ListByRental(ctx, rentalID)
}

// settleCurrentReceivable marks the receivable of the rental's current
// billing cycle as paid. Earlier cycles are left as they stand.
func (s *rentalService) settleCurrentReceivable(ctx context.Context, rt *domain.Rental) error {
	items, err := s.receivables.ListByRental(ctx, rt.ID)
	if err != nil {
		return err
	}
	for i := range items {
		rcv := &items[i]
		if rcv.RenewalNumber != rt.RenewalCount || rcv.Status == domain.PaymentStatusPaid {
			continue
		}
		rcv.Status = domain.PaymentStatusPaid
		rcv.PaidAt = rt.PaymentDate
		return s.receivables.Update(ctx, rcv)
	}
	return nil
}

func (s *rentalService) notifyIfFinalized(ctx context.Context, rt *domain.Rental) {
	if rt.ContractStatus != domain.ContractStatusFinalized {
		return
	}
	s.createNotification(ctx, domain.NotificationKindRentalFinalized, rt.ID,
		fmt.Sprintf("Rental finalized, %d equipment item(s) back in stock", len(rt.EquipmentIDs)))

	if s.email == nil {
		return
	}
	client, err := s.clients.GetByID(ctx, rt.ClientID)
	if err != nil || client.Email == "" {
		return
	}
	if err := s.email.SendFinalizationNotice(ctx, client.Email, client.Name, rt.AmountCents); err != nil {
		logger.Warn("finalization notice failed", "rental_id", rt.ID, "client_id", client.ID, "error", err)
	}
}

func (s *rentalService) createNotification(ctx context.Context, kind domain.NotificationKind, rentalID, message string) {
	title := "Rental finalized"
	if kind == domain.NotificationKindRentalRenewed {
		title = "Rental renewed"
	}
	n := &domain.Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Title:     title,
		RentalID:  rentalID,
		Message:   message,
		CreatedOn: s.clock.Now(),
	}
	if err := s.notes.Create(ctx, n); err != nil {
		logger.Warn("notification creation failed", "rental_id", rentalID, "kind", kind, "error", err)
	}
}

func (s *rentalService) rentedSet(ctx context.Context) (map[string]struct{}, error) {
	active, err := s.rentals.ListByStatus(ctx, domain.ContractStatusActive)
	if err != nil {
		return nil, err
	}
	return lifecycle.RentedEquipmentIDs(active), nil
}
