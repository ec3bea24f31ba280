package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type rentalFixture struct {
	rentals     *MockRentalRepository
	clients     *MockClientRepository
	equipment   *MockEquipmentRepository
	receivables *MockReceivableRepository
	notes       *MockNotificationRepository
	email       *MockEmailService
	svc         RentalService
}

func newRentalFixture() *rentalFixture {
	f := &rentalFixture{
		rentals:     new(MockRentalRepository),
		clients:     new(MockClientRepository),
		equipment:   new(MockEquipmentRepository),
		receivables: new(MockReceivableRepository),
		notes:       new(MockNotificationRepository),
		email:       new(MockEmailService),
	}
	clock := lifecycle.FixedClock(testNow)
	f.svc = NewRentalService(f.rentals, f.clients, f.equipment, f.receivables, f.notes, f.email, lifecycle.NewEngine(clock), clock)
	return f
}

func cents(v int64) *int64 { return &v }

func testClient() *domain.Client {
	return &domain.Client{ID: "client-1", Name: "Maria Souza", Phone: "+55 11 99999-0000", RequiresInvoice: true}
}

func testEquipment(id string) *domain.Equipment {
	return &domain.Equipment{ID: id, Name: "Concrete Mixer", MonthlyPriceCents: cents(110000)}
}

func activeRental(id string) *domain.Rental {
	return &domain.Rental{
		ID:               id,
		ClientID:         "client-1",
		EquipmentIDs:     []string{"eq-1"},
		AmountCents:      110000,
		Period:           domain.PeriodMonthly,
		StartDate:        testNow.AddDate(0, 0, -20),
		ExpectedEndDate:  testNow.AddDate(0, 0, 10),
		PaymentStatus:    domain.PaymentStatusPending,
		DeliveryStatus:   domain.DeliveryStatusDelivered,
		CollectionStatus: domain.CollectionStatusNotCollected,
		ContractStatus:   domain.ContractStatusActive,
		Version:          1,
	}
}

func TestRentalService_CreateRental(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates rental and opening receivable", func(t *testing.T) {
		f := newRentalFixture()
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)
		f.rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{}, nil)
		f.equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)
		f.rentals.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receivable")).Return(nil)

		rt, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:        "client-1",
			EquipmentIDs:    []string{"eq-1"},
			AmountCents:     110000,
			Period:          domain.PeriodMonthly,
			StartDate:       start,
			ExpectedEndDate: end,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, rt.ID)
		assert.Equal(t, domain.ContractStatusActive, rt.ContractStatus)
		assert.Equal(t, domain.PaymentStatusPending, rt.PaymentStatus)
		assert.Equal(t, domain.DeliveryStatusNotScheduled, rt.DeliveryStatus)
		assert.True(t, rt.InvoiceRequired, "inherits the client default")

		rcv := f.receivables.Calls[0].Arguments.Get(1).(*domain.Receivable)
		assert.Equal(t, rt.ID, rcv.RentalID)
		assert.Equal(t, int32(0), rcv.RenewalNumber)
		assert.Equal(t, int64(110000), rcv.AmountCents)
		assert.Equal(t, end, rcv.DueDate)
	})

	t.Run("defaults end date to one billing cycle", func(t *testing.T) {
		f := newRentalFixture()
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)
		f.rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{}, nil)
		f.equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)
		f.rentals.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receivable")).Return(nil)

		rt, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:     "client-1",
			EquipmentIDs: []string{"eq-1"},
			AmountCents:  110000,
			Period:       domain.PeriodMonthly,
			StartDate:    start,
		})

		require.NoError(t, err)
		assert.Equal(t, end, rt.ExpectedEndDate)
	})

	t.Run("rejects equipment already on an active rental", func(t *testing.T) {
		f := newRentalFixture()
		busy := activeRental("rt-busy")
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)
		f.rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{*busy}, nil)
		f.equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)

		_, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:        "client-1",
			EquipmentIDs:    []string{"eq-1"},
			AmountCents:     110000,
			Period:          domain.PeriodMonthly,
			StartDate:       start,
			ExpectedEndDate: end,
		})

		assert.True(t, domain.IsConflict(err))
		f.rentals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects equipment without a configured price", func(t *testing.T) {
		f := newRentalFixture()
		unpriced := &domain.Equipment{ID: "eq-2", Name: "Bare Frame"}
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)
		f.rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{}, nil)
		f.equipment.On("GetByID", mock.Anything, "eq-2").Return(unpriced, nil)

		_, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:        "client-1",
			EquipmentIDs:    []string{"eq-2"},
			AmountCents:     110000,
			Period:          domain.PeriodMonthly,
			StartDate:       start,
			ExpectedEndDate: end,
		})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		f := newRentalFixture()
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)
		f.rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{}, nil)
		f.equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)

		_, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:        "client-1",
			EquipmentIDs:    []string{"eq-1"},
			AmountCents:     110000,
			Period:          domain.PeriodMonthly,
			StartDate:       start,
			ExpectedEndDate: start.AddDate(0, 0, -1),
		})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects unknown billing period", func(t *testing.T) {
		f := newRentalFixture()

		_, err := f.svc.CreateRental(context.Background(), CreateRentalInput{
			ClientID:     "client-1",
			EquipmentIDs: []string{"eq-1"},
			AmountCents:  110000,
			Period:       domain.Period("QUARTERLY"),
			StartDate:    start,
		})

		assert.True(t, domain.IsValidation(err))
	})
}

func TestRentalService_MarkPaid(t *testing.T) {
	t.Run("persists payment and settles the current receivable", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		cycle := domain.Receivable{ID: "rcv-1", RentalID: "rt-1", AmountCents: 110000, Status: domain.PaymentStatusPending, RenewalNumber: 0}

		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
		f.rentals.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("ListByRental", mock.Anything, "rt-1").Return([]domain.Receivable{cycle}, nil)
		f.receivables.On("Update", mock.Anything, mock.AnythingOfType("*domain.Receivable")).Return(nil)

		got, err := f.svc.MarkPaid(context.Background(), "rt-1")

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
		require.NotNil(t, got.PaymentDate)
		assert.Equal(t, testNow, *got.PaymentDate)

		settled := lastCallArg(f.receivables.Calls, "Update").(*domain.Receivable)
		assert.Equal(t, domain.PaymentStatusPaid, settled.Status)
		require.NotNil(t, settled.PaidAt)
		assert.Equal(t, testNow, *settled.PaidAt)
	})

	t.Run("finalization creates a notification", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		collectedAt := testNow.Add(-time.Hour)
		rt.CollectionStatus = domain.CollectionStatusCollected
		rt.CollectedAt = &collectedAt

		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
		f.rentals.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("ListByRental", mock.Anything, "rt-1").Return([]domain.Receivable{}, nil)
		f.notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)

		got, err := f.svc.MarkPaid(context.Background(), "rt-1")

		require.NoError(t, err)
		assert.Equal(t, domain.ContractStatusFinalized, got.ContractStatus)

		note := f.notes.Calls[0].Arguments.Get(1).(*domain.Notification)
		assert.Equal(t, domain.NotificationKindRentalFinalized, note.Kind)
		assert.Equal(t, "rt-1", note.RentalID)
		f.email.AssertNotCalled(t, "SendFinalizationNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("finalization emails a client with an address on file", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		collectedAt := testNow.Add(-time.Hour)
		rt.CollectionStatus = domain.CollectionStatusCollected
		rt.CollectedAt = &collectedAt
		client := testClient()
		client.Email = "maria@example.com"

		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
		f.rentals.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("ListByRental", mock.Anything, "rt-1").Return([]domain.Receivable{}, nil)
		f.notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.clients.On("GetByID", mock.Anything, "client-1").Return(client, nil)
		f.email.On("SendFinalizationNotice", mock.Anything, "maria@example.com", "Maria Souza", int64(110000)).Return(nil)

		_, err := f.svc.MarkPaid(context.Background(), "rt-1")

		require.NoError(t, err)
		f.email.AssertCalled(t, "SendFinalizationNotice", mock.Anything, "maria@example.com", "Maria Souza", int64(110000))
	})

	t.Run("no-op on an already paid cycle skips persistence", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		paidAt := testNow.Add(-48 * time.Hour)
		rt.PaymentStatus = domain.PaymentStatusPaid
		rt.PaymentDate = &paidAt
		paid := domain.Receivable{ID: "rcv-1", RentalID: "rt-1", Status: domain.PaymentStatusPaid, RenewalNumber: 0, PaidAt: &paidAt}

		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
		f.receivables.On("ListByRental", mock.Anything, "rt-1").Return([]domain.Receivable{paid}, nil)

		got, err := f.svc.MarkPaid(context.Background(), "rt-1")

		require.NoError(t, err)
		assert.Equal(t, paidAt, *got.PaymentDate)
		f.rentals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.receivables.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("transition failure surfaces the engine error", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		rt.ContractStatus = domain.ContractStatusFinalized
		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)

		_, err := f.svc.MarkPaid(context.Background(), "rt-1")

		assert.True(t, domain.IsInvalidTransition(err))
		f.rentals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRentalService_MarkCollected(t *testing.T) {
	f := newRentalFixture()
	rt := activeRental("rt-1")
	paidAt := testNow.Add(-24 * time.Hour)
	rt.PaymentStatus = domain.PaymentStatusPaid
	rt.PaymentDate = &paidAt

	f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
	f.rentals.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
	f.notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)

	got, err := f.svc.MarkCollected(context.Background(), "rt-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusFinalized, got.ContractStatus)
	f.notes.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Notification"))
}

func TestRentalService_Renew(t *testing.T) {
	t.Run("opens the next billing cycle", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		paidAt := testNow.Add(-24 * time.Hour)
		rt.PaymentStatus = domain.PaymentStatusPaid
		rt.PaymentDate = &paidAt
		newEnd := rt.ExpectedEndDate.AddDate(0, 1, 0)

		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
		f.rentals.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.receivables.On("Create", mock.Anything, mock.AnythingOfType("*domain.Receivable")).Return(nil)
		f.notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		got, err := f.svc.Renew(context.Background(), "rt-1", newEnd, cents(120000))

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
		assert.Nil(t, got.PaymentDate)
		assert.Equal(t, int32(1), got.RenewalCount)
		assert.Equal(t, int64(120000), got.AmountCents)

		rcv := f.receivables.Calls[0].Arguments.Get(1).(*domain.Receivable)
		assert.Equal(t, int32(1), rcv.RenewalNumber)
		assert.Equal(t, int64(120000), rcv.AmountCents)
		assert.Equal(t, newEnd, rcv.DueDate)

		note := f.notes.Calls[0].Arguments.Get(1).(*domain.Notification)
		assert.Equal(t, domain.NotificationKindRentalRenewed, note.Kind)
	})

	t.Run("finalized contract cannot renew", func(t *testing.T) {
		f := newRentalFixture()
		rt := activeRental("rt-1")
		rt.ContractStatus = domain.ContractStatusFinalized
		f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)

		_, err := f.svc.Renew(context.Background(), "rt-1", testNow.AddDate(0, 1, 0), nil)

		assert.True(t, domain.IsInvalidTransition(err))
		f.receivables.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRentalService_DeleteRental(t *testing.T) {
	f := newRentalFixture()
	rt := activeRental("rt-1")
	f.rentals.On("GetByID", mock.Anything, "rt-1").Return(rt, nil)
	f.receivables.On("DeleteByRental", mock.Anything, "rt-1").Return(nil)
	f.rentals.On("Delete", mock.Anything, "rt-1").Return(nil)

	err := f.svc.DeleteRental(context.Background(), "rt-1")

	require.NoError(t, err)
	f.receivables.AssertCalled(t, "DeleteByRental", mock.Anything, "rt-1")
	f.rentals.AssertCalled(t, "Delete", mock.Anything, "rt-1")
}

func TestRentalService_ListRentals(t *testing.T) {
	f := newRentalFixture()
	nearDue := activeRental("rt-near")
	nearDue.ExpectedEndDate = testNow.AddDate(0, 0, 2)
	overdue := activeRental("rt-over")
	overdue.ExpectedEndDate = testNow.AddDate(0, 0, -2)

	f.rentals.On("List", mock.Anything).Return([]domain.Rental{*nearDue, *overdue}, nil)
	f.clients.On("GetByID", mock.Anything, "client-1").Return(testClient(), nil)

	views, err := f.svc.ListRentals(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, lifecycle.UrgencyNearDue, views[0].Urgency)
	assert.Equal(t, lifecycle.UrgencyOverdue, views[1].Urgency)
	assert.Equal(t, "Maria Souza", views[0].ClientName)
	f.clients.AssertNumberOfCalls(t, "GetByID", 1)
}

func lastCallArg(calls []mock.Call, method string) interface{} {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i].Arguments.Get(1)
		}
	}
	return nil
}
