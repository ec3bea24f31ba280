package service

import (
	"context"
	"time"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/revenue"
)

// CreateRentalInput carries everything needed to open a contract. A nil
// InvoiceRequired inherits the client's default; a zero ExpectedEndDate is
// defaulted to one billing cycle after the start date.
type CreateRentalInput struct {
	ClientID        string        `json:"client_id"`
	EquipmentIDs    []string      `json:"equipment_ids"`
	AmountCents     int64         `json:"amount_cents"`
	Period          domain.Period `json:"period"`
	StartDate       time.Time     `json:"start_date"`
	ExpectedEndDate time.Time     `json:"expected_end_date"`
	PaymentDueDate  *time.Time    `json:"payment_due_date,omitempty"`
	InvoiceRequired *bool         `json:"invoice_required,omitempty"`
}

// RentalView decorates a rental with its derived urgency bucket and the
// client display name for listing screens.
type RentalView struct {
	Rental     domain.Rental     `json:"rental"`
	ClientName string            `json:"client_name"`
	Urgency    lifecycle.Urgency `json:"urgency"`
}

type RentalService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*RentalView, error)
	ListRentals(ctx context.Context) ([]RentalView, error)
	MarkPaid(ctx context.Context, id string) (*domain.Rental, error)
	ScheduleDelivery(ctx context.Context, id string, date time.Time) (*domain.Rental, error)
	MarkDelivered(ctx context.Context, id string) (*domain.Rental, error)
	MarkCollected(ctx context.Context, id string) (*domain.Rental, error)
	MarkInvoiceIssued(ctx context.Context, id string) (*domain.Rental, error)
	Renew(ctx context.Context, id string, newEndDate time.Time, newAmountCents *int64) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id string) error
	ListReceivables(ctx context.Context, rentalID string) ([]domain.Receivable, error)
}

// EquipmentOption is one entry of the picker feed for new rentals: a
// non-rented item with its default price suggestion.
type EquipmentOption struct {
	Equipment       domain.Equipment `json:"equipment"`
	SuggestedPeriod domain.Period    `json:"suggested_period"`
	SuggestedCents  int64            `json:"suggested_cents"`
}

type EquipmentService interface {
	CreateEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	// ListAvailable returns the rentable, currently unrented items.
	ListAvailable(ctx context.Context) ([]EquipmentOption, error)
}

type ClientService interface {
	CreateClient(ctx context.Context, c *domain.Client) error
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	UpdateClient(ctx context.Context, c *domain.Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// RevenueReport is the per-equipment earnings view. TotalRevenueCents and
// ProfitCents always cover every paid rental; FilteredRevenueCents and
// Records honor the month filter. Profit deliberately never subtracts the
// purchase cost from a filtered subtotal.
type RevenueReport struct {
	EquipmentID          string               `json:"equipment_id"`
	EquipmentName        string               `json:"equipment_name"`
	Records              []revenue.PaidRental `json:"records"`
	AvailableMonths      []revenue.MonthYear  `json:"available_months"`
	TotalRevenueCents    int64                `json:"total_revenue_cents"`
	FilteredRevenueCents int64                `json:"filtered_revenue_cents"`
	ProfitCents          int64                `json:"profit_cents"`
}

type RevenueService interface {
	EquipmentReport(ctx context.Context, equipmentID string, month *time.Month, year *int) (*RevenueReport, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, limit int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

type EmailService interface {
	SendDueDateReminder(ctx context.Context, to, clientName string, expectedEnd time.Time, urgency lifecycle.Urgency) error
	SendFinalizationNotice(ctx context.Context, to, clientName string, amountCents int64) error
}

type ReceiptService interface {
	// RentalReceiptPDF renders the printable receipt of a rental and its
	// billing cycles.
	RentalReceiptPDF(ctx context.Context, rentalID string) ([]byte, error)
}
