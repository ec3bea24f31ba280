package repository

import (
	"context"

	"locagest-backend/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Client, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Equipment, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// Update persists the rental only when its Version still matches the
	// stored one, then bumps it. Returns domain.ErrVersionConflict on a
	// concurrent modification.
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Rental, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Rental, error)
	// ListPaidByEquipment returns the PAID rentals referencing the
	// equipment item, the input of the revenue aggregation.
	ListPaidByEquipment(ctx context.Context, equipmentID string) ([]domain.Rental, error)
}

type ReceivableRepository interface {
	Create(ctx context.Context, rc *domain.Receivable) error
	Update(ctx context.Context, rc *domain.Receivable) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.Receivable, error)
	// DeleteByRental removes every receivable of the rental (the cascade
	// that accompanies rental deletion).
	DeleteByRental(ctx context.Context, rentalID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, limit int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}
