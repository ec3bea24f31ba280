package postgres

import (
	"database/sql"

	"locagest-backend/internal/repository"
)

// Store bundles the PostgreSQL implementations of every repository.
type Store struct {
	ClientRepository       repository.ClientRepository
	EquipmentRepository    repository.EquipmentRepository
	RentalRepository       repository.RentalRepository
	ReceivableRepository   repository.ReceivableRepository
	NotificationRepository repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		ClientRepository:       NewClientRepository(db),
		EquipmentRepository:    NewEquipmentRepository(db),
		RentalRepository:       NewRentalRepository(db),
		ReceivableRepository:   NewReceivableRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
