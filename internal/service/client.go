package service

import (
	"context"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/repository"
)

type clientService struct {
	clients repository.ClientRepository
	rentals repository.RentalRepository
}

func NewClientService(clients repository.ClientRepository, rentals repository.RentalRepository) ClientService {
	return &clientService{clients: clients, rentals: rentals}
}

func (s *clientService) CreateClient(ctx context.Context, c *domain.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return err
	}
	logger.Info("client created", "client_id", c.ID, "name", c.Name)
	return nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) UpdateClient(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		return domain.NewValidationError("id", "client id is required")
	}
	if err := validateClient(c); err != nil {
		return err
	}
	return s.clients.Update(ctx, c)
}

// DeleteClient removes a client record. Clients with an active rental are
// kept until their contracts are finalized or deleted.
func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return err
	}
	records, err := s.rentals.ListByClient(ctx, id)
	if err != nil {
		return err
	}
	for _, rt := range records {
		if rt.IsActive() {
			return domain.NewConflictError("client", "client has an active rental")
		}
	}
	return s.clients.Delete(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

func validateClient(c *domain.Client) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "client name is required")
	}
	if c.Phone == "" {
		return domain.NewValidationError("phone", "client phone is required")
	}
	return nil
}
