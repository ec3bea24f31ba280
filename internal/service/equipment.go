package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/pricing"
	"locagest-backend/internal/repository"
)

type equipmentService struct {
	equipment repository.EquipmentRepository
	rentals   repository.RentalRepository
}

func NewEquipmentService(equipment repository.EquipmentRepository, rentals repository.RentalRepository) EquipmentService {
	return &equipmentService{equipment: equipment, rentals: rentals}
}

func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	if eq.ID == "" {
		eq.ID = uuid.New().String()
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return err
	}
	logger.Info("equipment created", "equipment_id", eq.ID, "name", eq.Name)
	return nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if eq.ID == "" {
		return domain.NewValidationError("id", "equipment id is required")
	}
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipment.Update(ctx, eq)
}

// DeleteEquipment removes an inventory item. Items attached to an active
// rental cannot be removed; the contract has to be finalized first.
func (s *equipmentService) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := s.equipment.GetByID(ctx, id); err != nil {
		return err
	}
	active, err := s.rentals.ListByStatus(ctx, domain.ContractStatusActive)
	if err != nil {
		return err
	}
	if lifecycle.IsRented(id, active) {
		return domain.NewConflictError("equipment", "equipment is attached to an active rental")
	}
	return s.equipment.Delete(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment.List(ctx)
}

func (s *equipmentService) ListAvailable(ctx context.Context) ([]EquipmentOption, error) {
	items, err := s.equipment.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.rentals.ListByStatus(ctx, domain.ContractStatusActive)
	if err != nil {
		return nil, err
	}
	rented := lifecycle.RentedEquipmentIDs(active)

	options := make([]EquipmentOption, 0, len(items))
	for _, eq := range items {
		if _, busy := rented[eq.ID]; busy {
			continue
		}
		period, cents, ok := pricing.FirstAvailablePrice(eq)
		if !ok {
			continue
		}
		options = append(options, EquipmentOption{Equipment: eq, SuggestedPeriod: period, SuggestedCents: cents})
	}
	return options, nil
}

func validateEquipment(eq *domain.Equipment) error {
	if eq.Name == "" {
		return domain.NewValidationError("name", "equipment name is required")
	}
	for _, p := range []*int64{eq.DailyPriceCents, eq.WeeklyPriceCents, eq.BiweeklyPriceCents, eq.MonthlyPriceCents, eq.PurchaseCostCents} {
		if p != nil && *p < 0 {
			return domain.NewValidationError("price", fmt.Sprintf("negative amount %d not allowed", *p))
		}
	}
	return nil
}
