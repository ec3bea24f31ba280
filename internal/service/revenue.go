package service

import (
	"context"
	"time"

	"locagest-backend/internal/repository"
	"locagest-backend/internal/revenue"
)

type revenueService struct {
	equipment repository.EquipmentRepository
	rentals   repository.RentalRepository
	clients   repository.ClientRepository
}

func NewRevenueService(
	equipment repository.EquipmentRepository,
	rentals repository.RentalRepository,
	clients repository.ClientRepository,
) RevenueService {
	return &revenueService{equipment: equipment, rentals: rentals, clients: clients}
}

// EquipmentReport builds the earnings view for one inventory item. Every
// paid rental referencing the item contributes, regardless of contract
// status. The month filter narrows Records and FilteredRevenueCents only;
// the lifetime total and the profit figure are always unfiltered.
func (s *revenueService) EquipmentReport(ctx context.Context, equipmentID string, month *time.Month, year *int) (*RevenueReport, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	paid, err := s.rentals.ListPaidByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	total := revenue.TotalRevenueCents(paid)
	filtered := revenue.FilterByMonth(paid, month, year)

	names := map[string]string{}
	records := make([]revenue.PaidRental, 0, len(filtered))
	for _, rt := range filtered {
		name, ok := names[rt.ClientID]
		if !ok {
			if client, err := s.clients.GetByID(ctx, rt.ClientID); err == nil {
				name = client.Name
			}
			names[rt.ClientID] = name
		}
		records = append(records, revenue.PaidRental{Rental: rt, ClientName: name})
	}

	return &RevenueReport{
		EquipmentID:          eq.ID,
		EquipmentName:        eq.Name,
		Records:              records,
		AvailableMonths:      revenue.AvailableMonths(paid),
		TotalRevenueCents:    total,
		FilteredRevenueCents: revenue.TotalRevenueCents(filtered),
		ProfitCents:          revenue.ProfitCents(total, eq.PurchaseCostCents),
	}, nil
}
