package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"locagest-backend/internal/domain"
)

func TestEquipmentService_DeleteEquipment(t *testing.T) {
	t.Run("blocked while attached to an active rental", func(t *testing.T) {
		equipment := new(MockEquipmentRepository)
		rentals := new(MockRentalRepository)
		svc := NewEquipmentService(equipment, rentals)

		equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)
		rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{*activeRental("rt-1")}, nil)

		err := svc.DeleteEquipment(context.Background(), "eq-1")

		assert.True(t, domain.IsConflict(err))
		equipment.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("allowed once every contract is finalized", func(t *testing.T) {
		equipment := new(MockEquipmentRepository)
		rentals := new(MockRentalRepository)
		svc := NewEquipmentService(equipment, rentals)

		equipment.On("GetByID", mock.Anything, "eq-1").Return(testEquipment("eq-1"), nil)
		rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{}, nil)
		equipment.On("Delete", mock.Anything, "eq-1").Return(nil)

		err := svc.DeleteEquipment(context.Background(), "eq-1")

		require.NoError(t, err)
		equipment.AssertCalled(t, "Delete", mock.Anything, "eq-1")
	})
}

func TestEquipmentService_ListAvailable(t *testing.T) {
	equipment := new(MockEquipmentRepository)
	rentals := new(MockRentalRepository)
	svc := NewEquipmentService(equipment, rentals)

	free := *testEquipment("eq-free")
	rented := *testEquipment("eq-1")
	unpriced := domain.Equipment{ID: "eq-bare", Name: "Bare Frame"}

	equipment.On("List", mock.Anything).Return([]domain.Equipment{free, rented, unpriced}, nil)
	rentals.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return([]domain.Rental{*activeRental("rt-1")}, nil)

	options, err := svc.ListAvailable(context.Background())

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "eq-free", options[0].Equipment.ID)
	assert.Equal(t, domain.PeriodMonthly, options[0].SuggestedPeriod)
	assert.Equal(t, int64(110000), options[0].SuggestedCents)
}

func TestEquipmentService_CreateEquipment(t *testing.T) {
	equipment := new(MockEquipmentRepository)
	rentals := new(MockRentalRepository)
	svc := NewEquipmentService(equipment, rentals)

	t.Run("requires a name", func(t *testing.T) {
		err := svc.CreateEquipment(context.Background(), &domain.Equipment{})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		neg := int64(-100)
		err := svc.CreateEquipment(context.Background(), &domain.Equipment{Name: "Drill", DailyPriceCents: &neg})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("assigns an id", func(t *testing.T) {
		equipment.On("Create", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)
		eq := &domain.Equipment{Name: "Drill"}
		require.NoError(t, svc.CreateEquipment(context.Background(), eq))
		assert.NotEmpty(t, eq.ID)
	})
}
