package lifecycle

import (
	"testing"

	"locagest-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRentedEquipmentIDs(t *testing.T) {
	active := freshRental()
	active.EquipmentIDs = []string{"e-1", "e-2"}

	finalized := freshRental()
	finalized.ID = "r-2"
	finalized.EquipmentIDs = []string{"e-3"}
	finalized.ContractStatus = domain.ContractStatusFinalized

	records := []domain.Rental{active, finalized}

	t.Run("only active rentals contribute", func(t *testing.T) {
		rented := RentedEquipmentIDs(records)
		assert.Len(t, rented, 2)
		assert.Contains(t, rented, "e-1")
		assert.Contains(t, rented, "e-2")
		assert.NotContains(t, rented, "e-3")
	})

	t.Run("empty input yields an empty set", func(t *testing.T) {
		assert.Empty(t, RentedEquipmentIDs(nil))
	})

	t.Run("IsRented agrees with the set", func(t *testing.T) {
		assert.True(t, IsRented("e-1", records))
		assert.True(t, IsRented("e-2", records))
		assert.False(t, IsRented("e-3", records))
		assert.False(t, IsRented("e-missing", records))
	})

	t.Run("equipment becomes available once its rental finalizes", func(t *testing.T) {
		done := active
		done.ContractStatus = domain.ContractStatusFinalized
		assert.False(t, IsRented("e-1", []domain.Rental{done}))
	})
}
