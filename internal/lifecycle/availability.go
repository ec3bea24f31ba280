package lifecycle

import "locagest-backend/internal/domain"

// RentedEquipmentIDs returns the set of equipment ids referenced by any
// rental that is still active. The set is recomputed from scratch on every
// call; there is no cached state to invalidate.
func RentedEquipmentIDs(records []domain.Rental) map[string]struct{} {
	rented := make(map[string]struct{})
	for i := range records {
		if records[i].ContractStatus != domain.ContractStatusActive {
			continue
		}
		for _, id := range records[i].EquipmentIDs {
			rented[id] = struct{}{}
		}
	}
	return rented
}

// IsRented reports whether the equipment item is attached to an active
// rental. Used to filter the picker for new rentals and to block deletion.
func IsRented(equipmentID string, records []domain.Rental) bool {
	for i := range records {
		if records[i].ContractStatus == domain.ContractStatusActive && records[i].References(equipmentID) {
			return true
		}
	}
	return false
}
