package models

import "time"

// StorageLocation is where an item is kept. The values are the labels the
// app displays, so they go over the wire as-is.
type StorageLocation string

const (
	StorageRefrigerator StorageLocation = "Tủ lạnh"
	StorageFreezer      StorageLocation = "Tủ đông"
	StoragePantry       StorageLocation = "Kệ bếp"
)

// Valid reports whether s is one of the known storage locations.
func (s StorageLocation) Valid() bool {
	switch s {
	case StorageRefrigerator, StorageFreezer, StoragePantry:
		return true
	}
	return false
}

// FoodItem is a single perishable in the household inventory.
// ExpiryDate is a calendar date; the time-of-day component is ignored
// everywhere it is compared.
type FoodItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   string          `json:"quantity"` // free text, e.g. "500g", "2 củ"
	ExpiryDate time.Time       `json:"expiryDate"`
	Storage    StorageLocation `json:"storage"`
	ImageURL   string          `json:"imageUrl,omitempty"`
}
