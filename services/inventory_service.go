package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

// InventoryService owns the household's food items. The collection lives in
// memory only; insertion order is kept so equal expiry dates sort stably.
// Safe for concurrent access.
type InventoryService struct {
	mu       sync.RWMutex
	items    []models.FoodItem
	soonDays int
}

func NewInventoryService(soonDays int) *InventoryService {
	return &InventoryService{soonDays: soonDays}
}

// Add assigns a fresh id, appends the item and returns the stored record.
// Field validation is the form layer's job; the store does not re-check.
func (s *InventoryService) Add(item models.FoodItem) models.FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.NewString()
	s.items = append(s.items, item)
	return item
}

// Remove deletes the item with the given id. Removing an unknown id is a
// no-op, so a double-tap on delete never errors.
func (s *InventoryService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Update replaces the record with a matching id; no-op if absent.
func (s *InventoryService) Update(item models.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == item.ID {
			s.items[i] = item
			return
		}
	}
}

// Get returns the item with the given id, if present.
func (s *InventoryService) Get(id string) (models.FoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.FoodItem{}, false
}

// Items returns a snapshot of the whole collection in insertion order.
func (s *InventoryService) Items() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FoodItem, len(s.items))
	copy(out, s.items)
	return out
}

// GroupByStorage is a read-only view: items bucketed by storage location,
// each bucket sorted by expiry date ascending with insertion order breaking
// ties.
func (s *InventoryService) GroupByStorage() map[models.StorageLocation][]models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grouped := make(map[models.StorageLocation][]models.FoodItem)
	for _, it := range s.items {
		grouped[it.Storage] = append(grouped[it.Storage], it)
	}
	for _, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ExpiryDate.Before(list[j].ExpiryDate)
		})
	}
	return grouped
}

// ListExpiringSoon returns items inside the notification window (0 to
// soonDays days from ref), soonest first.
func (s *InventoryService) ListExpiringSoon(ref time.Time) []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FoodItem
	for _, it := range s.items {
		days := utils.DaysUntilExpiry(ref, it.ExpiryDate)
		if utils.IsExpiringSoon(days, s.soonDays) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out
}

// Seed loads the demo inventory used in development.
func (s *InventoryService) Seed(now time.Time) {
	day := 24 * time.Hour
	demo := []models.FoodItem{
		{Name: "Thịt gà", Quantity: "500g", ExpiryDate: now.Add(2 * day), Storage: models.StorageFreezer},
		{Name: "Trứng gà", Quantity: "10 quả", ExpiryDate: now.Add(10 * day), Storage: models.StorageRefrigerator},
		{Name: "Cà chua", Quantity: "5 quả", ExpiryDate: now.Add(3 * day), Storage: models.StorageRefrigerator},
		{Name: "Hành tây", Quantity: "2 củ", ExpiryDate: now.Add(14 * day), Storage: models.StoragePantry},
		{Name: "Bánh mì", Quantity: "1 ổ", ExpiryDate: now.Add(1 * day), Storage: models.StoragePantry},
	}
	for _, it := range demo {
		s.Add(it)
	}
}
