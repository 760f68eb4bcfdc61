package models

import "time"

// Alert is a single expiry warning for one inventory item. Alerts are
// computed on demand and pushed out; they are not stored.
type Alert struct {
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Type      string    `json:"type"` // "critical" | "warning"
	DaysLeft  int       `json:"daysLeft"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
