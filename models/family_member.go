package models

// FamilyMember is one person in the household roster. Members are seeded at
// bootstrap and immutable afterwards; reports reference them by ID.
type FamilyMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Goal string `json:"goal"` // e.g. "Tăng cân", "Giảm cân", "Duy trì sức khỏe"
}
