package services

import "github.com/n8hotnews-a11y/Smart-Frigde/models"

// FamilyService holds the household roster. Members are fixed at bootstrap;
// there is no update path in the current scope.
type FamilyService struct {
	members []models.FamilyMember
}

func NewFamilyService(members []models.FamilyMember) *FamilyService {
	return &FamilyService{members: members}
}

// DefaultRoster is the demo household.
func DefaultRoster() []models.FamilyMember {
	return []models.FamilyMember{
		{ID: "fm1", Name: "Anh Hùng", Age: 35, Goal: "Duy trì sức khỏe"},
		{ID: "fm2", Name: "Chị Mai", Age: 32, Goal: "Giảm cân"},
		{ID: "fm3", Name: "Bé An", Age: 6, Goal: "Tăng cân"},
	}
}

// List returns a copy of the roster.
func (s *FamilyService) List() []models.FamilyMember {
	out := make([]models.FamilyMember, len(s.members))
	copy(out, s.members)
	return out
}
