package domain

import "time"

// Professional represents a practitioner working at a clinic
type Professional struct {
	ID           int64
	ClinicID     int64
	DisplayName  string
	SpecialtyIDs []int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OffersSpecialty returns true if the professional practices the given specialty
func (p *Professional) OffersSpecialty(specialtyID int64) bool {
	for _, id := range p.SpecialtyIDs {
		if id == specialtyID {
			return true
		}
	}
	return false
}

// Specialty represents a medical specialty offered by a clinic
type Specialty struct {
	ID       int64
	ClinicID int64
	Name     string
	IsActive bool
}

// ProfessionalsFilter фильтр выборки специалистов клиники
type ProfessionalsFilter struct {
	ProfessionalID *int64
	SpecialtyID    *int64
	OnlyActive     bool
}
