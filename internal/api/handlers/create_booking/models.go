package create_booking

import (
	"time"

	createBooking "github.com/m04kA/ClinicBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartAt         string  `json:"startAt"` // RFC3339
	ProfessionalID  *int64  `json:"professionalId,omitempty"`
	SpecialtyID     *int64  `json:"specialtyId,omitempty"`
	PatientFullName string  `json:"patientFullName"`
	PatientPhone    string  `json:"patientPhone"`
	Note            *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClinicID        int64   `json:"clinicId"`
	ProfessionalID  *int64  `json:"professionalId,omitempty"`
	SpecialtyID     *int64  `json:"specialtyId,omitempty"`
	PatientID       *int64  `json:"patientId,omitempty"`
	PatientFullName string  `json:"patientFullName"`
	PatientPhone    string  `json:"patientPhone"`
	Note            *string `json:"note,omitempty"`
	StartAt         string  `json:"startAt"`
	EndAt           string  `json:"endAt"`
	Status          string  `json:"status"`
	Timezone        string  `json:"timezone"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(slug string, patientID *int64) (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClinicSlug:      slug,
		PatientID:       patientID,
		StartAt:         startAt,
		ProfessionalID:  r.ProfessionalID,
		SpecialtyID:     r.SpecialtyID,
		PatientFullName: r.PatientFullName,
		PatientPhone:    r.PatientPhone,
		Note:            r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClinicID:        resp.ClinicID,
		ProfessionalID:  resp.ProfessionalID,
		SpecialtyID:     resp.SpecialtyID,
		PatientID:       resp.PatientID,
		PatientFullName: resp.PatientFullName,
		PatientPhone:    resp.PatientPhone,
		Note:            resp.Note,
		StartAt:         resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:           resp.EndAt.UTC().Format(time.RFC3339),
		Status:          resp.Status,
		Timezone:        resp.Timezone,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
