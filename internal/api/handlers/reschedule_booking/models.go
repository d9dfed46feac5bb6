package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/ClinicBookingService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartAt string `json:"startAt"` // RFC3339
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID                    int64   `json:"id"`
	PreviousAppointmentID int64   `json:"previousAppointmentId"`
	ClinicID              int64   `json:"clinicId"`
	ProfessionalID        *int64  `json:"professionalId,omitempty"`
	SpecialtyID           *int64  `json:"specialtyId,omitempty"`
	PatientID             *int64  `json:"patientId,omitempty"`
	PatientFullName       string  `json:"patientFullName"`
	PatientPhone          string  `json:"patientPhone"`
	Note                  *string `json:"note,omitempty"`
	StartAt               string  `json:"startAt"`
	EndAt                 string  `json:"endAt"`
	Status                string  `json:"status"`
	Timezone              string  `json:"timezone"`
	CreatedAt             string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(patientID, appointmentID int64) (*rescheduleBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	return &rescheduleBooking.Request{
		PatientID:     patientID,
		AppointmentID: appointmentID,
		StartAt:       startAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:                    resp.ID,
		PreviousAppointmentID: resp.PreviousAppointmentID,
		ClinicID:              resp.ClinicID,
		ProfessionalID:        resp.ProfessionalID,
		SpecialtyID:           resp.SpecialtyID,
		PatientID:             resp.PatientID,
		PatientFullName:       resp.PatientFullName,
		PatientPhone:          resp.PatientPhone,
		Note:                  resp.Note,
		StartAt:               resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:                 resp.EndAt.UTC().Format(time.RFC3339),
		Status:                resp.Status,
		Timezone:              resp.Timezone,
		CreatedAt:             resp.CreatedAt.Format(time.RFC3339),
	}
}
