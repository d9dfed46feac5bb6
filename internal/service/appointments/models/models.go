package models

import (
	"errors"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// Requester кто выполняет запрос: пациент или администратор клиники
type Requester struct {
	PatientID *int64
	ClinicID  *int64
}

// GetPatientAppointmentsRequest запрос на получение записей пациента
type GetPatientAppointmentsRequest struct {
	PatientID int64   `json:"patientId"`
	Status    *string `json:"status,omitempty"`
}

// GetClinicAppointmentsRequest запрос на получение записей клиники
type GetClinicAppointmentsRequest struct {
	ClinicID       int64  `json:"clinicId"`
	From           string `json:"from"` // "2026-02-23", дата клиники включительно
	To             string `json:"to"`   // "2026-03-01", дата клиники не включительно
	ProfessionalID *int64 `json:"professionalId,omitempty"`
	Query          string `json:"q,omitempty"` // подстрока телефона пациента
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                    int64   `json:"id"`
	ClinicID              int64   `json:"clinicId"`
	ProfessionalID        *int64  `json:"professionalId,omitempty"`
	SpecialtyID           *int64  `json:"specialtyId,omitempty"`
	PatientID             *int64  `json:"patientId,omitempty"`
	PatientFullName       string  `json:"patientFullName"`
	PatientPhone          string  `json:"patientPhone"`
	Note                  *string `json:"note,omitempty"`
	StartAt               string  `json:"startAt"` // RFC3339, UTC
	EndAt                 string  `json:"endAt"`
	Status                string  `json:"status"`
	PreviousAppointmentID *int64  `json:"previousAppointmentId,omitempty"`
	CancelledAt           *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                    a.ID,
		ClinicID:              a.ClinicID,
		ProfessionalID:        a.ProfessionalID,
		SpecialtyID:           a.SpecialtyID,
		PatientID:             a.PatientID,
		PatientFullName:       a.PatientFullName,
		PatientPhone:          a.PatientPhone,
		Note:                  a.Note,
		StartAt:               a.StartAt.UTC().Format(time.RFC3339),
		EndAt:                 a.EndAt.UTC().Format(time.RFC3339),
		Status:                string(a.Status),
		PreviousAppointmentID: a.PreviousAppointmentID,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return domain.AppointmentStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
