package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit at a clinic.
// StartAt and EndAt are absolute instants; the clinic-local calendar is derived from the clinic timezone.
type Appointment struct {
	ID             int64
	ClinicID       int64
	ProfessionalID *int64 // NULL = legacy clinic-level booking
	SpecialtyID    *int64
	PatientID      *int64 // NULL = booked by the clinic on behalf of a walk-in patient

	PatientFullName string
	PatientPhone    string
	Note            *string

	StartAt time.Time
	EndAt   time.Time
	Status  AppointmentStatus

	// PreviousAppointmentID links a rescheduled appointment to the one it replaced
	PreviousAppointmentID *int64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed returns true if the appointment still holds its slot
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// BelongsToPatient returns true if the appointment was booked by the given patient
func (a *Appointment) BelongsToPatient(patientID int64) bool {
	return a.PatientID != nil && *a.PatientID == patientID
}

// IsRescheduled returns true if the appointment replaced an earlier one
func (a *Appointment) IsRescheduled() bool {
	return a.PreviousAppointmentID != nil
}

// SlotKey returns the key under which the appointment occupies a slot
func (a *Appointment) SlotKey() SlotKey {
	return NewSlotKey(a.StartAt, a.ProfessionalID)
}

// AppointmentsFilter фильтр для получения записей клиники
type AppointmentsFilter struct {
	ClinicID       int64              // Обязательный параметр
	From           *time.Time         // Начало периода включительно (опционально)
	To             *time.Time         // Конец периода не включительно (опционально)
	ProfessionalID *int64             // Фильтр по специалисту (опционально)
	PhoneQuery     string             // Поиск по подстроке телефона пациента (опционально)
	Status         *AppointmentStatus // Фильтр по статусу (опционально, nil - все статусы)
	Limit          uint64             // 0 = без ограничения
}
