package models

import (
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/types"
)

// Request модели

// BlockInput недельный блок расписания из запроса
type BlockInput struct {
	Weekday     int    `json:"weekday"`   // 0=воскресенье..6=суббота
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "13:00"
	SlotMinutes *int   `json:"slotMinutes,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// PutAvailabilityRequest запрос на полную замену недельного расписания специалиста
type PutAvailabilityRequest struct {
	ClinicID       int64        `json:"-"`
	ProfessionalID int64        `json:"-"`
	Blocks         []BlockInput `json:"blocks"`
}

// CreateTimeOffRequest запрос на создание исключения расписания
type CreateTimeOffRequest struct {
	ClinicID       int64   `json:"-"`
	ProfessionalID int64   `json:"-"`
	Date           string  `json:"date"`                // "2026-02-23"
	StartTime      *string `json:"startTime,omitempty"` // без времени исключение на весь день
	EndTime        *string `json:"endTime,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// Response модели

// BlockResponse недельный блок расписания
type BlockResponse struct {
	ID          int64  `json:"id"`
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	SlotMinutes int    `json:"slotMinutes"`
	IsActive    bool   `json:"isActive"`
}

// TimeOffResponse исключение расписания
type TimeOffResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse расписание специалиста
type ScheduleResponse struct {
	ProfessionalID int64             `json:"professionalId"`
	DisplayName    string            `json:"displayName"`
	Blocks         []BlockResponse   `json:"blocks"`
	TimeOff        []TimeOffResponse `json:"timeOff"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.WeeklyAvailabilityBlock) BlockResponse {
	return BlockResponse{
		ID:          b.ID,
		Weekday:     b.Weekday,
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		SlotMinutes: b.SlotMinutes,
		IsActive:    b.IsActive,
	}
}

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOffException) TimeOffResponse {
	return TimeOffResponse{
		ID:        t.ID,
		Date:      t.Date,
		StartTime: timeStringPtr(t.StartTime),
		EndTime:   timeStringPtr(t.EndTime),
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
	}
}

// FromDomainSchedule конвертирует агрегат расписания в DTO
func FromDomainSchedule(s *domain.ProfessionalSchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: s.Professional.ID,
		DisplayName:    s.Professional.DisplayName,
		Blocks:         make([]BlockResponse, 0, len(s.Blocks)),
		TimeOff:        make([]TimeOffResponse, 0, len(s.TimeOff)),
	}

	for _, b := range s.Blocks {
		resp.Blocks = append(resp.Blocks, FromDomainBlock(b))
	}
	for _, t := range s.TimeOff {
		resp.TimeOff = append(resp.TimeOff, FromDomainTimeOff(t))
	}

	return resp
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
