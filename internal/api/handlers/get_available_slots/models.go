package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/ClinicBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ClinicID int64           `json:"clinicId"`
	Slug     string          `json:"slug"`
	Timezone string          `json:"timezone"`
	Mode     string          `json:"mode"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartAt        string `json:"startAt"` // RFC3339, UTC
	EndAt          string `json:"endAt"`
	ProfessionalID *int64 `json:"professionalId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartAt:        slot.StartAt.UTC().Format(time.RFC3339),
			EndAt:          slot.EndAt.UTC().Format(time.RFC3339),
			ProfessionalID: slot.ProfessionalID,
		}
	}

	return &AvailableSlotsResponse{
		ClinicID: resp.ClinicID,
		Slug:     resp.Slug,
		Timezone: resp.Timezone,
		Mode:     resp.Mode,
		Slots:    slots,
	}
}
