package delete_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule"
)

const (
	msgMissingClinicID      = "отсутствует ID клиники"
	msgInvalidProfessional  = "некорректный ID специалиста"
	msgInvalidTimeOffID     = "некорректный ID исключения"
	msgProfessionalNotFound = "специалист не найден в клинике"
	msgTimeOffNotFound      = "исключение расписания не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/clinic/professionals/{professionalId}/timeoff/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /clinic/professionals/{id}/timeoff/{id} - Missing clinic ID")
		handlers.RespondUnauthorized(w, msgMissingClinicID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /clinic/professionals/{id}/timeoff/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessional)
		return
	}

	timeOffID, err := handlers.PathInt64(r, "timeOffId")
	if err != nil {
		h.logger.Warn("DELETE /clinic/professionals/{id}/timeoff/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), clinicID, professionalID, timeOffID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("DELETE /clinic/professionals/{id}/timeoff/{id} - Professional not found: clinic_id=%d, professional_id=%d",
				clinicID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, schedule.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /clinic/professionals/{id}/timeoff/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		default:
			h.logger.Error("DELETE /clinic/professionals/{id}/timeoff/{id} - Failed to delete time off: time_off_id=%d, error=%v",
				timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /clinic/professionals/{id}/timeoff/{id} - Time off deleted successfully: time_off_id=%d", timeOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
