package get_professional_schedule

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
	msgProfessionalNotFound = "специалист не найден в клинике"
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

// Handle GET /api/v1/clinic/professionals/{professionalId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinic/professionals/{id}/availability - Missing clinic ID")
		handlers.RespondUnauthorized(w, msgMissingClinicID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /clinic/professionals/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessional)
		return
	}

	result, err := h.service.GetProfessionalSchedule(r.Context(), clinicID, professionalID)
	if err != nil {
		if errors.Is(err, schedule.ErrProfessionalNotFound) {
			h.logger.Warn("GET /clinic/professionals/{id}/availability - Professional not found: clinic_id=%d, professional_id=%d",
				clinicID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)
			return
		}
		h.logger.Error("GET /clinic/professionals/{id}/availability - Failed to get schedule: clinic_id=%d, professional_id=%d, error=%v",
			clinicID, professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clinic/professionals/{id}/availability - Schedule retrieved successfully: professional_id=%d, blocks=%d, time_off=%d",
		professionalID, len(result.Blocks), len(result.TimeOff))
	handlers.RespondJSON(w, http.StatusOK, result)
}
