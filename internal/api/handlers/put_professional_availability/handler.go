package put_professional_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
)

const (
	msgMissingClinicID      = "отсутствует ID клиники"
	msgInvalidProfessional  = "некорректный ID специалиста"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgProfessionalNotFound = "специалист не найден в клинике"
	msgClinicNotFound       = "клиника не найдена"
	msgInvalidData          = "некорректные данные расписания"
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

// Handle PUT /api/v1/clinic/professionals/{professionalId}/availability
// Полностью заменяет недельное расписание специалиста
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicID(r.Context())
	if !ok {
		h.logger.Warn("PUT /clinic/professionals/{id}/availability - Missing clinic ID")
		handlers.RespondUnauthorized(w, msgMissingClinicID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("PUT /clinic/professionals/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessional)
		return
	}

	var req models.PutAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clinic/professionals/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ClinicID = clinicID
	req.ProfessionalID = professionalID

	result, err := h.service.PutAvailability(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /clinic/professionals/{id}/availability - Invalid data: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("PUT /clinic/professionals/{id}/availability - Professional not found: clinic_id=%d, professional_id=%d",
				clinicID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, schedule.ErrClinicNotFound):
			h.logger.Warn("PUT /clinic/professionals/{id}/availability - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		default:
			h.logger.Error("PUT /clinic/professionals/{id}/availability - Failed to replace schedule: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clinic/professionals/{id}/availability - Schedule replaced successfully: professional_id=%d, blocks=%d",
		professionalID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
