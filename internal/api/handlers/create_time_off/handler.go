package create_time_off

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
	msgInvalidData          = "некорректные данные исключения: укажите дату и оба времени или ни одного"
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

// Handle POST /api/v1/clinic/professionals/{professionalId}/timeoff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicID(r.Context())
	if !ok {
		h.logger.Warn("POST /clinic/professionals/{id}/timeoff - Missing clinic ID")
		handlers.RespondUnauthorized(w, msgMissingClinicID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /clinic/professionals/{id}/timeoff - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessional)
		return
	}

	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clinic/professionals/{id}/timeoff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ClinicID = clinicID
	req.ProfessionalID = professionalID

	result, err := h.service.CreateTimeOff(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /clinic/professionals/{id}/timeoff - Invalid data: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("POST /clinic/professionals/{id}/timeoff - Professional not found: clinic_id=%d, professional_id=%d",
				clinicID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("POST /clinic/professionals/{id}/timeoff - Failed to create time off: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clinic/professionals/{id}/timeoff - Time off created successfully: professional_id=%d, time_off_id=%d",
		professionalID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
