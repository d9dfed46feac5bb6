package get_clinic_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments"
)

const (
	msgMissingClinicID     = "отсутствует ID клиники"
	msgInvalidParams       = "некорректные параметры запроса: from и to обязательны, формат YYYY-MM-DD"
	msgClinicNotFound      = "клиника не найдена"
	msgClinicMisconfigured = "у клиники некорректно настроен часовой пояс"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinic/appointments
// Query params: from, to (обязательны), professionalId, q (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinic/appointments - Missing clinic ID")
		handlers.RespondUnauthorized(w, msgMissingClinicID)
		return
	}

	serviceReq, err := ToServiceRequest(clinicID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /clinic/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetClinicAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clinic/appointments - Invalid parameters: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, appointments.ErrClinicNotFound):
			h.logger.Warn("GET /clinic/appointments - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, appointments.ErrConfiguration):
			h.logger.Error("GET /clinic/appointments - Clinic misconfigured: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgClinicMisconfigured)

		default:
			h.logger.Error("GET /clinic/appointments - Failed to get appointments: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinic/appointments - Appointments retrieved successfully: clinic_id=%d, count=%d",
		clinicID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
