package get_patient_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пациента"
	msgInvalidStatus = "некорректный статус, ожидается confirmed или cancelled"
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

// Handle GET /api/v1/me/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetPatientAppointments(r.Context(), &models.GetPatientAppointmentsRequest{
		PatientID: patientID,
		Status:    statusPtr,
	})
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /me/appointments - Invalid status: patient_id=%d, status=%s", patientID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /me/appointments - Failed to get appointments: patient_id=%d, error=%v", patientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/appointments - Appointments retrieved successfully: patient_id=%d, count=%d",
		patientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
