package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/ClinicBookingService/internal/usecase/reschedule_booking"
)

const (
	msgMissingUserID        = "отсутствует ID пациента"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartAt       = "некорректный формат startAt, ожидается RFC3339"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotConfirmed         = "перенести можно только подтвержденную запись"
	msgSlotUnavailable      = "выбранное время недоступно, выберите другой слот"
	msgInvalidFilter        = "специалист записи больше не принимает"
	msgPartialReschedule    = "перенос завершился с ошибкой, проверьте список своих записей"
	msgClinicMisconfigured  = "у клиники некорректно настроен часовой пояс, обратитесь в клинику"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/me/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Access denied: appointment_id=%d, patient_id=%d",
				appointmentID, patientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotConfirmed):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Not confirmed: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, rescheduleBooking.ErrSlotUnavailable):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Slot unavailable: appointment_id=%d, start_at=%s",
				appointmentID, req.StartAt)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidFilter):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Professional unavailable: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /me/appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartAt)

		case errors.Is(err, rescheduleBooking.ErrPartialReschedule):
			h.logger.Error("PATCH /me/appointments/{id}/reschedule - DATA INTEGRITY: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPartialReschedule)

		case errors.Is(err, rescheduleBooking.ErrConfiguration):
			h.logger.Error("PATCH /me/appointments/{id}/reschedule - Clinic misconfigured: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgClinicMisconfigured)

		default:
			h.logger.Error("PATCH /me/appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /me/appointments/{id}/reschedule - Appointment rescheduled successfully: old_id=%d, new_id=%d",
		appointmentID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
