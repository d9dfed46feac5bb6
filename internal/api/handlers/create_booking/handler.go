package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/ClinicBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат startAt, ожидается RFC3339"
	msgSlotUnavailable     = "выбранное время недоступно, выберите другой слот"
	msgClinicNotFound      = "клиника не найдена"
	msgInvalidFilter       = "специалист или специальность не найдены в клинике"
	msgInvalidInput        = "некорректные данные пациента"
	msgClinicMisconfigured = "у клиники некорректно настроен часовой пояс, обратитесь в клинику"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/clinics/{slug}/appointments
// X-User-ID необязателен: без него запись оформляется без привязки к пациенту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/clinics/{slug}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var patientID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		patientID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(slug, patientID)
	if err != nil {
		h.logger.Warn("POST /public/clinics/{slug}/appointments - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /public/clinics/{slug}/appointments - Slot unavailable: slug=%s, start_at=%s", slug, req.StartAt)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrClinicNotFound):
			h.logger.Warn("POST /public/clinics/{slug}/appointments - Clinic not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, createBooking.ErrInvalidFilter):
			h.logger.Warn("POST /public/clinics/{slug}/appointments - Invalid filter: slug=%s, professional_id=%v, specialty_id=%v",
				slug, req.ProfessionalID, req.SpecialtyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/clinics/{slug}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrConfiguration):
			h.logger.Error("POST /public/clinics/{slug}/appointments - Clinic misconfigured: slug=%s, error=%v", slug, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgClinicMisconfigured)

		default:
			h.logger.Error("POST /public/clinics/{slug}/appointments - Failed to create appointment: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/clinics/{slug}/appointments - Appointment created successfully: appointment_id=%d, clinic_id=%d",
		result.ID, result.ClinicID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
