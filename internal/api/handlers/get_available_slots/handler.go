package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/ClinicBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDates        = "параметры from и to обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidProfessional = "некорректный ID специалиста"
	msgInvalidSpecialty    = "некорректный ID специальности"
	msgInvalidFilter       = "специалист или специальность не найдены в клинике"
	msgInvalidWindow       = "некорректный период: from должен быть раньше to, не более 62 дней"
	msgClinicNotFound      = "клиника не найдена"
	msgClinicMisconfigured = "у клиники некорректно настроен часовой пояс, обратитесь в клинику"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/clinics/{slug}/availability
// Query params: from, to (required, YYYY-MM-DD), professionalId, specialtyId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.SetNoCache(w)

	slug := mux.Vars(r)["slug"]
	query := r.URL.Query()

	from, to := query.Get("from"), query.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /public/clinics/{slug}/availability - Missing dates: slug=%s", slug)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	professionalID, err := handlers.QueryInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /public/clinics/{slug}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessional)
		return
	}

	specialtyID, err := handlers.QueryInt64(r, "specialtyId")
	if err != nil {
		h.logger.Warn("GET /public/clinics/{slug}/availability - Invalid specialty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialty)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ClinicSlug:     slug,
		From:           from,
		To:             to,
		ProfessionalID: professionalID,
		SpecialtyID:    specialtyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrClinicNotFound):
			h.logger.Warn("GET /public/clinics/{slug}/availability - Clinic not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidFilter):
			h.logger.Warn("GET /public/clinics/{slug}/availability - Invalid filter: slug=%s, professional_id=%v, specialty_id=%v",
				slug, professionalID, specialtyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, getAvailableSlots.ErrInvalidWindow):
			h.logger.Warn("GET /public/clinics/{slug}/availability - Invalid window: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/clinics/{slug}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrConfiguration):
			h.logger.Error("GET /public/clinics/{slug}/availability - Clinic misconfigured: slug=%s, error=%v", slug, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgClinicMisconfigured)

		default:
			h.logger.Error("GET /public/clinics/{slug}/availability - Failed to get slots: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/clinics/{slug}/availability - Slots retrieved successfully: slug=%s, mode=%s, slots_count=%d",
		slug, result.Mode, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
