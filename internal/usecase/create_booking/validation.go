package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	req.ClinicSlug = strings.TrimSpace(req.ClinicSlug)
	if req.ClinicSlug == "" {
		return fmt.Errorf("%w: clinic slug is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.PatientID != nil && *req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.SpecialtyID != nil && *req.SpecialtyID <= 0 {
		return fmt.Errorf("%w: specialtyID must be positive", ErrInvalidInput)
	}

	req.PatientFullName = strings.TrimSpace(req.PatientFullName)
	if req.PatientFullName == "" {
		return fmt.Errorf("%w: patientFullName is required", ErrInvalidInput)
	}
	if len([]rune(req.PatientFullName)) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientFullName is longer than %d characters", ErrInvalidInput, domain.MaxPatientNameLength)
	}

	req.PatientPhone = strings.TrimSpace(req.PatientPhone)
	if req.PatientPhone == "" {
		return fmt.Errorf("%w: patientPhone is required", ErrInvalidInput)
	}
	if len([]rune(req.PatientPhone)) > domain.MaxPatientPhoneLength {
		return fmt.Errorf("%w: patientPhone is longer than %d characters", ErrInvalidInput, domain.MaxPatientPhoneLength)
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if len([]rune(note)) > domain.MaxNoteLength {
			return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
		}
		if note == "" {
			req.Note = nil
		} else {
			req.Note = &note
		}
	}

	return nil
}
