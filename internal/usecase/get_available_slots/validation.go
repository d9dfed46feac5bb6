package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

// validateRequest проверяет входные данные без обращения к хранилищу
func validateRequest(req *Request) error {
	req.ClinicSlug = strings.TrimSpace(req.ClinicSlug)
	if req.ClinicSlug == "" {
		return fmt.Errorf("%w: clinic slug is required", ErrInvalidInput)
	}
	if req.From == "" || req.To == "" {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}
	if req.SpecialtyID != nil && *req.SpecialtyID <= 0 {
		return fmt.Errorf("%w: specialtyId must be positive", ErrInvalidInput)
	}
	return nil
}

// resolveWindow переводит даты клиники в моменты времени [from 00:00, to 00:00)
func resolveWindow(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	fromDate, err := clinictime.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
	}
	toDate, err := clinictime.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
	}
	return fromDate.Start(loc), toDate.Start(loc), nil
}
