package get_clinic_appointments

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/m04kA/ClinicBookingService/internal/service/appointments/models"
)

var errMissingPeriod = errors.New("from and to are required")

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(clinicID int64, query url.Values) (*models.GetClinicAppointmentsRequest, error) {
	req := &models.GetClinicAppointmentsRequest{
		ClinicID: clinicID,
		From:     query.Get("from"),
		To:       query.Get("to"),
		Query:    query.Get("q"),
	}
	if req.From == "" || req.To == "" {
		return nil, errMissingPeriod
	}

	if raw := query.Get("professionalId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &id
	}

	return req, nil
}
