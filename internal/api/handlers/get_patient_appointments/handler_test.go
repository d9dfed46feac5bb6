package get_patient_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments/models"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
)

type fakeService struct {
	err  error
	last *models.GetPatientAppointmentsRequest
}

func (f *fakeService) GetPatientAppointments(_ context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	h := middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, "500")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/me/appointments?status=confirmed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(500), svc.last.PatientID)
	require.NotNil(t, svc.last.Status)
	assert.Equal(t, "confirmed", *svc.last.Status)
	assert.JSONEq(t, `{"appointments":[]}`, rec.Body.String())

	svc = &fakeService{}
	serve(svc, "/me/appointments")
	assert.Nil(t, svc.last.Status)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: appointments.ErrInvalidInput}, "/me/appointments?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: appointments.ErrInternal}, "/me/appointments").Code)
}
