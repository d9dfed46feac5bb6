package create_time_off

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
)

type fakeService struct {
	err  error
	last *models.CreateTimeOffRequest
}

func (f *fakeService) CreateTimeOff(_ context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.TimeOffResponse{ID: 9, Date: req.Date}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/clinic/professionals/{professionalId}/timeoff",
		middleware.ClinicAuth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/clinic/professionals/3/timeoff", strings.NewReader(body))
	req.Header.Set(middleware.HeaderClinicID, "10")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"date":"2026-02-23","startTime":"10:00","endTime":"11:00","reason":"congreso"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(10), svc.last.ClinicID)
	assert.Equal(t, int64(3), svc.last.ProfessionalID)
	assert.Equal(t, "2026-02-23", svc.last.Date)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"date":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: schedule.ErrInvalidInput}, `{"date":"2026-02-23","startTime":"10:00"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrProfessionalNotFound}, `{"date":"2026-02-23"}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: schedule.ErrInternal}, `{"date":"2026-02-23"}`).Code)
}
