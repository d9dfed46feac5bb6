package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/ClinicBookingService/internal/usecase/create_booking"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
)

type fakeUseCase struct {
	err  error
	last *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:              1,
		ClinicID:        10,
		PatientID:       req.PatientID,
		PatientFullName: req.PatientFullName,
		PatientPhone:    req.PatientPhone,
		StartAt:         req.StartAt,
		EndAt:           req.StartAt.Add(30 * time.Minute),
		Status:          "confirmed",
	}, nil
}

func serve(uc *fakeUseCase, body string, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/public/clinics/{slug}/appointments",
		middleware.OptionalAuth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/public/clinics/centro/appointments", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"startAt":"2026-02-23T10:00:00-03:00","professionalId":1,"patientFullName":"Ana Lopez","patientPhone":"+54 11 4444"}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, validBody, "500")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.last.PatientID)
	assert.Equal(t, int64(500), *uc.last.PatientID)
	assert.Equal(t, "centro", uc.last.ClinicSlug)
	assert.True(t, time.Date(2026, 2, 23, 13, 0, 0, 0, time.UTC).Equal(uc.last.StartAt))

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-02-23T13:00:00Z", body.StartAt)
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandle_AnonymousPatient(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, validBody, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.last.PatientID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed json", `{"startAt":`, nil, http.StatusBadRequest},
		{"unknown field", `{"startAt":"2026-02-23T10:00:00-03:00","extra":1}`, nil, http.StatusBadRequest},
		{"bad start", `{"startAt":"2026-02-23 10:00"}`, nil, http.StatusBadRequest},
		{"slot taken", validBody, createBooking.ErrSlotUnavailable, http.StatusConflict},
		{"clinic not found", validBody, createBooking.ErrClinicNotFound, http.StatusNotFound},
		{"invalid filter", validBody, createBooking.ErrInvalidFilter, http.StatusBadRequest},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"configuration", validBody, createBooking.ErrConfiguration, http.StatusInternalServerError},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
