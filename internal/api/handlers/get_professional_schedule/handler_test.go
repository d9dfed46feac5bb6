package get_professional_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	err                error
	lastClinicID       int64
	lastProfessionalID int64
}

func (f *fakeService) GetProfessionalSchedule(_ context.Context, clinicID, professionalID int64) (*models.ScheduleResponse, error) {
	f.lastClinicID = clinicID
	f.lastProfessionalID = professionalID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{
		ProfessionalID: professionalID,
		DisplayName:    "Dr. Ruiz",
		Blocks:         []models.BlockResponse{{ID: 1, Weekday: 1, StartTime: "09:00", EndTime: "13:00", SlotMinutes: 30, IsActive: true}},
		TimeOff:        []models.TimeOffResponse{},
	}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/clinic/professionals/{professionalId}/availability",
		middleware.ClinicAuth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderClinicID, "10")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/clinic/professionals/3/availability")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.lastClinicID)
	assert.Equal(t, int64(3), svc.lastProfessionalID)
	assert.Contains(t, rec.Body.String(), `"displayName":"Dr. Ruiz"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "invalid professional id", target: "/clinic/professionals/0/availability", want: http.StatusBadRequest},
		{name: "not found", target: "/clinic/professionals/3/availability", err: schedule.ErrProfessionalNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/clinic/professionals/3/availability", err: schedule.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.target).Code)
		})
	}
}
