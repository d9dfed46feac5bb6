package delete_time_off

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
)

type fakeService struct {
	err     error
	deleted []int64
}

func (f *fakeService) DeleteTimeOff(_ context.Context, _, _, timeOffID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, timeOffID)
	return nil
}

func serve(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/clinic/professionals/{professionalId}/timeoff/{timeOffId}",
		middleware.ClinicAuth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set(middleware.HeaderClinicID, "10")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/clinic/professionals/3/timeoff/9")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{9}, svc.deleted)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/clinic/professionals/3/timeoff/x").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrTimeOffNotFound}, "/clinic/professionals/3/timeoff/9").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedule.ErrProfessionalNotFound}, "/clinic/professionals/3/timeoff/9").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: schedule.ErrInternal}, "/clinic/professionals/3/timeoff/9").Code)
}
