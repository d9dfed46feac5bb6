package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments/models"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
	"github.com/m04kA/ClinicBookingService/pkg/ptr"
)

type fakeAppointments struct {
	items      map[int64]*domain.Appointment
	lastFilter domain.AppointmentsFilter
	err        error
	cancelErr  error
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) GetByPatientID(_ context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if a.BelongsToPatient(patientID) && (status == nil || a.Status == *status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) GetByClinicWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Appointment{}, nil
}

func (f *fakeAppointments) MarkCancelled(_ context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	a := f.items[id]
	if !a.IsConfirmed() {
		return appointmentRepo.ErrNotConfirmed
	}
	a.Status = domain.StatusCancelled
	return nil
}

type fakeClinics struct{ clinic *domain.Clinic }

func (f *fakeClinics) GetByID(_ context.Context, id int64) (*domain.Clinic, error) {
	if f.clinic == nil || f.clinic.ID != id {
		return nil, clinicRepo.ErrClinicNotFound
	}
	return f.clinic, nil
}

type fakeReminders struct {
	cancelled []int64
	err       error
}

func (f *fakeReminders) CancelReminders(_ context.Context, appointmentID int64) (int64, error) {
	f.cancelled = append(f.cancelled, appointmentID)
	return 3, f.err
}

func newTestService() (*Service, *fakeAppointments, *fakeReminders) {
	start := time.Date(2026, 2, 23, 13, 0, 0, 0, time.UTC)
	appts := &fakeAppointments{items: map[int64]*domain.Appointment{
		1: {ID: 1, ClinicID: 10, PatientID: ptr.Ptr(int64(500)), StartAt: start, EndAt: start.Add(30 * time.Minute), Status: domain.StatusConfirmed},
		2: {ID: 2, ClinicID: 10, PatientID: ptr.Ptr(int64(500)), StartAt: start, EndAt: start.Add(30 * time.Minute), Status: domain.StatusCancelled},
		3: {ID: 3, ClinicID: 20, PatientID: ptr.Ptr(int64(600)), StartAt: start, EndAt: start.Add(30 * time.Minute), Status: domain.StatusConfirmed},
	}}
	clinics := &fakeClinics{clinic: &domain.Clinic{ID: 10, Timezone: domain.DefaultTimezone}}
	reminders := &fakeReminders{}
	return NewService(appts, clinics, reminders, logger.NewNop()), appts, reminders
}

func TestCancel_ByPatient(t *testing.T) {
	svc, appts, reminders := newTestService()

	resp, err := svc.Cancel(context.Background(), 1, models.Requester{PatientID: ptr.Ptr(int64(500))})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, appts.items[1].Status)
	assert.Equal(t, []int64{1}, reminders.cancelled)
}

func TestCancel_ByClinic(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Cancel(context.Background(), 1, models.Requester{ClinicID: ptr.Ptr(int64(10))})
	assert.NoError(t, err)
}

func TestCancel_Errors(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		requester models.Requester
		wantErr   error
	}{
		{name: "not found", id: 99, requester: models.Requester{PatientID: ptr.Ptr(int64(500))}, wantErr: ErrAppointmentNotFound},
		{name: "other patient", id: 1, requester: models.Requester{PatientID: ptr.Ptr(int64(600))}, wantErr: ErrAccessDenied},
		{name: "other clinic", id: 1, requester: models.Requester{ClinicID: ptr.Ptr(int64(20))}, wantErr: ErrAccessDenied},
		{name: "anonymous", id: 1, requester: models.Requester{}, wantErr: ErrAccessDenied},
		{name: "already cancelled", id: 2, requester: models.Requester{PatientID: ptr.Ptr(int64(500))}, wantErr: ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, reminders := newTestService()

			_, err := svc.Cancel(context.Background(), tt.id, tt.requester)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, reminders.cancelled)
		})
	}
}

func TestCancel_ConcurrentCancel(t *testing.T) {
	svc, appts, _ := newTestService()
	appts.cancelErr = appointmentRepo.ErrNotConfirmed

	_, err := svc.Cancel(context.Background(), 1, models.Requester{PatientID: ptr.Ptr(int64(500))})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ReminderFailureDoesNotFail(t *testing.T) {
	svc, appts, reminders := newTestService()
	reminders.err = errors.New("db down")

	_, err := svc.Cancel(context.Background(), 1, models.Requester{PatientID: ptr.Ptr(int64(500))})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, appts.items[1].Status)
}

func TestGetByID_Access(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 3, models.Requester{ClinicID: ptr.Ptr(int64(20))})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-23T13:00:00Z", resp.StartAt)

	_, err = svc.GetByID(context.Background(), 3, models.Requester{PatientID: ptr.Ptr(int64(500))})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPatientAppointments(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{PatientID: 500})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	resp, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{PatientID: 500, Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{PatientID: 500, Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClinicAppointments_ClinicLocalDates(t *testing.T) {
	svc, appts, _ := newTestService()

	resp, err := svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{
		ClinicID:       10,
		From:           "2026-02-23",
		To:             "2026-02-24",
		ProfessionalID: ptr.Ptr(int64(1)),
		Query:          " 4444 ",
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)

	f := appts.lastFilter
	assert.Equal(t, time.Date(2026, 2, 23, 3, 0, 0, 0, time.UTC), f.From.UTC())
	assert.Equal(t, time.Date(2026, 2, 24, 3, 0, 0, 0, time.UTC), f.To.UTC())
	assert.Equal(t, "4444", f.PhoneQuery)
	assert.Equal(t, int64(1), *f.ProfessionalID)
}

func TestGetClinicAppointments_Errors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{ClinicID: 99, From: "2026-02-23", To: "2026-02-24"})
	assert.ErrorIs(t, err, ErrClinicNotFound)

	_, err = svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{ClinicID: 10, From: "23/02/2026", To: "2026-02-24"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{ClinicID: 10, From: "2026-02-24", To: "2026-02-24"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
