package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
	"github.com/m04kA/ClinicBookingService/pkg/ptr"
	"github.com/m04kA/ClinicBookingService/pkg/txmanager"
)

var (
	oldStart = time.Date(2026, 2, 23, 13, 0, 0, 0, time.UTC)
	newStart = time.Date(2026, 2, 24, 14, 30, 0, 0, time.UTC)
)

// fakeAppointments хранит записи в памяти и эмулирует уникальный индекс слота
type fakeAppointments struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Appointment
	nextID    int64
	createErr error
}

func newFakeAppointments() *fakeAppointments {
	f := &fakeAppointments{byID: make(map[int64]*domain.Appointment), nextID: 100}
	f.byID[1] = &domain.Appointment{
		ID:              1,
		ClinicID:        10,
		ProfessionalID:  ptr.Ptr(int64(3)),
		SpecialtyID:     ptr.Ptr(int64(7)),
		PatientID:       ptr.Ptr(int64(500)),
		PatientFullName: "Ana Lopez",
		PatientPhone:    "+54 11 4444",
		Note:            ptr.Ptr("control"),
		StartAt:         oldStart,
		EndAt:           oldStart.Add(30 * time.Minute),
		Status:          domain.StatusConfirmed,
	}
	return f
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) MarkCancelled(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if !a.IsConfirmed() {
		return appointmentRepo.ErrNotConfirmed
	}
	a.Status = domain.StatusCancelled
	return nil
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, a := range f.byID {
		if a.IsConfirmed() && a.SlotKey() == appt.SlotKey() {
			return nil, appointmentRepo.ErrDuplicateAppointment
		}
	}
	f.nextID++
	cp := *appt
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeAppointments) snapshot() map[int64]domain.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := make(map[int64]domain.Appointment, len(f.byID))
	for id, a := range f.byID {
		s[id] = *a
	}
	return s
}

func (f *fakeAppointments) restore(s map[int64]domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID = make(map[int64]*domain.Appointment, len(s))
	for id, a := range s {
		cp := a
		f.byID[id] = &cp
	}
}

// fakeTx откатывает состояние fakeAppointments при ошибке
type fakeTx struct {
	appts       *fakeAppointments
	rollbackErr bool
}

func (tx *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s := tx.appts.snapshot()
	if err := fn(ctx); err != nil {
		if tx.rollbackErr {
			return fmt.Errorf("%w: connection reset (original error: %v)", txmanager.ErrRollback, err)
		}
		tx.appts.restore(s)
		return err
	}
	return nil
}

type fakeClinics struct{}

func (fakeClinics) GetByID(_ context.Context, id int64) (*domain.Clinic, error) {
	if id == 10 {
		return &domain.Clinic{ID: 10, Slug: "centro", Timezone: domain.DefaultTimezone}, nil
	}
	return nil, clinicRepo.ErrClinicNotFound
}

type fakeGuard struct {
	err  error
	last conflictguard.CheckRequest

	// slotProfessional подменяет специалиста найденного слота
	slotProfessional *int64
}

func (f *fakeGuard) Check(_ context.Context, req conflictguard.CheckRequest) (*domain.Slot, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	professionalID := req.ProfessionalID
	if f.slotProfessional != nil {
		professionalID = f.slotProfessional
	}
	return &domain.Slot{StartAt: req.StartAt, EndAt: req.StartAt.Add(20 * time.Minute), ProfessionalID: professionalID}, nil
}

type fakeReminders struct {
	scheduled []int64
	cancelled []int64
	cancelErr error
}

func (f *fakeReminders) ScheduleReminders(_ context.Context, _ *domain.Clinic, appt *domain.Appointment) (int, error) {
	f.scheduled = append(f.scheduled, appt.ID)
	return 2, nil
}

func (f *fakeReminders) CancelReminders(_ context.Context, appointmentID int64) (int64, error) {
	f.cancelled = append(f.cancelled, appointmentID)
	return 2, f.cancelErr
}

type fakeMetrics struct {
	created   map[string]int
	conflicts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{created: map[string]int{}, conflicts: map[string]int{}}
}

func (f *fakeMetrics) IncBookingCreated(kind string)   { f.created[kind]++ }
func (f *fakeMetrics) IncBookingConflict(stage string) { f.conflicts[stage]++ }

type fixture struct {
	appts     *fakeAppointments
	tx        *fakeTx
	guard     *fakeGuard
	reminders *fakeReminders
	metrics   *fakeMetrics
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		appts:     newFakeAppointments(),
		guard:     &fakeGuard{},
		reminders: &fakeReminders{},
		metrics:   newFakeMetrics(),
	}
	f.tx = &fakeTx{appts: f.appts}
	f.uc = NewUseCase(f.appts, fakeClinics{}, f.guard, f.reminders, f.tx, f.metrics, logger.NewNop())
	return f
}

func validRequest() *Request {
	return &Request{PatientID: 500, AppointmentID: 1, StartAt: newStart}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.PreviousAppointmentID)
	assert.Equal(t, newStart, resp.StartAt)
	assert.Equal(t, newStart.Add(20*time.Minute), resp.EndAt)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)

	// Идентичность пациента и специалиста переносится без изменений
	assert.Equal(t, "Ana Lopez", resp.PatientFullName)
	assert.Equal(t, "+54 11 4444", resp.PatientPhone)
	assert.Equal(t, ptr.Ptr("control"), resp.Note)
	assert.Equal(t, ptr.Ptr(int64(500)), resp.PatientID)
	assert.Equal(t, ptr.Ptr(int64(3)), resp.ProfessionalID)
	assert.Equal(t, ptr.Ptr(int64(7)), resp.SpecialtyID)

	old, err := f.appts.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, old.Status)

	created, err := f.appts.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, created.PreviousAppointmentID)
	assert.Equal(t, int64(1), *created.PreviousAppointmentID)

	assert.Equal(t, ptr.Ptr(int64(3)), f.guard.last.ProfessionalID)
	assert.Equal(t, ptr.Ptr(int64(7)), f.guard.last.SpecialtyID)
	assert.Equal(t, []int64{1}, f.reminders.cancelled)
	assert.Equal(t, []int64{resp.ID}, f.reminders.scheduled)
	assert.Equal(t, 1, f.metrics.created[KindReschedule])
}

func TestExecute_LegacyAppointmentTakesSlotProfessional(t *testing.T) {
	f := newFixture()
	f.appts.byID[1].ProfessionalID = nil
	f.guard.slotProfessional = ptr.Ptr(int64(9))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Nil(t, f.guard.last.ProfessionalID)
	require.NotNil(t, resp.ProfessionalID)
	assert.Equal(t, int64(9), *resp.ProfessionalID)

	created, err := f.appts.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, ptr.Ptr(int64(9)), created.ProfessionalID)
}

func TestExecute_ReminderFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.reminders.cancelErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_OwnershipAndStatus(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.AppointmentID = 42
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("other patient", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.PatientID = 501
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.appts.MarkCancelled(context.Background(), 1))
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrNotConfirmed)
	})
}

func TestExecute_GuardErrors(t *testing.T) {
	tests := []struct {
		name     string
		guardErr error
		want     error
	}{
		{"unavailable", conflictguard.ErrSlotUnavailable, ErrSlotUnavailable},
		{"invalid filter", conflictguard.ErrInvalidFilter, ErrInvalidFilter},
		{"configuration", conflictguard.ErrConfiguration, ErrConfiguration},
		{"internal", conflictguard.ErrInternal, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.guard.err = tt.guardErr

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.want)

			old, _ := f.appts.GetByID(context.Background(), 1)
			assert.Equal(t, domain.StatusConfirmed, old.Status)
		})
	}
}

func TestExecute_InsertConflictRollsBack(t *testing.T) {
	f := newFixture()
	f.appts.createErr = appointmentRepo.ErrDuplicateAppointment

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 1, f.metrics.conflicts[StageInsert])

	old, err := f.appts.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, old.Status)
	assert.Empty(t, f.reminders.cancelled)
}

func TestExecute_RepositoryErrorIsInternal(t *testing.T) {
	f := newFixture()
	f.appts.createErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_RollbackFailureIsPartial(t *testing.T) {
	f := newFixture()
	f.tx.rollbackErr = true
	f.appts.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPartialReschedule)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PatientID: 500, AppointmentID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{PatientID: 0, AppointmentID: 1, StartAt: newStart})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
