package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	professionalRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/professional"
	scheduleRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
	"github.com/m04kA/ClinicBookingService/pkg/ptr"
	"github.com/m04kA/ClinicBookingService/pkg/types"
)

type fakeProfessionals struct{}

func (fakeProfessionals) GetByID(_ context.Context, clinicID, professionalID int64) (*domain.Professional, error) {
	if clinicID == 10 && professionalID == 1 {
		return &domain.Professional{ID: 1, ClinicID: 10, DisplayName: "Dr. Ruiz", IsActive: true}, nil
	}
	return nil, professionalRepo.ErrProfessionalNotFound
}

type fakeClinics struct{}

func (fakeClinics) GetByID(_ context.Context, id int64) (*domain.Clinic, error) {
	if id == 10 {
		return &domain.Clinic{ID: 10, SlotDurationMinutes: 20, Timezone: domain.DefaultTimezone}, nil
	}
	return nil, clinicRepo.ErrClinicNotFound
}

type fakeSchedule struct {
	blocks    []*domain.WeeklyAvailabilityBlock
	timeOff   []*domain.TimeOffException
	nextID    int64
	insertErr error
}

func (f *fakeSchedule) FindBlocksByProfessional(_ context.Context, _, _ int64) ([]*domain.WeeklyAvailabilityBlock, error) {
	return f.blocks, nil
}

func (f *fakeSchedule) ReplaceBlocks(_ context.Context, _, _ int64, blocks []*domain.WeeklyAvailabilityBlock) error {
	f.blocks = nil
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, b := range blocks {
		f.nextID++
		cp := *b
		cp.ID = f.nextID
		f.blocks = append(f.blocks, &cp)
	}
	return nil
}

func (f *fakeSchedule) FindTimeOffByProfessional(_ context.Context, _, _ int64) ([]*domain.TimeOffException, error) {
	return f.timeOff, nil
}

func (f *fakeSchedule) CreateTimeOff(_ context.Context, t *domain.TimeOffException) (*domain.TimeOffException, error) {
	f.nextID++
	t.ID = f.nextID
	f.timeOff = append(f.timeOff, t)
	return t, nil
}

func (f *fakeSchedule) DeleteTimeOff(_ context.Context, _, _, timeOffID int64) error {
	for i, t := range f.timeOff {
		if t.ID == timeOffID {
			f.timeOff = append(f.timeOff[:i], f.timeOff[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrTimeOffNotFound
}

// fakeTx откатывает блоки, если fn вернула ошибку
type fakeTx struct {
	schedule *fakeSchedule
	calls    int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	snapshot := append([]*domain.WeeklyAvailabilityBlock(nil), f.schedule.blocks...)
	if err := fn(ctx); err != nil {
		f.schedule.blocks = snapshot
		return err
	}
	return nil
}

func newTestService() (*Service, *fakeSchedule, *fakeTx) {
	sched := &fakeSchedule{}
	tx := &fakeTx{schedule: sched}
	return NewService(fakeProfessionals{}, fakeClinics{}, sched, tx, logger.NewNop()), sched, tx
}

func TestPutAvailability_ReplacesBlocks(t *testing.T) {
	svc, sched, tx := newTestService()
	sched.blocks = []*domain.WeeklyAvailabilityBlock{{ID: 100, Weekday: 3, StartTime: "08:00", EndTime: "09:00", SlotMinutes: 30}}

	resp, err := svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{
		ClinicID:       10,
		ProfessionalID: 1,
		Blocks: []models.BlockInput{
			{Weekday: 1, StartTime: "09:00", EndTime: "12:00", SlotMinutes: ptr.Ptr(30)},
			{Weekday: 2, StartTime: "14:00", EndTime: "18:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, resp.Blocks, 2)
	assert.Equal(t, 30, resp.Blocks[0].SlotMinutes)
	// длительность по умолчанию берется из клиники
	assert.Equal(t, 20, resp.Blocks[1].SlotMinutes)
	assert.True(t, resp.Blocks[1].IsActive)
	assert.Equal(t, "Dr. Ruiz", resp.DisplayName)
}

func TestPutAvailability_EmptyClearsSchedule(t *testing.T) {
	svc, sched, _ := newTestService()
	sched.blocks = []*domain.WeeklyAvailabilityBlock{{ID: 100, Weekday: 3, StartTime: "08:00", EndTime: "09:00", SlotMinutes: 30}}

	resp, err := svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{ClinicID: 10, ProfessionalID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Blocks)
	assert.NotNil(t, resp.Blocks)
}

func TestPutAvailability_FailedInsertKeepsOldBlocks(t *testing.T) {
	svc, sched, _ := newTestService()
	old := &domain.WeeklyAvailabilityBlock{ID: 100, Weekday: 3, StartTime: "08:00", EndTime: "09:00", SlotMinutes: 30}
	sched.blocks = []*domain.WeeklyAvailabilityBlock{old}
	sched.insertErr = errors.New("insert failed")

	_, err := svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{
		ClinicID:       10,
		ProfessionalID: 1,
		Blocks:         []models.BlockInput{{Weekday: 1, StartTime: "09:00", EndTime: "12:00"}},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []*domain.WeeklyAvailabilityBlock{old}, sched.blocks)
}

func TestPutAvailability_Validation(t *testing.T) {
	tests := []struct {
		name  string
		block models.BlockInput
	}{
		{name: "weekday too big", block: models.BlockInput{Weekday: 7, StartTime: "09:00", EndTime: "10:00"}},
		{name: "negative weekday", block: models.BlockInput{Weekday: -1, StartTime: "09:00", EndTime: "10:00"}},
		{name: "bad start", block: models.BlockInput{Weekday: 1, StartTime: "9am", EndTime: "10:00"}},
		{name: "bad end", block: models.BlockInput{Weekday: 1, StartTime: "09:00", EndTime: "25:00"}},
		{name: "end before start", block: models.BlockInput{Weekday: 1, StartTime: "10:00", EndTime: "09:00"}},
		{name: "empty block", block: models.BlockInput{Weekday: 1, StartTime: "10:00", EndTime: "10:00"}},
		{name: "slot too short", block: models.BlockInput{Weekday: 1, StartTime: "09:00", EndTime: "10:00", SlotMinutes: ptr.Ptr(4)}},
		{name: "slot too long", block: models.BlockInput{Weekday: 1, StartTime: "09:00", EndTime: "10:00", SlotMinutes: ptr.Ptr(181)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, tx := newTestService()

			_, err := svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{
				ClinicID:       10,
				ProfessionalID: 1,
				Blocks:         []models.BlockInput{tt.block},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestPutAvailability_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{ClinicID: 99, ProfessionalID: 1})
	assert.ErrorIs(t, err, ErrClinicNotFound)

	_, err = svc.PutAvailability(context.Background(), &models.PutAvailabilityRequest{ClinicID: 10, ProfessionalID: 2})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestGetProfessionalSchedule(t *testing.T) {
	svc, sched, _ := newTestService()
	sched.blocks = []*domain.WeeklyAvailabilityBlock{{ID: 1, Weekday: 1, StartTime: "09:00", EndTime: "12:00", SlotMinutes: 30, IsActive: true}}
	sched.timeOff = []*domain.TimeOffException{{ID: 2, Date: "2026-02-23", StartTime: ptr.Ptr(types.TimeString("10:00")), EndTime: ptr.Ptr(types.TimeString("10:30"))}}

	resp, err := svc.GetProfessionalSchedule(context.Background(), 10, 1)
	require.NoError(t, err)

	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "09:00", resp.Blocks[0].StartTime)
	require.Len(t, resp.TimeOff, 1)
	assert.Equal(t, "10:30", *resp.TimeOff[0].EndTime)

	_, err = svc.GetProfessionalSchedule(context.Background(), 20, 1)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestCreateTimeOff(t *testing.T) {
	svc, sched, _ := newTestService()

	resp, err := svc.CreateTimeOff(context.Background(), &models.CreateTimeOffRequest{
		ClinicID: 10, ProfessionalID: 1, Date: "2026-02-23", Reason: ptr.Ptr("  congress  "),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.StartTime)
	assert.Equal(t, "congress", *resp.Reason)
	require.Len(t, sched.timeOff, 1)
	assert.True(t, sched.timeOff[0].IsWholeDay())

	resp, err = svc.CreateTimeOff(context.Background(), &models.CreateTimeOffRequest{
		ClinicID: 10, ProfessionalID: 1, Date: "2026-02-24", StartTime: ptr.Ptr("10:00"), EndTime: ptr.Ptr("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", *resp.StartTime)
}

func TestCreateTimeOff_Validation(t *testing.T) {
	long := make([]rune, domain.MaxTimeOffReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name string
		req  models.CreateTimeOffRequest
	}{
		{name: "bad date", req: models.CreateTimeOffRequest{Date: "2026-13-01"}},
		{name: "only start", req: models.CreateTimeOffRequest{Date: "2026-02-23", StartTime: ptr.Ptr("10:00")}},
		{name: "only end", req: models.CreateTimeOffRequest{Date: "2026-02-23", EndTime: ptr.Ptr("10:00")}},
		{name: "end before start", req: models.CreateTimeOffRequest{Date: "2026-02-23", StartTime: ptr.Ptr("11:00"), EndTime: ptr.Ptr("10:00")}},
		{name: "reason too long", req: models.CreateTimeOffRequest{Date: "2026-02-23", Reason: ptr.Ptr(string(long))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sched, _ := newTestService()
			req := tt.req
			req.ClinicID, req.ProfessionalID = 10, 1

			_, err := svc.CreateTimeOff(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, sched.timeOff)
		})
	}
}

func TestDeleteTimeOff(t *testing.T) {
	svc, sched, _ := newTestService()
	sched.timeOff = []*domain.TimeOffException{{ID: 5, Date: "2026-02-23"}}

	require.NoError(t, svc.DeleteTimeOff(context.Background(), 10, 1, 5))
	assert.Empty(t, sched.timeOff)

	assert.ErrorIs(t, svc.DeleteTimeOff(context.Background(), 10, 1, 5), ErrTimeOffNotFound)
}
