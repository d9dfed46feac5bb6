package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/availability"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
	"github.com/m04kA/ClinicBookingService/pkg/ptr"
)

type fakeClinics struct {
	clinic *domain.Clinic
	err    error
}

func (f *fakeClinics) GetBySlug(_ context.Context, slug string) (*domain.Clinic, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.clinic == nil || f.clinic.Slug != slug {
		return nil, clinicRepo.ErrClinicNotFound
	}
	return f.clinic, nil
}

type fakeAvailability struct {
	result *availability.Result
	err    error
	last   availability.Query
}

func (f *fakeAvailability) ListAvailableSlots(_ context.Context, q availability.Query) (*availability.Result, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func centro() *domain.Clinic {
	return &domain.Clinic{ID: 10, Slug: "centro", Timezone: domain.DefaultTimezone}
}

func TestExecute_ResolvesClinicLocalWindow(t *testing.T) {
	start := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	avail := &fakeAvailability{result: &availability.Result{
		Mode:  availability.ModeProfessional,
		Slots: []domain.Slot{{StartAt: start, EndAt: start.Add(30 * time.Minute), ProfessionalID: ptr.Ptr(int64(1))}},
	}}
	uc := NewUseCase(&fakeClinics{clinic: centro()}, avail, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		ClinicSlug:     " centro ",
		From:           "2026-02-23",
		To:             "2026-02-24",
		ProfessionalID: ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)

	// Полночь в Буэнос-Айресе (UTC-3)
	assert.True(t, time.Date(2026, 2, 23, 3, 0, 0, 0, time.UTC).Equal(avail.last.From))
	assert.True(t, time.Date(2026, 2, 24, 3, 0, 0, 0, time.UTC).Equal(avail.last.To))
	assert.Equal(t, ptr.Ptr(int64(1)), avail.last.ProfessionalID)

	assert.Equal(t, int64(10), resp.ClinicID)
	assert.Equal(t, availability.ModeProfessional, resp.Mode)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, start, resp.Slots[0].StartAt)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		clinics  *fakeClinics
		availErr error
		req      Request
		want     error
	}{
		{
			name:    "missing dates",
			clinics: &fakeClinics{clinic: centro()},
			req:     Request{ClinicSlug: "centro"},
			want:    ErrInvalidInput,
		},
		{
			name:    "malformed date",
			clinics: &fakeClinics{clinic: centro()},
			req:     Request{ClinicSlug: "centro", From: "23/02/2026", To: "2026-02-24"},
			want:    ErrInvalidInput,
		},
		{
			name:    "unknown clinic",
			clinics: &fakeClinics{clinic: centro()},
			req:     Request{ClinicSlug: "norte", From: "2026-02-23", To: "2026-02-24"},
			want:    ErrClinicNotFound,
		},
		{
			name:    "clinic repository failure",
			clinics: &fakeClinics{err: errors.New("db down")},
			req:     Request{ClinicSlug: "centro", From: "2026-02-23", To: "2026-02-24"},
			want:    ErrInternal,
		},
		{
			name:    "broken timezone",
			clinics: &fakeClinics{clinic: &domain.Clinic{ID: 10, Slug: "centro", Timezone: "Mars/Olympus"}},
			req:     Request{ClinicSlug: "centro", From: "2026-02-23", To: "2026-02-24"},
			want:    ErrConfiguration,
		},
		{
			name:     "invalid filter",
			clinics:  &fakeClinics{clinic: centro()},
			availErr: availability.ErrInvalidFilter,
			req:      Request{ClinicSlug: "centro", From: "2026-02-23", To: "2026-02-24"},
			want:     ErrInvalidFilter,
		},
		{
			name:     "invalid window",
			clinics:  &fakeClinics{clinic: centro()},
			availErr: availability.ErrInvalidWindow,
			req:      Request{ClinicSlug: "centro", From: "2026-02-24", To: "2026-02-23"},
			want:     ErrInvalidWindow,
		},
		{
			name:     "storage failure",
			clinics:  &fakeClinics{clinic: centro()},
			availErr: availability.ErrInternal,
			req:      Request{ClinicSlug: "centro", From: "2026-02-23", To: "2026-02-24"},
			want:     ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.clinics, &fakeAvailability{err: tt.availErr}, logger.NewNop())
			req := tt.req
			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
