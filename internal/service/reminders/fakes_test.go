package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	professionalRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/professional"
	reminderRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/reminder"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeClinics struct {
	settings *domain.NotificationSettings
	err      error
}

func (f *fakeClinics) GetNotificationSettings(_ context.Context, _ int64) (*domain.NotificationSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, clinicRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeProfessionals struct{}

func (fakeProfessionals) GetByID(_ context.Context, _ int64, professionalID int64) (*domain.Professional, error) {
	if professionalID == 1 {
		return &domain.Professional{ID: 1, DisplayName: "Dr. Ruiz", IsActive: true}, nil
	}
	return nil, professionalRepo.ErrProfessionalNotFound
}

type reminderKey struct {
	appointmentID int64
	ruleID        string
	channel       domain.ReminderChannel
	scheduledFor  int64
}

type fakeReminders struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]*domain.Reminder
	keys      map[reminderKey]int64
	createErr error
	findErr   error
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{items: make(map[int64]*domain.Reminder), keys: make(map[reminderKey]int64)}
}

func (f *fakeReminders) CreateIfNotExists(_ context.Context, rem *domain.Reminder) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return false, f.createErr
	}
	key := reminderKey{rem.AppointmentID, rem.RuleID, rem.Channel, rem.ScheduledFor.UnixMilli()}
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.nextID++
	rem.ID = f.nextID
	cp := *rem
	f.items[rem.ID] = &cp
	f.keys[key] = rem.ID
	return true, nil
}

func (f *fakeReminders) CancelPending(_ context.Context, appointmentID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.items {
		if r.AppointmentID == appointmentID && (r.Status == domain.ReminderScheduled || r.Status == domain.ReminderFailed) {
			r.Status = domain.ReminderCanceled
			n++
		}
	}
	return n, nil
}

func (f *fakeReminders) FindDueIDs(_ context.Context, now time.Time, limit uint64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	ids := make([]int64, 0)
	for id := int64(1); id <= f.nextID; id++ {
		r, ok := f.items[id]
		if !ok || r.Status != domain.ReminderScheduled || r.ScheduledFor.After(now) {
			continue
		}
		ids = append(ids, id)
		if uint64(len(ids)) == limit {
			break
		}
	}
	return ids, nil
}

func (f *fakeReminders) Lock(_ context.Context, id int64) (*domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok || r.Status != domain.ReminderScheduled {
		return nil, reminderRepo.ErrNotLocked
	}
	r.Status = domain.ReminderSending
	cp := *r
	return &cp, nil
}

func (f *fakeReminders) MarkSent(_ context.Context, id int64, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.items[id]
	r.Status = domain.ReminderSent
	r.SentAt = &sentAt
	return nil
}

func (f *fakeReminders) MarkFailed(_ context.Context, id int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.items[id]
	r.Status = domain.ReminderFailed
	r.ErrorMessage = &message
	return nil
}

func (f *fakeReminders) statuses() map[domain.ReminderStatus]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[domain.ReminderStatus]int)
	for _, r := range f.items {
		out[r.Status]++
	}
	return out
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []*domain.Reminder
	failFor map[domain.ReminderChannel]error
}

func (f *fakeSender) Send(_ context.Context, rem *domain.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[rem.Channel]; err != nil {
		return err
	}
	f.sent = append(f.sent, rem)
	return nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fakeMetrics) IncReminderDispatched(channel, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[channel+"/"+result]++
}
