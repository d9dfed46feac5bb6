package reminders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	reminderRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/reminder"
)

const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"

	maxErrorMessageLength = 500
)

// DispatcherConfig параметры цикла отправки
type DispatcherConfig struct {
	PollInterval time.Duration
	BatchSize    uint64
}

// Dispatcher периодически отправляет наступившие напоминания
//
// Владелец вызывает Start один раз и Stop при завершении. Несколько экземпляров
// сервиса могут работать одновременно: напоминание забирает тот, кто первым
// переведет его из scheduled в sending.
type Dispatcher struct {
	reminderRepo ReminderRepository
	sender       Sender
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
	cfg          DispatcherConfig

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher создает диспетчер. metrics может быть nil
func NewDispatcher(
	reminderRepo ReminderRepository,
	sender Sender,
	metrics MetricsCollector,
	timeProvider TimeProvider,
	logger Logger,
	cfg DispatcherConfig,
) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = domain.DefaultReminderPollSeconds * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = domain.DefaultReminderBatchSize
	}

	return &Dispatcher{
		reminderRepo: reminderRepo,
		sender:       sender,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// Start запускает цикл в отдельной горутине
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return ErrAlreadyStarted
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	go d.loop(loopCtx, d.done)

	d.logger.Info("Reminder dispatcher started (interval=%s, batch=%d)", d.cfg.PollInterval, d.cfg.BatchSize)
	return nil
}

// Stop останавливает цикл и ждет завершения текущей итерации
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	d.logger.Info("Reminder dispatcher stopped")
}

func (d *Dispatcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
			d.logger.Error("Reminder dispatcher: iteration failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce обрабатывает одну пачку наступивших напоминаний и возвращает число отправленных
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	ids, err := d.reminderRepo.FindDueIDs(ctx, d.timeProvider.Now(), d.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if d.dispatch(ctx, id) {
			sent++
		}
	}

	return sent, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, id int64) bool {
	rem, err := d.reminderRepo.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, reminderRepo.ErrNotLocked) {
			// забрал другой экземпляр или запись отменили
			d.observe("", ResultSkipped)
			return false
		}
		d.logger.Error("Reminder dispatcher: failed to lock reminder=%d: %v", id, err)
		return false
	}

	if err := d.sender.Send(ctx, rem); err != nil {
		d.logger.Warn("Reminder dispatcher: failed to send reminder=%d channel=%s: %v", rem.ID, rem.Channel, err)
		if markErr := d.reminderRepo.MarkFailed(ctx, rem.ID, truncate(err.Error(), maxErrorMessageLength)); markErr != nil {
			d.logger.Error("Reminder dispatcher: failed to mark reminder=%d as failed: %v", rem.ID, markErr)
		}
		d.observe(rem.Channel, ResultFailed)
		return false
	}

	if err := d.reminderRepo.MarkSent(ctx, rem.ID, d.timeProvider.Now()); err != nil {
		d.logger.Error("Reminder dispatcher: reminder=%d sent but not marked: %v", rem.ID, err)
	}
	d.observe(rem.Channel, ResultSent)
	return true
}

func (d *Dispatcher) observe(channel domain.ReminderChannel, result string) {
	if d.metrics != nil {
		d.metrics.IncReminderDispatched(string(channel), result)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
