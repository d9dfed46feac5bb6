package reminder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/psqlbuilder"
)

const tableName = "reminders"

var columns = []string{
	"id",
	"clinic_id",
	"patient_id",
	"appointment_id",
	"rule_id",
	"channel",
	"scheduled_for",
	"status",
	"idempotency_key",
	"payload",
	"error_message",
	"sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий напоминаний о приеме
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfNotExists создает напоминание
// Возвращает false, если такое напоминание (запись, правило, канал, время) уже есть
func (r *Repository) CreateIfNotExists(ctx context.Context, rem *domain.Reminder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(rem.Payload)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists: %v", ErrEncode, err)
	}

	status := rem.Status
	if status == "" {
		status = domain.ReminderScheduled
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"clinic_id",
			"patient_id",
			"appointment_id",
			"rule_id",
			"channel",
			"scheduled_for",
			"status",
			"idempotency_key",
			"payload",
		).
		Values(
			rem.ClinicID,
			rem.PatientID,
			rem.AppointmentID,
			rem.RuleID,
			rem.Channel,
			rem.ScheduledFor.UTC(),
			status,
			rem.IdempotencyKey,
			payload,
		).
		Suffix("ON CONFLICT (appointment_id, rule_id, channel, scheduled_for) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rem.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfNotExists - execute insert: %v", ErrExecQuery, err)
	}

	rem.Status = status
	return true, nil
}

// CancelPending отменяет неотправленные напоминания записи (scheduled и failed)
func (r *Repository) CancelPending(ctx context.Context, appointmentID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.ReminderCanceled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"status":         []domain.ReminderStatus{domain.ReminderScheduled, domain.ReminderFailed},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPending - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPending - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// FindDueIDs возвращает ID напоминаний, время которых наступило, по возрастанию времени
func (r *Repository) FindDueIDs(ctx context.Context, now time.Time, limit uint64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindDue(now, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindDueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindDueIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: FindDueIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindDueIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Lock переводит напоминание scheduled -> sending и возвращает его
// Если напоминание уже не в статусе scheduled, возвращает ErrNotLocked
func (r *Repository) Lock(ctx context.Context, id int64) (*domain.Reminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildLock(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Lock - build update query: %v", ErrBuildQuery, err)
	}

	rem, err := scanReminder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotLocked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Lock - scan reminder: %v", ErrScanRow, err)
	}

	return rem, nil
}

func buildFindDue(now time.Time, limit uint64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{"status": domain.ReminderScheduled}).
		Where(squirrel.LtOrEq{"scheduled_for": now.UTC()}).
		OrderBy("scheduled_for ASC").
		Limit(limit)
}

// buildLock захватывает только напоминание в статусе scheduled
func buildLock(id int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("status", domain.ReminderSending).
		Set("error_message", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReminderScheduled}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

// MarkSent sending -> sent
func (r *Repository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return r.finish(ctx, "MarkSent", id, map[string]interface{}{
		"status":        domain.ReminderSent,
		"sent_at":       sentAt.UTC(),
		"error_message": nil,
	})
}

// MarkFailed sending -> failed с текстом ошибки
func (r *Repository) MarkFailed(ctx context.Context, id int64, message string) error {
	return r.finish(ctx, "MarkFailed", id, map[string]interface{}{
		"status":        domain.ReminderFailed,
		"error_message": message,
	})
}

func (r *Repository) finish(ctx context.Context, op string, id int64, set map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		SetMap(set).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReminderSending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner) (*domain.Reminder, error) {
	var rem domain.Reminder
	var payload []byte
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&rem.ID,
		&rem.ClinicID,
		&rem.PatientID,
		&rem.AppointmentID,
		&rem.RuleID,
		&rem.Channel,
		&rem.ScheduledFor,
		&rem.Status,
		&rem.IdempotencyKey,
		&payload,
		&rem.ErrorMessage,
		&rem.SentAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payload, &rem.Payload); err != nil {
		return nil, err
	}

	rem.CreatedAt = createdAt.Time
	rem.UpdatedAt = updatedAt.Time

	return &rem, nil
}
