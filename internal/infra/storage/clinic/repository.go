package clinic

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/psqlbuilder"
)

var clinicColumns = []string{
	"id",
	"slug",
	"name",
	"phone",
	"address",
	"timezone",
	"slot_duration_minutes",
	"weekly_schedule",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиник и их настроек уведомлений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиник
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает клинику по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Clinic, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// GetByID получает клинику по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSelectClinic(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Clinic
	var schedule []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&c.Phone,
		&c.Address,
		&c.Timezone,
		&c.SlotDurationMinutes,
		&schedule,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan clinic: %v", ErrScanRow, op, err)
	}

	if c.WeeklySchedule, err = decodeSchedule(schedule); err != nil {
		return nil, fmt.Errorf("%w: %s - weekly_schedule: %v", ErrDecode, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

func buildSelectClinic(where squirrel.Eq) squirrel.SelectBuilder {
	return psqlbuilder.Select(clinicColumns...).
		From("clinics").
		Where(where)
}

// decodeSchedule разбирает weekly_schedule; пустая колонка значит расписания нет
func decodeSchedule(raw []byte) ([]domain.DaySchedule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var days []domain.DaySchedule
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// GetNotificationSettings получает настройки напоминаний клиники
func (r *Repository) GetNotificationSettings(ctx context.Context, clinicID int64) (*domain.NotificationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("clinic_id", "reminders_enabled", "rules").
		From("clinic_notification_settings").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.NotificationSettings
	var rules []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ClinicID,
		&settings.RemindersEnabled,
		&rules,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationSettings - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(rules, &settings.Rules); err != nil {
		return nil, fmt.Errorf("%w: GetNotificationSettings - rules: %v", ErrDecode, err)
	}

	return &settings, nil
}

// CreateNotificationSettings сохраняет настройки, если их еще нет
// Повторный вызов не перезаписывает настройки, которые клиника уже поменяла
func (r *Repository) CreateNotificationSettings(ctx context.Context, settings *domain.NotificationSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rules, err := json.Marshal(settings.Rules)
	if err != nil {
		return fmt.Errorf("%w: CreateNotificationSettings - encode rules: %v", ErrDecode, err)
	}

	query, args, err := psqlbuilder.Insert("clinic_notification_settings").
		Columns("clinic_id", "reminders_enabled", "rules").
		Values(settings.ClinicID, settings.RemindersEnabled, rules).
		Suffix("ON CONFLICT (clinic_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateNotificationSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateNotificationSettings - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
