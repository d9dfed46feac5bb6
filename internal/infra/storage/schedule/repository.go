package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/psqlbuilder"
)

const (
	availabilityTable = "professional_availability"
	timeOffTable      = "professional_time_off"
)

var blockColumns = []string{
	"id",
	"clinic_id",
	"professional_id",
	"weekday",
	"start_time",
	"end_time",
	"slot_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var timeOffColumns = []string{
	"id",
	"clinic_id",
	"professional_id",
	"date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий недельного расписания специалистов и исключений из него
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindActiveBlocksByProfessionals получает активные блоки расписания специалистов
// Порядок: специалист, день недели, время начала
func (r *Repository) FindActiveBlocksByProfessionals(ctx context.Context, clinicID int64, professionalIDs []int64) ([]*domain.WeeklyAvailabilityBlock, error) {
	if len(professionalIDs) == 0 {
		return []*domain.WeeklyAvailabilityBlock{}, nil
	}

	return r.findBlocks(ctx, "FindActiveBlocksByProfessionals", squirrel.Eq{
		"clinic_id":       clinicID,
		"professional_id": professionalIDs,
		"is_active":       true,
	})
}

// FindBlocksByProfessional получает все блоки специалиста, включая неактивные
func (r *Repository) FindBlocksByProfessional(ctx context.Context, clinicID, professionalID int64) ([]*domain.WeeklyAvailabilityBlock, error) {
	return r.findBlocks(ctx, "FindBlocksByProfessional", squirrel.Eq{
		"clinic_id":       clinicID,
		"professional_id": professionalID,
	})
}

func (r *Repository) findBlocks(ctx context.Context, op string, where squirrel.Eq) ([]*domain.WeeklyAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(availabilityTable).
		Where(where).
		OrderBy("professional_id ASC", "weekday ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocks := make([]*domain.WeeklyAvailabilityBlock, 0)
	for rows.Next() {
		var b domain.WeeklyAvailabilityBlock
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&b.ID,
			&b.ClinicID,
			&b.ProfessionalID,
			&b.Weekday,
			&b.StartTime,
			&b.EndTime,
			&b.SlotMinutes,
			&b.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan block: %v", ErrScanRow, op, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return blocks, nil
}

// ReplaceBlocks удаляет все блоки специалиста и вставляет новые
// Вызывать внутри транзакции, иначе читатели могут увидеть пустое расписание
func (r *Repository) ReplaceBlocks(ctx context.Context, clinicID, professionalID int64, blocks []*domain.WeeklyAvailabilityBlock) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(availabilityTable).
		Where(squirrel.Eq{"clinic_id": clinicID, "professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - execute delete: %v", ErrExecQuery, err)
	}

	if len(blocks) == 0 {
		return nil
	}

	query, args, err = buildInsertBlocks(clinicID, professionalID, blocks).ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBlocks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func buildInsertBlocks(clinicID, professionalID int64, blocks []*domain.WeeklyAvailabilityBlock) squirrel.InsertBuilder {
	insert := psqlbuilder.Insert(availabilityTable).
		Columns("clinic_id", "professional_id", "weekday", "start_time", "end_time", "slot_minutes", "is_active")

	for _, b := range blocks {
		insert = insert.Values(clinicID, professionalID, b.Weekday, b.StartTime, b.EndTime, b.SlotMinutes, b.IsActive)
	}

	return insert
}

// FindTimeOffByProfessionals получает исключения специалистов на даты [fromDate, toDate]
// Даты хранятся строкой YYYY-MM-DD, поэтому сравнение строк совпадает с календарным
func (r *Repository) FindTimeOffByProfessionals(ctx context.Context, clinicID int64, professionalIDs []int64, fromDate, toDate string) ([]*domain.TimeOffException, error) {
	if len(professionalIDs) == 0 {
		return []*domain.TimeOffException{}, nil
	}

	selectBuilder := psqlbuilder.Select(timeOffColumns...).
		From(timeOffTable).
		Where(squirrel.Eq{"clinic_id": clinicID, "professional_id": professionalIDs}).
		OrderBy("professional_id ASC", "date ASC")

	if fromDate != "" {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": fromDate})
	}
	if toDate != "" {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": toDate})
	}

	return r.findTimeOff(ctx, "FindTimeOffByProfessionals", selectBuilder)
}

// FindTimeOffByProfessional получает все исключения специалиста
func (r *Repository) FindTimeOffByProfessional(ctx context.Context, clinicID, professionalID int64) ([]*domain.TimeOffException, error) {
	selectBuilder := psqlbuilder.Select(timeOffColumns...).
		From(timeOffTable).
		Where(squirrel.Eq{"clinic_id": clinicID, "professional_id": professionalID}).
		OrderBy("date ASC", "start_time ASC NULLS FIRST")

	return r.findTimeOff(ctx, "FindTimeOffByProfessional", selectBuilder)
}

func (r *Repository) findTimeOff(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.TimeOffException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.TimeOffException, 0)
	for rows.Next() {
		var t domain.TimeOffException
		var createdAt sql.NullTime

		if err := rows.Scan(
			&t.ID,
			&t.ClinicID,
			&t.ProfessionalID,
			&t.Date,
			&t.StartTime,
			&t.EndTime,
			&t.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan time off: %v", ErrScanRow, op, err)
		}

		t.CreatedAt = createdAt.Time
		items = append(items, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}

// CreateTimeOff создает исключение расписания
func (r *Repository) CreateTimeOff(ctx context.Context, t *domain.TimeOffException) (*domain.TimeOffException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(timeOffTable).
		Columns("clinic_id", "professional_id", "date", "start_time", "end_time", "reason").
		Values(t.ClinicID, t.ProfessionalID, t.Date, t.StartTime, t.EndTime, t.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %v", ErrExecQuery, err)
	}
	t.CreatedAt = createdAt.Time

	return t, nil
}

// DeleteTimeOff удаляет исключение специалиста клиники
func (r *Repository) DeleteTimeOff(ctx context.Context, clinicID, professionalID, timeOffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(timeOffTable).
		Where(squirrel.Eq{"id": timeOffID, "clinic_id": clinicID, "professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeOff - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}
