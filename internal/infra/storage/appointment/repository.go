package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// uniqueViolation код PostgreSQL 23505
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"clinic_id",
	"professional_id",
	"specialty_id",
	"patient_id",
	"patient_full_name",
	"patient_phone",
	"note",
	"start_at",
	"end_at",
	"status",
	"previous_appointment_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает подтвержденную запись
// Гонку двух пациентов за один слот разрешает уникальный индекс: проигравший получает ErrDuplicateAppointment
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsert(appt).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAppointment
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

func buildInsert(appt *domain.Appointment) squirrel.InsertBuilder {
	status := appt.Status
	if status == "" {
		status = domain.StatusConfirmed
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"clinic_id",
			"professional_id",
			"specialty_id",
			"patient_id",
			"patient_full_name",
			"patient_phone",
			"note",
			"start_at",
			"end_at",
			"status",
			"previous_appointment_id",
		).
		Values(
			appt.ClinicID,
			appt.ProfessionalID,
			appt.SpecialtyID,
			appt.PatientID,
			appt.PatientFullName,
			appt.PatientPhone,
			appt.Note,
			appt.StartAt.UTC(),
			appt.EndAt.UTC(),
			status,
			appt.PreviousAppointmentID,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// FindConfirmed возвращает подтвержденные записи клиники, начинающиеся в окне [From, To)
// professionalID = nil означает все записи клиники
func (r *Repository) FindConfirmed(ctx context.Context, clinicID int64, window domain.TimeWindow, professionalID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindConfirmed(clinicID, window, professionalID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func buildFindConfirmed(clinicID int64, window domain.TimeWindow, professionalID *int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"clinic_id": clinicID, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"start_at": window.From.UTC()}).
		Where(squirrel.Lt{"start_at": window.To.UTC()}).
		OrderBy("start_at ASC")

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	return selectBuilder
}

// ExistsConfirmed проверяет, есть ли подтвержденная запись на (клиника, начало, специалист)
// professionalID = nil проверяет записи без специалиста (legacy-режим)
func (r *Repository) ExistsConfirmed(ctx context.Context, clinicID int64, startAt time.Time, professionalID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildExistsConfirmed(clinicID, startAt, professionalID).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// buildExistsConfirmed nil-указатель professionalID squirrel превращает в IS NULL
func buildExistsConfirmed(clinicID int64, startAt time.Time, professionalID *int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{
			"clinic_id":       clinicID,
			"start_at":        startAt.UTC(),
			"status":          domain.StatusConfirmed,
			"professional_id": professionalID,
		}).
		Limit(1)
}

// MarkCancelled переводит подтвержденную запись в статус cancelled
func (r *Repository) MarkCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotConfirmed
	}

	return nil
}

// GetByPatientID получает записи пациента, сначала ближайшие
func (r *Repository) GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByClinicWithFilter получает записи клиники для админки
// Поддерживает фильтрацию по периоду [From, To), специалисту, статусу и подстроке телефона
func (r *Repository) GetByClinicWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildClinicFilter(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func buildClinicFilter(filter domain.AppointmentsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"clinic_id": filter.ClinicID}).
		OrderBy("start_at ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.To.UTC()})
	}
	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.PhoneQuery != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"patient_phone": "%" + filter.PhoneQuery + "%"})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	return selectBuilder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClinicID,
		&appt.ProfessionalID,
		&appt.SpecialtyID,
		&appt.PatientID,
		&appt.PatientFullName,
		&appt.PatientPhone,
		&appt.Note,
		&appt.StartAt,
		&appt.EndAt,
		&appt.Status,
		&appt.PreviousAppointmentID,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
