package professional

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"clinic_id",
	"display_name",
	"specialty_ids",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий специалистов и специальностей клиники
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста клиники. Специалист другой клиники считается не найденным
func (r *Repository) GetByID(ctx context.Context, clinicID, professionalID int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("professionals").
		Where(squirrel.Eq{"id": professionalID, "clinic_id": clinicID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	return p, nil
}

// FindByClinic получает специалистов клиники в порядке ID
func (r *Repository) FindByClinic(ctx context.Context, clinicID int64, filter domain.ProfessionalsFilter) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFindByClinic(clinicID, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByClinic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByClinic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindByClinic - scan professional: %v", ErrScanRow, err)
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindByClinic - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

func buildFindByClinic(clinicID int64, filter domain.ProfessionalsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From("professionals").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("id ASC")

	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": *filter.ProfessionalID})
	}
	if filter.SpecialtyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("? = ANY(specialty_ids)", *filter.SpecialtyID))
	}

	return selectBuilder
}

// CountByClinic количество специалистов клиники (включая неактивных)
func (r *Repository) CountByClinic(ctx context.Context, clinicID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("professionals").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByClinic - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByClinic - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetSpecialty получает активную специальность клиники
func (r *Repository) GetSpecialty(ctx context.Context, clinicID, specialtyID int64) (*domain.Specialty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "clinic_id", "name", "is_active").
		From("specialties").
		Where(squirrel.Eq{"id": specialtyID, "clinic_id": clinicID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Specialty
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ClinicID, &s.Name, &s.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrSpecialtyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - scan specialty: %v", ErrScanRow, err)
	}

	return &s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var p domain.Professional
	var specialtyIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.ClinicID,
		&p.DisplayName,
		&specialtyIDs,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p.SpecialtyIDs = []int64(specialtyIDs)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
