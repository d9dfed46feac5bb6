package professional

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в клинике
	ErrProfessionalNotFound = errors.New("professional.repository: professional not found")

	// ErrSpecialtyNotFound возвращается, когда специальность не найдена в клинике
	ErrSpecialtyNotFound = errors.New("professional.repository: specialty not found")

	ErrBuildQuery = errors.New("professional.repository: failed to build query")
	ErrExecQuery  = errors.New("professional.repository: failed to execute query")
	ErrScanRow    = errors.New("professional.repository: failed to scan row")
)
