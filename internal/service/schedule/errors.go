package schedule

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в клинике
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrTimeOffNotFound возвращается, когда исключение расписания не найдено
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
