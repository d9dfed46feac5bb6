package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrAccessDenied возвращается, когда запись не принадлежит пациенту или клинике
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда запись уже отменена
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс
	ErrConfiguration = errors.New("clinic configuration error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
