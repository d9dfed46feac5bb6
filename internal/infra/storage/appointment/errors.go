package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateAppointment возвращается, когда подтвержденная запись на этот слот уже существует
	// (нарушение уникального индекса uq_appointments_confirmed_slot)
	ErrDuplicateAppointment = errors.New("appointment.repository: confirmed appointment already exists for this slot")

	// ErrNotConfirmed возвращается при попытке отменить неподтвержденную запись
	ErrNotConfirmed = errors.New("appointment.repository: appointment is not confirmed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
