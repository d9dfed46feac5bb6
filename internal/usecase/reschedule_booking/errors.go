package reschedule_booking

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_booking: appointment not found")

	// ErrAccessDenied возвращается, когда запись не принадлежит пациенту
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrNotConfirmed возвращается, когда переносимая запись уже отменена
	ErrNotConfirmed = errors.New("reschedule_booking: appointment is not confirmed")

	// ErrSlotUnavailable возвращается, когда новый слот не существует в расписании или уже занят
	ErrSlotUnavailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidFilter возвращается, когда специалист записи больше не доступен для записи
	ErrInvalidFilter = errors.New("reschedule_booking: invalid professional or specialty")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс
	ErrConfiguration = errors.New("reschedule_booking: clinic configuration error")

	// ErrPartialReschedule возвращается, когда транзакция переноса не откатилась
	// Состояние записей нужно проверить вручную
	ErrPartialReschedule = errors.New("reschedule_booking: reschedule left inconsistent state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
