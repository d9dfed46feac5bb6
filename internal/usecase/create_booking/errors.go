package create_booking

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("create_booking: clinic not found")

	// ErrInvalidFilter возвращается, когда специалист или специальность не относятся к клинике
	ErrInvalidFilter = errors.New("create_booking: invalid professional or specialty")

	// ErrSlotUnavailable возвращается, когда слот не существует в расписании или уже занят
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс
	ErrConfiguration = errors.New("create_booking: clinic configuration error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
