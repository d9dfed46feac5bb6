package get_available_slots

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("get_available_slots: clinic not found")

	// ErrInvalidFilter возвращается, когда специалист или специальность не относятся к клинике
	ErrInvalidFilter = errors.New("get_available_slots: invalid professional or specialty filter")

	// ErrInvalidWindow возвращается, когда период пустой или слишком длинный
	ErrInvalidWindow = errors.New("get_available_slots: invalid date range")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс
	ErrConfiguration = errors.New("get_available_slots: clinic configuration error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
