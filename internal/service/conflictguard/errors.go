package conflictguard

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда слот не существует в расписании или уже занят
	ErrSlotUnavailable = errors.New("conflictguard: slot is not available")

	// ErrInvalidFilter возвращается, когда специалист или специальность не относятся к клинике
	ErrInvalidFilter = errors.New("conflictguard: invalid professional or specialty")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс
	ErrConfiguration = errors.New("conflictguard: clinic configuration error")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("conflictguard: internal error")
)
