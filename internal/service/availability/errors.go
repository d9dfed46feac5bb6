package availability

import "errors"

var (
	// ErrInvalidFilter возвращается, когда специалист или специальность из фильтра не относятся к клинике
	ErrInvalidFilter = errors.New("availability: invalid professional or specialty filter")

	// ErrInvalidWindow возвращается, когда окно запроса пустое или слишком длинное
	ErrInvalidWindow = errors.New("availability: invalid time window")

	// ErrConfiguration возвращается, когда у клиники некорректно настроен часовой пояс или расписание
	ErrConfiguration = errors.New("availability: clinic configuration error")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
