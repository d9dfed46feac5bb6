package reminders

import "errors"

var (
	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reminders: internal error")

	// ErrAlreadyStarted возвращается при повторном запуске диспетчера
	ErrAlreadyStarted = errors.New("reminders: dispatcher already started")
)
