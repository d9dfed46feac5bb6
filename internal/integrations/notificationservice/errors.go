package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrRejected возвращается, когда сервис отклонил уведомление (повтор не поможет)
	ErrRejected = errors.New("notificationservice client: notification rejected")

	// ErrUnavailable возвращается, когда сервис недоступен или ответил 5xx
	ErrUnavailable = errors.New("notificationservice client: service unavailable")
)
