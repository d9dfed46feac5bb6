package clinic

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("clinic.repository: clinic not found")

	// ErrSettingsNotFound возвращается, когда у клиники нет сохраненных настроек уведомлений
	ErrSettingsNotFound = errors.New("clinic.repository: notification settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("clinic.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("clinic.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("clinic.repository: failed to scan row")

	// ErrDecode возвращается, когда JSONB колонку не удалось разобрать
	ErrDecode = errors.New("clinic.repository: failed to decode json column")
)
