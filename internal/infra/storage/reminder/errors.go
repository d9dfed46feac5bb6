package reminder

import "errors"

var (
	// ErrNotLocked возвращается, когда напоминание уже забрал другой обработчик или оно отменено
	ErrNotLocked = errors.New("reminder.repository: reminder is not in scheduled state")

	ErrBuildQuery = errors.New("reminder.repository: failed to build query")
	ErrExecQuery  = errors.New("reminder.repository: failed to execute query")
	ErrScanRow    = errors.New("reminder.repository: failed to scan row")
	ErrEncode     = errors.New("reminder.repository: failed to encode payload")
)
