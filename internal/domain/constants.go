package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultTimezone            = "America/Argentina/Buenos_Aires"
)

// Business validation constants
const (
	MinSlotMinutes         = 5
	MaxSlotMinutes         = 180
	MaxTimeOffReasonLength = 240
	MaxNoteLength          = 500
	MaxPatientNameLength   = 120
	MaxPatientPhoneLength  = 40
	MaxAvailabilityDays    = 62 // максимальная длина окна запроса слотов
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Reminder dispatch defaults
const (
	DefaultReminderPollSeconds = 30
	DefaultReminderBatchSize   = 50
)
