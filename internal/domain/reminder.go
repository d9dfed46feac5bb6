package domain

import "time"

// ReminderChannel is a delivery channel of a reminder
type ReminderChannel string

const (
	ChannelInApp ReminderChannel = "inApp"
	ChannelEmail ReminderChannel = "email"
)

// ReminderOffsetUnit is the unit of a reminder rule offset
type ReminderOffsetUnit string

const (
	OffsetDays  ReminderOffsetUnit = "days"
	OffsetHours ReminderOffsetUnit = "hours"
)

// ReminderStatus represents the delivery state of a reminder
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "scheduled"
	ReminderSending   ReminderStatus = "sending"
	ReminderSent      ReminderStatus = "sent"
	ReminderCanceled  ReminderStatus = "canceled"
	ReminderFailed    ReminderStatus = "failed"
)

// ReminderRule describes when and how to remind a patient before the visit
type ReminderRule struct {
	ID          string             `json:"id"`
	Enabled     bool               `json:"enabled"`
	OffsetValue int                `json:"offsetValue"`
	OffsetUnit  ReminderOffsetUnit `json:"offsetUnit"`
	Channel     ReminderChannel    `json:"channel"`
}

// Offset returns the rule offset as a duration
func (r ReminderRule) Offset() time.Duration {
	if r.OffsetUnit == OffsetDays {
		return time.Duration(r.OffsetValue) * 24 * time.Hour
	}
	return time.Duration(r.OffsetValue) * time.Hour
}

// FireAt returns the instant the reminder for a visit at startAt is due
func (r ReminderRule) FireAt(startAt time.Time) time.Time {
	return startAt.Add(-r.Offset())
}

// DefaultReminderRules returns the rules every clinic starts with
func DefaultReminderRules() []ReminderRule {
	return []ReminderRule{
		{ID: "7d-inapp", Enabled: true, OffsetValue: 7, OffsetUnit: OffsetDays, Channel: ChannelInApp},
		{ID: "7d-email", Enabled: true, OffsetValue: 7, OffsetUnit: OffsetDays, Channel: ChannelEmail},
		{ID: "2d-inapp", Enabled: true, OffsetValue: 2, OffsetUnit: OffsetDays, Channel: ChannelInApp},
		{ID: "2d-email", Enabled: true, OffsetValue: 2, OffsetUnit: OffsetDays, Channel: ChannelEmail},
		{ID: "2h-inapp", Enabled: true, OffsetValue: 2, OffsetUnit: OffsetHours, Channel: ChannelInApp},
		{ID: "2h-email", Enabled: true, OffsetValue: 2, OffsetUnit: OffsetHours, Channel: ChannelEmail},
	}
}

// NotificationSettings holds per-clinic reminder configuration
type NotificationSettings struct {
	ClinicID         int64
	RemindersEnabled bool
	Rules            []ReminderRule
}

// DefaultNotificationSettings returns the settings used when a clinic has none stored
func DefaultNotificationSettings(clinicID int64) *NotificationSettings {
	return &NotificationSettings{
		ClinicID:         clinicID,
		RemindersEnabled: true,
		Rules:            DefaultReminderRules(),
	}
}

// ReminderPayload is a snapshot of the data shown in the reminder, taken at scheduling time
type ReminderPayload struct {
	ClinicName       string    `json:"clinicName"`
	PatientName      string    `json:"patientName"`
	PatientPhone     string    `json:"patientPhone,omitempty"`
	ProfessionalName string    `json:"professionalName,omitempty"`
	ClinicPhone      string    `json:"clinicPhone,omitempty"`
	ClinicAddress    string    `json:"clinicAddress,omitempty"`
	Timezone         string    `json:"timezone"`
	StartAt          time.Time `json:"startAt"`
}

// Reminder is a scheduled notification about an upcoming appointment
type Reminder struct {
	ID             int64
	ClinicID       int64
	PatientID      *int64
	AppointmentID  int64
	RuleID         string
	Channel        ReminderChannel
	ScheduledFor   time.Time
	Status         ReminderStatus
	IdempotencyKey string
	Payload        ReminderPayload
	ErrorMessage   *string
	SentAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
