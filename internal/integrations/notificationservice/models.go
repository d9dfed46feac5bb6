package notificationservice

import "time"

// Notification модель уведомления для NotificationService
type Notification struct {
	Channel          string    `json:"channel"` // inApp | email
	ClinicID         int64     `json:"clinic_id"`
	PatientID        *int64    `json:"patient_id,omitempty"`
	AppointmentID    int64     `json:"appointment_id"`
	RuleID           string    `json:"rule_id"`
	ClinicName       string    `json:"clinic_name"`
	ClinicPhone      string    `json:"clinic_phone,omitempty"`
	ClinicAddress    string    `json:"clinic_address,omitempty"`
	PatientName      string    `json:"patient_name"`
	PatientPhone     string    `json:"patient_phone,omitempty"`
	ProfessionalName string    `json:"professional_name,omitempty"`
	Timezone         string    `json:"timezone"`
	StartAt          time.Time `json:"start_at"`
}

// DeliveryResponse ответ NotificationService
type DeliveryResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
