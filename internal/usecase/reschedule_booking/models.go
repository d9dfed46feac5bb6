package reschedule_booking

import "time"

const (
	KindReschedule = "reschedule"
	StageInsert    = "insert"
)

// Request модель запроса на перенос записи
type Request struct {
	PatientID     int64     // ID пациента-владельца записи
	AppointmentID int64     // Переносимая запись
	StartAt       time.Time // Новое начало слота
}

// Response модель ответа с новой записью
type Response struct {
	ID                    int64     // ID новой записи
	PreviousAppointmentID int64     // ID отмененной записи
	ClinicID              int64     // ID клиники
	ProfessionalID        *int64    // Специалист
	SpecialtyID           *int64    // Специальность
	PatientID             *int64    // ID пациента
	PatientFullName       string    // ФИО пациента
	PatientPhone          string    // Телефон пациента
	Note                  *string   // Комментарий
	StartAt               time.Time // Начало приема
	EndAt                 time.Time // Конец приема
	Status                string    // Статус новой записи
	Timezone              string    // Часовой пояс клиники

	CreatedAt time.Time // Время создания
}
