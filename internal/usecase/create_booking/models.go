package create_booking

import (
	"time"
)

const (
	KindNew     = "new"
	StageInsert = "insert"
)

// Request модель запроса на создание записи
type Request struct {
	ClinicSlug      string    // Публичный идентификатор клиники
	PatientID       *int64    // ID пациента, если он авторизован
	StartAt         time.Time // Начало слота, абсолютный момент
	ProfessionalID  *int64    // Специалист (опционально)
	SpecialtyID     *int64    // Специальность (опционально)
	PatientFullName string    // ФИО пациента
	PatientPhone    string    // Телефон пациента
	Note            *string   // Комментарий (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	ClinicID        int64     // ID клиники
	ProfessionalID  *int64    // Специалист слота
	SpecialtyID     *int64    // Специальность
	PatientID       *int64    // ID пациента
	PatientFullName string    // ФИО пациента
	PatientPhone    string    // Телефон пациента
	Note            *string   // Комментарий
	StartAt         time.Time // Начало приема
	EndAt           time.Time // Конец приема
	Status          string    // Статус записи
	Timezone        string    // Часовой пояс клиники

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
