package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ClinicSlug     string // Публичный идентификатор клиники
	From           string // Первая дата периода (YYYY-MM-DD, включительно)
	To             string // Последняя дата периода (YYYY-MM-DD, не включительно)
	ProfessionalID *int64 // Фильтр по специалисту (опционально)
	SpecialtyID    *int64 // Фильтр по специальности (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ClinicID int64  // ID клиники
	Slug     string // Публичный идентификатор клиники
	Timezone string // Часовой пояс клиники
	Mode     string // professional или legacy
	Slots    []Slot // Список доступных слотов в хронологическом порядке генерации
}

// Slot модель временного слота
type Slot struct {
	StartAt        time.Time // Начало слота
	EndAt          time.Time // Конец слота
	ProfessionalID *int64    // nil для клиник без специалистов
}
