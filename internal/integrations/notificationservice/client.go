package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

const idempotencyHeader = "Idempotency-Key"

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send доставляет напоминание пациенту
// Повторная отправка с тем же ключом идемпотентности не приводит к дублю на стороне сервиса
func (c *Client) Send(ctx context.Context, rem *domain.Reminder) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(toNotification(rem))
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, rem.IdempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusAccepted:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusConflict:
		// Уже доставлено с этим ключом
		c.log.Info("Notification reminder=%d already delivered (key=%s)", rem.ID, rem.IdempotencyKey)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readError(resp.Body))
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, readError(resp.Body))
	}

	var delivery DeliveryResponse
	if err := json.NewDecoder(resp.Body).Decode(&delivery); err != nil && err != io.EOF {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Notification reminder=%d channel=%s accepted (id=%s)", rem.ID, rem.Channel, delivery.ID)
	return nil
}

func toNotification(rem *domain.Reminder) Notification {
	return Notification{
		Channel:          string(rem.Channel),
		ClinicID:         rem.ClinicID,
		PatientID:        rem.PatientID,
		AppointmentID:    rem.AppointmentID,
		RuleID:           rem.RuleID,
		ClinicName:       rem.Payload.ClinicName,
		ClinicPhone:      rem.Payload.ClinicPhone,
		ClinicAddress:    rem.Payload.ClinicAddress,
		PatientName:      rem.Payload.PatientName,
		PatientPhone:     rem.Payload.PatientPhone,
		ProfessionalName: rem.Payload.ProfessionalName,
		Timezone:         rem.Payload.Timezone,
		StartAt:          rem.Payload.StartAt,
	}
}

// readError достает сообщение из ErrorResponse, иначе возвращает тело как есть
func readError(r io.Reader) string {
	body, _ := io.ReadAll(r)

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(body)
}
