package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
)

func testReminder() *domain.Reminder {
	return &domain.Reminder{
		ID:             42,
		ClinicID:       10,
		AppointmentID:  7,
		RuleID:         "2h-email",
		Channel:        domain.ChannelEmail,
		IdempotencyKey: "5f0c6f3e-8a36-4d8e-9a57-0f7b3c8e1d11",
		Payload: domain.ReminderPayload{
			ClinicName:  "Centro Medico",
			PatientName: "Ana Lopez",
			Timezone:    domain.DefaultTimezone,
			StartAt:     time.Date(2026, 2, 23, 13, 0, 0, 0, time.UTC),
		},
	}
}

func TestSend_Success(t *testing.T) {
	var got Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		assert.Equal(t, "5f0c6f3e-8a36-4d8e-9a57-0f7b3c8e1d11", r.Header.Get(idempotencyHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(DeliveryResponse{ID: "n-1", Status: "queued"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	require.NoError(t, client.Send(context.Background(), testReminder()))

	assert.Equal(t, "email", got.Channel)
	assert.Equal(t, int64(7), got.AppointmentID)
	assert.Equal(t, "Ana Lopez", got.PatientName)
	assert.True(t, got.StartAt.Equal(time.Date(2026, 2, 23, 13, 0, 0, 0, time.UTC)))
}

func TestSend_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "already delivered", status: http.StatusConflict, wantErr: nil},
		{name: "empty body ok", status: http.StatusOK, wantErr: nil},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrRejected},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, wantErr: ErrRejected},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.status >= 400 {
					_ = json.NewEncoder(w).Encode(ErrorResponse{Code: tt.status, Message: "nope"})
				}
			}))
			defer server.Close()

			err := NewClient(server.URL, time.Second, logger.NewNop()).Send(context.Background(), testReminder())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestSend_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url, time.Second, logger.NewNop()).Send(context.Background(), testReminder())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSend_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	err := NewClient(server.URL, time.Second, logger.NewNop()).Send(context.Background(), testReminder())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
