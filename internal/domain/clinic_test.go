package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClinic_ValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		days    []DaySchedule
		wantErr bool
	}{
		{name: "empty"},
		{
			name: "valid",
			days: []DaySchedule{{DayOfWeek: 1, Enabled: true, Intervals: []TimeInterval{{Start: "09:00", End: "13:00"}}}},
		},
		{
			name:    "short hour",
			days:    []DaySchedule{{DayOfWeek: 1, Enabled: true, Intervals: []TimeInterval{{Start: "9:00", End: "13:00"}}}},
			wantErr: true,
		},
		{
			name:    "end before start",
			days:    []DaySchedule{{DayOfWeek: 2, Enabled: true, Intervals: []TimeInterval{{Start: "13:00", End: "09:00"}}}},
			wantErr: true,
		},
		{
			name:    "weekday out of range",
			days:    []DaySchedule{{DayOfWeek: 7, Enabled: true}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Clinic{WeeklySchedule: tt.days}
			err := c.ValidateSchedule()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			assert.NoError(t, err)
		})
	}
}
