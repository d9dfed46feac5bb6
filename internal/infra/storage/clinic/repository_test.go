package clinic

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

func TestBuildSelectClinic(t *testing.T) {
	query, args, err := buildSelectClinic(squirrel.Eq{"slug": "centro"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM clinics WHERE slug = $1")
	assert.Contains(t, query, "weekly_schedule")
	assert.Equal(t, []interface{}{"centro"}, args)
}

func TestDecodeSchedule(t *testing.T) {
	days, err := decodeSchedule(nil)
	require.NoError(t, err)
	assert.Nil(t, days)

	days, err = decodeSchedule([]byte(`[{"dayOfWeek":1,"enabled":true,"intervals":[{"start":"09:00","end":"13:00"}]}]`))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].DayOfWeek)
	assert.Equal(t, []domain.TimeInterval{{Start: "09:00", End: "13:00"}}, days[0].Intervals)

	// Формат времени проверяется при генерации слотов, а не при чтении
	days, err = decodeSchedule([]byte(`[{"dayOfWeek":1,"enabled":true,"intervals":[{"start":"9:00","end":"13:00"}]}]`))
	require.NoError(t, err)
	c := &domain.Clinic{WeeklySchedule: days}
	assert.ErrorIs(t, c.ValidateSchedule(), domain.ErrInvalidSchedule)

	_, err = decodeSchedule([]byte(`{not json`))
	assert.Error(t, err)
}
