// Package clinictime переводит моменты времени в календарь клиники и обратно.
// Все вычисления дня недели и даты выполняются в часовом поясе клиники,
// а не в UTC и не в поясе сервера.
package clinictime

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/ClinicBookingService/pkg/types"
)

// DefaultZone часовой пояс клиники по умолчанию
const DefaultZone = "America/Argentina/Buenos_Aires"

// DateFormat формат календарной даты (ключ исключений расписания)
const DateFormat = "2006-01-02"

var (
	// ErrConfiguration возвращается при нераспознанном часовом поясе
	ErrConfiguration = errors.New("clinictime: invalid timezone configuration")

	// ErrInvalidDate возвращается при некорректной календарной дате
	ErrInvalidDate = errors.New("clinictime: invalid date")
)

// LoadZone загружает часовой пояс по IANA имени
// Пустое имя или UTC по умолчанию не подставляются: это ошибка конфигурации клиники
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty timezone", ErrConfiguration)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConfiguration, name, err)
	}
	return loc, nil
}

// Date календарная дата без времени и часового пояса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf возвращает календарную дату, на которую приходится instant в поясе loc
func DateOf(instant time.Time, loc *time.Location) Date {
	y, m, d := instant.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays возвращает дату, сдвинутую на n дней (нормализация через time.Date)
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday день недели даты (не зависит от часового пояса)
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// At возвращает момент времени: дата d, minutes минут от начала суток по часам клиники
// Смещение пояса берется на эту дату, поэтому переходы на летнее время учитываются
func (d Date) At(minutes int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc)
}

// Start начало суток d в поясе loc
func (d Date) Start(loc *time.Location) time.Time {
	return d.At(0, loc)
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// WeekdayInZone день недели (0=воскресенье..6=суббота), на который приходится instant в поясе loc
func WeekdayInZone(instant time.Time, loc *time.Location) int {
	return int(instant.In(loc).Weekday())
}

// DateKeyInZone календарная дата instant в поясе loc в формате YYYY-MM-DD
func DateKeyInZone(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(DateFormat)
}

// WallClockToInstant переводит дату и время по часам клиники в абсолютный момент
func WallClockToInstant(dateKey string, wallClock string, loc *time.Location) (time.Time, error) {
	date, err := ParseDate(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := types.NewTimeStringFromString(wallClock)
	if err != nil {
		return time.Time{}, err
	}
	return date.At(ts.Minutes(), loc), nil
}

// DayBounds возвращает [начало суток, начало следующих суток) для даты по часам клиники
func DayBounds(date Date, loc *time.Location) (time.Time, time.Time) {
	return date.Start(loc), date.AddDays(1).Start(loc)
}
