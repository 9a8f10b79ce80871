package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	layout        = "15:04"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString время суток в формате "HH:MM".
// Допустимый диапазон 00:00..24:00, где "24:00" обозначает конец суток.
type TimeString string

// NewTimeString создает TimeString из времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes)
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке.
// Используется для констант и в тестах.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromMinutes создает TimeString из количества минут от начала суток
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes возвращает количество минут от начала суток.
// Для некорректного значения возвращает -1.
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes возвращает время, сдвинутое на n минут
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	return FromMinutes(m + n)
}

// IsBefore проверяет, что t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter проверяет, что t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal сравнивает время без учета формата записи ("09:00" == "09:00:00")
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// On возвращает момент времени t в указанную дату и часовой пояс
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	minutes := t.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. Postgres возвращает TIME как "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.setFromString(v)
	case []byte:
		return t.setFromString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// UnmarshalJSON валидирует время при декодировании
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	return t.setFromString(s)
}

func (t *TimeString) setFromString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	seconds := 0
	if len(parts) == 3 {
		// Доли секунд postgres может вернуть как "09:00:00.000000"
		secPart := strings.SplitN(parts[2], ".", 2)[0]
		seconds, err = strconv.Atoi(secPart)
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hours == 24 && (minutes != 0 || seconds != 0) {
		return 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	return hours*60 + minutes, nil
}
