package shared

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	LocalDateTimeLayout = "2006-01-02T15:04:05"
)

var localDateTimeLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
}

// DateFormatError is returned by the JSON decoders below so the HTTP layer
// can answer with a format hint instead of a generic decode error.
type DateFormatError struct {
	Value  string
	Layout string
	Hint   string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date value %q, expected %s", e.Value, e.Layout)
}

// Date is a calendar date without time or zone, "yyyy-MM-dd" on the wire.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return &DateFormatError{
			Value:  raw,
			Layout: "yyyy-MM-dd",
			Hint:   "Invalid date format. Please use 'yyyy-MM-dd'. Example: '2024-03-07'",
		}
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// LocalDateTime is a wall-clock date and time without zone,
// "yyyy-MM-ddTHH:mm:ss" on the wire.
type LocalDateTime struct {
	time.Time
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.Format(LocalDateTimeLayout) + `"`), nil
}

func (l *LocalDateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			l.Time = t
			return nil
		}
	}
	return &DateFormatError{
		Value:  raw,
		Layout: "yyyy-MM-ddTHH:mm:ss",
		Hint:   "Invalid date-time format. Please use 'yyyy-MM-ddTHH:mm:ss'. Example: '2024-03-07T10:00:00'",
	}
}

func (l LocalDateTime) String() string {
	return l.Format(LocalDateTimeLayout)
}
