package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Horário de Brasília: UTC-3 fixo, sem horário de verão.
const (
	OffsetSeconds = -3 * 60 * 60
	ZoneName      = "BRT"
)

var brasilia = time.FixedZone(ZoneName, OffsetSeconds)

var ErrInvalidFormat = errors.New("timezone: invalid date/time format")

// Location retorna a zona fixa usada pela organização.
// Nunca depende de time.Local nem do tzdata da máquina.
func Location() *time.Location {
	return brasilia
}

// Now retorna o instante atual (UTC).
func Now() time.Time {
	return time.Now().UTC()
}

// ======================================================
// CIVIL TYPES
// ======================================================

type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

type CivilDateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

func (c CivilDateTime) Date() CivilDate {
	return CivilDate{Year: c.Year, Month: c.Month, Day: c.Day}
}

func (c CivilDateTime) Weekday() time.Weekday {
	return c.Date().Weekday()
}

// SecondsOfDay é a posição do horário civil dentro do dia.
func (c CivilDateTime) SecondsOfDay() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (d CivilDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// At devolve o instante correspondente a h:m:00 civil nesse dia.
func (d CivilDate) At(hour, minute int) time.Time {
	return ToInstant(CivilDateTime{
		Year: d.Year, Month: d.Month, Day: d.Day,
		Hour: hour, Minute: minute,
	})
}

// Offset devolve o instante deslocado de meia-noite civil.
func (d CivilDate) Offset(sinceMidnight time.Duration) time.Time {
	return d.At(0, 0).Add(sinceMidnight)
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ======================================================
// CONVERSIONS
// ======================================================

func ToCivil(instant time.Time) CivilDateTime {
	t := instant.In(brasilia)
	return CivilDateTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func ToInstant(c CivilDateTime) time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, brasilia).UTC()
}

func CivilDateOf(instant time.Time) CivilDate {
	return ToCivil(instant).Date()
}

func CivilHour(instant time.Time) int {
	return ToCivil(instant).Hour
}

func CivilMinute(instant time.Time) int {
	return ToCivil(instant).Minute
}

func CivilWeekday(instant time.Time) time.Weekday {
	return ToCivil(instant).Weekday()
}

// ======================================================
// PARSING / FORMATTING
// ======================================================

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// ParseDateTime interpreta a string como horário civil de Brasília.
// Um "Z" final é ignorado: o cliente sempre envia horário local.
func ParseDateTime(s string) (time.Time, error) {
	clean := strings.TrimSuffix(strings.TrimSpace(s), "Z")
	if clean == "" {
		return time.Time{}, ErrInvalidFormat
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, clean, brasilia); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// ParseDate aceita AAAA-MM-DD ou DD/MM/AAAA.
func ParseDate(s string) (CivilDate, error) {
	clean := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
		}
	}
	return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func FormatClock(instant time.Time) string {
	return instant.In(brasilia).Format("15:04:05")
}

func FormatDateTime(instant time.Time) string {
	return instant.In(brasilia).Format("2006-01-02T15:04:05")
}
