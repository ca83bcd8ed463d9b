package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var ErrRangeTooLong = errors.New("date range too long")

var (
	dayNames   = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	monthNames = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
)

func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the current day in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDay(now.In(loc))
}

// ShiftDay moves day by n days; negative n goes back.
func ShiftDay(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// Days lists every day from..to inclusive. An inverted range is empty.
func Days(from, to string, maxDays int) ([]string, error) {
	f, err := ParseDay(from)
	if err != nil {
		return nil, err
	}
	t, err := ParseDay(to)
	if err != nil {
		return nil, err
	}
	if t.Before(f) {
		return []string{}, nil
	}
	n := int(t.Sub(f).Hours()/24) + 1
	if maxDays > 0 && n > maxDays {
		return nil, fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLong, n, maxDays)
	}
	days := make([]string, 0, n)
	for d := f; !d.After(t); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days, nil
}

// LongDate renders a day as "Senin, 1 Januari 2024". Unparseable input is
// returned unchanged.
func LongDate(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return dayNames[t.Weekday()] + ", " + strconv.Itoa(t.Day()) + " " + monthNames[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ShortTime extracts the time-of-day part of a timestamp, without fractional
// seconds.
func ShortTime(ts string) string {
	if ts == "" {
		return "00:00"
	}
	_, clock, ok := strings.Cut(ts, " ")
	if !ok {
		_, clock, ok = strings.Cut(ts, "T")
		if !ok {
			return "00:00"
		}
	}
	clock, _, _ = strings.Cut(clock, ".")
	return clock
}
