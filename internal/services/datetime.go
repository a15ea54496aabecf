package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// CalendarDateLayout is the dd-mm-yyyy text format used for every date field.
	CalendarDateLayout = "02-01-2006"

	minYear = 1900
	maxYear = 2200
)

var (
	ErrNoInterview      = errors.New("interview date and hour are required")
	ErrInvalidInterview = errors.New("interview date or hour is malformed")
)

// CalendarDate is a validated dd-mm-yyyy value.
type CalendarDate struct {
	Day   int
	Month time.Month
	Year  int
}

// ClockTime is a validated hh:mm value on a 24-hour clock.
type ClockTime struct {
	Hour   int
	Minute int
}

// IsValidCalendarDate reports whether text is a real calendar date written as
// day-month-year.
func IsValidCalendarDate(text string) bool {
	_, ok := ParseCalendarDate(text)
	return ok
}

// IsValidClockTime reports whether text is a real hh:mm clock time.
func IsValidClockTime(text string) bool {
	_, ok := ParseClockTime(text)
	return ok
}

// IsNonBlank reports whether text has anything besides whitespace.
func IsNonBlank(text string) bool {
	return len(strings.TrimSpace(text)) > 0
}

// IsFutureMoment reports whether the instant made of dateText and timeText is
// strictly after now. Both texts must have been validated first; anything
// that does not parse is reported as not in the future.
func IsFutureMoment(dateText, timeText string, now time.Time) bool {
	instant, err := InterviewInstant(dateText, timeText, now.Location())
	if err != nil {
		return false
	}
	return instant.After(now)
}

// ParseCalendarDate splits text on "-" into day, month and year.
func ParseCalendarDate(text string) (CalendarDate, bool) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return CalendarDate{}, false
	}

	day, ok := parseComponent(parts[0])
	if !ok {
		return CalendarDate{}, false
	}
	month, ok := parseComponent(parts[1])
	if !ok {
		return CalendarDate{}, false
	}
	year, ok := parseComponent(parts[2])
	if !ok {
		return CalendarDate{}, false
	}

	if month < 1 || month > 12 {
		return CalendarDate{}, false
	}
	if year < minYear || year > maxYear {
		return CalendarDate{}, false
	}
	if day < 1 || day > DaysInMonth(time.Month(month), year) {
		return CalendarDate{}, false
	}

	return CalendarDate{Day: day, Month: time.Month(month), Year: year}, true
}

// ParseClockTime splits text on ":" into hour and minute.
func ParseClockTime(text string) (ClockTime, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return ClockTime{}, false
	}

	hour, ok := parseComponent(parts[0])
	if !ok {
		return ClockTime{}, false
	}
	minute, ok := parseComponent(parts[1])
	if !ok {
		return ClockTime{}, false
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, false
	}

	return ClockTime{Hour: hour, Minute: minute}, true
}

// InterviewInstant combines a date and an hour into a single instant in loc.
func InterviewInstant(dateText, hourText string, loc *time.Location) (time.Time, error) {
	if dateText == "" || hourText == "" {
		return time.Time{}, ErrNoInterview
	}

	date, ok := ParseCalendarDate(dateText)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidInterview, dateText)
	}
	clock, ok := ParseClockTime(hourText)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: hour %q", ErrInvalidInterview, hourText)
	}

	if loc == nil {
		loc = time.Local
	}
	return time.Date(date.Year, date.Month, date.Day, clock.Hour, clock.Minute, 0, 0, loc), nil
}

// FormatCalendarDate writes t as dd-mm-yyyy.
func FormatCalendarDate(t time.Time) string {
	return t.Format(CalendarDateLayout)
}

// String writes the date back in dd-mm-yyyy form.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// String writes the time back in hh:mm form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// DaysInMonth follows the Gregorian leap year rule.
func DaysInMonth(month time.Month, year int) int {
	switch month {
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// parseComponent reads one numeric piece. Anything strconv rejects, signs
// included, is absent.
func parseComponent(s string) (int, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
