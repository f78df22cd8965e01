package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is how booking and event dates are stored. Lexicographic
	// order on these strings matches chronological order, which the range
	// filters in the repositories rely on.
	DateLayout = "2006-01-02"

	// TimeLayout is the wall-clock format of availability windows and
	// booking slots.
	TimeLayout = "15:04"
)

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Day truncates an instant to its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayName returns the English weekday name used as availability map key.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// HourOf extracts the hour component of an "HH:MM" string. Malformed input
// yields 0, matching how the portal has always read these fields.
func HourOf(hhmm string) int {
	head, _, _ := strings.Cut(hhmm, ":")
	hour, _ := strconv.Atoi(head)
	return hour
}

// ValidClockTime reports whether s is a well-formed "HH:MM" value.
func ValidClockTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
