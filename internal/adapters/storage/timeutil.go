package storage

import (
	"fmt"
	"time"
)

// FormatTime renders a timestamp for TEXT column storage.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTime reads a TEXT column timestamp, accepting the formats that have
// historically appeared in the database.
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

// FormatDate renders a date-only value for TEXT column storage.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
