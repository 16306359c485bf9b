package utils

import (
	"log"
	"time"
)

const StoredDateFormat = "2006-01-02"

// FormatStoredDate renders an as-of date for storage. The zero time (report
// declared no parseable date) is stored as the empty string, which sorts
// before any real date so unknown-dated data never shadows dated snapshots.
func FormatStoredDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(StoredDateFormat)
}

// ParseStoredDate is the inverse of FormatStoredDate.
// Logs an error and returns zero time if parsing fails.
func ParseStoredDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(StoredDateFormat, s)
	if err != nil {
		log.Printf("Error parsing stored date '%s' with format '%s': %v. Returning zero time.", s, StoredDateFormat, err)
		return time.Time{}
	}
	return t
}
