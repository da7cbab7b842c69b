package dates

import "time"

const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// ToISO8601 renders t in UTC; the zero time renders as an empty string.
func ToISO8601(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISO8601)
}
