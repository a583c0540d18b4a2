package service

import "time"

const fechaLayout = "2006-01-02"

// parseFecha parses a YYYY-MM-DD date string.
func parseFecha(s string) (time.Time, error) {
	return time.Parse(fechaLayout, s)
}

// fechaString formats a date for responses.
func fechaString(t time.Time) string {
	return t.Format(fechaLayout)
}
