package derive

import (
	"fmt"
	"strings"
	"time"
)

// Date layout formats to try when parsing window bounds
var dateLayouts = []string{
	"2006-01-02", // YYYY-MM-DD (ISO 8601 date)
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a window bound into a UTC timestamp. Date-only values
// resolve to midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", raw)
}

// Window parses the since/until pair for a query window. A date-only until
// value extends to the end of that day, so the window is inclusive of
// everything that happened on the until date.
func Window(sinceRaw, untilRaw string) (time.Time, time.Time, error) {
	since, err := ParseDate(sinceRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}

	until, err := ParseDate(untilRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}

	if isDateOnly(untilRaw) {
		until = until.Add(24*time.Hour - time.Second)
	}

	if until.Before(since) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", untilRaw, sinceRaw)
	}

	return since, until, nil
}

// isDateOnly reports whether the raw value carries no time component
func isDateOnly(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}
