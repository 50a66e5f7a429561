package service

import (
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// parseDate accepts the date formats clients send over the wire:
// full RFC3339 timestamps and bare calendar dates.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", value)
	}
	return parsed, nil
}
