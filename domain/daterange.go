package domain

import (
	"fmt"
	"time"
)

// dateFormats lists the accepted input layouts in priority order. The
// unpadded layouts parse both "01.07.2023" and "1.7.2023".
var dateFormats = []string{
	"2.1.2006", // DD.MM.YYYY
	"2006-1-2", // YYYY-MM-DD
}

// DateRange is a closed interval of instants covering whole days in UTC.
// Start is midnight of the first day, End is 23:59:59 of the last day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a DateRange from two date strings. Each string may
// use either accepted layout independently. The returned range includes both
// endpoint days in full; start and end naming the same day is a valid
// single-day range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := parseDay(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := parseDay(end)
	if err != nil {
		return DateRange{}, err
	}
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
	}
	return DateRange{
		Start: s,
		End:   e.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}, nil
}

// Contains reports whether t falls inside the range, endpoints included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func parseDay(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (want DD.MM.YYYY or YYYY-MM-DD)", ErrInvalidDateFormat, value)
}
