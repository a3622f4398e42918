package slate

import (
	"fmt"
	"regexp"
	"sync"
	"time"
)

// A slate groups games and picks under one US-Eastern calendar day,
// identified by a yyyy-mm-dd string. The id is derived on every use and
// never stored as its own row.

const easternTZ = "America/New_York"

const dateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var loadEastern = sync.OnceValues(func() (*time.Location, error) {
	return time.LoadLocation(easternTZ)
})

// Validate checks that value is a well-formed yyyy-mm-dd slate date.
func Validate(value string) error {
	if !dateRegex.MatchString(value) {
		return fmt.Errorf("slate date %q must match yyyy-mm-dd", value)
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("slate date %q is not a calendar date: %w", value, err)
	}
	return nil
}

// ToSlateID formats an instant as the Eastern calendar day it falls on.
func ToSlateID(instant time.Time) (string, error) {
	loc, err := loadEastern()
	if err != nil {
		return "", fmt.Errorf("load eastern timezone: %w", err)
	}
	return instant.In(loc).Format(dateLayout), nil
}

// Bounds resolves a slate date to its half-open [start, end) UTC interval.
// The Eastern UTC offset is sampled at local noon of the slate date; midnight
// is ambiguous around DST transitions, noon never is. The same offset is used
// for both ends, so the interval spans exactly 24 hours regardless of DST.
func Bounds(slateDate string) (time.Time, time.Time, error) {
	if err := Validate(slateDate); err != nil {
		return time.Time{}, time.Time{}, err
	}

	loc, err := loadEastern()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("load eastern timezone: %w", err)
	}

	day, err := time.Parse(dateLayout, slateDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse slate date %q: %w", slateDate, err)
	}

	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)
	_, offsetSeconds := noon.Zone()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		Add(-time.Duration(offsetSeconds) * time.Second)
	return start, start.Add(24 * time.Hour), nil
}

// MidnightUTC returns the date-only sentinel instant some providers store
// when a game's start time is unknown.
func MidnightUTC(slateDate string) (time.Time, error) {
	if err := Validate(slateDate); err != nil {
		return time.Time{}, err
	}
	day, err := time.Parse(dateLayout, slateDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slate date %q: %w", slateDate, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

// EndOfDayEastern returns 23:59:00 Eastern of the slate date as a UTC instant.
func EndOfDayEastern(slateDate string) (time.Time, error) {
	if err := Validate(slateDate); err != nil {
		return time.Time{}, err
	}
	loc, err := loadEastern()
	if err != nil {
		return time.Time{}, fmt.Errorf("load eastern timezone: %w", err)
	}
	day, err := time.Parse(dateLayout, slateDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slate date %q: %w", slateDate, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, loc).UTC(), nil
}

// Yesterday returns the slate id one day before now. Callers use it as the
// default when no date parameter is supplied: settlement normally runs the
// morning after a slate concludes.
func Yesterday(now time.Time) (string, error) {
	return ToSlateID(now.Add(-24 * time.Hour))
}
