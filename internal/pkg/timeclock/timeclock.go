package timeclock

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Shift times are wall-clock "HH:mm" strings in the company's operating
// timezone. This package owns every conversion between those strings and
// absolute instants, so the rest of the codebase only deals with civil dates
// and clock strings.

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses a "HH:mm" wall-clock string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:mm", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ElapsedHours returns the elapsed time between two wall-clock strings as
// decimal hours. When end is not after start the interval is assumed to cross
// midnight and a day is added, so the result is always non-negative.
func ElapsedHours(start, end string) (float64, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	eh, em, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	startMins := sh*60 + sm
	endMins := eh*60 + em
	if endMins <= startMins {
		endMins += 24 * 60
	}

	return float64(endMins-startMins) / 60.0, nil
}

// Round2 rounds to two decimal places, the precision worked and overtime
// hours are stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clock anchors civil dates and wall-clock strings to one fixed IANA zone.
type Clock struct {
	loc *time.Location
}

func NewClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Clock{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return Clock{loc: loc}, nil
}

// Location returns the fixed zone this clock operates in.
func (c Clock) Location() *time.Location {
	return c.loc
}

// Combine produces the instant corresponding to the given calendar date and
// wall-clock string in the fixed zone.
func (c Clock) Combine(date time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, c.loc), nil
}

// DateOf is the inverse of Combine: the civil date portion of an instant in
// the fixed zone, formatted as "2006-01-02".
func (c Clock) DateOf(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// Now returns the current instant shifted into the fixed zone.
func (c Clock) Now() time.Time {
	return time.Now().In(c.loc)
}
