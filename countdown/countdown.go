// Package countdown calculates the time remaining until the weekly prediction deadline.
package countdown

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Deadline is a weekly recurring instant, e.g. Friday 21:00 Europe/Madrid.
type Deadline struct {
	Weekday  time.Weekday
	Hour     int
	Location *time.Location
}

// Remaining is the time left until a deadline, broken down into whole units.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var dias = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// ParseWeekday accepts an English weekday name, case insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}

	return time.Sunday, fmt.Errorf("invalid weekday '%s'", s)
}

// Next returns the first occurrence of the deadline that is not before 'now'. If this week's
// deadline has already passed it is rolled forward by seven days.
func (d Deadline) Next(now time.Time) time.Time {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	t := now.In(loc)
	days := (int(d.Weekday) - int(t.Weekday()) + 7) % 7
	target := time.Date(t.Year(), t.Month(), t.Day()+days, d.Hour, 0, 0, 0, loc)

	if t.After(target) {
		target = target.AddDate(0, 0, 7)
	}

	return target
}

// Label returns the deadline in the form used on the page, e.g. 'Viernes 21:00'.
func (d Deadline) Label() string {
	return fmt.Sprintf("%s %02d:00", dias[d.Weekday], d.Hour)
}

// Until returns the time remaining from 'now' to 'target', truncated to whole seconds. A target in
// the past yields zero in every unit.
func Until(now, target time.Time) Remaining {
	diff := target.Sub(now)
	if diff <= 0 {
		return Remaining{}
	}

	seconds := int64(diff / time.Second)

	return Remaining{
		Days:    int(seconds / 86400),
		Hours:   int(seconds / 3600 % 24),
		Minutes: int(seconds / 60 % 60),
		Seconds: int(seconds % 60),
	}
}

// Clock formats the remaining time as DD:HH:MM:SS.
func (r Remaining) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Zero returns true once the deadline has been reached.
func (r Remaining) Zero() bool {
	return r == Remaining{}
}

// Countdown recomputes the time remaining until the next deadline at a fixed interval.
type Countdown struct {
	Deadline Deadline
	Interval time.Duration
	Now      func() time.Time
}

// Run invokes fn with the remaining time immediately and then once every interval (one second by
// default) until the context is cancelled. The ticker is stopped before Run returns.
func (c Countdown) Run(ctx context.Context, fn func(target time.Time, remaining Remaining)) error {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}

	tick := func() {
		t := now()
		target := c.Deadline.Next(t)

		fn(target, Until(t, target))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			tick()
		}
	}
}
