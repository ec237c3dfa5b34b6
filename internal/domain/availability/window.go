// Package availability models a doctor's recurring weekly availability
// window: a weekday range that may wrap across the week boundary and a
// same-day time-of-day range. All computations are pure and stateless.
package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a clock time with second granularity and no date
// component, stored as seconds since midnight. The zero value is
// midnight. The natural integer order matches the lexicographic order
// of the HH:MM:SS representation.
type TimeOfDay int

// FromClock builds a TimeOfDay from hour, minute and second.
func FromClock(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: expected HH:MM:SS", s)
	}
	return FromClock(t.Hour(), t.Minute(), t.Second()), nil
}

// Clock returns the hour, minute and second components.
func (t TimeOfDay) Clock() (hour, minute, second int) {
	return int(t) / 3600, int(t) / 60 % 60, int(t) % 60
}

func (t TimeOfDay) String() string {
	h, m, s := t.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner so a TimeOfDay can be read straight from
// a text column.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = FromClock(v.Hour(), v.Minute(), v.Second())
		return nil
	}
	return fmt.Errorf("cannot scan %T into TimeOfDay", src)
}

// Value implements driver.Valuer, storing the HH:MM:SS representation.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Window is a recurring weekly availability window. The weekday range
// is circular: FromWeekDay=Friday, ToWeekDay=Monday covers
// Fri, Sat, Sun, Mon. The time-of-day range never wraps; From must be
// strictly before To.
type Window struct {
	FromWeekDay time.Weekday
	ToWeekDay   time.Weekday
	From        TimeOfDay
	To          TimeOfDay
}

// Validate rejects windows that must never reach Resolve or Contains:
// out-of-range weekdays and non-increasing time ranges.
func (w Window) Validate() error {
	if w.FromWeekDay < time.Sunday || w.FromWeekDay > time.Saturday {
		return fmt.Errorf("from week day %d out of range [0,6]", w.FromWeekDay)
	}
	if w.ToWeekDay < time.Sunday || w.ToWeekDay > time.Saturday {
		return fmt.Errorf("to week day %d out of range [0,6]", w.ToWeekDay)
	}
	if w.From >= w.To {
		return fmt.Errorf("time range %s-%s: end must be after start", w.From, w.To)
	}
	return nil
}

// ContainsWeekday reports whether d falls inside the circular weekday
// range.
func (w Window) ContainsWeekday(d time.Weekday) bool {
	if w.FromWeekDay <= w.ToWeekDay {
		return d >= w.FromWeekDay && d <= w.ToWeekDay
	}
	// Wrap case: the range runs through the week boundary.
	return d >= w.FromWeekDay || d <= w.ToWeekDay
}

// Contains reports whether the given weekday and clock time fall inside
// the window. Both time bounds are inclusive.
func (w Window) Contains(d time.Weekday, t TimeOfDay) bool {
	return w.ContainsWeekday(d) && t >= w.From && t <= w.To
}

// ContainsInstant is Contains applied to the weekday and clock
// components of a concrete instant.
func (w Window) ContainsInstant(at time.Time) bool {
	return w.Contains(at.Weekday(), FromClock(at.Clock()))
}

// spanDays is the circular day distance from FromWeekDay to ToWeekDay.
func (w Window) spanDays() int {
	return (int(w.ToWeekDay) - int(w.FromWeekDay) + 7) % 7
}

// Occurrence is one concrete occurrence of a window on the calendar.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Resolve anchors the window to the week containing now (weeks start
// on Sunday) and returns the resulting concrete start and end
// instants. The result is meant for display; admission checks go
// through Contains.
func (w Window) Resolve(now time.Time) Occurrence {
	weekStart := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	start := atClock(weekStart.AddDate(0, 0, int(w.FromWeekDay)), w.From)
	end := atClock(start.AddDate(0, 0, w.spanDays()), w.To)
	return Occurrence{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atClock(day time.Time, t TimeOfDay) time.Time {
	h, m, s := t.Clock()
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location())
}
