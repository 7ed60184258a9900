// Package model defines the core data model of the scheduling engine:
// workers, shifts, requirements, budget/fairness envelopes, and the
// assignment decisions the solver produces.
package model

import "fmt"

// Weekday is a canonically-spelled day name. Day strings anywhere in
// the input are normalized to one of these by the validator.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// weekdayOrder fixes a canonical rolling order, used for consecutive-day
// and rest-gap calculations (spec I6/I7).
var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
	Friday: 4, Saturday: 5, Sunday: 6,
}

var orderedWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the weekday's position in the canonical Monday-first week.
func (d Weekday) Index() int {
	return weekdayOrder[d]
}

// Next returns the weekday that calendar-follows d, wrapping Sunday to Monday.
func (d Weekday) Next() Weekday {
	return orderedWeekdays[(d.Index()+1)%7]
}

// ParseWeekday normalizes a free-form day string to its canonical spelling.
// Returns false if the string does not name a weekday.
func ParseWeekday(s string) (Weekday, bool) {
	normalized := normalizeCase(s)
	for _, d := range orderedWeekdays {
		if normalizeCase(string(d)) == normalized {
			return d, true
		}
	}
	return "", false
}

func normalizeCase(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// ShiftType is the closed set of shift tags spec §3 requires in place
// of the source's loose string typing.
type ShiftType string

const (
	ShiftPrep    ShiftType = "prep"
	ShiftOpening ShiftType = "opening"
	ShiftLunch   ShiftType = "lunch"
	ShiftDinner  ShiftType = "dinner"
	ShiftClosing ShiftType = "closing"
	ShiftGeneric ShiftType = "generic"
)

// ParseShiftType normalizes a free-form shift-type string, defaulting to
// ShiftGeneric when empty (shift_type is optional on input).
func ParseShiftType(s string) (ShiftType, bool) {
	if s == "" {
		return ShiftGeneric, true
	}
	switch ShiftType(normalizeCase(s)) {
	case ShiftPrep, ShiftOpening, ShiftLunch, ShiftDinner, ShiftClosing, ShiftGeneric:
		return ShiftType(normalizeCase(s)), true
	default:
		return "", false
	}
}

// ClockTime is a minute-resolution time-of-day. Values may exceed 1440
// to express end times past midnight within the same shift record
// (spec §3: "end_time may exceed 24:00 conceptually").
type ClockTime int

// ParseClockTime parses "HH:MM" into minutes since midnight.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return ClockTime(h*60 + m), nil
}

// String renders the clock time back as "HH:MM". Minutes past 1440 are
// not wrapped into the next day: an end_time of "25:00" renders back as
// "25:00", not "01:00", so a consumer can tell an overnight shift apart
// from one that genuinely starts after midnight (spec §3).
func (t ClockTime) String() string {
	h := int(t) / 60
	m := int(t) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Minutes returns the raw minute count, unwrapped.
func (t ClockTime) Minutes() int {
	return int(t)
}

// Window is a half-open [Start, End) interval expressed in minutes
// since midnight of some reference day.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// Overlaps reports whether two half-open windows intersect.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && other.Start < w.End
}

// Contains reports whether other is fully covered by w.
func (w Window) Contains(other Window) bool {
	return w.Start <= other.Start && other.End <= w.End
}

// DurationHours returns the window's length in hours.
func (w Window) DurationHours() float64 {
	return float64(w.End-w.Start) / 60.0
}
