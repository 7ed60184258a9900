package model

import "testing"

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want Weekday
		ok   bool
	}{
		{"monday", Monday, true},
		{"MONDAY", Monday, true},
		{"Friday", Friday, true},
		{"funday", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWeekdayIndexAndNext(t *testing.T) {
	if Monday.Index() != 0 || Sunday.Index() != 6 {
		t.Fatalf("unexpected weekday ordering")
	}
	if Sunday.Next() != Monday {
		t.Errorf("Sunday.Next() = %v, want Monday", Sunday.Next())
	}
	if Tuesday.Next() != Wednesday {
		t.Errorf("Tuesday.Next() = %v, want Wednesday", Tuesday.Next())
	}
}

func TestParseShiftType(t *testing.T) {
	if got, ok := ParseShiftType(""); !ok || got != ShiftGeneric {
		t.Errorf("empty shift type should default to generic, got %q ok=%v", got, ok)
	}
	if got, ok := ParseShiftType("Opening"); !ok || got != ShiftOpening {
		t.Errorf("ParseShiftType(Opening) = %q, %v", got, ok)
	}
	if _, ok := ParseShiftType("brunch"); ok {
		t.Errorf("unknown shift type should be rejected")
	}
}

func TestClockTimeParseAndString(t *testing.T) {
	ct, err := ParseClockTime("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Minutes() != 570 {
		t.Errorf("Minutes() = %d, want 570", ct.Minutes())
	}
	if ct.String() != "09:30" {
		t.Errorf("String() = %q, want 09:30", ct.String())
	}

	if _, err := ParseClockTime("not-a-time"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestClockTimePastMidnight(t *testing.T) {
	ct, err := ParseClockTime("25:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Minutes() != 1500 {
		t.Errorf("Minutes() = %d, want 1500", ct.Minutes())
	}
	if ct.String() != "25:00" {
		t.Errorf("String() should preserve past-midnight hours, got %q", ct.String())
	}
}

func TestWindowOverlapsAndContains(t *testing.T) {
	a := Window{Start: 540, End: 780} // 09:00-13:00
	b := Window{Start: 720, End: 900} // 12:00-15:00
	c := Window{Start: 600, End: 660} // 10:00-11:00
	d := Window{Start: 780, End: 840} // 13:00-14:00 (adjacent, not overlapping)

	if !a.Overlaps(b) {
		t.Error("a and b should overlap")
	}
	if !a.Contains(c) {
		t.Error("a should contain c")
	}
	if a.Overlaps(d) {
		t.Error("half-open windows sharing an endpoint must not overlap")
	}
	if a.DurationHours() != 4 {
		t.Errorf("DurationHours() = %v, want 4", a.DurationHours())
	}
}
