package model

import "testing"

func TestWorker_HasSkill(t *testing.T) {
	w := &Worker{Skills: map[string]struct{}{"cook": {}, "server": {}}}

	tests := []struct {
		skill    string
		expected bool
	}{
		{"cook", true},
		{"server", true},
		{"host", false},
		{"", false},
	}

	for _, tt := range tests {
		if result := w.HasSkill(tt.skill); result != tt.expected {
			t.Errorf("HasSkill(%q) = %v, expected %v", tt.skill, result, tt.expected)
		}
	}
}

func TestWorker_AvailableOn(t *testing.T) {
	w := &Worker{
		Availability: map[Weekday]Availability{
			Monday: {Day: Monday, Windows: []Window{{Start: 540, End: 1020}}}, // 09:00-17:00
		},
	}

	if !w.AvailableOn(Monday, Window{Start: 600, End: 900}) {
		t.Error("window fully inside Monday availability should be available")
	}
	if w.AvailableOn(Monday, Window{Start: 600, End: 1080}) {
		t.Error("window extending past availability end should not be available")
	}
	if w.AvailableOn(Tuesday, Window{Start: 600, End: 900}) {
		t.Error("worker has no Tuesday availability")
	}
}

func TestAvailability_Covers(t *testing.T) {
	a := Availability{Windows: []Window{{Start: 480, End: 720}, {Start: 1020, End: 1260}}}

	if !a.Covers(Window{Start: 500, End: 600}) {
		t.Error("should cover window inside first block")
	}
	if !a.Covers(Window{Start: 1020, End: 1200}) {
		t.Error("should cover window inside second block")
	}
	if a.Covers(Window{Start: 700, End: 1030}) {
		t.Error("should not cover a window spanning the gap between blocks")
	}
}
