package model

import "testing"

func TestShift_Headcount(t *testing.T) {
	s := &Shift{
		Requirements: []Requirement{
			{Role: "cook", Count: 2},
			{Role: "server", Count: 3, RequiredSkill: "bartending"},
		},
	}
	if got := s.Headcount(); got != 5 {
		t.Errorf("Headcount() = %d, want 5", got)
	}
}

func TestShift_DurationHours(t *testing.T) {
	s := &Shift{Window: Window{Start: 540, End: 1020}} // 09:00-17:00
	if got := s.DurationHours(); got != 8 {
		t.Errorf("DurationHours() = %v, want 8", got)
	}
}

func TestRequirement_Matches(t *testing.T) {
	hasAll := func(skills map[string]struct{}) func(string) bool {
		return func(s string) bool {
			_, ok := skills[s]
			return ok
		}
	}

	r := Requirement{Role: "server", RequiredSkill: "bartending"}

	if !r.Matches(hasAll(map[string]struct{}{"server": {}, "bartending": {}})) {
		t.Error("worker with role and required skill should match")
	}
	if r.Matches(hasAll(map[string]struct{}{"server": {}})) {
		t.Error("worker missing required skill should not match")
	}
	if r.Matches(hasAll(map[string]struct{}{"bartending": {}})) {
		t.Error("worker missing the role itself should not match")
	}

	plain := Requirement{Role: "cook"}
	if !plain.Matches(hasAll(map[string]struct{}{"cook": {}})) {
		t.Error("requirement with no RequiredSkill should match on role alone")
	}
}
