package model

// Requirement is one line of a shift's headcount demand: a role, how
// many workers it needs, and an optional specialization skill beyond
// the role itself (spec §3 Shift.requirements).
type Requirement struct {
	Role          string
	Count         int
	RequiredSkill string // empty means no specialization beyond Role
}

// Shift is a work interval on a specific day with role/skill demand
// (spec §3 Shift).
type Shift struct {
	ID                    string
	Day                   Weekday
	Window                Window
	ShiftType             ShiftType
	Requirements          []Requirement
	RequiresOpeningDuties bool
	RequiresClosingDuties bool
}

// Headcount returns the total number of workers demanded across all
// requirements (spec §3: "total headcount = Σcount").
func (s *Shift) Headcount() int {
	total := 0
	for _, r := range s.Requirements {
		total += r.Count
	}
	return total
}

// DurationHours is the shift's length in hours, derived from its window.
func (s *Shift) DurationHours() float64 {
	return s.Window.DurationHours()
}

// Matches reports whether a requirement is satisfiable by a worker
// carrying the given skill set (spec §3 eligibility relation E).
func (r Requirement) Matches(hasSkill func(string) bool) bool {
	if !hasSkill(r.Role) {
		return false
	}
	if r.RequiredSkill != "" && !hasSkill(r.RequiredSkill) {
		return false
	}
	return true
}
