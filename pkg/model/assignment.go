package model

// Assignment is one decoded x[w,s]=1 decision: a worker placed into a
// shift, plus the derived fields the output contract (spec §6) needs.
type Assignment struct {
	WorkerID       string
	ShiftID        string
	Day            Weekday
	Window         Window
	DurationHours  float64
	Cost           float64
	RequirementIdx int // which Requirement slot of the shift this fills
}

// WorkerStats is the per-worker rollup the Post-Processor computes
// (spec §4.5 "Per-worker statistics").
type WorkerStats struct {
	WorkerID   string
	TotalHours float64
	TotalCost  float64
	ShiftCount int
	Days       []Weekday
}

// Problem is the validated, normalized input (spec §4.1 output type),
// ready for the Problem Model build phase.
type Problem struct {
	Workers  []*Worker
	Shifts   []*Shift
	Budget   Budget
	Fairness Fairness
	Options  SolveOptions

	// Warnings carries non-fatal annotations raised during validation
	// (spec §4.1 "Warns (non-fatal, annotates output)").
	Warnings []string
}

// WorkerByID returns the worker with the given ID, or nil.
func (p *Problem) WorkerByID(id string) *Worker {
	for _, w := range p.Workers {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ShiftByID returns the shift with the given ID, or nil.
func (p *Problem) ShiftByID(id string) *Shift {
	for _, s := range p.Shifts {
		if s.ID == id {
			return s
		}
	}
	return nil
}
