// Package problem builds the Problem Model's derived tables (spec §4.2):
// the eligibility matrix, overlap adjacency, cost matrix, and per-shift
// difficulty score the Seed Builder and Constraint Solver both consume.
// Build is a pure function of validated input, grounded on the source
// repo's constraint.Context index-building pattern
// (pkg/scheduler/constraint/constraint.go's employeeMap/shiftMap/
// assignmentsByEmp indexes), generalized from "index assignments" to
// "index eligibility and overlap".
package problem

import (
	"sort"

	"github.com/shiftforge/engine/pkg/model"
)

// Fixed difficulty-score weights (spec §4.3), exposed as constants so
// tests can assert against them.
const (
	WeightHeadcount  = 1.0
	WeightRarity     = 2.0
	WeightPressure   = 1.5
	WeightDutyWeight = 0.5
)

// ShiftReqKey identifies one requirement slot of one shift.
type ShiftReqKey struct {
	ShiftID string
	ReqIdx  int
}

// WorkerShiftKey identifies one (worker, shift) pair.
type WorkerShiftKey struct {
	WorkerID string
	ShiftID  string
}

// Index holds every table the Seed Builder and Constraint Solver need,
// computed once and never mutated (spec §4.2 "Build phase").
type Index struct {
	Problem *model.Problem

	// EligibleByReq lists eligible workers per requirement slot (spec
	// §3 eligibility relation E, partitioned per requirement per H2).
	EligibleByReq map[ShiftReqKey][]*model.Worker

	// EligibleByShift lists the union of workers eligible for any
	// requirement of a shift, deduplicated.
	EligibleByShift map[string][]*model.Worker

	// Overlap lists, per shift, the IDs of other shifts on the same day
	// whose windows intersect (spec §3 overlap relation O).
	Overlap map[string][]string

	// Cost is cost[w,s] = hourly_rate(w) * duration_hours(s).
	Cost map[WorkerShiftKey]float64

	// Difficulty is the per-shift score of spec §4.3, higher scheduled first.
	Difficulty map[string]float64

	shiftByID  map[string]*model.Shift
	workerByID map[string]*model.Worker
}

// Build computes every derived table from a validated Problem.
func Build(p *model.Problem) *Index {
	idx := &Index{
		Problem:         p,
		EligibleByReq:   make(map[ShiftReqKey][]*model.Worker),
		EligibleByShift: make(map[string][]*model.Worker),
		Overlap:         make(map[string][]string),
		Cost:            make(map[WorkerShiftKey]float64),
		Difficulty:      make(map[string]float64),
		shiftByID:       make(map[string]*model.Shift, len(p.Shifts)),
		workerByID:      make(map[string]*model.Worker, len(p.Workers)),
	}
	for _, s := range p.Shifts {
		idx.shiftByID[s.ID] = s
	}
	for _, w := range p.Workers {
		idx.workerByID[w.ID] = w
	}

	idx.buildEligibility()
	idx.buildOverlap()
	idx.buildCost()
	idx.buildDifficulty()
	return idx
}

func (idx *Index) buildEligibility() {
	for _, s := range idx.Problem.Shifts {
		seen := make(map[string]struct{})
		var union []*model.Worker
		for r, req := range s.Requirements {
			key := ShiftReqKey{ShiftID: s.ID, ReqIdx: r}
			var eligible []*model.Worker
			for _, w := range idx.Problem.Workers {
				if !req.Matches(w.HasSkill) {
					continue
				}
				if !w.AvailableOn(s.Day, s.Window) {
					continue
				}
				eligible = append(eligible, w)
				if _, dup := seen[w.ID]; !dup {
					seen[w.ID] = struct{}{}
					union = append(union, w)
				}
			}
			idx.EligibleByReq[key] = eligible
		}
		idx.EligibleByShift[s.ID] = union
	}
}

// buildOverlap is the cached O(|S|^2) adjacency table (spec §3: "|S| <=
// 5000 bound" makes this tractable), built once and never recomputed
// inside the solver loop (spec §9 design note).
func (idx *Index) buildOverlap() {
	byDay := make(map[model.Weekday][]*model.Shift)
	for _, s := range idx.Problem.Shifts {
		byDay[s.Day] = append(byDay[s.Day], s)
	}
	for _, shifts := range byDay {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				if shifts[i].Window.Overlaps(shifts[j].Window) {
					idx.Overlap[shifts[i].ID] = append(idx.Overlap[shifts[i].ID], shifts[j].ID)
					idx.Overlap[shifts[j].ID] = append(idx.Overlap[shifts[j].ID], shifts[i].ID)
				}
			}
		}
	}
}

func (idx *Index) buildCost() {
	for _, s := range idx.Problem.Shifts {
		for _, w := range idx.EligibleByShift[s.ID] {
			idx.Cost[WorkerShiftKey{WorkerID: w.ID, ShiftID: s.ID}] = w.HourlyRate * s.DurationHours()
		}
	}
}

// buildDifficulty computes spec §4.3's difficulty(s), used both to order
// the Seed Builder's greedy pass and the solver's variable-creation order.
func (idx *Index) buildDifficulty() {
	for _, s := range idx.Problem.Shifts {
		headcount := float64(s.Headcount())

		eligibleCount := len(idx.EligibleByShift[s.ID])
		rarity := 1.0
		if eligibleCount > 0 {
			rarity = 1.0 / float64(eligibleCount)
		}

		pressure := timePressure(idx, s)

		dutyWeight := 0.0
		if s.RequiresOpeningDuties {
			dutyWeight++
		}
		if s.RequiresClosingDuties {
			dutyWeight++
		}

		idx.Difficulty[s.ID] = WeightHeadcount*headcount +
			WeightRarity*rarity +
			WeightPressure*pressure +
			WeightDutyWeight*dutyWeight
	}
}

// timePressure is inversely proportional to the average scheduling slack
// eligible workers have around this shift: the average excess of their
// covering availability window over the shift's own duration. A shift
// that exactly matches its workers' availability has zero slack and
// maximal pressure.
func timePressure(idx *Index, s *model.Shift) float64 {
	eligible := idx.EligibleByShift[s.ID]
	if len(eligible) == 0 {
		return 1.0
	}
	shiftHours := s.DurationHours()
	totalSlack := 0.0
	for _, w := range eligible {
		totalSlack += availabilitySlackHours(w, s)
	}
	avgSlack := totalSlack / float64(len(eligible))
	_ = shiftHours
	return 1.0 / (1.0 + avgSlack)
}

func availabilitySlackHours(w *model.Worker, s *model.Shift) float64 {
	avail, ok := w.Availability[s.Day]
	if !ok {
		return 0
	}
	best := -1.0
	for _, win := range avail.Windows {
		if !win.Contains(s.Window) {
			continue
		}
		slack := win.DurationHours() - s.DurationHours()
		if best < 0 || slack < best {
			best = slack
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// OrderByDifficulty returns shifts sorted by descending difficulty, ties
// broken by (day, start) then by id lexicographic (spec §4.3).
func (idx *Index) OrderByDifficulty() []*model.Shift {
	out := make([]*model.Shift, len(idx.Problem.Shifts))
	copy(out, idx.Problem.Shifts)
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i], out[j]
		di, dj := idx.Difficulty[si.ID], idx.Difficulty[sj.ID]
		if di != dj {
			return di > dj
		}
		if si.Day.Index() != sj.Day.Index() {
			return si.Day.Index() < sj.Day.Index()
		}
		if si.Window.Start != sj.Window.Start {
			return si.Window.Start < sj.Window.Start
		}
		return si.ID < sj.ID
	})
	return out
}

func (idx *Index) ShiftByID(id string) *model.Shift  { return idx.shiftByID[id] }
func (idx *Index) WorkerByID(id string) *model.Worker { return idx.workerByID[id] }
