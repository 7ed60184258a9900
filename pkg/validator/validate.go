// Package validator implements the Input Validator & Normalizer (spec
// §4.1): it turns the raw wire schema into the canonical pkg/model types,
// rejecting structurally bad input and warning on suspicious-but-legal
// values, in the source repo's conflict-detector style
// (pkg/validator/conflict.go) of one pass per concern over the input.
package validator

import (
	"fmt"
	"sort"

	apperrors "github.com/shiftforge/engine/pkg/errors"
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/internal/schema"
)

// ValidateAndNormalize implements spec §4.1's
// validate_and_normalize(raw) → Model | ValidationError.
func ValidateAndNormalize(raw *schema.Input) (*model.Problem, *apperrors.AppError) {
	ve := &apperrors.ValidationErrors{}

	if len(raw.Workers) == 0 {
		ve.Add("workers", "must not be empty")
	}
	if len(raw.Shifts) == 0 {
		ve.Add("shifts", "must not be empty")
	}
	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	problem := &model.Problem{}

	workers, warnings := normalizeWorkers(raw.Workers, ve)
	problem.Workers = workers
	problem.Warnings = append(problem.Warnings, warnings...)

	shifts := normalizeShifts(raw.Shifts, ve)
	problem.Shifts = shifts

	problem.Budget, problem.Warnings = normalizeBudget(raw.Budget, ve, problem.Warnings)
	problem.Fairness = normalizeFairness(raw.Fairness, ve)
	problem.Options = normalizeOptions(raw.Constraints)

	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}
	return problem, nil
}

func normalizeWorkers(raw []schema.Worker, ve *apperrors.ValidationErrors) ([]*model.Worker, []string) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]*model.Worker, 0, len(raw))
	var warnings []string

	for i, w := range raw {
		if w.ID == "" {
			ve.Add(fmt.Sprintf("workers[%d].id", i), "must not be empty")
			continue
		}
		if _, dup := seen[w.ID]; dup {
			ve.Add("workers.id", fmt.Sprintf("duplicate id %q", w.ID))
			continue
		}
		seen[w.ID] = struct{}{}

		if w.HourlyRate < 0 {
			ve.Add(fmt.Sprintf("workers[%s].hourly_rate", w.ID), "must be non-negative")
			continue
		}
		rate := w.HourlyRate
		if rate > model.MaxRateCapUSD {
			rate = model.MaxRateCapUSD
		}
		if rate > model.HighRateWarningThresholdUSD {
			warnings = append(warnings, fmt.Sprintf("worker %q hourly_rate %.2f exceeds %.0f", w.ID, w.HourlyRate, model.HighRateWarningThresholdUSD))
		}

		if w.MaxHours <= 0 || w.MaxHours > 168 {
			ve.Add(fmt.Sprintf("workers[%s].max_hours", w.ID), "must be in (0, 168]")
			continue
		}
		minHours := 0.0
		if w.MinHours != nil {
			minHours = *w.MinHours
		}
		if minHours < 0 || minHours > w.MaxHours {
			ve.Add(fmt.Sprintf("workers[%s].min_hours", w.ID), "must satisfy 0 <= min_hours <= max_hours")
			continue
		}

		skills := make(map[string]struct{}, len(w.Skills))
		for _, s := range w.Skills {
			skills[s] = struct{}{}
		}

		avail, err := normalizeAvailability(w.Availability)
		if err != nil {
			ve.Add(fmt.Sprintf("workers[%s].availability", w.ID), err.Error())
			continue
		}

		out = append(out, &model.Worker{
			ID:           w.ID,
			Skills:       skills,
			HourlyRate:   rate,
			MaxHours:     w.MaxHours,
			MinHours:     minHours,
			Availability: avail,
		})
	}
	return out, warnings
}

// normalizeAvailability parses each window, groups by canonical day, and
// merges overlapping or touching windows per day (spec §4.1: "Merges
// overlapping availability windows per worker per day").
func normalizeAvailability(raw []schema.Availability) (map[model.Weekday]model.Availability, error) {
	byDay := make(map[model.Weekday][]model.Window)

	for _, a := range raw {
		day, ok := model.ParseWeekday(a.Day)
		if !ok {
			return nil, fmt.Errorf("unrecognized day %q", a.Day)
		}
		start, err := model.ParseClockTime(a.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := model.ParseClockTime(a.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, fmt.Errorf("window start %s must be before end %s", a.StartTime, a.EndTime)
		}
		byDay[day] = append(byDay[day], model.Window{Start: start, End: end})
	}

	out := make(map[model.Weekday]model.Availability, len(byDay))
	for day, windows := range byDay {
		out[day] = model.Availability{Day: day, Windows: mergeWindows(windows)}
	}
	return out, nil
}

func mergeWindows(windows []model.Window) []model.Window {
	if len(windows) == 0 {
		return windows
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	merged := []model.Window{windows[0]}
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

func normalizeShifts(raw []schema.Shift, ve *apperrors.ValidationErrors) []*model.Shift {
	seen := make(map[string]struct{}, len(raw))
	out := make([]*model.Shift, 0, len(raw))

	for i, s := range raw {
		if s.ID == "" {
			ve.Add(fmt.Sprintf("shifts[%d].id", i), "must not be empty")
			continue
		}
		if _, dup := seen[s.ID]; dup {
			ve.Add("shifts.id", fmt.Sprintf("duplicate id %q", s.ID))
			continue
		}
		seen[s.ID] = struct{}{}

		day, ok := model.ParseWeekday(s.Day)
		if !ok {
			ve.Add(fmt.Sprintf("shifts[%s].day", s.ID), fmt.Sprintf("unrecognized day %q", s.Day))
			continue
		}
		start, err := model.ParseClockTime(s.StartTime)
		if err != nil {
			ve.Add(fmt.Sprintf("shifts[%s].start_time", s.ID), err.Error())
			continue
		}
		end, err := model.ParseClockTime(s.EndTime)
		if err != nil {
			ve.Add(fmt.Sprintf("shifts[%s].end_time", s.ID), err.Error())
			continue
		}
		if start >= end {
			ve.Add(fmt.Sprintf("shifts[%s].end_time", s.ID), "must be after start_time")
			continue
		}

		shiftType, ok := model.ParseShiftType(s.ShiftType)
		if !ok {
			ve.Add(fmt.Sprintf("shifts[%s].shift_type", s.ID), fmt.Sprintf("unrecognized shift_type %q", s.ShiftType))
			continue
		}

		if len(s.Requirements) == 0 {
			ve.Add(fmt.Sprintf("shifts[%s].requirements", s.ID), "must not be empty")
			continue
		}
		reqs := make([]model.Requirement, 0, len(s.Requirements))
		badReq := false
		for j, r := range s.Requirements {
			if r.Role == "" {
				ve.Add(fmt.Sprintf("shifts[%s].requirements[%d].role", s.ID, j), "must not be empty")
				badReq = true
				continue
			}
			if r.Count <= 0 {
				ve.Add(fmt.Sprintf("shifts[%s].requirements[%d].count", s.ID, j), "must be positive")
				badReq = true
				continue
			}
			skill := ""
			if r.RequiredSkill != nil {
				skill = *r.RequiredSkill
			}
			reqs = append(reqs, model.Requirement{Role: r.Role, Count: r.Count, RequiredSkill: skill})
		}
		if badReq {
			continue
		}

		out = append(out, &model.Shift{
			ID:                    s.ID,
			Day:                   day,
			Window:                model.Window{Start: start, End: end},
			ShiftType:             shiftType,
			Requirements:          reqs,
			RequiresOpeningDuties: s.RequiresOpeningDuties,
			RequiresClosingDuties: s.RequiresClosingDuties,
		})
	}
	return out
}

func normalizeBudget(raw schema.Budget, ve *apperrors.ValidationErrors, warnings []string) (model.Budget, []string) {
	b := model.Budget{}
	if raw.MaxTotalCost <= 0 {
		ve.Add("budget.max_total_cost", "must be positive")
		return b, warnings
	}
	b.MaxTotalCost = raw.MaxTotalCost

	if raw.MaxDailyCost != nil {
		if *raw.MaxDailyCost > raw.MaxTotalCost {
			ve.Add("budget.max_daily_cost", "must not exceed max_total_cost")
			return b, warnings
		}
		b.MaxDailyCost = *raw.MaxDailyCost
	}
	if raw.TargetCost != nil {
		if *raw.TargetCost > raw.MaxTotalCost {
			ve.Add("budget.target_cost", "must not exceed max_total_cost")
			return b, warnings
		}
		b.TargetCost = *raw.TargetCost
	}
	if b.MaxTotalCost > 1_000_000 {
		warnings = append(warnings, fmt.Sprintf("budget.max_total_cost %.2f exceeds 1,000,000", b.MaxTotalCost))
	}
	return b, warnings
}

func normalizeFairness(raw schema.Fairness, ve *apperrors.ValidationErrors) model.Fairness {
	if raw.MaxConsecutiveDays <= 0 {
		ve.Add("fairness.max_consecutive_days", "must be positive")
	}
	if raw.MinRestHours < 0 {
		ve.Add("fairness.min_rest_hours", "must be non-negative")
	}
	f := model.Fairness{
		MaxConsecutiveDays: raw.MaxConsecutiveDays,
		MinRestHours:       raw.MinRestHours,
	}
	if raw.MaxShiftImbalance != nil {
		f.MaxShiftImbalance = *raw.MaxShiftImbalance
	}
	return f
}

func normalizeOptions(raw schema.Constraints) model.SolveOptions {
	opts := model.SolveOptions{
		TimeLimitSeconds: raw.TimeLimit,
		PreferFairness:   raw.PreferFairness,
		AllowOvertime:    raw.AllowOvertime,
	}
	if opts.TimeLimitSeconds <= 0 {
		opts.TimeLimitSeconds = model.DefaultTimeLimitSeconds
	}
	if raw.RandomSeed != nil {
		opts.RandomSeed = *raw.RandomSeed
	}
	return opts
}
