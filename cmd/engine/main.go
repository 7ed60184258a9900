// Command engine is the scheduling engine's file-in/file-out entrypoint
// (spec §6): argv = [input_path, output_path]. It reads the input JSON,
// runs Validator -> Model -> Seed -> Solver -> Post-Processor, and writes
// a schema-valid output document on every clean termination, including
// infeasibility. The engine reads no environment variables; all runtime
// configuration lives in the input JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/shiftforge/engine/internal/schema"
	"github.com/shiftforge/engine/pkg/logger"
	"github.com/shiftforge/engine/pkg/model"
	"github.com/shiftforge/engine/pkg/postprocess"
	"github.com/shiftforge/engine/pkg/validator"
)

func main() {
	logger.Init(logger.Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	})
	runID := uuid.New().String()
	log := logger.Get().With().Str("run_id", runID).Logger()

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: engine <input_path> <output_path>")
		os.Exit(1)
	}
	inputPath, outputPath := os.Args[1], os.Args[2]

	log.Info().Str("input", inputPath).Str("output", outputPath).Msg("engine run starting")
	if err := run(inputPath, outputPath); err != nil {
		log.Error().Err(err).Msg("engine crashed")
		os.Exit(1)
	}
}

// run carries out one solve. A non-nil error here means an internal
// failure that could not be folded into a schema-valid output document
// (spec §7: InternalError); every other terminal state, including
// ValidationError, BudgetCoverageConflict, and Infeasible, is written to
// outputPath and returns nil so the process exits 0.
func run(inputPath, outputPath string) error {
	raw, err := readInput(inputPath)
	if err != nil {
		return writeOutput(outputPath, failureOutput("ValidationError", err.Error(), nil))
	}

	problem, verr := validator.ValidateAndNormalize(raw)
	if verr != nil {
		return writeOutput(outputPath, failureOutput("ValidationError", verr.Message, verr.Fields))
	}

	report, err := postprocess.Run(problem)
	if err != nil {
		return fmt.Errorf("solve pipeline: %w", err)
	}

	if !report.Success {
		details := map[string]interface{}{}
		message := "no feasible assignment found"
		if report.Conflict != nil {
			details["min_cost"] = report.Conflict.LowerBoundCost
			details["budget"] = report.Conflict.MaxTotalCost
			message = "minimum achievable cost exceeds the budget cap"
		}
		if report.Reason == "Infeasible" {
			details["last_failing_constraint"] = report.LastFailingConstraint
			details["relaxations_applied"] = report.RelaxationsApplied
		}
		out := failureOutput(report.Reason, message, details)
		out.CoverageGaps = toSchemaGaps(report.CoverageGaps)
		return writeOutput(outputPath, out)
	}

	return writeOutput(outputPath, successOutput(problem, report))
}

func readInput(path string) (*schema.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	var in schema.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing input JSON: %w", err)
	}
	return &in, nil
}

func writeOutput(path string, out schema.Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func failureOutput(reason, message string, details interface{}) schema.Output {
	return schema.Output{
		Success:      false,
		Reason:       reason,
		Details:      details,
		CoverageGaps: []schema.CoverageGap{},
		Messages:     []string{message},
	}
}

func successOutput(problem *model.Problem, report *postprocess.Report) schema.Output {
	sol := &schema.Solution{
		Assignments:        toSchemaAssignments(report.Assignments),
		TotalCost:          report.TotalCost,
		BudgetUtilization:  report.BudgetUtilization,
		SolveTime:          report.SolveTime.Seconds(),
		Status:             string(report.Status),
		RelaxationsApplied: report.RelaxationsApplied,
		Statistics: schema.Statistics{
			NumWorkersUsed:    report.Statistics.NumWorkersUsed,
			AvgHoursPerWorker: report.Statistics.AvgHoursPerWorker,
			MaxShiftImbalance: report.Statistics.MaxShiftImbalance,
			TotalHours:        report.Statistics.TotalHours,
			FairnessGini:      report.Statistics.FairnessGini,
		},
	}

	messages := append([]string{}, problem.Warnings...)
	if len(report.RelaxationsApplied) > 0 {
		messages = append(messages, fmt.Sprintf("solved after relaxing: %v", report.RelaxationsApplied))
	}

	return schema.Output{
		Success:      true,
		Solution:     sol,
		CoverageGaps: toSchemaGaps(report.CoverageGaps),
		Messages:     messages,
	}
}

func toSchemaAssignments(in []model.Assignment) []schema.Assignment {
	out := make([]schema.Assignment, len(in))
	for i, a := range in {
		out[i] = schema.Assignment{
			WorkerID:      a.WorkerID,
			ShiftID:       a.ShiftID,
			Day:           string(a.Day),
			StartTime:     a.Window.Start.String(),
			EndTime:       a.Window.End.String(),
			DurationHours: a.DurationHours,
			Cost:          a.Cost,
		}
	}
	return out
}

func toSchemaGaps(in []postprocess.CoverageGap) []schema.CoverageGap {
	out := make([]schema.CoverageGap, len(in))
	for i, g := range in {
		out[i] = schema.CoverageGap{
			ShiftID:             g.ShiftID,
			Day:                 string(g.Day),
			StartTime:           g.Window.Start.String(),
			EndTime:             g.Window.End.String(),
			MissingCount:        g.MissingCount,
			Role:                g.Role,
			RequiredSkill:       g.RequiredSkill,
			EligibleWorkerCount: g.EligibleWorkerCount,
			Reason:              string(g.Reason),
		}
	}
	return out
}
