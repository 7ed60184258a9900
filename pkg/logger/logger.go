// Package logger provides the engine's structured logging setup.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls the global logger. The engine reads no environment
// variables at runtime (spec §6); callers (cmd/engine) build this from
// flags or defaults, never from the input JSON.
type Config struct {
	Level      string
	Format     string // json/console
	Output     string // stdout/stderr/file
	FilePath   string
	TimeFormat string
}

// DefaultConfig returns the engine's out-of-the-box logging setup.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}
}

// Init sets up the process-wide logger exactly once.
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer
		switch cfg.Output {
		case "stdout":
			output = os.Stdout
		case "file":
			if cfg.FilePath != "" {
				if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
					output = f
				} else {
					output = os.Stderr
				}
			} else {
				output = os.Stderr
			}
		default:
			output = os.Stderr
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{Out: output, TimeFormat: cfg.TimeFormat}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the process-wide logger, initializing it with defaults on
// first use if Init was never called explicitly.
func Get() *zerolog.Logger {
	Init(DefaultConfig()) // no-op once Init has run
	return &logger
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// SchedulerLogger attaches component=scheduler and logs the pipeline's
// major lifecycle events with structured fields, never formatted strings
// that swallow them.
type SchedulerLogger struct {
	base *zerolog.Logger
}

func NewSchedulerLogger() *SchedulerLogger {
	l := Get().With().Str("component", "scheduler").Logger()
	return &SchedulerLogger{base: &l}
}

// StartSolve logs the beginning of a solve over a given problem size.
func (l *SchedulerLogger) StartSolve(workers, shifts int, timeLimitSeconds int) {
	l.base.Info().
		Int("workers", workers).
		Int("shifts", shifts).
		Int("time_limit_seconds", timeLimitSeconds).
		Msg("starting solve")
}

// RelaxationApplied logs one step of the infeasibility relaxation ladder.
func (l *SchedulerLogger) RelaxationApplied(step string) {
	l.base.Warn().
		Str("relaxation", step).
		Msg("relaxation applied after infeasible solve")
}

// CoverageGap logs one uncovered-demand record at debug level.
func (l *SchedulerLogger) CoverageGap(shiftID, reason string, missing int) {
	l.base.Debug().
		Str("shift_id", shiftID).
		Str("reason", reason).
		Int("missing_count", missing).
		Msg("coverage gap")
}

// InvariantViolation logs one invariant breach found by the
// post-extraction sanity pass (pkg/constraint.Checker). A clean solve
// should never produce one.
func (l *SchedulerLogger) InvariantViolation(invariant, workerID, message string) {
	l.base.Error().
		Str("invariant", invariant).
		Str("worker_id", workerID).
		Str("detail", message).
		Msg("post-extraction invariant violation")
}

// SolveComplete logs the final outcome of a solve.
func (l *SchedulerLogger) SolveComplete(status string, duration time.Duration, totalCost float64) {
	l.base.Info().
		Str("status", status).
		Dur("duration", duration).
		Float64("total_cost", totalCost).
		Msg("solve complete")
}
