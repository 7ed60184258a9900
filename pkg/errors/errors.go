// Package errors provides the engine's tagged error framework.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure, independent of its message.
type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"

	// Validator & Normalizer (spec §4.1).
	CodeEmptyInput  Code = "EMPTY_INPUT"
	CodeSchemaError Code = "SCHEMA_ERROR"
	CodeRangeError  Code = "RANGE_ERROR"
	CodeDuplicateID Code = "DUPLICATE_ID"

	// Solve outcomes (spec §7).
	CodeBudgetCoverageConflict Code = "BUDGET_COVERAGE_CONFLICT"
	CodeInfeasible             Code = "INFEASIBLE"
	CodeNoFeasibleSolution     Code = "NO_FEASIBLE_SOLUTION"
	CodeTimeLimit              Code = "TIME_LIMIT"
)

// AppError is the engine's single error type: a code, a human message,
// optional cause and structured fields for logging and the output envelope.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New builds a bare AppError of the given code.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches code and message to an underlying error.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code from err, or CodeUnknown if err is not an AppError.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// SchemaError reports a structurally malformed field (spec §4.1).
func SchemaError(field, reason string) *AppError {
	return New(CodeSchemaError, fmt.Sprintf("field %q: %s", field, reason)).WithField("field", field)
}

// RangeError reports a field whose value falls outside its valid domain.
func RangeError(field string, value interface{}) *AppError {
	return New(CodeRangeError, fmt.Sprintf("field %q out of range: %v", field, value)).
		WithField("field", field).WithField("value", value)
}

// DuplicateID reports an id collision within one entity kind.
func DuplicateID(kind, id string) *AppError {
	return New(CodeDuplicateID, fmt.Sprintf("duplicate %s id %q", kind, id)).
		WithField("kind", kind).WithField("id", id)
}

// EmptyInput reports a required collection (workers, shifts) with no entries.
func EmptyInput(what string) *AppError {
	return New(CodeEmptyInput, fmt.Sprintf("%s must not be empty", what))
}

// BudgetCoverageConflict reports the pre-flight proof that no assignment can
// satisfy both the coverage minimum and the budget cap (spec §4.5).
func BudgetCoverageConflict(minCost, budget float64) *AppError {
	return New(CodeBudgetCoverageConflict, "minimum achievable cost exceeds the budget cap").
		WithField("min_cost", minCost).WithField("budget", budget)
}

// Infeasible reports that the solver and the full relaxation ladder were
// exhausted without a feasible assignment (spec §4.5).
func Infeasible(lastFailingConstraint string) *AppError {
	return New(CodeInfeasible, "no feasible assignment found").
		WithField("last_failing_constraint", lastFailingConstraint)
}

// ValidationErrors aggregates the field-level problems the Validator found.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add appends one field-level validation failure.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any field failed validation.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError folds the collected field errors into a single AppError for
// the output envelope (spec §7: "every terminal state maps to exactly one
// success/false envelope").
func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeSchemaError, "input validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
