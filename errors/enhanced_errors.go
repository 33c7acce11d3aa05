// Package errors defines the structured validation error used across the
// canonical data container, the trip linker, and the tour extractor
// (spec §6 "structured error", §7 error kinds).
package errors

import (
	"fmt"
	"strings"

	"github.com/travel-diary/canon-engine/types"
)

// Kind classifies a CanonError per spec §7.
type Kind string

const (
	KindSchema             Kind = "schema"
	KindUniqueness         Kind = "uniqueness"
	KindForeignKey         Kind = "foreign_key"
	KindRange              Kind = "range"
	KindRequiredChild      Kind = "required_child"
	KindAlgorithmic        Kind = "algorithmic_invariant"
	KindTolerableAmbiguity Kind = "tolerable_ambiguity"
)

// CanonError is the structured error reported by the validation
// substrate and the core passes. It always carries Table/Rule/Message
// and optionally RowID/Column, matching spec §6.
type CanonError struct {
	Table   string
	Rule    string
	Kind    Kind
	Message string

	RowID  *int64
	Column string

	Severity    types.Severity
	Suggestions []string
	Context     map[string]interface{}
	Cause       error
}

// Error implements the error interface.
func (e *CanonError) Error() string {
	parts := []string{fmt.Sprintf("[%s]", e.Table)}

	if e.RowID != nil {
		parts = append(parts, fmt.Sprintf("row %d", *e.RowID))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column '%s'", e.Column))
	}
	if e.Rule != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Rule))
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, " ")
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *CanonError) Unwrap() error {
	return e.Cause
}

// New creates a CanonError for the given table/rule/message.
func New(table, rule, message string) *CanonError {
	return &CanonError{
		Table:    table,
		Rule:     rule,
		Message:  message,
		Severity: types.ERROR,
		Context:  make(map[string]interface{}),
	}
}

// WithRowID sets the offending row id.
func (e *CanonError) WithRowID(id int64) *CanonError {
	e.RowID = &id
	return e
}

// WithColumn sets the offending column name.
func (e *CanonError) WithColumn(column string) *CanonError {
	e.Column = column
	return e
}

// WithKind sets the spec §7 error kind.
func (e *CanonError) WithKind(kind Kind) *CanonError {
	e.Kind = kind
	return e
}

// WithSeverity overrides the default ERROR severity.
func (e *CanonError) WithSeverity(severity types.Severity) *CanonError {
	e.Severity = severity
	return e
}

// WithSuggestion appends a remediation suggestion.
func (e *CanonError) WithSuggestion(suggestion string) *CanonError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithContext attaches a diagnostic key/value pair.
func (e *CanonError) WithContext(key string, value interface{}) *CanonError {
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *CanonError) WithCause(cause error) *CanonError {
	e.Cause = cause
	return e
}

// ToEntry converts the error into a types.Entry for report aggregation.
func (e *CanonError) ToEntry() types.Entry {
	return types.Entry{
		Rule:     e.Rule,
		Message:  e.Error(),
		Severity: e.Severity,
		Location: types.Location{
			Table:  e.Table,
			RowID:  e.RowID,
			Column: e.Column,
		},
	}
}

// Common constructors -------------------------------------------------

// NewUniquenessError reports a duplicate value in a unique column
// (spec §7 kind 2).
func NewUniquenessError(table, column string, value interface{}, rowID int64) *CanonError {
	return New(table, fmt.Sprintf("unique:%s", column), fmt.Sprintf("duplicate value %v in unique column %q", value, column)).
		WithKind(KindUniqueness).
		WithColumn(column).
		WithRowID(rowID).
		WithSuggestion(fmt.Sprintf("ensure %s.%s is distinct across all rows", table, column))
}

// NewForeignKeyError reports a child value absent from the parent's
// unique key set (spec §7 kind 3).
func NewForeignKeyError(table, column, parentTable, parentColumn string, value interface{}, rowID int64) *CanonError {
	return New(table, fmt.Sprintf("fk:%s", column), fmt.Sprintf("value %v not found in %s.%s", value, parentTable, parentColumn)).
		WithKind(KindForeignKey).
		WithColumn(column).
		WithRowID(rowID).
		WithContext("parent_table", parentTable).
		WithContext("parent_column", parentColumn).
		WithSuggestion(fmt.Sprintf("add a %s row with %s=%v before referencing it from %s", parentTable, parentColumn, value, table))
}

// NewRangeError reports a field outside its declared bounds (spec §7
// kind 4).
func NewRangeError(table, column string, value interface{}, rowID int64, constraint string) *CanonError {
	return New(table, fmt.Sprintf("range:%s", column), fmt.Sprintf("value %v violates constraint %s", value, constraint)).
		WithKind(KindRange).
		WithColumn(column).
		WithRowID(rowID)
}

// NewRequiredFieldError reports a null field required by the current
// pipeline step (spec §7 kind 4).
func NewRequiredFieldError(table, column string, rowID int64, step string) *CanonError {
	return New(table, fmt.Sprintf("required:%s", column), fmt.Sprintf("field %q is required in step %q but is null", column, step)).
		WithKind(KindRange).
		WithColumn(column).
		WithRowID(rowID)
}

// NewRequiredChildError reports a parent row with zero children (spec
// §7 kind 5).
func NewRequiredChildError(parentTable string, parentID int64, childTable string) *CanonError {
	return New(parentTable, fmt.Sprintf("required_children:%s", childTable), fmt.Sprintf("no %s row references %s id %d", childTable, parentTable, parentID)).
		WithKind(KindRequiredChild).
		WithRowID(parentID)
}

// NewAlgorithmicInvariantError reports a core-pass invariant violation
// (spec §7 kind 6), e.g. a zero-trip tour or negative dwell.
func NewAlgorithmicInvariantError(table, rule, message string, rowID int64) *CanonError {
	return New(table, rule, message).
		WithKind(KindAlgorithmic).
		WithRowID(rowID)
}

// NewTolerableAmbiguity reports a non-fatal ambiguity (spec §7 kind 7),
// e.g. a worker with no usual work location.
func NewTolerableAmbiguity(table, rule, message string, rowID int64) *CanonError {
	return New(table, rule, message).
		WithKind(KindTolerableAmbiguity).
		WithSeverity(types.WARNING).
		WithRowID(rowID)
}

// Errors is a convenience alias for a slice of CanonErrors, with a
// helper to format them as a combined message (used by callers that
// need to raise a single Go error from a batch of findings).
type Errors []*CanonError

func (es Errors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Entries converts every error to a report entry.
func (es Errors) Entries() []types.Entry {
	entries := make([]types.Entry, 0, len(es))
	for _, e := range es {
		entries = append(entries, e.ToEntry())
	}
	return entries
}
