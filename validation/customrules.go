package validation

import (
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/model"
)

// Tables is the read-only view of the six canonical tables a custom
// check runs against. package container implements it.
type Tables interface {
	Households() []model.Household
	Persons() []model.Person
	Days() []model.Day
	UnlinkedTrips() []model.UnlinkedTrip
	LinkedTrips() []model.LinkedTrip
	Tours() []model.Tour
}

// CustomCheckFunc is a user-registered table check (spec §4.3 layer
// 4). Go has no runtime parameter-name reflection, so instead of the
// source's decorator-with-introspection pattern, a check explicitly
// names the tables it needs; CustomRegistry always passes the full
// Tables view and trusts the function to read only what it declared.
type CustomCheckFunc func(Tables) []*canonerrors.CanonError

// customCheck pairs a registered function with the table names it
// declared an interest in, for diagnostics and selective re-running.
type customCheck struct {
	tableNames []string
	fn         CustomCheckFunc
}

// CustomRegistry holds user-registered custom table validators,
// keyed by the table name(s) they were registered against (spec
// §4.3 layer 4, §4.6 "decorator keyed on one or more table names").
type CustomRegistry struct {
	checks []customCheck
}

// NewCustomRegistry creates an empty custom-check registry.
func NewCustomRegistry() *CustomRegistry {
	return &CustomRegistry{}
}

// Register adds a check that will run whenever any of tableNames is
// validated.
func (r *CustomRegistry) Register(tableNames []string, fn CustomCheckFunc) {
	r.checks = append(r.checks, customCheck{tableNames: tableNames, fn: fn})
}

// RunFor runs every registered check whose table-name list includes
// table, against the given Tables view.
func (r *CustomRegistry) RunFor(table string, tables Tables) []*canonerrors.CanonError {
	var errs []*canonerrors.CanonError
	for _, c := range r.checks {
		if containsName(c.tableNames, table) {
			errs = append(errs, c.fn(tables)...)
		}
	}
	return errs
}

// RunAll runs every registered check exactly once, regardless of
// which tables it names.
func (r *CustomRegistry) RunAll(tables Tables) []*canonerrors.CanonError {
	var errs []*canonerrors.CanonError
	for _, c := range r.checks {
		errs = append(errs, c.fn(tables)...)
	}
	return errs
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
