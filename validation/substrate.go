package validation

import (
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/keyregistry"
	"github.com/travel-diary/canon-engine/model"
	"github.com/travel-diary/canon-engine/schema"
)

// tableEntry pairs a canonical table name with its row slice and
// parsed schema, used to drive the substrate's table-agnostic layers.
type tableEntry struct {
	name string
	rows interface{}
	spec *schema.Spec
}

func tableEntries(tables Tables) []tableEntry {
	return []tableEntry{
		{"household", tables.Households(), schema.Of(model.Household{})},
		{"person", tables.Persons(), schema.Of(model.Person{})},
		{"day", tables.Days(), schema.Of(model.Day{})},
		{"unlinked_trip", tables.UnlinkedTrips(), schema.Of(model.UnlinkedTrip{})},
		{"linked_trip", tables.LinkedTrips(), schema.Of(model.LinkedTrip{})},
		{"tour", tables.Tours(), schema.Of(model.Tour{})},
	}
}

func findEntry(entries []tableEntry, name string) (tableEntry, bool) {
	for _, e := range entries {
		if e.name == name {
			return e, true
		}
	}
	return tableEntry{}, false
}

// Substrate orchestrates the five-layer validation substrate (spec
// §4.3) over the six canonical tables.
type Substrate struct {
	Custom           *CustomRegistry
	RowBatchSize     int
	MaxErrorsPerRule int
	OnProgress       ProgressFunc
}

// NewSubstrate creates a substrate with the given custom-check
// registry and default batch/error-cap settings.
func NewSubstrate(custom *CustomRegistry) *Substrate {
	if custom == nil {
		custom = NewCustomRegistry()
	}
	return &Substrate{
		Custom:           custom,
		RowBatchSize:     RowBatchSize,
		MaxErrorsPerRule: MaxErrorsPerRule,
	}
}

// ValidateTable runs the five-layer substrate scoped to one table:
// its own uniqueness and row-level checks, its foreign keys against
// already-registered parents, any custom checks registered for it,
// and any required-children obligations it places on its own parent
// tables. Layer ordering follows spec §4.3 exactly.
func (s *Substrate) ValidateTable(tables Tables, table, step string) []*canonerrors.CanonError {
	entries := tableEntries(tables)
	target, ok := findEntry(entries, table)
	if !ok {
		return []*canonerrors.CanonError{
			canonerrors.New(table, "unknown_table", "no such canonical table").WithKind(canonerrors.KindSchema),
		}
	}

	reg := keyregistry.New()
	for _, e := range entries {
		keyregistry.CheckUnique(e.name, e.rows, e.spec, reg)
	}

	var errs []*canonerrors.CanonError

	// Layer 1: uniqueness, scoped to this table.
	errs = append(errs, keyregistry.CheckUnique(target.name, target.rows, target.spec, keyregistry.New())...)

	// Layer 2: foreign keys, against the full registry built above.
	errs = append(errs, keyregistry.CheckForeignKeys(target.name, target.rows, target.spec, reg)...)

	// Layer 3: row-level, step-aware.
	errs = append(errs, CheckRowLevel(target.name, target.rows, target.spec, RowLevelOptions{
		Step:             step,
		BatchSize:        s.RowBatchSize,
		MaxErrorsPerRule: s.MaxErrorsPerRule,
		OnProgress:       s.OnProgress,
	})...)

	// Layer 4: custom table validators registered for this table.
	errs = append(errs, s.Custom.RunFor(target.name, tables)...)

	// Layer 5: required children this table places on its parents.
	for _, fk := range target.spec.RequiredChildFKs() {
		parent, ok := findEntry(entries, fk.FK.Table)
		if !ok {
			continue
		}
		errs = append(errs, keyregistry.CheckRequiredChildren(parent.name, parent.rows, parent.spec, target.name, target.rows, fk)...)
	}

	return errs
}

// ValidateAll runs ValidateTable for every canonical table, in
// dependency order (spec §2's leaves-first ordering), returning the
// combined findings.
func (s *Substrate) ValidateAll(tables Tables, step string) []*canonerrors.CanonError {
	var all []*canonerrors.CanonError
	for _, e := range tableEntries(tables) {
		all = append(all, s.ValidateTable(tables, e.name, step)...)
	}
	return all
}
