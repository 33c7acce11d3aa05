// Package testutil provides canonical-row fixture builders and a
// fluent report-assertion helper shared by this module's _test.go
// files, adapted from the teacher's AssertValidationResult idiom.
package testutil

import (
	"testing"
	"time"

	"github.com/travel-diary/canon-engine/model"
	"github.com/travel-diary/canon-engine/types"
)

// NewHousehold builds a minimally valid household row for tests,
// with any zero-value fields overridden by opts.
func NewHousehold(hhID int64, opts ...func(*model.Household)) model.Household {
	h := model.Household{
		HhID:        hhID,
		HomeLat:     37.7,
		HomeLon:     -122.4,
		HomeTaz:     100,
		NumPeople:   1,
		NumVehicles: 1,
		NumWorkers:  1,
		HhWeight:    1,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// NewPerson builds a minimally valid person row, defaulting to a
// full-time worker with no usual work/school location.
func NewPerson(personID, hhID int64, opts ...func(*model.Person)) model.Person {
	p := model.Person{
		PersonID:   personID,
		HhID:       hhID,
		PersonNum:  1,
		Employment: 1,
		Student:    0,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithWorkLocation sets a person's usual work coordinates.
func WithWorkLocation(lat, lon float64) func(*model.Person) {
	return func(p *model.Person) {
		p.WorkLat = &lat
		p.WorkLon = &lon
	}
}

// WithSchoolLocation sets a person's usual school coordinates.
func WithSchoolLocation(lat, lon float64) func(*model.Person) {
	return func(p *model.Person) {
		p.SchoolLat = &lat
		p.SchoolLon = &lon
	}
}

// NewDay builds a minimally valid day row for person personID.
func NewDay(dayID, personID, hhID int64, opts ...func(*model.Day)) model.Day {
	d := model.Day{
		DayID:      dayID,
		PersonID:   personID,
		HhID:       hhID,
		PersonNum:  1,
		DayNum:     1,
		TravelDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		TravelDow:  1,
		IsComplete: true,
		DayWeight:  1,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewUnlinkedTrip builds a minimally valid unlinked-trip row between
// two points with the given purpose/mode categories.
func NewUnlinkedTrip(tripID, dayID, personID, hhID int64, depart, arrive time.Time, oLat, oLon, dLat, dLon float64, oPurpose, dPurpose, mode int) model.UnlinkedTrip {
	return model.UnlinkedTrip{
		TripID:           tripID,
		DayID:            dayID,
		PersonID:         personID,
		HhID:             hhID,
		DepartTime:       depart,
		ArriveTime:       arrive,
		OLat:             oLat,
		OLon:             oLon,
		DLat:             dLat,
		DLon:             dLon,
		OPurposeCategory: oPurpose,
		DPurposeCategory: dPurpose,
		ModeType:         mode,
		NumTravelers:     1,
		Distance:         1,
		Duration:         arrive.Sub(depart).Minutes(),
	}
}

// AssertReport provides fluent assertions over a types.Report, the
// way the teacher's AssertValidationResult wraps a ValidationReport.
type AssertReport struct {
	t      *testing.T
	report *types.Report
}

// NewAssertReport creates a fluent assertion helper over report.
func NewAssertReport(t *testing.T, report *types.Report) *AssertReport {
	t.Helper()
	return &AssertReport{t: t, report: report}
}

// HasNoIssues asserts the report carries zero entries.
func (a *AssertReport) HasNoIssues() *AssertReport {
	a.t.Helper()
	if len(a.report.Entries) > 0 {
		a.t.Errorf("expected no validation issues, found %d", len(a.report.Entries))
		a.printEntries()
	}
	return a
}

// HasIssues asserts the report carries exactly expectedCount entries.
func (a *AssertReport) HasIssues(expectedCount int) *AssertReport {
	a.t.Helper()
	if got := len(a.report.Entries); got != expectedCount {
		a.t.Errorf("expected %d validation issues, found %d", expectedCount, got)
		a.printEntries()
	}
	return a
}

// HasEntryWithRule asserts at least one entry was reported under rule.
func (a *AssertReport) HasEntryWithRule(rule string) *AssertReport {
	a.t.Helper()
	for _, e := range a.report.Entries {
		if e.Rule == rule {
			return a
		}
	}
	a.t.Errorf("expected an entry for rule %q, none found", rule)
	a.printEntries()
	return a
}

// HasEntryInTable asserts at least one entry was reported against table.
func (a *AssertReport) HasEntryInTable(table string) *AssertReport {
	a.t.Helper()
	for _, e := range a.report.Entries {
		if e.Location.Table == table {
			return a
		}
	}
	a.t.Errorf("expected an entry in table %q, none found", table)
	a.printEntries()
	return a
}

// IsValid asserts the report has no ERROR/CRITICAL entries.
func (a *AssertReport) IsValid() *AssertReport {
	a.t.Helper()
	if a.report.HasError() {
		a.t.Error("expected the report to be clean (no ERROR/CRITICAL entries), but it has some")
		a.printEntries()
	}
	return a
}

// IsInvalid asserts the report has at least one ERROR/CRITICAL entry.
func (a *AssertReport) IsInvalid() *AssertReport {
	a.t.Helper()
	if !a.report.HasError() {
		a.t.Error("expected the report to contain ERROR/CRITICAL entries, but it is clean")
	}
	return a
}

func (a *AssertReport) printEntries() {
	a.t.Helper()
	if len(a.report.Entries) == 0 {
		a.t.Log("no validation entries")
		return
	}
	a.t.Logf("validation entries (%d total):", len(a.report.Entries))
	for i, e := range a.report.Entries {
		a.t.Logf("  %d. [%s] %s: %s", i+1, e.Severity, e.Rule, e.Message)
	}
}
