package errors

import (
	"strings"
	"testing"

	"github.com/travel-diary/canon-engine/types"
)

func TestCanonError_Error(t *testing.T) {
	err := New("trips", "TRIP_DWELL", "dwell exceeds max_dwell_time").
		WithRowID(42).
		WithColumn("depart_time").
		WithKind(KindAlgorithmic)

	errorStr := err.Error()

	if !strings.Contains(errorStr, "[trips]") {
		t.Errorf("expected table in error string, got: %s", errorStr)
	}
	if !strings.Contains(errorStr, "row 42") {
		t.Errorf("expected row id in error string, got: %s", errorStr)
	}
	if !strings.Contains(errorStr, "column 'depart_time'") {
		t.Errorf("expected column in error string, got: %s", errorStr)
	}
	if !strings.Contains(errorStr, "(TRIP_DWELL)") {
		t.Errorf("expected rule in error string, got: %s", errorStr)
	}
	if !strings.Contains(errorStr, "dwell exceeds max_dwell_time") {
		t.Errorf("expected message in error string, got: %s", errorStr)
	}
}

func TestCanonError_ToEntry(t *testing.T) {
	err := NewUniquenessError("households", "hh_id", 17, 3)
	entry := err.ToEntry()

	if entry.Location.Table != "households" {
		t.Errorf("expected table households, got %s", entry.Location.Table)
	}
	if entry.Severity != types.ERROR {
		t.Errorf("expected ERROR severity, got %s", entry.Severity)
	}
	if entry.Location.RowID == nil || *entry.Location.RowID != 3 {
		t.Errorf("expected row id 3, got %v", entry.Location.RowID)
	}
}

func TestNewTolerableAmbiguity_IsWarning(t *testing.T) {
	err := NewTolerableAmbiguity("persons", "MISSING_WORK_LOCATION", "worker has no usual work location", 9)
	if err.Severity != types.WARNING {
		t.Errorf("expected WARNING severity for tolerable ambiguity, got %s", err.Severity)
	}
}

func TestErrors_Error(t *testing.T) {
	es := Errors{
		NewUniquenessError("households", "hh_id", 1, 1),
		NewForeignKeyError("persons", "hh_id", "households", "hh_id", 99, 2),
	}
	combined := es.Error()
	if !strings.Contains(combined, "households") || !strings.Contains(combined, "persons") {
		t.Errorf("expected combined message to reference both tables, got: %s", combined)
	}
	if len(es.Entries()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(es.Entries()))
	}
}

func TestNewRequiredChildError(t *testing.T) {
	err := NewRequiredChildError("household", 5, "person")
	if err.Kind != KindRequiredChild {
		t.Errorf("expected KindRequiredChild, got %s", err.Kind)
	}
	if err.RowID == nil || *err.RowID != 5 {
		t.Errorf("expected row id 5, got %v", err.RowID)
	}
}
