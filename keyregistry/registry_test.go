package keyregistry

import (
	"testing"

	"github.com/travel-diary/canon-engine/model"
	"github.com/travel-diary/canon-engine/schema"
)

func TestRegistry_RegisterAndContains(t *testing.T) {
	reg := New()

	if _, dup := reg.Register("household", "hh_id", int64(1), 1); dup {
		t.Error("expected first registration to not be a duplicate")
	}
	if _, dup := reg.Register("household", "hh_id", int64(2), 2); dup {
		t.Error("expected second distinct registration to not be a duplicate")
	}
	if first, dup := reg.Register("household", "hh_id", int64(1), 3); !dup || first != 1 {
		t.Errorf("expected duplicate detected against row 1, got first=%d dup=%v", first, dup)
	}

	if !reg.Contains("household", "hh_id", int64(1)) {
		t.Error("expected registry to contain hh_id=1")
	}
	if reg.Contains("household", "hh_id", int64(99)) {
		t.Error("did not expect registry to contain hh_id=99")
	}
}

func TestRegistry_HasTableAndClear(t *testing.T) {
	reg := New()
	if reg.HasTable("household") {
		t.Error("did not expect HasTable true before any registration")
	}

	reg.Register("household", "hh_id", int64(1), 1)
	if !reg.HasTable("household") {
		t.Error("expected HasTable true after registration")
	}

	reg.Clear("household")
	if reg.HasTable("household") {
		t.Error("expected HasTable false after Clear")
	}
}

func TestCheckUnique_DetectsDuplicateHhID(t *testing.T) {
	rows := []model.Household{
		{HhID: 1, NumPeople: 1},
		{HhID: 2, NumPeople: 1},
		{HhID: 1, NumPeople: 1},
	}
	spec := schema.Of(model.Household{})
	reg := New()

	errs := CheckUnique("household", rows, spec, reg)
	if len(errs) != 1 {
		t.Fatalf("expected 1 uniqueness error, got %d", len(errs))
	}
	if errs[0].Column != "hh_id" {
		t.Errorf("expected error on hh_id, got %s", errs[0].Column)
	}
}

func TestCheckForeignKeys_SkipsWhenParentNotMaterialized(t *testing.T) {
	persons := []model.Person{{PersonID: 1, HhID: 10}}
	spec := schema.Of(model.Person{})
	reg := New()

	errs := CheckForeignKeys("person", persons, spec, reg)
	if len(errs) != 0 {
		t.Errorf("expected no FK errors when parent table not yet materialized, got %d", len(errs))
	}
}

func TestCheckForeignKeys_DetectsMissingParent(t *testing.T) {
	households := []model.Household{{HhID: 10, NumPeople: 1}}
	persons := []model.Person{
		{PersonID: 1, HhID: 10},
		{PersonID: 2, HhID: 999},
	}

	hhSpec := schema.Of(model.Household{})
	personSpec := schema.Of(model.Person{})
	reg := New()

	CheckUnique("household", households, hhSpec, reg)
	errs := CheckForeignKeys("person", persons, personSpec, reg)

	if len(errs) != 1 {
		t.Fatalf("expected 1 FK error, got %d", len(errs))
	}
	if errs[0].RowID == nil || *errs[0].RowID != 2 {
		t.Errorf("expected FK error on row 2, got %v", errs[0].RowID)
	}
}

func TestCheckRequiredChildren_DetectsChildlessParent(t *testing.T) {
	households := []model.Household{
		{HhID: 1, NumPeople: 1},
		{HhID: 2, NumPeople: 1},
	}
	persons := []model.Person{
		{PersonID: 1, HhID: 1},
	}

	hhSpec := schema.Of(model.Household{})
	personSpec := schema.Of(model.Person{})
	fkField, _ := personSpec.FieldByColumn("hh_id")

	errs := CheckRequiredChildren("household", households, hhSpec, "person", persons, fkField)
	if len(errs) != 1 {
		t.Fatalf("expected 1 required-child error, got %d", len(errs))
	}
	if errs[0].RowID == nil || *errs[0].RowID != 2 {
		t.Errorf("expected the error to name household 2, got %v", errs[0].RowID)
	}
}
