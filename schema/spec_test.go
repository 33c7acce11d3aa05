package schema

import (
	"testing"

	"github.com/travel-diary/canon-engine/model"
)

func TestOf_Household(t *testing.T) {
	spec := Of(model.Household{})

	hhID, ok := spec.FieldByColumn("hh_id")
	if !ok {
		t.Fatal("expected hh_id field")
	}
	if !hhID.Unique {
		t.Error("expected hh_id to be unique")
	}
	if !hhID.RequiredIn("raw") {
		t.Error("expected hh_id to be required in every step")
	}

	numPeople, ok := spec.FieldByColumn("num_people")
	if !ok {
		t.Fatal("expected num_people field")
	}
	if numPeople.GE == nil || *numPeople.GE != 1 {
		t.Errorf("expected num_people ge=1, got %v", numPeople.GE)
	}
}

func TestOf_Person_ForeignKeyAndRequiredChild(t *testing.T) {
	spec := Of(model.Person{})

	hhID, ok := spec.FieldByColumn("hh_id")
	if !ok {
		t.Fatal("expected hh_id field")
	}
	if hhID.FK == nil || hhID.FK.Table != "household" || hhID.FK.Column != "hh_id" {
		t.Fatalf("expected fk=household.hh_id, got %+v", hhID.FK)
	}
	if !hhID.RequiredChild {
		t.Error("expected person.hh_id to mark household as requiring a child")
	}
}

func TestOf_UnlinkedTrip_StepAwareRequired(t *testing.T) {
	spec := Of(model.UnlinkedTrip{})

	linkedTripID, ok := spec.FieldByColumn("linked_trip_id")
	if !ok {
		t.Fatal("expected linked_trip_id field")
	}
	if linkedTripID.RequiredIn("raw") {
		t.Error("did not expect linked_trip_id required in the raw step")
	}
	if !linkedTripID.RequiredIn("linked") {
		t.Error("expected linked_trip_id required in the linked step")
	}

	distance, ok := spec.FieldByColumn("distance")
	if !ok {
		t.Fatal("expected distance field")
	}
	if distance.GE == nil || *distance.GE != 0 {
		t.Errorf("expected distance ge=0, got %v", distance.GE)
	}
}

func TestOf_Day_RangeBounds(t *testing.T) {
	spec := Of(model.Day{})

	dow, ok := spec.FieldByColumn("travel_dow")
	if !ok {
		t.Fatal("expected travel_dow field")
	}
	if dow.GE == nil || *dow.GE != 1 || dow.LE == nil || *dow.LE != 7 {
		t.Errorf("expected travel_dow in [1,7], got ge=%v le=%v", dow.GE, dow.LE)
	}
}

func TestOf_CachesSpecByType(t *testing.T) {
	a := Of(model.Household{})
	b := Of(&model.Household{})
	if a != b {
		t.Error("expected Of to return the cached spec regardless of pointer/value receiver")
	}
}

func TestSpec_UniqueAndFKFields(t *testing.T) {
	spec := Of(model.LinkedTrip{})

	unique := spec.UniqueFields()
	if len(unique) != 1 || unique[0].Column != "linked_trip_id" {
		t.Errorf("expected exactly linked_trip_id as unique, got %+v", unique)
	}

	fks := spec.FKFields()
	if len(fks) != 3 {
		t.Errorf("expected 3 fk fields (person_id, hh_id, day_id), got %d", len(fks))
	}
}
