package linker

import (
	"testing"
	"time"

	"github.com/travel-diary/canon-engine/config"
	"github.com/travel-diary/canon-engine/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.UTC)
}

func TestLink_EmptyInput(t *testing.T) {
	annotated, linked, errs := Link(nil, config.DefaultConfig().Linker)
	if len(annotated) != 0 || len(linked) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty output for empty input, got %d/%d/%d", len(annotated), len(linked), len(errs))
	}
}

func TestLink_SimpleWorkTour_NoMerge(t *testing.T) {
	cfg := config.DefaultConfig().Linker
	trips := []model.UnlinkedTrip{
		{TripID: 1, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(8, 0), ArriveTime: at(9, 0), DPurposeCategory: 1, ModeType: 3},
		{TripID: 2, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(17, 0), ArriveTime: at(18, 0), DPurposeCategory: 1, ModeType: 3},
	}

	_, linked, errs := Link(trips, cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(linked) != 2 {
		t.Fatalf("expected 2 linked trips (no linking), got %d", len(linked))
	}
	for _, lt := range linked {
		if lt.NumSegments != 1 {
			t.Errorf("expected single-segment linked trip, got %d segments", lt.NumSegments)
		}
		if lt.DurationDwell != 0 {
			t.Errorf("expected zero dwell for single-segment trip, got %v", lt.DurationDwell)
		}
	}
}

func TestLink_WalkBartWalkCommute(t *testing.T) {
	cfg := config.DefaultConfig().Linker
	cfg.ChangeModeCode = 10
	cfg.TransitModeCodes = []int{int(3)}

	transit := 3

	trips := []model.UnlinkedTrip{
		{TripID: 1, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(7, 30), ArriveTime: at(7, 40), DPurposeCategory: 10, ModeType: 1, DLat: 1, DLon: 1},
		{TripID: 2, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(7, 45), ArriveTime: at(8, 15), DPurposeCategory: 10, ModeType: transit, OLat: 1, OLon: 1, DLat: 2, DLon: 2},
		{TripID: 3, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(8, 20), ArriveTime: at(8, 30), DPurposeCategory: 1, ModeType: 1, OLat: 2, OLon: 2},
	}

	annotated, linked, errs := Link(trips, cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(linked) != 1 {
		t.Fatalf("expected 1 linked trip for the outbound commute, got %d", len(linked))
	}

	lt := linked[0]
	if lt.NumSegments != 3 {
		t.Errorf("expected 3 segments, got %d", lt.NumSegments)
	}
	if lt.ModeType != transit {
		t.Errorf("expected transit representative mode, got %d", lt.ModeType)
	}
	if lt.DurationDwell < 9.9 || lt.DurationDwell > 10.1 {
		t.Errorf("expected ~10 minutes dwell (two 5-minute transfers), got %v", lt.DurationDwell)
	}

	for i := range annotated {
		if annotated[i].LinkedTripID == nil || *annotated[i].LinkedTripID != lt.LinkedTripID {
			t.Errorf("expected segment %d to reference linked trip %d", i, lt.LinkedTripID)
		}
	}
}

func TestLink_LongDwellDoesNotMerge(t *testing.T) {
	cfg := config.DefaultConfig().Linker
	cfg.MaxDwellTime = 120

	trips := []model.UnlinkedTrip{
		{TripID: 1, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(8, 0), ArriveTime: at(8, 30), DPurposeCategory: cfg.ChangeModeCode, ModeType: 1},
		{TripID: 2, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(11, 0), ArriveTime: at(11, 30), DPurposeCategory: 1, ModeType: 1},
	}

	_, linked, errs := Link(trips, cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(linked) != 2 {
		t.Fatalf("expected 2 linked trips when dwell exceeds max_dwell_time, got %d", len(linked))
	}
}

func TestLink_AssignsDistinctIDsAcrossDays(t *testing.T) {
	cfg := config.DefaultConfig().Linker
	trips := []model.UnlinkedTrip{
		{TripID: 1, DayID: 1, PersonID: 1, HhID: 1, DepartTime: at(8, 0), ArriveTime: at(9, 0), DPurposeCategory: 1},
		{TripID: 2, DayID: 2, PersonID: 1, HhID: 1, DepartTime: at(8, 0), ArriveTime: at(9, 0), DPurposeCategory: 1},
	}

	_, linked, errs := Link(trips, cfg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(linked) != 2 {
		t.Fatalf("expected 2 linked trips, got %d", len(linked))
	}
	if linked[0].LinkedTripID == linked[1].LinkedTripID {
		t.Errorf("expected distinct linked trip ids across days, got %d twice", linked[0].LinkedTripID)
	}
}
