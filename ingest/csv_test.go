package ingest

import (
	"strings"
	"testing"
)

func TestLoadHouseholds(t *testing.T) {
	csv := "hh_id,home_lat,home_lon,home_taz,num_people,num_vehicles,num_workers,income_detailed,income_followup,hh_weight\n" +
		"1,37.7,-122.4,100,2,1,1,5,,1.5\n"

	hh, err := LoadHouseholds(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hh) != 1 {
		t.Fatalf("expected 1 household, got %d", len(hh))
	}
	if hh[0].HhID != 1 || hh[0].NumPeople != 2 {
		t.Errorf("unexpected household row: %+v", hh[0])
	}
	if hh[0].IncomeDetailed == nil || *hh[0].IncomeDetailed != 5 {
		t.Errorf("expected income_detailed=5, got %v", hh[0].IncomeDetailed)
	}
	if hh[0].IncomeFollowup != nil {
		t.Errorf("expected nil income_followup for blank cell, got %v", *hh[0].IncomeFollowup)
	}
}

func TestLoadUnlinkedTrips_TimeParsing(t *testing.T) {
	csv := "trip_id,day_id,person_id,hh_id,depart_time,arrive_time,o_lat,o_lon,d_lat,d_lon,o_taz,d_taz,o_purpose_category,d_purpose_category,mode_type,mode,num_travelers,driver,distance,duration\n" +
		"1,1,1,1,08:00,08:30,1,1,2,2,10,20,1,2,3,3,1,true,5.2,30\n"

	trips, err := LoadUnlinkedTrips(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	trip := trips[0]
	if trip.DepartTime.Hour() != 8 || trip.DepartTime.Minute() != 0 {
		t.Errorf("unexpected depart_time: %v", trip.DepartTime)
	}
	if trip.ArriveTime.Minute() != 30 {
		t.Errorf("unexpected arrive_time: %v", trip.ArriveTime)
	}
	if !trip.Driver {
		t.Errorf("expected driver=true")
	}
}

func TestLoadHouseholds_Empty(t *testing.T) {
	hh, err := LoadHouseholds(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hh) != 0 {
		t.Errorf("expected no rows, got %d", len(hh))
	}
}
