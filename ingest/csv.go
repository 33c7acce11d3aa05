// Package ingest loads the raw household-travel-survey tables from CSV
// into the canonical entity rows (spec §4.1/§4.2), before the
// validation substrate ever sees them. No parser library in the
// retrieval pack handles tabular CSV; this stays on encoding/csv
// (documented as a standard-library exception in the grounding
// ledger).
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/travel-diary/canon-engine/model"
)

// row is a single CSV record addressed by header name.
type row map[string]string

func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		r := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				r[col] = record[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (r row) str(key string) string {
	return strings.TrimSpace(r[key])
}

func (r row) int64(key string) int64 {
	v, _ := strconv.ParseInt(r.str(key), 10, 64)
	return v
}

func (r row) intv(key string) int {
	v, _ := strconv.Atoi(r.str(key))
	return v
}

func (r row) float(key string) float64 {
	v, _ := strconv.ParseFloat(r.str(key), 64)
	return v
}

func (r row) bool(key string) bool {
	v := strings.ToLower(r.str(key))
	return v == "1" || v == "true" || v == "t" || v == "yes"
}

func (r row) optInt64(key string) *int64 {
	s := r.str(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (r row) optInt(key string) *int {
	s := r.str(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func (r row) optFloat(key string) *float64 {
	s := r.str(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// timeLayouts are tried in order when parsing a timestamp column;
// surveys commonly report either a full timestamp or a bare HH:MM or
// HH:MM:SS clock time, which is placed on 1970-01-01 UTC.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "15:04:05", "15:04"}

func (r row) timeVal(key string) time.Time {
	s := r.str(key)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == "15:04:05" || layout == "15:04" {
				return time.Date(1970, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			}
			return t
		}
	}
	return time.Time{}
}

// LoadHouseholds parses the household table CSV.
func LoadHouseholds(r io.Reader) ([]model.Household, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]model.Household, 0, len(rows))
	for _, rr := range rows {
		out = append(out, model.Household{
			HhID:           rr.int64("hh_id"),
			HomeLat:        rr.float("home_lat"),
			HomeLon:        rr.float("home_lon"),
			HomeTaz:        rr.int64("home_taz"),
			NumPeople:      rr.intv("num_people"),
			NumVehicles:    rr.intv("num_vehicles"),
			NumWorkers:     rr.intv("num_workers"),
			IncomeDetailed: rr.optInt("income_detailed"),
			IncomeFollowup: rr.optInt("income_followup"),
			HhWeight:       rr.float("hh_weight"),
		})
	}
	return out, nil
}

// LoadPersons parses the person table CSV.
func LoadPersons(r io.Reader) ([]model.Person, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]model.Person, 0, len(rows))
	for _, rr := range rows {
		out = append(out, model.Person{
			PersonID:            rr.int64("person_id"),
			HhID:                rr.int64("hh_id"),
			PersonNum:           rr.intv("person_num"),
			AgeCategory:         rr.intv("age_category"),
			Gender:              rr.intv("gender"),
			Employment:          rr.intv("employment"),
			Student:             rr.intv("student"),
			SchoolType:          rr.intv("school_type"),
			WorkLat:             rr.optFloat("work_lat"),
			WorkLon:             rr.optFloat("work_lon"),
			WorkTaz:             rr.optInt64("work_taz"),
			SchoolLat:           rr.optFloat("school_lat"),
			SchoolLon:           rr.optFloat("school_lon"),
			SchoolTaz:           rr.optInt64("school_taz"),
			CommuteSubsidyFlags: rr.intv("commute_subsidy_flags"),
			PersonType:          rr.optInt("person_type"),
		})
	}
	return out, nil
}

// LoadDays parses the day table CSV.
func LoadDays(r io.Reader) ([]model.Day, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]model.Day, 0, len(rows))
	for _, rr := range rows {
		out = append(out, model.Day{
			DayID:      rr.int64("day_id"),
			PersonID:   rr.int64("person_id"),
			HhID:       rr.int64("hh_id"),
			PersonNum:  rr.intv("person_num"),
			DayNum:     rr.intv("day_num"),
			TravelDate: rr.timeVal("travel_date"),
			TravelDow:  rr.intv("travel_dow"),
			IsComplete: rr.bool("is_complete"),
			NumTrips:   rr.intv("num_trips"),
			DayWeight:  rr.float("day_weight"),
		})
	}
	return out, nil
}

// LoadUnlinkedTrips parses the unlinked-trip table CSV.
func LoadUnlinkedTrips(r io.Reader) ([]model.UnlinkedTrip, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]model.UnlinkedTrip, 0, len(rows))
	for _, rr := range rows {
		out = append(out, model.UnlinkedTrip{
			TripID:           rr.int64("trip_id"),
			DayID:            rr.int64("day_id"),
			PersonID:         rr.int64("person_id"),
			HhID:             rr.int64("hh_id"),
			DepartTime:       rr.timeVal("depart_time"),
			ArriveTime:       rr.timeVal("arrive_time"),
			OLat:             rr.float("o_lat"),
			OLon:             rr.float("o_lon"),
			DLat:             rr.float("d_lat"),
			DLon:             rr.float("d_lon"),
			OTaz:             rr.int64("o_taz"),
			DTaz:             rr.int64("d_taz"),
			OPurposeCategory: rr.intv("o_purpose_category"),
			DPurposeCategory: rr.intv("d_purpose_category"),
			ModeType:         rr.intv("mode_type"),
			Mode:             rr.intv("mode"),
			NumTravelers:     rr.intv("num_travelers"),
			Driver:           rr.bool("driver"),
			Distance:         rr.float("distance"),
			Duration:         rr.float("duration"),
		})
	}
	return out, nil
}
