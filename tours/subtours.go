package tours

import (
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/config"
	"github.com/travel-diary/canon-engine/geo"
	"github.com/travel-diary/canon-engine/model"
)

// subtourMeta is stage 3's output: one anchor-based subtour's id,
// category, and the (tour-local time order) trip positions it spans.
type subtourMeta struct {
	SubtourID    int64
	ParentTourID int64
	Category     codebook.TourCategory
	Indices      []int // positions into the classified slice
}

func isWorker(person model.Person) bool {
	e := codebook.Employment(person.Employment)
	return e == codebook.EmploymentFullTime || e == codebook.EmploymentPartTime || e == codebook.EmploymentSelf
}

func isStudent(person model.Person) bool {
	s := codebook.Student(person.Student)
	return s == codebook.StudentFullTime || s == codebook.StudentPartTime
}

func touchesAnchor(lat, lon float64, anchor geo.Point, threshold float64) bool {
	return (geo.Point{Lat: lat, Lon: lon}).Within(anchor, threshold)
}

// detectSubtours runs stage 3 (anchor-expanded subtour detection, spec
// §4.5.2) over one home-based tour, preferring work over school when
// both anchors qualify for the same tour.
func detectSubtours(tour tourMeta, classified []classifiedTrip, person model.Person, cfg config.TourConfig) ([]subtourMeta, map[int]bool, []*canonerrors.CanonError) {
	claimed := make(map[int]bool)
	var subtours []subtourMeta
	var warnings []*canonerrors.CanonError

	if isWorker(person) {
		if person.WorkLat != nil && person.WorkLon != nil {
			anchor := geo.Point{Lat: *person.WorkLat, Lon: *person.WorkLon}
			threshold := cfg.DistanceThresholds[codebook.LocationWork]
			subtours = append(subtours, extractAnchorSubtours(tour, classified, anchor, threshold, codebook.TourWorkBased, claimed)...)
		} else {
			warnings = append(warnings, canonerrors.NewTolerableAmbiguity("person", "missing_work_anchor", "worker has no usual work location on file; work-based subtour detection skipped", person.PersonID))
		}
	}

	if isStudent(person) {
		if person.SchoolLat != nil && person.SchoolLon != nil {
			anchor := geo.Point{Lat: *person.SchoolLat, Lon: *person.SchoolLon}
			threshold := cfg.DistanceThresholds[codebook.LocationSchool]
			subtours = append(subtours, extractAnchorSubtours(tour, classified, anchor, threshold, codebook.TourSchoolBased, claimed)...)
		} else {
			warnings = append(warnings, canonerrors.NewTolerableAmbiguity("person", "missing_school_anchor", "student has no usual school location on file; school-based subtour detection skipped", person.PersonID))
		}
	}

	return subtours, claimed, warnings
}

// extractAnchorSubtours finds the anchor period (first arrival at,
// last departure from, the anchor) and, if it is strictly interior,
// walks the trips inside it detecting subtour spans.
func extractAnchorSubtours(tour tourMeta, classified []classifiedTrip, anchor geo.Point, threshold float64, category codebook.TourCategory, claimed map[int]bool) []subtourMeta {
	firstArrive, lastDepart := -1, -1

	for pos, idx := range tour.Indices {
		t := classified[idx].Trip
		if firstArrive == -1 && touchesAnchor(t.DLat, t.DLon, anchor, threshold) {
			firstArrive = pos
		}
		if touchesAnchor(t.OLat, t.OLon, anchor, threshold) {
			lastDepart = pos
		}
	}

	if firstArrive == -1 || lastDepart == -1 || lastDepart <= firstArrive+1 {
		// Anchor period not strictly interior: no intermediate activity
		// to make a subtour out of (spec §4.5.2 validation note).
		return nil
	}

	interior := tour.Indices[firstArrive+1 : lastDepart]

	var subtours []subtourMeta
	subtourNum := 0
	var current []int

	finalize := func() {
		if len(current) == 0 {
			return
		}
		subtourNum++
		id := tour.TourID*10 + int64(subtourNum)
		subtours = append(subtours, subtourMeta{
			SubtourID:    id,
			ParentTourID: tour.TourID,
			Category:     category,
			Indices:      append([]int{}, current...),
		})
		for _, idx := range current {
			claimed[idx] = true
		}
		current = nil
	}

	for _, idx := range interior {
		if claimed[idx] {
			continue
		}
		c := classified[idx]
		oIsAnchor := touchesAnchor(c.Trip.OLat, c.Trip.OLon, anchor, threshold)
		dIsAnchor := touchesAnchor(c.Trip.DLat, c.Trip.DLon, anchor, threshold)

		startsSub := oIsAnchor && !dIsAnchor && !c.DIsHome
		if startsSub && len(current) > 0 {
			finalize()
		}
		if startsSub || len(current) > 0 {
			current = append(current, idx)
		}

		endsSub := !oIsAnchor && dIsAnchor
		if endsSub && len(current) > 0 {
			finalize()
		}
	}

	return subtours
}
