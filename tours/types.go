// Package tours implements the tour extractor (C5): location
// classification, home-based tour boundary detection, anchor-expanded
// subtour detection, and tour-level attribute aggregation.
package tours

import (
	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/geo"
	"github.com/travel-diary/canon-engine/model"
)

// anchors holds a person's fixed home/work/school coordinates. Work
// and school are nil when the person has no usual location on file.
type anchors struct {
	Home   geo.Point
	Work   *geo.Point
	School *geo.Point
}

func personAnchors(person model.Person, household model.Household) anchors {
	a := anchors{Home: geo.Point{Lat: household.HomeLat, Lon: household.HomeLon}}
	if person.WorkLat != nil && person.WorkLon != nil {
		a.Work = &geo.Point{Lat: *person.WorkLat, Lon: *person.WorkLon}
	}
	if person.SchoolLat != nil && person.SchoolLon != nil {
		a.School = &geo.Point{Lat: *person.SchoolLat, Lon: *person.SchoolLon}
	}
	return a
}

// classifiedTrip is stage 1's output: a linked trip plus its endpoint
// classification against the person's anchors.
type classifiedTrip struct {
	Trip model.LinkedTrip

	OIsHome, OIsWork, OIsSchool bool
	DIsHome, DIsWork, DIsSchool bool
	OLocationType               codebook.LocationType
	DLocationType                codebook.LocationType

	// TourID, TourDirection, and TourCategory are filled in during
	// stage 2/3/4 and used to produce the final annotated LinkedTrip.
	TourID        int64
	TourCategory  codebook.TourCategory
	TourDirection codebook.TourDirection

	// IsPrimaryDestTrip marks the trip stage 4 picked as the primary
	// destination trip for its aggregation group (home tour or subtour).
	IsPrimaryDestTrip bool
}
