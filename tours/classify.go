package tours

import (
	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/config"
	"github.com/travel-diary/canon-engine/geo"
	"github.com/travel-diary/canon-engine/model"
)

// classifyTrips runs stage 1 (location classification, spec §4.5.2)
// over every linked trip.
func classifyTrips(trips []model.LinkedTrip, personsByID map[int64]model.Person, householdsByID map[int64]model.Household, cfg config.TourConfig) []classifiedTrip {
	out := make([]classifiedTrip, len(trips))

	for i, t := range trips {
		person := personsByID[t.PersonID]
		household := householdsByID[t.HhID]
		a := personAnchors(person, household)

		oIsHome, oIsWork, oIsSchool, oLoc := classifyEndpoint(t.OLat, t.OLon, codebook.PurposeCategory(t.OPurposeCategory), a, cfg)
		dIsHome, dIsWork, dIsSchool, dLoc := classifyEndpoint(t.DLat, t.DLon, codebook.PurposeCategory(t.DPurposeCategory), a, cfg)

		out[i] = classifiedTrip{
			Trip:          t,
			OIsHome:       oIsHome,
			OIsWork:       oIsWork,
			OIsSchool:     oIsSchool,
			OLocationType: oLoc,
			DIsHome:       dIsHome,
			DIsWork:       dIsWork,
			DIsSchool:     dIsSchool,
			DLocationType: dLoc,
		}
	}

	return out
}

// classifyEndpoint applies the hybrid purpose-or-distance rule (spec
// §4.5.2 stage 1) to one trip endpoint, then derives the single
// primary location type by priority HOME > WORK > SCHOOL > OTHER.
//
// A purpose-category match qualifies an endpoint for an anchor. A
// sentinel purpose code (MISSING/PNTA/NOT_IMPUTABLE) never does: none
// of those codes appear in the anchor-specific purpose sets, so the
// membership test is false for them and classification rests on the
// distance test alone, per spec §9 Open Question 4.
func classifyEndpoint(lat, lon float64, purpose codebook.PurposeCategory, a anchors, cfg config.TourConfig) (isHome, isWork, isSchool bool, locType codebook.LocationType) {
	p := geo.Point{Lat: lat, Lon: lon}

	isHome = codebook.HomePurposeCodes[purpose] || p.Within(a.Home, cfg.DistanceThresholds[codebook.LocationHome])
	isWork = codebook.WorkPurposeCodes[purpose] || (a.Work != nil && p.Within(*a.Work, cfg.DistanceThresholds[codebook.LocationWork]))
	isSchool = codebook.SchoolPurposeCodes[purpose] || (a.School != nil && p.Within(*a.School, cfg.DistanceThresholds[codebook.LocationSchool]))

	switch {
	case isHome:
		locType = codebook.LocationHome
	case isWork:
		locType = codebook.LocationWork
	case isSchool:
		locType = codebook.LocationSchool
	default:
		locType = codebook.LocationOther
	}
	return
}
