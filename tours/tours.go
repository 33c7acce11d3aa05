package tours

import (
	"sort"

	"github.com/travel-diary/canon-engine/config"
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/model"
)

// ExtractTours runs the full C5 pipeline: location classification,
// home-based tour boundaries, anchor-expanded subtour detection, and
// tour aggregation with half-tour classification (spec §4.5). It
// returns the input linked trips annotated with tour_id/tour_direction
// and the tours frame (one row per home-based tour, plus one per
// subtour), sorted by (person_id, day_id, origin_depart_time).
func ExtractTours(trips []model.LinkedTrip, persons []model.Person, households []model.Household, cfg config.TourConfig) ([]model.LinkedTrip, []model.Tour, []*canonerrors.CanonError) {
	if len(trips) == 0 {
		return []model.LinkedTrip{}, []model.Tour{}, nil
	}

	personsByID := make(map[int64]model.Person, len(persons))
	for _, p := range persons {
		personsByID[p.PersonID] = p
	}
	householdsByID := make(map[int64]model.Household, len(households))
	for _, h := range households {
		householdsByID[h.HhID] = h
	}

	classified := classifyTrips(trips, personsByID, householdsByID, cfg)
	tourMetas := assignTourBoundaries(classified, cfg)

	var toursOut []model.Tour
	var errs []*canonerrors.CanonError

	for _, tm := range tourMetas {
		person := personsByID[tm.PersonID]

		subtours, claimed, warnings := detectSubtours(tm, classified, person, cfg)
		errs = append(errs, warnings...)

		homeTour, homePrimaryIdx, homeErrs := aggregateGroup(tm.TourID, nil, tm.TourNumInDay, tm.PersonID, tm.HhID, tm.DayID, tm.Indices, tm.Category, classified, person, cfg)
		errs = append(errs, homeErrs...)

		for _, idx := range tm.Indices {
			classified[idx].TourID = tm.TourID
			classified[idx].TourCategory = tm.Category
		}
		if homePrimaryIdx >= 0 {
			classified[homePrimaryIdx].IsPrimaryDestTrip = true
		}

		parentID := tm.TourID
		for _, st := range subtours {
			subRow, subPrimaryIdx, subErrs := aggregateGroup(st.SubtourID, &parentID, tm.TourNumInDay, tm.PersonID, tm.HhID, tm.DayID, st.Indices, st.Category, classified, person, cfg)
			errs = append(errs, subErrs...)
			if subRow != nil {
				toursOut = append(toursOut, *subRow)
			}
			for _, idx := range st.Indices {
				classified[idx].TourCategory = st.Category
			}
			if subPrimaryIdx >= 0 {
				classified[subPrimaryIdx].IsPrimaryDestTrip = true
			}
		}

		if homeTour != nil {
			toursOut = append(toursOut, *homeTour)
			for _, idx := range tm.Indices {
				inSubtour := claimed[idx]
				classified[idx].TourDirection = classifyHalfTour(classified[idx].Trip, homeTour.DestArriveTime, homeTour.DestDepartTime, inSubtour)
			}
		}
	}

	sort.SliceStable(toursOut, func(i, j int) bool {
		a, b := toursOut[i], toursOut[j]
		if a.PersonID != b.PersonID {
			return a.PersonID < b.PersonID
		}
		if a.DayID != b.DayID {
			return a.DayID < b.DayID
		}
		return a.OriginDepartTime.Before(b.OriginDepartTime)
	})

	annotated := make([]model.LinkedTrip, len(classified))
	for i, c := range classified {
		lt := c.Trip
		if c.TourID != 0 {
			id := c.TourID
			lt.TourID = &id
			dir := int(c.TourDirection)
			lt.TourDirection = &dir
		}
		isPrimary := c.IsPrimaryDestTrip
		lt.IsPrimaryDestTrip = &isPrimary
		annotated[i] = lt
	}

	return annotated, toursOut, errs
}
