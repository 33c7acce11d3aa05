package tours

import (
	"sort"

	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/config"
)

// tourMeta is stage 2's output: one home-based tour's boundary
// classification and the (time-ordered) trip positions it spans.
type tourMeta struct {
	TourID       int64
	TourNumInDay int
	PersonID     int64
	HhID         int64
	DayID        int64
	Category     codebook.TourCategory
	Indices      []int // positions into the classified slice, time-ordered
}

type dayGroup struct {
	PersonID int64
	DayID    int64
	Indices  []int
}

// groupByPersonDay partitions classified trips into (person_id,
// day_id) groups, each time-ordered by depart_time, with groups
// themselves ordered by (person_id, day_id) so multi-day-gap
// detection can walk a person's days in sequence.
func groupByPersonDay(classified []classifiedTrip) []dayGroup {
	type key struct {
		PersonID int64
		DayID    int64
	}

	groups := make(map[key][]int)
	for i, c := range classified {
		k := key{c.Trip.PersonID, c.Trip.DayID}
		groups[k] = append(groups[k], i)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PersonID != keys[j].PersonID {
			return keys[i].PersonID < keys[j].PersonID
		}
		return keys[i].DayID < keys[j].DayID
	})

	out := make([]dayGroup, 0, len(keys))
	for _, k := range keys {
		idxs := groups[k]
		sort.Slice(idxs, func(a, b int) bool {
			return classified[idxs[a]].Trip.DepartTime.Before(classified[idxs[b]].Trip.DepartTime)
		})
		out = append(out, dayGroup{PersonID: k.PersonID, DayID: k.DayID, Indices: idxs})
	}
	return out
}

// assignTourBoundaries runs stage 2 (home-based tour boundaries, spec
// §4.5.2) over every person-day group.
func assignTourBoundaries(classified []classifiedTrip, cfg config.TourConfig) []tourMeta {
	var tours []tourMeta

	var prevPersonID int64 = -1
	var prevDayID int64

	for _, g := range groupByPersonDay(classified) {
		gapSincePrevDay := prevPersonID == g.PersonID && g.DayID-prevDayID > 1

		tourNum := 0
		var current []int

		finalize := func() {
			if len(current) == 0 {
				return
			}
			first := classified[current[0]]
			last := classified[current[len(current)-1]]
			tours = append(tours, tourMeta{
				TourID:       g.DayID*100 + int64(tourNum),
				TourNumInDay: tourNum,
				PersonID:     g.PersonID,
				HhID:         classified[current[0]].Trip.HhID,
				DayID:        g.DayID,
				Category:     boundaryCategory(first.OIsHome, last.DIsHome),
				Indices:      append([]int{}, current...),
			})
			current = nil
		}

		for pos, idx := range g.Indices {
			c := classified[idx]
			isFirst := pos == 0

			// Spec §4.5.2 stage 2's three start conditions, kept as
			// written even though the third is subsumed by the second
			// (day_id only changes at a group boundary, i.e. the first
			// trip of a group, so a multiday gap can only ever fire
			// together with "first trip of the person-day").
			startsNew := (c.OIsHome && !c.DIsHome) ||
				(isFirst && !c.OIsHome) ||
				(cfg.CheckMultidayGaps && isFirst && gapSincePrevDay && !c.OIsHome)

			if startsNew && len(current) > 0 {
				finalize()
			}
			if len(current) == 0 {
				tourNum++
			}
			current = append(current, idx)

			endsNow := (!c.OIsHome && c.DIsHome) || pos == len(g.Indices)-1
			if endsNow {
				finalize()
			}
		}
		finalize()

		prevPersonID = g.PersonID
		prevDayID = g.DayID
	}

	return tours
}

// boundaryCategory maps a tour's first-origin/last-destination
// at-home flags to its boundary category per spec §4.5.2's table.
func boundaryCategory(originAtHome, destAtHome bool) codebook.TourCategory {
	switch {
	case originAtHome && destAtHome:
		return codebook.TourComplete
	case originAtHome && !destAtHome:
		return codebook.TourPartialEnd
	case !originAtHome && destAtHome:
		return codebook.TourPartialStart
	default:
		return codebook.TourPartialBoth
	}
}
