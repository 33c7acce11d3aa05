// Package linker implements the trip linker (C4): it collapses
// sequences of unlinked trip segments broken at mode-transfer points
// into single linked trips, choosing a representative mode per group.
package linker

import (
	"sort"
	"time"

	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/geo"
	"github.com/travel-diary/canon-engine/model"

	"github.com/travel-diary/canon-engine/config"
)

type dayKey struct {
	PersonID int64
	DayID    int64
}

// Link runs the per-person-day state machine over unlinked trips and
// returns the input rows annotated with linked_trip_id alongside the
// aggregated linked-trip rows.
//
// linked_trip_id is composed as day_id*1000 + local_index, where
// local_index counts linked trips within the day starting at 1; this
// assumes fewer than 1000 linked trips per person-day, always true for
// a single day's travel.
func Link(trips []model.UnlinkedTrip, cfg config.LinkerConfig) ([]model.UnlinkedTrip, []model.LinkedTrip, []*canonerrors.CanonError) {
	if len(trips) == 0 {
		return []model.UnlinkedTrip{}, []model.LinkedTrip{}, nil
	}

	groups := make(map[dayKey][]int)
	for i, t := range trips {
		k := dayKey{t.PersonID, t.DayID}
		groups[k] = append(groups[k], i)
	}

	annotated := make([]model.UnlinkedTrip, len(trips))
	copy(annotated, trips)

	keys := make([]dayKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PersonID != keys[j].PersonID {
			return keys[i].PersonID < keys[j].PersonID
		}
		return keys[i].DayID < keys[j].DayID
	})

	var linked []model.LinkedTrip
	var errs []*canonerrors.CanonError

	for _, k := range keys {
		idxs := groups[k]
		sort.Slice(idxs, func(a, b int) bool {
			return annotated[idxs[a]].DepartTime.Before(annotated[idxs[b]].DepartTime)
		})

		var open []int
		localIndex := int64(0)

		closeGroup := func() {
			if len(open) == 0 {
				return
			}
			localIndex++
			linkedID := k.DayID*1000 + localIndex

			lt, err := aggregate(annotated, open, linkedID, cfg)
			if err != nil {
				errs = append(errs, err)
				open = nil
				return
			}
			linked = append(linked, *lt)
			for _, idx := range open {
				id := linkedID
				annotated[idx].LinkedTripID = &id
			}
			open = nil
		}

		for _, idx := range idxs {
			if len(open) == 0 {
				open = append(open, idx)
				continue
			}
			prev := annotated[open[len(open)-1]]
			cur := annotated[idx]

			if continues(prev, cur, cfg) {
				open = append(open, idx)
			} else {
				closeGroup()
				open = append(open, idx)
			}
		}
		closeGroup()
	}

	return annotated, linked, errs
}

// continues reports whether segment cur extends the open linked trip
// ending at segment prev, per the three conditions of spec §4.4.
func continues(prev, cur model.UnlinkedTrip, cfg config.LinkerConfig) bool {
	if prev.DPurposeCategory != cfg.ChangeModeCode {
		return false
	}

	dwell := cur.DepartTime.Sub(prev.ArriveTime)
	if dwell < 0 || dwell > time.Duration(cfg.MaxDwellTime)*time.Minute {
		return false
	}

	dist := geo.HaversineMeters(prev.DLat, prev.DLon, cur.OLat, cur.OLon)
	return dist <= cfg.DwellBufferDistance
}

// aggregate builds the LinkedTrip row for one group of segments,
// selecting the representative mode per spec §4.4: the longest-
// duration transit segment if any segment is transit, else the
// longest-duration segment overall, ties broken by later depart_time.
func aggregate(trips []model.UnlinkedTrip, idxs []int, linkedID int64, cfg config.LinkerConfig) (*model.LinkedTrip, *canonerrors.CanonError) {
	if len(idxs) == 0 {
		return nil, canonerrors.NewAlgorithmicInvariantError("linked_trip", "zero_segments", "linked trip aggregates zero segments", linkedID)
	}

	first := trips[idxs[0]]
	last := trips[idxs[len(idxs)-1]]

	var distanceTotal, durationTravel float64
	repIdx := idxs[0]
	repDuration := -1.0
	repIsTransit := false

	for _, idx := range idxs {
		t := trips[idx]
		distanceTotal += t.Distance

		dur := t.ArriveTime.Sub(t.DepartTime).Minutes()
		durationTravel += dur

		isTransit := cfg.IsTransitMode(t.ModeType)
		switchToThis := false
		switch {
		case repDuration < 0:
			switchToThis = true
		case isTransit && !repIsTransit:
			switchToThis = true
		case isTransit == repIsTransit:
			if dur > repDuration {
				switchToThis = true
			} else if dur == repDuration && t.DepartTime.After(trips[repIdx].DepartTime) {
				switchToThis = true
			}
		}

		if switchToThis {
			repIdx = idx
			repDuration = dur
			repIsTransit = isTransit
		}
	}

	durationTotal := last.ArriveTime.Sub(first.DepartTime).Minutes()
	durationDwell := durationTotal - durationTravel
	if durationDwell < 0 {
		return nil, canonerrors.NewAlgorithmicInvariantError("linked_trip", "negative_dwell", "duration_dwell is negative: overlapping or misordered segments", linkedID)
	}

	lt := &model.LinkedTrip{
		LinkedTripID:     linkedID,
		PersonID:         first.PersonID,
		HhID:             first.HhID,
		DayID:            first.DayID,
		DepartTime:       first.DepartTime,
		ArriveTime:       last.ArriveTime,
		OLat:             first.OLat,
		OLon:             first.OLon,
		OPurposeCategory: first.OPurposeCategory,
		DLat:             last.DLat,
		DLon:             last.DLon,
		DPurposeCategory: last.DPurposeCategory,
		ModeType:         trips[repIdx].ModeType,
		NumSegments:      len(idxs),
		DurationTotal:    durationTotal,
		DurationTravel:   durationTravel,
		DurationDwell:    durationDwell,
		DistanceTotal:    distanceTotal,
	}

	return lt, nil
}
