package tours

import (
	"time"

	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/config"
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/geo"
	"github.com/travel-diary/canon-engine/model"
)

// personCategoryFor resolves the person-category key used by
// cfg.PurposePriorityByPersonCategory, preferring a cached person_type
// if present and falling back to employment/student status.
func personCategoryFor(person model.Person, cfg config.TourConfig) string {
	if person.PersonType != nil {
		if cat, ok := cfg.PersonTypeMapping[codebook.PersonType(*person.PersonType)]; ok {
			return cat
		}
	}
	switch {
	case isWorker(person):
		return "WORKER"
	case isStudent(person):
		return "STUDENT"
	default:
		return "OTHER"
	}
}

// activityDuration estimates, in minutes, how long the person stayed
// at the destination of the trip at indices[pos] before the next trip
// in the group departs, falling back to the configured default when
// there is no next trip or the gap is degenerate.
func activityDuration(classified []classifiedTrip, indices []int, pos int, cfg config.TourConfig) float64 {
	if pos+1 >= len(indices) {
		return float64(cfg.DefaultActivityDurationMinutes)
	}
	cur := classified[indices[pos]].Trip
	next := classified[indices[pos+1]].Trip
	d := next.DepartTime.Sub(cur.ArriveTime).Minutes()
	if d < 0 {
		return float64(cfg.DefaultActivityDurationMinutes)
	}
	return d
}

// primaryDestThreshold returns the distance tolerance used when
// matching trips against the primary destination, defaulting to the
// HOME threshold when the destination classified as OTHER (spec
// §4.5.2 stage 4 timing note).
func primaryDestThreshold(locType codebook.LocationType, cfg config.TourConfig) float64 {
	if locType == codebook.LocationOther {
		return cfg.DistanceThresholds[codebook.LocationHome]
	}
	return cfg.DistanceThresholds[locType]
}

// aggregateGroup runs stage 4 (spec §4.5.2) over one aggregation group
// — a home-based tour's full index list, or one subtour's index list.
// aggregateGroup returns the built tour row, the index into classified
// of the trip it picked as the primary destination trip (-1 if the
// group is empty and aggregation failed), and any errors.
func aggregateGroup(id int64, parentTourID *int64, tourNumInDay int, personID, hhID, dayID int64, indices []int, boundaryCategory codebook.TourCategory, classified []classifiedTrip, person model.Person, cfg config.TourConfig) (*model.Tour, int, []*canonerrors.CanonError) {
	if len(indices) == 0 {
		return nil, -1, []*canonerrors.CanonError{canonerrors.NewAlgorithmicInvariantError("tour", "zero_trips", "tour aggregates zero trips", id)}
	}

	personCategory := personCategoryFor(person, cfg)

	// Primary purpose: every trip except the last (the return leg).
	candidates := indices
	if len(candidates) > 1 {
		candidates = candidates[:len(candidates)-1]
	}

	bestPos := 0
	bestPriority := cfg.PurposePriority(personCategory, codebook.PurposeCategory(classified[candidates[0]].Trip.DPurposeCategory))
	bestDuration := activityDuration(classified, indices, 0, cfg)

	for pos := 1; pos < len(candidates); pos++ {
		pr := cfg.PurposePriority(personCategory, codebook.PurposeCategory(classified[candidates[pos]].Trip.DPurposeCategory))
		dur := activityDuration(classified, indices, pos, cfg)
		if pr < bestPriority || (pr == bestPriority && dur > bestDuration) {
			bestPos, bestPriority, bestDuration = pos, pr, dur
		}
	}
	primaryIdx := candidates[bestPos]
	primary := classified[primaryIdx]

	// Tour mode: highest-priority mode among every trip in the group.
	modeIdx := indices[0]
	modeRank := cfg.ModeRank(codebook.ModeType(classified[modeIdx].Trip.ModeType))
	for _, idx := range indices[1:] {
		r := cfg.ModeRank(codebook.ModeType(classified[idx].Trip.ModeType))
		if r > modeRank {
			modeIdx, modeRank = idx, r
		}
	}

	first := classified[indices[0]].Trip
	last := classified[indices[len(indices)-1]].Trip

	anchor := geo.Point{Lat: primary.Trip.DLat, Lon: primary.Trip.DLon}
	threshold := primaryDestThreshold(primary.DLocationType, cfg)

	var destArrive, destDepart time.Time
	for _, idx := range indices {
		t := classified[idx].Trip
		if (geo.Point{Lat: t.DLat, Lon: t.DLon}).Within(anchor, threshold) {
			if destArrive.IsZero() || t.ArriveTime.After(destArrive) {
				destArrive = t.ArriveTime
			}
		}
		if (geo.Point{Lat: t.OLat, Lon: t.OLon}).Within(anchor, threshold) {
			if destDepart.IsZero() || t.DepartTime.After(destDepart) {
				destDepart = t.DepartTime
			}
		}
	}
	if destArrive.IsZero() {
		destArrive = primary.Trip.ArriveTime
	}
	if destDepart.IsZero() {
		destDepart = primary.Trip.DepartTime
	}

	outboundStops, inboundStops := countStops(indices, classified, destArrive, destDepart)

	tour := &model.Tour{
		TourID:           id,
		PersonID:         personID,
		HhID:             hhID,
		DayID:            dayID,
		TourNumInDay:     tourNumInDay,
		TourCategory:     int(boundaryCategory),
		ParentTourID:     parentTourID,
		PrimaryPurpose:   primary.Trip.DPurposeCategory,
		TourMode:         classified[modeIdx].Trip.ModeType,
		OriginDepartTime: first.DepartTime,
		DestArriveTime:   destArrive,
		DestDepartTime:   destDepart,
		OriginArriveTime: last.ArriveTime,
		OLat:             first.OLat,
		OLon:             first.OLon,
		DLat:             primary.Trip.DLat,
		DLon:             primary.Trip.DLon,
		OLocationType:    int(classified[indices[0]].OLocationType),
		DLocationType:    int(primary.DLocationType),
		NumOutboundStops: outboundStops,
		NumInboundStops:  inboundStops,
	}

	return tour, primaryIdx, nil
}

// countStops classifies every trip in indices as OUTBOUND (arrives no
// later than destArrive) or INBOUND (departs no earlier than
// destDepart), defaulting to OUTBOUND for a degenerate middle case,
// and returns (|outbound|−1, |inbound|−1) per spec §4.5.2 stage 4.
func countStops(indices []int, classified []classifiedTrip, destArrive, destDepart time.Time) (outbound, inbound int) {
	var outCount, inCount int
	for _, idx := range indices {
		t := classified[idx].Trip
		switch {
		case !t.ArriveTime.After(destArrive):
			outCount++
		case !t.DepartTime.Before(destDepart):
			inCount++
		default:
			outCount++
		}
	}
	outbound = outCount - 1
	if outbound < 0 {
		outbound = 0
	}
	inbound = inCount - 1
	if inbound < 0 {
		inbound = 0
	}
	return
}

// classifyHalfTour assigns a linked trip's tour_direction (spec
// §4.5.2 stage 4's final bullet): SUBTOUR if it belongs to a subtour,
// else OUTBOUND/INBOUND relative to the enclosing tour's primary
// destination timing.
func classifyHalfTour(trip model.LinkedTrip, destArrive, destDepart time.Time, inSubtour bool) codebook.TourDirection {
	if inSubtour {
		return codebook.DirectionSubtour
	}
	switch {
	case !trip.ArriveTime.After(destArrive):
		return codebook.DirectionOutbound
	case !trip.DepartTime.Before(destDepart):
		return codebook.DirectionInbound
	default:
		return codebook.DirectionOutbound
	}
}
