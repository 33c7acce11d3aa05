package tours

import (
	"sort"

	"github.com/travel-diary/canon-engine/codebook"
	"github.com/travel-diary/canon-engine/model"
)

// SummarizePersonDays builds the supplemented per-person-day reporting
// view: home-based tour/stop counts and per-day primary purpose,
// derived from the tour extractor's output. It is a derived reporting
// convenience, not part of the canonical validated schema (C3/C6).
func SummarizePersonDays(tours []model.Tour) []model.PersonDay {
	type key struct {
		PersonID int64
		DayID    int64
	}

	byKey := make(map[key]*model.PersonDay)
	firstTour := make(map[key]model.Tour)
	var order []key

	for _, t := range tours {
		if t.ParentTourID != nil {
			continue // home-based tours only; subtours are counted within their parent.
		}

		k := key{t.PersonID, t.DayID}
		pd, ok := byKey[k]
		if !ok {
			pd = &model.PersonDay{PersonID: t.PersonID, DayID: t.DayID}
			byKey[k] = pd
			order = append(order, k)
		}

		pd.NumTours++
		pd.NumStops += t.NumOutboundStops + t.NumInboundStops

		purpose := codebook.PurposeCategory(t.PrimaryPurpose)
		if purpose == codebook.PurposeWork || purpose == codebook.PurposeWorkRelated {
			pd.WorkTours++
		}
		if purpose == codebook.PurposeSchool || purpose == codebook.PurposeSchoolRelated {
			pd.SchoolTours++
		}

		cur, seen := firstTour[k]
		if !seen || t.OriginDepartTime.Before(cur.OriginDepartTime) {
			firstTour[k] = t
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].PersonID != order[j].PersonID {
			return order[i].PersonID < order[j].PersonID
		}
		return order[i].DayID < order[j].DayID
	})

	out := make([]model.PersonDay, 0, len(order))
	for _, k := range order {
		pd := *byKey[k]
		pd.PrimaryPurpose = firstTour[k].PrimaryPurpose
		out = append(out, pd)
	}
	return out
}
