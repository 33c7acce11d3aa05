// Package model defines the canonical entity rows (spec §3): the six
// tables the container holds, with per-field step-aware metadata
// carried in `canon` struct tags and read at runtime by package
// schema.
package model

import "time"

// Household is a single surveyed household.
type Household struct {
	HhID         int64    `canon:"unique;required=all"`
	HomeLat      float64  `canon:"required=all"`
	HomeLon      float64  `canon:"required=all"`
	HomeTaz      int64    `canon:"required=all"`
	NumPeople    int      `canon:"ge=1;required=all"`
	NumVehicles  int      `canon:"ge=0;required=all"`
	NumWorkers   int      `canon:"ge=0;required=all"`
	IncomeDetailed  *int  `canon:""`
	IncomeFollowup  *int  `canon:""`
	HhWeight     float64  `canon:"ge=0;required=all"`
}

// Person is a household member.
type Person struct {
	PersonID            int64      `canon:"unique;required=all"`
	HhID                int64      `canon:"fk=household.hh_id;required_child;required=all"`
	PersonNum           int        `canon:"ge=1;required=all"`
	AgeCategory         int        `canon:"required=all"`
	Gender              int        `canon:"required=all"`
	Employment          int        `canon:"required=all"`
	Student             int        `canon:"required=all"`
	SchoolType          int        `canon:""`
	WorkLat             *float64   `canon:""`
	WorkLon             *float64   `canon:""`
	WorkTaz             *int64     `canon:""`
	SchoolLat           *float64   `canon:""`
	SchoolLon           *float64   `canon:""`
	SchoolTaz           *int64     `canon:""`
	CommuteSubsidyFlags int        `canon:""`
	PersonType          *int       `canon:""`
}

// Day is one surveyed travel day for a person.
type Day struct {
	DayID       int64     `canon:"unique;required=all"`
	PersonID    int64     `canon:"fk=person.person_id;required_child;required=all"`
	HhID        int64     `canon:"fk=household.hh_id;required=all"`
	PersonNum   int       `canon:"ge=1;required=all"`
	DayNum      int       `canon:"ge=1;required=all"`
	TravelDate  time.Time `canon:"required=all"`
	TravelDow   int       `canon:"ge=1;le=7;required=all"`
	IsComplete  bool      `canon:"required=all"`
	NumTrips    int       `canon:"ge=0;required=all"`
	DayWeight   float64   `canon:"ge=0;required=all"`
}

// UnlinkedTrip is a single reported trip segment, before linking.
type UnlinkedTrip struct {
	TripID            int64      `canon:"unique;required=all"`
	DayID             int64      `canon:"fk=day.day_id;required=all"`
	PersonID          int64      `canon:"fk=person.person_id;required=all"`
	HhID              int64      `canon:"fk=household.hh_id;required=all"`
	DepartTime        time.Time  `canon:"required=all"`
	ArriveTime        time.Time  `canon:"required=all"`
	OLat              float64    `canon:"required=all"`
	OLon              float64    `canon:"required=all"`
	DLat              float64    `canon:"required=all"`
	DLon              float64    `canon:"required=all"`
	OTaz              int64      `canon:""`
	DTaz              int64      `canon:""`
	OPurposeCategory  int        `canon:"required=all"`
	DPurposeCategory  int        `canon:"required=all"`
	ModeType          int        `canon:"required=all"`
	Mode              int        `canon:""`
	NumTravelers      int        `canon:"ge=1;required=all"`
	Driver            bool       `canon:""`
	Distance          float64    `canon:"ge=0;required=all"`
	Duration          float64    `canon:"ge=0;required=all"`

	// Populated by later pipeline stages.
	LinkedTripID *int64 `canon:"required=linked,tours,final"`
	TourID       *int64 `canon:"required=tours,final"`
}

// LinkedTrip is the aggregated result of the trip linker (C4).
type LinkedTrip struct {
	LinkedTripID     int64      `canon:"unique;required=all"`
	PersonID         int64      `canon:"fk=person.person_id;required=all"`
	HhID             int64      `canon:"fk=household.hh_id;required=all"`
	DayID            int64      `canon:"fk=day.day_id;required=all"`
	DepartTime       time.Time  `canon:"required=all"`
	ArriveTime       time.Time  `canon:"required=all"`
	OLat             float64    `canon:"required=all"`
	OLon             float64    `canon:"required=all"`
	OPurposeCategory int        `canon:"required=all"`
	DLat             float64    `canon:"required=all"`
	DLon             float64    `canon:"required=all"`
	DPurposeCategory int        `canon:"required=all"`
	ModeType         int        `canon:"required=all"`
	NumSegments      int        `canon:"ge=1;required=all"`
	DurationTotal    float64    `canon:"ge=0;required=all"`
	DurationTravel   float64    `canon:"ge=0;required=all"`
	DurationDwell    float64    `canon:"ge=0;required=all"`
	DistanceTotal    float64    `canon:"ge=0;required=all"`

	// Populated by the tour extractor (C5).
	TourID            *int64 `canon:"required=tours,final"`
	TourDirection     *int   `canon:"required=tours,final"`
	IsPrimaryDestTrip *bool  `canon:""`
}

// Tour is a home-based tour or a work/school-anchored subtour,
// produced by the tour extractor (C5).
type Tour struct {
	TourID           int64     `canon:"unique;required=all"`
	PersonID         int64     `canon:"fk=person.person_id;required=all"`
	HhID             int64     `canon:"fk=household.hh_id;required=all"`
	DayID            int64     `canon:"fk=day.day_id;required=all"`
	TourNumInDay     int       `canon:"ge=1;required=all"`
	TourCategory     int       `canon:"required=all"`
	ParentTourID     *int64    `canon:""`
	PrimaryPurpose   int       `canon:"required=all"`
	TourMode         int       `canon:"required=all"`
	OriginDepartTime time.Time `canon:"required=all"`
	DestArriveTime   time.Time `canon:"required=all"`
	DestDepartTime   time.Time `canon:"required=all"`
	OriginArriveTime time.Time `canon:"required=all"`
	OLat             float64   `canon:"required=all"`
	OLon             float64   `canon:"required=all"`
	DLat             float64   `canon:"required=all"`
	DLon             float64   `canon:"required=all"`
	OLocationType    int       `canon:"required=all"`
	DLocationType    int       `canon:"required=all"`
	NumOutboundStops int       `canon:"ge=0;required=all"`
	NumInboundStops  int       `canon:"ge=0;required=all"`
}

// PersonDay is a supplemented, non-canonical summary row (one per
// person-day) described in SPEC_FULL.md §C.1: it is never validated by
// the C3 substrate, only derived from already-validated tables.
type PersonDay struct {
	PersonID   int64
	DayID      int64
	NumTours   int
	NumStops   int
	WorkTours  int
	SchoolTours int
	PrimaryPurpose int
}
