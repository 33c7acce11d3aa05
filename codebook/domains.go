package codebook

// PurposeCategory is the coarse trip-purpose domain used by the tour
// extractor's purpose-priority and location-classification rules.
type PurposeCategory int

const (
	PurposeHome         PurposeCategory = 1
	PurposeWork         PurposeCategory = 2
	PurposeWorkRelated  PurposeCategory = 3
	PurposeSchool       PurposeCategory = 4
	PurposeSchoolRelated PurposeCategory = 5
	PurposeMeal         PurposeCategory = 6
	PurposeShop         PurposeCategory = 7
	PurposeSocial       PurposeCategory = 8
	PurposeRecreation   PurposeCategory = 9
	PurposeEscort       PurposeCategory = 10
	PurposeChangeMode   PurposeCategory = 11
	PurposeOther        PurposeCategory = 12
	PurposeMissing      PurposeCategory = SentinelMissing
	PurposePNTA         PurposeCategory = SentinelPNTA
	PurposeNotImputable PurposeCategory = SentinelNotImputable
)

var PurposeCategoryBook = NewCodebook[PurposeCategory]("d_purpose_category", []Code{
	{int(PurposeHome), "HOME"},
	{int(PurposeWork), "WORK"},
	{int(PurposeWorkRelated), "WORK_RELATED"},
	{int(PurposeSchool), "SCHOOL"},
	{int(PurposeSchoolRelated), "SCHOOL_RELATED"},
	{int(PurposeMeal), "MEAL"},
	{int(PurposeShop), "SHOP"},
	{int(PurposeSocial), "SOCIAL"},
	{int(PurposeRecreation), "RECREATION"},
	{int(PurposeEscort), "ESCORT"},
	{int(PurposeChangeMode), "CHANGE_MODE"},
	{int(PurposeOther), "OTHER"},
	{SentinelMissing, "MISSING"},
	{SentinelPNTA, "PNTA"},
	{SentinelNotImputable, "NOT_IMPUTABLE"},
})

// IsSentinelPurpose reports whether a purpose code is one of the
// sentinels that must be treated as "no purpose" by location
// classification (spec §9 Open Question 4).
func IsSentinelPurpose(p PurposeCategory) bool {
	return IsSentinel(int(p))
}

// ModeType is the coarse mode-of-travel domain.
type ModeType int

const (
	ModeWalk       ModeType = 1
	ModeBike       ModeType = 2
	ModeDriveAlone ModeType = 3
	ModeHOV        ModeType = 4
	ModeSchoolBus  ModeType = 5
	ModeTransit    ModeType = 6
	ModeOther      ModeType = 7
)

var ModeTypeBook = NewCodebook[ModeType]("mode_type", []Code{
	{int(ModeWalk), "WALK"},
	{int(ModeBike), "BIKE"},
	{int(ModeDriveAlone), "DRIVE_ALONE"},
	{int(ModeHOV), "HOV"},
	{int(ModeSchoolBus), "SCHOOL_BUS"},
	{int(ModeTransit), "TRANSIT"},
	{int(ModeOther), "OTHER"},
})

// LocationType classifies a trip endpoint relative to a person's
// anchors.
type LocationType int

const (
	LocationHome   LocationType = 1
	LocationWork   LocationType = 2
	LocationSchool LocationType = 3
	LocationOther  LocationType = 4
)

var LocationTypeBook = NewCodebook[LocationType]("location_type", []Code{
	{int(LocationHome), "HOME"},
	{int(LocationWork), "WORK"},
	{int(LocationSchool), "SCHOOL"},
	{int(LocationOther), "OTHER"},
})

// String renders the location type label, used in log/error context.
func (l LocationType) String() string {
	return LocationTypeBook.LabelOf(int(l))
}

// TourCategory is the home-based boundary classification of a tour,
// refined in stage 3 to WORK_BASED/SCHOOL_BASED for subtours.
type TourCategory int

const (
	TourComplete     TourCategory = 1
	TourPartialStart TourCategory = 2
	TourPartialEnd   TourCategory = 3
	TourPartialBoth  TourCategory = 4
	TourWorkBased    TourCategory = 5
	TourSchoolBased  TourCategory = 6
)

var TourCategoryBook = NewCodebook[TourCategory]("tour_category", []Code{
	{int(TourComplete), "COMPLETE"},
	{int(TourPartialStart), "PARTIAL_START"},
	{int(TourPartialEnd), "PARTIAL_END"},
	{int(TourPartialBoth), "PARTIAL_BOTH"},
	{int(TourWorkBased), "WORK_BASED"},
	{int(TourSchoolBased), "SCHOOL_BASED"},
})

// TourDirection is the half-tour classification of a linked trip.
type TourDirection int

const (
	DirectionOutbound TourDirection = 1
	DirectionInbound  TourDirection = 2
	DirectionSubtour  TourDirection = 3
)

var TourDirectionBook = NewCodebook[TourDirection]("tour_direction", []Code{
	{int(DirectionOutbound), "OUTBOUND"},
	{int(DirectionInbound), "INBOUND"},
	{int(DirectionSubtour), "SUBTOUR"},
})

// Gender is the reported gender domain.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderOther  Gender = 3
	GenderMissing Gender = SentinelMissing
	GenderPNTA    Gender = SentinelPNTA
)

var GenderBook = NewCodebook[Gender]("gender", []Code{
	{int(GenderMale), "MALE"},
	{int(GenderFemale), "FEMALE"},
	{int(GenderOther), "OTHER"},
	{SentinelMissing, "MISSING"},
	{SentinelPNTA, "PNTA"},
})

// Employment is the reported employment-status domain.
type Employment int

const (
	EmploymentFullTime Employment = 1
	EmploymentPartTime Employment = 2
	EmploymentSelf     Employment = 3
	EmploymentNotEmployed Employment = 4
	EmploymentMissing  Employment = SentinelMissing
)

var EmploymentBook = NewCodebook[Employment]("employment", []Code{
	{int(EmploymentFullTime), "FULL_TIME"},
	{int(EmploymentPartTime), "PART_TIME"},
	{int(EmploymentSelf), "SELF_EMPLOYED"},
	{int(EmploymentNotEmployed), "NOT_EMPLOYED"},
	{SentinelMissing, "MISSING"},
})

// Student is the reported student-status domain.
type Student int

const (
	StudentNotStudent   Student = 1
	StudentFullTime     Student = 2
	StudentPartTime     Student = 3
	StudentMissing      Student = SentinelMissing
)

var StudentBook = NewCodebook[Student]("student", []Code{
	{int(StudentNotStudent), "NOT_STUDENT"},
	{int(StudentFullTime), "FULL_TIME_STUDENT"},
	{int(StudentPartTime), "PART_TIME_STUDENT"},
	{SentinelMissing, "MISSING"},
})

// SchoolType is the kind of school a student attends.
type SchoolType int

const (
	SchoolK12        SchoolType = 1
	SchoolUniversity SchoolType = 2
	SchoolVocational SchoolType = 3
	SchoolNone       SchoolType = 4
	SchoolMissing    SchoolType = SentinelMissing
)

var SchoolTypeBook = NewCodebook[SchoolType]("school_type", []Code{
	{int(SchoolK12), "K12"},
	{int(SchoolUniversity), "UNIVERSITY"},
	{int(SchoolVocational), "VOCATIONAL"},
	{int(SchoolNone), "NONE"},
	{SentinelMissing, "MISSING"},
})

// AgeCategory buckets reported age into ranges whose midpoint is
// derivable (spec §4.1).
type AgeCategory int

const (
	AgeUnder5    AgeCategory = 1
	Age5to15     AgeCategory = 2
	Age16to17    AgeCategory = 3
	Age18to24    AgeCategory = 4
	Age25to34    AgeCategory = 5
	Age35to54    AgeCategory = 6
	Age55to64    AgeCategory = 7
	Age65Plus    AgeCategory = 8
)

var AgeCategoryBook = NewCodebook[AgeCategory]("age_category", []Code{
	{int(AgeUnder5), "UNDER_5"},
	{int(Age5to15), "5_TO_15"},
	{int(Age16to17), "16_TO_17"},
	{int(Age18to24), "18_TO_24"},
	{int(Age25to34), "25_TO_34"},
	{int(Age35to54), "35_TO_54"},
	{int(Age55to64), "55_TO_64"},
	{int(Age65Plus), "65_PLUS"},
})

// Midpoint returns the approximate midpoint age, in years, for an age
// category bucket.
func (a AgeCategory) Midpoint() float64 {
	switch a {
	case AgeUnder5:
		return 2.5
	case Age5to15:
		return 10
	case Age16to17:
		return 16.5
	case Age18to24:
		return 21
	case Age25to34:
		return 30
	case Age35to54:
		return 45
	case Age55to64:
		return 60
	case Age65Plus:
		return 72
	default:
		return 0
	}
}

// PersonType is the derived DaySim/CT-RAMP-style person-type
// classification computed from age/employment/student.
type PersonType int

const (
	PersonFullTimeWorker    PersonType = 1
	PersonPartTimeWorker    PersonType = 2
	PersonUniversity        PersonType = 3
	PersonNonWorkingAdult   PersonType = 4
	PersonRetired           PersonType = 5
	PersonDrivingAgeChild   PersonType = 6
	PersonChild5to15        PersonType = 7
	PersonChildUnder5       PersonType = 8
)

var PersonTypeBook = NewCodebook[PersonType]("person_type", []Code{
	{int(PersonFullTimeWorker), "FULL_TIME_WORKER"},
	{int(PersonPartTimeWorker), "PART_TIME_WORKER"},
	{int(PersonUniversity), "UNIVERSITY_STUDENT"},
	{int(PersonNonWorkingAdult), "NON_WORKING_ADULT"},
	{int(PersonRetired), "RETIRED"},
	{int(PersonDrivingAgeChild), "DRIVING_AGE_CHILD"},
	{int(PersonChild5to15), "CHILD_5_TO_15"},
	{int(PersonChildUnder5), "CHILD_UNDER_5"},
})

// TravelDow is the 1..7 (Mon=1) day-of-week domain shared by the day
// table's travel_dow field.
type TravelDow int

const (
	Monday TravelDow = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var TravelDowBook = NewCodebook[TravelDow]("travel_dow", []Code{
	{int(Monday), "MONDAY"},
	{int(Tuesday), "TUESDAY"},
	{int(Wednesday), "WEDNESDAY"},
	{int(Thursday), "THURSDAY"},
	{int(Friday), "FRIDAY"},
	{int(Saturday), "SATURDAY"},
	{int(Sunday), "SUNDAY"},
})

// ArriveDow and DepartDow reuse TravelDow's domain while pinning their
// own canonical field name (spec §4.1's subclassing example).
type ArriveDow = TravelDow
type DepartDow = TravelDow

var ArriveDowBook = Refine[TravelDow](TravelDowBook, "arrive_dow")
var DepartDowBook = Refine[TravelDow](TravelDowBook, "depart_dow")

// WorkPurposeCodes and SchoolPurposeCodes are the anchor-specific
// purpose sets used by stage-1 location classification (spec §4.5.2):
// a trip endpoint whose reported purpose falls in the anchor's set is
// classified at that anchor regardless of distance.
var (
	HomePurposeCodes   = map[PurposeCategory]bool{PurposeHome: true}
	WorkPurposeCodes   = map[PurposeCategory]bool{PurposeWork: true, PurposeWorkRelated: true}
	SchoolPurposeCodes = map[PurposeCategory]bool{PurposeSchool: true, PurposeSchoolRelated: true}
)
