package accident

import "time"

// RawRecord is one row of the source table as ingested. Fields are
// loosely typed: pointers are nil when the cell was empty or could not
// be parsed. Raw rows are read by the validator and enricher and never
// mutated.
type RawRecord struct {
	Year         *int
	Date         string // day-level, as found in the file
	Time         string // "HH:MM", as found in the file
	SeverityCode *int
	Age          *int
	Department   string
	Latitude     *float64
	Longitude    *float64

	LightingCode       *int
	WeatherCode        *int
	AgglomerationCode  *int
	IntersectionCode   *int
	RoadCategoryCode   *int
	SurfaceCode        *int
	InfrastructureCode *int
	SituationCode      *int
	GenderCode         *int
	TripPurposeCode    *int
	CollisionCode      *int
}

// TimePeriod is the 4-way day-phase bucket.
type TimePeriod string

const (
	PeriodUnknown   TimePeriod = ""
	PeriodNight     TimePeriod = "Night"
	PeriodMorning   TimePeriod = "Morning"
	PeriodAfternoon TimePeriod = "Afternoon"
	PeriodEvening   TimePeriod = "Evening"
)

// Season of the accident date.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// AgeGroup is the 7-way age bucket. Empty when age is absent.
type AgeGroup string

const AgeGroupUnknown AgeGroup = ""

// CleanedRecord is one person-involved-in-an-accident observation after
// validation, decoding, and enrichment. Instances are immutable once
// built; the whole set is held in memory and shared read-only.
type CleanedRecord struct {
	Date      time.Time `json:"date"`
	Year      int       `json:"year"`
	MonthNum  int       `json:"month_num"`
	MonthName string    `json:"month_name"`
	DayOfWeek string    `json:"day_of_week"`
	// Hour is nil when the time field could not be parsed; defaulting
	// to 0 would bias the hourly aggregates toward midnight.
	Hour       *int       `json:"hour"`
	TimePeriod TimePeriod `json:"time_period"`
	Season     Season     `json:"season"`

	// Department is the normalized 2-character code ("01".."95", "2A",
	// "2B"). DepartmentValid is false when the source value did not
	// normalize; such records stay in the set but are grouped under an
	// unknown key by department-level aggregation.
	Department      string   `json:"department"`
	DepartmentValid bool     `json:"department_valid"`
	Latitude        *float64 `json:"lat"`
	Longitude       *float64 `json:"long"`

	Severity       Severity       `json:"severity"`
	Lighting       Lighting       `json:"lighting"`
	Weather        Weather        `json:"weather"`
	Agglomeration  Agglomeration  `json:"agglomeration"`
	Intersection   Intersection   `json:"intersection_type"`
	RoadCategory   RoadCategory   `json:"road_category"`
	Surface        Surface        `json:"surface_condition"`
	Infrastructure Infrastructure `json:"infrastructure"`
	Situation      Situation      `json:"situation"`
	Gender         Gender         `json:"gender"`
	TripPurpose    TripPurpose    `json:"trip_purpose"`
	Collision      Collision      `json:"collision_type"`

	Age      *int     `json:"age"`
	AgeGroup AgeGroup `json:"age_group"`

	IsFatal               bool `json:"is_fatal"`
	IsSevere              bool `json:"is_severe"`
	IsWeekend             bool `json:"is_weekend"`
	DangerousConditions   bool `json:"dangerous_conditions"`
	HasBikeInfrastructure bool `json:"has_bike_infrastructure"`
}
