// Package accident holds the BAAC bicycle-accident domain model: the
// coded-field vocabulary, row admission rules, feature enrichment, and
// the cleaning pipeline that ties them together.
package accident

import "encoding/json"

// NotSpecified is the label returned for any code that has no entry in
// its decoding table. Decoded fields never surface raw numeric codes.
const NotSpecified = "Not specified"

// Severity is the outcome category of a person involved in an accident.
type Severity int

const (
	SeverityUnspecified  Severity = -1
	SeverityUnharmed     Severity = 1
	SeverityKilled       Severity = 2
	SeverityHospitalized Severity = 3
	SeverityMinor        Severity = 4
)

// Code 2 is Killed, not a low-severity outcome. The BAAC ordering is
// not monotonic in harm.
var severityLabels = map[Severity]string{
	SeverityUnharmed:     "Unharmed",
	SeverityKilled:       "Killed",
	SeverityHospitalized: "Hospitalized",
	SeverityMinor:        "Minor injury",
}

func SeverityFrom(code *int) Severity {
	if code == nil {
		return SeverityUnspecified
	}
	if _, ok := severityLabels[Severity(*code)]; !ok {
		return SeverityUnspecified
	}
	return Severity(*code)
}

// SeverityFromLabel resolves a decoded label back to its Severity.
// Used by the filter engine so user selections stay within the closed
// vocabulary instead of free-form string comparison.
func SeverityFromLabel(label string) (Severity, bool) {
	for s, l := range severityLabels {
		if l == label {
			return s, true
		}
	}
	return SeverityUnspecified, false
}

func (s Severity) Label() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return NotSpecified
}

// Fatal reports whether the outcome was death.
func (s Severity) Fatal() bool { return s == SeverityKilled }

// Severe reports whether the outcome was hospitalization or death.
func (s Severity) Severe() bool {
	return s == SeverityKilled || s == SeverityHospitalized
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.Label()) }

// Lighting is the ambient light condition at the time of the accident.
type Lighting int

const (
	LightingUnspecified   Lighting = -1
	LightingDaylight      Lighting = 1
	LightingTwilight      Lighting = 2
	LightingNightNoLight  Lighting = 3
	LightingNightLightOff Lighting = 4
	LightingNightLightOn  Lighting = 5
)

var lightingLabels = map[Lighting]string{
	LightingDaylight:      "Daylight",
	LightingTwilight:      "Twilight or dawn",
	LightingNightNoLight:  "Night without street lighting",
	LightingNightLightOff: "Night with street lighting off",
	LightingNightLightOn:  "Night with street lighting on",
}

func LightingFrom(code *int) Lighting {
	if code == nil {
		return LightingUnspecified
	}
	if _, ok := lightingLabels[Lighting(*code)]; !ok {
		return LightingUnspecified
	}
	return Lighting(*code)
}

func (l Lighting) Label() string {
	if s, ok := lightingLabels[l]; ok {
		return s
	}
	return NotSpecified
}

// Night reports whether the condition is one of the three night codes.
func (l Lighting) Night() bool {
	return l == LightingNightNoLight || l == LightingNightLightOff || l == LightingNightLightOn
}

func (l Lighting) MarshalJSON() ([]byte, error) { return json.Marshal(l.Label()) }

// Weather is the atmospheric condition at the time of the accident.
type Weather int

const (
	WeatherUnspecified Weather = -1
	WeatherNormal      Weather = 1
	WeatherLightRain   Weather = 2
	WeatherHeavyRain   Weather = 3
	WeatherSnowHail    Weather = 4
	WeatherFogSmoke    Weather = 5
	WeatherStrongWind  Weather = 6
	WeatherDazzling    Weather = 7
	WeatherOvercast    Weather = 8
	WeatherOther       Weather = 9
)

var weatherLabels = map[Weather]string{
	WeatherNormal:     "Normal",
	WeatherLightRain:  "Light rain",
	WeatherHeavyRain:  "Heavy rain",
	WeatherSnowHail:   "Snow - hail",
	WeatherFogSmoke:   "Fog - smoke",
	WeatherStrongWind: "Strong wind - storm",
	WeatherDazzling:   "Dazzling weather",
	WeatherOvercast:   "Overcast",
	WeatherOther:      "Other",
}

func WeatherFrom(code *int) Weather {
	if code == nil {
		return WeatherUnspecified
	}
	if _, ok := weatherLabels[Weather(*code)]; !ok {
		return WeatherUnspecified
	}
	return Weather(*code)
}

func (w Weather) Label() string {
	if s, ok := weatherLabels[w]; ok {
		return s
	}
	return NotSpecified
}

// Adverse reports whether the condition belongs to the bad-weather set
// used by the dangerous-conditions flag: rain, snow, fog, wind, dazzle.
func (w Weather) Adverse() bool {
	switch w {
	case WeatherLightRain, WeatherHeavyRain, WeatherSnowHail, WeatherFogSmoke,
		WeatherStrongWind, WeatherDazzling:
		return true
	}
	return false
}

func (w Weather) MarshalJSON() ([]byte, error) { return json.Marshal(w.Label()) }

// Agglomeration distinguishes accidents inside and outside built-up areas.
type Agglomeration int

const (
	AgglomerationUnspecified Agglomeration = -1
	AgglomerationRural       Agglomeration = 1
	AgglomerationUrban       Agglomeration = 2
)

var agglomerationLabels = map[Agglomeration]string{
	AgglomerationRural: "Outside built-up area",
	AgglomerationUrban: "In built-up area",
}

func AgglomerationFrom(code *int) Agglomeration {
	if code == nil {
		return AgglomerationUnspecified
	}
	if _, ok := agglomerationLabels[Agglomeration(*code)]; !ok {
		return AgglomerationUnspecified
	}
	return Agglomeration(*code)
}

func (a Agglomeration) Label() string {
	if s, ok := agglomerationLabels[a]; ok {
		return s
	}
	return NotSpecified
}

// Class returns the short filter vocabulary for the agglomeration
// dimension: "urban", "rural", or "" when unspecified.
func (a Agglomeration) Class() string {
	switch a {
	case AgglomerationUrban:
		return "urban"
	case AgglomerationRural:
		return "rural"
	}
	return ""
}

func (a Agglomeration) MarshalJSON() ([]byte, error) { return json.Marshal(a.Label()) }

// Surface is the road surface condition.
type Surface int

const (
	SurfaceUnspecified Surface = -1
	SurfaceNormal      Surface = 1
	SurfaceWet         Surface = 2
	SurfacePuddles     Surface = 3
	SurfaceFlooded     Surface = 4
	SurfaceSnowy       Surface = 5
	SurfaceMud         Surface = 6
	SurfaceIcy         Surface = 7
	SurfaceOilGrease   Surface = 8
	SurfaceOther       Surface = 9
)

var surfaceLabels = map[Surface]string{
	SurfaceNormal:    "Normal",
	SurfaceWet:       "Wet",
	SurfacePuddles:   "Puddles",
	SurfaceFlooded:   "Flooded",
	SurfaceSnowy:     "Snowy",
	SurfaceMud:       "Mud",
	SurfaceIcy:       "Icy",
	SurfaceOilGrease: "Oil - grease",
	SurfaceOther:     "Other",
}

func SurfaceFrom(code *int) Surface {
	if code == nil {
		return SurfaceUnspecified
	}
	if _, ok := surfaceLabels[Surface(*code)]; !ok {
		return SurfaceUnspecified
	}
	return Surface(*code)
}

func (s Surface) Label() string {
	if l, ok := surfaceLabels[s]; ok {
		return l
	}
	return NotSpecified
}

// Slippery reports whether the surface belongs to the slippery set used
// by the dangerous-conditions flag: wet, puddles, snow, mud, ice, oil.
func (s Surface) Slippery() bool {
	switch s {
	case SurfaceWet, SurfacePuddles, SurfaceSnowy, SurfaceMud, SurfaceIcy, SurfaceOilGrease:
		return true
	}
	return false
}

func (s Surface) MarshalJSON() ([]byte, error) { return json.Marshal(s.Label()) }

// Infrastructure is the cycling-specific road infrastructure present at
// the accident location.
type Infrastructure int

const (
	InfrastructureUnspecified Infrastructure = -1
	InfrastructureNone        Infrastructure = 0
	InfrastructureSeparated   Infrastructure = 1
	InfrastructurePainted     Infrastructure = 2
	InfrastructureReserved    Infrastructure = 3
	InfrastructureOther       Infrastructure = 4
)

var infrastructureLabels = map[Infrastructure]string{
	InfrastructureNone:      "Without infrastructure",
	InfrastructureSeparated: "Bike lane (physically separated)",
	InfrastructurePainted:   "Bike lane (painted)",
	InfrastructureReserved:  "Reserved lane",
	InfrastructureOther:     "Other infrastructure",
}

func InfrastructureFrom(code *int) Infrastructure {
	if code == nil {
		return InfrastructureUnspecified
	}
	if _, ok := infrastructureLabels[Infrastructure(*code)]; !ok {
		return InfrastructureUnspecified
	}
	return Infrastructure(*code)
}

func (i Infrastructure) Label() string {
	if l, ok := infrastructureLabels[i]; ok {
		return l
	}
	return NotSpecified
}

func (i Infrastructure) MarshalJSON() ([]byte, error) { return json.Marshal(i.Label()) }

// RoadCategory is the administrative class of the road.
type RoadCategory int

const RoadCategoryUnspecified RoadCategory = -1

var roadCategoryLabels = map[RoadCategory]string{
	1: "Highway",
	2: "National road",
	3: "Departmental road",
	4: "Municipal road",
	5: "Off public network",
	6: "Parking lot",
	9: "Other",
}

func RoadCategoryFrom(code *int) RoadCategory {
	if code == nil {
		return RoadCategoryUnspecified
	}
	if _, ok := roadCategoryLabels[RoadCategory(*code)]; !ok {
		return RoadCategoryUnspecified
	}
	return RoadCategory(*code)
}

func (r RoadCategory) Label() string {
	if l, ok := roadCategoryLabels[r]; ok {
		return l
	}
	return NotSpecified
}

func (r RoadCategory) MarshalJSON() ([]byte, error) { return json.Marshal(r.Label()) }

// Intersection is the intersection layout at the accident location.
type Intersection int

const IntersectionUnspecified Intersection = -1

var intersectionLabels = map[Intersection]string{
	1: "Outside intersection",
	2: "X intersection",
	3: "T intersection",
	4: "Y intersection",
	5: "Intersection with more than 4 branches",
	6: "Roundabout",
	7: "Square",
	8: "Level crossing",
	9: "Other intersection",
}

func IntersectionFrom(code *int) Intersection {
	if code == nil {
		return IntersectionUnspecified
	}
	if _, ok := intersectionLabels[Intersection(*code)]; !ok {
		return IntersectionUnspecified
	}
	return Intersection(*code)
}

func (i Intersection) Label() string {
	if l, ok := intersectionLabels[i]; ok {
		return l
	}
	return NotSpecified
}

func (i Intersection) MarshalJSON() ([]byte, error) { return json.Marshal(i.Label()) }

// Collision is the collision configuration.
type Collision int

const CollisionUnspecified Collision = -1

var collisionLabels = map[Collision]string{
	1: "Two vehicles - front",
	2: "Two vehicles - from rear",
	3: "Two vehicles - from side",
	4: "Three or more vehicles - chain",
	5: "Three or more vehicles - multiple",
	6: "Other collision",
	7: "Without collision",
}

func CollisionFrom(code *int) Collision {
	if code == nil {
		return CollisionUnspecified
	}
	if _, ok := collisionLabels[Collision(*code)]; !ok {
		return CollisionUnspecified
	}
	return Collision(*code)
}

func (c Collision) Label() string {
	if l, ok := collisionLabels[c]; ok {
		return l
	}
	return NotSpecified
}

func (c Collision) MarshalJSON() ([]byte, error) { return json.Marshal(c.Label()) }

// Situation is the cyclist's position on the road.
type Situation int

// -1 appears in the source data itself, so here the in-table
// "Not specified" entry doubles as the unknown-code sentinel.
const SituationNotSpecified Situation = -1

var situationLabels = map[Situation]string{
	SituationNotSpecified: NotSpecified,
	0:                     "None",
	1:                     "On roadway",
	2:                     "On emergency lane",
	3:                     "On shoulder",
	4:                     "On sidewalk",
	5:                     "On bike path",
	6:                     "On other special lane",
	8:                     "Other",
}

func SituationFrom(code *int) Situation {
	if code == nil {
		return SituationNotSpecified
	}
	if _, ok := situationLabels[Situation(*code)]; !ok {
		return SituationNotSpecified
	}
	return Situation(*code)
}

func (s Situation) Label() string {
	if l, ok := situationLabels[s]; ok {
		return l
	}
	return NotSpecified
}

func (s Situation) MarshalJSON() ([]byte, error) { return json.Marshal(s.Label()) }

// Gender of the person involved.
type Gender int

const (
	GenderUnspecified Gender = -1
	GenderMale        Gender = 1
	GenderFemale      Gender = 2
)

var genderLabels = map[Gender]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
}

func GenderFrom(code *int) Gender {
	if code == nil {
		return GenderUnspecified
	}
	if _, ok := genderLabels[Gender(*code)]; !ok {
		return GenderUnspecified
	}
	return Gender(*code)
}

func (g Gender) Label() string {
	if l, ok := genderLabels[g]; ok {
		return l
	}
	return NotSpecified
}

func (g Gender) MarshalJSON() ([]byte, error) { return json.Marshal(g.Label()) }

// TripPurpose is the declared reason for the trip.
type TripPurpose int

const TripPurposeUnspecified TripPurpose = -1

var tripPurposeLabels = map[TripPurpose]string{
	0: NotSpecified,
	1: "Home - work",
	2: "Home - school",
	3: "Shopping",
	4: "Professional use",
	5: "Leisure",
	9: "Other",
}

func TripPurposeFrom(code *int) TripPurpose {
	if code == nil {
		return TripPurposeUnspecified
	}
	if _, ok := tripPurposeLabels[TripPurpose(*code)]; !ok {
		return TripPurposeUnspecified
	}
	return TripPurpose(*code)
}

func (p TripPurpose) Label() string {
	if l, ok := tripPurposeLabels[p]; ok {
		return l
	}
	return NotSpecified
}

func (p TripPurpose) MarshalJSON() ([]byte, error) { return json.Marshal(p.Label()) }

// SeverityLabels returns the decoded vocabulary in code order, for
// consumers that want a stable display ordering.
func SeverityLabels() []string {
	return []string{
		severityLabels[SeverityUnharmed],
		severityLabels[SeverityKilled],
		severityLabels[SeverityHospitalized],
		severityLabels[SeverityMinor],
	}
}
