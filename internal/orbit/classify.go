package orbit

import (
	"math"
	"strings"

	"github.com/orbview/sattrack/internal/catalog"
)

// geoBeltKm is the altitude of the geostationary belt.
const geoBeltKm = 35786.0

// regimeRule pairs a predicate over (altitude, inclination) with the regime
// it selects. Rules are evaluated top to bottom and the first match wins,
// so the altitude bands always take precedence over the inclination bands.
type regimeRule struct {
	match  func(altKm, inclDeg float64) bool
	regime catalog.OrbitRegime
}

var regimeRules = []regimeRule{
	{func(alt, _ float64) bool { return alt < 2000 }, catalog.RegimeLEO},
	{func(alt, _ float64) bool { return alt < geoBeltKm }, catalog.RegimeMEO},
	{func(alt, _ float64) bool { return alt >= geoBeltKm && alt < 36000 }, catalog.RegimeGEO},
	{func(alt, _ float64) bool { return alt > 36000 }, catalog.RegimeHEO},
	{func(_, incl float64) bool { return math.Abs(incl-90) < 10 }, catalog.RegimePolar},
	{func(_, incl float64) bool { return math.Abs(incl-98) < 5 }, catalog.RegimeSunSynchronous},
}

// ClassifyRegime maps an altitude/inclination pair onto an orbit regime.
// It is a pure function of its inputs.
func ClassifyRegime(altKm, inclDeg float64) catalog.OrbitRegime {
	for _, rule := range regimeRules {
		if rule.match(altKm, inclDeg) {
			return rule.regime
		}
	}
	return catalog.RegimeUnknown
}

// missionRule pairs name substrings with the mission type they select.
// A name matching any keyword of an earlier rule never reaches later rules,
// so e.g. "STATION" outranks "WEATHER" when both appear in one name.
type missionRule struct {
	keywords []string
	mission  catalog.MissionType
}

var missionRules = []missionRule{
	{[]string{"iss", "station"}, catalog.MissionSpaceStation},
	{[]string{"gps", "glonass", "galileo", "beidou"}, catalog.MissionNavigation},
	{[]string{"weather", "meteor", "noaa"}, catalog.MissionWeather},
	{[]string{"military", "defense", "classified"}, catalog.MissionMilitary},
	{[]string{"starlink", "oneweb", "iridium"}, catalog.MissionCommunication},
	{[]string{"hubble", "james webb", "telescope"}, catalog.MissionScientific},
}

// ClassifyMission maps a free-text satellite name onto a mission type by
// case-insensitive substring matching in fixed priority order.
func ClassifyMission(name string) catalog.MissionType {
	lower := strings.ToLower(name)
	for _, rule := range missionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.mission
			}
		}
	}
	return catalog.MissionUnknown
}
