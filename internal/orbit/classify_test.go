package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbview/sattrack/internal/catalog"
)

func TestClassifyRegime(t *testing.T) {
	cases := []struct {
		name    string
		altKm   float64
		inclDeg float64
		want    catalog.OrbitRegime
	}{
		{"iss orbit", 420, 51.6, catalog.RegimeLEO},
		{"polar altitude still leo", 400, 90, catalog.RegimeLEO},
		{"sun-sync altitude still leo", 800, 98, catalog.RegimeLEO},
		{"negative altitude", -100, 0, catalog.RegimeLEO},
		{"gps orbit", 20200, 55, catalog.RegimeMEO},
		{"geo belt floor", 35786, 0, catalog.RegimeGEO},
		{"geo band", 35900, 0, catalog.RegimeGEO},
		{"above geo band", 36001, 0, catalog.RegimeHEO},
		{"molniya apogee", 400000, 63.4, catalog.RegimeHEO},
		{"geo band ceiling is polar", 36000, 90, catalog.RegimePolar},
		{"geo band ceiling unclassified", 36000, 0, catalog.RegimeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyRegime(tc.altKm, tc.inclDeg))
		})
	}
}

func TestClassifyMission(t *testing.T) {
	cases := []struct {
		name string
		want catalog.MissionType
	}{
		{"ISS (ZARYA)", catalog.MissionSpaceStation},
		{"TIANGONG SPACE STATION", catalog.MissionSpaceStation},
		{"GPS BIIR-2", catalog.MissionNavigation},
		{"GALILEO 27", catalog.MissionNavigation},
		{"NOAA 19", catalog.MissionWeather},
		{"METEOR-M 2", catalog.MissionWeather},
		{"USA 326 (CLASSIFIED)", catalog.MissionMilitary},
		{"STARLINK-3042", catalog.MissionCommunication},
		{"IRIDIUM 153", catalog.MissionCommunication},
		{"HST (HUBBLE)", catalog.MissionScientific},
		{"JAMES WEBB SPACE TELESCOPE", catalog.MissionScientific},
		{"COSMOS 2551", catalog.MissionUnknown},
		{"", catalog.MissionUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyMission(tc.name))
		})
	}
}

func TestClassifyMissionPriority(t *testing.T) {
	// A name matching several rules resolves to the earliest one: the
	// station rule outranks weather and communication.
	assert.Equal(t, catalog.MissionSpaceStation, ClassifyMission("WEATHER STATION ALPHA"))
	assert.Equal(t, catalog.MissionNavigation, ClassifyMission("GPS WEATHER RELAY"))
}
