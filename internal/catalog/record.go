// Package catalog defines the satellite record model shared by the parser,
// the classifiers, and the ingestion service: orbital elements, descriptive
// metadata, filters, and aggregate statistics.
package catalog

import "time"

// MissionType is a coarse mission classification derived from the
// satellite's published name.
type MissionType string

const (
	MissionSpaceStation  MissionType = "space-station"
	MissionNavigation    MissionType = "navigation"
	MissionWeather       MissionType = "weather"
	MissionMilitary      MissionType = "military"
	MissionCommunication MissionType = "communication"
	MissionScientific    MissionType = "scientific"
	MissionUnknown       MissionType = "unknown"
)

// OrbitRegime is a coarse orbit classification derived from altitude and
// inclination.
type OrbitRegime string

const (
	RegimeLEO            OrbitRegime = "low-earth-orbit"
	RegimeMEO            OrbitRegime = "medium-earth-orbit"
	RegimeGEO            OrbitRegime = "geostationary"
	RegimeHEO            OrbitRegime = "high-earth-orbit"
	RegimePolar          OrbitRegime = "polar"
	RegimeSunSynchronous OrbitRegime = "sun-synchronous"
	RegimeUnknown        OrbitRegime = "unknown"
)

// Provider identifies which upstream source a record was ingested from.
type Provider string

const (
	ProviderCelestrak  Provider = "celestrak"
	ProviderSpacetrack Provider = "spacetrack"
)

// OrbitalElements holds the Keplerian elements extracted from a TLE plus the
// quantities derived from them. Period is (24*60)/meanMotion minutes when
// mean motion is positive, otherwise 0; the semi-major axis is likewise 0
// for non-positive mean motion.
type OrbitalElements struct {
	SemiMajorAxisKm     float64   `json:"semi_major_axis_km"`
	Eccentricity        float64   `json:"eccentricity"`
	InclinationDeg      float64   `json:"inclination_deg"`
	RAANDeg             float64   `json:"raan_deg"`
	ArgPerigeeDeg       float64   `json:"arg_perigee_deg"`
	MeanAnomalyDeg      float64   `json:"mean_anomaly_deg"`
	Epoch               time.Time `json:"epoch"`
	MeanMotionRevPerDay float64   `json:"mean_motion_rev_per_day"`
	PeriodMinutes       float64   `json:"period_minutes"`
}

// Metadata carries descriptive fields that are not part of the element set.
// Fields default to "Unknown" when the upstream source does not supply them.
type Metadata struct {
	IntlDesignator string `json:"intl_designator"`
	Country        string `json:"country"`
	Operator       string `json:"operator"`
	Mission        string `json:"mission"`
}

// SatelliteRecord is one fully ingested satellite, keyed by its NORAD
// catalog ID across the whole pipeline. Records are rebuilt from scratch on
// every successful upstream fetch; there is no incremental merge.
type SatelliteRecord struct {
	CatalogID   string          `json:"catalog_id"`
	Name        string          `json:"name"`
	MissionType MissionType     `json:"mission_type"`
	OrbitRegime OrbitRegime     `json:"orbit_regime"`
	Elements    OrbitalElements `json:"elements"`
	Metadata    Metadata        `json:"metadata"`
	AltitudeKm  float64         `json:"altitude_km"`
	Active      bool            `json:"active"`
	LastUpdated time.Time       `json:"last_updated"`
	Origin      Provider        `json:"origin"`
}
