package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// Filter selects a subset of satellite records. Every supplied criterion
// must hold for a record to pass (logical AND); omitted criteria impose no
// constraint. A nil filter passes everything.
type Filter struct {
	MissionTypes      []MissionType `json:"mission_types,omitempty"`
	Regimes           []OrbitRegime `json:"regimes,omitempty"`
	Countries         []string      `json:"countries,omitempty"`
	Operators         []string      `json:"operators,omitempty"`
	Active            *bool         `json:"active,omitempty"`
	MinAltitudeKm     *float64      `json:"min_altitude_km,omitempty"`
	MaxAltitudeKm     *float64      `json:"max_altitude_km,omitempty"`
	MinInclinationDeg *float64      `json:"min_inclination_deg,omitempty"`
	MaxInclinationDeg *float64      `json:"max_inclination_deg,omitempty"`
}

// IsZero reports whether the filter imposes no constraints.
func (f *Filter) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.MissionTypes) == 0 && len(f.Regimes) == 0 &&
		len(f.Countries) == 0 && len(f.Operators) == 0 &&
		f.Active == nil &&
		f.MinAltitudeKm == nil && f.MaxAltitudeKm == nil &&
		f.MinInclinationDeg == nil && f.MaxInclinationDeg == nil
}

// Matches reports whether r satisfies every criterion in the filter.
// Altitude and inclination bounds are inclusive.
func (f *Filter) Matches(r *SatelliteRecord) bool {
	if f == nil {
		return true
	}
	if len(f.MissionTypes) > 0 && !slices.Contains(f.MissionTypes, r.MissionType) {
		return false
	}
	if len(f.Regimes) > 0 && !slices.Contains(f.Regimes, r.OrbitRegime) {
		return false
	}
	if len(f.Countries) > 0 && !slices.Contains(f.Countries, r.Metadata.Country) {
		return false
	}
	if len(f.Operators) > 0 && !slices.Contains(f.Operators, r.Metadata.Operator) {
		return false
	}
	if f.Active != nil && r.Active != *f.Active {
		return false
	}
	if f.MinAltitudeKm != nil && r.AltitudeKm < *f.MinAltitudeKm {
		return false
	}
	if f.MaxAltitudeKm != nil && r.AltitudeKm > *f.MaxAltitudeKm {
		return false
	}
	if f.MinInclinationDeg != nil && r.Elements.InclinationDeg < *f.MinInclinationDeg {
		return false
	}
	if f.MaxInclinationDeg != nil && r.Elements.InclinationDeg > *f.MaxInclinationDeg {
		return false
	}
	return true
}

// Apply returns the records from the input that satisfy f, in order.
func Apply(records []SatelliteRecord, f *Filter) []SatelliteRecord {
	if f.IsZero() {
		return records
	}
	out := make([]SatelliteRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Fingerprint returns a stable digest of the filter's canonical form,
// suitable for use in cache keys. Equal filters always produce equal
// fingerprints regardless of the order their slice criteria were supplied
// in. The unconstrained filter fingerprints as "all".
func (f *Filter) Fingerprint() string {
	if f.IsZero() {
		return "all"
	}

	canon := Filter{
		MissionTypes:      slices.Clone(f.MissionTypes),
		Regimes:           slices.Clone(f.Regimes),
		Countries:         slices.Clone(f.Countries),
		Operators:         slices.Clone(f.Operators),
		Active:            f.Active,
		MinAltitudeKm:     f.MinAltitudeKm,
		MaxAltitudeKm:     f.MaxAltitudeKm,
		MinInclinationDeg: f.MinInclinationDeg,
		MaxInclinationDeg: f.MaxInclinationDeg,
	}
	slices.Sort(canon.MissionTypes)
	slices.Sort(canon.Regimes)
	slices.Sort(canon.Countries)
	slices.Sort(canon.Operators)

	b, err := json.Marshal(canon)
	if err != nil {
		// Filter contains only marshalable field types; unreachable.
		return "all"
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
