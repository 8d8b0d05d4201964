package catalog

// AltitudeRange is the inclusive min/max altitude across a record set.
type AltitudeRange struct {
	MinKm float64 `json:"min_km"`
	MaxKm float64 `json:"max_km"`
}

// Stats aggregates a record collection. An empty collection produces
// all-zero statistics; it is never an error.
type Stats struct {
	Total           int                 `json:"total"`
	Active          int                 `json:"active"`
	Inactive        int                 `json:"inactive"`
	ByMissionType   map[MissionType]int `json:"by_mission_type"`
	ByOrbitRegime   map[OrbitRegime]int `json:"by_orbit_regime"`
	ByCountry       map[string]int      `json:"by_country"`
	AverageAltitude float64             `json:"average_altitude_km"`
	AltitudeRange   AltitudeRange       `json:"altitude_range"`
}

// ComputeStats derives aggregate statistics from a record collection.
func ComputeStats(records []SatelliteRecord) Stats {
	s := Stats{
		ByMissionType: make(map[MissionType]int),
		ByOrbitRegime: make(map[OrbitRegime]int),
		ByCountry:     make(map[string]int),
	}
	if len(records) == 0 {
		return s
	}

	var sum float64
	s.AltitudeRange.MinKm = records[0].AltitudeKm
	s.AltitudeRange.MaxKm = records[0].AltitudeKm

	for i := range records {
		r := &records[i]
		s.Total++
		if r.Active {
			s.Active++
		} else {
			s.Inactive++
		}
		s.ByMissionType[r.MissionType]++
		s.ByOrbitRegime[r.OrbitRegime]++
		s.ByCountry[r.Metadata.Country]++

		sum += r.AltitudeKm
		if r.AltitudeKm < s.AltitudeRange.MinKm {
			s.AltitudeRange.MinKm = r.AltitudeKm
		}
		if r.AltitudeKm > s.AltitudeRange.MaxKm {
			s.AltitudeRange.MaxKm = r.AltitudeKm
		}
	}

	s.AverageAltitude = sum / float64(s.Total)
	return s
}
