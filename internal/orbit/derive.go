// Package orbit provides pure orbital derivations (Kepler's third law,
// orbital period, altitude) and the heuristic classifiers that map derived
// quantities and satellite names onto orbit-regime and mission-type tags.
package orbit

import "math"

const (
	// earthGM is Earth's standard gravitational parameter in km^3/s^2.
	earthGM = 3.986004418e5

	// earthRadiusKm is the mean Earth radius used for altitude derivation.
	earthRadiusKm = 6371.0

	secondsPerDay = 86400.0
	minutesPerDay = 24.0 * 60.0
)

// SemiMajorAxis derives the semi-major axis in kilometres from mean motion
// in revolutions per day via Kepler's third law. Returns 0 for non-positive
// mean motion.
func SemiMajorAxis(meanMotion float64) float64 {
	if meanMotion <= 0 {
		return 0
	}
	n := meanMotion * 2 * math.Pi / secondsPerDay // rad/s
	return math.Cbrt(earthGM / (n * n))
}

// Period derives the orbital period in minutes from mean motion in
// revolutions per day. Returns 0 for non-positive mean motion.
func Period(meanMotion float64) float64 {
	if meanMotion <= 0 {
		return 0
	}
	return minutesPerDay / meanMotion
}

// Altitude derives the orbital altitude above the mean Earth surface from a
// semi-major axis in kilometres. The result can be negative for malformed
// element sets; callers treat that as a data-quality signal rather than
// clamping it.
func Altitude(semiMajorAxisKm float64) float64 {
	return semiMajorAxisKm - earthRadiusKm
}
