package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemiMajorAxis(t *testing.T) {
	// ISS-class orbit: ~15.49 rev/day puts the semi-major axis just under
	// 6800 km.
	assert.InDelta(t, 6797.5, SemiMajorAxis(15.49), 1.0)

	// A geosynchronous object completes one revolution per day.
	assert.InDelta(t, 42164, SemiMajorAxis(1.0027), 10)

	assert.Zero(t, SemiMajorAxis(0))
	assert.Zero(t, SemiMajorAxis(-3))
}

func TestPeriod(t *testing.T) {
	assert.InDelta(t, 92.963, Period(15.49), 0.01)
	assert.InDelta(t, 1440, Period(1), 1e-9)
	assert.Zero(t, Period(0))
	assert.Zero(t, Period(-1))
}

func TestAltitude(t *testing.T) {
	assert.InDelta(t, 426.5, Altitude(6797.5), 1e-9)

	// Malformed element sets can put the semi-major axis below the surface;
	// the negative altitude is passed through untouched.
	assert.InDelta(t, -371, Altitude(6000), 1e-9)
}
