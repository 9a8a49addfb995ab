// Package ephem computes the Sun's apparent equatorial position in the
// J2000 frame from the Meeus low-accuracy solar theory.
package ephem

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Equatorial is a right ascension / declination pair, J2000.
type Equatorial struct {
	RA  unit.RA
	Dec unit.Angle
}

// Years outside this window are rejected: the polynomial series lose
// accuracy far from J2000 and the original use case (pointing a live
// instrument) never leaves it.
const (
	minYear = 1000
	maxYear = 3000
)

// ErrOutOfRange is returned for times outside the supported year range.
var ErrOutOfRange = errors.New("time outside supported ephemeris range")

// SolarJ2000 returns the Sun's apparent RA/Dec at time t, referenced to
// the J2000 frame.
//
// The Meeus solar theory yields coordinates referenced to the equinox of
// date, so the result is precessed back to J2000 explicitly. Convenience
// routines that skip this step drift away from catalog coordinates by
// roughly 0.8 arcminutes per year past 2000.
func SolarJ2000(t time.Time) (Equatorial, error) {
	u := t.UTC()
	if y := u.Year(); y < minYear || y > maxYear {
		return Equatorial{}, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, y, minYear, maxYear)
	}

	jde := julian.TimeToJD(u)
	ra, dec := solar.ApparentEquatorial(jde)

	ofDate := &coord.Equatorial{RA: ra, Dec: dec}
	var j2000 coord.Equatorial
	precess.Position(ofDate, &j2000, base.JDEToJulianYear(jde), 2000, 0, 0)

	return Equatorial{RA: j2000.RA, Dec: j2000.Dec}, nil
}
