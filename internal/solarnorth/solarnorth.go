// Package solarnorth computes the orientation of the Sun's rotation axis
// on the sky: the position angle P of the north pole, and the heliographic
// latitude B0 and longitude L0 of the apparent disk center.
//
// The model follows Meeus, "Ephemeris for Physical Observations of the
// Sun", using Carrington's elements for the solar equator.
package solarnorth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Carrington's elements for the solar equator.
const (
	// inclinationDeg is the inclination of the solar equator to the ecliptic.
	inclinationDeg = 7.25

	// nodeEpochJD is the JD the ascending node longitude is referenced to
	// (1850.0), nodeDeg its value there, nodeRateDeg its motion per Julian
	// century.
	nodeEpochJD = 2396758.0
	nodeDeg     = 73.6667
	nodeRateDeg = 1.3958333

	// rotationEpochJD and rotationPeriodDays define the sidereal rotation
	// used for the prime-meridian angle (Carrington rotation, 25.38 days).
	rotationEpochJD    = 2398220.0
	rotationPeriodDays = 25.38
)

// Same supported window as internal/ephem.
const (
	minYear = 1000
	maxYear = 3000
)

// ErrOutOfRange is returned for times outside the supported year range.
var ErrOutOfRange = errors.New("time outside supported ephemeris range")

// PositionAngle returns P, the position angle of the Sun's rotational
// north pole, measured from celestial north toward the east. Negative
// values mean the pole leans west of celestial north. P stays within
// about ±26.4 degrees over the year.
func PositionAngle(t time.Time) (unit.Angle, error) {
	p, _, _, err := Physical(t)
	return p, err
}

// Physical returns the full physical-sun orientation at time t:
// P as for PositionAngle, B0 the heliographic latitude of the disk
// center (within ±7.25 degrees), and L0 the heliographic longitude of
// the disk center in [0, 360) degrees.
func Physical(t time.Time) (p, b0, l0 unit.Angle, err error) {
	u := t.UTC()
	if y := u.Year(); y < minYear || y > maxYear {
		err = fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, y, minYear, maxYear)
		return
	}

	jde := julian.TimeToJD(u)
	T := base.J2000Century(jde)

	// Apparent solar longitude and true obliquity.
	lam := solar.ApparentLongitude(T)
	_, deps := nutation.Nutation(jde)
	eps := nutation.MeanObliquity(jde) + deps

	// Prime-meridian angle and ascending node of the solar equator.
	theta := unit.AngleFromDeg((jde - rotationEpochJD) * 360 / rotationPeriodDays)
	k := unit.AngleFromDeg(nodeDeg + nodeRateDeg*(jde-nodeEpochJD)/36525)

	incl := unit.AngleFromDeg(inclinationDeg)
	sinI, cosI := incl.Sincos()

	// P is the sum of the tilt contributions of the ecliptic and of the
	// solar equator, each projected onto the plane of the sky.
	x := math.Atan(-lam.Cos() * eps.Tan())
	y := math.Atan(-(lam - k).Cos() * incl.Tan())
	p = unit.Angle(x + y)

	b0 = unit.Angle(math.Asin((lam - k).Sin() * sinI))

	eta := unit.Angle(math.Atan2((lam-k).Sin()*cosI, (lam-k).Cos()))
	l0 = (eta - theta).Mod1()

	return p, b0, l0, nil
}
