// Package helioaim computes celestial pointing positions and instrument
// roll angles for a solar-pointed X-ray telescope.
//
// Given an aim time and a 2-D offset from the center of the solar disk,
// SkyPosition returns the corresponding (RA, Dec) in the J2000 frame.
// Given an aim time and a desired field-of-view angle relative to solar
// north, Roll returns the absolute sky position angle to roll to.
//
// Currently implemented:
//   - Sky position via SkyPositionAt and (*Planner).SkyPosition
//   - Roll via RollAt and (*Planner).Roll
//
// The solar ephemeris and the solar north-pole position angle are supplied
// by pluggable providers; NewPlanner wires Meeus-based defaults. Both
// calculators are stateless and safe for concurrent use as long as the
// providers are.
package helioaim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/unit"

	"github.com/mthurlow/helioaim/internal/ephem"
	"github.com/mthurlow/helioaim/internal/solarnorth"
	"github.com/mthurlow/helioaim/internal/timeutil"
)

// Unit identifies the angular unit an Offset is expressed in.
// The zero value means "no unit" and is rejected, so offsets can never
// be silently interpreted as bare numbers.
type Unit int

const (
	UnitNone Unit = iota
	Arcsec
	Arcmin
	Degree
	Radian
)

// String returns the conventional short name of the unit.
func (u Unit) String() string {
	switch u {
	case Arcsec:
		return "arcsec"
	case Arcmin:
		return "arcmin"
	case Degree:
		return "deg"
	case Radian:
		return "rad"
	default:
		return "none"
	}
}

// ParseUnit parses a unit name as accepted on the command line.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arcsec", "arcsecond", "arcseconds":
		return Arcsec, nil
	case "arcmin", "arcminute", "arcminutes":
		return Arcmin, nil
	case "deg", "degree", "degrees":
		return Degree, nil
	case "rad", "radian", "radians":
		return Radian, nil
	default:
		return UnitNone, fmt.Errorf("unknown angular unit %q", s)
	}
}

// Offset is a displacement from the center of the solar disk.
// +X is solar west, +Y is solar north. The unit is explicit: an Offset
// with Unit == UnitNone is invalid.
type Offset struct {
	X, Y float64
	Unit Unit
}

// OffsetArcsec builds an Offset in arcseconds, the unit pointing offsets
// are usually quoted in.
func OffsetArcsec(x, y float64) Offset {
	return Offset{X: x, Y: y, Unit: Arcsec}
}

// components converts the offset to unit-tagged angles.
func (o Offset) components() (x, y unit.Angle, err error) {
	switch o.Unit {
	case Arcsec:
		return unit.AngleFromSec(o.X), unit.AngleFromSec(o.Y), nil
	case Arcmin:
		return unit.AngleFromMin(o.X), unit.AngleFromMin(o.Y), nil
	case Degree:
		return unit.AngleFromDeg(o.X), unit.AngleFromDeg(o.Y), nil
	case Radian:
		return unit.Angle(o.X), unit.Angle(o.Y), nil
	default:
		return 0, 0, ErrMissingUnit
	}
}

// SkyPosition is an equatorial position in the J2000 frame.
// Degrees are available via the Deg methods of the fields.
type SkyPosition struct {
	RA  unit.RA
	Dec unit.Angle
}

var (
	// ErrInvalidTimestamp is returned when a timestamp string cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrMissingUnit is returned when an Offset carries no angular unit.
	ErrMissingUnit = errors.New("offset has no angular unit")

	// ErrInvalidOffset is returned when an offset string is not a 2-vector.
	ErrInvalidOffset = errors.New("offset is not a two-component vector")

	// ErrEphemerisUnavailable wraps any failure of the ephemeris or
	// solar-north providers, e.g. a time outside their supported range.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrNearPole is returned when the Sun's declination is so close to a
	// celestial pole that the 1/cos(Dec) RA scaling diverges. This cannot
	// happen with a real solar ephemeris (|Dec| <= 23.44 degrees); it guards
	// against custom providers feeding the calculator polar positions.
	ErrNearPole = errors.New("declination too close to celestial pole")
)

// minCosDec is the floor on cos(Dec) below which the RA offset scaling is
// rejected rather than allowed to blow up (about 0.006 degrees from a pole).
const minCosDec = 1e-4

// EphemerisProvider supplies the Sun's apparent equatorial position,
// referenced to J2000. Implementations must be safe for concurrent use.
type EphemerisProvider interface {
	SolarEquatorial(t time.Time) (SkyPosition, error)
}

// SolarNorthProvider supplies the position angle of the Sun's rotational
// north pole, measured from celestial north toward the east.
type SolarNorthProvider interface {
	NorthPoleAngle(t time.Time) (unit.Angle, error)
}

// Planner computes pointings from a pair of providers. The zero value is
// not usable; use NewPlanner or fill in both fields.
type Planner struct {
	Ephemeris  EphemerisProvider
	SolarNorth SolarNorthProvider
}

// NewPlanner returns a Planner backed by the built-in Meeus-based solar
// ephemeris and physical-sun models.
func NewPlanner() *Planner {
	return &Planner{
		Ephemeris:  meeusEphemeris{},
		SolarNorth: meeusSolarNorth{},
	}
}

// SkyPosition converts an offset from solar disk center at time t into an
// equatorial J2000 position.
//
// The offset axes are referenced to solar north, so the vector is rotated
// counter-clockwise by the north-pole position angle into celestial-north
// axes. The RA component is then scaled by 1/cos(Dec) — an angular offset
// covers more RA near the poles — and negated, because +X is solar west
// while increasing RA is celestial east.
func (p *Planner) SkyPosition(t time.Time, off Offset) (SkyPosition, error) {
	x, y, err := off.components()
	if err != nil {
		return SkyPosition{}, err
	}

	sun, err := p.Ephemeris.SolarEquatorial(t)
	if err != nil {
		return SkyPosition{}, wrapEphem(err)
	}

	pa, err := p.SolarNorth.NorthPoleAngle(t)
	if err != nil {
		return SkyPosition{}, wrapEphem(err)
	}

	// Counter-clockwise rotation from solar-north axes to celestial axes.
	// The inverse sense of the position angle itself, which is measured
	// from celestial north toward solar north.
	s, c := pa.Sincos()
	xr := x.Rad()*c - y.Rad()*s
	yr := x.Rad()*s + y.Rad()*c

	cosDec := sun.Dec.Cos()
	if math.Abs(cosDec) < minCosDec {
		return SkyPosition{}, fmt.Errorf("%w: Dec = %.4f deg", ErrNearPole, sun.Dec.Deg())
	}

	return SkyPosition{
		RA:  unit.RAFromRad(sun.RA.Rad() - xr/cosDec),
		Dec: sun.Dec + unit.Angle(yr),
	}, nil
}

// Roll returns the absolute sky position angle the instrument must roll to
// so that its field of view sits at fov relative to solar north at time t.
// The result is wrapped to [0, 360) degrees.
func (p *Planner) Roll(t time.Time, fov unit.Angle) (unit.Angle, error) {
	pa, err := p.SolarNorth.NorthPoleAngle(t)
	if err != nil {
		return 0, wrapEphem(err)
	}
	return (pa + fov).Mod1(), nil
}

// DiskOrientation returns the physical orientation of the solar disk at
// time t: the north-pole position angle P, and the heliographic latitude
// B0 and longitude L0 of the apparent disk center.
func DiskOrientation(t time.Time) (p, b0, l0 unit.Angle, err error) {
	p, b0, l0, err = solarnorth.Physical(t)
	if err != nil {
		err = wrapEphem(err)
	}
	return
}

// SkyPositionAt is a convenience wrapper using the default providers.
func SkyPositionAt(t time.Time, off Offset) (SkyPosition, error) {
	return NewPlanner().SkyPosition(t, off)
}

// RollAt is a convenience wrapper using the default providers.
func RollAt(t time.Time, fov unit.Angle) (unit.Angle, error) {
	return NewPlanner().Roll(t, fov)
}

// ParseTimestamp parses an ISO-8601-like timestamp string. Strings without
// an explicit zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := timeutil.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return t, nil
}

// DwellMidpoint returns the midpoint of a dwell window, the instant a
// pointing for the whole window is computed at.
func DwellMidpoint(start, end time.Time) time.Time {
	return timeutil.Midpoint(start, end)
}

// ParseOffset parses an offset string of the form "x,y" (e.g. "1000,150")
// and tags it with the given unit.
func ParseOffset(s string, u Unit) (Offset, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Offset{}, fmt.Errorf("%w: %q has %d components", ErrInvalidOffset, s, len(parts))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %v", ErrInvalidOffset, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %v", ErrInvalidOffset, err)
	}
	return Offset{X: x, Y: y, Unit: u}, nil
}

// wrapEphem tags a provider failure with ErrEphemerisUnavailable unless it
// already carries it.
func wrapEphem(err error) error {
	if errors.Is(err, ErrEphemerisUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrEphemerisUnavailable, err)
}

// -----------------------------
// Default providers around internal/ephem and internal/solarnorth
// -----------------------------

type meeusEphemeris struct{}

func (meeusEphemeris) SolarEquatorial(t time.Time) (SkyPosition, error) {
	eq, err := ephem.SolarJ2000(t)
	if err != nil {
		return SkyPosition{}, err
	}
	return SkyPosition{RA: eq.RA, Dec: eq.Dec}, nil
}

type meeusSolarNorth struct{}

func (meeusSolarNorth) NorthPoleAngle(t time.Time) (unit.Angle, error) {
	return solarnorth.PositionAngle(t)
}
