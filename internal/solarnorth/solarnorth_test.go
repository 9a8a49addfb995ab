package solarnorth

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestPositionAngle(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
		tol  float64
	}{
		{
			// Reference value from a NuSTAR pointing computed with an
			// independent ephemeris (roll 98.8659 deg at FOV angle 90).
			name: "2016 late July",
			at:   time.Date(2016, time.July, 26, 19, 53, 15, 0, time.UTC),
			want: 8.8659,
			tol:  0.05,
		},
		{
			// P peaks near +26.4 degrees in the second week of October.
			name: "October maximum",
			at:   time.Date(2016, time.October, 10, 12, 0, 0, 0, time.UTC),
			want: 26.3,
			tol:  0.4,
		},
		{
			// ...and bottoms out near -26.3 in the first week of April.
			name: "April minimum",
			at:   time.Date(2016, time.April, 6, 12, 0, 0, 0, time.UTC),
			want: -26.3,
			tol:  0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PositionAngle(tt.at)
			if err != nil {
				t.Fatalf("PositionAngle() error = %v", err)
			}
			if math.Abs(p.Deg()-tt.want) > tt.tol {
				t.Errorf("P = %.4f deg, want %.4f ± %.2f", p.Deg(), tt.want, tt.tol)
			}
			t.Logf("%s: P = %.4f deg", tt.name, p.Deg())
		})
	}
}

func TestPhysicalBounds(t *testing.T) {
	// Sample the year weekly: P must stay within the known annual
	// envelope, B0 within the equator inclination, L0 on [0, 360).
	for day := 0; day < 366; day += 7 {
		at := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)

		p, b0, l0, err := Physical(at)
		if err != nil {
			t.Fatalf("Physical(%v) error = %v", at, err)
		}

		if math.Abs(p.Deg()) > 26.5 {
			t.Errorf("%v: |P| = %.4f deg, want <= 26.5", at, math.Abs(p.Deg()))
		}
		if math.Abs(b0.Deg()) > inclinationDeg+0.01 {
			t.Errorf("%v: |B0| = %.4f deg, want <= %.2f", at, math.Abs(b0.Deg()), inclinationDeg)
		}
		if l0.Deg() < 0 || l0.Deg() >= 360 {
			t.Errorf("%v: L0 = %.4f deg, want in [0, 360)", at, l0.Deg())
		}
	}
}

func TestHeliographicLatitudeSeason(t *testing.T) {
	// B0 crosses zero in early June and peaks near +7.25 in early
	// September, when the solar north pole tips toward Earth.
	_, b0June, _, err := Physical(time.Date(2016, time.June, 6, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Physical(June) error = %v", err)
	}
	if math.Abs(b0June.Deg()) > 0.4 {
		t.Errorf("B0 in early June = %.4f deg, want ~0", b0June.Deg())
	}

	_, b0Sep, _, err := Physical(time.Date(2016, time.September, 8, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Physical(September) error = %v", err)
	}
	if b0Sep.Deg() < 7.0 {
		t.Errorf("B0 in early September = %.4f deg, want > 7.0", b0Sep.Deg())
	}
}

func TestPositionAngleMatchesPhysical(t *testing.T) {
	at := time.Date(2021, time.February, 14, 8, 30, 0, 0, time.UTC)

	p1, err := PositionAngle(at)
	if err != nil {
		t.Fatalf("PositionAngle() error = %v", err)
	}
	p2, _, _, err := Physical(at)
	if err != nil {
		t.Fatalf("Physical() error = %v", err)
	}
	if p1 != p2 {
		t.Errorf("PositionAngle = %v, Physical P = %v", p1, p2)
	}
}

func TestPhysicalOutOfRange(t *testing.T) {
	at := time.Date(5000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if _, _, _, err := Physical(at); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Physical(%v) error = %v, want ErrOutOfRange", at, err)
	}
}
