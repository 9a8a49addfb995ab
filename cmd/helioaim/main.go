package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/mthurlow/helioaim"
)

func main() {
	log.SetFlags(0)

	// If no args or first arg starts with "-", run pointing mode (the
	// default). Otherwise treat the first arg as a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPointing(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "disk":
		runDisk(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `helioaim – solar pointing planner

Usage:
  helioaim [flags]         # pointing position + roll (default mode)
  helioaim disk [flags]    # physical-sun ephemeris (P, B0, L0)

Default mode flags (pointing):
  -time string
        aim time, ISO-8601-like (e.g. 2016-07-26T19:53:15)
  -start string
  -end string
        dwell window; its midpoint is used when -time is not given
  -offset string
        offset from disk center as "x,y" (default "0,0")
  -unit string
        offset unit: arcsec, arcmin, deg, or rad (default "arcsec")
  -roll float
        field-of-view angle in degrees relative to solar north
  -json
        output result as JSON

For the disk subcommand:
  helioaim disk -h
`)
}

// ---------------------
// Pointing (default) mode
// ---------------------

func runPointing(args []string) {
	fs := flag.NewFlagSet("helioaim", flag.ExitOnError)

	timeS := fs.String("time", "", "aim time, ISO-8601-like (e.g. 2016-07-26T19:53:15)")
	startS := fs.String("start", "", "dwell start (used with -end when -time is not given)")
	endS := fs.String("end", "", "dwell end")
	offsetS := fs.String("offset", "0,0", `offset from disk center as "x,y"`)
	unitS := fs.String("unit", "arcsec", "offset unit: arcsec, arcmin, deg, or rad")
	rollDeg := fs.Float64("roll", 0, "field-of-view angle in degrees relative to solar north")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: helioaim [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	aim := resolveAimTime(*timeS, *startS, *endS)

	u, err := helioaim.ParseUnit(*unitS)
	if err != nil {
		log.Fatalf("invalid -unit: %v", err)
	}

	off, err := helioaim.ParseOffset(*offsetS, u)
	if err != nil {
		log.Fatalf("invalid -offset %q: %v", *offsetS, err)
	}

	pos, err := helioaim.SkyPositionAt(aim, off)
	if err != nil {
		log.Fatalf("error computing sky position: %v", err)
	}

	roll, err := helioaim.RollAt(aim, unit.AngleFromDeg(*rollDeg))
	if err != nil {
		log.Fatalf("error computing roll: %v", err)
	}

	if *jsonOut {
		printJSON(aim, off, pos, roll)
	} else {
		printHuman(aim, off, pos, roll)
	}
}

// resolveAimTime picks the aim time: -time wins, then the midpoint of
// -start/-end, then the current instant.
func resolveAimTime(timeS, startS, endS string) time.Time {
	if timeS != "" {
		t, err := helioaim.ParseTimestamp(timeS)
		if err != nil {
			log.Fatalf("invalid -time %q: %v", timeS, err)
		}
		return t
	}

	if startS != "" || endS != "" {
		if startS == "" || endS == "" {
			log.Fatalf("-start and -end must be given together")
		}
		start, err := helioaim.ParseTimestamp(startS)
		if err != nil {
			log.Fatalf("invalid -start %q: %v", startS, err)
		}
		end, err := helioaim.ParseTimestamp(endS)
		if err != nil {
			log.Fatalf("invalid -end %q: %v", endS, err)
		}
		return helioaim.DwellMidpoint(start, end)
	}

	log.Println("warning: no -time or -start/-end given, using the current time")
	return time.Now().UTC()
}

// ---------------------
// Disk subcommand
// ---------------------

func runDisk(args []string) {
	fs := flag.NewFlagSet("disk", flag.ExitOnError)

	timeS := fs.String("time", "", "time, ISO-8601-like (optional, defaults to now)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: helioaim disk [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	t := time.Now().UTC()
	if *timeS != "" {
		var err error
		t, err = helioaim.ParseTimestamp(*timeS)
		if err != nil {
			log.Fatalf("invalid -time %q: %v", *timeS, err)
		}
	}

	p, b0, l0, err := helioaim.DiskOrientation(t)
	if err != nil {
		log.Fatalf("error computing disk orientation: %v", err)
	}

	fmt.Printf("Physical sun at %s\n", t.Format(time.RFC3339))
	fmt.Printf("  P  : %8.4f° (position angle of rotation axis)\n", p.Deg())
	fmt.Printf("  B0 : %8.4f° (heliographic latitude of disk center)\n", b0.Deg())
	fmt.Printf("  L0 : %8.4f° (heliographic longitude of disk center)\n", l0.Deg())
}

// ---------------------
// Shared helpers
// ---------------------

func printHuman(aim time.Time, off helioaim.Offset, pos helioaim.SkyPosition, roll unit.Angle) {
	fmt.Printf("Pointing for offset (%g, %g) %s from disk center\n", off.X, off.Y, off.Unit)
	fmt.Printf("Aim time: %s\n\n", aim.Format(time.RFC3339))

	fmt.Printf("RA  : %9.4f°  (%.1s)\n", pos.RA.Deg(), sexa.FmtRA(pos.RA))
	fmt.Printf("Dec : %9.4f°  (%.0s)\n", pos.Dec.Deg(), sexa.FmtAngle(pos.Dec))
	fmt.Printf("Roll: %9.4f°\n", roll.Deg())
}

type jsonOutput struct {
	AimTime    time.Time `json:"aim_time"`
	OffsetX    float64   `json:"offset_x"`
	OffsetY    float64   `json:"offset_y"`
	OffsetUnit string    `json:"offset_unit"`
	RADeg      float64   `json:"ra_deg"`
	DecDeg     float64   `json:"dec_deg"`
	RollDeg    float64   `json:"roll_deg"`
}

func printJSON(aim time.Time, off helioaim.Offset, pos helioaim.SkyPosition, roll unit.Angle) {
	out := jsonOutput{
		AimTime:    aim,
		OffsetX:    off.X,
		OffsetY:    off.Y,
		OffsetUnit: off.Unit.String(),
		RADeg:      pos.RA.Deg(),
		DecDeg:     pos.Dec.Deg(),
		RollDeg:    roll.Deg(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
