// Command mapcheck computes a key-to-LED mapping offline and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/config"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/mapping"
	"piano-ledmap/internal/version"
)

func main() {
	keys := flag.Int("keys", 88, "Keyboard size in keys (25, 37, 49, 61, 76, 88)")
	start := flag.Int("start", 0, "First LED of the calibration window")
	end := flag.Int("end", 183, "Last LED of the calibration window (inclusive)")
	density := flag.Int("density", 144, "Strip density in LEDs per meter")
	width := flag.Float64("width", 5.0, "LED package width in mm")
	gap := flag.Float64("gap", 1.0, "Gap between white keys in mm")
	mode := flag.String("mode", "proportional", "Distribution mode: proportional, fixed or physics")
	n := flag.Int("n", 2, "LEDs per key (fixed mode)")
	overhang := flag.Float64("overhang", 2.0, "Overhang limit in mm (physics mode)")
	shared := flag.Bool("shared", false, "Share boundary LEDs between neighboring keys")
	offset := flag.Int("offset", 0, "Global LED index offset")
	showGeom := flag.Bool("geom", false, "Print per-key geometry")
	showAssign := flag.Bool("assign", false, "Print the full per-key assignment table")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cal := config.DefaultCalibration()
	cal.KeyCount = *keys
	cal.StartLED = *start
	cal.EndLED = *end
	cal.LEDsPerMeter = *density
	cal.LEDWidthMM = *width
	cal.KeyGapMM = *gap
	cal.FixedCount = *n
	cal.OverhangLimitMM = *overhang
	cal.SharedBoundaries = *shared
	cal.GlobalOffset = *offset

	switch *mode {
	case "proportional":
		cal.Mode = allocate.Proportional
	case "fixed":
		cal.Mode = allocate.FixedCount
	case "physics":
		cal.Mode = allocate.PhysicsBased
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want proportional, fixed or physics)\n", *mode)
		os.Exit(1)
	}

	spec, ok := keyboard.GetSpec(cal.KeyCount)
	if !ok {
		fmt.Fprintf(os.Stderr, "No registered keyboard with %d keys (registered: %v)\n",
			cal.KeyCount, keyboard.ListSizes())
		os.Exit(1)
	}

	fmt.Printf("=== Keyboard ===\n")
	fmt.Printf("Variant: %s (%s to %s)\n", spec.Name(),
		keyboard.NoteName(spec.FirstMIDINote), keyboard.NoteName(spec.LastMIDINote()))
	fmt.Printf("Keys: %d (%d white, %d black)\n",
		spec.KeyCount, spec.WhiteKeyCount(), spec.BlackKeyCount())
	fmt.Printf("Width: %.1f mm at %.1f mm key gap\n",
		spec.TotalWidthMM(cal.KeyGapMM), cal.KeyGapMM)

	if *showGeom {
		printGeometry(spec, cal.KeyGapMM)
	}

	res, err := mapping.Compute(cal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mapping failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n=== Pitch calibration ===\n")
	fmt.Printf("Theoretical: %.3f mm (%d LEDs/m)\n", res.Pitch.TheoreticalPitchMM, cal.LEDsPerMeter)
	fmt.Printf("Calibrated:  %.3f mm\n", res.Pitch.CalibratedPitchMM)
	if res.Pitch.WasAdjusted {
		fmt.Printf("Adjusted: yes, %s\n", res.Pitch.Reason)
	} else {
		fmt.Printf("Adjusted: no\n")
	}

	mapped := 0
	for _, a := range res.Assignments {
		if len(a.LEDIndices) > 0 {
			mapped++
		}
	}

	fmt.Printf("\n=== Mapping ===\n")
	fmt.Printf("Mode: %s\n", cal.Mode)
	fmt.Printf("Window: LEDs %d-%d (%d LEDs)\n", cal.StartLED, cal.EndLED, cal.EndLED-cal.StartLED+1)
	fmt.Printf("Mapped keys: %d/%d\n", mapped, cal.KeyCount)
	fmt.Printf("LEDs used: %d\n", res.Quality.TotalLEDsUsed)
	printDistribution(res.Quality.KeysByLEDCount)

	if *showAssign {
		printAssignments(spec, res)
	}

	fmt.Printf("\n=== Quality ===\n")
	fmt.Printf("Avg symmetry:    %.3f\n", res.Quality.AvgSymmetry)
	fmt.Printf("Avg consistency: %.3f\n", res.Quality.AvgConsistency)
	fmt.Printf("Overall grade: %s\n", res.Quality.OverallGrade)
	for _, w := range res.Quality.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

func printGeometry(spec keyboard.Spec, keyGapMM float64) {
	fmt.Printf("\n=== Geometry ===\n")
	for _, k := range keyboard.BuildGeometry(spec, keyGapMM) {
		fmt.Printf("  key %2d %-3s %-5s base=%7.2f-%7.2f exposed=%7.2f-%7.2f\n",
			k.Index, k.Name, k.Type, k.Base.Start, k.Base.End, k.Exposed.Start, k.Exposed.End)
	}
}

func printDistribution(byCount map[int]int) {
	counts := make([]int, 0, len(byCount))
	for c := range byCount {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	for _, c := range counts {
		fmt.Printf("  %d LEDs/key: %d keys\n", c, byCount[c])
	}
}

func printAssignments(spec keyboard.Spec, res *mapping.Result) {
	fmt.Printf("\n=== Assignments ===\n")
	for key, a := range res.Assignments {
		note := keyboard.NoteName(spec.NoteForKey(key))
		fmt.Printf("  key %2d %-3s leds=%-12s sym=%.2f cons=%.2f %s\n",
			key, note, mapping.FormatRuns(a.LEDIndices), a.SymmetryScore, a.ConsistencyScore, a.Quality)
	}
}
