package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/mapping"
	"piano-ledmap/pkg/colorutil"
)

var (
	unmappedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

// scoreStyle colors output by mapping quality, red through green.
func scoreStyle(score float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorutil.ScoreHex(score)))
}

func (cs *calibrateShell) showMapping() {
	cur := cs.manager.Current()
	res, err := cs.cache.Get(cur)
	if err != nil {
		fmt.Printf("Mapping failed: %v\n", err)
		return
	}

	fmt.Printf("--- Mapping (generation %d) ---\n", res.Generation)
	if res.Pitch.WasAdjusted {
		fmt.Printf("Pitch: %.3f mm, calibrated from %.3f mm nominal\n",
			res.Pitch.CalibratedPitchMM, res.Pitch.TheoreticalPitchMM)
	} else {
		fmt.Printf("Pitch: %.3f mm\n", res.Pitch.CalibratedPitchMM)
	}
	fmt.Printf("Quality: symmetry %.2f, consistency %.2f, grade %s\n",
		res.Quality.AvgSymmetry, res.Quality.AvgConsistency, res.Quality.OverallGrade)
	fmt.Printf("LEDs used: %d\n", res.Quality.TotalLEDsUsed)

	counts := make([]int, 0, len(res.Quality.KeysByLEDCount))
	for c := range res.Quality.KeysByLEDCount {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	for _, c := range counts {
		fmt.Printf("  %d LEDs/key: %d keys\n", c, res.Quality.KeysByLEDCount[c])
	}

	fmt.Printf("\n%s\n\n", qualityStrip(cur.KeyCount, res))

	for _, w := range res.Quality.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

// qualityStrip renders one block per key, colored by that key's combined
// score, with the first and last note names as labels. Unmapped keys show
// as dim dots.
func qualityStrip(keyCount int, res *mapping.Result) string {
	var b strings.Builder
	spec, registered := keyboard.GetSpec(keyCount)
	if registered {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-3s ", keyboard.NoteName(spec.FirstMIDINote))))
	}
	for _, a := range res.Assignments {
		if len(a.LEDIndices) == 0 {
			b.WriteString(unmappedStyle.Render("·"))
			continue
		}
		score := (a.SymmetryScore + a.ConsistencyScore) / 2
		b.WriteString(scoreStyle(score).Render("█"))
	}
	if registered {
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %s", keyboard.NoteName(spec.LastMIDINote()))))
	}
	return b.String()
}

func (cs *calibrateShell) showAssignments() {
	cur := cs.manager.Current()
	res, err := cs.cache.Get(cur)
	if err != nil {
		fmt.Printf("Mapping failed: %v\n", err)
		return
	}
	spec, _ := keyboard.GetSpec(cur.KeyCount)

	fmt.Printf("--- Assignments (generation %d) ---\n", res.Generation)
	for key, a := range res.Assignments {
		score := (a.SymmetryScore + a.ConsistencyScore) / 2
		label := scoreStyle(score).Render(a.Quality.String())
		if len(a.LEDIndices) == 0 {
			label = unmappedStyle.Render("unmapped")
		}
		fmt.Printf("  key %2d %-3s leds=%-12s sym=%.2f cons=%.2f %s\n",
			key, keyboard.NoteName(spec.NoteForKey(key)), mapping.FormatRuns(a.LEDIndices),
			a.SymmetryScore, a.ConsistencyScore, label)
	}
	fmt.Printf("\n")
}
