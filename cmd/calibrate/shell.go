package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/config"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/mapping"
)

type calibrateShell struct {
	manager *config.Manager
	cache   *mapping.Cache
	store   config.Store
}

func newShell(manager *config.Manager, cache *mapping.Cache, store config.Store) *calibrateShell {
	return &calibrateShell{manager: manager, cache: cache, store: store}
}

func (cs *calibrateShell) run() {
	defer cs.store.Close()

	fmt.Printf("=== Calibration Shell ===\n")
	fmt.Printf("Changes are validated, persisted and applied atomically.\n")
	fmt.Printf("Type 'help' for the command list, 'show' for the current mapping.\n\n")

	cs.showStatus()

	// Set up history file
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("Warning: Could not get home directory: %v\n", err)
		homeDir = "."
	}
	historyFile := filepath.Join(homeDir, ".ledmap_history")

	rlConfig := &readline.Config{
		Prompt:       "calibrate> ",
		HistoryFile:  historyFile,
		AutoComplete: cs.completer(),
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println("\nExiting calibration shell...")
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !cs.handleCommand(input) {
			break
		}
	}
}

func (cs *calibrateShell) completer() readline.AutoCompleter {
	sizes := []readline.PrefixCompleterInterface{}
	for _, n := range keyboard.ListSizes() {
		sizes = append(sizes, readline.PcItem(strconv.Itoa(n)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("status"),
		readline.PcItem("show"),
		readline.PcItem("assign"),
		readline.PcItem("window"),
		readline.PcItem("density"),
		readline.PcItem("width"),
		readline.PcItem("gap"),
		readline.PcItem("keys", sizes...),
		readline.PcItem("stripoffset"),
		readline.PcItem("mode",
			readline.PcItem("proportional"),
			readline.PcItem("fixed"),
			readline.PcItem("physics"),
		),
		readline.PcItem("shared",
			readline.PcItem("on"),
			readline.PcItem("off"),
		),
		readline.PcItem("global"),
		readline.PcItem("keyoff"),
		readline.PcItem("weld"),
		readline.PcItem("unweld"),
		readline.PcItem("override"),
		readline.PcItem("clearoverride"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func (cs *calibrateShell) showStatus() {
	cur := cs.manager.Current()

	fmt.Printf("--- Current Calibration ---\n")
	if spec, ok := keyboard.GetSpec(cur.KeyCount); ok {
		fmt.Printf("Keyboard: %s (%s to %s), %.1f mm key gap\n", spec.Name(),
			keyboard.NoteName(spec.FirstMIDINote), keyboard.NoteName(spec.LastMIDINote()), cur.KeyGapMM)
	} else {
		fmt.Printf("Keyboard: %d keys (unregistered size), %.1f mm key gap\n", cur.KeyCount, cur.KeyGapMM)
	}
	fmt.Printf("Strip: %d LEDs/m, %.1f mm packages, window %d-%d (%d LEDs)\n",
		cur.LEDsPerMeter, cur.LEDWidthMM, cur.StartLED, cur.EndLED, cur.EndLED-cur.StartLED+1)
	if cur.StripOffsetMM != 0 {
		fmt.Printf("Strip offset: %.1f mm\n", cur.StripOffsetMM)
	}
	fmt.Printf("Mode: %s\n", describeStrategy(cur))
	fmt.Printf("Offsets: global %+d, %d per-key, %d welds, %d overrides\n",
		cur.GlobalOffset, len(cur.KeyOffsets), len(cur.WeldOffsets), len(cur.Overrides))

	if len(cur.KeyOffsets) > 0 {
		keys := make([]int, 0, len(cur.KeyOffsets))
		for k := range cur.KeyOffsets {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			fmt.Printf("  key %d offset: %+d\n", k, cur.KeyOffsets[k])
		}
	}
	for _, idx := range cur.WeldIndices() {
		fmt.Printf("  weld at LED %d: %+.1f mm\n", idx, cur.WeldOffsets[idx])
	}
	for _, key := range cur.OverriddenKeys() {
		fmt.Printf("  key %d override: %s\n", key, mapping.FormatRuns(cur.Overrides[key]))
	}

	fmt.Printf("Generation: %d\n", cur.Generation)
	fmt.Printf("\n")
}

func describeStrategy(cal config.Calibration) string {
	switch cal.Mode {
	case allocate.FixedCount:
		return fmt.Sprintf("%s (%d LEDs/key)", cal.Mode, cal.FixedCount)
	case allocate.PhysicsBased:
		return fmt.Sprintf("%s (overhang limit %.1f mm)", cal.Mode, cal.OverhangLimitMM)
	default:
		if cal.SharedBoundaries {
			return fmt.Sprintf("%s (shared boundaries)", cal.Mode)
		}
		return cal.Mode.String()
	}
}

func (cs *calibrateShell) showHelp() {
	fmt.Printf("--- Calibration Shell Commands ---\n")
	fmt.Printf("Views:\n")
	fmt.Printf("  status               Show the current calibration\n")
	fmt.Printf("  show                 Compute the mapping and show the quality strip\n")
	fmt.Printf("  assign               Print the full per-key assignment table\n")
	fmt.Printf("Keyboard and strip:\n")
	fmt.Printf("  keys <n>             Switch keyboard size (%s)\n", sizeList())
	fmt.Printf("  gap <mm>             Set the gap between white keys\n")
	fmt.Printf("  window <start> <end> Set the active LED window (inclusive)\n")
	fmt.Printf("  density <n>          Set strip density in LEDs per meter\n")
	fmt.Printf("  width <mm>           Set the LED package width\n")
	fmt.Printf("  stripoffset <mm>     Position of the first LED center (0 = half width)\n")
	fmt.Printf("Distribution:\n")
	fmt.Printf("  mode proportional    Spread window LEDs evenly across keys\n")
	fmt.Printf("  mode fixed [n]       Exactly n LEDs per key, centered\n")
	fmt.Printf("  mode physics [mm]    Assign by physical overlap within a limit\n")
	fmt.Printf("  shared <on|off>      Share boundary LEDs between neighbors\n")
	fmt.Printf("Corrections:\n")
	fmt.Printf("  global <n>           Shift every mapped LED index by n\n")
	fmt.Printf("  keyoff <key> <n>     Shift one key's LEDs by n (0 removes)\n")
	fmt.Printf("  weld <led> <mm>      Record a solder joint gap at an LED index\n")
	fmt.Printf("  unweld <led>         Remove a weld\n")
	fmt.Printf("  override <key> [leds...] Pin a key to exact LEDs; no list shows current\n")
	fmt.Printf("  clearoverride <key>  Remove a key's override\n")
	fmt.Printf("Utility:\n")
	fmt.Printf("  reset                Restore the default calibration\n")
	fmt.Printf("  help                 Show this help\n")
	fmt.Printf("  exit                 Exit the shell\n")
	fmt.Printf("\n")
}

func sizeList() string {
	sizes := keyboard.ListSizes()
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
