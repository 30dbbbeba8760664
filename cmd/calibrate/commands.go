package main

import (
	"fmt"
	"strconv"
	"strings"

	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/mapping"
)

func (cs *calibrateShell) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := parts[0]
	args := parts[1:]
	cur := cs.manager.Current()

	switch cmd {
	case "exit", "quit", "q":
		fmt.Println("Exiting calibration shell...")
		return false

	case "help", "h":
		cs.showHelp()

	case "status", "s":
		cs.showStatus()

	case "show":
		cs.showMapping()

	case "assign", "a":
		cs.showAssignments()

	case "window":
		if len(args) < 2 {
			fmt.Printf("Current window: LEDs %d-%d (%d LEDs)\n",
				cur.StartLED, cur.EndLED, cur.EndLED-cur.StartLED+1)
		} else {
			start, err1 := strconv.Atoi(args[0])
			end, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				fmt.Printf("Invalid window bounds: %s %s\n", args[0], args[1])
			} else if err := cs.manager.SetWindow(start, end); err != nil {
				fmt.Printf("Rejected: %v\n", err)
			} else {
				fmt.Printf("Window: LEDs %d-%d (%d LEDs)\n", start, end, end-start+1)
			}
		}

	case "density":
		if len(args) == 0 {
			fmt.Printf("Current density: %d LEDs/m (pitch %.3f mm)\n",
				cur.LEDsPerMeter, 1000.0/float64(cur.LEDsPerMeter))
		} else if n, err := strconv.Atoi(args[0]); err != nil {
			fmt.Printf("Invalid density: %s\n", args[0])
		} else if err := cs.manager.SetStrip(n, cur.LEDWidthMM); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Density: %d LEDs/m (pitch %.3f mm)\n", n, 1000.0/float64(n))
		}

	case "width":
		if len(args) == 0 {
			fmt.Printf("Current LED width: %.1f mm\n", cur.LEDWidthMM)
		} else if mm, err := strconv.ParseFloat(args[0], 64); err != nil {
			fmt.Printf("Invalid width: %s\n", args[0])
		} else if err := cs.manager.SetStrip(cur.LEDsPerMeter, mm); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("LED width: %.1f mm\n", mm)
		}

	case "gap":
		if len(args) == 0 {
			fmt.Printf("Current key gap: %.1f mm\n", cur.KeyGapMM)
		} else if mm, err := strconv.ParseFloat(args[0], 64); err != nil {
			fmt.Printf("Invalid gap: %s\n", args[0])
		} else if err := cs.manager.SetKeyGap(mm); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Key gap: %.1f mm\n", mm)
		}

	case "keys":
		if len(args) == 0 {
			fmt.Printf("Current keyboard: %d keys (registered: %s)\n", cur.KeyCount, sizeList())
		} else if n, err := strconv.Atoi(args[0]); err != nil {
			fmt.Printf("Invalid key count: %s\n", args[0])
		} else if err := cs.manager.SetKeyboardSize(n); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Keyboard: %d keys\n", n)
		}

	case "stripoffset":
		if len(args) == 0 {
			fmt.Printf("Current strip offset: %.1f mm (0 = half the LED width)\n", cur.StripOffsetMM)
		} else if mm, err := strconv.ParseFloat(args[0], 64); err != nil {
			fmt.Printf("Invalid offset: %s\n", args[0])
		} else if err := cs.manager.SetStripOffset(mm); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Strip offset: %.1f mm\n", mm)
		}

	case "mode", "m":
		cs.handleMode(cur.Strategy(), args)

	case "shared":
		cs.handleShared(cur.Strategy(), args)

	case "global", "g":
		if len(args) == 0 {
			fmt.Printf("Current global offset: %+d\n", cur.GlobalOffset)
		} else if n, err := strconv.Atoi(args[0]); err != nil {
			fmt.Printf("Invalid offset: %s\n", args[0])
		} else if err := cs.manager.SetGlobalOffset(n); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Global offset: %+d\n", n)
		}

	case "keyoff":
		if len(args) < 2 {
			fmt.Printf("Usage: keyoff <key> <n> (0 removes the entry)\n")
		} else {
			key, err1 := strconv.Atoi(args[0])
			n, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				fmt.Printf("Invalid key offset: %s %s\n", args[0], args[1])
			} else if err := cs.manager.SetKeyOffset(key, n); err != nil {
				fmt.Printf("Rejected: %v\n", err)
			} else if n == 0 {
				fmt.Printf("Key %d offset removed\n", key)
			} else {
				fmt.Printf("Key %d offset: %+d\n", key, n)
			}
		}

	case "weld", "w":
		cs.handleWeld(args)

	case "unweld":
		if len(args) == 0 {
			fmt.Printf("Usage: unweld <led>\n")
		} else if idx, err := strconv.Atoi(args[0]); err != nil {
			fmt.Printf("Invalid LED index: %s\n", args[0])
		} else if err := cs.manager.ClearWeld(idx); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Weld at LED %d removed\n", idx)
		}

	case "override", "o":
		cs.handleOverride(args)

	case "clearoverride":
		if len(args) == 0 {
			fmt.Printf("Usage: clearoverride <key>\n")
		} else if key, err := strconv.Atoi(args[0]); err != nil {
			fmt.Printf("Invalid key index: %s\n", args[0])
		} else if err := cs.manager.ClearOverride(key); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Key %d override removed\n", key)
		}

	case "reset":
		if err := cs.manager.Reset(); err != nil {
			fmt.Printf("Rejected: %v\n", err)
		} else {
			fmt.Printf("Calibration reset to defaults\n\n")
			cs.showStatus()
		}

	default:
		fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return true
}

func (cs *calibrateShell) handleMode(s allocate.Strategy, args []string) {
	if len(args) == 0 {
		fmt.Printf("Current mode: %s\n", describeStrategy(cs.manager.Current()))
		return
	}

	switch args[0] {
	case "proportional", "prop":
		s.Mode = allocate.Proportional
	case "fixed":
		s.Mode = allocate.FixedCount
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Printf("Invalid LED count: %s\n", args[1])
				return
			}
			s.FixedCount = n
		}
	case "physics", "phys":
		s.Mode = allocate.PhysicsBased
		if len(args) > 1 {
			limit, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				fmt.Printf("Invalid overhang limit: %s\n", args[1])
				return
			}
			s.OverhangLimitMM = limit
		}
	default:
		fmt.Printf("Unknown mode %q (want proportional, fixed or physics)\n", args[0])
		return
	}

	if err := cs.manager.SetStrategy(s); err != nil {
		fmt.Printf("Rejected: %v\n", err)
		return
	}
	fmt.Printf("Mode: %s\n", describeStrategy(cs.manager.Current()))
}

func (cs *calibrateShell) handleShared(s allocate.Strategy, args []string) {
	if len(args) == 0 {
		if s.SharedBoundaries {
			fmt.Printf("Shared boundaries: on\n")
		} else {
			fmt.Printf("Shared boundaries: off\n")
		}
		return
	}

	switch args[0] {
	case "on":
		s.SharedBoundaries = true
	case "off":
		s.SharedBoundaries = false
	default:
		fmt.Printf("Invalid value %q (want on or off)\n", args[0])
		return
	}

	if err := cs.manager.SetStrategy(s); err != nil {
		fmt.Printf("Rejected: %v\n", err)
		return
	}
	fmt.Printf("Shared boundaries: %s\n", args[0])
}

func (cs *calibrateShell) handleWeld(args []string) {
	if len(args) == 0 {
		cur := cs.manager.Current()
		if len(cur.WeldOffsets) == 0 {
			fmt.Printf("No welds recorded\n")
			return
		}
		for _, idx := range cur.WeldIndices() {
			fmt.Printf("  weld at LED %d: %+.1f mm\n", idx, cur.WeldOffsets[idx])
		}
		return
	}
	if len(args) < 2 {
		fmt.Printf("Usage: weld <led> <mm>\n")
		return
	}

	idx, err1 := strconv.Atoi(args[0])
	mm, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		fmt.Printf("Invalid weld: %s %s\n", args[0], args[1])
		return
	}
	if err := cs.manager.SetWeld(idx, mm); err != nil {
		fmt.Printf("Rejected: %v\n", err)
		return
	}
	fmt.Printf("Weld at LED %d: %+.1f mm\n", idx, mm)
}

func (cs *calibrateShell) handleOverride(args []string) {
	if len(args) == 0 {
		cur := cs.manager.Current()
		if len(cur.Overrides) == 0 {
			fmt.Printf("No overrides set\n")
			return
		}
		for _, key := range cur.OverriddenKeys() {
			fmt.Printf("  key %d override: %s\n", key, mapping.FormatRuns(cur.Overrides[key]))
		}
		return
	}

	key, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Invalid key index: %s\n", args[0])
		return
	}

	if len(args) == 1 {
		cur := cs.manager.Current()
		if leds, ok := cur.Overrides[key]; ok {
			fmt.Printf("Key %d override: %s\n", key, mapping.FormatRuns(leds))
		} else {
			fmt.Printf("Key %d has no override\n", key)
		}
		return
	}

	leds := make([]int, 0, len(args)-1)
	for _, a := range args[1:] {
		id, err := strconv.Atoi(a)
		if err != nil {
			fmt.Printf("Invalid LED index: %s\n", a)
			return
		}
		leds = append(leds, id)
	}
	if err := cs.manager.SetOverride(key, leds); err != nil {
		fmt.Printf("Rejected: %v\n", err)
		return
	}
	fmt.Printf("Key %d pinned to LEDs %s\n", key, mapping.FormatRuns(cs.manager.Current().Overrides[key]))
}
