// Command noteled resolves played MIDI notes to their calibrated LED
// ranges, either live from a connected keyboard or offline with -note.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"piano-ledmap/internal/config"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/mapping"
	"piano-ledmap/internal/version"
)

// logger is the package-wide structured logger. Safe to use before
// initLogger is called; defaults to slog.Default().
var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func main() {
	dbPath := flag.String("db", defaultDBPath(), "Path to the calibration database")
	note := flag.String("note", "", "Resolve one note offline (a name like C4 or a MIDI number)")
	port := flag.String("port", "", "Substring of the MIDI input port to connect to")
	list := flag.Bool("list", false, "List MIDI input ports and exit")
	offs := flag.Bool("offs", false, "Also print note-off events")
	debug := flag.Bool("debug", false, "Enable debug logging (adds source location)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	initLogger(*debug)

	if *list {
		listPorts()
		return
	}

	store, err := config.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("failed to open calibration database", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	manager, err := config.NewManager(store)
	if err != nil {
		logger.Error("failed to load calibration", "path", *dbPath, "err", err)
		os.Exit(1)
	}

	cal := manager.Current()
	res, err := mapping.Compute(cal)
	if err != nil {
		logger.Error("mapping failed", "err", err)
		os.Exit(1)
	}
	spec, _ := keyboard.GetSpec(cal.KeyCount)

	logger.Info("mapping loaded",
		"keyboard", spec.Name(),
		"window_start", cal.StartLED,
		"window_end", cal.EndLED,
		"mode", cal.Mode,
		"grade", res.Quality.OverallGrade,
		"generation", res.Generation,
	)

	if *note != "" {
		if !resolveOffline(spec, res, *note) {
			os.Exit(1)
		}
		return
	}

	watcher, err := newWatcher(*port, func(on bool, n int) {
		if on || *offs {
			printNote(spec, res, n, on)
		}
	})
	if err != nil {
		logger.Error("midi watcher init failed", "err", err)
		os.Exit(1)
	}
	defer watcher.Close()

	logger.Info("running, waiting for MIDI device")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		watcher.Tick()
	}
}

func resolveOffline(spec keyboard.Spec, res *mapping.Result, arg string) bool {
	n, err := keyboard.ParseNote(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}
	key, ok := spec.KeyForNote(n)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s is outside the %s range (%s to %s)\n",
			keyboard.NoteName(n), spec.Name(),
			keyboard.NoteName(spec.FirstMIDINote), keyboard.NoteName(spec.LastMIDINote()))
		return false
	}
	leds := res.LEDsForKey(key)
	if len(leds) == 0 {
		fmt.Printf("%s key %d -> unmapped\n", keyboard.NoteName(n), key)
		return true
	}
	fmt.Printf("%s key %d -> LEDs %s (%d LEDs, quality %s)\n",
		keyboard.NoteName(n), key, mapping.FormatRuns(leds), len(leds), res.Assignments[key].Quality)
	return true
}

func printNote(spec keyboard.Spec, res *mapping.Result, note int, on bool) {
	key, ok := spec.KeyForNote(note)
	if !ok {
		logger.Debug("note outside keyboard range", "note", note, "name", keyboard.NoteName(note))
		return
	}
	state := "on "
	if !on {
		state = "off"
	}
	leds := res.LEDsForKey(key)
	if len(leds) == 0 {
		fmt.Printf("%-4s %s key %2d -> unmapped\n", keyboard.NoteName(note), state, key)
		return
	}
	fmt.Printf("%-4s %s key %2d -> LEDs %s (%d)\n",
		keyboard.NoteName(note), state, key, mapping.FormatRuns(leds), len(leds))
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "piano-ledmap.db"
	}
	return filepath.Join(homeDir, ".piano-ledmap.db")
}
