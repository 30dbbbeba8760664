// Command calibrate is an interactive shell for tuning the key-to-LED
// mapping: window bounds, strip parameters, distribution mode, offsets,
// welds and per-key overrides, persisted between sessions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"piano-ledmap/internal/config"
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
	debug := flag.Bool("debug", false, "Enable debug logging (adds source location)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	initLogger(*debug)

	store, err := config.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("failed to open calibration database", "path", *dbPath, "err", err)
		os.Exit(1)
	}

	manager, err := config.NewManager(store)
	if err != nil {
		store.Close()
		logger.Error("failed to load calibration", "path", *dbPath, "err", err)
		os.Exit(1)
	}

	cache, err := mapping.NewCache(16)
	if err != nil {
		store.Close()
		logger.Error("failed to create result cache", "err", err)
		os.Exit(1)
	}

	// Audit trail for every committed mutation; hidden unless -debug.
	manager.On(config.EventCalibrationChanged, func(ev config.Event) {
		logger.Debug("calibration changed", "event", ev.Type, "generation", ev.Generation, "id", ev.ID)
	})

	logger.Debug("calibrate starting", "db", *dbPath, "generation", manager.Generation())

	newShell(manager, cache, store).run()
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "piano-ledmap.db"
	}
	return filepath.Join(homeDir, ".piano-ledmap.db")
}
