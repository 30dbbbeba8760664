package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Virtual/system ports that are never auto-connected.
var excludedPortPatterns = []string{"Midi Through", "Through Port", "Dummy"}

const rescanInterval = time.Second

// noteWatcher maintains a connection to one MIDI input and forwards note
// events. Tick scans for devices, auto-connects, and detects hot-unplug,
// so a keyboard can come and go while the process keeps running.
type noteWatcher struct {
	mu           sync.Mutex
	drv          *rtmididrv.Driver
	inPort       drivers.In
	stopFn       func()
	connected    bool
	selectedName string
	lastRescanAt time.Time

	filter string
	onNote func(on bool, note int)
}

func newWatcher(filter string, onNote func(on bool, note int)) (*noteWatcher, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &noteWatcher{drv: drv, filter: filter, onNote: onNote}, nil
}

// Close shuts down the active connection and the rtmidi driver.
func (w *noteWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeConn()
	w.drv.Close()
}

// Tick should be called on a regular interval from the main loop.
func (w *noteWatcher) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if !w.lastRescanAt.IsZero() && now.Sub(w.lastRescanAt) < rescanInterval {
		return
	}
	w.lastRescanAt = now

	inputs := w.listInputs()

	if w.connected {
		for _, n := range inputs {
			if n == w.selectedName {
				return
			}
		}
		logger.Warn("midi: device disappeared", "device", w.selectedName)
		w.closeConn()
		w.lastRescanAt = time.Time{} // rescan immediately next tick
		return
	}

	if len(inputs) == 0 {
		return
	}
	cand, ok := w.pick(inputs)
	if !ok {
		logger.Debug("midi: no matching input", "filter", w.filter, "available", strings.Join(inputs, ", "))
		return
	}
	if err := w.openByName(cand); err != nil {
		logger.Error("midi: connect failed", "device", cand, "err", err)
	}
}

func (w *noteWatcher) listInputs() []string {
	ins, err := w.drv.Ins()
	if err != nil {
		logger.Error("midi: list inputs failed", "err", err)
		return nil
	}
	var names []string
	for _, in := range ins {
		name := in.String()
		excluded := false
		for _, pat := range excludedPortPatterns {
			if containsCI(name, pat) {
				excluded = true
				break
			}
		}
		if excluded {
			logger.Debug("midi: input excluded", "device", name)
		} else {
			names = append(names, name)
		}
	}
	return names
}

// pick selects the first input matching the filter, or the first input
// when no filter is set.
func (w *noteWatcher) pick(inputs []string) (string, bool) {
	if w.filter != "" {
		for _, name := range inputs {
			if containsCI(name, w.filter) {
				return name, true
			}
		}
		return "", false
	}
	if len(inputs) > 0 {
		return inputs[0], true
	}
	return "", false
}

func (w *noteWatcher) closeConn() {
	if w.stopFn != nil {
		w.stopFn()
		w.stopFn = nil
	}
	if w.inPort != nil {
		_ = w.inPort.Close()
		w.inPort = nil
	}
	w.connected = false
	w.selectedName = ""
}

func (w *noteWatcher) openByName(name string) error {
	ins, err := w.drv.Ins()
	if err != nil {
		return err
	}
	var found drivers.In
	for _, in := range ins {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("input %q not found", name)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			w.onNote(true, int(key))
		} else if msg.GetNoteEnd(&ch, &key) {
			w.onNote(false, int(key))
		} else {
			logger.Debug("midi: unhandled message", "msg", msg.String())
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("midi: listener error", "device", name, "err", listenErr)
		// Must not call closeConn from within the listener goroutine.
		go func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if w.connected && w.selectedName == name {
				w.closeConn()
				w.lastRescanAt = time.Time{}
			}
		}()
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	w.inPort = found
	w.stopFn = stop
	w.connected = true
	w.selectedName = name
	logger.Info("midi: connected", "device", name)
	return nil
}

func listPorts() {
	drv, err := rtmididrv.New()
	if err != nil {
		logger.Error("rtmidi driver init failed", "err", err)
		os.Exit(1)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		logger.Error("failed to list MIDI inputs", "err", err)
		os.Exit(1)
	}
	if len(ins) == 0 {
		fmt.Println("No MIDI inputs available")
		return
	}
	for i, in := range ins {
		fmt.Printf("%2d: %s\n", i, in.String())
	}
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
