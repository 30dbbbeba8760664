package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"piano-ledmap/internal/allocate"
)

// EventType identifies calibration change events.
type EventType int

const (
	// EventCalibrationChanged fires for every successful mutation, after
	// the specific event for that mutation.
	EventCalibrationChanged EventType = iota
	EventWindowChanged
	EventStripChanged
	EventKeyboardChanged
	EventModeChanged
	EventOffsetsChanged
	EventWeldsChanged
	EventOverridesChanged
)

func (e EventType) String() string {
	switch e {
	case EventCalibrationChanged:
		return "CalibrationChanged"
	case EventWindowChanged:
		return "WindowChanged"
	case EventStripChanged:
		return "StripChanged"
	case EventKeyboardChanged:
		return "KeyboardChanged"
	case EventModeChanged:
		return "ModeChanged"
	case EventOffsetsChanged:
		return "OffsetsChanged"
	case EventWeldsChanged:
		return "WeldsChanged"
	case EventOverridesChanged:
		return "OverridesChanged"
	default:
		return "Unknown"
	}
}

// Event is delivered to listeners after a mutation has been persisted
// and swapped in. Generation identifies the snapshot it refers to.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	Generation uint64    `json:"generation"`
}

// EventListener is called when a calibration event occurs.
type EventListener func(Event)

// Manager owns the live calibration snapshot. Every mutation validates,
// persists, and swaps a fresh snapshot under a single writer lock, so a
// reader never observes a half-updated state and a store failure leaves
// the previous snapshot in place.
type Manager struct {
	mu        sync.RWMutex
	store     Store
	cur       Calibration
	listeners map[EventType][]EventListener
}

// NewManager loads the persisted calibration, or writes defaults when no
// record exists yet.
func NewManager(store Store) (*Manager, error) {
	cal, found, err := LoadCalibration(store)
	if err != nil {
		return nil, err
	}
	if !found {
		cal = DefaultCalibration()
		if err := SaveCalibration(store, cal); err != nil {
			return nil, err
		}
	}
	return &Manager{
		store:     store,
		cur:       cal,
		listeners: make(map[EventType][]EventListener),
	}, nil
}

// On registers an event listener for the specified event type.
func (m *Manager) On(event EventType, listener EventListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[event] = append(m.listeners[event], listener)
}

func (m *Manager) emit(event EventType, generation uint64) {
	m.mu.RLock()
	specific := m.listeners[event]
	generic := m.listeners[EventCalibrationChanged]
	m.mu.RUnlock()

	ev := Event{ID: uuid.New(), Type: event, Generation: generation}
	for _, listener := range specific {
		listener(ev)
	}
	if event != EventCalibrationChanged {
		for _, listener := range generic {
			listener(ev)
		}
	}
}

// Current returns a deep copy of the live snapshot.
func (m *Manager) Current() Calibration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Clone()
}

// Generation returns the live snapshot's mutation counter.
func (m *Manager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Generation
}

// mutate clones the live snapshot, applies fn, validates the result as a
// whole, persists it, and swaps it in. Any failure leaves the live
// snapshot untouched.
func (m *Manager) mutate(event EventType, fn func(*Calibration) error) error {
	m.mu.Lock()
	next := m.cur.Clone()
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	next.Generation = m.cur.Generation + 1
	if err := SaveCalibration(m.store, next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("persist calibration: %w", err)
	}
	m.cur = next
	generation := next.Generation
	m.mu.Unlock()

	m.emit(event, generation)
	return nil
}

// SetWindow moves the active LED window.
func (m *Manager) SetWindow(startLED, endLED int) error {
	return m.mutate(EventWindowChanged, func(c *Calibration) error {
		c.StartLED = startLED
		c.EndLED = endLED
		return nil
	})
}

// SetStrip changes the strip density and LED physical width.
func (m *Manager) SetStrip(ledsPerMeter int, ledWidthMM float64) error {
	return m.mutate(EventStripChanged, func(c *Calibration) error {
		c.LEDsPerMeter = ledsPerMeter
		c.LEDWidthMM = ledWidthMM
		return nil
	})
}

// SetStripOffset positions the first LED's center; 0 restores the
// half-width default.
func (m *Manager) SetStripOffset(offsetMM float64) error {
	return m.mutate(EventStripChanged, func(c *Calibration) error {
		c.StripOffsetMM = offsetMM
		return nil
	})
}

// SetKeyboardSize switches to another registered keyboard size. Key
// offsets or overrides pointing past the new size reject the change.
func (m *Manager) SetKeyboardSize(keyCount int) error {
	return m.mutate(EventKeyboardChanged, func(c *Calibration) error {
		c.KeyCount = keyCount
		return nil
	})
}

// SetKeyGap changes the physical gap between neighboring keys.
func (m *Manager) SetKeyGap(gapMM float64) error {
	return m.mutate(EventKeyboardChanged, func(c *Calibration) error {
		c.KeyGapMM = gapMM
		return nil
	})
}

// SetStrategy switches the distribution mode and its parameters.
func (m *Manager) SetStrategy(s allocate.Strategy) error {
	return m.mutate(EventModeChanged, func(c *Calibration) error {
		c.Mode = s.Mode
		c.FixedCount = s.FixedCount
		c.OverhangLimitMM = s.OverhangLimitMM
		c.SharedBoundaries = s.SharedBoundaries
		return nil
	})
}

// SetGlobalOffset shifts every mapped LED index by n.
func (m *Manager) SetGlobalOffset(n int) error {
	return m.mutate(EventOffsetsChanged, func(c *Calibration) error {
		c.GlobalOffset = n
		return nil
	})
}

// SetKeyOffset shifts one key's LED indices. A zero offset removes the
// entry.
func (m *Manager) SetKeyOffset(key, offset int) error {
	return m.mutate(EventOffsetsChanged, func(c *Calibration) error {
		if err := ValidateKeyOffset(c.KeyCount, key, offset); err != nil {
			return err
		}
		if offset == 0 {
			delete(c.KeyOffsets, key)
			return nil
		}
		if c.KeyOffsets == nil {
			c.KeyOffsets = make(map[int]int)
		}
		c.KeyOffsets[key] = offset
		return nil
	})
}

// SetWeld records a physical discontinuity at an absolute LED index.
func (m *Manager) SetWeld(index int, offsetMM float64) error {
	return m.mutate(EventWeldsChanged, func(c *Calibration) error {
		if err := ValidateWeld(index, offsetMM); err != nil {
			return err
		}
		if c.WeldOffsets == nil {
			c.WeldOffsets = make(map[int]float64)
		}
		c.WeldOffsets[index] = offsetMM
		return nil
	})
}

// ClearWeld removes the weld at an absolute LED index.
func (m *Manager) ClearWeld(index int) error {
	return m.mutate(EventWeldsChanged, func(c *Calibration) error {
		delete(c.WeldOffsets, index)
		return nil
	})
}

// SetOverride replaces one key's LED list with a manual selection. The
// list is stored sorted.
func (m *Manager) SetOverride(key int, leds []int) error {
	return m.mutate(EventOverridesChanged, func(c *Calibration) error {
		if err := ValidateOverride(c.KeyCount, key, leds); err != nil {
			return err
		}
		sorted := append([]int(nil), leds...)
		sort.Ints(sorted)
		if c.Overrides == nil {
			c.Overrides = make(map[int][]int)
		}
		c.Overrides[key] = sorted
		return nil
	})
}

// ClearOverride removes the manual selection for one key.
func (m *Manager) ClearOverride(key int) error {
	return m.mutate(EventOverridesChanged, func(c *Calibration) error {
		delete(c.Overrides, key)
		return nil
	})
}

// Reset restores the default calibration.
func (m *Manager) Reset() error {
	return m.mutate(EventCalibrationChanged, func(c *Calibration) error {
		*c = DefaultCalibration()
		return nil
	})
}
