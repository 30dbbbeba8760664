// Package keyboard provides keyboard size definitions and per-key physical geometry.
package keyboard

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// KeyType distinguishes white and black keys.
type KeyType int

const (
	KeyWhite KeyType = iota
	KeyBlack
)

func (k KeyType) String() string {
	switch k {
	case KeyWhite:
		return "White"
	case KeyBlack:
		return "Black"
	default:
		return "Unknown"
	}
}

// Spec defines a keyboard size variant.
type Spec struct {
	SpecName      string `json:"name"`
	KeyCount      int    `json:"key_count"`
	FirstMIDINote int    `json:"first_midi_note"`
}

// Name returns the human-readable variant name.
func (s Spec) Name() string {
	return s.SpecName
}

// LastMIDINote returns the MIDI note number of the highest key.
func (s Spec) LastMIDINote() int {
	return s.FirstMIDINote + s.KeyCount - 1
}

// NoteForKey returns the MIDI note number for a key index.
// The index must be in [0, KeyCount).
func (s Spec) NoteForKey(key int) int {
	return s.FirstMIDINote + key
}

// KeyForNote returns the key index for a MIDI note number,
// or false if the note is outside the keyboard's range.
func (s Spec) KeyForNote(note int) (int, bool) {
	if note < s.FirstMIDINote || note > s.LastMIDINote() {
		return 0, false
	}
	return note - s.FirstMIDINote, true
}

// WhiteKeyCount returns the number of white keys on the keyboard.
func (s Spec) WhiteKeyCount() int {
	count := 0
	for n := s.FirstMIDINote; n <= s.LastMIDINote(); n++ {
		if !IsBlackNote(n) {
			count++
		}
	}
	return count
}

// BlackKeyCount returns the number of black keys on the keyboard.
func (s Spec) BlackKeyCount() int {
	return s.KeyCount - s.WhiteKeyCount()
}

// TotalWidthMM returns the physical width of the keyboard from the left
// edge of the first white key to the right edge of the last.
func (s Spec) TotalWidthMM(keyGapMM float64) float64 {
	n := s.WhiteKeyCount()
	if n == 0 {
		return 0
	}
	return float64(n)*WhiteKeyWidthMM + float64(n-1)*keyGapMM
}

// Validate checks the spec for internal consistency.
func (s Spec) Validate() error {
	if s.SpecName == "" {
		return fmt.Errorf("keyboard spec name is required")
	}
	if s.KeyCount <= 0 {
		return fmt.Errorf("key count must be positive")
	}
	if s.FirstMIDINote < 0 || s.LastMIDINote() > 127 {
		return fmt.Errorf("MIDI range %d-%d outside 0-127", s.FirstMIDINote, s.LastMIDINote())
	}
	if IsBlackNote(s.FirstMIDINote) {
		return fmt.Errorf("keyboard must start on a white key, got %s", NoteName(s.FirstMIDINote))
	}
	if IsBlackNote(s.LastMIDINote()) {
		return fmt.Errorf("keyboard must end on a white key, got %s", NoteName(s.LastMIDINote()))
	}
	return nil
}

// SaveToFile saves the spec to a JSON file.
func (s Spec) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a spec from a JSON file.
func LoadFromFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return Spec{}, err
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, fmt.Errorf("invalid keyboard spec: %w", err)
	}

	return spec, nil
}

// Registry of known keyboard sizes, keyed by key count
var registry = make(map[int]Spec)

// Register adds a keyboard spec to the registry.
func Register(spec Spec) {
	registry[spec.KeyCount] = spec
}

// GetSpec returns a keyboard spec by key count.
func GetSpec(keyCount int) (Spec, bool) {
	spec, ok := registry[keyCount]
	return spec, ok
}

// ListSizes returns all registered key counts in ascending order.
func ListSizes() []int {
	sizes := make([]int, 0, len(registry))
	for n := range registry {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	return sizes
}

func init() {
	// Register built-in keyboard sizes
	Register(Size88Spec())
	Register(Size76Spec())
	Register(Size61Spec())
	Register(Size49Spec())
	Register(Size37Spec())
	Register(Size25Spec())
}
