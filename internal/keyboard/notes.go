package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name for a MIDI note number,
// e.g. 21 -> "A0", 60 -> "C4".
func NoteName(note int) string {
	if note < 0 {
		return fmt.Sprintf("?\"%d\"", note)
	}
	return fmt.Sprintf("%s%d", noteNames[note%12], (note/12)-1)
}

var noteBases = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNote resolves a MIDI note number from either a plain number or a
// pitch name like "C4", "F#2" or "Bb3". Case-insensitive.
func ParseNote(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("MIDI note %d outside 0-127", n)
		}
		return n, nil
	}

	name := strings.ToUpper(s)
	if len(name) < 2 {
		return 0, fmt.Errorf("cannot parse note %q", s)
	}
	semis, ok := noteBases[name[0]]
	if !ok {
		return 0, fmt.Errorf("cannot parse note %q", s)
	}

	rest := name[1:]
	switch {
	case rest[0] == '#':
		semis++
		rest = rest[1:]
	case rest[0] == 'B' && len(rest) > 1:
		// Flat spelling; a bare "B" here would be note B's octave digit.
		semis--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("cannot parse note %q", s)
	}
	n := (octave+1)*12 + semis
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note %q is outside the MIDI range", s)
	}
	return n, nil
}

// IsBlackNote reports whether a MIDI note number is a sharp.
func IsBlackNote(note int) bool {
	switch ((note % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
