package keyboard

// Key dimensions in millimeters, following common digital piano datasheets.
//
// A white key's playable surface is narrower than its base wherever a black
// key sits above it. The cut table below records how many millimeters each
// white note loses on each side; the values are chosen so that the notch
// left between two neighboring exposed surfaces is the same for every black
// key position (12.5mm key + clearance).
const (
	// WhiteKeyWidthMM is the width of a white key at its base.
	WhiteKeyWidthMM = 23.5

	// BlackKeyWidthMM is the width of a black key. Black keys have no cuts.
	BlackKeyWidthMM = 12.5

	// DefaultKeyGapMM is the gap between adjacent white key bases.
	DefaultKeyGapMM = 1.0
)

// keyCut holds the exposed-surface reduction for one white note.
type keyCut struct {
	Left  float64
	Right float64
}

// whiteKeyCuts maps a white note's pitch class to its cuts. Notes with a
// white chromatic neighbor on a side have no cut there (C/F left, E/B right).
var whiteKeyCuts = map[int]keyCut{
	0:  {Left: 0, Right: 8.5},    // C
	2:  {Left: 4.0, Right: 4.0},  // D
	4:  {Left: 8.5, Right: 0},    // E
	5:  {Left: 0, Right: 7.5},    // F
	7:  {Left: 5.0, Right: 6.25}, // G
	9:  {Left: 6.25, Right: 5.0}, // A
	11: {Left: 7.5, Right: 0},    // B
}

// CutsForNote returns the left/right exposed-surface cuts for a white note
// on the given keyboard. A cut is dropped when the black key it makes room
// for falls outside the keyboard's range (the lowest and highest keys).
func CutsForNote(spec Spec, note int) (left, right float64) {
	c, ok := whiteKeyCuts[((note%12)+12)%12]
	if !ok {
		return 0, 0
	}
	left, right = c.Left, c.Right
	if note-1 < spec.FirstMIDINote || !IsBlackNote(note-1) {
		left = 0
	}
	if note+1 > spec.LastMIDINote() || !IsBlackNote(note+1) {
		right = 0
	}
	return left, right
}
