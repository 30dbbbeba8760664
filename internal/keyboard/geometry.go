package keyboard

import (
	"fmt"

	"piano-ledmap/pkg/geometry"
)

// KeyGeometry describes the physical footprint of one key.
type KeyGeometry struct {
	Index    int           `json:"index"`
	MIDINote int           `json:"midi_note"`
	Name     string        `json:"name"`
	Type     KeyType       `json:"type"`
	Base     geometry.Span `json:"base"`    // full physical footprint
	Exposed  geometry.Span `json:"exposed"` // playable surface, always inside Base
}

// BuildGeometry computes the physical layout of every key on the keyboard.
//
// White key bases are laid out sequentially with the given gap; their
// exposed surfaces subtract the per-note cuts. Black keys are centered in
// the notch between the exposed edges of their two neighboring white keys
// and have no cuts (exposed equals base).
//
// Inputs are expected to be validated upstream; BuildGeometry panics on a
// malformed spec or negative gap rather than returning an error.
func BuildGeometry(spec Spec, keyGapMM float64) []KeyGeometry {
	if err := spec.Validate(); err != nil {
		panic(fmt.Sprintf("keyboard: %v", err))
	}
	if keyGapMM < 0 {
		panic(fmt.Sprintf("keyboard: negative key gap %.2f", keyGapMM))
	}

	keys := make([]KeyGeometry, spec.KeyCount)
	whitePitch := WhiteKeyWidthMM + keyGapMM
	whiteIndex := 0

	for i := range keys {
		note := spec.NoteForKey(i)
		k := KeyGeometry{
			Index:    i,
			MIDINote: note,
			Name:     NoteName(note),
		}

		if IsBlackNote(note) {
			// Chromatic neighbors of a sharp are always white, and the
			// keyboard never starts or ends on a sharp, so both exist.
			leftEdge := keys[i-1].Exposed.End
			rightLeftCut, _ := CutsForNote(spec, note+1)
			rightEdge := float64(whiteIndex)*whitePitch + rightLeftCut
			start := leftEdge + (rightEdge-leftEdge-BlackKeyWidthMM)/2
			k.Type = KeyBlack
			k.Base = geometry.SpanAt(start, BlackKeyWidthMM)
			k.Exposed = k.Base
		} else {
			left, right := CutsForNote(spec, note)
			k.Type = KeyWhite
			k.Base = geometry.SpanAt(float64(whiteIndex)*whitePitch, WhiteKeyWidthMM)
			k.Exposed = geometry.NewSpan(k.Base.Start+left, k.Base.End-right)
			whiteIndex++
		}

		keys[i] = k
	}

	return keys
}
