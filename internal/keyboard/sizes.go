package keyboard

// Standard keyboard size variants.
//
// Each size is identified by its key count and the MIDI note of its lowest
// key. All common sizes start and end on a white key:
// - 88 keys: A0..C8 (full piano, 52 white / 36 black)
// - 76 keys: E1..G7
// - 61 keys: C2..C7
// - 49 keys: C2..C6
// - 37 keys: C3..C6
// - 25 keys: C3..C5

const (
	// MIDI note numbers of the lowest key per size
	FirstNote88 = 21 // A0
	FirstNote76 = 28 // E1
	FirstNote61 = 36 // C2
	FirstNote49 = 36 // C2
	FirstNote37 = 48 // C3
	FirstNote25 = 48 // C3
)

// Size88Spec returns the full 88-key piano definition.
func Size88Spec() Spec {
	return Spec{SpecName: "88-key", KeyCount: 88, FirstMIDINote: FirstNote88}
}

// Size76Spec returns the 76-key definition.
func Size76Spec() Spec {
	return Spec{SpecName: "76-key", KeyCount: 76, FirstMIDINote: FirstNote76}
}

// Size61Spec returns the 61-key definition.
func Size61Spec() Spec {
	return Spec{SpecName: "61-key", KeyCount: 61, FirstMIDINote: FirstNote61}
}

// Size49Spec returns the 49-key definition.
func Size49Spec() Spec {
	return Spec{SpecName: "49-key", KeyCount: 49, FirstMIDINote: FirstNote49}
}

// Size37Spec returns the 37-key definition.
func Size37Spec() Spec {
	return Spec{SpecName: "37-key", KeyCount: 37, FirstMIDINote: FirstNote37}
}

// Size25Spec returns the 25-key definition.
func Size25Spec() Spec {
	return Spec{SpecName: "25-key", KeyCount: 25, FirstMIDINote: FirstNote25}
}
