package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_LengthAndCenter(t *testing.T) {
	s := NewSpan(10, 33.5)
	assert.InDelta(t, 23.5, s.Length(), 1e-9)
	assert.InDelta(t, 21.75, s.Center(), 1e-9)
}

func TestSpan_InvertedHasZeroLength(t *testing.T) {
	s := NewSpan(5, 2)
	assert.Equal(t, 0.0, s.Length())
	assert.True(t, s.Empty())
}

func TestSpanAt(t *testing.T) {
	s := SpanAt(100, 23.5)
	assert.Equal(t, 100.0, s.Start)
	assert.InDelta(t, 123.5, s.End, 1e-9)
}

func TestSpan_Contains(t *testing.T) {
	s := NewSpan(0, 10)
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(-0.001))
	assert.False(t, s.Contains(10.001))
}

func TestSpan_Overlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want float64
	}{
		{"disjoint", NewSpan(0, 5), NewSpan(6, 10), 0},
		{"touching edges", NewSpan(0, 5), NewSpan(5, 10), 0},
		{"partial", NewSpan(0, 5), NewSpan(3, 10), 2},
		{"contained", NewSpan(0, 10), NewSpan(2, 4), 2},
		{"identical", NewSpan(2, 4), NewSpan(2, 4), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.a.Overlap(tc.b), 1e-9)
			assert.InDelta(t, tc.want, tc.b.Overlap(tc.a), 1e-9, "overlap should be symmetric")
		})
	}
}

func TestSpan_Intersects(t *testing.T) {
	a := NewSpan(0, 5)
	assert.True(t, a.Intersects(NewSpan(4, 6)))
	assert.False(t, a.Intersects(NewSpan(5, 6)), "shared edge is not a positive overlap")
	assert.False(t, a.Intersects(NewSpan(7, 9)))
}

func TestSpan_Union(t *testing.T) {
	u := NewSpan(0, 5).Union(NewSpan(8, 12))
	assert.Equal(t, NewSpan(0, 12), u)
}

func TestSpan_Shift(t *testing.T) {
	s := NewSpan(10, 20).Shift(-2.5)
	assert.InDelta(t, 7.5, s.Start, 1e-9)
	assert.InDelta(t, 17.5, s.End, 1e-9)
}

func TestSpan_DistanceTo(t *testing.T) {
	s := NewSpan(10, 20)
	assert.Equal(t, 0.0, s.DistanceTo(15))
	assert.Equal(t, 0.0, s.DistanceTo(10))
	assert.InDelta(t, 2.0, s.DistanceTo(8), 1e-9)
	assert.InDelta(t, 3.0, s.DistanceTo(23), 1e-9)
}

func TestBoundingSpan(t *testing.T) {
	spans := []Span{NewSpan(5, 7), NewSpan(1, 2), NewSpan(6, 9)}
	assert.Equal(t, NewSpan(1, 9), BoundingSpan(spans))
	assert.Equal(t, Span{}, BoundingSpan(nil))
}
