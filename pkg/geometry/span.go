// Package geometry provides basic one-dimensional geometric types used
// throughout the application. All positions and lengths are in millimeters.
package geometry

import (
	"math"
)

// Span represents a closed interval [Start, End] along the strip axis.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewSpan creates a new Span.
func NewSpan(start, end float64) Span {
	return Span{Start: start, End: end}
}

// SpanAt creates a Span from a start position and a length.
func SpanAt(start, length float64) Span {
	return Span{Start: start, End: start + length}
}

// Length returns the extent of the span. Empty spans have length 0.
func (s Span) Length() float64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Center returns the midpoint of the span.
func (s Span) Center() float64 {
	return (s.Start + s.End) / 2
}

// Empty returns true if the span covers no distance.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains returns true if the position lies inside the span.
func (s Span) Contains(x float64) bool {
	return x >= s.Start && x <= s.End
}

// Intersects returns true if this span overlaps another by a positive amount.
func (s Span) Intersects(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}

// Intersect returns the overlapping region of two spans.
// The result is empty if the spans do not intersect.
func (s Span) Intersect(other Span) Span {
	start := math.Max(s.Start, other.Start)
	end := math.Min(s.End, other.End)
	if end < start {
		return Span{Start: start, End: start}
	}
	return Span{Start: start, End: end}
}

// Overlap returns the length of the overlapping region of two spans,
// or 0 if they do not intersect.
func (s Span) Overlap(other Span) float64 {
	return s.Intersect(other).Length()
}

// Union returns the smallest span containing both spans.
func (s Span) Union(other Span) Span {
	return Span{
		Start: math.Min(s.Start, other.Start),
		End:   math.Max(s.End, other.End),
	}
}

// Shift returns the span translated by delta.
func (s Span) Shift(delta float64) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// DistanceTo returns the distance from a position to the nearest point of
// the span, or 0 if the position lies inside it.
func (s Span) DistanceTo(x float64) float64 {
	switch {
	case x < s.Start:
		return s.Start - x
	case x > s.End:
		return x - s.End
	default:
		return 0
	}
}

// BoundingSpan computes the smallest span containing all given spans.
func BoundingSpan(spans []Span) Span {
	if len(spans) == 0 {
		return Span{}
	}
	out := spans[0]
	for _, s := range spans[1:] {
		out = out.Union(s)
	}
	return out
}
