// Package tower implements the stacking core of the stack-tower game: the
// overlap geometry between two platforms, the moving platform entity and the
// session state machine that spawns, stops, cuts and places platforms.
//
// The package has no engine, terminal or audio dependencies. Collaborators
// (audio, debris physics) are passed in explicitly and the owner drives the
// session with Tick and OnInputTap from a single goroutine.
package tower

import "math"

// Vec3 is a world-space position. X is the stacking (cut) axis, Y is up and
// Z is the forward axis along which the tower grows.
type Vec3 struct {
	X, Y, Z float64
}

// Extent is the span a platform covers along the stacking axis.
type Extent struct {
	Min, Max float64
}

// ExtentAt returns the extent of a platform centred at center with the given width.
func ExtentAt(center, width float64) Extent {
	half := width / 2
	return Extent{Min: center - half, Max: center + half}
}

// Length returns the size of the extent.
func (e Extent) Length() float64 { return e.Max - e.Min }

// Center returns the midpoint of the extent.
func (e Extent) Center() float64 { return (e.Min + e.Max) / 2 }

// Span pairs an extent with the platform center used to decide the cut side.
type Span struct {
	Extent
	CenterX float64
}

// Overlap is the outcome of comparing the current platform against the previous one.
// When Hit is false the platform missed the stack entirely and the other
// fields carry no meaning.
type Overlap struct {
	Hit           bool
	OverlapLength float64
	CutLength     float64
	CutFront      bool // overhang is on the +X side of the previous platform
	NewCenterX    float64
	Min, Max      float64 // surviving region
}

// ComputeOverlap compares the current platform span against the previous one.
// It never mutates anything; identical inputs yield identical results.
func ComputeOverlap(prev, curr Span) Overlap {
	lo := math.Max(prev.Min, curr.Min)
	hi := math.Min(prev.Max, curr.Max)
	length := hi - lo

	if length <= 0 {
		return Overlap{OverlapLength: length}
	}

	return Overlap{
		Hit:           true,
		OverlapLength: length,
		CutLength:     math.Max(0, curr.Length()-length),
		CutFront:      curr.CenterX > prev.CenterX,
		NewCenterX:    (lo + hi) / 2,
		Min:           lo,
		Max:           hi,
	}
}
