package stack

import (
	"github.com/vovakirdan/stacktower/internal/pool"
	"github.com/vovakirdan/stacktower/internal/tower"
)

// Debris is a severed piece falling away from the tower. Drop grows
// downward in rows; X drifts with the lateral impulse.
type Debris struct {
	X, Z     float64
	Width    float64
	Drop     float64
	VX, VY   float64
	Age      float64
	Lifetime float64
	ColorTag int
}

// DebrisField is the physics collaborator of the tower session: it owns the
// falling pieces and moves them with a simple kinematic fall until their
// lifetime expires.
type DebrisField struct {
	gravity float64
	pool    *pool.Pool[*Debris]
	live    []*Debris
}

// NewDebrisField creates an empty field with the given gravity in rows/s².
func NewDebrisField(gravity float64) *DebrisField {
	return &DebrisField{
		gravity: gravity,
		pool: pool.New("debris",
			func() *Debris { return &Debris{} },
			func(d *Debris) { *d = Debris{} },
		),
	}
}

// SpawnFallingPiece implements tower.Physics.
func (f *DebrisField) SpawnFallingPiece(p tower.FallingPiece) {
	if p.Width <= 0 {
		return
	}
	d := f.pool.Acquire()
	d.X = p.Center.X
	d.Z = p.Center.Z
	d.Width = p.Width
	d.VX = p.Impulse
	d.Lifetime = p.Lifetime
	d.ColorTag = p.ColorTag
	f.live = append(f.live, d)
}

// Update advances every piece by dt seconds and recycles expired ones.
func (f *DebrisField) Update(dt float64) {
	n := 0
	for _, d := range f.live {
		d.Age += dt
		if d.Lifetime > 0 && d.Age >= d.Lifetime {
			f.pool.Release(d)
			continue
		}
		d.VY += f.gravity * dt
		d.Drop += d.VY * dt
		d.X += d.VX * dt
		f.live[n] = d
		n++
	}
	clear(f.live[n:])
	f.live = f.live[:n]
}

// Pieces returns the live pieces. The slice must not be modified.
func (f *DebrisField) Pieces() []*Debris {
	return f.live
}

// Len returns the number of live pieces.
func (f *DebrisField) Len() int {
	return len(f.live)
}

// Clear recycles every piece.
func (f *DebrisField) Clear() {
	for _, d := range f.live {
		f.pool.Release(d)
	}
	clear(f.live)
	f.live = f.live[:0]
}
