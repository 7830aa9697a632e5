package tower

// PlatformState is the lifecycle stage of a platform.
type PlatformState int

const (
	PlatformSpawned PlatformState = iota
	PlatformMoving
	PlatformStopped
	PlatformCut
	PlatformPlaced
	PlatformFallen
)

// String returns a human-readable name for the state.
func (s PlatformState) String() string {
	switch s {
	case PlatformSpawned:
		return "Spawned"
	case PlatformMoving:
		return "Moving"
	case PlatformStopped:
		return "Stopped"
	case PlatformCut:
		return "Cut"
	case PlatformPlaced:
		return "Placed"
	case PlatformFallen:
		return "Fallen"
	default:
		return "Unknown"
	}
}

// platformObserver receives the two terminal notifications of a moving platform.
// The session is the only implementation.
type platformObserver interface {
	platformStopped(p *Platform)
	platformDriftedAway(p *Platform)
}

// Platform is a single slab of the tower.
// Its position and scale are written by its own Tick while moving and by the
// session when a cut is applied; nothing else mutates it.
type Platform struct {
	Position  Vec3
	ScaleX    float64
	BaseWidth float64 // unscaled width along X
	Depth     float64 // size along Z
	MoveDir   float64 // +1 or -1 along X
	Speed     float64 // units per second
	ColorTag  int

	state    PlatformState
	moving   bool
	anchored bool

	driftArmed bool
	driftLimit float64

	observer platformObserver
}

// reset clears the platform for reuse from a pool.
func (p *Platform) reset() {
	*p = Platform{ScaleX: 1}
}

// Width returns the current scaled width along X.
func (p *Platform) Width() float64 {
	return p.BaseWidth * p.ScaleX
}

// Extent returns the current extent along X.
func (p *Platform) Extent() Extent {
	return ExtentAt(p.Position.X, p.Width())
}

// Span returns the extent together with the center used for cut-side decisions.
func (p *Platform) Span() Span {
	return Span{Extent: p.Extent(), CenterX: p.Position.X}
}

// State returns the lifecycle state.
func (p *Platform) State() PlatformState { return p.state }

// IsMoving reports whether the platform is still advancing each tick.
func (p *Platform) IsMoving() bool { return p.moving }

// IsAnchored reports whether this is the fixed first platform of a level.
func (p *Platform) IsAnchored() bool { return p.anchored }

// DriftLimit returns the X position past which the platform can no longer
// overlap the previous one, and whether drift tracking is active.
func (p *Platform) DriftLimit() (float64, bool) {
	return p.driftLimit, p.driftArmed
}

// StartMoving begins motion and arms drift tracking relative to prev.
func (p *Platform) StartMoving(prev *Platform) {
	p.moving = true
	p.state = PlatformMoving

	if prev == nil {
		p.driftArmed = false
		return
	}
	p.driftLimit = prev.Position.X + prev.Width()*sign(p.MoveDir)
	p.driftArmed = true
}

// Tick advances the platform by dt seconds. Once the drift limit is crossed
// the platform stops, falls and the owner is told exactly once.
func (p *Platform) Tick(dt float64) {
	if !p.moving {
		return
	}

	p.Position.X += p.MoveDir * p.Speed * dt

	if !p.driftArmed || !p.crossedDriftLimit() {
		return
	}

	p.driftArmed = false
	p.moving = false
	p.state = PlatformFallen
	if p.observer != nil {
		p.observer.platformDriftedAway(p)
	}
}

func (p *Platform) crossedDriftLimit() bool {
	if p.MoveDir >= 0 {
		return p.Position.X >= p.driftLimit
	}
	return p.Position.X <= p.driftLimit
}

// StopMoving halts motion and cancels drift tracking.
// Returns false if the platform was not moving (already stopped or drifted).
func (p *Platform) StopMoving() bool {
	if !p.moving {
		return false
	}

	p.moving = false
	p.driftArmed = false
	p.state = PlatformStopped
	if p.observer != nil {
		p.observer.platformStopped(p)
	}
	return true
}

// ApplyCut shrinks the platform to the surviving overlap region.
func (p *Platform) ApplyCut(overlapLength, newCenterX float64) {
	if p.BaseWidth > 0 {
		p.ScaleX = overlapLength / p.BaseWidth
	}
	p.Position.X = newCenterX
	p.state = PlatformCut
}

// FallingPiece is the severed region of a cut platform. It is handed to the
// physics collaborator and has no further effect on the session.
type FallingPiece struct {
	Center   Vec3
	Width    float64
	Depth    float64
	ColorTag int
	Front    bool    // severed from the +X side
	Impulse  float64 // lateral velocity away from the stack; 0 for a straight drop
	Lifetime float64 // seconds before disposal
}

// SpawnFallingPiece describes the region that a cut of cutLength removes.
// It must be called before ApplyCut since it reads the pre-cut extent.
func (p *Platform) SpawnFallingPiece(cutLength float64, cutFront bool, impulse, lifetime float64) FallingPiece {
	ext := p.Extent()

	centerX := ext.Min + cutLength/2
	dir := -1.0
	if cutFront {
		centerX = ext.Max - cutLength/2
		dir = 1.0
	}

	return FallingPiece{
		Center:   Vec3{X: centerX, Y: p.Position.Y, Z: p.Position.Z},
		Width:    cutLength,
		Depth:    p.Depth,
		ColorTag: p.ColorTag,
		Front:    cutFront,
		Impulse:  impulse * dir,
		Lifetime: lifetime,
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Bounds returns the world-space box the platform occupies.
func (p *Platform) Bounds() Bounds {
	ext := p.Extent()
	half := p.Depth / 2
	return Bounds{
		Min: Vec3{X: ext.Min, Y: p.Position.Y, Z: p.Position.Z - half},
		Max: Vec3{X: ext.Max, Y: p.Position.Y, Z: p.Position.Z + half},
	}
}
