package tower

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/stacktower/internal/pool"
)

// SessionState is the stage of the stacking state machine.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLevelSetup
	StateAwaitingInput
	StateEvaluating
	StateLevelComplete
	StateLevelFailed
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLevelSetup:
		return "LevelSetup"
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateEvaluating:
		return "Evaluating"
	case StateLevelComplete:
		return "LevelComplete"
	case StateLevelFailed:
		return "LevelFailed"
	default:
		return "Unknown"
	}
}

// Geometry holds the platform constants supplied by the level configuration.
type Geometry struct {
	Start            Vec3
	PlatformWidth    float64
	PlatformDepth    float64
	SpawnGap         float64 // extra distance along Z between consecutive platforms
	SpawnDistance    float64 // lateral offset a new platform starts at
	MoveSpeed        float64 // units per second
	PerfectThreshold float64
	PieceLifetime    float64 // seconds
	PieceImpulse     float64 // lateral speed given to falling pieces
	Palette          int     // number of color tags to choose from
}

// LevelConfig is the read-only description of one level attempt.
// It is validated by the configuration layer before SetupLevel.
type LevelConfig struct {
	TargetCount int
	Geometry    Geometry
}

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Min, Max Vec3
}

// Options wires the session to its collaborators. Nil fields get defaults.
type Options struct {
	Audio   Audio
	Physics Physics
	Rand    *rand.Rand
	Pool    *pool.Pool[*Platform]
}

// Session owns the stack and the moving platform of one level attempt.
// It must be driven from a single goroutine.
type Session struct {
	audio   Audio
	physics Physics
	rng     *rand.Rand
	pool    *pool.Pool[*Platform]

	state   SessionState
	level   LevelConfig
	stack   []*Platform
	current *Platform
	combo   int
	placed  int
	enabled bool

	anchorBounds Bounds
	finishZ      float64

	events []Event
}

// NewPlatformPool returns a pool suitable for Options.Pool.
func NewPlatformPool() *pool.Pool[*Platform] {
	return pool.New("platform",
		func() *Platform { return &Platform{ScaleX: 1} },
		func(p *Platform) { p.reset() },
	)
}

// NewSession creates an idle session.
func NewSession(opts Options) *Session {
	s := &Session{
		audio:   opts.Audio,
		physics: opts.Physics,
		rng:     opts.Rand,
		pool:    opts.Pool,
	}
	if s.audio == nil {
		s.audio = NopAudio{}
	}
	if s.physics == nil {
		s.physics = NopPhysics{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.pool == nil {
		s.pool = NewPlatformPool()
	}
	return s
}

// SetupLevel starts a fresh attempt: anchor platform, finish marker, first
// moving platform. Any previous stack is recycled.
func (s *Session) SetupLevel(cfg LevelConfig) {
	s.releaseAll()
	s.state = StateLevelSetup
	s.level = cfg
	s.combo = 0
	s.placed = 0
	s.audio.ResetPitch()

	g := cfg.Geometry
	anchor := s.pool.Acquire()
	anchor.Position = g.Start
	anchor.BaseWidth = g.PlatformWidth
	anchor.ScaleX = 1
	anchor.Depth = g.PlatformDepth
	anchor.ColorTag = s.randomColor()
	anchor.anchored = true
	anchor.state = PlatformPlaced

	s.stack = append(s.stack, anchor)
	s.current = anchor
	s.anchorBounds = anchor.Bounds()
	s.finishZ = g.Start.Z + float64(cfg.TargetCount)*(g.PlatformDepth+g.SpawnGap)
	s.enabled = true

	s.emit(LevelStarted{Target: cfg.TargetCount})
	s.SpawnNext()
}

// SpawnNext creates the next moving platform on top of the stack.
func (s *Session) SpawnNext() {
	if len(s.stack) == 0 {
		return
	}
	g := s.level.Geometry
	top := s.stack[len(s.stack)-1]

	side := 1.0
	if s.rng.Intn(2) == 0 {
		side = -1.0
	}

	p := s.pool.Acquire()
	p.BaseWidth = top.BaseWidth
	p.ScaleX = top.ScaleX
	p.Depth = top.Depth
	p.Position = Vec3{
		X: top.Position.X + side*g.SpawnDistance,
		Y: top.Position.Y,
		Z: top.Position.Z + top.Depth + g.SpawnGap,
	}
	p.MoveDir = -side
	p.Speed = g.MoveSpeed
	p.ColorTag = s.randomColor()
	p.state = PlatformSpawned
	p.observer = s

	s.stack = append(s.stack, p)
	s.current = p
	s.state = StateAwaitingInput
	p.StartMoving(top)
}

// Tick advances the moving platform. Drift-away failures surface here.
func (s *Session) Tick(dt float64) {
	if s.state != StateAwaitingInput || s.current == nil {
		return
	}
	s.current.Tick(dt)
}

// OnInputTap stops the current platform and evaluates its placement.
// Returns false when the tap was ignored.
func (s *Session) OnInputTap() bool {
	if !s.enabled || s.state != StateAwaitingInput || s.current == nil {
		return false
	}
	return s.current.StopMoving()
}

// OnPlatformDriftedAway ends the attempt as if the player had missed.
func (s *Session) OnPlatformDriftedAway(p *Platform) {
	if s.state != StateAwaitingInput || p != s.current {
		return
	}
	s.fail(p, FailDriftedAway)
}

// Shutdown disables input and recycles every platform.
func (s *Session) Shutdown() {
	s.enabled = false
	s.releaseAll()
	s.state = StateIdle
	s.events = nil
}

func (s *Session) platformStopped(p *Platform) {
	if p != s.current || len(s.stack) < 2 {
		return
	}
	s.evaluate(p, s.stack[len(s.stack)-2])
}

func (s *Session) platformDriftedAway(p *Platform) {
	s.OnPlatformDriftedAway(p)
}

// evaluate decides perfect placement, cut or miss. The perfect check runs
// first so that near-zero cuts never flap between the two paths.
func (s *Session) evaluate(p, prev *Platform) {
	s.state = StateEvaluating

	if math.Abs(p.Position.X-prev.Position.X) < s.level.Geometry.PerfectThreshold {
		wasCombo := s.combo > 0
		s.combo++
		if wasCombo {
			s.audio.RaisePitch()
		}
		s.audio.PlaySuccessCue()
		p.state = PlatformPlaced
		s.succeed(p, true, 0)
		return
	}

	ov := ComputeOverlap(prev.Span(), p.Span())
	if !ov.Hit {
		s.fail(p, FailMissed)
		return
	}

	if ov.CutLength > 0 {
		g := s.level.Geometry
		s.physics.SpawnFallingPiece(p.SpawnFallingPiece(ov.CutLength, ov.CutFront, g.PieceImpulse, g.PieceLifetime))
		p.ApplyCut(ov.OverlapLength, ov.NewCenterX)
	} else {
		p.state = PlatformPlaced
	}

	s.combo = 0
	s.audio.ResetPitch()
	s.audio.PlaySuccessCue()
	s.succeed(p, false, ov.CutLength)
}

func (s *Session) succeed(p *Platform, perfect bool, cut float64) {
	s.placed++
	s.emit(StackingSucceeded{
		Platform:  p,
		Perfect:   perfect,
		CutLength: cut,
		Combo:     s.combo,
		Placed:    s.placed,
	})

	if s.placed < s.level.TargetCount {
		s.SpawnNext()
		return
	}

	s.enabled = false
	s.state = StateLevelComplete
	s.anchorBounds = s.finishBounds()
	s.emit(LevelCompleted{Placed: s.placed})
}

func (s *Session) fail(p *Platform, reason FailReason) {
	s.enabled = false
	p.moving = false
	p.driftArmed = false
	p.state = PlatformFallen
	s.combo = 0
	s.audio.ResetPitch()
	s.audio.PlayFailureCue()
	s.state = StateLevelFailed
	s.emit(StackingFailed{Platform: p, Reason: reason})
}

// finishBounds is the finish marker: anchor-sized, centred on the anchor's X
// at the finish distance.
func (s *Session) finishBounds() Bounds {
	g := s.level.Geometry
	ext := ExtentAt(g.Start.X, g.PlatformWidth)
	half := g.PlatformDepth / 2
	return Bounds{
		Min: Vec3{X: ext.Min, Y: g.Start.Y, Z: s.finishZ - half},
		Max: Vec3{X: ext.Max, Y: g.Start.Y, Z: s.finishZ + half},
	}
}

func (s *Session) releaseAll() {
	for _, p := range s.stack {
		s.pool.Release(p)
	}
	clear(s.stack)
	s.stack = s.stack[:0]
	s.current = nil
}

func (s *Session) randomColor() int {
	if s.level.Geometry.Palette <= 0 {
		return 0
	}
	return s.rng.Intn(s.level.Geometry.Palette)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Events drains the notifications produced since the last call.
func (s *Session) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// State returns the state machine stage.
func (s *Session) State() SessionState { return s.state }

// Combo returns the number of consecutive perfect placements.
func (s *Session) Combo() int { return s.combo }

// Placed returns how many platforms were stacked this level, anchor excluded.
func (s *Session) Placed() int { return s.placed }

// Target returns the platform count that completes the level.
func (s *Session) Target() int { return s.level.TargetCount }

// Current returns the most recently spawned platform (the anchor right after setup).
func (s *Session) Current() *Platform { return s.current }

// Stack returns the tower, anchor first. The slice must not be modified.
func (s *Session) Stack() []*Platform { return s.stack }

// StackingEnabled reports whether taps are accepted.
func (s *Session) StackingEnabled() bool { return s.enabled }

// AnchorBounds returns the anchor platform bounds, or the finish marker once
// the level is won.
func (s *Session) AnchorBounds() Bounds { return s.anchorBounds }

// FinishZ returns the forward position of the finish marker.
func (s *Session) FinishZ() float64 { return s.finishZ }

// Geometry returns the constants of the current level.
func (s *Session) Geometry() Geometry { return s.level.Geometry }
