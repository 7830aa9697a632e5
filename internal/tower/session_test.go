package tower

import (
	"math"
	"math/rand"
	"testing"
)

type recordingAudio struct {
	success, raise, reset, failure int
}

func (a *recordingAudio) PlaySuccessCue() { a.success++ }
func (a *recordingAudio) RaisePitch()     { a.raise++ }
func (a *recordingAudio) ResetPitch()     { a.reset++ }
func (a *recordingAudio) PlayFailureCue() { a.failure++ }

type recordingPhysics struct {
	pieces []FallingPiece
}

func (p *recordingPhysics) SpawnFallingPiece(piece FallingPiece) {
	p.pieces = append(p.pieces, piece)
}

func testGeometry() Geometry {
	return Geometry{
		PlatformWidth:    2,
		PlatformDepth:    1,
		SpawnDistance:    5,
		MoveSpeed:        4,
		PerfectThreshold: 0.1,
		PieceLifetime:    3,
		Palette:          4,
	}
}

type harness struct {
	session *Session
	audio   *recordingAudio
	physics *recordingPhysics
	pool    interface{ Free() int }
}

func newHarness(target int, geom Geometry) harness {
	audio := &recordingAudio{}
	physics := &recordingPhysics{}
	pl := NewPlatformPool()
	s := NewSession(Options{
		Audio:   audio,
		Physics: physics,
		Rand:    rand.New(rand.NewSource(7)),
		Pool:    pl,
	})
	s.SetupLevel(LevelConfig{TargetCount: target, Geometry: geom})
	return harness{session: s, audio: audio, physics: physics, pool: pl}
}

// tapAt teleports the moving platform and taps.
func tapAt(t *testing.T, s *Session, x float64) *Platform {
	t.Helper()
	p := s.Current()
	if !p.IsMoving() {
		t.Fatalf("current platform is not moving (state %v)", p.State())
	}
	p.Position.X = x
	if !s.OnInputTap() {
		t.Fatal("OnInputTap() was ignored")
	}
	return p
}

func TestSetupLevel(t *testing.T) {
	h := newHarness(5, testGeometry())
	s := h.session

	if s.State() != StateAwaitingInput {
		t.Errorf("State() = %v, expected AwaitingInput", s.State())
	}
	if len(s.Stack()) != 2 {
		t.Fatalf("stack length = %d, expected anchor + moving platform", len(s.Stack()))
	}

	anchor := s.Stack()[0]
	if !anchor.IsAnchored() || anchor.IsMoving() {
		t.Error("first platform should be an idle anchor")
	}
	if s.Current() == anchor || !s.Current().IsMoving() {
		t.Error("current platform should be the moving one")
	}
	if s.FinishZ() != 5 {
		t.Errorf("FinishZ() = %f, expected 5", s.FinishZ())
	}
	if !s.StackingEnabled() {
		t.Error("stacking should be enabled after setup")
	}
	if s.Combo() != 0 || s.Placed() != 0 {
		t.Errorf("combo/placed should start at 0, got %d/%d", s.Combo(), s.Placed())
	}

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, expected 1", len(events))
	}
	if started, ok := events[0].(LevelStarted); !ok || started.Target != 5 {
		t.Errorf("expected LevelStarted{5}, got %#v", events[0])
	}
	if len(s.Events()) != 0 {
		t.Error("Events() should drain the buffer")
	}
}

func TestSpawnNextPlacement(t *testing.T) {
	geom := testGeometry()
	geom.SpawnGap = 0.5
	h := newHarness(5, geom)
	s := h.session

	p := s.Current()
	anchor := s.Stack()[0]

	if p.Position.Z != anchor.Position.Z+anchor.Depth+0.5 {
		t.Errorf("Z = %f, expected one depth plus gap ahead", p.Position.Z)
	}
	if math.Abs(math.Abs(p.Position.X)-geom.SpawnDistance) > eps {
		t.Errorf("X = %f, expected +/-%f", p.Position.X, geom.SpawnDistance)
	}
	if sign(p.Position.X) == sign(p.MoveDir) {
		t.Errorf("platform at %f should move toward the stack, MoveDir %f", p.Position.X, p.MoveDir)
	}
	if p.Speed != geom.MoveSpeed {
		t.Errorf("Speed = %f, expected %f", p.Speed, geom.MoveSpeed)
	}
}

func TestSpawnSidesAreRandomized(t *testing.T) {
	seen := map[float64]bool{}
	s := NewSession(Options{Rand: rand.New(rand.NewSource(1))})
	for i := 0; i < 40; i++ {
		s.SetupLevel(LevelConfig{TargetCount: 3, Geometry: testGeometry()})
		seen[s.Current().MoveDir] = true
	}
	if !seen[1] || !seen[-1] {
		t.Errorf("expected both approach sides over 40 spawns, saw %v", seen)
	}
}

func TestCutScenario(t *testing.T) {
	geom := testGeometry()
	geom.Start = Vec3{X: 1}
	h := newHarness(5, geom)
	s := h.session
	s.Events()

	// previous [0,2], current [1,3]
	p := tapAt(t, s, 2)

	if math.Abs(p.Width()-1) > eps {
		t.Errorf("Width() = %f, expected 1", p.Width())
	}
	if math.Abs(p.Position.X-1.5) > eps {
		t.Errorf("X = %f, expected 1.5", p.Position.X)
	}
	if len(h.physics.pieces) != 1 {
		t.Fatalf("falling pieces = %d, expected 1", len(h.physics.pieces))
	}
	piece := h.physics.pieces[0]
	if !piece.Front || math.Abs(piece.Center.X-2.5) > eps || math.Abs(piece.Width-1) > eps {
		t.Errorf("unexpected falling piece %+v", piece)
	}

	events := s.Events()
	ok := false
	for _, e := range events {
		if succ, isSucc := e.(StackingSucceeded); isSucc {
			ok = true
			if succ.Perfect || math.Abs(succ.CutLength-1) > eps || succ.Placed != 1 {
				t.Errorf("unexpected success event %+v", succ)
			}
		}
	}
	if !ok {
		t.Error("expected StackingSucceeded")
	}

	next := s.Current()
	if next == p || !next.IsMoving() {
		t.Fatal("a new platform should be moving after a cut")
	}
	if math.Abs(next.Width()-1) > eps {
		t.Errorf("next platform should inherit the cut width, got %f", next.Width())
	}
	if h.audio.success != 1 {
		t.Errorf("success cues = %d, expected 1", h.audio.success)
	}
}

func TestPerfectPlacementAndCombo(t *testing.T) {
	h := newHarness(10, testGeometry())
	s := h.session

	p := tapAt(t, s, 0.05)
	if s.Combo() != 1 {
		t.Errorf("Combo() = %d, expected 1", s.Combo())
	}
	if p.Width() != 2 || p.Position.X != 0.05 {
		t.Errorf("perfect placement must not cut, width %f x %f", p.Width(), p.Position.X)
	}
	if p.State() != PlatformPlaced {
		t.Errorf("State() = %v, expected Placed", p.State())
	}
	if len(h.physics.pieces) != 0 {
		t.Error("perfect placement must not spawn a falling piece")
	}
	if h.audio.raise != 0 {
		t.Error("first perfect placement should not raise the pitch")
	}

	tapAt(t, s, 0.0)
	tapAt(t, s, 0.08)
	if s.Combo() != 3 {
		t.Errorf("Combo() = %d, expected 3", s.Combo())
	}
	if h.audio.raise != 2 {
		t.Errorf("RaisePitch() calls = %d, expected 2", h.audio.raise)
	}

	tapAt(t, s, 1.0)
	if s.Combo() != 0 {
		t.Errorf("Combo() after a cut = %d, expected 0", s.Combo())
	}
	if len(h.physics.pieces) != 1 {
		t.Errorf("falling pieces = %d, expected 1", len(h.physics.pieces))
	}
}

func TestPerfectCheckRunsBeforeCut(t *testing.T) {
	geom := testGeometry()
	geom.PerfectThreshold = 0.5
	h := newHarness(10, geom)

	// 0.4 would cut 0.4 through the calculator
	p := tapAt(t, h.session, 0.4)
	if len(h.physics.pieces) != 0 || p.Width() != 2 {
		t.Error("misalignment below the threshold must never take the cut path")
	}
}

func TestMissFailsLevel(t *testing.T) {
	h := newHarness(10, testGeometry())
	s := h.session
	tapAt(t, s, 0.05)
	s.Events()

	p := tapAt(t, s, 7)

	if s.State() != StateLevelFailed {
		t.Errorf("State() = %v, expected LevelFailed", s.State())
	}
	if s.StackingEnabled() {
		t.Error("input should be disabled after failure")
	}
	if s.Combo() != 0 {
		t.Errorf("Combo() = %d, expected reset to 0", s.Combo())
	}
	if p.State() != PlatformFallen {
		t.Errorf("State() = %v, expected Fallen", p.State())
	}
	if h.audio.failure != 1 {
		t.Errorf("failure cues = %d, expected 1", h.audio.failure)
	}

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, expected 1", len(events))
	}
	failed, ok := events[0].(StackingFailed)
	if !ok || failed.Reason != FailMissed || failed.Platform != p {
		t.Errorf("expected StackingFailed{Missed}, got %#v", events[0])
	}

	if s.OnInputTap() {
		t.Error("taps after failure should be ignored")
	}
}

func TestLevelComplete(t *testing.T) {
	h := newHarness(3, testGeometry())
	s := h.session
	s.Events()

	tapAt(t, s, 0)
	tapAt(t, s, 0.02)
	if s.State() != StateAwaitingInput {
		t.Fatalf("State() after two placements = %v, expected AwaitingInput", s.State())
	}
	tapAt(t, s, -0.02)

	if s.State() != StateLevelComplete {
		t.Fatalf("State() = %v, expected LevelComplete", s.State())
	}
	if s.Placed() != 3 {
		t.Errorf("Placed() = %d, expected 3", s.Placed())
	}
	if len(s.Stack()) != 4 {
		t.Errorf("stack length = %d, expected anchor + 3", len(s.Stack()))
	}
	if s.StackingEnabled() || s.OnInputTap() {
		t.Error("input should be disabled after completion")
	}

	events := s.Events()
	if _, ok := events[len(events)-1].(LevelCompleted); !ok {
		t.Errorf("last event = %#v, expected LevelCompleted", events[len(events)-1])
	}

	b := s.AnchorBounds()
	if b.Min.Z != s.FinishZ()-0.5 || b.Max.Z != s.FinishZ()+0.5 {
		t.Errorf("anchor bounds should move to the finish marker, got %+v", b)
	}
}

func TestDriftAwayFailsLevel(t *testing.T) {
	h := newHarness(10, testGeometry())
	s := h.session
	s.Events()
	p := s.Current()

	for i := 0; i < 200; i++ {
		s.Tick(1.0 / 60)
	}

	if s.State() != StateLevelFailed {
		t.Fatalf("State() = %v, expected LevelFailed", s.State())
	}

	events := s.Events()
	failures := 0
	for _, e := range events {
		if f, ok := e.(StackingFailed); ok {
			failures++
			if f.Reason != FailDriftedAway {
				t.Errorf("Reason = %v, expected DriftedAway", f.Reason)
			}
		}
	}
	if failures != 1 {
		t.Errorf("failure events = %d, expected exactly 1", failures)
	}

	x := p.Position.X
	for i := 0; i < 30; i++ {
		s.Tick(1.0 / 60)
	}
	if p.Position.X != x {
		t.Error("platform moved after drifting away")
	}
	if s.OnInputTap() {
		t.Error("tap after drift should be ignored")
	}
	if h.audio.failure != 1 {
		t.Errorf("failure cues = %d, expected 1", h.audio.failure)
	}
}

func TestSetupLevelRecyclesPlatforms(t *testing.T) {
	h := newHarness(10, testGeometry())
	s := h.session
	tapAt(t, s, 0)
	tapAt(t, s, 0)

	n := len(s.Stack())
	s.SetupLevel(LevelConfig{TargetCount: 10, Geometry: testGeometry()})
	if len(s.Stack()) != 2 {
		t.Errorf("stack length after re-setup = %d, expected 2", len(s.Stack()))
	}
	if got := h.pool.Free(); got != n-2 {
		t.Errorf("pool free = %d, expected %d", got, n-2)
	}

	s.Shutdown()
	if s.State() != StateIdle || len(s.Stack()) != 0 || s.Current() != nil {
		t.Error("Shutdown() should leave an empty idle session")
	}
	if got := h.pool.Free(); got != n {
		t.Errorf("pool free after shutdown = %d, expected %d", got, n)
	}
}
