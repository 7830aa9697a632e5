package tower

// Audio receives the cue requests of the session.
type Audio interface {
	PlaySuccessCue()
	RaisePitch()
	ResetPitch()
	PlayFailureCue()
}

// Physics takes ownership of severed pieces. Calls are fire-and-forget.
type Physics interface {
	SpawnFallingPiece(piece FallingPiece)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) PlaySuccessCue() {}
func (NopAudio) RaisePitch()     {}
func (NopAudio) ResetPitch()     {}
func (NopAudio) PlayFailureCue() {}

// NopPhysics drops falling pieces.
type NopPhysics struct{}

func (NopPhysics) SpawnFallingPiece(FallingPiece) {}
