package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope shapes s with an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	successBaseFreq = 523.25 // C5
	successDuration = 140 * time.Millisecond
	failureDuration = 350 * time.Millisecond
)

// SuccessTone is the placement chime: a sine note with an octave overtone,
// its frequency multiplied by pitch.
func SuccessTone(pitch float64, vol float64, rate beep.SampleRate) beep.Streamer {
	freq := successBaseFreq * pitch

	fund := NewEnvelope(NewOscillator(freq, successDuration, WaveSine, rate),
		successDuration, 5*time.Millisecond, 100*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(freq*2, successDuration, WaveSine, rate),
		successDuration, 5*time.Millisecond, 60*time.Millisecond, rate)

	return newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), vol)
}

// FailureTone is the falling two-step buzz played when a level is lost.
func FailureTone(vol float64, rate beep.SampleRate) beep.Streamer {
	half := failureDuration / 2
	hi := NewEnvelope(NewOscillator(180, half, WaveSaw, rate), half, 5*time.Millisecond, 20*time.Millisecond, rate)
	lo := NewEnvelope(NewOscillator(110, half, WaveSaw, rate), half, 5*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(beep.Seq(hi, lo), vol)
}
