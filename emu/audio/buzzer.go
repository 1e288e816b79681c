// Package audio renders the sound gate through the system speaker as a
// plain sine tone.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	frequency  = 220.0
	amplitude  = 0.25
)

// Buzzer is a beep.Streamer that emits a tone while the gate is open and
// silence otherwise. The emulation loop flips the gate once per tick; the
// speaker mixer pulls samples on its own goroutine.
type Buzzer struct {
	mu   sync.Mutex
	gate bool
	step float64
	t    float64
}

// NewBuzzer initializes the speaker and starts the (silent) stream.
func NewBuzzer() (*Buzzer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	b := &Buzzer{step: frequency / float64(sampleRate)}
	speaker.Play(b)
	return b, nil
}

// SetGate opens or closes the gate.
func (b *Buzzer) SetGate(on bool) {
	b.mu.Lock()
	b.gate = on
	b.mu.Unlock()
}

// Stream implements beep.Streamer.
func (b *Buzzer) Stream(samples [][2]float64) (int, bool) {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()

	for i := range samples {
		var v float64
		if gate {
			v = amplitude * math.Sin(2*math.Pi*b.t)
			b.t += b.step
			if b.t >= 1 {
				b.t -= 1
			}
		} else {
			b.t = 0
		}
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// Err implements beep.Streamer. The buzzer never fails.
func (b *Buzzer) Err() error {
	return nil
}
