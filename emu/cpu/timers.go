package cpu

// Timers holds the delay and sound counters. Both decrement exactly once per
// scheduler tick, never below zero, regardless of how many instructions ran
// during the tick.
type Timers struct {
	delay uint8
	sound uint8
}

func (t *Timers) tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) setDelay(v uint8) { t.delay = v }
func (t *Timers) setSound(v uint8) { t.sound = v }

// SoundGate reports whether the buzzer should be on.
func (t *Timers) SoundGate() bool {
	return t.sound > 0
}

// Values returns the current counter values.
func (t *Timers) Values() (delay, sound uint8) {
	return t.delay, t.sound
}
