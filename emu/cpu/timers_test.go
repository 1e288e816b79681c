package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimersSaturate(t *testing.T) {
	var timers Timers
	timers.setDelay(2)

	timers.tick()
	timers.tick()
	timers.tick()

	delay, sound := timers.Values()
	assert.Equal(t, uint8(0), delay)
	assert.Equal(t, uint8(0), sound)
}

func TestSoundGate(t *testing.T) {
	var timers Timers
	assert.False(t, timers.SoundGate())

	timers.setSound(1)
	assert.True(t, timers.SoundGate())

	timers.tick()
	assert.False(t, timers.SoundGate())
}

func TestTimersIndependent(t *testing.T) {
	var timers Timers
	timers.setDelay(3)
	timers.setSound(1)

	timers.tick()
	timers.tick()

	delay, sound := timers.Values()
	assert.Equal(t, uint8(1), delay)
	assert.Equal(t, uint8(0), sound)
}
