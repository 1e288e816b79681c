package cpu

import "sync"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad is the externally written key state. The input thread calls Set;
// the dispatcher only ever sees the copy latched at the start of a tick, so
// keys never change mid-instruction.
type Keypad struct {
	mu    sync.Mutex
	state [KeyCount]bool
}

// Set records a key press or release. Indexes outside 0-F are ignored.
func (k *Keypad) Set(idx int, pressed bool) {
	if idx < 0 || idx >= KeyCount {
		return
	}
	k.mu.Lock()
	k.state[idx] = pressed
	k.mu.Unlock()
}

// Release clears every key.
func (k *Keypad) Release() {
	k.mu.Lock()
	k.state = [KeyCount]bool{}
	k.mu.Unlock()
}

func (k *Keypad) latch() [KeyCount]bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// firstPressed returns the lowest pressed key in a latched state, or -1.
func firstPressed(keys [KeyCount]bool) int {
	for i, pressed := range keys {
		if pressed {
			return i
		}
	}
	return -1
}
