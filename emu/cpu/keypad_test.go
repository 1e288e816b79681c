package cpu

import (
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadSetAndLatch(t *testing.T) {
	var keypad Keypad
	keypad.Set(0x5, true)
	keypad.Set(0xF, true)
	keypad.Set(0x5, false)

	// Out-of-range indexes are ignored.
	keypad.Set(-1, true)
	keypad.Set(16, true)

	keys := keypad.latch()
	assert.False(t, keys[0x5])
	assert.True(t, keys[0xF])

	keypad.Release()
	assert.Equal(t, -1, firstPressed(keypad.latch()))
}

func TestFirstPressed(t *testing.T) {
	var keys [KeyCount]bool
	assert.Equal(t, -1, firstPressed(keys))

	keys[0xB] = true
	keys[0x3] = true
	assert.Equal(t, 0x3, firstPressed(keys))
}

// The latched copy is stable while the host keeps writing.
func TestKeypadConcurrentWrites(t *testing.T) {
	var keypad Keypad
	var wg sync.WaitGroup

	for i := 0; i < KeyCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				keypad.Set(i, j%2 == 1)
			}
		}(i)
	}

	for i := 0; i < 100; i++ {
		keypad.latch()
	}
	wg.Wait()

	keys := keypad.latch()
	for i := range keys {
		assert.True(t, keys[i])
	}
}
