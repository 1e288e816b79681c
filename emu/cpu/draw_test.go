package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawOpcodeCollisionFlag(t *testing.T) {
	quirks := DefaultQuirks()
	quirks.VBlankWait = false

	emu := newTestEMU(t, quirks, 1, 0xD011, 0xD011)
	emu.memory[0x300] = 0xFF
	emu.I = 0x300
	emu.V[0xF] = 0xEE

	run(t, emu, 1)
	assert.Equal(t, uint8(0), emu.V[0xF])

	run(t, emu, 1)
	assert.Equal(t, uint8(1), emu.V[0xF])
	// XOR involution: the second draw erased the first.
	for _, on := range emu.display.pix {
		assert.False(t, on)
	}
}

// Clip mode discards off-buffer bits; VF reflects only on-buffer collisions.
func TestDrawOpcodeClipScenario(t *testing.T) {
	quirks := DefaultQuirks()
	quirks.VBlankWait = false
	quirks.WrapSprites = false

	emu := newTestEMU(t, quirks, 1, 0xD012)
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0xFF
	emu.I = 0x300
	emu.V[0] = 62
	emu.V[1] = 31

	// Light the pixels that would collide if the sprite wrapped.
	emu.display.pix[0*LoresWidth+0] = true
	emu.display.pix[0*LoresWidth+1] = true

	run(t, emu, 1)

	assert.Equal(t, uint8(0), emu.V[0xF])
	assert.True(t, emu.display.pix[31*LoresWidth+62])
	assert.True(t, emu.display.pix[31*LoresWidth+63])
	// The wrapped positions kept their old state.
	assert.True(t, emu.display.pix[0])
	assert.True(t, emu.display.pix[1])
}

func TestDrawVBlankWaitQuirk(t *testing.T) {
	for _, wait := range []bool{true, false} {
		quirks := DefaultQuirks()
		quirks.VBlankWait = wait

		emu := newTestEMU(t, quirks, 5, 0xD011, 0x6001, 0x1204)
		emu.memory[0x300] = 0xFF
		emu.I = 0x300

		_, _, err := emu.Tick()
		assert.NoError(t, err)

		if wait {
			// The draw consumed the rest of the batch.
			assert.Equal(t, uint8(0), emu.V[0], "vblank wait")
		} else {
			assert.Equal(t, uint8(1), emu.V[0], "no vblank wait")
		}
	}
}

func TestDrawOpcodeHiresRowCount(t *testing.T) {
	emu := newTestEMU(t, SuperChipQuirks(), 1, 0x00FF, 0xD013, 0xD013)
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0xFF
	emu.memory[0x302] = 0xFF
	emu.I = 0x300

	run(t, emu, 2)
	assert.True(t, emu.display.Hires())
	assert.Equal(t, uint8(0), emu.V[0xF])

	run(t, emu, 1)
	assert.Equal(t, uint8(3), emu.V[0xF])
}

func TestDrawOpcodeWideSprite(t *testing.T) {
	emu := newTestEMU(t, SuperChipQuirks(), 1, 0x00FF, 0xD010)
	for i := 0; i < 32; i++ {
		emu.memory[0x300+i] = 0xFF
	}
	emu.I = 0x300

	run(t, emu, 2)

	on := 0
	for _, p := range emu.display.pix {
		if p {
			on++
		}
	}
	assert.Equal(t, 256, on)
}

// In lores mode DXY0 draws nothing, matching interpreters without the wide
// sprite extension.
func TestDrawOpcodeZeroRowsLores(t *testing.T) {
	emu := newTestEMU(t, SuperChipQuirks(), 1, 0xD010)
	emu.I = 0x300
	emu.V[0xF] = 1

	run(t, emu, 1)
	assert.Equal(t, uint8(0), emu.V[0xF])
	for _, p := range emu.display.pix {
		assert.False(t, p)
	}
}

func TestDrawOpcodeSpriteOutOfMemory(t *testing.T) {
	emu := newTestEMU(t, DefaultQuirks(), 1, 0xD015)
	emu.I = 0xFFD

	assert.True(t, errors.Is(emu.step(), ErrMemoryOutOfBounds))
}

func TestModeSwitchOps(t *testing.T) {
	emu := newTestEMU(t, SuperChipQuirks(), 1, 0x00FF, 0x00FE)

	run(t, emu, 1)
	assert.Equal(t, HiresWidth, emu.display.Width())

	run(t, emu, 1)
	assert.Equal(t, LoresWidth, emu.display.Width())
}
