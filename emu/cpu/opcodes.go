package cpu

// dispatch maps the leading nibble of an instruction to its family handler.
// Every handler is a pure transformation of (instruction, machine state,
// quirks); none of them touches the host.
var dispatch = [16]func(*EMU, Opcode) error{
	0x0: opSys,
	0x1: opJump,
	0x2: opCall,
	0x3: opSkipEqImm,
	0x4: opSkipNeImm,
	0x5: opSkipEqReg,
	0x6: opLoadImm,
	0x7: opAddImm,
	0x8: opALU,
	0x9: opSkipNeReg,
	0xA: opLoadIndex,
	0xB: opJumpOffset,
	0xC: opRandom,
	0xD: opDraw,
	0xE: opKeySkip,
	0xF: opMisc,
}

// opSys covers the 0NNN family: clear screen, subroutine return and the
// SUPER-CHIP mode controls. A genuine 0NNN machine-code call is ignored, as
// it would need an RCA 1802 core to mean anything.
func opSys(emu *EMU, op Opcode) error {
	switch op.NNN() {
	case 0x0E0:
		emu.display.Clear()
	case 0x0EE:
		if len(emu.stack) == 0 {
			return emu.fault(ErrStackUnderflow)
		}
		emu.pc = emu.stack[len(emu.stack)-1]
		emu.stack = emu.stack[:len(emu.stack)-1]
	case 0x0FD:
		emu.halted = true
		emu.yield = true
	case 0x0FE:
		emu.display.SetHires(false)
	case 0x0FF:
		emu.display.SetHires(true)
	}
	return nil
}

func opJump(emu *EMU, op Opcode) error {
	emu.pc = op.NNN()
	return nil
}

func opCall(emu *EMU, op Opcode) error {
	if emu.quirks.StackLimit > 0 && len(emu.stack) >= emu.quirks.StackLimit {
		return emu.fault(ErrStackOverflow)
	}
	emu.stack = append(emu.stack, emu.pc)
	emu.pc = op.NNN()
	return nil
}

func opSkipEqImm(emu *EMU, op Opcode) error {
	if emu.V[op.X()] == op.NN() {
		emu.pc += 2
	}
	return nil
}

func opSkipNeImm(emu *EMU, op Opcode) error {
	if emu.V[op.X()] != op.NN() {
		emu.pc += 2
	}
	return nil
}

func opSkipEqReg(emu *EMU, op Opcode) error {
	if emu.V[op.X()] == emu.V[op.Y()] {
		emu.pc += 2
	}
	return nil
}

func opSkipNeReg(emu *EMU, op Opcode) error {
	if emu.V[op.X()] != emu.V[op.Y()] {
		emu.pc += 2
	}
	return nil
}

func opLoadImm(emu *EMU, op Opcode) error {
	emu.V[op.X()] = op.NN()
	return nil
}

func opAddImm(emu *EMU, op Opcode) error {
	emu.V[op.X()] += op.NN()
	return nil
}

// opALU covers the 8XYN register-register family. VF is written last in
// every flag-setting case, so instructions naming VF as an operand still see
// the pre-instruction value.
func opALU(emu *EMU, op Opcode) error {
	x, y := op.X(), op.Y()

	switch op.N() {
	case 0x0:
		emu.V[x] = emu.V[y]
	case 0x1:
		emu.V[x] |= emu.V[y]
		if emu.quirks.ResetVF {
			emu.V[0xF] = 0
		}
	case 0x2:
		emu.V[x] &= emu.V[y]
		if emu.quirks.ResetVF {
			emu.V[0xF] = 0
		}
	case 0x3:
		emu.V[x] ^= emu.V[y]
		if emu.quirks.ResetVF {
			emu.V[0xF] = 0
		}
	case 0x4:
		sum := uint16(emu.V[x]) + uint16(emu.V[y])
		emu.V[x] = uint8(sum)
		emu.V[0xF] = uint8(sum >> 8)
	case 0x5:
		vx, vy := emu.V[x], emu.V[y]
		emu.V[x] = vx - vy
		emu.V[0xF] = flag(vx >= vy)
	case 0x7:
		vx, vy := emu.V[x], emu.V[y]
		emu.V[x] = vy - vx
		emu.V[0xF] = flag(vy >= vx)
	case 0x6:
		if emu.quirks.ShiftUsesVY {
			emu.V[x] = emu.V[y]
		}
		v := emu.V[x]
		emu.V[x] = v >> 1
		emu.V[0xF] = v & 1
	case 0xE:
		if emu.quirks.ShiftUsesVY {
			emu.V[x] = emu.V[y]
		}
		v := emu.V[x]
		emu.V[x] = v << 1
		emu.V[0xF] = v >> 7
	default:
		return emu.fault(ErrInvalidOpcode)
	}
	return nil
}

func opLoadIndex(emu *EMU, op Opcode) error {
	emu.I = op.NNN()
	return nil
}

func opJumpOffset(emu *EMU, op Opcode) error {
	base := emu.V[0]
	if emu.quirks.JumpWithVX {
		base = emu.V[op.X()]
	}
	emu.pc = op.NNN() + uint16(base)
	return nil
}

func opRandom(emu *EMU, op Opcode) error {
	emu.V[op.X()] = uint8(emu.rng.Intn(256)) & op.NN()
	return nil
}

// opDraw XORs an n-row sprite at (VX, VY). DXY0 draws a 16x16 sprite in
// hires mode and nothing in lores mode. VF receives the colliding row count
// in hires mode and a plain 0/1 collision flag in lores mode. With the
// vblank-wait quirk the rest of the instruction batch is yielded back to the
// scheduler.
func opDraw(emu *EMU, op Opcode) error {
	rows := int(op.N())
	wide := false
	if rows == 0 && emu.display.Hires() {
		rows = 16
		wide = true
	}

	size := rows
	if wide {
		size = rows * 2
	}
	if int(emu.I)+size > MemorySize {
		return emu.fault(ErrMemoryOutOfBounds)
	}

	sprite := emu.memory[emu.I : int(emu.I)+size]
	collided := emu.display.Draw(int(emu.V[op.X()]), int(emu.V[op.Y()]), sprite, wide)

	if emu.display.Hires() {
		emu.V[0xF] = uint8(collided)
	} else {
		emu.V[0xF] = flag(collided > 0)
	}

	if emu.quirks.VBlankWait {
		emu.yield = true
	}
	return nil
}

func opKeySkip(emu *EMU, op Opcode) error {
	key := emu.V[op.X()]
	if key >= KeyCount {
		return emu.fault(ErrInvalidKey)
	}

	switch op.NN() {
	case 0x9E:
		if emu.keys[key] {
			emu.pc += 2
		}
	case 0xA1:
		if !emu.keys[key] {
			emu.pc += 2
		}
	default:
		return emu.fault(ErrInvalidOpcode)
	}
	return nil
}

// opMisc covers the FXNN family: timers, key wait, index arithmetic, font
// lookups, BCD, register block transfer and the SUPER-CHIP user flags.
func opMisc(emu *EMU, op Opcode) error {
	x := op.X()

	switch op.NN() {
	case 0x07:
		emu.V[x] = emu.timers.delay

	case 0x0A:
		// Repeat this instruction until a key is down, yielding the batch
		// either way so the scheduler keeps ticking timers.
		if key := firstPressed(emu.keys); key >= 0 {
			emu.V[x] = uint8(key)
		} else {
			emu.pc -= 2
		}
		emu.yield = true

	case 0x15:
		emu.timers.setDelay(emu.V[x])

	case 0x18:
		emu.timers.setSound(emu.V[x])

	case 0x1E:
		emu.I = (emu.I + uint16(emu.V[x])) & 0xFFF

	case 0x29:
		code := emu.V[x]
		switch {
		case code < 16:
			emu.I = uint16(code) * GlyphSize
		case code&0x10 != 0 && code&0xF < 10:
			emu.I = bigFontBase + uint16(code&0xF)*BigGlyphSize
		default:
			return emu.fault(ErrInvalidDigit)
		}

	case 0x30:
		digit := emu.V[x]
		if digit >= 10 {
			return emu.fault(ErrInvalidDigit)
		}
		emu.I = bigFontBase + uint16(digit)*BigGlyphSize

	case 0x33:
		if int(emu.I)+2 >= MemorySize {
			return emu.fault(ErrMemoryOutOfBounds)
		}
		v := emu.V[x]
		emu.memory[emu.I] = v / 100
		emu.memory[emu.I+1] = v / 10 % 10
		emu.memory[emu.I+2] = v % 10

	case 0x55:
		if int(emu.I)+x >= MemorySize {
			return emu.fault(ErrMemoryOutOfBounds)
		}
		for i := 0; i <= x; i++ {
			emu.memory[int(emu.I)+i] = emu.V[i]
		}
		if emu.quirks.IncrementI {
			emu.I += uint16(x) + 1
		}

	case 0x65:
		if int(emu.I)+x >= MemorySize {
			return emu.fault(ErrMemoryOutOfBounds)
		}
		for i := 0; i <= x; i++ {
			emu.V[i] = emu.memory[int(emu.I)+i]
		}
		if emu.quirks.IncrementI {
			emu.I += uint16(x) + 1
		}

	case 0x75:
		for i := 0; i <= x && i < len(emu.rpl); i++ {
			emu.rpl[i] = emu.V[i]
		}

	case 0x85:
		for i := 0; i <= x && i < len(emu.rpl); i++ {
			emu.V[i] = emu.rpl[i]
		}

	default:
		return emu.fault(ErrInvalidOpcode)
	}
	return nil
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
