package cpu

// Quirks collects the behavioral toggles that reproduce divergent historical
// CHIP-8 interpreter behavior. A Quirks value is fixed when the EMU is
// created; changing quirks requires building a new session.
type Quirks struct {
	// ShiftUsesVY copies VY into VX before 8XY6/8XYE shift it.
	ShiftUsesVY bool

	// IncrementI advances I past the copied registers after FX55/FX65.
	IncrementI bool

	// JumpWithVX makes BNNN add VX instead of V0 to the jump target.
	JumpWithVX bool

	// WrapSprites wraps sprite pixels around the display edges instead of
	// clipping them.
	WrapSprites bool

	// VBlankWait makes DXYN yield the rest of the current instruction batch,
	// emulating interpreters that synchronized drawing with the display
	// refresh.
	VBlankWait bool

	// ResetVF zeroes VF after 8XY1/8XY2/8XY3.
	ResetVF bool

	// StackLimit caps the call stack depth. Zero means unbounded, which is
	// the historically faithful default.
	StackLimit int
}

// DefaultQuirks returns the toggles of the original COSMAC VIP interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftUsesVY: true,
		IncrementI:  true,
		JumpWithVX:  false,
		WrapSprites: false,
		VBlankWait:  true,
		ResetVF:     true,
	}
}

// SuperChipQuirks returns the toggles of the HP-48 SUPER-CHIP interpreter.
func SuperChipQuirks() Quirks {
	return Quirks{
		ShiftUsesVY: false,
		IncrementI:  false,
		JumpWithVX:  true,
		WrapSprites: false,
		VBlankWait:  false,
		ResetVF:     false,
	}
}
