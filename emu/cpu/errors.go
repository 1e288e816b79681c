package cpu

import (
	"errors"
	"fmt"
)

// Load-time errors. These are reported by NewEMU and prevent a session from
// starting.
var (
	ErrROMTooLarge      = errors.New("ROM does not fit in program memory")
	ErrFontSizeMismatch = errors.New("font data does not match glyph format")
)

// Runtime fault kinds. Every runtime fault returned by Tick wraps one of
// these in a *Fault carrying the faulting address and instruction word.
var (
	ErrInvalidOpcode     = errors.New("unrecognized instruction")
	ErrStackUnderflow    = errors.New("return with empty call stack")
	ErrStackOverflow     = errors.New("call stack limit exceeded")
	ErrMemoryOutOfBounds = errors.New("memory access outside addressable range")
	ErrInvalidKey        = errors.New("key index out of range")
	ErrInvalidDigit      = errors.New("font digit out of range")
)

// Fault is a runtime fault raised by the dispatcher. It records where
// execution stopped and which instruction word was being executed.
type Fault struct {
	Addr uint16
	Op   Opcode
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v: instruction %s at 0x%03X", f.Err, f.Op, f.Addr)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func (emu *EMU) fault(kind error) error {
	return &Fault{Addr: emu.lastPC, Op: emu.opcode, Err: kind}
}
