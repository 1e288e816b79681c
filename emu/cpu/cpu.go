// Package cpu implements the CHIP-8 virtual machine core: memory, registers,
// call stack, display buffer, timers, keypad and the instruction dispatcher.
// The core is driven by a host scheduler through Tick and knows nothing about
// windows, audio devices or files.
package cpu

import (
	"math/rand"
	"time"
)

const (
	// MemorySize is the addressable range of the machine, 0x000-0xFFF.
	MemorySize = 4096

	// LoadBase is the conventional program load address.
	LoadBase = 0x200

	bigFontBase = FontSize
)

// Config is the session configuration consumed once at creation.
type Config struct {
	// InstructionsPerTick is the dispatcher batch size per scheduler tick.
	// Zero is valid and produces timer-only ticks.
	InstructionsPerTick int

	// TickRate is the scheduler rate in Hz. The core itself never consults
	// it; frontends use it to pace their tick loop.
	TickRate int

	// LoadBase overrides the program load address. Zero means 0x200.
	LoadBase uint16

	// Quirks selects the interpreter behavior profile.
	Quirks Quirks

	// Colors is carried onto every Snapshot, uninterpreted by the core.
	Colors ColorMap

	// RandSeed seeds the RND opcode. Zero seeds from the wall clock.
	RandSeed int64
}

// DefaultConfig returns the conventional CHIP-8 session settings: 60 ticks
// per second, roughly 700 instructions per second, original interpreter
// quirks.
func DefaultConfig() Config {
	return Config{
		InstructionsPerTick: 12,
		TickRate:            60,
		Quirks:              DefaultQuirks(),
		Colors:              ColorMap{On: "#FFFFFF", Off: "#000000"},
	}
}

// EMU is one emulation session. All mutable machine state is owned by the
// value; none of it is shared between sessions, so independent sessions can
// run side by side. Only the keypad may be written from another goroutine.
type EMU struct {
	memory [MemorySize]uint8
	V      [16]uint8
	I      uint16
	pc     uint16
	stack  []uint16

	display *Display
	timers  Timers
	keypad  Keypad
	keys    [KeyCount]bool
	quirks  Quirks
	rng     *rand.Rand
	rpl     [8]uint8

	loadBase uint16
	ipt      int
	tickRate int
	colors   ColorMap

	opcode  Opcode
	lastPC  uint16
	yield   bool
	halted  bool
	faulted error
}

// NewEMU builds a session, loads the font and the ROM, and leaves the
// machine ready for the first Tick. A nil font selects the built-in glyphs.
func NewEMU(cfg Config, rom []byte, font []byte) (*EMU, error) {
	loadBase := cfg.LoadBase
	if loadBase == 0 {
		loadBase = LoadBase
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	emu := &EMU{
		display:  newDisplay(cfg.Quirks.WrapSprites),
		quirks:   cfg.Quirks,
		rng:      rand.New(rand.NewSource(seed)),
		loadBase: loadBase,
		ipt:      cfg.InstructionsPerTick,
		tickRate: cfg.TickRate,
		colors:   cfg.Colors,
		pc:       loadBase,
	}

	if err := emu.loadFont(font); err != nil {
		return nil, err
	}
	if err := emu.loadROM(rom); err != nil {
		return nil, err
	}
	return emu, nil
}

// loadFont writes the glyph sprites to the bottom of memory. A custom font
// is either the 80-byte low-resolution set or that set followed by the
// 100-byte high-resolution set.
func (emu *EMU) loadFont(font []byte) error {
	switch len(font) {
	case 0:
		copy(emu.memory[:FontSize], FontSet[:])
		copy(emu.memory[bigFontBase:bigFontBase+BigFontSize], BigFontSet[:])
	case FontSize:
		copy(emu.memory[:FontSize], font)
		copy(emu.memory[bigFontBase:bigFontBase+BigFontSize], BigFontSet[:])
	case FontSize + BigFontSize:
		copy(emu.memory[:FontSize+BigFontSize], font)
	default:
		return ErrFontSizeMismatch
	}
	return nil
}

func (emu *EMU) loadROM(rom []byte) error {
	if len(rom) > MemorySize-int(emu.loadBase) {
		return ErrROMTooLarge
	}
	copy(emu.memory[emu.loadBase:], rom)
	return nil
}

// Reset returns the machine to its initial state. Memory, including the
// loaded program and font, is retained; registers, stack, timers, display
// and any fault are cleared.
func (emu *EMU) Reset() {
	emu.V = [16]uint8{}
	emu.I = 0
	emu.pc = emu.loadBase
	emu.stack = emu.stack[:0]
	emu.timers = Timers{}
	emu.display.SetHires(false)
	emu.display.Clear()
	emu.keypad.Release()
	emu.keys = [KeyCount]bool{}
	emu.opcode = 0
	emu.lastPC = 0
	emu.yield = false
	emu.halted = false
	emu.faulted = nil
}

// Tick runs one scheduler step: up to InstructionsPerTick instructions, then
// one timer decrement. It returns the display snapshot for this frame, the
// sound gate, and the fault that stopped the batch, if any. After a fault
// the session stays halted and inspectable; every later Tick returns the
// same fault until Reset.
func (emu *EMU) Tick() (Snapshot, bool, error) {
	if emu.faulted != nil {
		return emu.display.Snapshot(emu.colors), false, emu.faulted
	}

	emu.keys = emu.keypad.latch()

	for i := 0; i < emu.ipt && !emu.halted; i++ {
		if err := emu.step(); err != nil {
			emu.faulted = err
			break
		}
		if emu.yield {
			emu.yield = false
			break
		}
	}

	gate := emu.timers.SoundGate() && emu.faulted == nil
	emu.timers.tick()

	return emu.display.Snapshot(emu.colors), gate, emu.faulted
}

// step fetches, decodes and executes a single instruction.
func (emu *EMU) step() error {
	if int(emu.pc)+1 >= MemorySize {
		emu.lastPC = emu.pc
		emu.opcode = 0
		return emu.fault(ErrMemoryOutOfBounds)
	}

	emu.lastPC = emu.pc
	emu.opcode = Opcode(uint16(emu.memory[emu.pc])<<8 | uint16(emu.memory[emu.pc+1]))
	emu.pc += 2

	return dispatch[emu.opcode.Family()](emu, emu.opcode)
}

// SetKey records an externally observed key press or release. Safe to call
// from the host input thread while the session runs.
func (emu *EMU) SetKey(idx int, pressed bool) {
	emu.keypad.Set(idx, pressed)
}

// TimerValues reports the current delay and sound counters, for diagnostics.
func (emu *EMU) TimerValues() (delay, sound uint8) {
	return emu.timers.Values()
}

// Halted reports whether the program exited through the SUPER-CHIP exit
// instruction.
func (emu *EMU) Halted() bool {
	return emu.halted
}

// Fault returns the fault the session stopped on, if any.
func (emu *EMU) Fault() error {
	return emu.faulted
}

// TickRate returns the configured scheduler rate in Hz.
func (emu *EMU) TickRate() int {
	return emu.tickRate
}

// RPLFlags returns the SUPER-CHIP user flag registers.
func (emu *EMU) RPLFlags() [8]uint8 {
	return emu.rpl
}

// SetRPLFlags seeds the SUPER-CHIP user flag registers, typically from a
// host data file before the session starts.
func (emu *EMU) SetRPLFlags(flags [8]uint8) {
	emu.rpl = flags
}
