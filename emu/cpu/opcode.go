package cpu

import "fmt"

// Opcode is one big-endian 16-bit CHIP-8 instruction word.
type Opcode uint16

// Family returns the leading nibble, which selects the opcode family.
func (op Opcode) Family() uint8 {
	return uint8(op >> 12)
}

// X returns the register index encoded in the second nibble.
func (op Opcode) X() int {
	return int(op>>8) & 0xF
}

// Y returns the register index encoded in the third nibble.
func (op Opcode) Y() int {
	return int(op>>4) & 0xF
}

// N returns the trailing nibble.
func (op Opcode) N() uint8 {
	return uint8(op) & 0xF
}

// NN returns the trailing byte.
func (op Opcode) NN() uint8 {
	return uint8(op)
}

// NNN returns the trailing 12-bit address.
func (op Opcode) NNN() uint16 {
	return uint16(op) & 0xFFF
}

func (op Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(op))
}
