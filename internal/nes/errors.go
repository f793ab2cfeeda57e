package nes

import (
	"errors"
	"fmt"
)

// ErrMalformedImage is returned by the cartridge loader when the buffer
// is not a usable iNES image.
var ErrMalformedImage = errors.New("malformed cartridge image")

// ErrUnsupportedMirroring is returned for four-screen cartridges.
var ErrUnsupportedMirroring = errors.New("unsupported nametable mirroring")

type UnsupportedMapperError struct {
	ID uint8
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper %d", e.ID)
}

// UnmappedAccessError reports a CPU access to an address that no device owns.
type UnmappedAccessError struct {
	Addr  uint16
	Write bool
}

func (e *UnmappedAccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("unmapped %s at $%04X", op, e.Addr)
}

// OutOfBoundsROMError reports a ROM access past the end of the program data.
type OutOfBoundsROMError struct {
	Addr   uint16
	Offset int
	Size   int
}

func (e *OutOfBoundsROMError) Error() string {
	return fmt.Sprintf("rom access at $%04X: offset %d out of %d bytes", e.Addr, e.Offset, e.Size)
}

type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %02X at $%04X", e.Opcode, e.PC)
}
