package nes

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	inesMagic        = 0x1a53454e
	inesHeaderSize   = 16
	trainerSizeBytes = 512
	prgBankSizeBytes = 0x4000
	chrBankSizeBytes = 0x2000
)

type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "???"
}

// Cart is an immutable cartridge image. It is shared by the bus (program
// data) and the PPU (pattern data) for the whole session.
type Cart struct {
	pgrMem  []uint8
	chrMem  []uint8
	trainer []uint8

	pgrBanks uint8
	chrBanks uint8
	mapperID uint8
	mirror   Mirroring
	battery  bool

	mapper Mapper
}

type inesHeader struct {
	Magic      uint32
	PrgRomSize uint8
	ChrRomSize uint8
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	_          [5]uint8 // unused
}

// NewCartFromFile reads a .nes file and returns a Cart.
// Supported NES format: iNES
func NewCartFromFile(path string) (*Cart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the file: %w", err)
	}
	return NewCartFromBytes(data)
}

// NewCartFromBytes parses an iNES image held in memory.
func NewCartFromBytes(data []byte) (*Cart, error) {
	if len(data) < inesHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformedImage, len(data))
	}

	r := bytes.NewReader(data)
	var header inesHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: couldn't read the header: %s", ErrMalformedImage, err)
	}
	if header.Magic != inesMagic {
		return nil, fmt.Errorf("%w: invalid header magic", ErrMalformedImage)
	}

	// flag6 and flag7 contain part of the mapper ID in 4 high bits
	// flag6: lower 4 bits of mapper ID
	// flag7: upper 4 bits of mapper ID
	mapperID := (header.Flags7 & 0xf0) | (header.Flags6 >> 4)

	mirror := MirrorHorizontal
	switch {
	case header.Flags6&0x8 != 0:
		mirror = MirrorFourScreen
	case header.Flags6&0x1 != 0:
		mirror = MirrorVertical
	}

	cart := &Cart{
		pgrMem:   make([]uint8, int(header.PrgRomSize)*prgBankSizeBytes),
		chrMem:   make([]uint8, int(header.ChrRomSize)*chrBankSizeBytes),
		pgrBanks: header.PrgRomSize,
		chrBanks: header.ChrRomSize,
		mapperID: mapperID,
		mirror:   mirror,
		battery:  header.Flags6&0x2 != 0,
	}

	// the third bit of flags6 is the trainer flag
	if header.Flags6&0x4 != 0 {
		cart.trainer = make([]uint8, trainerSizeBytes)
		if err := readSection(r, cart.trainer, "trainer"); err != nil {
			return nil, err
		}
	}
	if err := readSection(r, cart.pgrMem, "PRG ROM"); err != nil {
		return nil, err
	}
	if err := readSection(r, cart.chrMem, "CHR ROM"); err != nil {
		return nil, err
	}

	if err := cart.init(); err != nil {
		return nil, err
	}
	return cart, nil
}

// NewCart builds a cartridge from already separated program and pattern
// data. An empty chr means the PPU uses pattern RAM.
func NewCart(pgr, chr []uint8, mirror Mirroring, mapperID uint8) (*Cart, error) {
	cart := &Cart{
		pgrMem:   append([]uint8(nil), pgr...),
		chrMem:   append([]uint8(nil), chr...),
		pgrBanks: uint8(len(pgr) / prgBankSizeBytes),
		chrBanks: uint8(len(chr) / chrBankSizeBytes),
		mapperID: mapperID,
		mirror:   mirror,
	}
	if err := cart.init(); err != nil {
		return nil, err
	}
	return cart, nil
}

func (c *Cart) init() error {
	if c.mirror == MirrorFourScreen {
		return ErrUnsupportedMirroring
	}
	mapper, err := NewMapper(c)
	if err != nil {
		return err
	}
	c.mapper = mapper
	return nil
}

func readSection(r io.Reader, dst []uint8, name string) error {
	if len(dst) == 0 {
		return nil
	}
	n, err := io.ReadFull(r, dst)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: expected %d bytes, read %d bytes", ErrMalformedImage, name, len(dst), n)
	}
	if err != nil {
		return fmt.Errorf("couldn't read %s: %w", name, err)
	}
	return nil
}

// PRG, CHR and Trainer return copies; the image never changes after load.
func (c *Cart) PRG() []uint8     { return append([]uint8(nil), c.pgrMem...) }
func (c *Cart) CHR() []uint8     { return append([]uint8(nil), c.chrMem...) }
func (c *Cart) Trainer() []uint8 { return append([]uint8(nil), c.trainer...) }

func (c *Cart) MapperID() uint8      { return c.mapperID }
func (c *Cart) Mirroring() Mirroring { return c.mirror }
func (c *Cart) HasBattery() bool     { return c.battery }
func (c *Cart) Mapper() Mapper       { return c.mapper }

// HasCHRRAM reports whether pattern memory is RAM provided by the console
// rather than ROM on the cartridge.
func (c *Cart) HasCHRRAM() bool { return len(c.chrMem) == 0 }
