package nes

// Memory is the CPU's view of the address space.
type Memory interface {
	Read8(addr uint16) (uint8, error)
	Write8(addr uint16, data uint8) error
	// Peek8 reads like Read8 but never changes device state. Used by
	// tracing and disassembly.
	Peek8(addr uint16) (uint8, error)
}

// $0000-$07FF: 2 KB of internal RAM
// $0800-$1FFF: Mirrors of $0000-$07FF
// $2000-$2007: PPU (Picture Processing Unit) registers
// $2008-$3FFF: Mirrors of $2000-$2007 (every 8 bytes)
// $4000-$4017: APU (Audio Processing Unit) and I/O registers (stub)
// $4018-$7FFF: not mapped
// $8000-$FFFF: PRG ROM through the cartridge mapper
const (
	ppuRegWindowStart = 0x2000
	ppuRegWindowEnd   = 0x3FFF
	ppuRegMask        = 0x2007
	ioWindowStart     = 0x4000
	ioWindowEnd       = 0x4017
	romWindowStart    = 0x8000
)

func (b *Bus) Read8(addr uint16) (uint8, error) {
	return b.read8(addr, false)
}

func (b *Bus) Peek8(addr uint16) (uint8, error) {
	return b.read8(addr, true)
}

func (b *Bus) read8(addr uint16, peek bool) (uint8, error) {
	switch {
	// read from ram
	case addr <= ramWindowEnd:
		return b.ram.Read8(addr), nil
	// read from ppu
	case addr <= ppuRegWindowEnd:
		if peek {
			return b.ppu.peekRegister(addr & ppuRegMask), nil
		}
		return b.ppu.ReadRegister(addr & ppuRegMask), nil
	// read from apu and io
	case addr >= ioWindowStart && addr <= ioWindowEnd:
		return 0, nil
	// read from cartridge
	case addr >= romWindowStart:
		return b.readROM(addr)
	}
	return 0, &UnmappedAccessError{Addr: addr}
}

func (b *Bus) Write8(addr uint16, data uint8) error {
	switch {
	// write to ram
	case addr <= ramWindowEnd:
		b.ram.Write8(addr, data)
		return nil
	// write to ppu
	case addr <= ppuRegWindowEnd:
		b.ppu.WriteRegister(addr&ppuRegMask, data)
		return nil
	// write to apu and io
	case addr >= ioWindowStart && addr <= ioWindowEnd:
		return nil
	// mapper 0 has no registers, ROM ignores writes
	case addr >= romWindowStart:
		return nil
	}
	return &UnmappedAccessError{Addr: addr, Write: true}
}

func (b *Bus) readROM(addr uint16) (uint8, error) {
	offset, ok := b.cart.mapper.CPUOffset(addr)
	if !ok {
		return 0, &UnmappedAccessError{Addr: addr}
	}
	prg := b.cart.pgrMem
	if offset >= len(prg) {
		return 0, &OutOfBoundsROMError{Addr: addr, Offset: offset, Size: len(prg)}
	}
	return prg[offset], nil
}

// $0000-$0FFF: Pattern table 0
// $1000-$1FFF: Pattern table 1
// $2000-$23FF: Nametable 0
// $2400-$27FF: Nametable 1
// $2800-$2BFF: Nametable 2
// $2C00-$2FFF: Nametable 3
// $3000-$3EFF: Mirrors of $2000-$2EFF
// $3F00-$3F1F: Palette RAM indexes
// $3F20-$3FFF: Mirrors of $3F00-$3F1F
const (
	ppuAddrMask         = 0x3FFF
	nametableStart      = 0x2000
	paletteStart        = 0x3F00
	paletteMask         = 0x1F
	paletteBackdropMask = 0x0F
)

func (p *PPU) read8(addr uint16) uint8 {
	addr &= ppuAddrMask
	switch {
	case addr < nametableStart:
		offset, ok := p.cart.mapper.PPUOffset(addr)
		if !ok || offset >= len(p.patterns) {
			return 0
		}
		return p.patterns[offset]
	case addr < paletteStart:
		return p.vram[p.cart.mirror.nametableIndex(addr)]
	default:
		return p.palette[paletteIndex(addr)]
	}
}

func (p *PPU) write8(addr uint16, data uint8) {
	addr &= ppuAddrMask
	switch {
	case addr < nametableStart:
		// pattern ROM is read-only
		if !p.patternsRAM {
			return
		}
		offset, ok := p.cart.mapper.PPUOffset(addr)
		if !ok || offset >= len(p.patterns) {
			return
		}
		p.patterns[offset] = data
	case addr < paletteStart:
		p.vram[p.cart.mirror.nametableIndex(addr)] = data
	default:
		p.palette[paletteIndex(addr)] = data
	}
}

// paletteIndex folds a palette address into the 32 byte palette RAM.
// Entry 0 of every sprite palette ($3F10/$3F14/$3F18/$3F1C) is the
// matching background entry.
func paletteIndex(addr uint16) uint16 {
	i := addr & paletteMask
	if i&0x3 == 0 {
		i &= paletteBackdropMask
	}
	return i
}
