package nes

// Mapper translates addresses seen by the CPU and the PPU into offsets
// inside the cartridge's program and pattern memory.
type Mapper interface {
	// CPUOffset maps a CPU address in the cartridge window ($8000-$FFFF)
	// to an offset in PRG memory. ok is false when the address is outside
	// the window the mapper serves.
	CPUOffset(addr uint16) (offset int, ok bool)
	// PPUOffset maps a PPU address in $0000-$1FFF to an offset in
	// pattern memory.
	PPUOffset(addr uint16) (offset int, ok bool)
}

func NewMapper(cart *Cart) (Mapper, error) {
	switch cart.mapperID {
	case 0:
		return &Mapper0{cart}, nil
	}
	return nil, &UnsupportedMapperError{ID: cart.mapperID}
}

// Mapper0 is NROM: no banking. 16KB images are mirrored into $C000-$FFFF.
type Mapper0 struct {
	cart *Cart
}

func (m Mapper0) CPUOffset(addr uint16) (int, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	if m.cart.pgrBanks > 1 {
		return int(addr & 0x7FFF), true
	}
	if m.cart.pgrBanks == 1 {
		return int(addr & 0x3FFF), true
	}
	// images built without whole banks map linearly from $8000
	return int(addr - 0x8000), true
}

func (m Mapper0) PPUOffset(addr uint16) (int, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return int(addr), true
}
