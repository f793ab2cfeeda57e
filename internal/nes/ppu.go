package nes

const (
	patternRAMSizeBytes = 0x2000
	oamSizeBytes        = 0x100

	dotsPerScanline   = 341
	scanlinesPerFrame = 262
)

// PPUCTRL bits the PPU acts on
const (
	ctrlIncrement32   = uint8(1 << 2) // VRAM address increment: 0 = +1, 1 = +32
	ctrlBgPatternHigh = uint8(1 << 4) // background pattern table at $1000
)

// PPU register indexes (address & 7)
const (
	regCtrl = iota
	regMask
	regStatus
	regOAMAddr
	regOAMData
	regScroll
	regAddr
	regData
)

type PPU struct {
	cart *Cart

	patterns    []uint8 // CHR ROM from the cart, or CHR RAM
	patternsRAM bool
	vram        [vramSizeBytes]uint8
	palette     [0x20]uint8
	oam         [oamSizeBytes]uint8

	ctrl    uint8
	oamaddr uint8

	v          uint16 // live VRAM address
	t          uint16 // shadow address filled by the two $2006 writes
	w          bool   // write toggle
	readBuffer uint8

	cycle    uint16
	scanLine uint16
	frame    uint64
}

func NewPPU(cart *Cart) *PPU {
	p := &PPU{cart: cart}
	if cart.HasCHRRAM() {
		p.patterns = make([]uint8, patternRAMSizeBytes)
		p.patternsRAM = true
	} else {
		// CHR ROM is never written, the PPU keeps its own copy anyway
		p.patterns = cart.CHR()
	}
	return p
}

// ReadRegister handles a CPU read of $2000-$2007.
// Only OAMDATA and PPUDATA hold readable state.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x7 {
	case regOAMData:
		return p.oam[p.oamaddr]
	case regData:
		return p.readData()
	}
	return 0
}

func (p *PPU) peekRegister(addr uint16) uint8 {
	switch addr & 0x7 {
	case regOAMData:
		return p.oam[p.oamaddr]
	case regData:
		return p.readBuffer
	}
	return 0
}

// WriteRegister handles a CPU write of $2000-$2007.
// PPUMASK, PPUSTATUS and PPUSCROLL are accepted and dropped.
func (p *PPU) WriteRegister(addr uint16, data uint8) {
	switch addr & 0x7 {
	case regCtrl:
		p.ctrl = data
	case regOAMAddr:
		p.oamaddr = data
	case regOAMData:
		p.oam[p.oamaddr] = data
		p.oamaddr++
	case regAddr:
		p.writeAddr(data)
	case regData:
		p.writeData(data)
	}
}

func (p *PPU) writeAddr(data uint8) {
	if !p.w {
		// top 2 bits are dropped, the address space is 14 bits wide
		p.t = uint16(data&0x3F) << 8
	} else {
		p.t |= uint16(data)
		p.v = p.t
	}
	p.w = !p.w
}

// readData returns the byte fetched by the previous read and buffers the
// byte at the current address.
func (p *PPU) readData() uint8 {
	data := p.readBuffer
	p.readBuffer = p.read8(p.v)
	p.incrementAddr()
	return data
}

func (p *PPU) writeData(data uint8) {
	p.write8(p.v, data)
	p.incrementAddr()
}

func (p *PPU) incrementAddr() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= ppuAddrMask
}

// VRAMAddr returns the live VRAM address.
func (p *PPU) VRAMAddr() uint16 {
	return p.v
}

// Tick advances the dot clock by n PPU cycles.
func (p *PPU) Tick(n int) {
	for ; n > 0; n-- {
		p.cycle++
		if p.cycle < dotsPerScanline {
			continue
		}
		p.cycle = 0
		p.scanLine++
		if p.scanLine >= scanlinesPerFrame {
			p.scanLine = 0
			p.frame++
		}
	}
}

func (p *PPU) Dot() uint16      { return p.cycle }
func (p *PPU) Scanline() uint16 { return p.scanLine }
func (p *PPU) Frame() uint64    { return p.frame }
