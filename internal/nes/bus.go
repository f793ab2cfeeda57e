package nes

// Bus owns everything the CPU can reach: work RAM, the PPU and the
// cartridge. It only routes accesses by address range; see mem.go.
type Bus struct {
	ram  *RAM
	ppu  *PPU
	cart *Cart
}

func NewBus(cart *Cart) *Bus {
	return &Bus{
		ram:  NewRAM(),
		ppu:  NewPPU(cart),
		cart: cart,
	}
}

func (b *Bus) PPU() *PPU   { return b.ppu }
func (b *Bus) Cart() *Cart { return b.cart }
