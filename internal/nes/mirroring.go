package nes

const (
	nametableSizeBytes = 0x400
	vramSizeBytes      = 2 * nametableSizeBytes
)

// nametableIndex reduces a logical nametable address ($2000-$3EFF) to an
// index into the 2KB of physical VRAM.
//
//	horizontal: $2000 = $2400, $2800 = $2C00
//	vertical:   $2000 = $2800, $2400 = $2C00
func (m Mirroring) nametableIndex(addr uint16) uint16 {
	addr &= 0x0FFF
	switch m {
	case MirrorHorizontal:
		return (addr>>1)&nametableSizeBytes | addr&(nametableSizeBytes-1)
	default:
		// four-screen carts are rejected at load, vertical is the fallback
		return addr & (vramSizeBytes - 1)
	}
}
