package nes

const (
	ramSizeBytes  = 0x800
	ramMirrorMask = ramSizeBytes - 1
	ramWindowEnd  = 0x1FFF
)

// RAM is the 2KB of internal work RAM. The $0000-$1FFF window holds four
// copies of it, so every address is folded with ramMirrorMask.
type RAM struct {
	ram [ramSizeBytes]uint8
}

func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) Read8(addr uint16) uint8 {
	return r.ram[addr&ramMirrorMask]
}

func (r *RAM) Write8(addr uint16, data uint8) {
	r.ram[addr&ramMirrorMask] = data
}
