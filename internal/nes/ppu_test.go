package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPPU(t *testing.T, chr []uint8, mirror Mirroring) *PPU {
	t.Helper()
	cart, err := NewCart(make([]uint8, prgBankSizeBytes), chr, mirror, 0)
	require.NoError(t, err)
	return NewPPU(cart)
}

func setAddr(p *PPU, addr uint16) {
	p.WriteRegister(0x2006, uint8(addr>>8))
	p.WriteRegister(0x2006, uint8(addr))
}

func Test_PPU_AddressLatch(t *testing.T) {
	t.Run("two writes", func(t *testing.T) {
		p := newTestPPU(t, nil, MirrorHorizontal)
		p.WriteRegister(0x2006, 0x21)
		assert.True(t, p.w)
		assert.Equal(t, uint16(0), p.VRAMAddr(), "first write does not commit")

		p.WriteRegister(0x2006, 0x08)
		assert.False(t, p.w)
		assert.Equal(t, uint16(0x2108), p.VRAMAddr())
	})

	t.Run("high bits dropped", func(t *testing.T) {
		p := newTestPPU(t, nil, MirrorHorizontal)
		setAddr(p, 0xff12)
		assert.Equal(t, uint16(0x3f12), p.VRAMAddr())
	})

	t.Run("other registers keep the toggle", func(t *testing.T) {
		p := newTestPPU(t, nil, MirrorHorizontal)
		p.WriteRegister(0x2006, 0x23)
		_ = p.ReadRegister(0x2002)
		p.WriteRegister(0x2005, 0x11)
		p.WriteRegister(0x2000, 0x00)
		p.WriteRegister(0x2006, 0x45)
		assert.Equal(t, uint16(0x2345), p.VRAMAddr())
	})
}

func Test_PPU_AutoIncrement(t *testing.T) {
	tests := []struct {
		name  string
		ctrl  uint8
		start uint16
		n     int
		step  int
	}{
		{name: "+1", ctrl: 0, start: 0x2000, n: 10, step: 1},
		{name: "+32", ctrl: ctrlIncrement32, start: 0x2000, n: 10, step: 32},
		{name: "+1 wraps", ctrl: 0, start: 0x3ffe, n: 5, step: 1},
		{name: "+32 wraps", ctrl: ctrlIncrement32, start: 0x3fc0, n: 7, step: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name+" writes", func(t *testing.T) {
			p := newTestPPU(t, nil, MirrorVertical)
			p.WriteRegister(0x2000, tt.ctrl)
			setAddr(p, tt.start)
			for i := 0; i < tt.n; i++ {
				p.WriteRegister(0x2007, uint8(i))
			}
			assert.Equal(t, uint16((int(tt.start)+tt.step*tt.n)%0x4000), p.VRAMAddr())
		})

		t.Run(tt.name+" reads", func(t *testing.T) {
			p := newTestPPU(t, nil, MirrorVertical)
			p.WriteRegister(0x2000, tt.ctrl)
			setAddr(p, tt.start)
			for i := 0; i < tt.n; i++ {
				_ = p.ReadRegister(0x2007)
			}
			assert.Equal(t, uint16((int(tt.start)+tt.step*tt.n)%0x4000), p.VRAMAddr())
		})
	}
}

func Test_PPU_ReadBuffer(t *testing.T) {
	p := newTestPPU(t, nil, MirrorHorizontal)
	setAddr(p, 0x2000)
	p.WriteRegister(0x2007, 0xaa)
	p.WriteRegister(0x2007, 0xbb)

	setAddr(p, 0x2000)
	assert.Equal(t, uint8(0), p.ReadRegister(0x2007), "first read returns the stale buffer")
	assert.Equal(t, uint8(0xaa), p.ReadRegister(0x2007))
	assert.Equal(t, uint8(0xbb), p.ReadRegister(0x2007))
}

func Test_PPU_PatternMemory(t *testing.T) {
	t.Run("CHR RAM is writable", func(t *testing.T) {
		p := newTestPPU(t, nil, MirrorHorizontal)
		setAddr(p, 0x0010)
		p.WriteRegister(0x2007, 0x3c)

		setAddr(p, 0x0010)
		_ = p.ReadRegister(0x2007)
		assert.Equal(t, uint8(0x3c), p.ReadRegister(0x2007))
	})

	t.Run("CHR ROM ignores writes", func(t *testing.T) {
		chr := make([]uint8, chrBankSizeBytes)
		chr[0x10] = 0x81
		p := newTestPPU(t, chr, MirrorHorizontal)

		setAddr(p, 0x0010)
		p.WriteRegister(0x2007, 0x3c)
		assert.Equal(t, uint8(0x81), p.read8(0x0010))
	})
}

func Test_PPU_NametableMirroring(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		assert.Equal(t, MirrorVertical.nametableIndex(0x2000), MirrorVertical.nametableIndex(0x2800))
		assert.Equal(t, MirrorVertical.nametableIndex(0x2400), MirrorVertical.nametableIndex(0x2c00))
		assert.NotEqual(t, MirrorVertical.nametableIndex(0x2000), MirrorVertical.nametableIndex(0x2400))
		assert.Equal(t, uint16(0x7ff), MirrorVertical.nametableIndex(0x2fff))
	})

	t.Run("horizontal", func(t *testing.T) {
		assert.Equal(t, MirrorHorizontal.nametableIndex(0x2000), MirrorHorizontal.nametableIndex(0x2400))
		assert.Equal(t, MirrorHorizontal.nametableIndex(0x2800), MirrorHorizontal.nametableIndex(0x2c00))
		assert.NotEqual(t, MirrorHorizontal.nametableIndex(0x2000), MirrorHorizontal.nametableIndex(0x2800))
		assert.Equal(t, uint16(0x400), MirrorHorizontal.nametableIndex(0x2800))
		assert.Equal(t, uint16(0x7ff), MirrorHorizontal.nametableIndex(0x2fff))
	})

	t.Run("$3000-$3EFF mirrors $2000", func(t *testing.T) {
		p := newTestPPU(t, nil, MirrorVertical)
		setAddr(p, 0x3005)
		p.WriteRegister(0x2007, 0x99)
		assert.Equal(t, uint8(0x99), p.read8(0x2005))
		assert.Equal(t, uint8(0x99), p.read8(0x2805))
	})
}

func Test_PPU_Palette(t *testing.T) {
	p := newTestPPU(t, nil, MirrorHorizontal)

	// sprite backdrop entries alias the background ones
	for _, addr := range []uint16{0x3f10, 0x3f14, 0x3f18, 0x3f1c} {
		setAddr(p, addr)
		p.WriteRegister(0x2007, uint8(addr))
		assert.Equal(t, uint8(addr), p.read8(addr-0x10))
	}

	// other sprite entries are distinct
	setAddr(p, 0x3f11)
	p.WriteRegister(0x2007, 0x2a)
	assert.Equal(t, uint8(0x2a), p.read8(0x3f11))
	assert.NotEqual(t, uint8(0x2a), p.read8(0x3f01))

	// $3F20-$3FFF mirror $3F00-$3F1F
	assert.Equal(t, p.read8(0x3f11), p.read8(0x3ff1))
	assert.Equal(t, p.read8(0x3f00), p.read8(0x3f30))
}

func Test_PPU_OAM(t *testing.T) {
	p := newTestPPU(t, nil, MirrorHorizontal)
	p.WriteRegister(0x2003, 0xfe)
	p.WriteRegister(0x2004, 0x01)
	p.WriteRegister(0x2004, 0x02)
	p.WriteRegister(0x2004, 0x03) // wraps to $00

	assert.Equal(t, uint8(0x01), p.oam[0xfe])
	assert.Equal(t, uint8(0x02), p.oam[0xff])
	assert.Equal(t, uint8(0x03), p.oam[0x00])

	p.WriteRegister(0x2003, 0xff)
	assert.Equal(t, uint8(0x02), p.ReadRegister(0x2004))
}

func Test_PPU_PatternTables(t *testing.T) {
	chr := make([]uint8, chrBankSizeBytes)
	// tile 1 of table 0, first row: low plane 0b1010_0000, high plane 0b1100_0000
	chr[0x10] = 0xa0
	chr[0x18] = 0xc0
	// tile 0 of table 1, every pixel is color 3
	for i := 0; i < 16; i++ {
		chr[0x1000+i] = 0xff
	}
	p := newTestPPU(t, chr, MirrorHorizontal)

	img := p.PatternTables()
	require.Equal(t, PatternTablesWidth, img.Bounds().Dx())
	require.Equal(t, PatternTablesHeight, img.Bounds().Dy())

	assert.Equal(t, debugShades[3], img.RGBAAt(8, 0))
	assert.Equal(t, debugShades[2], img.RGBAAt(9, 0))
	assert.Equal(t, debugShades[1], img.RGBAAt(10, 0))
	assert.Equal(t, debugShades[0], img.RGBAAt(11, 0))
	assert.Equal(t, debugShades[3], img.RGBAAt(128, 0))
	assert.Equal(t, debugShades[3], img.RGBAAt(135, 7))
	assert.Equal(t, debugShades[0], img.RGBAAt(0, 0))
}

func Test_PPU_Nametables(t *testing.T) {
	chr := make([]uint8, chrBankSizeBytes)
	// tile 2 of table 0 is solid color 1, tile 2 of table 1 solid color 2
	for i := 0; i < 8; i++ {
		chr[0x20+i] = 0xff
		chr[0x1028+i] = 0xff
	}
	p := newTestPPU(t, chr, MirrorVertical)
	setAddr(p, 0x2400+32+1) // nametable 1, row 1, column 1
	p.WriteRegister(0x2007, 2)

	img := p.Nametables()
	require.Equal(t, NametablesWidth, img.Bounds().Dx())
	require.Equal(t, NametablesHeight, img.Bounds().Dy())
	assert.Equal(t, debugShades[1], img.RGBAAt(256+8, 8))
	assert.Equal(t, debugShades[0], img.RGBAAt(8, 8))

	p.WriteRegister(0x2000, ctrlBgPatternHigh)
	img = p.Nametables()
	assert.Equal(t, debugShades[2], img.RGBAAt(256+15, 15))
}

func Test_PPU_Nametables_Horizontal(t *testing.T) {
	chr := make([]uint8, chrBankSizeBytes)
	// tile 2 of table 0 is solid color 1
	for i := 0; i < 8; i++ {
		chr[0x20+i] = 0xff
	}
	p := newTestPPU(t, chr, MirrorHorizontal)
	// $2800 is the second physical nametable under horizontal mirroring
	setAddr(p, 0x2800+32+1)
	p.WriteRegister(0x2007, 2)
	require.Equal(t, uint8(2), p.vram[nametableSizeBytes+32+1])

	img := p.Nametables()
	assert.Equal(t, debugShades[1], img.RGBAAt(256+8, 8))
	assert.Equal(t, debugShades[0], img.RGBAAt(8, 8), "first nametable untouched")
}

func Test_PPU_Tick(t *testing.T) {
	p := newTestPPU(t, nil, MirrorHorizontal)
	p.Tick(dotsPerScanline + 5)
	assert.Equal(t, uint16(1), p.Scanline())
	assert.Equal(t, uint16(5), p.Dot())

	p.Tick(dotsPerScanline*scanlinesPerFrame - dotsPerScanline - 5)
	assert.Equal(t, uint64(1), p.Frame())
	assert.Equal(t, uint16(0), p.Scanline())
	assert.Equal(t, uint16(0), p.Dot())
}
