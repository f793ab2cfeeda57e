package nes

import (
	"image"
	"image/color"
)

const (
	PatternTablesWidth  = 256
	PatternTablesHeight = 128
	NametablesWidth     = 512
	NametablesHeight    = 240

	tileSize        = 8
	tileBytes       = 16
	patternTableLen = 0x1000
	tilesPerRow     = 16
	nametableCols   = 32
	nametableRows   = 30
)

// debugShades replaces the palette in debug images. Index is the 2 bit
// pixel value.
var debugShades = [4]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x55, 0x55, 0x55, 0xff},
	{0xaa, 0xaa, 0xaa, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// PatternTables draws both pattern tables side by side, 16x16 tiles each.
func (p *PPU) PatternTables() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PatternTablesWidth, PatternTablesHeight))
	for table := 0; table < 2; table++ {
		for tileY := 0; tileY < tilesPerRow; tileY++ {
			for tileX := 0; tileX < tilesPerRow; tileX++ {
				tile := uint16(tileY*tilesPerRow + tileX)
				base := uint16(table)*patternTableLen + tile*tileBytes
				p.drawTile(img, base, table*128+tileX*tileSize, tileY*tileSize)
			}
		}
	}
	return img
}

// Nametables draws the two physical nametables held in VRAM side by side
// using the background pattern table selected in PPUCTRL. Mirroring is not
// applied, so both halves of VRAM show up whatever the cartridge wiring.
func (p *PPU) Nametables() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, NametablesWidth, NametablesHeight))
	bank := uint16(0)
	if p.ctrl&ctrlBgPatternHigh != 0 {
		bank = patternTableLen
	}
	for nt := 0; nt < 2; nt++ {
		ntBase := nt * nametableSizeBytes
		for tileY := 0; tileY < nametableRows; tileY++ {
			for tileX := 0; tileX < nametableCols; tileX++ {
				tile := p.vram[ntBase+tileY*nametableCols+tileX]
				p.drawTile(img, bank+uint16(tile)*tileBytes, nt*256+tileX*tileSize, tileY*tileSize)
			}
		}
	}
	return img
}

// drawTile decodes one 2bpp tile: bytes 0-7 are the low bit planes of each
// row, bytes 8-15 the high bit planes.
func (p *PPU) drawTile(img *image.RGBA, base uint16, x, y int) {
	for row := uint16(0); row < tileSize; row++ {
		lo := p.read8(base + row)
		hi := p.read8(base + row + 8)
		for col := 0; col < tileSize; col++ {
			shift := 7 - col
			v := (hi>>shift&1)<<1 | lo>>shift&1
			img.SetRGBA(x+col, y+int(row), debugShades[v])
		}
	}
}
