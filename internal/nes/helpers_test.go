package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestCart returns a one bank NROM cart with program copied to $8000
// and the reset and BRK vectors pointing at resetAt and brkAt.
func newTestCart(t *testing.T, program []uint8, resetAt, brkAt uint16) *Cart {
	t.Helper()

	prg := make([]uint8, prgBankSizeBytes)
	copy(prg, program)
	// $FFFC-$FFFF mirror the end of the bank
	prg[0x3ffc] = uint8(resetAt)
	prg[0x3ffd] = uint8(resetAt >> 8)
	prg[0x3ffe] = uint8(brkAt)
	prg[0x3fff] = uint8(brkAt >> 8)

	cart, err := NewCart(prg, nil, MirrorHorizontal, 0)
	require.NoError(t, err)
	return cart
}

// inesImage builds a raw iNES file.
func inesImage(prgBanks, chrBanks, flags6, flags7 uint8) []byte {
	data := []byte{'N', 'E', 'S', 0x1a, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	if flags6&0x4 != 0 {
		data = append(data, make([]byte, trainerSizeBytes)...)
	}
	data = append(data, make([]byte, int(prgBanks)*prgBankSizeBytes)...)
	data = append(data, make([]byte, int(chrBanks)*chrBankSizeBytes)...)
	return data
}

// flatMem is 64KB of plain RAM for exercising the CPU without a bus.
type flatMem struct {
	data [0x10000]uint8
}

func (m *flatMem) Read8(addr uint16) (uint8, error) {
	return m.data[addr], nil
}

func (m *flatMem) Write8(addr uint16, data uint8) error {
	m.data[addr] = data
	return nil
}

func (m *flatMem) Peek8(addr uint16) (uint8, error) {
	return m.data[addr], nil
}

func (m *flatMem) load(addr uint16, program ...uint8) {
	for i, b := range program {
		m.data[addr+uint16(i)] = b
	}
}
