package nes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewCartFromBytes_Malformed(t *testing.T) {
	t.Run("shorter than header", func(t *testing.T) {
		cart, err := NewCartFromBytes([]byte{'N', 'E', 'S', 0x1a, 1})
		assert.ErrorIs(t, err, ErrMalformedImage)
		assert.Nil(t, cart)
	})

	t.Run("empty", func(t *testing.T) {
		cart, err := NewCartFromBytes(nil)
		assert.ErrorIs(t, err, ErrMalformedImage)
		assert.Nil(t, cart)
	})

	t.Run("wrong magic", func(t *testing.T) {
		data := inesImage(1, 0, 0, 0)
		data[3] = 0x1b
		cart, err := NewCartFromBytes(data)
		assert.ErrorIs(t, err, ErrMalformedImage)
		assert.Nil(t, cart)
	})

	t.Run("truncated PRG", func(t *testing.T) {
		data := inesImage(2, 0, 0, 0)
		cart, err := NewCartFromBytes(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrMalformedImage)
		assert.Nil(t, cart)
	})

	t.Run("missing CHR", func(t *testing.T) {
		data := inesImage(1, 1, 0, 0)
		cart, err := NewCartFromBytes(data[:inesHeaderSize+prgBankSizeBytes])
		assert.ErrorIs(t, err, ErrMalformedImage)
		assert.Nil(t, cart)
	})
}

func Test_NewCartFromBytes(t *testing.T) {
	t.Run("one PRG bank, CHR RAM", func(t *testing.T) {
		cart, err := NewCartFromBytes(inesImage(1, 0, 0, 0))
		require.NoError(t, err)

		assert.Len(t, cart.PRG(), 16384)
		assert.Empty(t, cart.CHR())
		assert.True(t, cart.HasCHRRAM())
		assert.Equal(t, MirrorHorizontal, cart.Mirroring())
		assert.Equal(t, uint8(0), cart.MapperID())

		ppu := NewPPU(cart)
		assert.True(t, ppu.patternsRAM)
		assert.Len(t, ppu.patterns, 0x2000)
	})

	t.Run("two PRG banks and CHR ROM", func(t *testing.T) {
		data := inesImage(2, 1, 0x1|0x2, 0)
		// first byte of CHR
		data[inesHeaderSize+2*prgBankSizeBytes] = 0xaa

		cart, err := NewCartFromBytes(data)
		require.NoError(t, err)

		assert.Len(t, cart.PRG(), 2*prgBankSizeBytes)
		assert.Len(t, cart.CHR(), chrBankSizeBytes)
		assert.False(t, cart.HasCHRRAM())
		assert.Equal(t, MirrorVertical, cart.Mirroring())
		assert.True(t, cart.HasBattery())
		assert.Equal(t, uint8(0xaa), cart.CHR()[0])
	})

	t.Run("trainer is skipped", func(t *testing.T) {
		data := inesImage(1, 0, 0x4, 0)
		data[inesHeaderSize] = 0x11                  // trainer
		data[inesHeaderSize+trainerSizeBytes] = 0x22 // PRG

		cart, err := NewCartFromBytes(data)
		require.NoError(t, err)

		assert.Len(t, cart.Trainer(), trainerSizeBytes)
		assert.Equal(t, uint8(0x11), cart.Trainer()[0])
		assert.Equal(t, uint8(0x22), cart.PRG()[0])
	})
}

func Test_NewCartFromBytes_Unsupported(t *testing.T) {
	t.Run("mapper", func(t *testing.T) {
		// mapper $21: low nibble from flags6, high nibble from flags7
		cart, err := NewCartFromBytes(inesImage(1, 0, 0x10, 0x20))
		assert.Nil(t, cart)

		var mapperErr *UnsupportedMapperError
		require.ErrorAs(t, err, &mapperErr)
		assert.Equal(t, uint8(0x21), mapperErr.ID)
	})

	t.Run("four-screen", func(t *testing.T) {
		cart, err := NewCartFromBytes(inesImage(1, 0, 0x8|0x1, 0))
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, ErrUnsupportedMirroring)
	})
}

func Test_Cart_ImageIsImmutable(t *testing.T) {
	data := inesImage(1, 1, 0x4, 0)
	data[inesHeaderSize] = 0x11
	data[inesHeaderSize+trainerSizeBytes] = 0xa9
	data[inesHeaderSize+trainerSizeBytes+prgBankSizeBytes] = 0x3c
	cart, err := NewCartFromBytes(data)
	require.NoError(t, err)

	cart.PRG()[0] = 0xff
	cart.CHR()[0] = 0xff
	cart.Trainer()[0] = 0xff
	assert.Equal(t, uint8(0xa9), cart.PRG()[0])
	assert.Equal(t, uint8(0x3c), cart.CHR()[0])
	assert.Equal(t, uint8(0x11), cart.Trainer()[0])

	bus := NewBus(cart)
	got, err := bus.Read8(0x8000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xa9), got)
	assert.Equal(t, uint8(0x3c), bus.PPU().read8(0x0000))
}

func Test_NewCartFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nes")
	require.NoError(t, os.WriteFile(path, inesImage(1, 1, 0x1, 0), 0o644))

	cart, err := NewCartFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cart.PRG(), prgBankSizeBytes)
	assert.Equal(t, MirrorVertical, cart.Mirroring())

	_, err = NewCartFromFile(filepath.Join(t.TempDir(), "missing.nes"))
	assert.Error(t, err)
}

func Test_Mapper0(t *testing.T) {
	t.Run("NROM-128 mirrors the bank", func(t *testing.T) {
		cart, err := NewCart(make([]uint8, prgBankSizeBytes), nil, MirrorHorizontal, 0)
		require.NoError(t, err)

		lo, ok := cart.Mapper().CPUOffset(0x8123)
		require.True(t, ok)
		hi, ok := cart.Mapper().CPUOffset(0xc123)
		require.True(t, ok)
		assert.Equal(t, 0x123, lo)
		assert.Equal(t, lo, hi)
	})

	t.Run("NROM-256 is linear", func(t *testing.T) {
		cart, err := NewCart(make([]uint8, 2*prgBankSizeBytes), nil, MirrorHorizontal, 0)
		require.NoError(t, err)

		offset, ok := cart.Mapper().CPUOffset(0xc123)
		require.True(t, ok)
		assert.Equal(t, 0x4123, offset)
	})

	t.Run("outside windows", func(t *testing.T) {
		cart, err := NewCart(make([]uint8, prgBankSizeBytes), nil, MirrorHorizontal, 0)
		require.NoError(t, err)

		_, ok := cart.Mapper().CPUOffset(0x7fff)
		assert.False(t, ok)
		_, ok = cart.Mapper().PPUOffset(0x2000)
		assert.False(t, ok)
		offset, ok := cart.Mapper().PPUOffset(0x1fff)
		assert.True(t, ok)
		assert.Equal(t, 0x1fff, offset)
	})
}
