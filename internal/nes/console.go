package nes

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	// PPU dots per CPU cycle
	ppuDotsPerCPUCycle = 3

	illegalNOPCycles = 2
)

// Console is one emulation session: a bus with its RAM, PPU and cartridge,
// and the CPU that drives it.
type Console struct {
	bus *Bus
	cpu *CPU

	illegalAsNOP bool
	trace        io.Writer
	startPC      *uint16

	steps uint64
}

type Option func(*Console) error

// IllegalOpcodeAsNOP makes Step skip undecodable opcodes as one byte,
// two cycle NOPs instead of failing.
func IllegalOpcodeAsNOP(enabled bool) Option {
	return func(c *Console) error {
		c.illegalAsNOP = enabled
		return nil
	}
}

// TraceTo writes a trace line for every instruction before it runs.
func TraceTo(w io.Writer) Option {
	return func(c *Console) error {
		if w == nil {
			return errors.New("trace writer is nil")
		}
		c.trace = w
		return nil
	}
}

// StartAt overrides the reset vector, e.g. $C000 for the automated
// nestest mode.
func StartAt(pc uint16) Option {
	return func(c *Console) error {
		c.startPC = &pc
		return nil
	}
}

func NewConsole(cart *Cart, options ...Option) (*Console, error) {
	c := &Console{
		bus: NewBus(cart),
		cpu: NewCPU(),
	}
	for i, option := range options {
		if err := option(c); err != nil {
			return nil, fmt.Errorf("failed to set option index %d: %w", i, err)
		}
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Console) Reset() error {
	if err := c.cpu.Reset(c.bus); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if c.startPC != nil {
		c.cpu.SetPC(*c.startPC)
	}
	c.steps = 0
	return nil
}

// Step runs one CPU instruction and advances the PPU clock by the same
// amount of time. It returns the CPU cycles spent.
func (c *Console) Step() (int, error) {
	if c.trace != nil && !c.cpu.Halted() {
		line, err := c.cpu.Trace(c.bus)
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(c.trace, line)
	}

	cycles, err := c.cpu.Step(c.bus)
	var illegal *IllegalOpcodeError
	if errors.As(err, &illegal) && c.illegalAsNOP {
		log.Printf("console: illegal opcode %02X at $%04X treated as NOP\n", illegal.Opcode, illegal.PC)
		cycles, err = illegalNOPCycles, nil
		c.cpu.totalCycles += illegalNOPCycles
	}
	c.bus.ppu.Tick(cycles * ppuDotsPerCPUCycle)
	c.steps++
	return cycles, err
}

// Run steps until the CPU halts, a fault occurs or maxSteps instructions
// have run (0 means no limit). It returns the number of steps taken.
func (c *Console) Run(maxSteps uint64) (uint64, error) {
	var n uint64
	for !c.cpu.Halted() && (maxSteps == 0 || n < maxSteps) {
		n++
		if _, err := c.Step(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *Console) Bus() *Bus     { return c.bus }
func (c *Console) CPU() *CPU     { return c.cpu }
func (c *Console) PPU() *PPU     { return c.bus.ppu }
func (c *Console) Steps() uint64 { return c.steps }
