package nes

const (
	stackStartAddr = uint16(0x100)

	vectorNMI   = uint16(0xfffa)
	vectorReset = uint16(0xfffc)
	vectorIRQ   = uint16(0xfffe)

	resetSP         = uint8(0xfd)
	interruptCycles = 7
)

const (
	flagC = uint8(1 << iota) // Carry
	flagZ                    // Zero
	flagI                    // Interrupt Disable
	flagD                    // Decimal Mode
	flagB                    // Break Command
	flagU                    // Unused
	flagV                    // Overflow
	flagN                    // Negative
)

// CPU is the 6502 core. It does not keep a reference to memory between
// calls: every operation that touches the bus receives it as an argument.
type CPU struct {
	a  uint8
	x  uint8
	y  uint8
	p  uint8
	sp uint8
	pc uint16

	halted      bool
	totalCycles uint64

	// per-instruction state, valid only inside Step
	mem         Memory
	fault       error
	cycles      uint8
	addrMode    addrMode
	operandAddr uint16
	pageCrossed bool
}

// Registers is a snapshot of the architectural registers.
type Registers struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	P  uint8
	SP uint8
}

func isSameSign(a, b uint8) bool {
	return (a^b)&0x80 == 0
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

func NewCPU() *CPU {
	return &CPU{
		p:  flagU | flagI,
		sp: resetSP,
	}
}

func (c *CPU) Registers() Registers {
	return Registers{PC: c.pc, A: c.a, X: c.x, Y: c.y, P: c.p, SP: c.sp}
}

func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

func (c *CPU) Halted() bool {
	return c.halted
}

func (c *CPU) TotalCycles() uint64 {
	return c.totalCycles
}

func (c *CPU) attach(mem Memory) {
	c.mem = mem
	c.fault = nil
	c.cycles = 0
	c.addrMode = 0
	c.operandAddr = 0
	c.pageCrossed = false
}

func (c *CPU) detach() {
	c.mem = nil
}

// read8 keeps the first bus fault of the instruction; later accesses
// still run so the instruction completes with zeroes for faulted reads.
func (c *CPU) read8(addr uint16) uint8 {
	data, err := c.mem.Read8(addr)
	if err != nil && c.fault == nil {
		c.fault = err
	}
	return data
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	if err := c.mem.Write8(addr, data); err != nil && c.fault == nil {
		c.fault = err
	}
}

func (c *CPU) getFlag(flag uint8) bool {
	return c.p&flag > 0
}

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.p |= flag
		return
	}
	c.p &= ^flag
}

func (c *CPU) setFlagsZN(value uint8) {
	c.setFlag(flagZ, value == 0)
	c.setFlag(flagN, value&flagN > 0)
}

func (c *CPU) stackPop8() uint8 {
	c.sp++
	return c.read8(stackStartAddr | uint16(c.sp))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.sp), data)
	c.sp--
}

func (c *CPU) stackPush16(data uint16) {
	c.stackPush8(uint8(data >> 8))
	c.stackPush8(uint8(data & 0xff))
}

// Reset the CPU to its power-up state and jump through the reset vector.
func (c *CPU) Reset(mem Memory) error {
	c.attach(mem)
	defer c.detach()

	c.a = 0
	c.x = 0
	c.y = 0
	c.p = flagU | flagI
	c.sp = resetSP
	c.pc = c.read16(vectorReset)
	c.totalCycles = interruptCycles
	c.halted = false
	return c.fault
}

// IRQ services an interrupt request unless interrupts are disabled.
// It returns the cycles spent.
func (c *CPU) IRQ(mem Memory) (int, error) {
	if c.getFlag(flagI) {
		return 0, nil
	}
	return c.interrupt(mem, vectorIRQ)
}

// NMI services a non-maskable interrupt and returns the cycles spent.
func (c *CPU) NMI(mem Memory) (int, error) {
	return c.interrupt(mem, vectorNMI)
}

func (c *CPU) interrupt(mem Memory, vector uint16) (int, error) {
	c.attach(mem)
	defer c.detach()

	c.stackPush16(c.pc)
	c.stackPush8((c.p | flagU) &^ flagB)
	c.setFlag(flagI, true)
	c.pc = c.read16(vector)
	c.halted = false
	c.totalCycles += interruptCycles
	return interruptCycles, c.fault
}

// Step executes one instruction and returns the number of cycles it took.
//
// Bus faults raised while the instruction runs are returned after it
// completes. An undecodable opcode returns *IllegalOpcodeError with PC
// already past the opcode byte, so calling Step again skips it.
func (c *CPU) Step(mem Memory) (int, error) {
	if c.halted {
		return 0, nil
	}
	c.attach(mem)
	defer c.detach()

	opcodePC := c.pc
	opcode := c.read8(opcodePC)
	if c.fault != nil {
		return 0, c.fault
	}
	c.pc++

	in := instrs[opcode]
	if !in.supported() {
		return 0, &IllegalOpcodeError{Opcode: opcode, PC: opcodePC}
	}
	c.cycles = in.cycles
	c.fetch(in.mode)
	in.fn(c)
	c.totalCycles += uint64(c.cycles)
	return int(c.cycles), c.fault
}

// fetch resolves the effective address for the current instruction and
// moves PC past the operand bytes. It does not read the operand itself:
// reads of PPU registers have side effects, so stores must never read.
func (c *CPU) fetch(mode addrMode) {
	c.addrMode = mode

	switch mode {
	case addrModeIMM:
		c.operandAddr = c.pc
		c.pc++

	case addrModeZP:
		c.operandAddr = uint16(c.read8(c.pc))
		c.pc++

	case addrModeZPX:
		c.operandAddr = uint16(c.read8(c.pc) + c.x)
		c.pc++

	case addrModeZPY:
		c.operandAddr = uint16(c.read8(c.pc) + c.y)
		c.pc++

	case addrModeABS:
		c.operandAddr = c.read16(c.pc)
		c.pc += 2

	case addrModeABSX:
		baseAddr := c.read16(c.pc)
		c.pc += 2
		c.operandAddr = baseAddr + uint16(c.x)
		c.pageCrossed = isDiffPage(baseAddr, c.operandAddr)

	case addrModeABSY:
		baseAddr := c.read16(c.pc)
		c.pc += 2
		c.operandAddr = baseAddr + uint16(c.y)
		c.pageCrossed = isDiffPage(baseAddr, c.operandAddr)

	case addrModeIND:
		ptr := c.read16(c.pc)
		c.pc += 2
		// the high byte never carries into the next page:
		// JMP ($10FF) reads $10FF and $1000
		hi := ptr&0xff00 | uint16(uint8(ptr)+1)
		c.operandAddr = uint16(c.read8(ptr)) | uint16(c.read8(hi))<<8

	case addrModeINDX:
		zp := c.read8(c.pc) + c.x
		c.pc++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		c.operandAddr = lo | hi<<8

	case addrModeINDY:
		zp := c.read8(c.pc)
		c.pc++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		baseAddr := lo | hi<<8
		c.operandAddr = baseAddr + uint16(c.y)
		c.pageCrossed = isDiffPage(baseAddr, c.operandAddr)

	case addrModeREL:
		// sign extend the offset
		c.operandAddr = uint16(int8(c.read8(c.pc)))
		c.pc++
	}
}

// operand reads the value the current instruction works on.
func (c *CPU) operand() uint8 {
	if c.addrMode == addrModeACC {
		return c.a
	}
	return c.read8(c.operandAddr)
}

// store writes the result of a shift or rotate back where it came from.
func (c *CPU) store(data uint8) {
	if c.addrMode == addrModeACC {
		c.a = data
		return
	}
	c.write8(c.operandAddr, data)
}

func (c *CPU) addPageCrossCycle() {
	if c.pageCrossed {
		c.cycles++
	}
}

// addWithCarry is the binary-mode adder shared by ADC and SBC.
// The decimal flag has no effect on this CPU.
func (c *CPU) addWithCarry(value uint8) {
	r16 := uint16(c.a) + uint16(value)
	if c.getFlag(flagC) {
		r16++
	}
	r8 := uint8(r16)
	c.setFlag(flagC, r16 > 0xff)
	c.setFlagsZN(r8)
	c.setFlag(flagV, isSameSign(c.a, value) && !isSameSign(c.a, r8))
	c.a = r8
}

func (c *CPU) compare(reg, value uint8) {
	c.setFlag(flagC, reg >= value)
	c.setFlagsZN(reg - value)
}

// branch moves PC by offset when cond holds and returns the cost of the
// whole branch instruction: 2 not taken, 3 taken, 4 taken into another page.
func (c *CPU) branch(cond bool, offset int8) uint8 {
	if !cond {
		return 2
	}
	target := c.pc + uint16(offset)
	cost := uint8(3)
	if isDiffPage(c.pc, target) {
		cost++
	}
	c.pc = target
	return cost
}

func (c *CPU) adc() {
	c.addWithCarry(c.operand())
	c.addPageCrossCycle()
}

func (c *CPU) and() {
	c.a &= c.operand()
	c.setFlagsZN(c.a)
	c.addPageCrossCycle()
}

func (c *CPU) asl() {
	v := c.operand()
	c.setFlag(flagC, v&0x80 > 0)
	r := v << 1
	c.setFlagsZN(r)
	c.store(r)
}

func (c *CPU) bcc() {
	c.cycles = c.branch(!c.getFlag(flagC), int8(c.operandAddr))
}

func (c *CPU) bcs() {
	c.cycles = c.branch(c.getFlag(flagC), int8(c.operandAddr))
}

func (c *CPU) beq() {
	c.cycles = c.branch(c.getFlag(flagZ), int8(c.operandAddr))
}

func (c *CPU) bit() {
	v := c.operand()
	c.setFlag(flagZ, c.a&v == 0)
	c.setFlag(flagN, v&flagN > 0)
	c.setFlag(flagV, v&flagV > 0)
}

func (c *CPU) bmi() {
	c.cycles = c.branch(c.getFlag(flagN), int8(c.operandAddr))
}

func (c *CPU) bne() {
	c.cycles = c.branch(!c.getFlag(flagZ), int8(c.operandAddr))
}

func (c *CPU) bpl() {
	c.cycles = c.branch(!c.getFlag(flagN), int8(c.operandAddr))
}

func (c *CPU) brk() {
	// BRK is followed by a padding byte
	c.pc++
	c.stackPush16(c.pc)
	c.stackPush8(c.p | flagB | flagU)
	c.setFlag(flagI, true)
	c.pc = c.read16(vectorIRQ)
}

func (c *CPU) bvc() {
	c.cycles = c.branch(!c.getFlag(flagV), int8(c.operandAddr))
}

func (c *CPU) bvs() {
	c.cycles = c.branch(c.getFlag(flagV), int8(c.operandAddr))
}

func (c *CPU) clc() {
	c.setFlag(flagC, false)
}

func (c *CPU) cld() {
	c.setFlag(flagD, false)
}

func (c *CPU) cli() {
	c.setFlag(flagI, false)
}

func (c *CPU) clv() {
	c.setFlag(flagV, false)
}

func (c *CPU) cmp() {
	c.compare(c.a, c.operand())
	c.addPageCrossCycle()
}

func (c *CPU) cpx() {
	c.compare(c.x, c.operand())
}

func (c *CPU) cpy() {
	c.compare(c.y, c.operand())
}

func (c *CPU) dec() {
	r := c.operand() - 1
	c.setFlagsZN(r)
	c.write8(c.operandAddr, r)
}

func (c *CPU) dex() {
	c.x--
	c.setFlagsZN(c.x)
}

func (c *CPU) dey() {
	c.y--
	c.setFlagsZN(c.y)
}

func (c *CPU) eor() {
	c.a ^= c.operand()
	c.setFlagsZN(c.a)
	c.addPageCrossCycle()
}

func (c *CPU) inc() {
	r := c.operand() + 1
	c.setFlagsZN(r)
	c.write8(c.operandAddr, r)
}

func (c *CPU) inx() {
	c.x++
	c.setFlagsZN(c.x)
}

func (c *CPU) iny() {
	c.y++
	c.setFlagsZN(c.y)
}

func (c *CPU) jmp() {
	c.pc = c.operandAddr
}

func (c *CPU) jsr() {
	// the return address pushed is the last byte of the JSR instruction
	c.stackPush16(c.pc - 1)
	c.pc = c.operandAddr
}

func (c *CPU) lda() {
	c.a = c.operand()
	c.setFlagsZN(c.a)
	c.addPageCrossCycle()
}

func (c *CPU) ldx() {
	c.x = c.operand()
	c.setFlagsZN(c.x)
	c.addPageCrossCycle()
}

func (c *CPU) ldy() {
	c.y = c.operand()
	c.setFlagsZN(c.y)
	c.addPageCrossCycle()
}

func (c *CPU) lsr() {
	v := c.operand()
	c.setFlag(flagC, v&0x1 > 0)
	r := v >> 1
	c.setFlagsZN(r)
	c.store(r)
}

// nop covers the official NOP and the undocumented multi-byte ones.
// The operand is not read.
func (c *CPU) nop() {
	c.addPageCrossCycle()
}

func (c *CPU) ora() {
	c.a |= c.operand()
	c.setFlagsZN(c.a)
	c.addPageCrossCycle()
}

func (c *CPU) pha() {
	c.stackPush8(c.a)
}

func (c *CPU) php() {
	c.stackPush8(c.p | flagB | flagU)
}

func (c *CPU) pla() {
	c.a = c.stackPop8()
	c.setFlagsZN(c.a)
}

func (c *CPU) plp() {
	c.p = (c.stackPop8() | flagU) &^ flagB
}

func (c *CPU) rol() {
	v := c.operand()
	r := v << 1
	if c.getFlag(flagC) {
		r |= 0x1
	}
	c.setFlag(flagC, v&0x80 > 0)
	c.setFlagsZN(r)
	c.store(r)
}

func (c *CPU) ror() {
	v := c.operand()
	r := v >> 1
	if c.getFlag(flagC) {
		r |= 0x80
	}
	c.setFlag(flagC, v&0x1 > 0)
	c.setFlagsZN(r)
	c.store(r)
}

func (c *CPU) rti() {
	c.p = (c.stackPop8() | flagU) &^ flagB
	c.pc = c.stackPop16()
}

func (c *CPU) rts() {
	c.pc = c.stackPop16() + 1
}

func (c *CPU) sbc() {
	c.addWithCarry(^c.operand())
	c.addPageCrossCycle()
}

func (c *CPU) sec() {
	c.setFlag(flagC, true)
}

func (c *CPU) sed() {
	c.setFlag(flagD, true)
}

func (c *CPU) sei() {
	c.setFlag(flagI, true)
}

func (c *CPU) sta() {
	c.write8(c.operandAddr, c.a)
}

func (c *CPU) stx() {
	c.write8(c.operandAddr, c.x)
}

func (c *CPU) sty() {
	c.write8(c.operandAddr, c.y)
}

func (c *CPU) tax() {
	c.x = c.a
	c.setFlagsZN(c.x)
}

func (c *CPU) tay() {
	c.y = c.a
	c.setFlagsZN(c.y)
}

func (c *CPU) tsx() {
	c.x = c.sp
	c.setFlagsZN(c.x)
}

func (c *CPU) txa() {
	c.a = c.x
	c.setFlagsZN(c.a)
}

func (c *CPU) txs() {
	c.sp = c.x
}

func (c *CPU) tya() {
	c.a = c.y
	c.setFlagsZN(c.a)
}

// undocumented opcodes

func (c *CPU) lax() {
	c.a = c.operand()
	c.x = c.a
	c.setFlagsZN(c.a)
	c.addPageCrossCycle()
}

func (c *CPU) sax() {
	c.write8(c.operandAddr, c.a&c.x)
}

func (c *CPU) dcp() {
	r := c.operand() - 1
	c.write8(c.operandAddr, r)
	c.compare(c.a, r)
}

func (c *CPU) isc() {
	r := c.operand() + 1
	c.write8(c.operandAddr, r)
	c.addWithCarry(^r)
}

func (c *CPU) slo() {
	v := c.operand()
	c.setFlag(flagC, v&0x80 > 0)
	r := v << 1
	c.write8(c.operandAddr, r)
	c.a |= r
	c.setFlagsZN(c.a)
}

func (c *CPU) rla() {
	v := c.operand()
	r := v << 1
	if c.getFlag(flagC) {
		r |= 0x1
	}
	c.setFlag(flagC, v&0x80 > 0)
	c.write8(c.operandAddr, r)
	c.a &= r
	c.setFlagsZN(c.a)
}

func (c *CPU) sre() {
	v := c.operand()
	c.setFlag(flagC, v&0x1 > 0)
	r := v >> 1
	c.write8(c.operandAddr, r)
	c.a ^= r
	c.setFlagsZN(c.a)
}

func (c *CPU) rra() {
	v := c.operand()
	r := v >> 1
	if c.getFlag(flagC) {
		r |= 0x80
	}
	c.setFlag(flagC, v&0x1 > 0)
	c.write8(c.operandAddr, r)
	c.addWithCarry(r)
}

func (c *CPU) hlt() {
	c.halted = true
}

func (c *CPU) anc() {
	c.a &= c.operand()
	c.setFlag(flagC, c.a&0x80 > 0)
	c.setFlagsZN(c.a)
}

func (c *CPU) alr() {
	c.a &= c.operand()
	c.setFlag(flagC, c.a&0x1 > 0)
	c.a >>= 1
	c.setFlagsZN(c.a)
}

func (c *CPU) axs() {
	ax := c.a & c.x
	v := c.operand()
	c.setFlag(flagC, ax >= v)
	c.x = ax - v
	c.setFlagsZN(c.x)
}

func (c *CPU) las() {
	r := c.operand() & c.sp
	c.a = r
	c.x = r
	c.sp = r
	c.setFlagsZN(r)
	c.addPageCrossCycle()
}
