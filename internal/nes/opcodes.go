package nes

type addrMode uint8

const (
	addrModeIMM  addrMode = iota + 1 // Immediate
	addrModeZP                       // Zero Page
	addrModeZPX                      // Zero Page X
	addrModeZPY                      // Zero Page Y
	addrModeABS                      // Absolute
	addrModeABSX                     // Absolute X
	addrModeABSY                     // Absolute Y
	addrModeIND                      // Indirect
	addrModeINDX                     // Indirect X
	addrModeINDY                     // Indirect Y
	addrModeREL                      // Relative
	addrModeACC                      // Accumulator
	addrModeIMP                      // Implied
)

func (mode addrMode) String() string {
	switch mode {
	case addrModeIMM:
		return "IMM"
	case addrModeZP:
		return "ZP"
	case addrModeZPX:
		return "ZPX"
	case addrModeZPY:
		return "ZPY"
	case addrModeABS:
		return "ABS"
	case addrModeABSX:
		return "ABSX"
	case addrModeABSY:
		return "ABSY"
	case addrModeIND:
		return "IND"
	case addrModeINDX:
		return "INDX"
	case addrModeINDY:
		return "INDY"
	case addrModeREL:
		return "REL"
	case addrModeACC:
		return "ACC"
	case addrModeIMP:
		return "IMP"
	}
	return "???"
}

// operandBytes is the number of bytes following the opcode.
func (mode addrMode) operandBytes() int {
	switch mode {
	case addrModeIMM, addrModeZP, addrModeZPX, addrModeZPY,
		addrModeINDX, addrModeINDY, addrModeREL:
		return 1
	case addrModeABS, addrModeABSX, addrModeABSY, addrModeIND:
		return 2
	}
	return 0
}

type instr struct {
	name   string
	mode   addrMode
	cycles uint8 // base cost, before page-cross and branch penalties
	fn     func(*CPU)
}

func (in instr) size() int {
	return 1 + in.mode.operandBytes()
}

func (in instr) supported() bool {
	return in.fn != nil
}

// instrs is the single opcode table used by Step, Trace and Disassemble.
// Missing entries are illegal opcodes.
var instrs = [0x100]instr{
	0x00: {"BRK", addrModeIMP, 7, (*CPU).brk},
	0x01: {"ORA", addrModeINDX, 6, (*CPU).ora},
	0x02: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x03: {"SLO", addrModeINDX, 8, (*CPU).slo},
	0x04: {"NOP", addrModeZP, 3, (*CPU).nop},
	0x05: {"ORA", addrModeZP, 3, (*CPU).ora},
	0x06: {"ASL", addrModeZP, 5, (*CPU).asl},
	0x07: {"SLO", addrModeZP, 5, (*CPU).slo},
	0x08: {"PHP", addrModeIMP, 3, (*CPU).php},
	0x09: {"ORA", addrModeIMM, 2, (*CPU).ora},
	0x0A: {"ASL", addrModeACC, 2, (*CPU).asl},
	0x0B: {"ANC", addrModeIMM, 2, (*CPU).anc},
	0x0C: {"NOP", addrModeABS, 4, (*CPU).nop},
	0x0D: {"ORA", addrModeABS, 4, (*CPU).ora},
	0x0E: {"ASL", addrModeABS, 6, (*CPU).asl},
	0x0F: {"SLO", addrModeABS, 6, (*CPU).slo},
	0x10: {"BPL", addrModeREL, 2, (*CPU).bpl},
	0x11: {"ORA", addrModeINDY, 5, (*CPU).ora},
	0x12: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x13: {"SLO", addrModeINDY, 8, (*CPU).slo},
	0x14: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0x15: {"ORA", addrModeZPX, 4, (*CPU).ora},
	0x16: {"ASL", addrModeZPX, 6, (*CPU).asl},
	0x17: {"SLO", addrModeZPX, 6, (*CPU).slo},
	0x18: {"CLC", addrModeIMP, 2, (*CPU).clc},
	0x19: {"ORA", addrModeABSY, 4, (*CPU).ora},
	0x1A: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0x1B: {"SLO", addrModeABSY, 7, (*CPU).slo},
	0x1C: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0x1D: {"ORA", addrModeABSX, 4, (*CPU).ora},
	0x1E: {"ASL", addrModeABSX, 7, (*CPU).asl},
	0x1F: {"SLO", addrModeABSX, 7, (*CPU).slo},
	0x20: {"JSR", addrModeABS, 6, (*CPU).jsr},
	0x21: {"AND", addrModeINDX, 6, (*CPU).and},
	0x22: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x23: {"RLA", addrModeINDX, 8, (*CPU).rla},
	0x24: {"BIT", addrModeZP, 3, (*CPU).bit},
	0x25: {"AND", addrModeZP, 3, (*CPU).and},
	0x26: {"ROL", addrModeZP, 5, (*CPU).rol},
	0x27: {"RLA", addrModeZP, 5, (*CPU).rla},
	0x28: {"PLP", addrModeIMP, 4, (*CPU).plp},
	0x29: {"AND", addrModeIMM, 2, (*CPU).and},
	0x2A: {"ROL", addrModeACC, 2, (*CPU).rol},
	0x2B: {"ANC", addrModeIMM, 2, (*CPU).anc},
	0x2C: {"BIT", addrModeABS, 4, (*CPU).bit},
	0x2D: {"AND", addrModeABS, 4, (*CPU).and},
	0x2E: {"ROL", addrModeABS, 6, (*CPU).rol},
	0x2F: {"RLA", addrModeABS, 6, (*CPU).rla},
	0x30: {"BMI", addrModeREL, 2, (*CPU).bmi},
	0x31: {"AND", addrModeINDY, 5, (*CPU).and},
	0x32: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x33: {"RLA", addrModeINDY, 8, (*CPU).rla},
	0x34: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0x35: {"AND", addrModeZPX, 4, (*CPU).and},
	0x36: {"ROL", addrModeZPX, 6, (*CPU).rol},
	0x37: {"RLA", addrModeZPX, 6, (*CPU).rla},
	0x38: {"SEC", addrModeIMP, 2, (*CPU).sec},
	0x39: {"AND", addrModeABSY, 4, (*CPU).and},
	0x3A: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0x3B: {"RLA", addrModeABSY, 7, (*CPU).rla},
	0x3C: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0x3D: {"AND", addrModeABSX, 4, (*CPU).and},
	0x3E: {"ROL", addrModeABSX, 7, (*CPU).rol},
	0x3F: {"RLA", addrModeABSX, 7, (*CPU).rla},
	0x40: {"RTI", addrModeIMP, 6, (*CPU).rti},
	0x41: {"EOR", addrModeINDX, 6, (*CPU).eor},
	0x42: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x43: {"SRE", addrModeINDX, 8, (*CPU).sre},
	0x44: {"NOP", addrModeZP, 3, (*CPU).nop},
	0x45: {"EOR", addrModeZP, 3, (*CPU).eor},
	0x46: {"LSR", addrModeZP, 5, (*CPU).lsr},
	0x47: {"SRE", addrModeZP, 5, (*CPU).sre},
	0x48: {"PHA", addrModeIMP, 3, (*CPU).pha},
	0x49: {"EOR", addrModeIMM, 2, (*CPU).eor},
	0x4A: {"LSR", addrModeACC, 2, (*CPU).lsr},
	0x4B: {"ALR", addrModeIMM, 2, (*CPU).alr},
	0x4C: {"JMP", addrModeABS, 3, (*CPU).jmp},
	0x4D: {"EOR", addrModeABS, 4, (*CPU).eor},
	0x4E: {"LSR", addrModeABS, 6, (*CPU).lsr},
	0x4F: {"SRE", addrModeABS, 6, (*CPU).sre},
	0x50: {"BVC", addrModeREL, 2, (*CPU).bvc},
	0x51: {"EOR", addrModeINDY, 5, (*CPU).eor},
	0x52: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x53: {"SRE", addrModeINDY, 8, (*CPU).sre},
	0x54: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0x55: {"EOR", addrModeZPX, 4, (*CPU).eor},
	0x56: {"LSR", addrModeZPX, 6, (*CPU).lsr},
	0x57: {"SRE", addrModeZPX, 6, (*CPU).sre},
	0x58: {"CLI", addrModeIMP, 2, (*CPU).cli},
	0x59: {"EOR", addrModeABSY, 4, (*CPU).eor},
	0x5A: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0x5B: {"SRE", addrModeABSY, 7, (*CPU).sre},
	0x5C: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0x5D: {"EOR", addrModeABSX, 4, (*CPU).eor},
	0x5E: {"LSR", addrModeABSX, 7, (*CPU).lsr},
	0x5F: {"SRE", addrModeABSX, 7, (*CPU).sre},
	0x60: {"RTS", addrModeIMP, 6, (*CPU).rts},
	0x61: {"ADC", addrModeINDX, 6, (*CPU).adc},
	0x62: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x63: {"RRA", addrModeINDX, 8, (*CPU).rra},
	0x64: {"NOP", addrModeZP, 3, (*CPU).nop},
	0x65: {"ADC", addrModeZP, 3, (*CPU).adc},
	0x66: {"ROR", addrModeZP, 5, (*CPU).ror},
	0x67: {"RRA", addrModeZP, 5, (*CPU).rra},
	0x68: {"PLA", addrModeIMP, 4, (*CPU).pla},
	0x69: {"ADC", addrModeIMM, 2, (*CPU).adc},
	0x6A: {"ROR", addrModeACC, 2, (*CPU).ror},
	0x6C: {"JMP", addrModeIND, 5, (*CPU).jmp},
	0x6D: {"ADC", addrModeABS, 4, (*CPU).adc},
	0x6E: {"ROR", addrModeABS, 6, (*CPU).ror},
	0x6F: {"RRA", addrModeABS, 6, (*CPU).rra},
	0x70: {"BVS", addrModeREL, 2, (*CPU).bvs},
	0x71: {"ADC", addrModeINDY, 5, (*CPU).adc},
	0x72: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x73: {"RRA", addrModeINDY, 8, (*CPU).rra},
	0x74: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0x75: {"ADC", addrModeZPX, 4, (*CPU).adc},
	0x76: {"ROR", addrModeZPX, 6, (*CPU).ror},
	0x77: {"RRA", addrModeZPX, 6, (*CPU).rra},
	0x78: {"SEI", addrModeIMP, 2, (*CPU).sei},
	0x79: {"ADC", addrModeABSY, 4, (*CPU).adc},
	0x7A: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0x7B: {"RRA", addrModeABSY, 7, (*CPU).rra},
	0x7C: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0x7D: {"ADC", addrModeABSX, 4, (*CPU).adc},
	0x7E: {"ROR", addrModeABSX, 7, (*CPU).ror},
	0x7F: {"RRA", addrModeABSX, 7, (*CPU).rra},
	0x80: {"NOP", addrModeIMM, 2, (*CPU).nop},
	0x81: {"STA", addrModeINDX, 6, (*CPU).sta},
	0x82: {"NOP", addrModeIMM, 2, (*CPU).nop},
	0x83: {"SAX", addrModeINDX, 6, (*CPU).sax},
	0x84: {"STY", addrModeZP, 3, (*CPU).sty},
	0x85: {"STA", addrModeZP, 3, (*CPU).sta},
	0x86: {"STX", addrModeZP, 3, (*CPU).stx},
	0x87: {"SAX", addrModeZP, 3, (*CPU).sax},
	0x88: {"DEY", addrModeIMP, 2, (*CPU).dey},
	0x89: {"NOP", addrModeIMM, 2, (*CPU).nop},
	0x8A: {"TXA", addrModeIMP, 2, (*CPU).txa},
	0x8C: {"STY", addrModeABS, 4, (*CPU).sty},
	0x8D: {"STA", addrModeABS, 4, (*CPU).sta},
	0x8E: {"STX", addrModeABS, 4, (*CPU).stx},
	0x8F: {"SAX", addrModeABS, 4, (*CPU).sax},
	0x90: {"BCC", addrModeREL, 2, (*CPU).bcc},
	0x91: {"STA", addrModeINDY, 6, (*CPU).sta},
	0x92: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0x94: {"STY", addrModeZPX, 4, (*CPU).sty},
	0x95: {"STA", addrModeZPX, 4, (*CPU).sta},
	0x96: {"STX", addrModeZPY, 4, (*CPU).stx},
	0x97: {"SAX", addrModeZPY, 4, (*CPU).sax},
	0x98: {"TYA", addrModeIMP, 2, (*CPU).tya},
	0x99: {"STA", addrModeABSY, 5, (*CPU).sta},
	0x9A: {"TXS", addrModeIMP, 2, (*CPU).txs},
	0x9D: {"STA", addrModeABSX, 5, (*CPU).sta},
	0xA0: {"LDY", addrModeIMM, 2, (*CPU).ldy},
	0xA1: {"LDA", addrModeINDX, 6, (*CPU).lda},
	0xA2: {"LDX", addrModeIMM, 2, (*CPU).ldx},
	0xA3: {"LAX", addrModeINDX, 6, (*CPU).lax},
	0xA4: {"LDY", addrModeZP, 3, (*CPU).ldy},
	0xA5: {"LDA", addrModeZP, 3, (*CPU).lda},
	0xA6: {"LDX", addrModeZP, 3, (*CPU).ldx},
	0xA7: {"LAX", addrModeZP, 3, (*CPU).lax},
	0xA8: {"TAY", addrModeIMP, 2, (*CPU).tay},
	0xA9: {"LDA", addrModeIMM, 2, (*CPU).lda},
	0xAA: {"TAX", addrModeIMP, 2, (*CPU).tax},
	0xAC: {"LDY", addrModeABS, 4, (*CPU).ldy},
	0xAD: {"LDA", addrModeABS, 4, (*CPU).lda},
	0xAE: {"LDX", addrModeABS, 4, (*CPU).ldx},
	0xAF: {"LAX", addrModeABS, 4, (*CPU).lax},
	0xB0: {"BCS", addrModeREL, 2, (*CPU).bcs},
	0xB1: {"LDA", addrModeINDY, 5, (*CPU).lda},
	0xB2: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0xB3: {"LAX", addrModeINDY, 5, (*CPU).lax},
	0xB4: {"LDY", addrModeZPX, 4, (*CPU).ldy},
	0xB5: {"LDA", addrModeZPX, 4, (*CPU).lda},
	0xB6: {"LDX", addrModeZPY, 4, (*CPU).ldx},
	0xB7: {"LAX", addrModeZPY, 4, (*CPU).lax},
	0xB8: {"CLV", addrModeIMP, 2, (*CPU).clv},
	0xB9: {"LDA", addrModeABSY, 4, (*CPU).lda},
	0xBA: {"TSX", addrModeIMP, 2, (*CPU).tsx},
	0xBB: {"LAS", addrModeABSY, 4, (*CPU).las},
	0xBC: {"LDY", addrModeABSX, 4, (*CPU).ldy},
	0xBD: {"LDA", addrModeABSX, 4, (*CPU).lda},
	0xBE: {"LDX", addrModeABSY, 4, (*CPU).ldx},
	0xBF: {"LAX", addrModeABSY, 4, (*CPU).lax},
	0xC0: {"CPY", addrModeIMM, 2, (*CPU).cpy},
	0xC1: {"CMP", addrModeINDX, 6, (*CPU).cmp},
	0xC2: {"NOP", addrModeIMM, 2, (*CPU).nop},
	0xC3: {"DCP", addrModeINDX, 8, (*CPU).dcp},
	0xC4: {"CPY", addrModeZP, 3, (*CPU).cpy},
	0xC5: {"CMP", addrModeZP, 3, (*CPU).cmp},
	0xC6: {"DEC", addrModeZP, 5, (*CPU).dec},
	0xC7: {"DCP", addrModeZP, 5, (*CPU).dcp},
	0xC8: {"INY", addrModeIMP, 2, (*CPU).iny},
	0xC9: {"CMP", addrModeIMM, 2, (*CPU).cmp},
	0xCA: {"DEX", addrModeIMP, 2, (*CPU).dex},
	0xCB: {"AXS", addrModeIMM, 2, (*CPU).axs},
	0xCC: {"CPY", addrModeABS, 4, (*CPU).cpy},
	0xCD: {"CMP", addrModeABS, 4, (*CPU).cmp},
	0xCE: {"DEC", addrModeABS, 6, (*CPU).dec},
	0xCF: {"DCP", addrModeABS, 6, (*CPU).dcp},
	0xD0: {"BNE", addrModeREL, 2, (*CPU).bne},
	0xD1: {"CMP", addrModeINDY, 5, (*CPU).cmp},
	0xD2: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0xD3: {"DCP", addrModeINDY, 8, (*CPU).dcp},
	0xD4: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0xD5: {"CMP", addrModeZPX, 4, (*CPU).cmp},
	0xD6: {"DEC", addrModeZPX, 6, (*CPU).dec},
	0xD7: {"DCP", addrModeZPX, 6, (*CPU).dcp},
	0xD8: {"CLD", addrModeIMP, 2, (*CPU).cld},
	0xD9: {"CMP", addrModeABSY, 4, (*CPU).cmp},
	0xDA: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0xDB: {"DCP", addrModeABSY, 7, (*CPU).dcp},
	0xDC: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0xDD: {"CMP", addrModeABSX, 4, (*CPU).cmp},
	0xDE: {"DEC", addrModeABSX, 7, (*CPU).dec},
	0xDF: {"DCP", addrModeABSX, 7, (*CPU).dcp},
	0xE0: {"CPX", addrModeIMM, 2, (*CPU).cpx},
	0xE1: {"SBC", addrModeINDX, 6, (*CPU).sbc},
	0xE2: {"NOP", addrModeIMM, 2, (*CPU).nop},
	0xE3: {"ISC", addrModeINDX, 8, (*CPU).isc},
	0xE4: {"CPX", addrModeZP, 3, (*CPU).cpx},
	0xE5: {"SBC", addrModeZP, 3, (*CPU).sbc},
	0xE6: {"INC", addrModeZP, 5, (*CPU).inc},
	0xE7: {"ISC", addrModeZP, 5, (*CPU).isc},
	0xE8: {"INX", addrModeIMP, 2, (*CPU).inx},
	0xE9: {"SBC", addrModeIMM, 2, (*CPU).sbc},
	0xEA: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0xEB: {"SBC", addrModeIMM, 2, (*CPU).sbc},
	0xEC: {"CPX", addrModeABS, 4, (*CPU).cpx},
	0xED: {"SBC", addrModeABS, 4, (*CPU).sbc},
	0xEE: {"INC", addrModeABS, 6, (*CPU).inc},
	0xEF: {"ISC", addrModeABS, 6, (*CPU).isc},
	0xF0: {"BEQ", addrModeREL, 2, (*CPU).beq},
	0xF1: {"SBC", addrModeINDY, 5, (*CPU).sbc},
	0xF2: {"HLT", addrModeIMP, 0, (*CPU).hlt},
	0xF3: {"ISC", addrModeINDY, 8, (*CPU).isc},
	0xF4: {"NOP", addrModeZPX, 4, (*CPU).nop},
	0xF5: {"SBC", addrModeZPX, 4, (*CPU).sbc},
	0xF6: {"INC", addrModeZPX, 6, (*CPU).inc},
	0xF7: {"ISC", addrModeZPX, 6, (*CPU).isc},
	0xF8: {"SED", addrModeIMP, 2, (*CPU).sed},
	0xF9: {"SBC", addrModeABSY, 4, (*CPU).sbc},
	0xFA: {"NOP", addrModeIMP, 2, (*CPU).nop},
	0xFB: {"ISC", addrModeABSY, 7, (*CPU).isc},
	0xFC: {"NOP", addrModeABSX, 4, (*CPU).nop},
	0xFD: {"SBC", addrModeABSX, 4, (*CPU).sbc},
	0xFE: {"INC", addrModeABSX, 7, (*CPU).inc},
	0xFF: {"ISC", addrModeABSX, 7, (*CPU).isc},
}
