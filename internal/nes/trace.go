package nes

import (
	"fmt"
	"strings"
)

// Trace formats the next instruction and the register file in the layout
// of the nestest reference log:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD
//
// Memory is only peeked, so tracing never changes emulator state.
func (c *CPU) Trace(mem Memory) (string, error) {
	line, err := disassembleAt(mem, c.pc)
	if err != nil {
		return "", fmt.Errorf("trace at $%04X: %w", c.pc, err)
	}

	var raw strings.Builder
	for i, b := range line.bytes {
		if i > 0 {
			raw.WriteByte(' ')
		}
		fmt.Fprintf(&raw, "%02X", b)
	}

	// the break bit does not exist in the register, bit 5 always reads 1
	p := (c.p | flagU) &^ flagB
	return fmt.Sprintf("%04X  %-8s  %-32sA:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.pc, raw.String(), line.text, c.a, c.x, c.y, p, c.sp), nil
}

// Disassemble returns the instructions found between from and to, keyed by
// their address. Undecodable bytes show up as "???".
func Disassemble(mem Memory, from, to uint16) map[uint16]string {
	disasm := make(map[uint16]string)

	addr := uint32(from)
	for addr <= uint32(to) {
		pc := uint16(addr)
		line, err := disassembleAt(mem, pc)
		if err != nil {
			disasm[pc] = fmt.Sprintf("$%04X: ???", pc)
			addr++
			continue
		}
		disasm[pc] = fmt.Sprintf("$%04X: %s {%s}", pc, line.text, line.mode)
		addr += uint32(len(line.bytes))
	}
	return disasm
}

type disasmLine struct {
	bytes []uint8
	text  string
	mode  addrMode
}

func disassembleAt(mem Memory, pc uint16) (disasmLine, error) {
	opcode, err := mem.Peek8(pc)
	if err != nil {
		return disasmLine{}, err
	}
	in := instrs[opcode]
	if !in.supported() {
		return disasmLine{bytes: []uint8{opcode}, text: "???"}, nil
	}

	line := disasmLine{bytes: make([]uint8, in.size()), mode: in.mode}
	line.bytes[0] = opcode
	for i := 1; i < in.size(); i++ {
		// operand bytes past $FFFF wrap like the CPU's fetch does
		b, err := mem.Peek8(pc + uint16(i))
		if err != nil {
			return disasmLine{}, err
		}
		line.bytes[i] = b
	}

	var op8 uint8
	var op16 uint16
	if len(line.bytes) > 1 {
		op8 = line.bytes[1]
		op16 = uint16(op8)
	}
	if len(line.bytes) > 2 {
		op16 |= uint16(line.bytes[2]) << 8
	}

	switch in.mode {
	case addrModeIMM:
		line.text = fmt.Sprintf("%s #$%02X", in.name, op8)
	case addrModeZP:
		line.text = fmt.Sprintf("%s $%02X", in.name, op8)
	case addrModeZPX:
		line.text = fmt.Sprintf("%s $%02X,X", in.name, op8)
	case addrModeZPY:
		line.text = fmt.Sprintf("%s $%02X,Y", in.name, op8)
	case addrModeABS:
		line.text = fmt.Sprintf("%s $%04X", in.name, op16)
	case addrModeABSX:
		line.text = fmt.Sprintf("%s $%04X,X", in.name, op16)
	case addrModeABSY:
		line.text = fmt.Sprintf("%s $%04X,Y", in.name, op16)
	case addrModeIND:
		line.text = fmt.Sprintf("%s ($%04X)", in.name, op16)
	case addrModeINDX:
		line.text = fmt.Sprintf("%s ($%02X,X)", in.name, op8)
	case addrModeINDY:
		line.text = fmt.Sprintf("%s ($%02X),Y", in.name, op8)
	case addrModeREL:
		target := pc + 2 + uint16(int8(op8))
		line.text = fmt.Sprintf("%s $%04X", in.name, target)
	case addrModeACC:
		line.text = fmt.Sprintf("%s A", in.name)
	default:
		line.text = in.name
	}
	return line, nil
}
