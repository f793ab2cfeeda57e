package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/nestic/internal/nes"
)

// P - pause
// R - one step and stop
// Backspace - reset

const (
	patternsScale = 2

	viewWidth  = nes.NametablesWidth
	viewHeight = nes.NametablesHeight + nes.PatternTablesHeight*patternsScale

	debugScreenWidth  = 286
	debugScreenHeight = viewHeight

	// 341 dots x 262 scanlines, 3 dots per cpu cycle
	cpuCyclesPerFrame = 341 * 262 / 3

	disasmLinesAround = 7
)

type UI struct {
	console *nes.Console
	disasm  map[uint16]string

	paused   bool
	stepOnce bool
	err      error
}

func New(console *nes.Console) *UI {
	return &UI{
		console: console,
		disasm:  nes.Disassemble(console.Bus(), 0x8000, 0xffff),
	}
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.paused = !ui.paused
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.paused = true
		ui.stepOnce = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ui.err = ui.console.Reset()
	}

	if ui.err != nil || ui.console.CPU().Halted() {
		return nil
	}

	if ui.stepOnce {
		ui.stepOnce = false
		ui.step()
		return nil
	}
	if ui.paused {
		return nil
	}

	for cycles := 0; cycles < cpuCyclesPerFrame; {
		n, ok := ui.step()
		if !ok || ui.console.CPU().Halted() {
			break
		}
		cycles += n
	}
	return nil
}

// step keeps the first fault and stops the session on it. The window
// stays open so the state at the fault can be inspected.
func (ui *UI) step() (int, bool) {
	cycles, err := ui.console.Step()
	if err != nil {
		log.Printf("ui: console stopped: %s\n", err)
		ui.err = err
		ui.paused = true
		return cycles, false
	}
	return cycles, true
}

func statusString(p uint8) string {
	const names = "CZIDBUVN"
	var sb strings.Builder
	for bit := 7; bit >= 0; bit-- {
		if p&(1<<bit) != 0 {
			sb.WriteByte(names[bit])
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func (ui *UI) state() string {
	switch {
	case ui.err != nil:
		return "FAULT"
	case ui.console.CPU().Halted():
		return "HALTED"
	case ui.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// disasmWindowEnd is the last address decoded after pc. It stops at $FFFF
// instead of wrapping to page 0.
func disasmWindowEnd(pc uint16) uint16 {
	return uint16(min(int(pc)+3*disasmLinesAround, 0xffff))
}

// disasmLines lists the instructions before pc from the rom listing and the
// ones from pc on from live memory, so code running from ram shows up too.
func (ui *UI) disasmLines(pc uint16) []string {
	var before []string
	for addr := int(pc) - 1; addr >= 0 && addr >= int(pc)-3*disasmLinesAround && len(before) < disasmLinesAround; addr-- {
		if line, ok := ui.disasm[uint16(addr)]; ok {
			before = append([]string{" " + line}, before...)
		}
	}

	after := nes.Disassemble(ui.console.Bus(), pc, disasmWindowEnd(pc))
	lines := before
	for addr, n := int(pc), 0; addr <= 0xffff && n <= disasmLinesAround; addr++ {
		line, ok := after[uint16(addr)]
		if !ok {
			continue
		}
		prefix := " "
		if n == 0 {
			prefix = "*"
		}
		lines = append(lines, prefix+line)
		n++
	}
	return lines
}

func (ui *UI) Draw(screen *ebiten.Image) {
	regs := ui.console.CPU().Registers()
	ppu := ui.console.PPU()

	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, " FPS: %0.0f\n", ebiten.ActualFPS())
	fmt.Fprintf(&infoStr, " STATE: %s\n", ui.state())
	fmt.Fprintf(&infoStr, " STATUS: %s\n", statusString(regs.P))
	fmt.Fprintf(&infoStr, " PC: %04X\n", regs.PC)
	fmt.Fprintf(&infoStr, " A: $%02X [%03d]", regs.A, regs.A)
	fmt.Fprintf(&infoStr, " X: $%02X [%03d]", regs.X, regs.X)
	fmt.Fprintf(&infoStr, " Y: $%02X [%03d]\n", regs.Y, regs.Y)
	fmt.Fprintf(&infoStr, " SP: $%02X\n", regs.SP)
	fmt.Fprintf(&infoStr, " CYC: %d STEPS: %d\n", ui.console.CPU().TotalCycles(), ui.console.Steps())
	fmt.Fprintf(&infoStr, " FRAME: %d LINE: %d DOT: %d\n", ppu.Frame(), ppu.Scanline(), ppu.Dot())
	fmt.Fprintf(&infoStr, " VRAM: $%04X\n\n", ppu.VRAMAddr())
	for _, line := range ui.disasmLines(regs.PC) {
		infoStr.WriteString(line + "\n")
	}
	if ui.err != nil {
		fmt.Fprintf(&infoStr, "\n %s\n", ui.err)
	}

	debugScreenOffsetX := float32(viewWidth)
	vector.DrawFilledRect(screen, debugScreenOffsetX, 0, debugScreenWidth, debugScreenHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, infoStr.String(), int(debugScreenOffsetX), 0)

	nametablesImg := ebiten.NewImageFromImage(ppu.Nametables())
	screen.DrawImage(nametablesImg, &ebiten.DrawImageOptions{})

	patternsImg := ebiten.NewImageFromImage(ppu.PatternTables())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(patternsScale, patternsScale)
	op.GeoM.Translate(0, nes.NametablesHeight)
	screen.DrawImage(patternsImg, op)
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return viewWidth + debugScreenWidth, viewHeight
}

func RunUI(ui *UI) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(viewWidth+debugScreenWidth, viewHeight)
	ebiten.SetWindowTitle("nestic")
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
