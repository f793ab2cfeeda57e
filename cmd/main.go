package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/nevisdale/nestic/internal/nes"
	"github.com/nevisdale/nestic/internal/ui"
	"github.com/pkg/profile"
)

const statsviewAddr = "localhost:12600"

type config struct {
	romPath        string
	trace          bool
	steps          uint64
	start          string
	patternsPath   string
	nametablesPath string
	illegal        string
	ui             bool
	profileDir     string
	statsview      bool
	memvizPath     string
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.romPath, "rom", "", "path to the iNES rom file")
	flag.BoolVar(&cfg.trace, "trace", false, "print a trace line for every instruction")
	flag.Uint64Var(&cfg.steps, "steps", 0, "stop after N instructions (0 runs until the cpu halts)")
	flag.StringVar(&cfg.start, "start", "", "start address in hex instead of the reset vector, e.g. C000")
	flag.StringVar(&cfg.patternsPath, "patterns", "", "write the pattern tables to this png file")
	flag.StringVar(&cfg.nametablesPath, "nametables", "", "write the nametables to this png file")
	flag.StringVar(&cfg.illegal, "illegal", "halt", "what to do on an illegal opcode: halt or nop")
	flag.BoolVar(&cfg.ui, "ui", false, "open the debug viewer")
	flag.StringVar(&cfg.profileDir, "profile", "", "write a cpu profile to this directory")
	flag.BoolVar(&cfg.statsview, "statsview", false, "serve runtime stats on "+statsviewAddr)
	flag.StringVar(&cfg.memvizPath, "memviz", "", "write a graphviz dot file of the final cpu state")
	flag.Parse()
	return cfg
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	addr, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(addr), nil
}

func consoleOptions(cfg config) ([]nes.Option, error) {
	var options []nes.Option

	switch cfg.illegal {
	case "halt":
	case "nop":
		options = append(options, nes.IllegalOpcodeAsNOP(true))
	default:
		return nil, fmt.Errorf("unknown -illegal mode %q", cfg.illegal)
	}

	if cfg.trace {
		options = append(options, nes.TraceTo(os.Stdout))
	}

	if cfg.start != "" {
		pc, err := parseAddr(cfg.start)
		if err != nil {
			return nil, err
		}
		options = append(options, nes.StartAt(pc))
	}
	return options, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMemviz(path string, cpu *nes.CPU) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	memviz.Map(f, cpu)
	return f.Close()
}

func run(cfg config) error {
	if cfg.romPath == "" {
		return errors.New("-rom is required")
	}

	if cfg.profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.profileDir)).Stop()
	}

	if cfg.statsview {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
			statsview.New().Start()
		}()
		log.Printf("stats server available at http://%s/debug/statsview\n", statsviewAddr)
	}

	cart, err := nes.NewCartFromFile(cfg.romPath)
	if err != nil {
		return fmt.Errorf("couldn't load rom: %w", err)
	}
	log.Printf("loaded %s: mapper %d, %d PRG bytes, %d CHR bytes, %s mirroring\n",
		cfg.romPath, cart.MapperID(), len(cart.PRG()), len(cart.CHR()), cart.Mirroring())

	options, err := consoleOptions(cfg)
	if err != nil {
		return err
	}
	console, err := nes.NewConsole(cart, options...)
	if err != nil {
		return fmt.Errorf("couldn't create console: %w", err)
	}

	if cfg.ui {
		return ui.RunUI(ui.New(console))
	}

	steps, err := console.Run(cfg.steps)
	if err != nil {
		log.Printf("console: stopped at step %d: %s\n", steps, err)
	}
	regs := console.CPU().Registers()
	log.Printf("%d steps, %d cycles, PC $%04X, frame %d\n",
		steps, console.CPU().TotalCycles(), regs.PC, console.PPU().Frame())

	if cfg.patternsPath != "" {
		if err := writePNG(cfg.patternsPath, console.PPU().PatternTables()); err != nil {
			return fmt.Errorf("couldn't write pattern tables: %w", err)
		}
		log.Printf("pattern tables written to %s\n", cfg.patternsPath)
	}
	if cfg.nametablesPath != "" {
		if err := writePNG(cfg.nametablesPath, console.PPU().Nametables()); err != nil {
			return fmt.Errorf("couldn't write nametables: %w", err)
		}
		log.Printf("nametables written to %s\n", cfg.nametablesPath)
	}
	if cfg.memvizPath != "" {
		if err := writeMemviz(cfg.memvizPath, console.CPU()); err != nil {
			return fmt.Errorf("couldn't write memviz graph: %w", err)
		}
		log.Printf("cpu graph written to %s\n", cfg.memvizPath)
	}
	return nil
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("%s\n", err)
	}
}
