package main

import (
	"fmt"
	"image/png"
	"os"
	"runtime/debug"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/ines"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		printVersion()
	case romInfosMode:
		rom, err := ines.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		checkf(rom.PrintInfos(os.Stdout), "failed to print rom infos")
	case traceMode:
		traceRom(cli.Trace)
	case runMode:
		runRom(cli.Run, cli.Log)
	}
}

func runRom(args Run, logFlag *logModMask) {
	cfg, err := emu.LoadConfigOrDefault(args.Config)
	checkf(err, "failed to load config")

	// Command line flags take precedence over the configuration file.
	checkf(applyLogConfig(cfg.General.Log, logFlag), "invalid log modules in config")
	if args.Frames > 0 {
		cfg.General.Frames = args.Frames
	}
	if args.Nestest {
		cfg.Debug.Nestest = true
	}
	trace := args.Trace
	if trace == nil && cfg.Debug.Trace != "" {
		trace = &outfile{}
		checkf(trace.open(cfg.Debug.Trace), "failed to open trace output")
	}

	rom, err := ines.Open(args.RomPath)
	checkf(err, "failed to open rom")

	nes, err := emu.New(rom, cfg)
	checkf(err, "failed to create emulator")
	log.AddContext(nes)
	defer log.RemoveContext(nes)

	if trace != nil {
		nes.SetTraceOutput(trace)
		defer trace.Close()
	}

	log.ModEmu.InfoZ("running").
		String("rom", args.RomPath).
		Int("frames", cfg.General.Frames).
		End()
	nes.RunFrames(cfg.General.Frames)

	if args.Screenshot != "" {
		checkf(saveScreenshot(nes, args.Screenshot), "failed to save screenshot")
	}
	if args.DumpState != nil {
		state := nes.Snapshot()
		_, err := state.WriteTo(args.DumpState)
		args.DumpState.Close()
		checkf(err, "failed to dump state")
	}
}

func traceRom(args Trace) {
	cfg := emu.DefaultConfig()
	cfg.Debug.Nestest = args.Nestest

	rom, err := ines.Open(args.RomPath)
	checkf(err, "failed to open rom")

	nes, err := emu.New(rom, cfg)
	checkf(err, "failed to create emulator")

	nes.SetTraceOutput(os.Stdout)
	for range args.Steps {
		nes.Step()
	}
}

func saveScreenshot(nes *emu.NES, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, nes.PPU.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("nescore", version)
}
