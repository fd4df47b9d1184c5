// Package emu assembles the hardware blocks into a NES and drives them with
// a single master clock.
package emu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/mappers"
	"nescore/hw/snapshot"
	"nescore/ines"
)

// The master clock ticks the PPU, the CPU runs at a third of its rate.
const cpuDivider = 3

type NES struct {
	CPU    *hw.CPU
	PPU    *hw.PPU
	Bus    *hw.Bus
	DMA    *hw.OAMDMA
	Mapper hw.Mapper
	Rom    *ines.Rom

	counter hw.ScanlineCounter // non-nil if the mapper raises IRQs

	clock int64 // master clock (PPU dots)
}

// New assembles a NES around rom.
func New(rom *ines.Rom, cfg Config) (*NES, error) {
	mapper, err := mappers.New(rom)
	if err != nil {
		return nil, err
	}

	ppu := hw.NewPPU(mapper)
	if cfg.Video.Palette != "" {
		buf, err := os.ReadFile(cfg.Video.Palette)
		if err != nil {
			return nil, fmt.Errorf("failed to read palette: %w", err)
		}
		pal, err := hw.ParsePalette(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Video.Palette, err)
		}
		ppu.SetPalette(pal)
	}

	bus := hw.NewBus(ppu, mapper)
	cpu := hw.NewCPU(bus)
	cpu.PPU = ppu

	nes := &NES{
		CPU:    cpu,
		PPU:    ppu,
		Bus:    bus,
		DMA:    hw.NewOAMDMA(bus),
		Mapper: mapper,
		Rom:    rom,
	}
	nes.counter, _ = mapper.(hw.ScanlineCounter)
	nes.Reset()

	if cfg.Debug.Nestest {
		// Automation mode: skip the reset vector.
		nes.CPU.PC = 0xC000
	}
	return nes, nil
}

// Reset performs a power-up reset of the whole console.
func (nes *NES) Reset() {
	nes.clock = 0
	nes.Mapper.Reset()
	nes.Bus.RAM.Reset()
	nes.Bus.Ports.Reset()
	nes.Bus.APU.Reset()
	nes.PPU.Reset()
	nes.DMA.Reset()
	nes.CPU.Reset()
}

// SoftReset emulates the reset button.
func (nes *NES) SoftReset() {
	nes.DMA.Reset()
	nes.Bus.APU.SoftReset()
	nes.CPU.SoftReset()
}

// SetTraceOutput enables (w != nil) or disables the CPU execution trace.
func (nes *NES) SetTraceOutput(w io.Writer) {
	nes.CPU.SetTraceOutput(w)
}

// Clock advances the console by one PPU dot. Every third dot the CPU (or
// the DMA unit, while a transfer halts the CPU) runs a cycle. Clock reports
// whether the CPU started a new instruction.
func (nes *NES) Clock() bool {
	nes.PPU.Tick()

	started := false
	if nes.clock%cpuDivider == 0 {
		started = nes.clockCPU()
	}
	nes.clock++

	if nes.counter != nil && nes.counter.IRQRequested() {
		nes.CPU.SetIRQ(hw.IRQMapper, true)
		nes.counter.IRQHandled()
	}
	if nes.PPU.NMI() {
		nes.CPU.TriggerNMI()
		nes.PPU.ClearNMI()
	}
	return started
}

func (nes *NES) clockCPU() bool {
	started := nes.runCPUCycle()

	// The frame counter interrupt is level triggered, the line follows the
	// APU flag until $4015 is read or $4017 inhibits it.
	nes.Bus.APU.Clock()
	nes.CPU.SetIRQ(hw.IRQExternal, nes.Bus.APU.IRQ())
	return started
}

func (nes *NES) runCPUCycle() bool {
	if nes.DMA.Active() {
		nes.DMA.Clock()
		nes.CPU.Cycles++
		return false
	}

	// A DMA requested by the last instruction starts before the next one.
	if nes.CPU.Idle() {
		if page, ok := nes.PPU.DMARequest(); ok {
			nes.PPU.ClearDMARequest()
			nes.DMA.Start(page, nes.CPU.Cycles&1 == 1)
			nes.DMA.Clock()
			nes.CPU.Cycles++
			return false
		}
	}
	return nes.CPU.Clock()
}

// Step clocks the console until the CPU starts a new instruction.
func (nes *NES) Step() {
	for !nes.Clock() {
	}
}

// RunFrame clocks the console until the PPU has finished a frame.
func (nes *NES) RunFrame() {
	for {
		nes.Clock()
		if nes.PPU.FrameFinished() {
			return
		}
	}
}

// RunFrames runs n frames.
func (nes *NES) RunFrames(n int) {
	for range n {
		nes.RunFrame()
	}
}

// Snapshot returns a copy of the console state.
func (nes *NES) Snapshot() snapshot.NES {
	s := snapshot.NES{
		Version: snapshot.Version,
		CPU:     nes.CPU.State(),
		PPU:     nes.PPU.State(),
		DMA:     nes.DMA.State(),
		APU:     nes.Bus.APU.State(),
	}
	copy(s.RAM[:], nes.Bus.RAM.Data)
	return s
}

// ZeroPage returns an hexdump of the first 256 bytes of RAM.
func (nes *NES) ZeroPage() string {
	var sb strings.Builder
	for row := 0; row < 0x100; row += 0x10 {
		fmt.Fprintf(&sb, "%02X:", row)
		for col := range 0x10 {
			fmt.Fprintf(&sb, " %02X", nes.Bus.RAM.Data[row+col])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// AddLogContext adds the emulation position to log entries.
func (nes *NES) AddLogContext(z *log.EntryZ) {
	z.Uint("frame", uint(nes.PPU.Frame()))
	z.Int("sl", nes.PPU.Scanline)
	z.Int("dot", nes.PPU.Cycle)
	z.Int64("cyc", nes.CPU.Cycles)
}
