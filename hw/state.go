package hw

import "nescore/hw/snapshot"

// State returns a copy of the CPU registers and interrupt lines.
func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		PC:         c.PC,
		SP:         c.SP,
		P:          uint8(c.P),
		A:          c.A,
		X:          c.X,
		Y:          c.Y,
		Cycles:     c.Cycles,
		NMIPending: c.nmiPending,
		IRQLines:   uint8(c.irq),
	}
}

// State returns a copy of the PPU memories, registers and counters.
func (p *PPU) State() snapshot.PPU {
	return snapshot.PPU{
		Palette:    p.palettes,
		OAMMem:     p.oam,
		Nametables: p.nametables,
		OpenBus:    p.openBus,
		OAMAddr:    p.OAMADDR.Value,
		VRAMAddr:   p.vramAddr.val(),
		VRAMTemp:   p.vramTmp.val(),
		FineX:      p.finex,
		WriteLatch: p.writeLatch,
		PPUDataBuf: p.readBuf,
		PPUCTRL:    p.PPUCTRL.Value,
		PPUMASK:    p.PPUMASK.Value,
		PPUSTATUS:  p.PPUSTATUS.Value,
		Cycle:      p.Cycle,
		Scanline:   p.Scanline,
		FrameCount: p.frame,
	}
}

func (dma *OAMDMA) State() snapshot.DMA {
	return snapshot.DMA{OAMRunning: dma.active}
}

func (a *APU) State() snapshot.APU {
	s := snapshot.APU{
		Registers:  a.regs,
		FiveStep:   a.frame.fiveStep,
		IRQInhibit: a.frame.inhibit,
		FrameIRQ:   a.frame.irq,
		FrameStep:  a.frame.step,
		FrameCycle: a.frame.cycle,
	}
	for i, lc := range a.lengths {
		s.Lengths[i] = lc.counter
		if lc.enabled {
			s.Enabled |= 1 << i
		}
	}
	if a.dmc {
		s.Enabled |= 0x10
	}
	return s
}
