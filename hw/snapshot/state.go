// Package snapshot holds plain copies of the emulated hardware state, for
// debugging and tests, and their JSON encoding.
package snapshot

import (
	"io"

	"github.com/go-faster/jx"
)

const Version = 1

type NES struct {
	Version int
	CPU     CPU
	RAM     [0x800]uint8
	PPU     PPU
	DMA     DMA
	APU     APU
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64

	NMIPending bool
	IRQLines   uint8
}

type DMA struct {
	OAMRunning bool
}

type APU struct {
	Registers [0x14]uint8 // $4000-$4013 latches
	Lengths   [4]uint8    // pulse 1, pulse 2, triangle, noise
	Enabled   uint8       // last write to $4015

	FiveStep   bool
	IRQInhibit bool
	FrameIRQ   bool
	FrameStep  int
	FrameCycle int
}

type PPU struct {
	Palette    [0x20]uint8
	OAMMem     [0x100]uint8
	Nametables [0x1000]uint8

	OpenBus    uint8
	OAMAddr    uint8
	VRAMAddr   uint16
	VRAMTemp   uint16
	FineX      uint8
	WriteLatch bool
	PPUDataBuf uint8

	PPUCTRL   uint8
	PPUMASK   uint8
	PPUSTATUS uint8

	Cycle      int
	Scanline   int
	FrameCount uint64
}

// Encode writes the snapshot as a JSON object.
func (s *NES) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("Version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("CPU", s.CPU.Encode)
		e.Field("RAM", func(e *jx.Encoder) { e.Base64(s.RAM[:]) })
		e.Field("PPU", s.PPU.Encode)
		e.Field("DMA", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("OAMRunning", func(e *jx.Encoder) { e.Bool(s.DMA.OAMRunning) })
			})
		})
		e.Field("APU", s.APU.Encode)
	})
}

// WriteTo writes the indented JSON encoding of s to w.
func (s *NES) WriteTo(w io.Writer) (int64, error) {
	var e jx.Encoder
	e.SetIdent(2)
	s.Encode(&e)
	return e.WriteTo(w)
}

func (c *CPU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("PC", func(e *jx.Encoder) { e.UInt16(c.PC) })
		e.Field("SP", func(e *jx.Encoder) { e.UInt8(c.SP) })
		e.Field("P", func(e *jx.Encoder) { e.UInt8(c.P) })
		e.Field("A", func(e *jx.Encoder) { e.UInt8(c.A) })
		e.Field("X", func(e *jx.Encoder) { e.UInt8(c.X) })
		e.Field("Y", func(e *jx.Encoder) { e.UInt8(c.Y) })
		e.Field("Cycles", func(e *jx.Encoder) { e.Int64(c.Cycles) })
		e.Field("NMIPending", func(e *jx.Encoder) { e.Bool(c.NMIPending) })
		e.Field("IRQLines", func(e *jx.Encoder) { e.UInt8(c.IRQLines) })
	})
}

func (a *APU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("Registers", func(e *jx.Encoder) { e.Base64(a.Registers[:]) })
		e.Field("Lengths", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range a.Lengths {
					e.UInt8(l)
				}
			})
		})
		e.Field("Enabled", func(e *jx.Encoder) { e.UInt8(a.Enabled) })
		e.Field("FiveStep", func(e *jx.Encoder) { e.Bool(a.FiveStep) })
		e.Field("IRQInhibit", func(e *jx.Encoder) { e.Bool(a.IRQInhibit) })
		e.Field("FrameIRQ", func(e *jx.Encoder) { e.Bool(a.FrameIRQ) })
		e.Field("FrameStep", func(e *jx.Encoder) { e.Int(a.FrameStep) })
		e.Field("FrameCycle", func(e *jx.Encoder) { e.Int(a.FrameCycle) })
	})
}

func (p *PPU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("Palette", func(e *jx.Encoder) { e.Base64(p.Palette[:]) })
		e.Field("OAMMem", func(e *jx.Encoder) { e.Base64(p.OAMMem[:]) })
		e.Field("Nametables", func(e *jx.Encoder) { e.Base64(p.Nametables[:]) })
		e.Field("OpenBus", func(e *jx.Encoder) { e.UInt8(p.OpenBus) })
		e.Field("OAMAddr", func(e *jx.Encoder) { e.UInt8(p.OAMAddr) })
		e.Field("VRAMAddr", func(e *jx.Encoder) { e.UInt16(p.VRAMAddr) })
		e.Field("VRAMTemp", func(e *jx.Encoder) { e.UInt16(p.VRAMTemp) })
		e.Field("FineX", func(e *jx.Encoder) { e.UInt8(p.FineX) })
		e.Field("WriteLatch", func(e *jx.Encoder) { e.Bool(p.WriteLatch) })
		e.Field("PPUDataBuf", func(e *jx.Encoder) { e.UInt8(p.PPUDataBuf) })
		e.Field("PPUCTRL", func(e *jx.Encoder) { e.UInt8(p.PPUCTRL) })
		e.Field("PPUMASK", func(e *jx.Encoder) { e.UInt8(p.PPUMASK) })
		e.Field("PPUSTATUS", func(e *jx.Encoder) { e.UInt8(p.PPUSTATUS) })
		e.Field("Cycle", func(e *jx.Encoder) { e.Int(p.Cycle) })
		e.Field("Scanline", func(e *jx.Encoder) { e.Int(p.Scanline) })
		e.Field("FrameCount", func(e *jx.Encoder) { e.UInt64(p.FrameCount) })
	})
}
