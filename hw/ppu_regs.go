package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// loopy is the 15-bit VRAM address/scroll register (v and t):
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy uint16

const loopyMask = 0x7FFF

func (l loopy) coarsex() uint8   { return uint8(l & 0x1F) }
func (l loopy) coarsey() uint8   { return uint8(l >> 5 & 0x1F) }
func (l loopy) nametable() uint8 { return uint8(l >> 10 & 0x03) }
func (l loopy) ntx() uint8       { return uint8(l >> 10 & 0x01) }
func (l loopy) nty() uint8       { return uint8(l >> 11 & 0x01) }
func (l loopy) finey() uint8     { return uint8(l >> 12 & 0x07) }
func (l loopy) low() uint8       { return uint8(l) }
func (l loopy) high() uint8      { return uint8(l >> 8 & 0x7F) }
func (l loopy) addr() uint16     { return uint16(l) & 0x3FFF }
func (l loopy) val() uint16      { return uint16(l) & loopyMask }

func (l *loopy) setField(shift, width uint, v uint16) {
	mask := loopy((1<<width - 1) << shift)
	*l = *l&^mask | loopy(v<<shift)&mask
}

func (l *loopy) setCoarsex(v uint8)   { l.setField(0, 5, uint16(v)) }
func (l *loopy) setCoarsey(v uint8)   { l.setField(5, 5, uint16(v)) }
func (l *loopy) setNametable(v uint8) { l.setField(10, 2, uint16(v)) }
func (l *loopy) setFiney(v uint8)     { l.setField(12, 3, uint16(v)) }
func (l *loopy) setLow(v uint8)       { l.setField(0, 8, uint16(v)) }
func (l *loopy) setHigh(v uint8)      { l.setField(8, 7, uint16(v)) }

// incCoarseX increments coarse X, switching the horizontal nametable on
// wrap around.
func (l *loopy) incCoarseX() {
	if l.coarsex() == 31 {
		l.setCoarsex(0)
		*l ^= 0x0400
		return
	}
	*l++
}

// incY increments fine Y, overflowing into coarse Y. Coarse Y wraps at 29,
// switching the vertical nametable, or at 31 (attribute rows) without
// switching.
func (l *loopy) incY() {
	if l.finey() < 7 {
		*l += 0x1000
		return
	}
	l.setFiney(0)
	switch y := l.coarsey(); y {
	case 29:
		l.setCoarsey(0)
		*l ^= 0x0800
	case 31:
		l.setCoarsey(0)
	default:
		l.setCoarsey(y + 1)
	}
}

const (
	// PPUCTRL bits
	// $2000

	// Nametable selection mask
	// (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
	ntselect = 0b11

	// VRAM address increment per CPU read/write of PPUDATA
	// (0: +1 i.e. horizontal; 1: +32 i.e. vertical)
	vramIncr = 2

	// Sprite pattern table address for 8x8 sprites
	// (0: $0000; 1: $1000; ignored in 8x16 mode)
	spriteAddr = 3

	// Background pattern table address (0: $0000; 1: $1000)
	backgroundAddr = 4

	// Sprite size (0: 8x8 pixels; 1: 8x16 pixels – see byte 1 of OAM)
	spriteSize = 5

	// Generate an NMI at the start of the
	// vertical blanking interval (0: off; 1: on)
	nmi = 7
)

const (
	// PPUMASK bits
	// $2001

	// Greyscale
	// (0: normal color, 1: produce a greyscale display)
	greyscale = 0

	// Show background in leftmost 8 pixels of screen
	leftmostBg = 1

	// Show sprites in leftmost 8 pixels of screen
	leftmostSprites = 2

	showBg      = 3
	showSprites = 4
)

const (
	// PPUSTATUS bits
	// $2002

	// Returns stale PPU bus contents.
	openbusMask = 0b11111

	// Set during sprite evaluation when more than 8 sprites are found on a
	// scanline (with false positives and negatives); cleared at dot 1 of
	// the pre-render line.
	spriteOverflow = 5

	// Set when a nonzero pixel of sprite 0 overlaps a nonzero background
	// pixel; cleared at dot 1 of the pre-render line.
	sprite0Hit = 6

	// Set at dot 1 of line 241; cleared after reading $2002 and at dot 1 of
	// the pre-render line.
	vblank = 7
)

// Offsets of the CPU-exposed registers, mapped from $2000 to $2007 and
// mirrored up to $3FFF.
const (
	regPPUCTRL = iota
	regPPUMASK
	regPPUSTATUS
	regOAMADDR
	regOAMDATA
	regPPUSCROLL
	regPPUADDR
	regPPUDATA
)

func (p *PPU) initRegs() {
	p.PPUCTRL = hwio.Reg8{Name: "PPUCTRL", Flags: hwio.WriteOnlyFlag, WriteCb: p.writePPUCTRL}
	p.PPUMASK = hwio.Reg8{Name: "PPUMASK", Flags: hwio.WriteOnlyFlag}
	p.PPUSTATUS = hwio.Reg8{Name: "PPUSTATUS", Flags: hwio.ReadOnlyFlag, ReadCb: p.readPPUSTATUS, PeekCb: p.peekPPUSTATUS}
	p.OAMADDR = hwio.Reg8{Name: "OAMADDR", Flags: hwio.WriteOnlyFlag}
	p.OAMDATA = hwio.Reg8{Name: "OAMDATA", ReadCb: p.readOAMDATA, PeekCb: p.readOAMDATA, WriteCb: p.writeOAMDATA}
	p.PPUSCROLL = hwio.Reg8{Name: "PPUSCROLL", Flags: hwio.WriteOnlyFlag, WriteCb: p.writePPUSCROLL}
	p.PPUADDR = hwio.Reg8{Name: "PPUADDR", Flags: hwio.WriteOnlyFlag, WriteCb: p.writePPUADDR}
	p.PPUDATA = hwio.Reg8{Name: "PPUDATA", ReadCb: p.readPPUDATA, PeekCb: p.peekPPUDATA, WriteCb: p.writePPUDATA}

	p.regs = [8]*hwio.Reg8{
		&p.PPUCTRL, &p.PPUMASK, &p.PPUSTATUS, &p.OAMADDR,
		&p.OAMDATA, &p.PPUSCROLL, &p.PPUADDR, &p.PPUDATA,
	}
}

// ReadRegister reads the CPU-exposed register at addr ($2000-$3FFF).
// Reading a write-only register returns the content of the PPU I/O latch.
func (p *PPU) ReadRegister(addr uint16, peek bool) uint8 {
	reg := p.regs[addr&0x07]
	if reg.Flags&hwio.WriteOnlyFlag != 0 {
		return p.openBus
	}
	val := reg.Read8(addr, peek)
	if !peek {
		p.openBus = val
	}
	return val
}

// WriteRegister writes the CPU-exposed register at addr ($2000-$3FFF).
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	if addr&0x07 == regPPUSTATUS {
		log.ModPPU.DebugZ("write to PPUSTATUS ignored").Hex8("val", val).End()
		return
	}
	p.regs[addr&0x07].Write8(addr, val)
}

// PPUCTRL: $2000
func (p *PPU) writePPUCTRL(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUCTRL").Hex8("val", val).End()

	// By toggling the nmi bit during vblank without reading PPUSTATUS, a
	// program can cause /nmi to be pulled low multiple times.
	if old&(1<<nmi) == 0 && val&(1<<nmi) != 0 && p.PPUSTATUS.GetBit(vblank) {
		p.nmi = true
	}

	// Transfer the nametable bits.
	p.vramTmp.setNametable(val & ntselect)
}

// PPUSTATUS: $2002
func (p *PPU) readPPUSTATUS(val uint8) uint8 {
	ret := val&^openbusMask | p.openBus&openbusMask
	p.writeLatch = false
	p.PPUSTATUS.ClearBit(vblank)
	return ret
}

func (p *PPU) peekPPUSTATUS(val uint8) uint8 {
	return val&^openbusMask | p.openBus&openbusMask
}

// OAMDATA: $2004
func (p *PPU) readOAMDATA(_ uint8) uint8 {
	return p.oam[p.OAMADDR.Value]
}

func (p *PPU) writeOAMDATA(_, val uint8) {
	addr := p.OAMADDR.Value
	if addr&0x03 == 2 {
		// Bits 2-4 of the attribute byte don't exist.
		val &= 0xE3
	}
	p.oam[addr] = val
	p.OAMADDR.Value++
}

// PPUSCROLL: $2005
func (p *PPU) writePPUSCROLL(_, val uint8) {
	log.ModPPU.DebugZ("Write to PPUSCROLL").Hex8("val", val).End()

	if !p.writeLatch { // first write
		p.finex = val & 0b111
		p.vramTmp.setCoarsex(val >> 3)
	} else { // second write
		p.vramTmp.setFiney(val & 0b111)
		p.vramTmp.setCoarsey(val >> 3)
	}

	p.writeLatch = !p.writeLatch
}

// To read/write VRAM from CPU, PPUADDR is set to the address of the operation.
// It's a 16-bit register so 2 writes are necessary.
// PPUADDR: $2006
func (p *PPU) writePPUADDR(_, val uint8) {
	if !p.writeLatch { // first write
		// bit 14 is cleared.
		p.vramTmp.setHigh(val & 0b11_1111)
	} else { // second write
		p.vramTmp.setLow(val)
		p.vramAddr = p.vramTmp
	}

	p.writeLatch = !p.writeLatch
}

// PPUDATA: $2007
func (p *PPU) readPPUDATA(_ uint8) uint8 {
	addr := p.vramAddr.addr()

	var val uint8
	if addr < 0x3F00 {
		// Reading VRAM is too slow so the actual data
		// will be returned at the next read.
		val = p.readBuf
		p.readBuf = p.read(addr)
	} else {
		// Reading palette data is immediate, the top 2 bits are open bus.
		val = p.readPalette(addr) | p.openBus&0xC0
		// The buffer gets the nametable byte 'under' the palette.
		p.readBuf = p.read(addr - 0x1000)
	}

	log.ModPPU.DebugZ("VRAM read").
		Hex16("addr", addr).
		Hex8("val", val).
		End()

	p.incVRAMaddr()
	return val
}

func (p *PPU) peekPPUDATA(_ uint8) uint8 {
	addr := p.vramAddr.addr()
	if addr < 0x3F00 {
		return p.readBuf
	}
	return p.readPalette(addr) | p.openBus&0xC0
}

// PPUDATA: $2007
func (p *PPU) writePPUDATA(_, val uint8) {
	addr := p.vramAddr.addr()
	p.write(addr, val)

	log.ModPPU.DebugZ("VRAM write").
		Hex16("addr", addr).
		Hex8("val", val).
		End()

	p.incVRAMaddr()
}

// After each i/o on PPUDATA, v is incremented.
func (p *PPU) incVRAMaddr() {
	incr := loopy(1)
	if p.PPUCTRL.GetBit(vramIncr) {
		incr = 32
	}
	p.vramAddr = (p.vramAddr + incr) & loopyMask
}
