package hw

import (
	"image"

	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/ines"
)

const (
	NumScanlines = 262 // Number of scanlines per frame.
	NumCycles    = 341 // Number of PPU cycles per scanline.

	ScreenWidth  = 256
	ScreenHeight = 240
)

// Special scanlines.
const (
	postRenderLine = 240
	vblankLine     = 241
	preRenderLine  = 261
)

type PPU struct {
	Cycle    int // Current cycle/pixel in scanline
	Scanline int // Current scanline being drawn

	mapper  Mapper
	counter ScanlineCounter // non-nil if the mapper counts scanlines

	// CPU-exposed memory-mapped PPU registers
	// mapped from $2000 to $2007, mirrored up to $3fff
	PPUCTRL   hwio.Reg8
	PPUMASK   hwio.Reg8
	PPUSTATUS hwio.Reg8
	OAMADDR   hwio.Reg8
	OAMDATA   hwio.Reg8
	PPUSCROLL hwio.Reg8
	PPUADDR   hwio.Reg8
	PPUDATA   hwio.Reg8

	regs    [8]*hwio.Reg8
	openBus uint8 // PPU I/O latch

	// $2000-$2FFF nametables. Only the first 2KB are used, unless in 4-screen
	// mirroring.
	nametables [0x1000]byte
	// $3F00-$3F1F palette RAM indexes.
	palettes [0x20]byte

	oam  [256]byte // primary OAM
	oam2 [32]byte  // secondary OAM

	// VRAM read/write
	vramAddr   loopy // v
	vramTmp    loopy // t
	finex      uint8 // fine X scroll
	writeLatch bool  // w
	readBuf    uint8 // PPUDATA read buffer

	bg      bgPipeline
	sprites spriteUnit

	nmi        bool
	dmaPending bool
	dmaPage    uint8

	frame         uint64
	frameFinished bool

	palette *Palette
	screen  *image.RGBA
}

// NewPPU creates a PPU accessing the cartridge through m.
func NewPPU(m Mapper) *PPU {
	p := &PPU{
		mapper:  m,
		palette: DefaultPalette(),
		screen:  image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
	}
	p.counter, _ = m.(ScanlineCounter)
	p.initRegs()
	return p
}

// Reset puts the PPU in its power-up state.
func (p *PPU) Reset() {
	p.Scanline = 0
	p.Cycle = 0
	p.PPUCTRL.Value = 0
	p.PPUMASK.Value = 0
	p.PPUSTATUS.Value = 0
	p.OAMADDR.Value = 0
	p.openBus = 0
	p.vramAddr = 0
	p.vramTmp = 0
	p.finex = 0
	p.writeLatch = false
	p.readBuf = 0
	p.bg = bgPipeline{}
	p.sprites = spriteUnit{}
	p.nmi = false
	p.dmaPending = false
	p.frame = 0
	p.frameFinished = false
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK.GetBit(showBg) || p.PPUMASK.GetBit(showSprites)
}

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	p.frameFinished = false

	switch {
	case p.Scanline < postRenderLine:
		p.renderLine()
		if p.Cycle >= 1 && p.Cycle <= 256 {
			p.drawDot()
		}

	case p.Scanline == vblankLine:
		if p.Cycle == 1 {
			p.PPUSTATUS.SetBit(vblank)
			if p.PPUCTRL.GetBit(nmi) {
				p.nmi = true
			}
			log.ModPPU.DebugZ("vblank start").Uint64("frame", p.frame).End()
		}

	case p.Scanline == preRenderLine:
		if p.Cycle == 1 {
			// Clear vblank, sprite0Hit and spriteOverflow
			const mask = 1<<vblank | 1<<sprite0Hit | 1<<spriteOverflow
			p.PPUSTATUS.ClearBits(mask)
		}
		// The same memory accesses as a visible line occur.
		p.renderLine()
		if p.Cycle >= 280 && p.Cycle <= 304 && p.renderingEnabled() {
			p.vramAddr.copyVert(p.vramTmp)
		}
	}

	p.Cycle++
	if p.Cycle < NumCycles {
		return
	}

	p.Cycle = 0
	p.Scanline++
	if p.Scanline < NumScanlines {
		return
	}

	p.Scanline = 0
	p.frame++
	p.frameFinished = true

	// The idle dot of the first line is skipped on odd frames.
	if p.frame&1 == 1 && p.renderingEnabled() {
		p.Cycle = 1
	}
}

// renderLine runs the fetches and scroll updates of a visible or pre-render
// line.
func (p *PPU) renderLine() {
	if !p.renderingEnabled() {
		if p.Cycle == 257 {
			p.sprites.count = 0
		}
		return
	}

	switch {
	case p.Cycle >= 2 && p.Cycle <= 255, p.Cycle >= 321 && p.Cycle <= 337:
		p.shiftBg()
		switch (p.Cycle - 1) & 7 {
		case 0:
			p.bg.reload()
			p.fetchNametable()
		case 2:
			p.fetchAttribute()
		case 4:
			p.fetchPatternLow()
		case 6:
			p.fetchPatternHigh()
		case 7:
			p.vramAddr.incCoarseX()
		}

	case p.Cycle == 256:
		p.shiftBg()
		p.vramAddr.incCoarseX()
		p.vramAddr.incY()

	case p.Cycle == 257:
		p.shiftBg()
		p.fetchNametable()
		p.bg.reload()
		p.vramAddr.copyHorz(p.vramTmp)

		if p.Scanline == preRenderLine {
			p.sprites.count = 0
		} else {
			p.evaluateSprites()
			p.fetchSprites()
		}

	case p.Cycle == 260:
		if p.counter != nil {
			p.counter.ScanlineFinished()
		}

	case p.Cycle == 338 || p.Cycle == 340:
		p.fetchNametable()
	}
}

// copyHorz copies coarse X and the horizontal nametable bit from t.
func (l *loopy) copyHorz(t loopy) {
	const mask = 0x041F
	*l = *l&^mask | t&mask
}

// copyVert copies coarse Y, fine Y and the vertical nametable bit from t.
func (l *loopy) copyVert(t loopy) {
	const mask = 0x7BE0
	*l = *l&^mask | t&mask
}

// drawDot composites the pixel at the current dot.
func (p *PPU) drawDot() {
	x := p.Cycle - 1

	var bgPix, bgPal uint8
	if p.PPUMASK.GetBit(showBg) && (x >= 8 || p.PPUMASK.GetBit(leftmostBg)) {
		bgPix, bgPal = p.bg.pixel(p.finex)
	}

	var sp spritePixel
	if p.PPUMASK.GetBit(showSprites) && (x >= 8 || p.PPUMASK.GetBit(leftmostSprites)) {
		sp = p.sprites.pixel(x)
	}

	var palAddr uint16
	switch {
	case bgPix == 0 && sp.pix == 0:
		palAddr = 0x3F00
	case bgPix == 0:
		palAddr = 0x3F10 | uint16(sp.pal)<<2 | uint16(sp.pix)
	case sp.pix == 0:
		palAddr = 0x3F00 | uint16(bgPal)<<2 | uint16(bgPix)
	default:
		if sp.zero && p.sprite0HitEligible(x) {
			p.PPUSTATUS.SetBit(sprite0Hit)
		}
		if sp.front {
			palAddr = 0x3F10 | uint16(sp.pal)<<2 | uint16(sp.pix)
		} else {
			palAddr = 0x3F00 | uint16(bgPal)<<2 | uint16(bgPix)
		}
	}

	c := p.palette[p.readPalette(palAddr)&0x3F]
	off := p.screen.PixOffset(x, p.Scanline)
	p.screen.Pix[off+0] = c.R
	p.screen.Pix[off+1] = c.G
	p.screen.Pix[off+2] = c.B
	p.screen.Pix[off+3] = 0xFF
}

// sprite0HitEligible reports whether an opaque sprite 0 pixel overlapping an
// opaque background pixel at x sets the sprite 0 hit flag.
func (p *PPU) sprite0HitEligible(x int) bool {
	switch {
	case !p.PPUMASK.GetBit(showBg) || !p.PPUMASK.GetBit(showSprites):
		return false
	case x < 8 && (!p.PPUMASK.GetBit(leftmostBg) || !p.PPUMASK.GetBit(leftmostSprites)):
		return false
	case x == 255:
		return false
	case p.Scanline >= 239:
		return false
	}
	return true
}

/* memory accesses */

// ntOffset maps a nametable address ($2000-$3EFF) to an offset into the
// nametables RAM, according to the mirroring.
func ntOffset(addr uint16, mirroring ines.NTMirroring) uint16 {
	table := addr >> 10 & 0x03
	off := addr & 0x03FF
	switch mirroring {
	case ines.HorzMirroring:
		table >>= 1
	case ines.VertMirroring:
		table &= 1
	case ines.OnlyAScreen:
		table = 0
	case ines.OnlyBScreen:
		table = 1
	}
	return table<<10 | off
}

// paletteOffset maps a palette address to the palette RAM offset.
// $3F10/$3F14/$3F18/$3F1C mirror $3F00/$3F04/$3F08/$3F0C.
func paletteOffset(addr uint16) uint16 {
	off := addr & 0x1F
	if off&0x13 == 0x10 {
		off &^= 0x10
	}
	return off
}

func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		return p.readPalette(addr)
	}
	if val, ok := p.mapper.PPURead(addr); ok {
		return val
	}
	if addr < 0x2000 {
		return 0
	}
	return p.nametables[ntOffset(addr, p.mapper.Mirroring())]
}

// peek is read without side effects.
func (p *PPU) peek(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		return p.readPalette(addr)
	}
	if pk, ok := p.mapper.(PPUPeeker); ok {
		if val, ok := pk.PPUPeek(addr); ok {
			return val
		}
	} else if val, ok := p.mapper.PPURead(addr); ok {
		return val
	}
	if addr < 0x2000 {
		return 0
	}
	return p.nametables[ntOffset(addr, p.mapper.Mirroring())]
}

func (p *PPU) write(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr >= 0x3F00:
		p.palettes[paletteOffset(addr)] = val & 0x3F
	case p.mapper.PPUWrite(addr, val):
	case addr < 0x2000:
		log.ModPPU.DebugZ("write to CHR ROM ignored").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	default:
		p.nametables[ntOffset(addr, p.mapper.Mirroring())] = val
	}
}

func (p *PPU) readPalette(addr uint16) uint8 {
	val := p.palettes[paletteOffset(addr)]
	if p.PPUMASK.GetBit(greyscale) {
		val &= 0x30
	}
	return val
}

/* collaborator interface */

// FrameFinished reports whether the last Tick completed a frame.
func (p *PPU) FrameFinished() bool { return p.frameFinished }

// Frame returns the number of frames completed since reset.
func (p *PPU) Frame() uint64 { return p.frame }

// FrameBuffer returns the 256x240 RGBA frame buffer. It must only be read
// between frames.
func (p *PPU) FrameBuffer() []byte { return p.screen.Pix }

// Image returns the frame buffer as an image.
func (p *PPU) Image() *image.RGBA { return p.screen }

// NMI reports whether the PPU is requesting a non-maskable interrupt.
func (p *PPU) NMI() bool { return p.nmi }
func (p *PPU) ClearNMI() { p.nmi = false }

// DMARequest reports whether an OAM DMA transfer has been requested (by a
// write to $4014) and returns the source page.
func (p *PPU) DMARequest() (page uint8, ok bool) { return p.dmaPage, p.dmaPending }
func (p *PPU) ClearDMARequest()                  { p.dmaPending = false }

// RequestDMA is called on writes to $4014.
func (p *PPU) RequestDMA(page uint8) {
	log.ModDMA.DebugZ("Write to OAMDMA").Hex8("page", page).End()
	p.dmaPage = page
	p.dmaPending = true
}

// SetPalette sets the palette used to convert color indices into RGB.
func (p *PPU) SetPalette(pal *Palette) { p.palette = pal }

// PatternTables returns a copy of both pattern tables, without side effects
// on the mapper.
func (p *PPU) PatternTables() (left, right [0x1000]byte) {
	for i := range uint16(0x1000) {
		left[i] = p.peek(i)
		right[i] = p.peek(0x1000 | i)
	}
	return left, right
}

// OAM returns a copy of the primary OAM.
func (p *PPU) OAM() [256]byte { return p.oam }

// Palettes returns a copy of the palette RAM.
func (p *PPU) Palettes() [0x20]byte { return p.palettes }

// Nametables returns a copy of the 4 logical nametables ($2000-$2FFF).
func (p *PPU) Nametables() (nt [0x1000]byte) {
	for i := range uint16(0x1000) {
		nt[i] = p.peek(0x2000 | i)
	}
	return nt
}

// VRAMAddr returns the v and t registers, the fine X scroll and the write
// latch.
func (p *PPU) VRAMAddr() (v, t uint16, finex uint8, latch bool) {
	return p.vramAddr.val(), p.vramTmp.val(), p.finex, p.writeLatch
}
