package hw

import (
	"nescore/hw/hwio"
)

// bgPipeline holds the background tile latches and shift registers.
type bgPipeline struct {
	// next tile, filled by the fetches.
	ntByte uint8
	atBits uint8 // 2-bit palette selector
	patLo  uint8
	patHi  uint8

	// 16-bit shift registers, the high byte holds the tile being drawn.
	shiftLo   uint16
	shiftHi   uint16
	shiftAtLo uint16
	shiftAtHi uint16
}

// reload loads the next tile into the low byte of the shift registers.
func (bg *bgPipeline) reload() {
	bg.shiftLo = bg.shiftLo&0xFF00 | uint16(bg.patLo)
	bg.shiftHi = bg.shiftHi&0xFF00 | uint16(bg.patHi)
	bg.shiftAtLo = bg.shiftAtLo&0xFF00 | 0xFF*uint16(bg.atBits&1)
	bg.shiftAtHi = bg.shiftAtHi&0xFF00 | 0xFF*uint16(bg.atBits>>1&1)
}

func (bg *bgPipeline) shift() {
	bg.shiftLo <<= 1
	bg.shiftHi <<= 1
	bg.shiftAtLo <<= 1
	bg.shiftAtHi <<= 1
}

// pixel returns the 2-bit pixel value and palette at the current position.
func (bg *bgPipeline) pixel(finex uint8) (pix, pal uint8) {
	bit := 15 - uint(finex)
	pix = uint8(bg.shiftHi>>bit&1)<<1 | uint8(bg.shiftLo>>bit&1)
	pal = uint8(bg.shiftAtHi>>bit&1)<<1 | uint8(bg.shiftAtLo>>bit&1)
	return pix, pal
}

func (p *PPU) shiftBg() {
	p.bg.shift()
}

func (p *PPU) fetchNametable() {
	p.bg.ntByte = p.read(0x2000 | p.vramAddr.val()&0x0FFF)
}

func (p *PPU) fetchAttribute() {
	v := p.vramAddr
	addr := 0x23C0 |
		uint16(v.nametable())<<10 |
		uint16(v.coarsey()>>2)<<3 |
		uint16(v.coarsex()>>2)

	// Each attribute byte covers 4x4 tiles, 2 bits per 2x2 quadrant.
	at := p.read(addr)
	if v.coarsey()&0x02 != 0 {
		at >>= 4
	}
	if v.coarsex()&0x02 != 0 {
		at >>= 2
	}
	p.bg.atBits = at & 0x03
}

func (p *PPU) bgPatternAddr() uint16 {
	table := uint16(p.PPUCTRL.GetBiti(backgroundAddr)) << 12
	return table | uint16(p.bg.ntByte)<<4 | uint16(p.vramAddr.finey())
}

func (p *PPU) fetchPatternLow()  { p.bg.patLo = p.read(p.bgPatternAddr()) }
func (p *PPU) fetchPatternHigh() { p.bg.patHi = p.read(p.bgPatternAddr() + 8) }

/* sprites */

// OAM attribute bits.
const (
	sprPalette  = 0b11
	sprBehind   = 5
	sprFlipHorz = 6
	sprFlipVert = 7
)

// An activeSprite is a sprite selected for the scanline being drawn.
type activeSprite struct {
	x      uint8
	lo, hi uint8 // pattern, already flipped horizontally if needed
	attr   uint8
	zero   bool // sprite 0
}

type spriteUnit struct {
	count int
	slots [8]activeSprite
	zero  bool // sprite 0 is in range on the next line
}

type spritePixel struct {
	pix   uint8
	pal   uint8
	front bool
	zero  bool
}

// pixel returns the first opaque sprite pixel at x, lower OAM indices having
// priority.
func (s *spriteUnit) pixel(x int) spritePixel {
	for i := range s.count {
		spr := &s.slots[i]
		off := x - int(spr.x)
		if off < 0 || off > 7 {
			continue
		}
		bit := uint(7 - off)
		pix := (spr.hi>>bit&1)<<1 | spr.lo>>bit&1
		if pix == 0 {
			continue
		}
		return spritePixel{
			pix:   pix,
			pal:   spr.attr & sprPalette,
			front: !hwio.GetBit(spr.attr, sprBehind),
			zero:  spr.zero,
		}
	}
	return spritePixel{}
}

func (p *PPU) spriteHeight() int {
	if p.PPUCTRL.GetBit(spriteSize) {
		return 16
	}
	return 8
}

// evaluateSprites fills the secondary OAM with the sprites (at most 8) in
// range on the next scanline, and sets the overflow flag, bugs included.
func (p *PPU) evaluateSprites() {
	h := p.spriteHeight()
	line := p.Scanline

	for i := range p.oam2 {
		p.oam2[i] = 0xFF
	}
	p.sprites.count = 0
	p.sprites.zero = false

	inRange := func(y uint8) bool {
		diff := line - int(y)
		return diff >= 0 && diff < h
	}

	n := 0
	for ; n < 64 && p.sprites.count < 8; n++ {
		y := p.oam[n*4]
		slot := p.sprites.count * 4
		p.oam2[slot] = y
		if !inRange(y) {
			continue
		}
		copy(p.oam2[slot+1:slot+4], p.oam[n*4+1:n*4+4])
		if n == 0 {
			p.sprites.zero = true
		}
		p.sprites.count++
	}

	// Once 8 sprites are found, the PPU keeps on scanning OAM for the overflow
	// flag but wrongly increments both the sprite index and the byte index.
	m := 0
	for n < 64 {
		if inRange(p.oam[n*4+m]) {
			p.PPUSTATUS.SetBit(spriteOverflow)
			break
		}
		n++
		m = (m + 1) & 0x03
	}
}

// fetchSprites loads the patterns of the sprites found by evaluateSprites.
func (p *PPU) fetchSprites() {
	h := p.spriteHeight()

	for i := range p.sprites.count {
		y, tile, attr, x := p.oam2[i*4], p.oam2[i*4+1], p.oam2[i*4+2], p.oam2[i*4+3]

		row := p.Scanline - int(y)
		if hwio.GetBit(attr, sprFlipVert) {
			row = h - 1 - row
		}

		var addr uint16
		if h == 16 {
			table := uint16(tile&0x01) << 12
			tile &= 0xFE
			if row >= 8 {
				tile++
				row -= 8
			}
			addr = table | uint16(tile)<<4 | uint16(row)
		} else {
			table := uint16(p.PPUCTRL.GetBiti(spriteAddr)) << 12
			addr = table | uint16(tile)<<4 | uint16(row)
		}

		lo := p.read(addr)
		hi := p.read(addr + 8)
		if hwio.GetBit(attr, sprFlipHorz) {
			lo = hwio.Reverse8(lo)
			hi = hwio.Reverse8(hi)
		}

		p.sprites.slots[i] = activeSprite{
			x:    x,
			lo:   lo,
			hi:   hi,
			attr: attr,
			zero: i == 0 && p.sprites.zero,
		}
	}
}
