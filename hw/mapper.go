package hw

import "nescore/ines"

// A Mapper is the cartridge hardware, it translates CPU and PPU accesses into
// PRG/CHR bank accesses. Read methods report false for the addresses the
// mapper doesn't drive, and write methods report whether the value was stored
// as data (as opposed to being consumed by a mapper register, or ignored).
type Mapper interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, val uint8) bool

	PPURead(addr uint16) (uint8, bool)
	PPUWrite(addr uint16, val uint8) bool

	// Mirroring reports the current nametable arrangement.
	Mirroring() ines.NTMirroring
	Reset()
}

// A ScanlineCounter is a mapper counting rendered scanlines in order to
// raise interrupts.
type ScanlineCounter interface {
	// ScanlineFinished is called by the PPU once per rendered scanline.
	ScanlineFinished()
	IRQRequested() bool
	IRQHandled()
}

// A PPUPeeker is a mapper whose PPU reads have side effects. PPUPeek provides
// the same data without them.
type PPUPeeker interface {
	PPUPeek(addr uint16) (uint8, bool)
}
