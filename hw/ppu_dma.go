package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// OAMDMA copies a 256-byte page of CPU memory to the PPU OAM, through
// OAMDATA. The CPU is halted while the transfer is in progress: the owner of
// the CPU calls Clock instead of clocking the CPU.
type OAMDMA struct {
	bus hwio.BankIO8

	page   uint8
	addr   uint8
	data   uint8
	wait   int  // idle cycles before the transfer begins
	read   bool // next transfer cycle is a read
	active bool
	cycles int // cycles spent in the current transfer
}

func NewOAMDMA(bus hwio.BankIO8) *OAMDMA {
	return &OAMDMA{bus: bus}
}

func (dma *OAMDMA) Reset() {
	*dma = OAMDMA{bus: dma.bus}
}

// Active reports whether a transfer is in progress.
func (dma *OAMDMA) Active() bool { return dma.active }

// Start begins the transfer of the given page. The first cycle is always
// idle, and on odd CPU cycles an extra alignment cycle is needed, for a total
// of 513 or 514 cycles.
func (dma *OAMDMA) Start(page uint8, oddCycle bool) {
	dma.page = page
	dma.addr = 0
	dma.read = true
	dma.active = true
	dma.cycles = 0
	dma.wait = 1
	if oddCycle {
		dma.wait++
	}

	log.ModDMA.DebugZ("Begin OAM DMA transfer").
		Hex8("page", page).
		Bool("odd", oddCycle).
		End()
}

// Clock runs one CPU cycle of the transfer.
func (dma *OAMDMA) Clock() {
	if !dma.active {
		return
	}
	dma.cycles++

	if dma.wait > 0 {
		dma.wait--
		return
	}

	if dma.read {
		// Read from CPU bus
		addr := uint16(dma.page)<<8 | uint16(dma.addr)
		dma.data = dma.bus.Read8(addr, false)
		dma.read = false
		return
	}

	// Write to PPU OAM
	dma.bus.Write8(0x2004, dma.data)
	dma.read = true
	dma.addr++

	// When this wraps around we know that 256 bytes have been written.
	if dma.addr == 0x00 {
		log.ModDMA.DebugZ("End OAM DMA transfer").
			Hex8("page", dma.page).
			Int("cycles", dma.cycles).
			End()
		dma.active = false
	}
}
