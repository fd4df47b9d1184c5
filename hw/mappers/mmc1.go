package mappers

import (
	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

var MMC1 = MapperDesc{
	Name:      "MMC1",
	Load:      loadMMC1,
	HasPRGRAM: true,
}

type mmc1 struct {
	*base

	serial  uint8 // shift register
	counter uint8 // count of bits shifted

	ctrl     uint8 // [...C PPMM]
	chrbank0 uint8
	chrbank1 uint8
	prgbank  uint8 // [...R PPPP]
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) bool {
	if addr < 0x8000 {
		if m.prgbank&0x10 != 0 {
			// PRG RAM disabled
			return false
		}
		return m.writePRGRAM(addr, val)
	}

	if val&0x80 != 0 {
		// if the resetbit is set.
		//	- ignore databit
		//	- reset shift register (so that the next write is the "first" write)
		//	- bits 2,3 of control reg are set (16k PRG mode, $8000 swappable)
		//	- other bits of $8000 (and other regs) are unchanged
		m.serial = 0
		m.counter = 0
		m.ctrl |= 0x0C
		m.remap()
		return false
	}

	// Bits are shifted in LSB first.
	m.serial |= (val & 1) << m.counter
	m.counter++
	if m.counter == 5 {
		// The 5th write selects the register with bits 13-14 of its address.
		m.writeREG(addr, m.serial)
		m.serial = 0
		m.counter = 0
	}
	return false
}

func (m *mmc1) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 && m.prgbank&0x10 != 0 {
		return 0, false
	}
	return m.base.CPURead(addr)
}

func (m *mmc1) writeREG(addr uint16, val uint8) {
	switch addr >> 13 & 0x03 {
	case 0:
		m.ctrl = val
	case 1:
		m.chrbank0 = val
	case 2:
		m.chrbank1 = val
	case 3:
		m.prgbank = val
	}

	log.ModMapper.DebugZ("Write reg").
		String("mapper", m.desc.Name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
	m.remap()
}

func (m *mmc1) remap() {
	switch m.ctrl & 0x03 {
	case 0:
		m.setMirroring(ines.OnlyAScreen)
	case 1:
		m.setMirroring(ines.OnlyBScreen)
	case 2:
		m.setMirroring(ines.VertMirroring)
	case 3:
		m.setMirroring(ines.HorzMirroring)
	}

	// 512KB boards (SUROM) select the 256KB PRG half with bit 4 of the CHR
	// bank registers.
	outer := 0
	if len(m.prg) > 0x40000 {
		outer = int(m.chrbank0 & 0x10)
	}
	bank := int(m.prgbank & 0x0F)

	switch m.ctrl >> 2 & 0x03 {
	case 0, 1:
		// ignore low bit of bank number
		m.setPRG32((outer | bank) >> 1)
	case 2:
		m.setPRG16(0, outer)
		m.setPRG16(1, outer|bank)
	case 3:
		m.setPRG16(0, outer|bank)
		m.setPRG16(1, outer|0x0F)
	}

	if m.ctrl&0x10 == 0 {
		m.setCHR8(int(m.chrbank0 >> 1))
	} else {
		m.setCHR4(0, int(m.chrbank0))
		m.setCHR4(1, int(m.chrbank1))
	}
}

// Reset puts the mapper in its power-up state: bits 2,3 of $8000 are set
// (this ensures the $8000 is bank 0, and $C000 is the last bank - needed for
// SEROM/SHROM/SH1ROM which do no support banking).
func (m *mmc1) Reset() {
	m.serial = 0
	m.counter = 0
	m.ctrl = 0x0C | m.initialMirroring()
	m.chrbank0 = 0
	m.chrbank1 = 0
	m.prgbank = 0
	m.remap()
}

// initialMirroring returns the control register mirroring bits matching the
// cartridge header.
func (m *mmc1) initialMirroring() uint8 {
	if m.rom.Mirroring() == ines.VertMirroring {
		return 2
	}
	return 3
}

func loadMMC1(b *base) (hw.Mapper, error) {
	m := &mmc1{base: b}
	m.Reset()
	return m, nil
}
