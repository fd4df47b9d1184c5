package mappers

import (
	"fmt"

	"nescore/hw"
	"nescore/ines"
)

var MMC2 = MapperDesc{
	Name:      "MMC2",
	Load:      loadMMC2,
	HasPRGRAM: true,
}

// mmc2 switches CHR banks when the PPU fetches specific tiles: each 4KB
// pattern table has 2 candidate banks, selected by a latch set by reads of
// tile $FD or $FE.
type mmc2 struct {
	*base

	prgbank uint8
	chrFD   [2]uint8 // bank used when latch[i] is $FD
	chrFE   [2]uint8 // bank used when latch[i] is $FE
	latchFE [2]bool  // false: $FD, true: $FE
}

func (m *mmc2) CPUWrite(addr uint16, val uint8) bool {
	switch addr >> 12 {
	case 0x6, 0x7:
		return m.writePRGRAM(addr, val)
	case 0xA:
		m.prgbank = val & 0x0F
		m.setPRG8(0, int(m.prgbank))
	case 0xB:
		m.chrFD[0] = val & 0x1F
	case 0xC:
		m.chrFE[0] = val & 0x1F
	case 0xD:
		m.chrFD[1] = val & 0x1F
	case 0xE:
		m.chrFE[1] = val & 0x1F
	case 0xF:
		if val&1 == 0 {
			m.setMirroring(ines.VertMirroring)
		} else {
			m.setMirroring(ines.HorzMirroring)
		}
	}
	m.remapCHR()
	return false
}

// PPURead returns the CHR byte then updates the latches if the PPU read
// one of the trigger addresses.
func (m *mmc2) PPURead(addr uint16) (uint8, bool) {
	val, ok := m.base.PPURead(addr)
	if !ok {
		return 0, false
	}

	switch {
	case addr == 0x0FD8:
		m.latchFE[0] = false
	case addr == 0x0FE8:
		m.latchFE[0] = true
	case addr >= 0x1FD8 && addr <= 0x1FDF:
		m.latchFE[1] = false
	case addr >= 0x1FE8 && addr <= 0x1FEF:
		m.latchFE[1] = true
	default:
		return val, true
	}
	m.remapCHR()
	return val, true
}

// PPUPeek reads CHR without affecting the latches.
func (m *mmc2) PPUPeek(addr uint16) (uint8, bool) {
	return m.base.PPURead(addr)
}

func (m *mmc2) remapCHR() {
	for i := range 2 {
		bank := m.chrFD[i]
		if m.latchFE[i] {
			bank = m.chrFE[i]
		}
		m.setCHR4(i, int(bank))
	}
}

func (m *mmc2) Reset() {
	m.prgbank = 0
	m.chrFD = [2]uint8{}
	m.chrFE = [2]uint8{}
	m.latchFE = [2]bool{}
	m.mirroring = m.rom.Mirroring()

	// $A000-$FFFF is fixed to the last 3 8KB banks.
	m.setPRG8(0, 0)
	m.setPRG8(1, -3)
	m.setPRG8(2, -2)
	m.setPRG8(3, -1)
	m.remapCHR()
}

func loadMMC2(b *base) (hw.Mapper, error) {
	if len(b.prg) < 4*0x2000 {
		return nil, fmt.Errorf("PRG ROM too small: %d bytes", len(b.prg))
	}
	m := &mmc2{base: b}
	m.Reset()
	return m, nil
}
