package mappers

import (
	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/hwio"
	"nescore/ines"
)

var MMC3 = MapperDesc{
	Name:      "MMC3",
	Load:      loadMMC3,
	HasPRGRAM: true,
}

// mmc3 has 8KB PRG banking, 1KB/2KB CHR banking and a scanline counter
// raising IRQs.
type mmc3 struct {
	*base

	bankSelect uint8    // register selected by the next bank data write
	prgMode    bool     // false: $8000 swappable, $C000 fixed to the second last bank
	chrInvert  bool     // false: 2KB banks at $0000, 1KB banks at $1000
	regs       [8]uint8 // R0-R7 bank registers

	ramEnabled bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func (m *mmc3) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 && !m.ramEnabled {
		return 0, false
	}
	return m.base.CPURead(addr)
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) bool {
	if addr < 0x8000 {
		if !m.ramEnabled {
			return false
		}
		return m.writePRGRAM(addr, val)
	}

	even := addr&1 == 0
	switch addr >> 13 & 0x03 {
	case 0: // $8000-$9FFF
		if even {
			m.bankSelect = val & 0x07
			m.prgMode = val&0x40 != 0
			m.chrInvert = val&0x80 != 0
		} else {
			m.regs[m.bankSelect] = val
		}
		m.remap()

	case 1: // $A000-$BFFF
		if even {
			if val&1 == 0 {
				m.setMirroring(ines.VertMirroring)
			} else {
				m.setMirroring(ines.HorzMirroring)
			}
		} else {
			m.ramEnabled = val&0x80 != 0
			m.protectRAM(val&0x40 != 0)
		}

	case 2: // $C000-$DFFF
		if even {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}

	case 3: // $E000-$FFFF
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
	return false
}

func (m *mmc3) remap() {
	r6 := int(m.regs[6] & 0x3F)
	r7 := int(m.regs[7] & 0x3F)
	if m.prgMode {
		m.setPRG8(0, -2)
		m.setPRG8(2, r6)
	} else {
		m.setPRG8(0, r6)
		m.setPRG8(2, -2)
	}
	m.setPRG8(1, r7)
	m.setPRG8(3, -1)

	// 2KB banks ignore the low bit.
	lo, hi := 0, 4
	if m.chrInvert {
		lo, hi = 4, 0
	}
	m.setCHR2(lo/2, int(m.regs[0]>>1))
	m.setCHR2(lo/2+1, int(m.regs[1]>>1))
	for i := range 4 {
		m.setCHR1(hi+i, int(m.regs[2+i]))
	}
}

// ScanlineFinished clocks the IRQ counter.
func (m *mmc3) ScanlineFinished() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		log.ModMapper.DebugZ("IRQ").String("mapper", m.desc.Name).End()
		m.irqPending = true
	}
}

// protectRAM makes PRG RAM read-only, writes are then silently dropped.
func (m *mmc3) protectRAM(on bool) {
	if m.prgRAM == nil {
		return
	}
	m.prgRAM.Flags = hwio.MemFlagReadWrite
	if on {
		m.prgRAM.Flags = hwio.MemFlag8ReadOnly | hwio.MemFlagNoROLog
	}
}

func (m *mmc3) IRQRequested() bool { return m.irqPending }
func (m *mmc3) IRQHandled()        { m.irqPending = false }

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.prgMode = false
	m.chrInvert = false
	m.regs = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
	m.ramEnabled = true
	m.protectRAM(false)
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqReload = false
	m.irqEnabled = false
	m.irqPending = false
	m.mirroring = m.rom.Mirroring()
	m.remap()
}

func loadMMC3(b *base) (hw.Mapper, error) {
	m := &mmc3{base: b}
	m.Reset()
	return m, nil
}
