package mappers

import "nescore/hw"

var UxROM = MapperDesc{
	Name: "UxROM",
	Load: loadUxROM,
}

type uxrom struct {
	*base

	prgbank      uint8
	busConflicts bool
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) bool {
	if addr < 0x8000 {
		return false
	}
	if m.busConflicts {
		val &= m.readPRG(addr)
	}

	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	//            (UNROM uses bits 2-0; UOROM uses bits 3-0)
	m.prgbank = val & 0x0F
	m.setPRG16(0, int(m.prgbank))
	return false
}

func (m *uxrom) Reset() {
	m.prgbank = 0
	m.setPRG16(0, 0)
	m.setPRG16(1, -1)
}

func loadUxROM(b *base) (hw.Mapper, error) {
	m := &uxrom{
		base:         b,
		busConflicts: b.rom.Submapper == 2,
	}
	m.Reset()
	return m, nil
}
