package mappers

import (
	"nescore/emu/log"
	"nescore/hw"
)

var CNROM = MapperDesc{
	Name: "CNROM",
	Load: loadCNROM,
}

type cnrom struct {
	*base

	chrbank      uint8
	busConflicts bool
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) bool {
	if addr < 0x8000 {
		return false
	}
	if m.busConflicts {
		val &= m.readPRG(addr)
	}

	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	prev := m.chrbank
	m.chrbank = val
	m.setCHR8(int(m.chrbank))
	if prev != m.chrbank {
		log.ModMapper.DebugZ("CHR bank switch").
			String("mapper", m.desc.Name).
			Uint8("prev", prev).
			Uint8("new", m.chrbank).
			End()
	}
	return false
}

func (m *cnrom) Reset() {
	m.chrbank = 0
	m.setCHR8(0)
}

func loadCNROM(b *base) (hw.Mapper, error) {
	m := &cnrom{
		base:         b,
		busConflicts: b.rom.Submapper == 2,
	}
	b.setPRG32(0)
	m.Reset()
	return m, nil
}
