package mappers

import "nescore/hw"

var NROM = MapperDesc{
	Name:      "NROM",
	Load:      loadNROM,
	HasPRGRAM: true,
}

// nrom has no registers: 16KB PRG ROM are mirrored at $C000, 32KB fill the
// whole $8000-$FFFF range.
type nrom struct {
	*base
}

func (m *nrom) CPUWrite(addr uint16, val uint8) bool {
	return m.writePRGRAM(addr, val)
}

func (m *nrom) Reset() {}

func loadNROM(b *base) (hw.Mapper, error) {
	b.setPRG32(0)
	b.setCHR8(0)
	return &nrom{base: b}, nil
}
