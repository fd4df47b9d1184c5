// Package mappers implements the cartridge boards, translating CPU and PPU
// accesses into PRG and CHR bank accesses.
package mappers

import (
	"fmt"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

type MapperDesc struct {
	Name      string
	Load      func(*base) (hw.Mapper, error)
	HasPRGRAM bool // 8KB PRG RAM at $6000
}

var All = map[uint16]MapperDesc{
	0: NROM,
	1: MMC1,
	2: UxROM,
	3: CNROM,
	4: MMC3,
	9: MMC2,
}

// New creates the mapper for the given rom.
func New(rom *ines.Rom) (hw.Mapper, error) {
	desc, ok := All[rom.Mapper]
	if !ok {
		return nil, fmt.Errorf("unsupported mapper %d", rom.Mapper)
	}
	base, err := newbase(desc, rom)
	if err != nil {
		return nil, fmt.Errorf("mapper initialization failed: %w", err)
	}
	m, err := desc.Load(base)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapper %s: %w", desc.Name, err)
	}

	log.ModMapper.InfoZ("Mapper loaded").
		String("name", desc.Name).
		Uint16("number", rom.Mapper).
		Int("prg", len(base.prg)).
		Int("chr", len(base.chr)).
		Bool("chrram", base.chrRAM).
		End()
	return m, nil
}
