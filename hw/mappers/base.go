package mappers

import (
	"fmt"

	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/ines"
)

// base holds the cartridge memories and the bank windows through which the
// CPU and the PPU see them. PRG ROM is seen through 4 8KB windows
// ($8000-$FFFF), CHR through 8 1KB windows ($0000-$1FFF).
type base struct {
	desc MapperDesc
	rom  *ines.Rom

	prg    []byte
	chr    []byte
	chrRAM bool
	prgRAM *hwio.Mem // $6000-$7FFF, nil if absent

	prgWin [4]int // offsets in prg
	chrWin [8]int // offsets in chr

	mirroring ines.NTMirroring
}

func newbase(desc MapperDesc, rom *ines.Rom) (*base, error) {
	if len(rom.PRG) == 0 || len(rom.PRG)%0x2000 != 0 {
		return nil, fmt.Errorf("PRG ROM size must be a multiple of 8KB, got %d", len(rom.PRG))
	}

	b := &base{
		desc:      desc,
		rom:       rom,
		prg:       rom.PRG,
		chr:       rom.CHR,
		mirroring: rom.Mirroring(),
	}

	if len(b.chr) == 0 {
		b.chr = make([]byte, 0x2000)
		b.chrRAM = true
	} else if len(b.chr)%0x400 != 0 {
		return nil, fmt.Errorf("CHR ROM size must be a multiple of 1KB, got %d", len(b.chr))
	}
	if desc.HasPRGRAM {
		b.prgRAM = hwio.NewMem("PRGRAM", 0x2000, 0)
	}

	// Default mapping: first 32KB of PRG (mirrored if smaller), first 8KB of CHR.
	b.setPRG32(0)
	b.setCHR8(0)
	return b, nil
}

// bankOffset returns the offset of bank in a memory of size memsz divided in
// banks of banksz bytes. Out of range banks wrap around and negative banks
// count from the end (-1 is the last bank).
func bankOffset(memsz, banksz, bank int) int {
	n := max(memsz/banksz, 1)
	bank %= n
	if bank < 0 {
		bank += n
	}
	return bank * banksz
}

func (b *base) setPRG8(slot, bank int) {
	b.prgWin[slot] = bankOffset(len(b.prg), 0x2000, bank)
}

func (b *base) setPRG16(slot, bank int) {
	b.setPRG8(slot*2, bank*2)
	b.setPRG8(slot*2+1, bank*2+1)
}

func (b *base) setPRG32(bank int) {
	b.setPRG16(0, bank*2)
	b.setPRG16(1, bank*2+1)
}

func (b *base) setCHR1(slot, bank int) {
	b.chrWin[slot] = bankOffset(len(b.chr), 0x400, bank)
}

func (b *base) setCHR2(slot, bank int) {
	b.setCHR1(slot*2, bank*2)
	b.setCHR1(slot*2+1, bank*2+1)
}

func (b *base) setCHR4(slot, bank int) {
	b.setCHR2(slot*2, bank*2)
	b.setCHR2(slot*2+1, bank*2+1)
}

func (b *base) setCHR8(bank int) {
	b.setCHR4(0, bank*2)
	b.setCHR4(1, bank*2+1)
}

func (b *base) readPRG(addr uint16) uint8 {
	return b.prg[b.prgWin[addr>>13&0x03]+int(addr&0x1FFF)]
}

// CPURead serves PRG RAM and PRG ROM.
func (b *base) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		return b.readPRG(addr), true
	case addr >= 0x6000 && b.prgRAM != nil:
		return b.prgRAM.Read8(addr, false), true
	}
	return 0, false
}

// writePRGRAM stores val if addr belongs to PRG RAM.
func (b *base) writePRGRAM(addr uint16, val uint8) bool {
	if addr < 0x6000 || addr >= 0x8000 || b.prgRAM == nil {
		return false
	}
	b.prgRAM.Write8(addr, val)
	return true
}

func (b *base) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return b.chr[b.chrWin[addr>>10]+int(addr&0x3FF)], true
}

func (b *base) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 || !b.chrRAM {
		return false
	}
	b.chr[b.chrWin[addr>>10]+int(addr&0x3FF)] = val
	return true
}

func (b *base) Mirroring() ines.NTMirroring { return b.mirroring }

// setMirroring changes the mirroring, unless the board has 4 nametables.
func (b *base) setMirroring(m ines.NTMirroring) {
	if b.mirroring == ines.FourScreen || b.mirroring == m {
		return
	}
	log.ModMapper.DebugZ("mirroring change").
		String("mapper", b.desc.Name).
		Stringer("mirroring", m).
		End()
	b.mirroring = m
}
