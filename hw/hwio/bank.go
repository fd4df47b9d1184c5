// Package hwio provides the building blocks of the memory mapped hardware:
// the byte bus interface, mirrored memory areas and 8-bit registers.
package hwio

import "nescore/emu/log"

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// Peek16 is Read16 without side effects.
func Peek16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, true)
	hi := b.Read8(addr+1, true)
	return uint16(hi)<<8 | uint16(lo)
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // read-only accesses
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Mem is a linear memory area. Its size must be a power of 2, addresses
// beyond the size mirror the area.
type Mem struct {
	Name  string   // name of the memory area (for debugging)
	Data  []byte   // actual memory buffer
	Flags MemFlags // flags determining how the memory can be accessed

	mask uint16
}

// NewMem allocates a memory area of the given size.
func NewMem(name string, size int, flags MemFlags) *Mem {
	return WrapMem(name, make([]byte, size), flags)
}

// WrapMem creates a memory area over buf.
func WrapMem(name string, buf []byte, flags MemFlags) *Mem {
	if len(buf) == 0 || len(buf)&(len(buf)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &Mem{
		Name:  name,
		Data:  buf,
		Flags: flags,
		mask:  uint16(len(buf) - 1),
	}
}

func (m *Mem) Read8(addr uint16, _ bool) uint8 {
	return m.Data[addr&m.mask]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	switch {
	case m.Flags&MemFlag8ReadOnly == 0:
		m.Data[addr&m.mask] = val
	case m.Flags&MemFlagNoROLog != 0:
		// dropped silently
	default:
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			String("name", m.Name).
			Hex8("val", val).
			Hex16("addr", addr).
			End()
	}
}

// Reset zeroes the whole area.
func (m *Mem) Reset() {
	clear(m.Data)
}
