package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// Bus is the CPU address space.
//
//	$0000-$1FFF  2KB internal RAM, mirrored every $800
//	$2000-$3FFF  PPU registers, mirrored every 8 bytes
//	$4000-$4013  APU channel registers (write only)
//	$4014        OAMDMA
//	$4015        APU status
//	$4016        controller strobe, controller 1 data
//	$4017        APU frame counter (write), controller 2 data (read)
//	$4018-$401F  test mode registers (open bus)
//	$4020-$FFFF  cartridge
type Bus struct {
	RAM    *hwio.Mem
	PPU    *PPU
	Mapper Mapper
	Ports  *InputPorts
	APU    *APU

	// Last value seen on the data bus, returned when reading addresses no
	// device responds to.
	openBus uint8
}

func NewBus(ppu *PPU, mapper Mapper) *Bus {
	return &Bus{
		RAM:    hwio.NewMem("RAM", 0x800, 0),
		PPU:    ppu,
		Mapper: mapper,
		Ports:  &InputPorts{},
		APU:    NewAPU(),
	}
}

// OpenBus returns the last value seen on the data bus.
func (b *Bus) OpenBus() uint8 { return b.openBus }

func (b *Bus) Read8(addr uint16, peek bool) uint8 {
	val := b.read8(addr, peek)
	if !peek {
		b.openBus = val
	}
	return val
}

func (b *Bus) read8(addr uint16, peek bool) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM.Read8(addr&0x07FF, peek)
	case addr < 0x4000:
		return b.PPU.ReadRegister(addr, peek)
	case addr == 0x4015:
		// Bit 5 is not driven by the APU.
		return b.openBus&0x20 | b.APU.Status(peek)
	case addr == 0x4016, addr == 0x4017:
		// Only the low bits are driven by the controllers.
		return b.openBus&0xE0 | b.Ports.Read(int(addr-0x4016), peek)
	case addr < 0x4020:
		return b.openBus
	}

	if val, ok := b.Mapper.CPURead(addr); ok {
		return val
	}
	return b.openBus
}

func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val

	switch {
	case addr < 0x2000:
		b.RAM.Write8(addr&0x07FF, val)
	case addr < 0x4000:
		b.PPU.WriteRegister(addr, val)
	case addr == 0x4014:
		b.PPU.RequestDMA(val)
	case addr == 0x4016:
		b.Ports.Write(val)
	case addr <= 0x4015, addr == 0x4017:
		b.APU.WriteRegister(addr, val)
	case addr < 0x4020:
		log.ModBus.DebugZ("write to unmapped I/O register").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	default:
		b.Mapper.CPUWrite(addr, val)
	}
}
