package emu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/ines"
)

// program is a piece of code (or data) at a given CPU address.
type program struct {
	addr uint16
	code []byte
}

// newTestRom builds a 32KB PRG rom with CHR RAM, mapped at $8000-$FFFF.
// Unused PRG bytes are NOPs.
func newTestRom(mapper uint16, reset, nmi, irq uint16, progs ...program) *ines.Rom {
	rom := &ines.Rom{PRG: bytes.Repeat([]byte{0xEA}, 0x8000)}
	rom.Mapper = mapper

	vectors := program{0xFFFA, []byte{
		uint8(nmi), uint8(nmi >> 8),
		uint8(reset), uint8(reset >> 8),
		uint8(irq), uint8(irq >> 8),
	}}
	for _, p := range append(progs, vectors) {
		copy(rom.PRG[p.addr-0x8000:], p.code)
	}
	return rom
}

func newTestNES(t *testing.T, rom *ines.Rom) *NES {
	t.Helper()
	nes, err := New(rom, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return nes
}

func TestNewUnsupportedMapper(t *testing.T) {
	rom := newTestRom(7, 0x8000, 0x8000, 0x8000)
	if _, err := New(rom, DefaultConfig()); err == nil {
		t.Fatalf("New() with mapper 7 succeeded, want an error")
	}
}

func TestReset(t *testing.T) {
	nes := newTestNES(t, newTestRom(0, 0x8123, 0x8000, 0x8000))

	if nes.CPU.PC != 0x8123 {
		t.Errorf("PC = $%04X, want $8123", nes.CPU.PC)
	}
	if nes.CPU.Cycles != 7 {
		t.Errorf("Cycles = %d, want 7", nes.CPU.Cycles)
	}
	if nes.CPU.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", nes.CPU.SP)
	}

	// The first instruction starts after the 7 cycles of the reset sequence.
	clocks := 1
	for !nes.Clock() {
		clocks++
	}
	if want := 7*cpuDivider + 1; clocks != want {
		t.Errorf("first instruction started after %d clocks, want %d", clocks, want)
	}
}

func TestOAMDMAStallsCPU(t *testing.T) {
	rom := newTestRom(0, 0x8000, 0x8000, 0x8000, program{0x8000, []byte{
		0xA9, 0x02,       // LDA #$02
		0x8D, 0x14, 0x40, // STA $4014
		0xEA,             // NOP
		0x4C, 0x05, 0x80, // JMP $8005
	}})
	nes := newTestNES(t, rom)
	for i := range 256 {
		nes.Bus.RAM.Data[0x200+i] = uint8(255 - i)
	}

	nes.Step() // LDA
	nes.Step() // STA
	before := nes.CPU.Cycles
	nes.Step() // NOP

	want := before + 513 + before&1 + 2
	if nes.CPU.Cycles != want {
		t.Errorf("Cycles = %d, want %d", nes.CPU.Cycles, want)
	}
	if nes.CPU.PC != 0x8006 {
		t.Errorf("PC = $%04X, want $8006", nes.CPU.PC)
	}

	oam := nes.PPU.OAM()
	for i := range 256 {
		want := uint8(255 - i)
		if i&3 == 2 {
			want &= 0xE3
		}
		if oam[i] != want {
			t.Fatalf("OAM[%02X] = %02X, want %02X", i, oam[i], want)
		}
	}
}

func TestNMI(t *testing.T) {
	rom := newTestRom(0, 0x8000, 0x9000, 0x8000,
		program{0x8000, []byte{
			0xA9, 0x80,       // LDA #$80
			0x8D, 0x00, 0x20, // STA $2000
			0x4C, 0x05, 0x80, // JMP $8005
		}},
		program{0x9000, []byte{
			0xE6, 0x10, // INC $10
			0x40,       // RTI
		}},
	)
	nes := newTestNES(t, rom)
	nes.RunFrames(3)

	if got := nes.Bus.RAM.Data[0x10]; got != 3 {
		t.Errorf("NMI count = %d, want 3", got)
	}
	if nes.PPU.Frame() != 3 {
		t.Errorf("Frame() = %d, want 3", nes.PPU.Frame())
	}
}

func TestNMIDisabled(t *testing.T) {
	rom := newTestRom(0, 0x8000, 0x9000, 0x8000,
		program{0x8000, []byte{0x4C, 0x00, 0x80}}, // JMP $8000
		program{0x9000, []byte{0xE6, 0x10, 0x40}},
	)
	nes := newTestNES(t, rom)
	nes.RunFrames(2)

	if got := nes.Bus.RAM.Data[0x10]; got != 0 {
		t.Errorf("NMI count = %d, want 0", got)
	}
}

func TestMapperIRQ(t *testing.T) {
	rom := newTestRom(4, 0xE000, 0xE000, 0xF000,
		program{0xE000, []byte{
			0xA9, 0x40,       // LDA #$40
			0x8D, 0x17, 0x40, // STA $4017 (inhibit frame IRQ)
			0xA9, 0x18,       // LDA #$18
			0x8D, 0x01, 0x20, // STA $2001 (show bg and sprites)
			0xA9, 0x0A,       // LDA #$0A
			0x8D, 0x00, 0xC0, // STA $C000 (latch)
			0x8D, 0x01, 0xC0, // STA $C001 (reload)
			0x8D, 0x01, 0xE0, // STA $E001 (enable)
			0x58,             // CLI
			0x4C, 0x16, 0xE0, // JMP $E016
		}},
		program{0xF000, []byte{
			0xE6, 0x11,       // INC $11
			0x8D, 0x00, 0xE0, // STA $E000 (acknowledge and disable)
			0x40,             // RTI
		}},
	)
	nes := newTestNES(t, rom)
	nes.RunFrames(2)

	if got := nes.Bus.RAM.Data[0x11]; got != 1 {
		t.Errorf("IRQ count = %d, want 1", got)
	}
	if nes.CPU.IRQPending() {
		t.Errorf("IRQPending() = true, want false")
	}
}

func TestFrameIRQ(t *testing.T) {
	handler := program{0x9000, []byte{
		0xE6, 0x12,       // INC $12
		0xAD, 0x15, 0x40, // LDA $4015 (acknowledge)
		0x40,             // RTI
	}}

	tests := []struct {
		name string
		main []byte
		want uint8
	}{
		{
			name: "4-step",
			main: []byte{
				0x58,             // CLI
				0x4C, 0x01, 0x80, // JMP $8001
			},
			want: 2,
		},
		{
			name: "inhibited",
			main: []byte{
				0xA9, 0x40,       // LDA #$40
				0x8D, 0x17, 0x40, // STA $4017
				0x58,             // CLI
				0x4C, 0x06, 0x80, // JMP $8006
			},
			want: 0,
		},
		{
			name: "5-step",
			main: []byte{
				0xA9, 0x80,       // LDA #$80
				0x8D, 0x17, 0x40, // STA $4017
				0x58,             // CLI
				0x4C, 0x06, 0x80, // JMP $8006
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := newTestRom(0, 0x8000, 0x8000, 0x9000, program{0x8000, tt.main}, handler)
			nes := newTestNES(t, rom)

			// 3 frames last 89342 CPU cycles, a frame sequence 29830.
			nes.RunFrames(3)

			if got := nes.Bus.RAM.Data[0x12]; got != tt.want {
				t.Errorf("IRQ count = %d, want %d", got, tt.want)
			}
			if nes.CPU.IRQPending() {
				t.Errorf("IRQPending() = true, want false")
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	rom := newTestRom(0, 0x8000, 0x9000, 0x8000,
		program{0x8000, []byte{
			0xA9, 0x90,       // LDA #$90
			0x8D, 0x00, 0x20, // STA $2000
			0xA9, 0x1E,       // LDA #$1E
			0x8D, 0x01, 0x20, // STA $2001
			0xE8,             // INX
			0x4C, 0x0A, 0x80, // JMP $800A
		}},
		program{0x9000, []byte{
			0xE6, 0x10,       // INC $10
			0x8E, 0x00, 0x01, // STX $0100
			0x40,             // RTI
		}},
	)

	run := func() *NES {
		nes := newTestNES(t, rom)
		nes.RunFrames(5)
		return nes
	}
	a, b := run(), run()

	if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
		t.Errorf("snapshots differ (-a +b):\n%s", diff)
	}
	if !bytes.Equal(a.PPU.FrameBuffer(), b.PPU.FrameBuffer()) {
		t.Errorf("frame buffers differ")
	}
}

func TestSnapshot(t *testing.T) {
	nes := newTestNES(t, newTestRom(0, 0x8000, 0x8000, 0x8000))
	nes.Bus.RAM.Data[0x7FF] = 0x42
	nes.Step()

	s := nes.Snapshot()
	if s.RAM[0x7FF] != 0x42 {
		t.Errorf("RAM[$7FF] = %02X, want 42", s.RAM[0x7FF])
	}
	if s.CPU.PC != nes.CPU.PC || s.CPU.Cycles != nes.CPU.Cycles {
		t.Errorf("CPU state = PC:$%04X cycles:%d, want PC:$%04X cycles:%d",
			s.CPU.PC, s.CPU.Cycles, nes.CPU.PC, nes.CPU.Cycles)
	}
	if s.PPU.Cycle != nes.PPU.Cycle || s.PPU.Scanline != nes.PPU.Scanline {
		t.Errorf("PPU position = %d,%d, want %d,%d",
			s.PPU.Scanline, s.PPU.Cycle, nes.PPU.Scanline, nes.PPU.Cycle)
	}
}

func TestZeroPage(t *testing.T) {
	nes := newTestNES(t, newTestRom(0, 0x8000, 0x8000, 0x8000))
	nes.Bus.RAM.Data[0x12] = 0xAB
	nes.Bus.RAM.Data[0xFF] = 0xCD

	lines := strings.Split(strings.TrimSuffix(nes.ZeroPage(), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("got %d lines, want 16", len(lines))
	}
	if want := "10: 00 00 AB 00 00 00 00 00 00 00 00 00 00 00 00 00"; lines[1] != want {
		t.Errorf("line 1 = %q, want %q", lines[1], want)
	}
	if !strings.HasSuffix(lines[15], " CD") {
		t.Errorf("line 15 = %q, want CD suffix", lines[15])
	}
}

func TestNestestMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug.Nestest = true
	nes, err := New(newTestRom(0, 0x8000, 0x8000, 0x8000), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if nes.CPU.PC != 0xC000 {
		t.Errorf("PC = $%04X, want $C000", nes.CPU.PC)
	}
}
