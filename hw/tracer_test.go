package hw

import (
	"bytes"
	"strings"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

// newTraceSystem wires a CPU to a bus and PPU, with code at $8000.
func newTraceSystem(code ...byte) *CPU {
	bus, m := newTestBus()
	copy(m.prg[:], code)
	m.prg[0x7FFC], m.prg[0x7FFD] = 0x00, 0x80

	cpu := NewCPU(bus)
	cpu.PPU = bus.PPU
	cpu.Reset()
	return cpu
}

// stepWithPPU executes one instruction then runs the PPU for as many dots.
func stepWithPPU(cpu *CPU) {
	for range 3 * cpu.Step() {
		cpu.PPU.Tick()
	}
}

func TestTraceInstructionStream(t *testing.T) {
	cpu := newTraceSystem(
		0xA9, 0x32,       // LDA #$32
		0x8D, 0x00, 0x20, // STA $2000
		0xAA,             // TAX
		0xE8,             // INX
	)
	if cpu.PC != 0x8000 {
		t.Fatalf("PC = $%04X, want $8000", cpu.PC)
	}

	// Start near the end of the pre-render line so that the trace crosses
	// into the first visible line.
	cpu.PPU.Scanline = 261
	cpu.PPU.Cycle = 330

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	for range 4 {
		stepWithPPU(cpu)
	}

	want := []string{
		`8000  A9 32     LDA #$32                         A:00 X:00 Y:00 P:24 S:FD PPU:-1 ,330 7`,
		`8002  8D 00 20  STA PPUCTRL                      A:32 X:00 Y:00 P:24 S:FD PPU:-1 ,336 9`,
		`8005  AA        TAX                              A:32 X:00 Y:00 P:24 S:FD PPU:0  ,7   13`,
		`8006  E8        INX                              A:32 X:32 Y:00 P:24 S:FD PPU:0  ,13  15`,
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if diff := gocmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceDisable(t *testing.T) {
	cpu := newTraceSystem(0xEA, 0xEA, 0xEA) // NOP x3

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	stepWithPPU(cpu)
	cpu.SetTraceOutput(nil)
	stepWithPPU(cpu)
	stepWithPPU(cpu)

	if n := strings.Count(out.String(), "\n"); n != 1 {
		t.Errorf("got %d trace lines, want 1:\n%s", n, out.String())
	}
	if cpu.PC != 0x8003 {
		t.Errorf("PC = $%04X, want $8003", cpu.PC)
	}
}

func TestTraceWithoutPPU(t *testing.T) {
	cpu := loadCPUWith(t, `0700: 4c 00 07`) // JMP $0700
	cpu.PC = 0x0700

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	cpu.Step()
	cpu.Step()

	want := "" +
		"0700  4C 00 07  JMP $0700                        A:00 X:00 Y:00 P:24 S:FD PPU:0  ,0   7\n" +
		"0700  4C 00 07  JMP $0700                        A:00 X:00 Y:00 P:24 S:FD PPU:0  ,0   10\n"
	if out.String() != want {
		t.Errorf("trace\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}
