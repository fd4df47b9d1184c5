package hw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCPUPowerUp(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = 0x34
	bus.mem[0xFFFD] = 0x12

	cpu := NewCPU(bus)
	if cpu.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", cpu.SP)
	}
	if cpu.P != IntDisable|Unused {
		t.Errorf("P = %s, want %s", cpu.P, IntDisable|Unused)
	}

	cpu.Reset()
	if cpu.PC != 0x1234 {
		t.Errorf("PC = %04X, want 1234", cpu.PC)
	}
	if cpu.Cycles != 7 {
		t.Errorf("Cycles = %d, want 7", cpu.Cycles)
	}

	// The first instruction starts once the reset sequence is over.
	for i := range 7 {
		if cpu.Clock() {
			t.Fatalf("instruction started at cycle %d", i)
		}
	}
	if !cpu.Clock() {
		t.Fatalf("no instruction started after the reset sequence")
	}
}

func TestCPUSoftReset(t *testing.T) {
	cpu := loadCPUWith(t, `FFFC: 00 80`)
	cpu.A = 0x42
	cpu.P = Unused
	cpu.SP = 0xF0

	cpu.SoftReset()
	if cpu.SP != 0xED {
		t.Errorf("SP = %02X, want ED", cpu.SP)
	}
	if !cpu.P.I() {
		t.Errorf("I flag not set")
	}
	if cpu.A != 0x42 {
		t.Errorf("A = %02X, want 42", cpu.A)
	}
	if cpu.PC != 0x8000 {
		t.Errorf("PC = %04X, want 8000", cpu.PC)
	}
}

func TestADC(t *testing.T) {
	tcs := []struct {
		name       string
		a, val     int
		carry      int
		want       int
		c, v, n, z int
	}{
		{name: "signed overflow", a: 0x50, val: 0x50, want: 0xA0, v: 1, n: 1},
		{name: "carry out", a: 0xFF, val: 0x01, want: 0x00, c: 1, z: 1},
		{name: "carry in", a: 0x10, val: 0x20, carry: 1, want: 0x31},
		{name: "negative overflow", a: 0x80, val: 0xFF, want: 0x7F, c: 1, v: 1},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// ADC #val
			cpu := loadCPUWith(t, `0600: 69 00`)
			cpu.Bus.Write8(0x0601, uint8(tc.val))
			cpu.PC = 0x0600
			cpu.A = uint8(tc.a)
			cpu.P.set(Carry, tc.carry == 1)
			runAndCheckState(t, cpu, 2,
				"A", tc.want,
				"Pc", tc.c,
				"Pv", tc.v,
				"Pn", tc.n,
				"Pz", tc.z,
			)
		})
	}
}

func TestSBC(t *testing.T) {
	// SEC ; LDA #$50 ; SBC #$F0
	cpu := loadCPUWith(t, `0600: 38 a9 50 e9 f0`)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 6,
		"A", 0x60,
		"Pc", 0,
		"Pv", 0,
		"Pn", 0,
	)
}

func TestCPx(t *testing.T) {
	tcs := []struct {
		name string
		dump string
		p    int
	}{
		// LDX #$40 ; CPX #$41
		{"40 - 41", `0600: a2 40 e0 41`, 0b10100100},
		// LDX #$40 ; CPX #$40
		{"40 - 40", `0600: a2 40 e0 40`, 0b00100111},
		// LDX #$40 ; CPX #$39
		{"40 - 39", `0600: a2 40 e0 39`, 0b00100101},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tc.dump)
			cpu.PC = 0x0600
			runAndCheckState(t, cpu, 4,
				"A", 0x00,
				"X", 0x40,
				"Y", 0x00,
				"P", tc.p,
			)
		})
	}
}

func TestINCWraps(t *testing.T) {
	dump := `
0010: ff
0600: e6 10`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 5,
		"Pz", 1,
		"Pn", 0,
	)
	wantMem8(t, cpu, 0x0010, 0x00)
}

func TestLDA_STA(t *testing.T) {
	dump := `0600: a9 01 8d 00 02 a9 05 8d 01 02 a9 08 8d 02 02`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 6*3,
		"A", 0x08,
		"PC", 0x060F,
		"SP", 0xfd,
		"mem", `0200: 01 05 08`,
	)
}

func TestEOR(t *testing.T) {
	dump := `
0000: 06
0100: 45 00`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0100
	cpu.A = 0x80
	runAndCheckState(t, cpu, 3,
		"A", 0x86,
		"Pn", 1,
		"Pz", 0,
	)
}

func TestROR(t *testing.T) {
	dump := `
0000: 55
0100: 66 00
# reset vector
FFFC: 00 01`
	cpu := loadCPUWith(t, dump)
	cpu.A = 0x80
	cpu.P |= Carry
	runAndCheckState(t, cpu, 5,
		"Pn", 1,
		"Pc", 1,
		"Pz", 0,
	)
	wantMem8(t, cpu, 0x0000, 0xAA)
}

func TestStack(t *testing.T) {
	dump := `
# instructions
0600: a2 00 a0 00 8a 99 00 02 48 e8 c8 c0 10 d0 f5 68
0610: 99 00 02 c8 c0 20 d0 f7
# reset vector
FFFC: 00 06
`
	cpu := loadCPUWith(t, dump)
	cpu.SP = 0xFF
	runAndCheckState(t, cpu, 562,
		"PC", 0x0618,
		"A", 0x00,
		"X", 0x10,
		"Y", 0x20,
		"SP", 0xFF,
		"mem", `
01f0: 0f 0e 0d 0c 0b 0a 09 08 07 06 05 04 03 02 01 00
0200: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f
0210: 0f 0e 0d 0c 0b 0a 09 08 07 06 05 04 03 02 01 00`,
	)
}

func TestStackWraps(t *testing.T) {
	// PHA ; PLA
	cpu := loadCPUWith(t, `0600: 48 68`)
	cpu.PC = 0x0600
	cpu.SP = 0x00
	cpu.A = 0x77
	cpu.Step()
	if cpu.SP != 0xFF {
		t.Errorf("SP = %02X, want FF", cpu.SP)
	}
	wantMem8(t, cpu, 0x0100, 0x77)
	cpu.A = 0
	cpu.Step()
	if cpu.SP != 0x00 || cpu.A != 0x77 {
		t.Errorf("SP = %02X A = %02X, want SP = 00 A = 77", cpu.SP, cpu.A)
	}
}

func TestPageCrossPenalty(t *testing.T) {
	tcs := []struct {
		name string
		dump string
		x, y uint8
		want int
	}{
		{"LDA abs,X same page", `0600: bd 00 12`, 0x01, 0, 4},
		{"LDA abs,X crossing", `0600: bd ff 12`, 0x01, 0, 5},
		{"LDA abs,Y crossing", `0600: b9 ff 12`, 0, 0x01, 5},
		{"STA abs,X crossing", `0600: 9d ff 12`, 0x01, 0, 5},
		{"LDA (zp),Y crossing", "0010: ff 12\n0600: b1 10", 0, 0x01, 6},
		{"LDA (zp),Y same page", "0010: 00 12\n0600: b1 10", 0, 0x01, 5},
		{"ASL abs,X crossing", `0600: 1e ff 12`, 0x01, 0, 7},
		{"NOP abs,X crossing", `0600: 1c ff 12`, 0x01, 0, 5},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tc.dump)
			cpu.PC = 0x0600
			cpu.X, cpu.Y = tc.x, tc.y
			if got := cpu.Step(); got != tc.want {
				t.Errorf("cycles = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBranchCycles(t *testing.T) {
	tcs := []struct {
		name   string
		pc     uint16
		off    uint8
		zero   bool
		want   int
		wantPC uint16
	}{
		{"not taken", 0x0600, 0x10, true, 2, 0x0602},
		{"taken same page", 0x0600, 0x10, false, 3, 0x0612},
		{"taken backward", 0x0610, 0xF0, false, 3, 0x0602},
		{"taken crossing", 0x06F0, 0x10, false, 4, 0x0702},
		{"taken crossing backward", 0x0600, 0xF0, false, 4, 0x05F2},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			bus := &flatBus{}
			// BNE off
			bus.mem[tc.pc] = 0xD0
			bus.mem[tc.pc+1] = tc.off

			cpu := NewCPU(bus)
			cpu.PC = tc.pc
			cpu.P.set(Zero, tc.zero)
			if got := cpu.Step(); got != tc.want {
				t.Errorf("cycles = %d, want %d", got, tc.want)
			}
			if cpu.PC != tc.wantPC {
				t.Errorf("PC = %04X, want %04X", cpu.PC, tc.wantPC)
			}
		})
	}
}

func TestJMPIndirectPageBug(t *testing.T) {
	dump := `
0200: 12
02ff: 34
0300: 56
0600: 6c ff 02`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 5,
		"PC", 0x1234,
	)
}

func TestIndirectXWraps(t *testing.T) {
	dump := `
0000: 03
00ff: 00
0300: 99
0600: a1 fe`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.X = 0x01
	// pointer is read from $FF and $00.
	runAndCheckState(t, cpu, 6,
		"A", 0x99,
	)
}

func TestJSR_RTS(t *testing.T) {
	dump := `
0600: 20 00 07 e8
0700: a0 05 60`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 6+2+6+2,
		"PC", 0x0604,
		"X", 0x01,
		"Y", 0x05,
		"SP", 0xFD,
		"mem", `01fc: 02 06`,
	)
}

func TestBRK_RTI(t *testing.T) {
	dump := `
0600: 00 ea e8
0700: 40
FFFE: 00 07`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.P = Unused | Carry

	if n := cpu.Step(); n != 7 {
		t.Errorf("BRK cycles = %d, want 7", n)
	}
	if cpu.PC != 0x0700 {
		t.Errorf("PC = %04X, want 0700", cpu.PC)
	}
	// return address skips the padding byte, B is set in the pushed flags.
	wantMem8(t, cpu, 0x01FD, 0x06)
	wantMem8(t, cpu, 0x01FC, 0x02)
	wantMem8(t, cpu, 0x01FB, uint8(Unused|Break|Carry))
	if !cpu.P.I() {
		t.Errorf("I flag not set")
	}

	runAndCheckState(t, cpu, 6,
		"PC", 0x0602,
		"SP", 0xFD,
		"P", int(Unused|Carry),
	)
}

func TestPLPIgnoresBreak(t *testing.T) {
	// LDA #$FF ; PHA ; PLP
	cpu := loadCPUWith(t, `0600: a9 ff 48 28`)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 2+3+4,
		"P", 0xEF,
	)
}

func TestNMI(t *testing.T) {
	dump := `
0600: ea
0800: 40
FFFA: 00 08`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.P = Unused | IntDisable

	cpu.TriggerNMI()
	if n := cpu.Step(); n != 7 {
		t.Errorf("NMI cycles = %d, want 7", n)
	}
	if cpu.PC != 0x0800 {
		t.Fatalf("PC = %04X, want 0800", cpu.PC)
	}
	// B is clear in the pushed flags.
	wantMem8(t, cpu, 0x01FB, uint8(Unused|IntDisable))

	// RTI
	cpu.Step()
	if cpu.PC != 0x0600 {
		t.Errorf("PC = %04X, want 0600", cpu.PC)
	}
}

func TestIRQ(t *testing.T) {
	dump := `
0600: 58 ea ea
0900: ea
FFFE: 00 09`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600

	// masked while I is set.
	cpu.SetIRQ(IRQMapper, true)
	cpu.Step() // CLI
	if cpu.PC != 0x0601 {
		t.Fatalf("PC = %04X, want 0601", cpu.PC)
	}

	// serviced once I is clear.
	cpu.Step()
	if cpu.PC != 0x0900 {
		t.Fatalf("PC = %04X, want 0900", cpu.PC)
	}
	if cpu.IRQPending() {
		t.Errorf("IRQ still pending after being serviced")
	}
	if !cpu.P.I() {
		t.Errorf("I flag not set")
	}
	wantMem8(t, cpu, 0x01FB, uint8(Unused))
}

func TestIRQWithdrawn(t *testing.T) {
	cpu := loadCPUWith(t, `0600: ea ea`)
	cpu.PC = 0x0600
	cpu.P = Unused

	cpu.SetIRQ(IRQExternal, true)
	cpu.SetIRQ(IRQExternal, false)
	cpu.Step()
	if cpu.PC != 0x0601 {
		t.Errorf("PC = %04X, want 0601", cpu.PC)
	}
}

func TestUnofficialOpcodes(t *testing.T) {
	t.Run("LAX", func(t *testing.T) {
		cpu := loadCPUWith(t, "0010: 8f\n0600: a7 10")
		cpu.PC = 0x0600
		runAndCheckState(t, cpu, 3, "A", 0x8F, "X", 0x8F, "Pn", 1)
	})
	t.Run("SAX", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: 87 10`)
		cpu.PC = 0x0600
		cpu.A, cpu.X = 0xF0, 0x3C
		runAndCheckState(t, cpu, 3, "mem", `0010: 30`)
	})
	t.Run("DCP", func(t *testing.T) {
		cpu := loadCPUWith(t, "0010: 43\n0600: c7 10")
		cpu.PC = 0x0600
		cpu.A = 0x42
		runAndCheckState(t, cpu, 5, "Pz", 1, "Pc", 1, "mem", `0010: 42`)
	})
	t.Run("ISC", func(t *testing.T) {
		cpu := loadCPUWith(t, "0010: 0f\n0600: e7 10")
		cpu.PC = 0x0600
		cpu.A = 0x20
		cpu.P |= Carry
		runAndCheckState(t, cpu, 5, "A", 0x10, "Pc", 1, "mem", `0010: 10`)
	})
	t.Run("SBX", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: cb 02`)
		cpu.PC = 0x0600
		cpu.A, cpu.X = 0x0F, 0xFF
		runAndCheckState(t, cpu, 2, "X", 0x0D, "Pc", 1)
	})
	t.Run("ALR", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: 4b 03`)
		cpu.PC = 0x0600
		cpu.A = 0xFF
		runAndCheckState(t, cpu, 2, "A", 0x01, "Pc", 1)
	})
	t.Run("JAM", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: 02`)
		cpu.PC = 0x0600
		cpu.A = 0x12
		runAndCheckState(t, cpu, 2, "PC", 0x0601, "A", 0x12)
	})
}

func TestOpcodeTable(t *testing.T) {
	documented := 0
	for i, op := range Opcodes {
		if op.exec == nil {
			t.Errorf("opcode %02X has no implementation", i)
		}
		if op.Size != op.Mode.Size() {
			t.Errorf("opcode %02X (%s %s) size = %d, want %d", i, op.Name, op.Mode, op.Size, op.Mode.Size())
		}
		if op.Cycles < 2 {
			t.Errorf("opcode %02X (%s) cycles = %d", i, op.Name, op.Cycles)
		}
		if !op.Illegal {
			documented++
		}
	}
	if documented != 151 {
		t.Errorf("got %d documented opcodes, want 151", documented)
	}

	// Reference cycle counts, without page crossing penalties.
	want := [256]uint8{
		7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
		6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
		6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
		6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
		2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
		2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
		2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
		2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
		2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
		2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
		2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	}
	for i := range Opcodes {
		if Opcodes[i].Cycles != want[i] {
			t.Errorf("opcode %02X (%s) cycles = %d, want %d", i, Opcodes[i].Name, Opcodes[i].Cycles, want[i])
		}
	}
}

func TestDisasm(t *testing.T) {
	dump := `
0010: 00
0600: a9 32 20 ee e0 8d 00 20 d0 fc 6c ff 02 b1 10 0a
0610: bd 00 03`
	cpu := loadCPUWith(t, dump)

	tcs := []struct {
		pc   uint16
		want string
	}{
		{0x0600, "LDA #$32"},
		{0x0602, "JSR $E0EE"},
		{0x0605, "STA PPUCTRL"},
		{0x0608, "BNE $0606"},
		{0x060A, "JMP ($02FF)"},
		{0x060D, "LDA ($10),Y"},
		{0x060F, "ASL A"},
		{0x0610, "LDA $0300,X"},
	}
	for _, tc := range tcs {
		if got := cpu.Disasm(tc.pc).String(); got != tc.want {
			t.Errorf("Disasm(%04X) = %q, want %q", tc.pc, got, tc.want)
		}
	}

	cpu.PC = 0x0600
	if got := cpu.CurrentInstruction(); got != "LDA #$32" {
		t.Errorf("CurrentInstruction() = %q, want %q", got, "LDA #$32")
	}
}

func TestCPUTrace(t *testing.T) {
	cpu := loadCPUWith(t, `0600: a9 32 aa`)
	cpu.PC = 0x0600

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	cpu.Step()
	cpu.Step()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		`0600  A9 32     LDA #$32                         A:00 X:00 Y:00 P:24 S:FD PPU:0  ,0   7`,
		`0602  AA        TAX                              A:32 X:00 Y:00 P:24 S:FD PPU:0  ,0   9`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d trace lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d\ngot:  %q\nwant: %q", i, lines[i], want[i])
		}
	}
}
