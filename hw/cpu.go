package hw

import (
	"io"

	"nescore/emu/log"
	"nescore/hw/hwio"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// IRQSource identifies a device requesting a maskable interrupt.
type IRQSource uint8

const (
	IRQExternal IRQSource = 1 << iota // APU frame counter
	IRQMapper                         // cartridge scanline counter
)

// interruptCycles is the duration of the interrupt sequence (and of a reset).
const interruptCycles = 7

type CPU struct {
	Bus hwio.BankIO8
	PPU *PPU // non-nil when there's a PPU, only used for tracing.

	Cycles int64 // CPU cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// interrupt handling
	nmiPending bool
	irq        IRQSource

	// remaining cycles of the current instruction.
	wait int

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a new CPU at power-up state.
func NewCPU(bus hwio.BankIO8) *CPU {
	return &CPU{
		Bus: bus,
		SP:  0xFD,
		P:   IntDisable | Unused,
	}
}

// Reset performs a power-up reset: registers are cleared and execution
// starts at the address held by the reset vector.
func (c *CPU) Reset() {
	c.A = 0x00
	c.X = 0x00
	c.Y = 0x00
	c.SP = 0xFD
	c.P = IntDisable | Unused
	c.nmiPending = false
	c.irq = 0
	c.Cycles = interruptCycles
	c.reset()
}

// SoftReset emulates the reset button: only SP and the I flag are modified.
func (c *CPU) SoftReset() {
	c.SP -= 0x03
	c.P |= IntDisable
	c.nmiPending = false
	c.irq = 0
	c.Cycles += interruptCycles
	c.reset()
}

func (c *CPU) reset() {
	c.PC = c.read16(ResetVector)
	c.wait = interruptCycles

	log.ModCPU.InfoZ("reset").Hex16("PC", c.PC).End()
}

// TriggerNMI requests a non-maskable interrupt, serviced before the next
// instruction.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetIRQ sets or withdraws the interrupt request of a source. A request
// stays pending while interrupts are disabled and is cleared once the CPU
// services it.
func (c *CPU) SetIRQ(src IRQSource, asserted bool) {
	if asserted {
		c.irq |= src
	} else {
		c.irq &^= src
	}
}

// IRQPending reports whether an interrupt request is waiting.
func (c *CPU) IRQPending() bool {
	return c.irq != 0
}

// Clock runs the CPU for a single cycle. An instruction is executed as a
// whole on its first cycle, the following cycles are idle. Clock reports
// whether a new instruction (or interrupt sequence) started.
func (c *CPU) Clock() bool {
	started := false
	if c.wait == 0 {
		c.wait = c.Step()
		started = true
	}
	c.wait--
	return started
}

// Idle reports whether the CPU is between instructions, i.e. the next call to
// Clock starts a new instruction.
func (c *CPU) Idle() bool { return c.wait == 0 }

// Step services a pending interrupt or executes the instruction at PC and
// returns the number of cycles it took.
func (c *CPU) Step() int {
	var n int
	switch {
	case c.nmiPending:
		c.nmiPending = false
		n = c.interrupt(NMIVector)
	case c.irq != 0 && !c.P.I():
		c.irq = 0
		n = c.interrupt(IRQVector)
	default:
		n = c.execute()
	}
	c.Cycles += int64(n)
	return n
}

func (c *CPU) execute() int {
	c.traceOp()

	op := &Opcodes[c.Bus.Read8(c.PC, false)]
	oper, crossed := c.resolve(op.Mode)
	c.PC += uint16(op.Size)

	n := int(op.Cycles)
	if crossed && op.PageCross {
		n++
	}
	return n + op.exec(c, oper)
}

// interrupt pushes PC and P then jumps to the address held by vector.
func (c *CPU) interrupt(vector uint16) int {
	c.push16(c.PC)
	c.push8(uint8((c.P | Unused) &^ Break))
	c.P |= IntDisable
	c.PC = c.read16(vector)

	log.ModCPU.DebugZ("interrupt").Hex16("vector", vector).Hex16("PC", c.PC).End()
	return interruptCycles
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Bus.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Bus.Read8(top, false)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* tracing / debugging */

// SetTraceOutput enables (w != nil) or disables the execution trace.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w}
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.trace(c)
	}
}

// CurrentInstruction disassembles the instruction at PC.
func (c *CPU) CurrentInstruction() string {
	return c.Disasm(c.PC).String()
}
