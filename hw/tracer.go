package hw

import (
	"fmt"
	"io"
)

// Column at which the register dump starts in a trace line.
const traceRegsCol = 49

// tracer writes one line per executed instruction. Lines follow the layout
// of the nestest reference log: address, raw bytes, disassembly, registers,
// then PPU position and CPU cycle count.
type tracer struct {
	w    io.Writer
	line []byte // reused between instructions
}

// trace writes the line of the instruction the CPU is about to execute.
func (t *tracer) trace(c *CPU) {
	op := c.Disasm(c.PC)

	line := fmt.Appendf(t.line[:0], "%04X  ", op.PC)
	for _, b := range op.Buf {
		line = fmt.Appendf(line, "%02X ", b)
	}
	line = padTo(line, 16)
	line = append(line, op.Opcode...)
	line = append(line, ' ')
	line = append(line, op.Oper...)
	line = padTo(append(line, ' '), traceRegsCol)

	dot, scanline := 0, 0
	if c.PPU != nil {
		dot, scanline = c.PPU.Cycle, c.PPU.Scanline
	}
	if scanline == preRenderLine {
		scanline = -1
	}
	line = fmt.Appendf(line, "A:%02X X:%02X Y:%02X P:%02X S:%02X PPU:%-3d,%-3d %d\n",
		c.A, c.X, c.Y, uint8(c.P), c.SP, scanline, dot, c.Cycles)

	t.line = line
	t.w.Write(line)
}

func padTo(b []byte, n int) []byte {
	for len(b) < n {
		b = append(b, ' ')
	}
	return b
}
