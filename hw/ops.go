package hw

// load returns the value designated by o.
func (c *CPU) load(o operand) uint8 {
	switch o.mode {
	case IMM:
		return o.val
	case ACC:
		return c.A
	}
	return c.Bus.Read8(o.addr, false)
}

// store writes v to the location designated by o.
func (c *CPU) store(o operand, v uint8) {
	if o.mode == ACC {
		c.A = v
		return
	}
	c.Bus.Write8(o.addr, v)
}

/* loads, stores and transfers */

func lda(c *CPU, o operand) int {
	c.A = c.load(o)
	c.P.checkNZ(c.A)
	return 0
}

func ldx(c *CPU, o operand) int {
	c.X = c.load(o)
	c.P.checkNZ(c.X)
	return 0
}

func ldy(c *CPU, o operand) int {
	c.Y = c.load(o)
	c.P.checkNZ(c.Y)
	return 0
}

func sta(c *CPU, o operand) int { c.store(o, c.A); return 0 }
func stx(c *CPU, o operand) int { c.store(o, c.X); return 0 }
func sty(c *CPU, o operand) int { c.store(o, c.Y); return 0 }

func tax(c *CPU, _ operand) int { c.X = c.A; c.P.checkNZ(c.X); return 0 }
func tay(c *CPU, _ operand) int { c.Y = c.A; c.P.checkNZ(c.Y); return 0 }
func txa(c *CPU, _ operand) int { c.A = c.X; c.P.checkNZ(c.A); return 0 }
func tya(c *CPU, _ operand) int { c.A = c.Y; c.P.checkNZ(c.A); return 0 }
func tsx(c *CPU, _ operand) int { c.X = c.SP; c.P.checkNZ(c.X); return 0 }
func txs(c *CPU, _ operand) int { c.SP = c.X; return 0 }

/* arithmetic and logic */

func (c *CPU) add(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

// Decimal mode is not wired on the 2A03.
func adc(c *CPU, o operand) int { c.add(c.load(o)); return 0 }
func sbc(c *CPU, o operand) int { c.add(^c.load(o)); return 0 }

func and(c *CPU, o operand) int {
	c.A &= c.load(o)
	c.P.checkNZ(c.A)
	return 0
}

func ora(c *CPU, o operand) int {
	c.A |= c.load(o)
	c.P.checkNZ(c.A)
	return 0
}

func eor(c *CPU, o operand) int {
	c.A ^= c.load(o)
	c.P.checkNZ(c.A)
	return 0
}

func (c *CPU) compare(reg, val uint8) {
	c.P.set(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func cmp(c *CPU, o operand) int { c.compare(c.A, c.load(o)); return 0 }
func cpx(c *CPU, o operand) int { c.compare(c.X, c.load(o)); return 0 }
func cpy(c *CPU, o operand) int { c.compare(c.Y, c.load(o)); return 0 }

func bit(c *CPU, o operand) int {
	val := c.load(o)
	c.P.set(Zero, c.A&val == 0)
	c.P.set(Negative, val&0x80 != 0)
	c.P.set(Overflow, val&0x40 != 0)
	return 0
}

/* increments and decrements */

func (c *CPU) rmw(o operand, f func(uint8) uint8) uint8 {
	val := f(c.load(o))
	c.store(o, val)
	return val
}

func inc(c *CPU, o operand) int {
	c.P.checkNZ(c.rmw(o, func(v uint8) uint8 { return v + 1 }))
	return 0
}

func dec(c *CPU, o operand) int {
	c.P.checkNZ(c.rmw(o, func(v uint8) uint8 { return v - 1 }))
	return 0
}

func inx(c *CPU, _ operand) int { c.X++; c.P.checkNZ(c.X); return 0 }
func iny(c *CPU, _ operand) int { c.Y++; c.P.checkNZ(c.Y); return 0 }
func dex(c *CPU, _ operand) int { c.X--; c.P.checkNZ(c.X); return 0 }
func dey(c *CPU, _ operand) int { c.Y--; c.P.checkNZ(c.Y); return 0 }

/* shifts and rotates, in accumulator or memory */

func (c *CPU) shl(v uint8) uint8 {
	c.P.set(Carry, v&0x80 != 0)
	v <<= 1
	c.P.checkNZ(v)
	return v
}

func (c *CPU) shr(v uint8) uint8 {
	c.P.set(Carry, v&0x01 != 0)
	v >>= 1
	c.P.checkNZ(v)
	return v
}

func (c *CPU) rotl(v uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, v&0x80 != 0)
	v = v<<1 | carry
	c.P.checkNZ(v)
	return v
}

func (c *CPU) rotr(v uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, v&0x01 != 0)
	v = v>>1 | carry<<7
	c.P.checkNZ(v)
	return v
}

func asl(c *CPU, o operand) int { c.rmw(o, c.shl); return 0 }
func lsr(c *CPU, o operand) int { c.rmw(o, c.shr); return 0 }
func rol(c *CPU, o operand) int { c.rmw(o, c.rotl); return 0 }
func ror(c *CPU, o operand) int { c.rmw(o, c.rotr); return 0 }

/* jumps and calls */

func jmp(c *CPU, o operand) int {
	c.PC = o.addr
	return 0
}

func jsr(c *CPU, o operand) int {
	// Pushes the address of the last byte of the instruction.
	c.push16(c.PC - 1)
	c.PC = o.addr
	return 0
}

func rts(c *CPU, _ operand) int {
	c.PC = c.pull16() + 1
	return 0
}

func rti(c *CPU, _ operand) int {
	c.plp()
	c.PC = c.pull16()
	return 0
}

func brk(c *CPU, _ operand) int {
	// BRK has a padding byte after the opcode.
	c.push16(c.PC + 1)
	c.push8(uint8(c.P | Break | Unused))
	c.P |= IntDisable
	c.PC = c.read16(IRQVector)
	return 0
}

/* branches */

func (c *CPU) branch(o operand, cond bool) int {
	if !cond {
		return 0
	}
	target := c.PC + uint16(o.off)
	extra := 1
	if pageCrossed(c.PC, target) {
		extra++
	}
	c.PC = target
	return extra
}

func bcc(c *CPU, o operand) int { return c.branch(o, !c.P.C()) }
func bcs(c *CPU, o operand) int { return c.branch(o, c.P.C()) }
func bne(c *CPU, o operand) int { return c.branch(o, !c.P.Z()) }
func beq(c *CPU, o operand) int { return c.branch(o, c.P.Z()) }
func bpl(c *CPU, o operand) int { return c.branch(o, !c.P.N()) }
func bmi(c *CPU, o operand) int { return c.branch(o, c.P.N()) }
func bvc(c *CPU, o operand) int { return c.branch(o, !c.P.V()) }
func bvs(c *CPU, o operand) int { return c.branch(o, c.P.V()) }

/* stack */

func (c *CPU) plp() {
	c.P = P(c.pull8())&^Break | Unused
}

func pha(c *CPU, _ operand) int { c.push8(c.A); return 0 }
func php(c *CPU, _ operand) int { c.push8(uint8(c.P | Break | Unused)); return 0 }
func pla(c *CPU, _ operand) int { c.A = c.pull8(); c.P.checkNZ(c.A); return 0 }
func plp(c *CPU, _ operand) int { c.plp(); return 0 }

/* flags */

func clc(c *CPU, _ operand) int { c.P &^= Carry; return 0 }
func sec(c *CPU, _ operand) int { c.P |= Carry; return 0 }
func cli(c *CPU, _ operand) int { c.P &^= IntDisable; return 0 }
func sei(c *CPU, _ operand) int { c.P |= IntDisable; return 0 }
func cld(c *CPU, _ operand) int { c.P &^= Decimal; return 0 }
func sed(c *CPU, _ operand) int { c.P |= Decimal; return 0 }
func clv(c *CPU, _ operand) int { c.P &^= Overflow; return 0 }

// nop covers the official NOP and the unofficial ones, which still perform
// their operand read.
func nop(c *CPU, o operand) int {
	switch o.mode {
	case IMP, IMM:
	default:
		c.load(o)
	}
	return 0
}

/* unofficial opcodes */

func lax(c *CPU, o operand) int {
	c.A = c.load(o)
	c.X = c.A
	c.P.checkNZ(c.A)
	return 0
}

func sax(c *CPU, o operand) int { c.store(o, c.A&c.X); return 0 }

func dcp(c *CPU, o operand) int {
	val := c.rmw(o, func(v uint8) uint8 { return v - 1 })
	c.compare(c.A, val)
	return 0
}

func isc(c *CPU, o operand) int {
	val := c.rmw(o, func(v uint8) uint8 { return v + 1 })
	c.add(^val)
	return 0
}

func slo(c *CPU, o operand) int {
	c.A |= c.rmw(o, c.shl)
	c.P.checkNZ(c.A)
	return 0
}

func rla(c *CPU, o operand) int {
	c.A &= c.rmw(o, c.rotl)
	c.P.checkNZ(c.A)
	return 0
}

func sre(c *CPU, o operand) int {
	c.A ^= c.rmw(o, c.shr)
	c.P.checkNZ(c.A)
	return 0
}

func rra(c *CPU, o operand) int {
	c.add(c.rmw(o, c.rotr))
	return 0
}

func anc(c *CPU, o operand) int {
	c.A &= c.load(o)
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x80 != 0)
	return 0
}

func alr(c *CPU, o operand) int {
	c.A = c.shr(c.A & c.load(o))
	return 0
}

func arr(c *CPU, o operand) int {
	c.A = (c.A&c.load(o))>>1 | c.P.carry()<<7
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x40 != 0)
	c.P.set(Overflow, (c.A>>6^c.A>>5)&1 != 0)
	return 0
}

// sbx is AXS: X = (A&X) - imm, without borrow.
func sbx(c *CPU, o operand) int {
	ax := c.A & c.X
	val := c.load(o)
	c.P.set(Carry, ax >= val)
	c.X = ax - val
	c.P.checkNZ(c.X)
	return 0
}

// unstable covers the opcodes whose behaviour depends on analog effects
// (XAA, LXA, SHA, SHX, SHY, TAS, LAS) and the opcodes halting the CPU
// (JAM). They only take time.
func unstable(*CPU, operand) int { return 0 }
