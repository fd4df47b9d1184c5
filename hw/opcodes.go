package hw

// An Opcode describes one entry of the instruction table.
type Opcode struct {
	Name      string
	Mode      AddrMode
	Size      uint8 // instruction length in bytes
	Cycles    uint8 // base cycle count
	PageCross bool  // +1 cycle when indexing crosses a page
	Illegal   bool  // unofficial opcode

	exec func(*CPU, operand) int
}

// Opcodes is the instruction table, indexed by opcode byte.
var Opcodes = [256]Opcode{
	0x00: {"BRK", IMP, 1, 7, false, false, brk},
	0x01: {"ORA", IZX, 2, 6, false, false, ora},
	0x02: {"JAM", IMP, 1, 2, false, true, unstable},
	0x03: {"SLO", IZX, 2, 8, false, true, slo},
	0x04: {"NOP", ZPG, 2, 3, false, true, nop},
	0x05: {"ORA", ZPG, 2, 3, false, false, ora},
	0x06: {"ASL", ZPG, 2, 5, false, false, asl},
	0x07: {"SLO", ZPG, 2, 5, false, true, slo},
	0x08: {"PHP", IMP, 1, 3, false, false, php},
	0x09: {"ORA", IMM, 2, 2, false, false, ora},
	0x0A: {"ASL", ACC, 1, 2, false, false, asl},
	0x0B: {"ANC", IMM, 2, 2, false, true, anc},
	0x0C: {"NOP", ABS, 3, 4, false, true, nop},
	0x0D: {"ORA", ABS, 3, 4, false, false, ora},
	0x0E: {"ASL", ABS, 3, 6, false, false, asl},
	0x0F: {"SLO", ABS, 3, 6, false, true, slo},
	0x10: {"BPL", REL, 2, 2, false, false, bpl},
	0x11: {"ORA", IZY, 2, 5, true, false, ora},
	0x12: {"JAM", IMP, 1, 2, false, true, unstable},
	0x13: {"SLO", IZY, 2, 8, false, true, slo},
	0x14: {"NOP", ZPX, 2, 4, false, true, nop},
	0x15: {"ORA", ZPX, 2, 4, false, false, ora},
	0x16: {"ASL", ZPX, 2, 6, false, false, asl},
	0x17: {"SLO", ZPX, 2, 6, false, true, slo},
	0x18: {"CLC", IMP, 1, 2, false, false, clc},
	0x19: {"ORA", ABY, 3, 4, true, false, ora},
	0x1A: {"NOP", IMP, 1, 2, false, true, nop},
	0x1B: {"SLO", ABY, 3, 7, false, true, slo},
	0x1C: {"NOP", ABX, 3, 4, true, true, nop},
	0x1D: {"ORA", ABX, 3, 4, true, false, ora},
	0x1E: {"ASL", ABX, 3, 7, false, false, asl},
	0x1F: {"SLO", ABX, 3, 7, false, true, slo},
	0x20: {"JSR", ABS, 3, 6, false, false, jsr},
	0x21: {"AND", IZX, 2, 6, false, false, and},
	0x22: {"JAM", IMP, 1, 2, false, true, unstable},
	0x23: {"RLA", IZX, 2, 8, false, true, rla},
	0x24: {"BIT", ZPG, 2, 3, false, false, bit},
	0x25: {"AND", ZPG, 2, 3, false, false, and},
	0x26: {"ROL", ZPG, 2, 5, false, false, rol},
	0x27: {"RLA", ZPG, 2, 5, false, true, rla},
	0x28: {"PLP", IMP, 1, 4, false, false, plp},
	0x29: {"AND", IMM, 2, 2, false, false, and},
	0x2A: {"ROL", ACC, 1, 2, false, false, rol},
	0x2B: {"ANC", IMM, 2, 2, false, true, anc},
	0x2C: {"BIT", ABS, 3, 4, false, false, bit},
	0x2D: {"AND", ABS, 3, 4, false, false, and},
	0x2E: {"ROL", ABS, 3, 6, false, false, rol},
	0x2F: {"RLA", ABS, 3, 6, false, true, rla},
	0x30: {"BMI", REL, 2, 2, false, false, bmi},
	0x31: {"AND", IZY, 2, 5, true, false, and},
	0x32: {"JAM", IMP, 1, 2, false, true, unstable},
	0x33: {"RLA", IZY, 2, 8, false, true, rla},
	0x34: {"NOP", ZPX, 2, 4, false, true, nop},
	0x35: {"AND", ZPX, 2, 4, false, false, and},
	0x36: {"ROL", ZPX, 2, 6, false, false, rol},
	0x37: {"RLA", ZPX, 2, 6, false, true, rla},
	0x38: {"SEC", IMP, 1, 2, false, false, sec},
	0x39: {"AND", ABY, 3, 4, true, false, and},
	0x3A: {"NOP", IMP, 1, 2, false, true, nop},
	0x3B: {"RLA", ABY, 3, 7, false, true, rla},
	0x3C: {"NOP", ABX, 3, 4, true, true, nop},
	0x3D: {"AND", ABX, 3, 4, true, false, and},
	0x3E: {"ROL", ABX, 3, 7, false, false, rol},
	0x3F: {"RLA", ABX, 3, 7, false, true, rla},
	0x40: {"RTI", IMP, 1, 6, false, false, rti},
	0x41: {"EOR", IZX, 2, 6, false, false, eor},
	0x42: {"JAM", IMP, 1, 2, false, true, unstable},
	0x43: {"SRE", IZX, 2, 8, false, true, sre},
	0x44: {"NOP", ZPG, 2, 3, false, true, nop},
	0x45: {"EOR", ZPG, 2, 3, false, false, eor},
	0x46: {"LSR", ZPG, 2, 5, false, false, lsr},
	0x47: {"SRE", ZPG, 2, 5, false, true, sre},
	0x48: {"PHA", IMP, 1, 3, false, false, pha},
	0x49: {"EOR", IMM, 2, 2, false, false, eor},
	0x4A: {"LSR", ACC, 1, 2, false, false, lsr},
	0x4B: {"ALR", IMM, 2, 2, false, true, alr},
	0x4C: {"JMP", ABS, 3, 3, false, false, jmp},
	0x4D: {"EOR", ABS, 3, 4, false, false, eor},
	0x4E: {"LSR", ABS, 3, 6, false, false, lsr},
	0x4F: {"SRE", ABS, 3, 6, false, true, sre},
	0x50: {"BVC", REL, 2, 2, false, false, bvc},
	0x51: {"EOR", IZY, 2, 5, true, false, eor},
	0x52: {"JAM", IMP, 1, 2, false, true, unstable},
	0x53: {"SRE", IZY, 2, 8, false, true, sre},
	0x54: {"NOP", ZPX, 2, 4, false, true, nop},
	0x55: {"EOR", ZPX, 2, 4, false, false, eor},
	0x56: {"LSR", ZPX, 2, 6, false, false, lsr},
	0x57: {"SRE", ZPX, 2, 6, false, true, sre},
	0x58: {"CLI", IMP, 1, 2, false, false, cli},
	0x59: {"EOR", ABY, 3, 4, true, false, eor},
	0x5A: {"NOP", IMP, 1, 2, false, true, nop},
	0x5B: {"SRE", ABY, 3, 7, false, true, sre},
	0x5C: {"NOP", ABX, 3, 4, true, true, nop},
	0x5D: {"EOR", ABX, 3, 4, true, false, eor},
	0x5E: {"LSR", ABX, 3, 7, false, false, lsr},
	0x5F: {"SRE", ABX, 3, 7, false, true, sre},
	0x60: {"RTS", IMP, 1, 6, false, false, rts},
	0x61: {"ADC", IZX, 2, 6, false, false, adc},
	0x62: {"JAM", IMP, 1, 2, false, true, unstable},
	0x63: {"RRA", IZX, 2, 8, false, true, rra},
	0x64: {"NOP", ZPG, 2, 3, false, true, nop},
	0x65: {"ADC", ZPG, 2, 3, false, false, adc},
	0x66: {"ROR", ZPG, 2, 5, false, false, ror},
	0x67: {"RRA", ZPG, 2, 5, false, true, rra},
	0x68: {"PLA", IMP, 1, 4, false, false, pla},
	0x69: {"ADC", IMM, 2, 2, false, false, adc},
	0x6A: {"ROR", ACC, 1, 2, false, false, ror},
	0x6B: {"ARR", IMM, 2, 2, false, true, arr},
	0x6C: {"JMP", IND, 3, 5, false, false, jmp},
	0x6D: {"ADC", ABS, 3, 4, false, false, adc},
	0x6E: {"ROR", ABS, 3, 6, false, false, ror},
	0x6F: {"RRA", ABS, 3, 6, false, true, rra},
	0x70: {"BVS", REL, 2, 2, false, false, bvs},
	0x71: {"ADC", IZY, 2, 5, true, false, adc},
	0x72: {"JAM", IMP, 1, 2, false, true, unstable},
	0x73: {"RRA", IZY, 2, 8, false, true, rra},
	0x74: {"NOP", ZPX, 2, 4, false, true, nop},
	0x75: {"ADC", ZPX, 2, 4, false, false, adc},
	0x76: {"ROR", ZPX, 2, 6, false, false, ror},
	0x77: {"RRA", ZPX, 2, 6, false, true, rra},
	0x78: {"SEI", IMP, 1, 2, false, false, sei},
	0x79: {"ADC", ABY, 3, 4, true, false, adc},
	0x7A: {"NOP", IMP, 1, 2, false, true, nop},
	0x7B: {"RRA", ABY, 3, 7, false, true, rra},
	0x7C: {"NOP", ABX, 3, 4, true, true, nop},
	0x7D: {"ADC", ABX, 3, 4, true, false, adc},
	0x7E: {"ROR", ABX, 3, 7, false, false, ror},
	0x7F: {"RRA", ABX, 3, 7, false, true, rra},
	0x80: {"NOP", IMM, 2, 2, false, true, nop},
	0x81: {"STA", IZX, 2, 6, false, false, sta},
	0x82: {"NOP", IMM, 2, 2, false, true, nop},
	0x83: {"SAX", IZX, 2, 6, false, true, sax},
	0x84: {"STY", ZPG, 2, 3, false, false, sty},
	0x85: {"STA", ZPG, 2, 3, false, false, sta},
	0x86: {"STX", ZPG, 2, 3, false, false, stx},
	0x87: {"SAX", ZPG, 2, 3, false, true, sax},
	0x88: {"DEY", IMP, 1, 2, false, false, dey},
	0x89: {"NOP", IMM, 2, 2, false, true, nop},
	0x8A: {"TXA", IMP, 1, 2, false, false, txa},
	0x8B: {"XAA", IMM, 2, 2, false, true, unstable},
	0x8C: {"STY", ABS, 3, 4, false, false, sty},
	0x8D: {"STA", ABS, 3, 4, false, false, sta},
	0x8E: {"STX", ABS, 3, 4, false, false, stx},
	0x8F: {"SAX", ABS, 3, 4, false, true, sax},
	0x90: {"BCC", REL, 2, 2, false, false, bcc},
	0x91: {"STA", IZY, 2, 6, false, false, sta},
	0x92: {"JAM", IMP, 1, 2, false, true, unstable},
	0x93: {"SHA", IZY, 2, 6, false, true, unstable},
	0x94: {"STY", ZPX, 2, 4, false, false, sty},
	0x95: {"STA", ZPX, 2, 4, false, false, sta},
	0x96: {"STX", ZPY, 2, 4, false, false, stx},
	0x97: {"SAX", ZPY, 2, 4, false, true, sax},
	0x98: {"TYA", IMP, 1, 2, false, false, tya},
	0x99: {"STA", ABY, 3, 5, false, false, sta},
	0x9A: {"TXS", IMP, 1, 2, false, false, txs},
	0x9B: {"TAS", ABY, 3, 5, false, true, unstable},
	0x9C: {"SHY", ABX, 3, 5, false, true, unstable},
	0x9D: {"STA", ABX, 3, 5, false, false, sta},
	0x9E: {"SHX", ABY, 3, 5, false, true, unstable},
	0x9F: {"SHA", ABY, 3, 5, false, true, unstable},
	0xA0: {"LDY", IMM, 2, 2, false, false, ldy},
	0xA1: {"LDA", IZX, 2, 6, false, false, lda},
	0xA2: {"LDX", IMM, 2, 2, false, false, ldx},
	0xA3: {"LAX", IZX, 2, 6, false, true, lax},
	0xA4: {"LDY", ZPG, 2, 3, false, false, ldy},
	0xA5: {"LDA", ZPG, 2, 3, false, false, lda},
	0xA6: {"LDX", ZPG, 2, 3, false, false, ldx},
	0xA7: {"LAX", ZPG, 2, 3, false, true, lax},
	0xA8: {"TAY", IMP, 1, 2, false, false, tay},
	0xA9: {"LDA", IMM, 2, 2, false, false, lda},
	0xAA: {"TAX", IMP, 1, 2, false, false, tax},
	0xAB: {"LXA", IMM, 2, 2, false, true, unstable},
	0xAC: {"LDY", ABS, 3, 4, false, false, ldy},
	0xAD: {"LDA", ABS, 3, 4, false, false, lda},
	0xAE: {"LDX", ABS, 3, 4, false, false, ldx},
	0xAF: {"LAX", ABS, 3, 4, false, true, lax},
	0xB0: {"BCS", REL, 2, 2, false, false, bcs},
	0xB1: {"LDA", IZY, 2, 5, true, false, lda},
	0xB2: {"JAM", IMP, 1, 2, false, true, unstable},
	0xB3: {"LAX", IZY, 2, 5, true, true, lax},
	0xB4: {"LDY", ZPX, 2, 4, false, false, ldy},
	0xB5: {"LDA", ZPX, 2, 4, false, false, lda},
	0xB6: {"LDX", ZPY, 2, 4, false, false, ldx},
	0xB7: {"LAX", ZPY, 2, 4, false, true, lax},
	0xB8: {"CLV", IMP, 1, 2, false, false, clv},
	0xB9: {"LDA", ABY, 3, 4, true, false, lda},
	0xBA: {"TSX", IMP, 1, 2, false, false, tsx},
	0xBB: {"LAS", ABY, 3, 4, true, true, unstable},
	0xBC: {"LDY", ABX, 3, 4, true, false, ldy},
	0xBD: {"LDA", ABX, 3, 4, true, false, lda},
	0xBE: {"LDX", ABY, 3, 4, true, false, ldx},
	0xBF: {"LAX", ABY, 3, 4, true, true, lax},
	0xC0: {"CPY", IMM, 2, 2, false, false, cpy},
	0xC1: {"CMP", IZX, 2, 6, false, false, cmp},
	0xC2: {"NOP", IMM, 2, 2, false, true, nop},
	0xC3: {"DCP", IZX, 2, 8, false, true, dcp},
	0xC4: {"CPY", ZPG, 2, 3, false, false, cpy},
	0xC5: {"CMP", ZPG, 2, 3, false, false, cmp},
	0xC6: {"DEC", ZPG, 2, 5, false, false, dec},
	0xC7: {"DCP", ZPG, 2, 5, false, true, dcp},
	0xC8: {"INY", IMP, 1, 2, false, false, iny},
	0xC9: {"CMP", IMM, 2, 2, false, false, cmp},
	0xCA: {"DEX", IMP, 1, 2, false, false, dex},
	0xCB: {"SBX", IMM, 2, 2, false, true, sbx},
	0xCC: {"CPY", ABS, 3, 4, false, false, cpy},
	0xCD: {"CMP", ABS, 3, 4, false, false, cmp},
	0xCE: {"DEC", ABS, 3, 6, false, false, dec},
	0xCF: {"DCP", ABS, 3, 6, false, true, dcp},
	0xD0: {"BNE", REL, 2, 2, false, false, bne},
	0xD1: {"CMP", IZY, 2, 5, true, false, cmp},
	0xD2: {"JAM", IMP, 1, 2, false, true, unstable},
	0xD3: {"DCP", IZY, 2, 8, false, true, dcp},
	0xD4: {"NOP", ZPX, 2, 4, false, true, nop},
	0xD5: {"CMP", ZPX, 2, 4, false, false, cmp},
	0xD6: {"DEC", ZPX, 2, 6, false, false, dec},
	0xD7: {"DCP", ZPX, 2, 6, false, true, dcp},
	0xD8: {"CLD", IMP, 1, 2, false, false, cld},
	0xD9: {"CMP", ABY, 3, 4, true, false, cmp},
	0xDA: {"NOP", IMP, 1, 2, false, true, nop},
	0xDB: {"DCP", ABY, 3, 7, false, true, dcp},
	0xDC: {"NOP", ABX, 3, 4, true, true, nop},
	0xDD: {"CMP", ABX, 3, 4, true, false, cmp},
	0xDE: {"DEC", ABX, 3, 7, false, false, dec},
	0xDF: {"DCP", ABX, 3, 7, false, true, dcp},
	0xE0: {"CPX", IMM, 2, 2, false, false, cpx},
	0xE1: {"SBC", IZX, 2, 6, false, false, sbc},
	0xE2: {"NOP", IMM, 2, 2, false, true, nop},
	0xE3: {"ISC", IZX, 2, 8, false, true, isc},
	0xE4: {"CPX", ZPG, 2, 3, false, false, cpx},
	0xE5: {"SBC", ZPG, 2, 3, false, false, sbc},
	0xE6: {"INC", ZPG, 2, 5, false, false, inc},
	0xE7: {"ISC", ZPG, 2, 5, false, true, isc},
	0xE8: {"INX", IMP, 1, 2, false, false, inx},
	0xE9: {"SBC", IMM, 2, 2, false, false, sbc},
	0xEA: {"NOP", IMP, 1, 2, false, false, nop},
	0xEB: {"SBC", IMM, 2, 2, false, true, sbc},
	0xEC: {"CPX", ABS, 3, 4, false, false, cpx},
	0xED: {"SBC", ABS, 3, 4, false, false, sbc},
	0xEE: {"INC", ABS, 3, 6, false, false, inc},
	0xEF: {"ISC", ABS, 3, 6, false, true, isc},
	0xF0: {"BEQ", REL, 2, 2, false, false, beq},
	0xF1: {"SBC", IZY, 2, 5, true, false, sbc},
	0xF2: {"JAM", IMP, 1, 2, false, true, unstable},
	0xF3: {"ISC", IZY, 2, 8, false, true, isc},
	0xF4: {"NOP", ZPX, 2, 4, false, true, nop},
	0xF5: {"SBC", ZPX, 2, 4, false, false, sbc},
	0xF6: {"INC", ZPX, 2, 6, false, false, inc},
	0xF7: {"ISC", ZPX, 2, 6, false, true, isc},
	0xF8: {"SED", IMP, 1, 2, false, false, sed},
	0xF9: {"SBC", ABY, 3, 4, true, false, sbc},
	0xFA: {"NOP", IMP, 1, 2, false, true, nop},
	0xFB: {"ISC", ABY, 3, 7, false, true, isc},
	0xFC: {"NOP", ABX, 3, 4, true, true, nop},
	0xFD: {"SBC", ABX, 3, 4, true, false, sbc},
	0xFE: {"INC", ABX, 3, 7, false, false, inc},
	0xFF: {"ISC", ABX, 3, 7, false, true, isc},
}
