package hw

import "nescore/emu/log"

// APU models the register side of the 2A03 sound hardware: the channel
// registers latches, the length counters reported by $4015 and the frame
// sequencer with its interrupt. No sound is produced.
type APU struct {
	regs [0x14]uint8 // $4000-$4013

	// Pulse 1, pulse 2, triangle and noise.
	lengths [4]lengthCounter
	dmc     bool // DMC enable bit, as written to $4015

	frame  frameSequencer
	cycles int64 // CPU cycles since power-up
}

// Length counter load values, indexed by the top 5 bits of $4003/$4007/$400B/$400F.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

type lengthCounter struct {
	enabled bool
	halt    bool
	counter uint8
}

func (lc *lengthCounter) load(val uint8) {
	if lc.enabled {
		lc.counter = lengthTable[val>>3]
	}
}

func (lc *lengthCounter) setEnabled(on bool) {
	lc.enabled = on
	if !on {
		lc.counter = 0
	}
}

func (lc *lengthCounter) clock() {
	if lc.counter > 0 && !lc.halt {
		lc.counter--
	}
}

// NTSC frame sequencer steps, in CPU cycles since the sequencer start. In
// 4-step mode the interrupt flag is raised on the last 3 steps.
var seqSteps = [2][6]int{
	{7457, 14913, 22371, 29828, 29829, 29830},
	{7457, 14913, 22371, 29829, 37281, 37282},
}

// Steps clocking the length counters.
var seqHalfFrame = [6]bool{false, true, false, false, true, false}

type frameSequencer struct {
	fiveStep bool
	inhibit  bool
	irq      bool

	step  int
	cycle int

	// Pending $4017 write, applied after delay CPU cycles (-1: none).
	pending int16
	delay   int8
}

// NewAPU returns an APU in its power-up state.
func NewAPU() *APU {
	a := &APU{}
	a.Reset()
	return a
}

// Reset puts the APU in its power-up state.
func (a *APU) Reset() {
	*a = APU{}
	a.frame.pending = -1
}

// SoftReset silences all channels, the frame sequencer mode is kept and
// restarted as if $4017 had been written again.
func (a *APU) SoftReset() {
	for i := range a.lengths {
		a.lengths[i].setEnabled(false)
	}
	a.dmc = false

	fs := &a.frame
	fs.irq = false
	fs.inhibit = false
	fs.step, fs.cycle = 0, 0
	fs.pending = -1
}

// IRQ reports whether the frame interrupt line is asserted.
func (a *APU) IRQ() bool { return a.frame.irq }

// Clock advances the frame sequencer by one CPU cycle.
func (a *APU) Clock() {
	a.cycles++

	fs := &a.frame
	if fs.pending >= 0 {
		fs.delay--
		if fs.delay == 0 {
			fs.fiveStep = fs.pending&0x80 != 0
			fs.step, fs.cycle = 0, 0
			fs.pending = -1
			if fs.fiveStep {
				// 5-step mode clocks the length counters right away.
				a.clockLengths()
			}
			return
		}
	}

	mode := 0
	if fs.fiveStep {
		mode = 1
	}

	fs.cycle++
	if fs.cycle < seqSteps[mode][fs.step] {
		return
	}

	if !fs.fiveStep && fs.step >= 3 && !fs.inhibit {
		if !fs.irq {
			log.ModAPU.DebugZ("frame irq").Int64("cycle", a.cycles).End()
		}
		fs.irq = true
	}
	if seqHalfFrame[fs.step] {
		a.clockLengths()
	}

	fs.step++
	if fs.step == len(seqSteps[mode]) {
		fs.step, fs.cycle = 0, 0
	}
}

func (a *APU) clockLengths() {
	for i := range a.lengths {
		a.lengths[i].clock()
	}
}

// Status returns the value of $4015. A non-peek read acknowledges the frame
// interrupt. Bit 5 is not driven.
func (a *APU) Status(peek bool) uint8 {
	var status uint8
	for i := range a.lengths {
		if a.lengths[i].counter > 0 {
			status |= 1 << i
		}
	}
	if a.frame.irq {
		status |= 0x40
	}
	if !peek {
		a.frame.irq = false
	}
	return status
}

// WriteRegister handles writes to $4000-$4013, $4015 and $4017.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch {
	case addr <= 0x4013:
		a.regs[addr-0x4000] = val
		a.writeChannel(addr, val)

	case addr == 0x4015:
		for i := range a.lengths {
			a.lengths[i].setEnabled(val&(1<<i) != 0)
		}
		a.dmc = val&0x10 != 0
		log.ModAPU.DebugZ("write status").Hex8("val", val).End()

	case addr == 0x4017:
		fs := &a.frame
		fs.inhibit = val&0x40 != 0
		if fs.inhibit {
			fs.irq = false
		}
		// The sequencer restarts 3 or 4 cycles after the write, depending
		// on whether it falls between two APU cycles.
		fs.pending = int16(val)
		fs.delay = 3
		if a.cycles&1 == 1 {
			fs.delay = 4
		}
		log.ModAPU.DebugZ("write frame counter").Hex8("val", val).Int64("cycle", a.cycles).End()
	}
}

func (a *APU) writeChannel(addr uint16, val uint8) {
	switch addr {
	case 0x4000, 0x4004, 0x400C:
		a.lengths[(addr-0x4000)/4].halt = val&0x20 != 0
	case 0x4008:
		a.lengths[2].halt = val&0x80 != 0
	case 0x4003, 0x4007, 0x400B, 0x400F:
		a.lengths[(addr-0x4000)/4].load(val)
	}
}
