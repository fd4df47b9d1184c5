package hw

import (
	"fmt"
	"strings"

	"nescore/emu/log"
)

// Button is a standard controller button, its value is the bit position in
// the shift register (A is reported first).
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// Buttons is the state of the 8 buttons of a standard controller.
type Buttons uint8

func (bs Buttons) Pressed(b Button) bool { return bs&(1<<b) != 0 }

func (bs Buttons) String() string {
	var sb strings.Builder
	for b := ButtonA; b <= ButtonRight; b++ {
		if bs.Pressed(b) {
			if sb.Len() > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(b.String())
		}
	}
	return sb.String()
}

// MakeButtons returns the state where only the given buttons are pressed.
func MakeButtons(pressed ...Button) Buttons {
	var bs Buttons
	for _, b := range pressed {
		bs |= 1 << b
	}
	return bs
}

// InputPorts implements the 2 standard controller ports, $4016 and $4017.
// Writing 1 to bit 0 of $4016 (strobe) continuously reloads the shift
// registers with the current button states, each read of the port then
// returns the next button, 1 is returned after the 8 buttons are reported.
type InputPorts struct {
	buttons [2]Buttons
	state   [2]uint8 // shift registers
	strobe  bool
}

// SetButtons sets the current button state of the controller on port (0 or
// 1).
func (ip *InputPorts) SetButtons(port int, bs Buttons) {
	ip.buttons[port&1] = bs
}

func (ip *InputPorts) Reset() {
	ip.state = [2]uint8{}
	ip.strobe = false
}

// Write handles writes to $4016.
func (ip *InputPorts) Write(val uint8) {
	prev := ip.strobe
	ip.strobe = val&1 == 1
	if ip.strobe || prev {
		ip.reload()
	}
}

func (ip *InputPorts) reload() {
	ip.state[0] = uint8(ip.buttons[0])
	ip.state[1] = uint8(ip.buttons[1])
	log.ModInput.DebugZ("controllers latched").
		Hex8("port0", ip.state[0]).
		Hex8("port1", ip.state[1]).
		End()
}

// Read returns bit 0 of the serial data of port (0 for $4016, 1 for $4017).
// When peek is true, the shift register is left untouched.
func (ip *InputPorts) Read(port int, peek bool) uint8 {
	port &= 1
	if ip.strobe {
		// While strobe is high, the A button is reported continuously.
		return uint8(ip.buttons[port]) & 1
	}

	ret := ip.state[port] & 1
	if !peek {
		ip.state[port] >>= 1

		// After 8 bits are read, all subsequent bits will report 1 on a
		// standard NES controller.
		ip.state[port] |= 0x80
	}
	return ret
}
