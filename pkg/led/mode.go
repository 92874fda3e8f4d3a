package led

// Mode is the indicator output mode.
type Mode int32

// Modes
const (
	ModeOff Mode = iota
	ModeOn
	ModeBlinking
)

// Status labels
const (
	LabelOff      = "OFF"
	LabelOn       = "ON"
	LabelBlinking = "BLINKING"
	LabelError    = "ERROR"
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return LabelOff
	case ModeOn:
		return LabelOn
	case ModeBlinking:
		return LabelBlinking
	}
	return LabelError
}

// Status is the mode with the fault flag recording an invalid last command.
type Status struct {
	Mode  Mode
	Fault bool
}

// Label returns the status text shown on the display.
func (s Status) Label() string {
	if s.Fault {
		return LabelError
	}
	return s.Mode.String()
}

const faultBit int32 = 1 << 8

func (s Status) pack() int32 {
	v := int32(s.Mode)
	if s.Fault {
		v |= faultBit
	}
	return v
}

func unpack(v int32) Status {
	return Status{Mode: Mode(v &^ faultBit), Fault: v&faultBit != 0}
}
