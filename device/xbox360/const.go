package xbox360

// Button bitmasks for Xbox 360 controller (XInput compatible)
const (
	ButtonDPadUp    = 0x0001
	ButtonDPadDown  = 0x0002
	ButtonDPadLeft  = 0x0004
	ButtonDPadRight = 0x0008
	ButtonStart     = 0x0010
	ButtonBack      = 0x0020
	ButtonLThumb    = 0x0040 // Left stick button
	ButtonRThumb    = 0x0080 // Right stick button
	ButtonLShoulder = 0x0100 // Left bumper (LB)
	ButtonRShoulder = 0x0200 // Right bumper (RB)
	ButtonGuide     = 0x0400 // Xbox/Guide button (center logo)
	ButtonA         = 0x1000
	ButtonB         = 0x2000
	ButtonX         = 0x4000
	ButtonY         = 0x8000
)

var buttonNames = []struct {
	mask uint32
	name string
}{
	{ButtonDPadUp, "dpad-up"},
	{ButtonDPadDown, "dpad-down"},
	{ButtonDPadLeft, "dpad-left"},
	{ButtonDPadRight, "dpad-right"},
	{ButtonStart, "start"},
	{ButtonBack, "back"},
	{ButtonLThumb, "left-thumb"},
	{ButtonRThumb, "right-thumb"},
	{ButtonLShoulder, "left-shoulder"},
	{ButtonRShoulder, "right-shoulder"},
	{ButtonGuide, "guide"},
	{ButtonA, "a"},
	{ButtonB, "b"},
	{ButtonX, "x"},
	{ButtonY, "y"},
}

// PressedButtons names the buttons set in the state's bitfield, in mask order.
func (x *InputState) PressedButtons() []string {
	var out []string
	for _, b := range buttonNames {
		if x.Buttons&b.mask != 0 {
			out = append(out, b.name)
		}
	}
	return out
}
