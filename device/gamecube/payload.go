// Package gamecube decodes GameCube USB adapter input payloads and runs the
// main and C sticks of every plugged-in port through the polar pipeline.
package gamecube

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Alia5/polarstick/polar"
)

const (
	// PayloadSize is the size of one adapter input payload.
	PayloadSize = 37
	// PayloadHeader is the first byte of an input payload.
	PayloadHeader = 0x21
	// Ports is the number of controller ports on the adapter.
	Ports = 4
	// Center is the resting value of a stick axis.
	Center = 128

	portSize = 9
)

// Port status values reported for a connected controller.
const (
	StatusWired    = 0x10
	StatusWireless = 0x14
)

// Button bits. The low byte is the adapter's first button byte, the high
// byte its second.
const (
	ButtonA     = 0x0001
	ButtonB     = 0x0002
	ButtonX     = 0x0004
	ButtonY     = 0x0008
	ButtonLeft  = 0x0010
	ButtonRight = 0x0020
	ButtonDown  = 0x0040
	ButtonUp    = 0x0080
	ButtonStart = 0x0100
	ButtonZ     = 0x0200
	ButtonR     = 0x0400
	ButtonL     = 0x0800
)

var ErrBadHeader = errors.New("gamecube: unexpected payload header")

// PortState is the raw state of one controller port.
type PortState struct {
	Status           uint8
	Buttons          uint16
	StickX, StickY   uint8
	CX, CY           uint8
	LAnalog, RAnalog uint8
}

// PluggedIn reports whether a controller is connected to the port.
func (p *PortState) PluggedIn() bool {
	return p.Status == StatusWired || p.Status == StatusWireless
}

// Payload is one decoded adapter report.
type Payload struct {
	Ports [Ports]PortState
}

// MarshalBinary encodes the payload as the adapter sends it: the header byte
// followed by 9 bytes per port.
//
//	0: status
//	1: buttons, low byte
//	2: buttons, high byte
//	3: stick X
//	4: stick Y
//	5: C stick X
//	6: C stick Y
//	7: L analog
//	8: R analog
func (p *Payload) MarshalBinary() ([]byte, error) {
	b := make([]byte, PayloadSize)
	b[0] = PayloadHeader
	for i, port := range p.Ports {
		o := 1 + i*portSize
		b[o] = port.Status
		binary.LittleEndian.PutUint16(b[o+1:o+3], port.Buttons)
		b[o+3] = port.StickX
		b[o+4] = port.StickY
		b[o+5] = port.CX
		b[o+6] = port.CY
		b[o+7] = port.LAnalog
		b[o+8] = port.RAnalog
	}
	return b, nil
}

// UnmarshalBinary decodes an adapter payload.
func (p *Payload) UnmarshalBinary(data []byte) error {
	if len(data) < PayloadSize {
		return io.ErrUnexpectedEOF
	}
	if data[0] != PayloadHeader {
		return fmt.Errorf("%w: 0x%02x", ErrBadHeader, data[0])
	}
	for i := range p.Ports {
		o := 1 + i*portSize
		p.Ports[i] = PortState{
			Status:  data[o],
			Buttons: binary.LittleEndian.Uint16(data[o+1 : o+3]),
			StickX:  data[o+3],
			StickY:  data[o+4],
			CX:      data[o+5],
			CY:      data[o+6],
			LAnalog: data[o+7],
			RAnalog: data[o+8],
		}
	}
	return nil
}

// Converter converts one axis pair. polar.Settings implements it.
type Converter interface {
	Compute(x, y float64) (polar.Result[float64], error)
}

func axis(v uint8) float64 {
	return float64(int(v) - Center)
}

// MainStick runs the main stick through the polar pipeline.
func (p *PortState) MainStick(c Converter) (polar.Result[float64], error) {
	return c.Compute(axis(p.StickX), axis(p.StickY))
}

// CStick runs the C stick through the polar pipeline.
func (p *PortState) CStick(c Converter) (polar.Result[float64], error) {
	return c.Compute(axis(p.CX), axis(p.CY))
}

// PortReportSize is the size of an encoded PortReport.
const PortReportSize = 16

// ReportSize is the size of an encoded Report.
const ReportSize = Ports * PortReportSize

// PortReport carries the adjusted magnitudes of one port's sticks.
type PortReport struct {
	MainX, MainY int32
	CX, CY       int32
}

// Report is the reply to every payload sent on a stream.
type Report struct {
	Ports [Ports]PortReport
}

// MarshalBinary encodes the report as sixteen little-endian int32 values,
// port by port in MainX, MainY, CX, CY order.
func (r *Report) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	for i, p := range r.Ports {
		o := i * PortReportSize
		binary.LittleEndian.PutUint32(b[o:o+4], uint32(p.MainX))
		binary.LittleEndian.PutUint32(b[o+4:o+8], uint32(p.MainY))
		binary.LittleEndian.PutUint32(b[o+8:o+12], uint32(p.CX))
		binary.LittleEndian.PutUint32(b[o+12:o+16], uint32(p.CY))
	}
	return b, nil
}

// UnmarshalBinary decodes a report produced by MarshalBinary.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	for i := range r.Ports {
		o := i * PortReportSize
		r.Ports[i] = PortReport{
			MainX: int32(binary.LittleEndian.Uint32(data[o : o+4])),
			MainY: int32(binary.LittleEndian.Uint32(data[o+4 : o+8])),
			CX:    int32(binary.LittleEndian.Uint32(data[o+8 : o+12])),
			CY:    int32(binary.LittleEndian.Uint32(data[o+12 : o+16])),
		}
	}
	return nil
}

// Sticks converts the sticks of every plugged-in port. Empty ports and
// sticks rejected as resting at the center report zero magnitudes.
func (p *Payload) Sticks(c Converter) (Report, error) {
	var rep Report
	for i := range p.Ports {
		port := &p.Ports[i]
		if !port.PluggedIn() {
			continue
		}
		main, err := port.MainStick(c)
		switch {
		case err == nil:
			rep.Ports[i].MainX, rep.Ports[i].MainY = int32(main.Magnitudes.X), int32(main.Magnitudes.Y)
		case !errors.Is(err, polar.ErrDegenerateInput):
			return Report{}, fmt.Errorf("port %d main stick: %w", i+1, err)
		}
		cs, err := port.CStick(c)
		switch {
		case err == nil:
			rep.Ports[i].CX, rep.Ports[i].CY = int32(cs.Magnitudes.X), int32(cs.Magnitudes.Y)
		case !errors.Is(err, polar.ErrDegenerateInput):
			return Report{}, fmt.Errorf("port %d c stick: %w", i+1, err)
		}
	}
	return rep, nil
}
