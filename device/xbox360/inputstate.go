// Package xbox360 decodes Xbox 360 (XInput style) controller input states and
// runs their thumbsticks through the polar pipeline.
package xbox360

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Alia5/polarstick/polar"
)

// InputStateSize is the size of an encoded InputState.
const InputStateSize = 20

// InputState represents the controller state of one input report.
// Values are more or less XInput's C API.
type InputState struct {
	// Button bitfield (lower 16 bits used typically), higher bits reserved
	Buttons uint32
	// Triggers: 0-255
	LT, RT uint8
	// Sticks: signed 16-bit little endian values
	LX, LY   int16
	RX, RY   int16
	Reserved [6]byte
}

// MarshalBinary encodes InputState to 20 bytes.
//
//	 0-3: Buttons (little-endian uint32)
//	   4: LT
//	   5: RT
//	 6-7: LX (little-endian int16)
//	 8-9: LY
//	10-11: RX
//	12-13: RY
//	14-19: Reserved
func (x *InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputStateSize)
	binary.LittleEndian.PutUint32(b[0:4], x.Buttons)
	b[4] = x.LT
	b[5] = x.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(x.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(x.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(x.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(x.RY))
	copy(b[14:20], x.Reserved[:])
	return b, nil
}

// UnmarshalBinary decodes 20 bytes into InputState.
func (x *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	x.Buttons = binary.LittleEndian.Uint32(data[0:4])
	x.LT = data[4]
	x.RT = data[5]
	x.LX = int16(binary.LittleEndian.Uint16(data[6:8]))
	x.LY = int16(binary.LittleEndian.Uint16(data[8:10]))
	x.RX = int16(binary.LittleEndian.Uint16(data[10:12]))
	x.RY = int16(binary.LittleEndian.Uint16(data[12:14]))
	copy(x.Reserved[:], data[14:20])
	return nil
}

// Converter converts one axis pair. polar.Settings implements it.
type Converter interface {
	Compute(x, y float64) (polar.Result[float64], error)
}

// LeftStick runs the left thumbstick through the polar pipeline.
func (x *InputState) LeftStick(c Converter) (polar.Result[float64], error) {
	return c.Compute(float64(x.LX), float64(x.LY))
}

// RightStick runs the right thumbstick through the polar pipeline.
func (x *InputState) RightStick(c Converter) (polar.Result[float64], error) {
	return c.Compute(float64(x.RX), float64(x.RY))
}

// Sticks converts both thumbsticks into a StickReport. A stick the converter
// rejects as resting at the origin reports zero magnitudes.
func (x *InputState) Sticks(c Converter) (StickReport, error) {
	var rep StickReport
	left, err := x.LeftStick(c)
	switch {
	case err == nil:
		rep.LX, rep.LY = int32(left.Magnitudes.X), int32(left.Magnitudes.Y)
	case !errors.Is(err, polar.ErrDegenerateInput):
		return StickReport{}, fmt.Errorf("left stick: %w", err)
	}
	right, err := x.RightStick(c)
	switch {
	case err == nil:
		rep.RX, rep.RY = int32(right.Magnitudes.X), int32(right.Magnitudes.Y)
	case !errors.Is(err, polar.ErrDegenerateInput):
		return StickReport{}, fmt.Errorf("right stick: %w", err)
	}
	return rep, nil
}

// StickReportSize is the size of an encoded StickReport.
const StickReportSize = 16

// StickReport carries the adjusted magnitudes of both sticks, the reply to
// every InputState sent on a stream.
type StickReport struct {
	LX, LY int32
	RX, RY int32
}

// MarshalBinary encodes the report as four little-endian int32 values in
// LX, LY, RX, RY order.
func (r *StickReport) MarshalBinary() ([]byte, error) {
	b := make([]byte, StickReportSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(r.LX))
	binary.LittleEndian.PutUint32(b[4:8], uint32(r.LY))
	binary.LittleEndian.PutUint32(b[8:12], uint32(r.RX))
	binary.LittleEndian.PutUint32(b[12:16], uint32(r.RY))
	return b, nil
}

// UnmarshalBinary decodes a report produced by MarshalBinary.
func (r *StickReport) UnmarshalBinary(data []byte) error {
	if len(data) < StickReportSize {
		return io.ErrUnexpectedEOF
	}
	r.LX = int32(binary.LittleEndian.Uint32(data[0:4]))
	r.LY = int32(binary.LittleEndian.Uint32(data[4:8]))
	r.RX = int32(binary.LittleEndian.Uint32(data[8:12]))
	r.RY = int32(binary.LittleEndian.Uint32(data[12:16]))
	return nil
}
