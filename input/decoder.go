package input

import "fmt"

// DisplayInfo supplies the current window pixel dimensions, needed to
// normalize pointer positions and mouse motion deltas.
type DisplayInfo interface {
	WindowSize() (width, height int)
}

// Raw value ranges per device class.
const (
	stickAxisRange = 32768.0
	trackballRange = 128.0
	wheelTickRange = 1.0 // one wheel notch saturates the filter
)

// Decoder converts platform events into control identities and extracts
// normalized scalar values for individual input filters.
type Decoder struct {
	attrs   AttributeTable
	display DisplayInfo
}

// NewDecoder builds a decoder around an attribute table and a display info
// provider. The table is treated as immutable after this call.
func NewDecoder(attrs AttributeTable, display DisplayInfo) *Decoder {
	return &Decoder{attrs: attrs, display: display}
}

// Attributes returns the fixed attributes for a control description.
func (d *Decoder) Attributes(s InputSourceDescription) (Attributes, bool) {
	return d.attrs.Lookup(s)
}

// Describe identifies the physical control an event reports on. Events the
// decoder does not understand produce an invalid description; callers must
// discard those silently.
func (d *Decoder) Describe(ev Event) InputSourceDescription {
	switch ev := ev.(type) {
	case EventKeyboard:
		return InputSourceDescription{DeviceKeyboard, ControlButton, ev.Device, ev.Key}
	case EventMouseButton:
		return InputSourceDescription{DeviceMouse, ControlButton, ev.Device, ev.Button}
	case EventMouseMotion:
		return InputSourceDescription{DeviceMouse, ControlPoint, ev.Device, 0}
	case EventMouseWheel:
		return InputSourceDescription{DeviceMouse, ControlMotion, ev.Device, 0}
	case EventGamepadButton:
		return InputSourceDescription{DeviceController, ControlButton, ev.Device, ev.Button}
	case EventGamepadAxis:
		return InputSourceDescription{DeviceController, ControlAxis, ev.Device, ev.Axis}
	case EventGamepadHat:
		return InputSourceDescription{DeviceController, ControlRadio, ev.Device, ev.Hat}
	case EventGamepadBall:
		return InputSourceDescription{DeviceController, ControlMotion, ev.Device, ev.Ball}
	case EventTouch:
		return InputSourceDescription{DeviceTouch, ControlPoint, ev.Device, ev.Finger}
	}
	return InputSourceDescription{}
}

// Extract reads the scalar value the filter selects out of the event,
// normalized to 0..1. The filter must have been derived from the event's
// own description; an unsupported (device, control, axis) request is a
// configuration error and is reported as such.
func (d *Decoder) Extract(f InputFilter, ev Event) (float64, error) {
	switch ev := ev.(type) {
	case EventKeyboard:
		if f.Axis.Axis() == AxisSimple {
			return bool01(ev.Down), nil
		}
	case EventMouseButton:
		if f.Axis.Axis() == AxisSimple {
			return bool01(ev.Down), nil
		}
	case EventGamepadButton:
		if f.Axis.Axis() == AxisSimple {
			return bool01(ev.Down), nil
		}
	case EventMouseMotion:
		w, h := d.display.WindowSize()
		switch {
		case f.Axis.Axis() == AxisX && f.Axis.Change():
			return signedHalf(float64(ev.DX)/float64(max(w, 1)), f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisY && f.Axis.Change():
			return signedHalf(float64(ev.DY)/float64(max(h, 1)), f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisX:
			return positionValue(float64(ev.X)/float64(max(w, 1)), f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisY:
			return positionValue(float64(ev.Y)/float64(max(h, 1)), f.Axis.Negative()), nil
		}
	case EventMouseWheel:
		switch {
		case f.Axis.Axis() == AxisX && f.Axis.Change():
			return signedHalf(ev.DX/wheelTickRange, f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisY && f.Axis.Change():
			return signedHalf(ev.DY/wheelTickRange, f.Axis.Negative()), nil
		}
	case EventGamepadAxis:
		if f.Axis.Axis() == AxisX && !f.Axis.Change() {
			return signedHalf(ev.Value/stickAxisRange, f.Axis.Negative()), nil
		}
	case EventGamepadHat:
		if !f.Axis.Change() {
			switch f.Axis.Axis() {
			case AxisX:
				return hatMembership(ev.Direction, f.Axis.Negative(),
					HatLeft, HatLeftUp, HatLeftDown,
					HatRight, HatRightUp, HatRightDown), nil
			case AxisY:
				return hatMembership(ev.Direction, f.Axis.Negative(),
					HatDown, HatLeftDown, HatRightDown,
					HatUp, HatLeftUp, HatRightUp), nil
			}
		}
	case EventGamepadBall:
		if f.Axis.Change() {
			switch f.Axis.Axis() {
			case AxisX:
				return signedHalf(ev.DX/trackballRange, f.Axis.Negative()), nil
			case AxisY:
				return signedHalf(ev.DY/trackballRange, f.Axis.Negative()), nil
			}
		}
	case EventTouch:
		switch {
		case f.Axis.Axis() == AxisSimple:
			return bool01(ev.Pressed), nil
		case f.Axis.Axis() == AxisX && f.Axis.Change():
			return signedHalf(ev.DX, f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisY && f.Axis.Change():
			return signedHalf(ev.DY, f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisX:
			return positionValue(ev.X, f.Axis.Negative()), nil
		case f.Axis.Axis() == AxisY:
			return positionValue(ev.Y, f.Axis.Negative()), nil
		}
	}
	return 0, fmt.Errorf("filter %s not extractable from %T", f, ev)
}

func bool01(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// signedHalf maps the requested half of a signed normalized value onto
// 0..1: the positive filter reads positive excursions, the negative filter
// reads the magnitude of negative ones.
func signedHalf(v float64, negative bool) float64 {
	if negative {
		v = -v
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// positionValue clamps an absolute position to 0..1. Absolute positions
// have no negative half; the negative filter always reads zero.
func positionValue(v float64, negative bool) float64 {
	if negative || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// hatMembership resolves an 8-way hat direction into a binary value for
// the requested axis and sign.
func hatMembership(dir HatDirection, negative bool, neg1, neg2, neg3, pos1, pos2, pos3 HatDirection) float64 {
	if negative {
		return bool01(dir == neg1 || dir == neg2 || dir == neg3)
	}
	return bool01(dir == pos1 || dir == pos2 || dir == pos3)
}
