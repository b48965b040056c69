package input

import "fmt"

// DeviceType identifies a class of physical input device.
type DeviceType int

const (
	DeviceNA DeviceType = iota
	DeviceMouse
	DeviceKeyboard
	DeviceController
	DeviceTouch
)

var deviceTypeNames = map[DeviceType]string{
	DeviceNA:         "na",
	DeviceMouse:      "mouse",
	DeviceKeyboard:   "keyboard",
	DeviceController: "controller",
	DeviceTouch:      "touch",
}

func (d DeviceType) String() string {
	if s, ok := deviceTypeNames[d]; ok {
		return s
	}
	return "na"
}

// ParseDeviceType converts a config string into a DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	for d, name := range deviceTypeNames {
		if name == s {
			return d, nil
		}
	}
	return DeviceNA, fmt.Errorf("unknown device type %q", s)
}

// ControlType identifies the shape of a single control on a device.
type ControlType int

const (
	ControlNA ControlType = iota
	ControlAxis
	ControlMotion
	ControlPoint
	ControlButton
	ControlRadio
)

var controlTypeNames = map[ControlType]string{
	ControlNA:     "na",
	ControlAxis:   "axis",
	ControlMotion: "motion",
	ControlPoint:  "point",
	ControlButton: "button",
	ControlRadio:  "radio",
}

func (c ControlType) String() string {
	if s, ok := controlTypeNames[c]; ok {
		return s
	}
	return "na"
}

// ParseControlType converts a config string into a ControlType.
func ParseControlType(s string) (ControlType, error) {
	for c, name := range controlTypeNames {
		if name == s {
			return c, nil
		}
	}
	return ControlNA, fmt.Errorf("unknown control type %q", s)
}

// Attributes describes what value streams a control (or an action) carries.
// The low two bits hold the axis count (0-3); the remaining bits are flags.
type Attributes uint8

const (
	attrAxisMask    Attributes = 0x03
	AttrNegative    Attributes = 0x04 // axes carry a negative half
	AttrChangeValue Attributes = 0x08 // axes deliver deltas
	AttrButtonValue Attributes = 0x10 // control doubles as a button
	AttrStateValue  Attributes = 0x20 // axes deliver absolute state
	AttrLocation    Attributes = 0x40 // state is a raw location, never clamped
)

// NewAttributes assembles an Attributes value from an axis count and flags.
func NewAttributes(numAxes int, flags Attributes) Attributes {
	if numAxes < 0 {
		numAxes = 0
	}
	if numAxes > 3 {
		numAxes = 3
	}
	return Attributes(numAxes)&attrAxisMask | (flags &^ attrAxisMask)
}

// NumAxes returns the number of axes the control carries (0-3).
func (a Attributes) NumAxes() int { return int(a & attrAxisMask) }

func (a Attributes) HasNegative() bool    { return a&AttrNegative != 0 }
func (a Attributes) HasChangeValue() bool { return a&AttrChangeValue != 0 }
func (a Attributes) HasButtonValue() bool { return a&AttrButtonValue != 0 }
func (a Attributes) HasStateValue() bool  { return a&AttrStateValue != 0 }
func (a Attributes) StateIsLocation() bool { return a&AttrLocation != 0 }

// InputSourceDescription identifies one physical control on one device.
type InputSourceDescription struct {
	DeviceType  DeviceType
	ControlType ControlType
	Device      int // device index (e.g. gamepad id)
	Control     int // control index on the device (key code, button, axis...)
}

// Valid reports whether the description names a real control.
func (s InputSourceDescription) Valid() bool {
	return s.DeviceType != DeviceNA && s.ControlType != ControlNA
}

// Compare orders descriptions lexicographically over
// (deviceType, device, controlType, control).
func (s InputSourceDescription) Compare(o InputSourceDescription) int {
	if s.DeviceType != o.DeviceType {
		return cmpInt(int(s.DeviceType), int(o.DeviceType))
	}
	if s.Device != o.Device {
		return cmpInt(s.Device, o.Device)
	}
	if s.ControlType != o.ControlType {
		return cmpInt(int(s.ControlType), int(o.ControlType))
	}
	return cmpInt(s.Control, o.Control)
}

func (s InputSourceDescription) String() string {
	return fmt.Sprintf("%s/%s[%d:%d]", s.DeviceType, s.ControlType, s.Device, s.Control)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// controlClass keys the attribute table: every (device type, control type)
// pairing has one fixed attribute set.
type controlClass struct {
	Device  DeviceType
	Control ControlType
}

// AttributeTable maps control classes to their fixed attributes. It is
// built once and never mutated afterwards; the Decoder holds a reference.
type AttributeTable map[controlClass]Attributes

// DefaultAttributeTable returns the attribute set for every control class
// the engine understands.
func DefaultAttributeTable() AttributeTable {
	return AttributeTable{
		// Absolute cursor position plus relative motion deltas.
		{DeviceMouse, ControlPoint}: NewAttributes(2,
			AttrNegative|AttrChangeValue|AttrStateValue|AttrLocation),
		// Scroll wheel: pure deltas, both directions.
		{DeviceMouse, ControlMotion}: NewAttributes(2, AttrNegative|AttrChangeValue),
		{DeviceMouse, ControlButton}: NewAttributes(0, AttrButtonValue),

		{DeviceKeyboard, ControlButton}: NewAttributes(0, AttrButtonValue),

		// One stick axis per control, signed absolute position.
		{DeviceController, ControlAxis}:   NewAttributes(1, AttrNegative|AttrStateValue),
		{DeviceController, ControlButton}: NewAttributes(0, AttrButtonValue),
		// Hat switch: 8-way membership resolved per axis and sign.
		{DeviceController, ControlRadio}: NewAttributes(2, AttrNegative|AttrStateValue),
		// Trackball: relative deltas.
		{DeviceController, ControlMotion}: NewAttributes(2, AttrNegative|AttrChangeValue),

		// Touch point: normalized position, motion deltas, and the contact
		// itself doubles as a button.
		{DeviceTouch, ControlPoint}: NewAttributes(2,
			AttrNegative|AttrChangeValue|AttrStateValue|AttrButtonValue|AttrLocation),
	}
}

// Lookup returns the attributes for the description's control class.
func (t AttributeTable) Lookup(s InputSourceDescription) (Attributes, bool) {
	a, ok := t[controlClass{s.DeviceType, s.ControlType}]
	return a, ok
}
