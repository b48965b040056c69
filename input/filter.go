package input

import "fmt"

// AxisID selects which scalar stream of a control a filter reads.
type AxisID uint8

const (
	AxisSimple AxisID = iota // the button value of the control
	AxisX
	AxisY
	AxisZ
)

// AxisFilter is a 4-bit tag selecting one scalar value stream of a control:
// axis id in the low two bits, then a sign bit, then a change (delta) bit.
// The bit layout is load-bearing: config files encode filters as short
// strings ("+x", "-dy", "simple") and those must round-trip exactly.
type AxisFilter uint8

const (
	axisFilterAxisMask AxisFilter = 0x03
	axisFilterNegative AxisFilter = 0x04
	axisFilterChange   AxisFilter = 0x08
)

// NewAxisFilter assembles an AxisFilter from its parts.
func NewAxisFilter(axis AxisID, negative, change bool) AxisFilter {
	f := AxisFilter(axis) & axisFilterAxisMask
	if negative {
		f |= axisFilterNegative
	}
	if change {
		f |= axisFilterChange
	}
	return f
}

// Axis returns the selected axis id.
func (f AxisFilter) Axis() AxisID { return AxisID(f & axisFilterAxisMask) }

// Negative reports whether the filter reads the negative half of the axis.
func (f AxisFilter) Negative() bool { return f&axisFilterNegative != 0 }

// Change reports whether the filter reads deltas instead of absolute state.
func (f AxisFilter) Change() bool { return f&axisFilterChange != 0 }

var axisLetters = [...]string{AxisX: "x", AxisY: "y", AxisZ: "z"}

func (f AxisFilter) String() string {
	if f.Axis() == AxisSimple {
		return "simple"
	}
	s := "+"
	if f.Negative() {
		s = "-"
	}
	if f.Change() {
		s += "d"
	}
	return s + axisLetters[f.Axis()]
}

// ParseAxisFilter parses the short config form: "simple", or a sign
// followed by an optional "d" and an axis letter ("+x", "-dy", ...).
func ParseAxisFilter(s string) (AxisFilter, error) {
	if s == "simple" || s == "" {
		return NewAxisFilter(AxisSimple, false, false), nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("malformed axis filter %q", s)
	}
	var negative bool
	switch s[0] {
	case '+':
	case '-':
		negative = true
	default:
		return 0, fmt.Errorf("malformed axis filter %q", s)
	}
	rest := s[1:]
	var change bool
	if rest[0] == 'd' {
		change = true
		rest = rest[1:]
	}
	var axis AxisID
	switch rest {
	case "x":
		axis = AxisX
	case "y":
		axis = AxisY
	case "z":
		axis = AxisZ
	default:
		return 0, fmt.Errorf("malformed axis filter %q", s)
	}
	return NewAxisFilter(axis, negative, change), nil
}

// InputFilter identifies exactly one scalar value stream: one axis filter
// applied to one physical control.
type InputFilter struct {
	Source InputSourceDescription
	Axis   AxisFilter
}

// Compare orders filters lexicographically over (source, axis filter).
func (f InputFilter) Compare(o InputFilter) int {
	if c := f.Source.Compare(o.Source); c != 0 {
		return c
	}
	return cmpInt(int(f.Axis), int(o.Axis))
}

// Valid reports whether the filter names a real control. Support for the
// requested axis, sign and change bits is checked separately against the
// control's attributes with SupportedBy.
func (f InputFilter) Valid() bool { return f.Source.Valid() }

// SupportedBy reports whether the control attributes can satisfy the
// filter's axis, sign and change requests.
func (f InputFilter) SupportedBy(attrs Attributes) bool {
	if !f.Source.Valid() {
		return false
	}
	if f.Axis.Axis() == AxisSimple {
		return !f.Axis.Negative() && !f.Axis.Change() && attrs.HasButtonValue()
	}
	if int(f.Axis.Axis()) > attrs.NumAxes() {
		return false
	}
	if f.Axis.Negative() && !attrs.HasNegative() {
		return false
	}
	if f.Axis.Change() {
		return attrs.HasChangeValue()
	}
	return attrs.HasStateValue()
}

func (f InputFilter) String() string {
	return fmt.Sprintf("%s:%s", f.Source, f.Axis)
}
