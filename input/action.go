package input

import (
	"fmt"
	"math"
)

// ActionValueType says whether an action accumulates deltas or holds
// absolute state. Derived from the action's attributes at registration.
type ActionValueType int

const (
	ActionValueState ActionValueType = iota
	ActionValueChange
)

// ActionKind tags the arity of an action's payload.
type ActionKind uint8

const (
	ActionButton ActionKind = iota
	ActionOneAxis
	ActionTwoAxis
	ActionThreeAxis
)

// ActionTrigger says why an action value was emitted.
type ActionTrigger uint8

const (
	ActionUpdate ActionTrigger = iota
	ActionReset
)

// ActionDefinition identifies one logical action within one context.
// Identity is (context, name) only; attributes are metadata.
type ActionDefinition struct {
	Context    string
	Name       string
	Attributes Attributes
	ValueType  ActionValueType
}

// QualifiedName returns the "context.action" form used as a dispatch key.
func (d ActionDefinition) QualifiedName() string {
	return d.Context + "." + d.Name
}

// Same reports identity equality: context and name only.
func (d ActionDefinition) Same(o ActionDefinition) bool {
	return d.Context == o.Context && d.Name == o.Name
}

// Compare orders definitions by (context, name).
func (d ActionDefinition) Compare(o ActionDefinition) int {
	if d.Context != o.Context {
		if d.Context < o.Context {
			return -1
		}
		return 1
	}
	switch {
	case d.Name < o.Name:
		return -1
	case d.Name > o.Name:
		return 1
	}
	return 0
}

// CommonActionData is the metadata shared by every action payload.
type CommonActionData struct {
	Trigger   ActionTrigger
	Timestamp int64 // milliseconds
	Activated bool
	Duration  int64 // reserved, always 0
	Kind      ActionKind
}

// ActionData is an action's current value: the common metadata plus up to
// three axes. Axes beyond the declared arity must stay zero — magnitude
// clamping always reads the full 3-vector.
type ActionData struct {
	CommonActionData
	Axes [3]float64
}

// Magnitude returns the length of the full 3-vector payload.
func (d ActionData) Magnitude() float64 {
	return math.Sqrt(d.Axes[0]*d.Axes[0] + d.Axes[1]*d.Axes[1] + d.Axes[2]*d.Axes[2])
}

// zeroActionData returns a fresh zero value of the arity the definition
// declares.
func zeroActionData(def ActionDefinition) ActionData {
	return ActionData{CommonActionData: CommonActionData{
		Kind: ActionKind(def.Attributes.NumAxes()),
	}}
}

// TriggeredAction pairs a definition with the value it was triggered with.
type TriggeredAction struct {
	Definition ActionDefinition
	Data       ActionData
}

// ApplyInput folds one resolved combo value into an action's data. Pure:
// previous is not mutated. The axis filter's sign bit flips the incoming
// value; state actions overwrite an axis only when the stored value does
// not carry an opposite-sign reading from another physical control; change
// actions accumulate. Non-button, non-change, non-location results are
// renormalized to unit length when the 3-vector exceeds it.
func ApplyInput(def ActionDefinition, previous ActionData, axis AxisFilter, value UnmappedInputValue) (ActionData, error) {
	sign := 1.0
	if axis.Negative() {
		sign = -1.0
	}
	newValue := sign * value.AxisValue

	data := previous
	data.Timestamp = value.Timestamp

	if axis.Axis() == AxisSimple {
		if !def.Attributes.HasButtonValue() {
			return previous, fmt.Errorf("action %s has no button value", def.QualifiedName())
		}
		data.Activated = value.Activated
		return data, nil
	}

	if int(axis.Axis()) > def.Attributes.NumAxes() {
		return previous, fmt.Errorf("action %s has %d axes, filter wants axis %d",
			def.QualifiedName(), def.Attributes.NumAxes(), axis.Axis())
	}
	if !def.Attributes.HasStateValue() && !def.Attributes.HasChangeValue() {
		return previous, fmt.Errorf("action %s carries no axis value", def.QualifiedName())
	}

	idx := int(axis.Axis()) - 1
	switch def.ValueType {
	case ActionValueState:
		// An opposite-sign stored value means the other physical control of
		// this axis pair is still deflected; do not stomp it.
		if data.Axes[idx]*newValue >= 0 {
			data.Axes[idx] = newValue
		}
	case ActionValueChange:
		data.Axes[idx] += newValue
	}

	if def.Attributes.NumAxes() > 0 &&
		!def.Attributes.HasChangeValue() &&
		!def.Attributes.StateIsLocation() {
		if mag := data.Magnitude(); mag > 1.0 {
			data.Axes[0] /= mag
			data.Axes[1] /= mag
			data.Axes[2] /= mag
		}
	}
	return data, nil
}
