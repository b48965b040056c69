package input

import (
	"fmt"
	"log"
	"sort"
)

// bindTarget records which action and axis a combo feeds inside a context.
type bindTarget struct {
	Axis   AxisFilter
	Action string
}

// actionState couples an action's definition with its live value.
type actionState struct {
	def  ActionDefinition
	data ActionData
}

// Context owns a namespace of actions, the combos bound to them, and the
// list of actions triggered since the last drain. Contexts are created and
// torn down through their owning Manager.
type Context struct {
	name    string
	manager *Manager

	enabled   bool
	propagate bool

	actions            map[string]*actionState
	actionToInputBinds map[string]map[InputCombo]struct{}
	inputBindToAction  map[InputCombo]bindTarget

	pending []TriggeredAction
}

func newContext(name string, m *Manager) *Context {
	return &Context{
		name:               name,
		manager:            m,
		enabled:            true,
		propagate:          true,
		actions:            make(map[string]*actionState),
		actionToInputBinds: make(map[string]map[InputCombo]struct{}),
		inputBindToAction:  make(map[InputCombo]bindTarget),
	}
}

// Name returns the context's registered name.
func (c *Context) Name() string { return c.name }

// Enabled reports whether the context currently receives input.
func (c *Context) Enabled() bool { return c.enabled }

// SetEnabled toggles whether the context receives input.
func (c *Context) SetEnabled(enabled bool) { c.enabled = enabled }

// PropagateAllowed reports whether lower-priority contexts may see inputs
// this context has consumed.
func (c *Context) PropagateAllowed() bool { return c.propagate }

// SetPropagateAllowed toggles propagation to lower-priority contexts.
func (c *Context) SetPropagateAllowed(allowed bool) { c.propagate = allowed }

// RegisterAction adds a named action to the context. The change-value and
// state-value attributes are mutually exclusive; the value type is derived
// from the change-value flag. Duplicate names are a configuration error.
func (c *Context) RegisterAction(name string, attrs Attributes) error {
	if attrs.HasChangeValue() && attrs.HasStateValue() {
		return fmt.Errorf("action %s.%s: change-value and state-value are mutually exclusive", c.name, name)
	}
	if _, ok := c.actions[name]; ok {
		return fmt.Errorf("action %s.%s already registered", c.name, name)
	}
	valueType := ActionValueState
	if attrs.HasChangeValue() {
		valueType = ActionValueChange
	}
	def := ActionDefinition{
		Context:    c.name,
		Name:       name,
		Attributes: attrs,
		ValueType:  valueType,
	}
	c.actions[name] = &actionState{def: def, data: zeroActionData(def)}
	return nil
}

// UnregisterAction removes an action and every combo bound to it.
func (c *Context) UnregisterAction(name string) error {
	if _, ok := c.actions[name]; !ok {
		return fmt.Errorf("action %s.%s not registered", c.name, name)
	}
	for combo := range c.actionToInputBinds[name] {
		delete(c.inputBindToAction, combo)
		c.manager.unregisterInputCombo(combo, c.name)
	}
	delete(c.actionToInputBinds, name)
	delete(c.actions, name)
	return nil
}

// Action returns the definition for a registered action name.
func (c *Context) Action(name string) (ActionDefinition, bool) {
	st, ok := c.actions[name]
	if !ok {
		return ActionDefinition{}, false
	}
	return st.def, true
}

// ActionValue returns the live stored value for a registered action.
func (c *Context) ActionValue(name string) (ActionData, bool) {
	st, ok := c.actions[name]
	if !ok {
		return ActionData{}, false
	}
	return st.data, true
}

// RegisterInputBind routes a combo onto one axis of one action. A combo
// may feed at most one action per context, with combos differing only in
// deadzone counting as the same bind; the axis must fit the action's
// declared arity, and a negative axis request needs an action that supports
// negative or change values.
func (c *Context) RegisterInputBind(action string, axis AxisFilter, combo InputCombo) error {
	if !combo.Valid() {
		return fmt.Errorf("bind on %s.%s: combo has no valid main control", c.name, action)
	}
	for existing, prev := range c.inputBindToAction {
		if existing.Compare(combo) == 0 {
			return fmt.Errorf("combo %s already bound to %s.%s", combo, c.name, prev.Action)
		}
	}
	st, ok := c.actions[action]
	if !ok {
		return fmt.Errorf("action %s.%s not registered", c.name, action)
	}
	if axis.Axis() == AxisSimple && !st.def.Attributes.HasButtonValue() {
		return fmt.Errorf("bind on %s.%s: action has no button value for a simple target axis",
			c.name, action)
	}
	if int(axis.Axis()) > st.def.Attributes.NumAxes() {
		return fmt.Errorf("bind on %s.%s: axis %s exceeds the action's %d axes",
			c.name, action, axis, st.def.Attributes.NumAxes())
	}
	if axis.Negative() && !st.def.Attributes.HasNegative() && !st.def.Attributes.HasChangeValue() {
		return fmt.Errorf("bind on %s.%s: action does not support negative values", c.name, action)
	}

	if err := c.manager.registerInputCombo(combo, c.name); err != nil {
		return err
	}
	if c.actionToInputBinds[action] == nil {
		c.actionToInputBinds[action] = make(map[InputCombo]struct{})
	}
	c.actionToInputBinds[action][combo] = struct{}{}
	c.inputBindToAction[combo] = bindTarget{Axis: axis, Action: action}
	return nil
}

// UnregisterInputBind removes one combo binding and releases the combo in
// the owning manager.
func (c *Context) UnregisterInputBind(combo InputCombo) error {
	target, ok := c.inputBindToAction[combo]
	if !ok {
		return fmt.Errorf("combo %s not bound in context %s", combo, c.name)
	}
	delete(c.inputBindToAction, combo)
	delete(c.actionToInputBinds[target.Action], combo)
	if len(c.actionToInputBinds[target.Action]) == 0 {
		delete(c.actionToInputBinds, target.Action)
	}
	c.manager.unregisterInputCombo(combo, c.name)
	return nil
}

// UnregisterInputBinds removes every combo binding in the context. Must be
// called before the context is discarded so no combo references dangle in
// the manager's tables.
func (c *Context) UnregisterInputBinds() {
	for combo := range c.inputBindToAction {
		delete(c.inputBindToAction, combo)
		c.manager.unregisterInputCombo(combo, c.name)
	}
	for action := range c.actionToInputBinds {
		delete(c.actionToInputBinds, action)
	}
}

// mapToAction folds an incoming combo value into the bound action. State
// actions start from the live stored value; change actions start from zero
// so deltas never carry over. Multiple updates to the same action within
// one drain coalesce into the most recent pending entry.
func (c *Context) mapToAction(value UnmappedInputValue, combo InputCombo) {
	target, ok := c.inputBindToAction[combo]
	if !ok {
		return
	}
	st := c.actions[target.Action]

	var base ActionData
	if st.def.ValueType == ActionValueChange {
		base = zeroActionData(st.def)
	} else {
		base = st.data
	}
	if n := len(c.pending); n > 0 && c.pending[n-1].Definition.Same(st.def) {
		base = c.pending[n-1].Data
		c.pending = c.pending[:n-1]
	}

	data, err := ApplyInput(st.def, base, target.Axis, value)
	if err != nil {
		log.Printf("Warning: input bind on %s.%s rejected: %v", c.name, target.Action, err)
		return
	}
	data.Trigger = ActionUpdate

	c.pending = append(c.pending, TriggeredAction{Definition: st.def, Data: data})
	st.data = data
}

// ResetActionData zeroes one action's stored value and emits the reset
// into the pending list with the RESET trigger kind.
func (c *Context) ResetActionData(name string, timestamp int64) error {
	st, ok := c.actions[name]
	if !ok {
		return fmt.Errorf("action %s.%s not registered", c.name, name)
	}
	c.resetAction(st, timestamp)
	return nil
}

// ResetAllActionData resets every action in the context.
func (c *Context) ResetAllActionData(timestamp int64) {
	for _, name := range c.sortedActionNames() {
		c.resetAction(c.actions[name], timestamp)
	}
}

func (c *Context) resetAction(st *actionState, timestamp int64) {
	data := zeroActionData(st.def)
	data.Trigger = ActionReset
	data.Timestamp = timestamp
	st.data = data
	c.pending = append(c.pending, TriggeredAction{Definition: st.def, Data: data})
}

// TriggeredActions drains and returns the pending triggered-action list in
// FIFO order.
func (c *Context) TriggeredActions() []TriggeredAction {
	out := c.pending
	c.pending = nil
	return out
}

// ActionNames returns the registered action names, sorted.
func (c *Context) ActionNames() []string {
	return c.sortedActionNames()
}

func (c *Context) sortedActionNames() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
