package input

import "testing"

func newTestContext(t *testing.T) (*Manager, *Context) {
	t.Helper()
	m := newTestManager()
	ctx, err := m.RegisterActionContext("game", DefaultPriority)
	if err != nil {
		t.Fatal(err)
	}
	return m, ctx
}

func TestRegisterActionRejectsConflictingValueTypes(t *testing.T) {
	_, ctx := newTestContext(t)
	err := ctx.RegisterAction("bad", NewAttributes(1, AttrChangeValue|AttrStateValue))
	if err == nil {
		t.Error("want error for change-value plus state-value")
	}
}

func TestRegisterActionDuplicateRejected(t *testing.T) {
	_, ctx := newTestContext(t)
	if err := ctx.RegisterAction("move", NewAttributes(2, AttrNegative|AttrStateValue)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RegisterAction("move", NewAttributes(2, AttrNegative|AttrStateValue)); err == nil {
		t.Error("want error for duplicate action")
	}
}

func TestRegisterActionValueTypeDerivation(t *testing.T) {
	_, ctx := newTestContext(t)
	if err := ctx.RegisterAction("state", NewAttributes(1, AttrStateValue)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RegisterAction("change", NewAttributes(1, AttrChangeValue)); err != nil {
		t.Fatal(err)
	}

	def, _ := ctx.Action("state")
	if def.ValueType != ActionValueState {
		t.Errorf("state action ValueType = %v, want state", def.ValueType)
	}
	def, _ = ctx.Action("change")
	if def.ValueType != ActionValueChange {
		t.Errorf("change action ValueType = %v, want change", def.ValueType)
	}
}

func TestRegisterInputBindValidation(t *testing.T) {
	_, ctx := newTestContext(t)
	if err := ctx.RegisterAction("move", NewAttributes(1, AttrStateValue)); err != nil {
		t.Fatal(err)
	}

	t.Run("unknown action", func(t *testing.T) {
		err := ctx.RegisterInputBind("nope", NewAxisFilter(AxisX, false, false), keyCombo(40, OnPress))
		if err == nil {
			t.Error("want error for unknown action")
		}
	})
	t.Run("axis beyond arity", func(t *testing.T) {
		err := ctx.RegisterInputBind("move", NewAxisFilter(AxisY, false, false), keyCombo(40, OnPress))
		if err == nil {
			t.Error("want error for axis beyond arity")
		}
	})
	t.Run("negative unsupported", func(t *testing.T) {
		err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, true, false), keyCombo(40, OnPress))
		if err == nil {
			t.Error("want error for negative axis on non-negative action")
		}
	})
	t.Run("invalid combo", func(t *testing.T) {
		err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), InputCombo{})
		if err == nil {
			t.Error("want error for combo without a main control")
		}
	})
	t.Run("duplicate combo", func(t *testing.T) {
		combo := keyCombo(40, OnPress)
		if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), combo); err != nil {
			t.Fatal(err)
		}
		if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), combo); err == nil {
			t.Error("want error for already-bound combo")
		}
	})
	t.Run("duplicate combo differing only in deadzone", func(t *testing.T) {
		combo := keyCombo(41, OnPress)
		if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), combo); err != nil {
			t.Fatal(err)
		}
		combo.Deadzone = 0.3
		if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), combo); err == nil {
			t.Error("want error for combo that only varies the deadzone")
		}
	})
	t.Run("simple axis on buttonless action", func(t *testing.T) {
		err := ctx.RegisterInputBind("move", NewAxisFilter(AxisSimple, false, false), keyCombo(42, OnPress))
		if err == nil {
			t.Error("want error for simple target axis on an action without a button value")
		}
	})
	t.Run("unsupported main filter", func(t *testing.T) {
		combo := keyCombo(43, OnChange)
		combo.Main.Axis = NewAxisFilter(AxisX, false, false)
		err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), combo)
		if err == nil {
			t.Error("want error for an axis filter on a button-only control")
		}
	})
}

func TestUnregisterActionReleasesBinds(t *testing.T) {
	m, ctx := newTestContext(t)
	if err := ctx.RegisterAction("fire", NewAttributes(0, AttrButtonValue)); err != nil {
		t.Fatal(err)
	}
	combo := keyCombo(40, OnPress)
	if err := ctx.RegisterInputBind("fire", NewAxisFilter(AxisSimple, false, false), combo); err != nil {
		t.Fatal(err)
	}
	if err := ctx.UnregisterAction("fire"); err != nil {
		t.Fatal(err)
	}

	// The combo's filter is no longer tracked.
	m.QueueInput(EventKeyboard{Time: 1, Key: 40, Down: true})
	if m.QueueLen() != 0 {
		t.Errorf("QueueLen = %d, want 0 after action unregister", m.QueueLen())
	}

	// The combo may be bound again.
	if err := ctx.RegisterAction("fire", NewAttributes(0, AttrButtonValue)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RegisterInputBind("fire", NewAxisFilter(AxisSimple, false, false), combo); err != nil {
		t.Errorf("rebind after unregister: %v", err)
	}
}

func TestPendingCoalescesSameAction(t *testing.T) {
	m, ctx := newTestContext(t)
	if err := ctx.RegisterAction("move", NewAttributes(2, AttrNegative|AttrStateValue)); err != nil {
		t.Fatal(err)
	}
	right := InputCombo{Main: keyFilter(68), Trigger: OnChange}
	up := InputCombo{Main: keyFilter(87), Trigger: OnChange}
	if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisX, false, false), right); err != nil {
		t.Fatal(err)
	}
	if err := ctx.RegisterInputBind("move", NewAxisFilter(AxisY, false, false), up); err != nil {
		t.Fatal(err)
	}

	// Two keys pressed in the same tick coalesce into one pending entry
	// holding the combined vector.
	m.QueueInput(EventKeyboard{Time: 1, Key: 68, Down: true})
	m.QueueInput(EventKeyboard{Time: 1, Key: 87, Down: true})

	actions := m.TriggeredActions(10)
	if len(actions) != 1 {
		t.Fatalf("drained %d actions, want 1 coalesced", len(actions))
	}
	want := 1 / 1.4142135623730951 // unit-clamped diagonal
	got := actions[0].Data.Axes
	if diff := got[0] - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Axes[0] = %v, want %v", got[0], want)
	}
	if diff := got[1] - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Axes[1] = %v, want %v", got[1], want)
	}
}

func TestChangeActionStartsFromZeroEachDrain(t *testing.T) {
	m, ctx := newTestContext(t)
	if err := ctx.RegisterAction("scroll", NewAttributes(1, AttrNegative|AttrChangeValue)); err != nil {
		t.Fatal(err)
	}
	combo := InputCombo{
		Main: InputFilter{
			Source: InputSourceDescription{DeviceMouse, ControlMotion, 0, 0},
			Axis:   NewAxisFilter(AxisY, false, true),
		},
		Trigger: OnChange,
	}
	if err := ctx.RegisterInputBind("scroll", NewAxisFilter(AxisX, false, false), combo); err != nil {
		t.Fatal(err)
	}

	m.QueueInput(EventMouseWheel{Time: 1, DY: 1})
	actions := m.TriggeredActions(10)
	if len(actions) != 1 || actions[0].Data.Axes[0] != 1 {
		t.Fatalf("first tick: got %v, want one action with Axes[0]=1", actions)
	}

	// The next tick's delta does not stack on the last drain's value.
	m.QueueInput(EventMouseWheel{Time: 11, DY: 1})
	actions = m.TriggeredActions(20)
	if len(actions) != 1 || actions[0].Data.Axes[0] != 1 {
		t.Fatalf("second tick: got %v, want one action with Axes[0]=1", actions)
	}
}

func TestResetActionData(t *testing.T) {
	m, ctx := newTestContext(t)
	registerButtonAction(t, m, "game", "fire", DefaultPriority, 40, OnPress)

	m.QueueInput(EventKeyboard{Time: 1, Key: 40, Down: true})
	m.TriggeredActions(10)

	data, _ := ctx.ActionValue("fire")
	if !data.Activated {
		t.Fatal("precondition: fire should be activated")
	}

	if err := ctx.ResetActionData("fire", 50); err != nil {
		t.Fatal(err)
	}
	data, _ = ctx.ActionValue("fire")
	if data.Activated {
		t.Error("Activated = true after reset, want false")
	}

	pending := ctx.TriggeredActions()
	if len(pending) != 1 {
		t.Fatalf("pending = %d entries, want 1 reset", len(pending))
	}
	if pending[0].Data.Trigger != ActionReset {
		t.Errorf("Trigger = %v, want reset", pending[0].Data.Trigger)
	}
	if pending[0].Data.Timestamp != 50 {
		t.Errorf("Timestamp = %d, want 50", pending[0].Data.Timestamp)
	}
}

func TestResetUnknownActionErrors(t *testing.T) {
	_, ctx := newTestContext(t)
	if err := ctx.ResetActionData("nope", 0); err == nil {
		t.Error("want error for unknown action")
	}
}

func TestResetAllActionData(t *testing.T) {
	_, ctx := newTestContext(t)
	for _, name := range []string{"a", "b", "c"} {
		if err := ctx.RegisterAction(name, NewAttributes(0, AttrButtonValue)); err != nil {
			t.Fatal(err)
		}
	}
	ctx.ResetAllActionData(7)
	pending := ctx.TriggeredActions()
	if len(pending) != 3 {
		t.Fatalf("pending = %d entries, want 3", len(pending))
	}
	for _, ta := range pending {
		if ta.Data.Trigger != ActionReset || ta.Data.Timestamp != 7 {
			t.Errorf("entry %s: Trigger=%v Timestamp=%d, want reset at 7",
				ta.Definition.Name, ta.Data.Trigger, ta.Data.Timestamp)
		}
	}
}
