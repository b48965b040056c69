package input

import (
	"fmt"

	"github.com/automoto/ember/config"
)

// LoadConfiguration replaces the manager's entire binding state with the
// given declarative configuration: every existing context is torn down,
// then contexts, actions and input binds are registered from the records.
// On error the manager may hold a partial configuration; callers should
// treat a failed load as fatal or retry with a known-good config.
func (m *Manager) LoadConfiguration(cfg *config.InputConfig) error {
	for _, name := range m.ContextNames() {
		if err := m.UnregisterActionContext(name); err != nil {
			return err
		}
	}

	for _, rec := range cfg.Contexts {
		priority := DefaultPriority
		if rec.Priority != nil {
			priority = *rec.Priority
		}
		if _, err := m.RegisterActionContext(rec.Name, priority); err != nil {
			return err
		}
	}

	for _, rec := range cfg.Actions {
		ctx, ok := m.ActionContext(rec.Context)
		if !ok {
			return fmt.Errorf("action %q references unknown context %q", rec.Name, rec.Context)
		}
		var flags Attributes
		if rec.HasNegative {
			flags |= AttrNegative
		}
		if rec.HasChangeValue {
			flags |= AttrChangeValue
		}
		if rec.HasButtonValue {
			flags |= AttrButtonValue
		}
		if rec.HasStateValue {
			flags |= AttrStateValue
		}
		if rec.StateIsLocation {
			flags |= AttrLocation
		}
		if err := ctx.RegisterAction(rec.Name, NewAttributes(rec.Axes, flags)); err != nil {
			return fmt.Errorf("context %q: %w", rec.Context, err)
		}
	}

	for i, rec := range cfg.Binds {
		ctx, ok := m.ActionContext(rec.Context)
		if !ok {
			return fmt.Errorf("bind %d references unknown context %q", i, rec.Context)
		}
		axis, err := ParseAxisFilter(rec.TargetAxis)
		if err != nil {
			return fmt.Errorf("bind %d for %s.%s: %w", i, rec.Context, rec.Action, err)
		}
		combo, err := comboFromRecord(rec.InputCombo)
		if err != nil {
			return fmt.Errorf("bind %d for %s.%s: %w", i, rec.Context, rec.Action, err)
		}
		if err := ctx.RegisterInputBind(rec.Action, axis, combo); err != nil {
			return fmt.Errorf("bind %d for %s.%s: %w", i, rec.Context, rec.Action, err)
		}
	}
	return nil
}

func sourceFromRecord(rec config.InputSourceRecord) (InputSourceDescription, error) {
	if rec.DeviceType == "" && rec.ControlType == "" {
		return InputSourceDescription{}, nil // absent source (unused modifier slot)
	}
	dev, err := ParseDeviceType(rec.DeviceType)
	if err != nil {
		return InputSourceDescription{}, err
	}
	ctl, err := ParseControlType(rec.ControlType)
	if err != nil {
		return InputSourceDescription{}, err
	}
	return InputSourceDescription{
		DeviceType:  dev,
		ControlType: ctl,
		Device:      rec.Device,
		Control:     rec.Control,
	}, nil
}

func filterFromRecord(rec config.FilterRecord) (InputFilter, error) {
	src, err := sourceFromRecord(rec.InputSource)
	if err != nil {
		return InputFilter{}, err
	}
	axis, err := ParseAxisFilter(rec.Filter)
	if err != nil {
		return InputFilter{}, err
	}
	return InputFilter{Source: src, Axis: axis}, nil
}

func comboFromRecord(rec config.ComboRecord) (InputCombo, error) {
	main, err := filterFromRecord(rec.MainControl)
	if err != nil {
		return InputCombo{}, fmt.Errorf("main control: %w", err)
	}
	mod1, err := filterFromRecord(rec.Modifier1)
	if err != nil {
		return InputCombo{}, fmt.Errorf("modifier 1: %w", err)
	}
	mod2, err := filterFromRecord(rec.Modifier2)
	if err != nil {
		return InputCombo{}, fmt.Errorf("modifier 2: %w", err)
	}
	trigger, err := ParseTrigger(rec.Trigger)
	if err != nil {
		return InputCombo{}, err
	}
	return InputCombo{
		Main:      main,
		Modifier1: mod1,
		Modifier2: mod2,
		Trigger:   trigger,
		Deadzone:  rec.Deadzone,
		Threshold: rec.Threshold,
	}, nil
}
