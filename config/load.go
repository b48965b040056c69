package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadInput reads an input configuration file (any format viper
// understands) and validates its cross-references. Value-level checks
// such as filter support happen later when the configuration is applied.
func LoadInput(path string) (*InputConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading input config: %w", err)
	}
	cfg := &InputConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing input config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency: unique context names, actions
// declared under known contexts, binds referencing declared actions, and
// action shapes inside the representable range.
func (c *InputConfig) Validate() error {
	contexts := map[string]bool{}
	for _, ctx := range c.Contexts {
		if ctx.Name == "" {
			return fmt.Errorf("action context with empty name")
		}
		if contexts[ctx.Name] {
			return fmt.Errorf("duplicate action context %q", ctx.Name)
		}
		contexts[ctx.Name] = true
	}

	actions := map[string]bool{}
	for _, a := range c.Actions {
		if a.Name == "" {
			return fmt.Errorf("action with empty name in context %q", a.Context)
		}
		if !contexts[a.Context] {
			return fmt.Errorf("action %q references unknown context %q", a.Name, a.Context)
		}
		qualified := a.Context + "." + a.Name
		if actions[qualified] {
			return fmt.Errorf("duplicate action %q", qualified)
		}
		if a.Axes < 0 || a.Axes > 3 {
			return fmt.Errorf("action %q has %d axes, want 0 to 3", qualified, a.Axes)
		}
		if a.HasChangeValue && a.HasStateValue {
			return fmt.Errorf("action %q declares both change and state values", qualified)
		}
		actions[qualified] = true
	}

	for i, b := range c.Binds {
		qualified := b.Context + "." + b.Action
		if !actions[qualified] {
			return fmt.Errorf("bind %d references unknown action %q", i, qualified)
		}
		if b.InputCombo.MainControl.InputSource.DeviceType == "" {
			return fmt.Errorf("bind %d for %q has no main control", i, qualified)
		}
	}
	return nil
}
