package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultInputValidates(t *testing.T) {
	if err := DefaultInput().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		cfg  InputConfig
	}{
		{"empty context name", InputConfig{
			Contexts: []ContextRecord{{Name: ""}},
		}},
		{"duplicate context", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}, {Name: "a"}},
		}},
		{"action on unknown context", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Actions:  []ActionRecord{{Context: "b", Name: "x"}},
		}},
		{"duplicate action", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Actions: []ActionRecord{
				{Context: "a", Name: "x"},
				{Context: "a", Name: "x"},
			},
		}},
		{"too many axes", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Actions:  []ActionRecord{{Context: "a", Name: "x", Axes: 4}},
		}},
		{"change and state together", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Actions: []ActionRecord{
				{Context: "a", Name: "x", Axes: 1, HasChangeValue: true, HasStateValue: true},
			},
		}},
		{"bind to unknown action", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Binds:    []BindRecord{{Context: "a", Action: "x"}},
		}},
		{"bind without main control", InputConfig{
			Contexts: []ContextRecord{{Name: "a"}},
			Actions:  []ActionRecord{{Context: "a", Name: "x", HasButtonValue: true}},
			Binds:    []BindRecord{{Context: "a", Action: "x", TargetAxis: "simple"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("want validation error")
			}
		})
	}
}

const sampleYAML = `
action_contexts:
  - name: gameplay
  - name: menu
    priority: 12
actions:
  - context: gameplay
    name: move
    n_axes: 2
    has_negative: true
    has_state_value: true
  - context: menu
    name: select
    has_button_value: true
input_binds:
  - context: gameplay
    action: move
    target_axis: "+x"
    input_combo:
      main_control:
        input_source:
          device_type: keyboard
          control_type: button
          control: 68
        filter: simple
      trigger: on-change
  - context: menu
    action: select
    target_axis: simple
    input_combo:
      main_control:
        input_source:
          device_type: keyboard
          control_type: button
          control: 36
        filter: simple
      trigger: on-press
      threshold: 0.5
`

func TestLoadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInput(path)
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}

	if len(cfg.Contexts) != 2 {
		t.Fatalf("contexts = %d, want 2", len(cfg.Contexts))
	}
	if cfg.Contexts[0].Priority != nil {
		t.Error("gameplay priority should be unset")
	}
	if cfg.Contexts[1].Priority == nil || *cfg.Contexts[1].Priority != 12 {
		t.Error("menu priority should be 12")
	}

	if len(cfg.Actions) != 2 {
		t.Fatalf("actions = %d, want 2", len(cfg.Actions))
	}
	move := cfg.Actions[0]
	if move.Axes != 2 || !move.HasNegative || !move.HasStateValue {
		t.Errorf("move = %+v, want 2-axis negative state", move)
	}

	if len(cfg.Binds) != 2 {
		t.Fatalf("binds = %d, want 2", len(cfg.Binds))
	}
	bind := cfg.Binds[0]
	if bind.TargetAxis != "+x" {
		t.Errorf("target axis = %q, want +x", bind.TargetAxis)
	}
	if bind.InputCombo.MainControl.InputSource.Control != 68 {
		t.Errorf("control = %d, want 68", bind.InputCombo.MainControl.InputSource.Control)
	}
	if cfg.Binds[1].InputCombo.Threshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", cfg.Binds[1].InputCombo.Threshold)
	}
}

func TestLoadInputMissingFile(t *testing.T) {
	if _, err := LoadInput(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestLoadInputInvalidCrossReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	bad := `
action_contexts:
  - name: gameplay
input_binds:
  - context: gameplay
    action: ghost
    target_axis: simple
`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInput(path); err == nil {
		t.Error("want error for bind to undeclared action")
	}
}
