package config

import "github.com/hajimehoshi/ebiten/v2"

// InputSourceRecord names one physical control in the declarative form the
// input configuration file uses.
type InputSourceRecord struct {
	DeviceType  string `mapstructure:"device_type"`
	ControlType string `mapstructure:"control_type"`
	Device      int    `mapstructure:"device"`
	Control     int    `mapstructure:"control"`
}

// FilterRecord selects one scalar stream of a control ("simple", "+x",
// "-dy", ...).
type FilterRecord struct {
	InputSource InputSourceRecord `mapstructure:"input_source"`
	Filter      string            `mapstructure:"filter"`
}

// ComboRecord is the declarative form of an input combo.
type ComboRecord struct {
	MainControl FilterRecord `mapstructure:"main_control"`
	Modifier1   FilterRecord `mapstructure:"modifier_1"`
	Modifier2   FilterRecord `mapstructure:"modifier_2"`
	Trigger     string       `mapstructure:"trigger"`
	Deadzone    float64      `mapstructure:"deadzone"`
	Threshold   float64      `mapstructure:"threshold"`
}

// BindRecord routes a combo onto one axis of one action.
type BindRecord struct {
	Context    string      `mapstructure:"context"`
	Action     string      `mapstructure:"action"`
	TargetAxis string      `mapstructure:"target_axis"`
	InputCombo ComboRecord `mapstructure:"input_combo"`
}

// ActionRecord declares a logical action and its value shape.
type ActionRecord struct {
	Context         string `mapstructure:"context"`
	Name            string `mapstructure:"name"`
	Axes            int    `mapstructure:"n_axes"`
	HasNegative     bool   `mapstructure:"has_negative"`
	HasChangeValue  bool   `mapstructure:"has_change_value"`
	HasButtonValue  bool   `mapstructure:"has_button_value"`
	HasStateValue   bool   `mapstructure:"has_state_value"`
	StateIsLocation bool   `mapstructure:"state_is_location"`
}

// ContextRecord declares an action context. A nil priority means the
// default mid-level priority.
type ContextRecord struct {
	Name     string `mapstructure:"name"`
	Priority *int   `mapstructure:"priority"`
}

// InputConfig is the full declarative input configuration.
type InputConfig struct {
	Contexts []ContextRecord `mapstructure:"action_contexts"`
	Actions  []ActionRecord  `mapstructure:"actions"`
	Binds    []BindRecord    `mapstructure:"input_binds"`
}

// Input is the built-in input configuration, used when no config file is
// loaded.
var Input *InputConfig

func init() {
	Input = DefaultInput()
}

// Standard control indices the default bindings use.
const (
	gamepadLeftStickX  = 0
	gamepadLeftStickY  = 1
	gamepadButtonA     = 0
	gamepadButtonStart = 9
)

func key(k ebiten.Key) InputSourceRecord {
	return InputSourceRecord{DeviceType: "keyboard", ControlType: "button", Control: int(k)}
}

func keyFilter(k ebiten.Key) FilterRecord {
	return FilterRecord{InputSource: key(k), Filter: "simple"}
}

// DefaultInput returns the built-in contexts, actions and bindings:
// a "gameplay" context at the default priority and a "menu" context
// above it that consumes its inputs.
func DefaultInput() *InputConfig {
	menuPriority := 12

	return &InputConfig{
		Contexts: []ContextRecord{
			{Name: "gameplay"},
			{Name: "menu", Priority: &menuPriority},
		},
		Actions: []ActionRecord{
			{Context: "gameplay", Name: "move", Axes: 2, HasNegative: true, HasStateValue: true},
			{Context: "gameplay", Name: "jump", HasButtonValue: true},
			{Context: "gameplay", Name: "cursor", Axes: 2, HasStateValue: true, StateIsLocation: true},
			{Context: "gameplay", Name: "look", Axes: 2, HasNegative: true, HasChangeValue: true},
			{Context: "menu", Name: "navigate", Axes: 2, HasNegative: true, HasStateValue: true},
			{Context: "menu", Name: "select", HasButtonValue: true},
		},
		Binds: []BindRecord{
			// WASD onto the move axes
			{Context: "gameplay", Action: "move", TargetAxis: "-x", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyA), Trigger: "on-change"}},
			{Context: "gameplay", Action: "move", TargetAxis: "+x", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyD), Trigger: "on-change"}},
			{Context: "gameplay", Action: "move", TargetAxis: "+y", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyW), Trigger: "on-change"}},
			{Context: "gameplay", Action: "move", TargetAxis: "-y", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyS), Trigger: "on-change"}},

			// Left stick onto the move axes, with a stick deadzone
			{Context: "gameplay", Action: "move", TargetAxis: "+x", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "axis", Control: gamepadLeftStickX},
					Filter:      "+x"},
				Trigger: "on-change", Deadzone: 0.25}},
			{Context: "gameplay", Action: "move", TargetAxis: "-x", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "axis", Control: gamepadLeftStickX},
					Filter:      "-x"},
				Trigger: "on-change", Deadzone: 0.25}},
			{Context: "gameplay", Action: "move", TargetAxis: "-y", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "axis", Control: gamepadLeftStickY},
					Filter:      "+x"},
				Trigger: "on-change", Deadzone: 0.25}},
			{Context: "gameplay", Action: "move", TargetAxis: "+y", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "axis", Control: gamepadLeftStickY},
					Filter:      "-x"},
				Trigger: "on-change", Deadzone: 0.25}},

			// Jump on space or the A button
			{Context: "gameplay", Action: "jump", TargetAxis: "simple", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeySpace), Trigger: "on-press", Threshold: 0.5}},
			{Context: "gameplay", Action: "jump", TargetAxis: "simple", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "button", Control: gamepadButtonA},
					Filter:      "simple"},
				Trigger: "on-press", Threshold: 0.5}},

			// Absolute cursor position
			{Context: "gameplay", Action: "cursor", TargetAxis: "+x", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "+x"},
				Trigger: "on-change"}},
			{Context: "gameplay", Action: "cursor", TargetAxis: "+y", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "+y"},
				Trigger: "on-change"}},

			// Mouse-look deltas, gated on the right mouse button
			{Context: "gameplay", Action: "look", TargetAxis: "+dx", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "+dx"},
				Modifier1: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "button", Control: int(ebiten.MouseButtonRight)},
					Filter:      "simple"},
				Trigger: "on-change"}},
			{Context: "gameplay", Action: "look", TargetAxis: "-dx", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "-dx"},
				Modifier1: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "button", Control: int(ebiten.MouseButtonRight)},
					Filter:      "simple"},
				Trigger: "on-change"}},
			{Context: "gameplay", Action: "look", TargetAxis: "+dy", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "+dy"},
				Modifier1: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "button", Control: int(ebiten.MouseButtonRight)},
					Filter:      "simple"},
				Trigger: "on-change"}},
			{Context: "gameplay", Action: "look", TargetAxis: "-dy", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "point"},
					Filter:      "-dy"},
				Modifier1: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "mouse", ControlType: "button", Control: int(ebiten.MouseButtonRight)},
					Filter:      "simple"},
				Trigger: "on-change"}},

			// Menu navigation on the arrow keys, select on enter or start
			{Context: "menu", Action: "navigate", TargetAxis: "-x", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyLeft), Trigger: "on-change"}},
			{Context: "menu", Action: "navigate", TargetAxis: "+x", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyRight), Trigger: "on-change"}},
			{Context: "menu", Action: "navigate", TargetAxis: "+y", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyUp), Trigger: "on-change"}},
			{Context: "menu", Action: "navigate", TargetAxis: "-y", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyDown), Trigger: "on-change"}},
			{Context: "menu", Action: "select", TargetAxis: "simple", InputCombo: ComboRecord{
				MainControl: keyFilter(ebiten.KeyEnter), Trigger: "on-press", Threshold: 0.5}},
			{Context: "menu", Action: "select", TargetAxis: "simple", InputCombo: ComboRecord{
				MainControl: FilterRecord{
					InputSource: InputSourceRecord{DeviceType: "controller", ControlType: "button", Control: gamepadButtonStart},
					Filter:      "simple"},
				Trigger: "on-press", Threshold: 0.5}},
		},
	}
}
