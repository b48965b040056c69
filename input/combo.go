package input

import "fmt"

// Trigger selects the edge or change condition that makes a combo fire.
// The Button variants address pointer-like controls that double as buttons:
// the edge is taken from the control's button value while the delivered
// axis value still comes from the bound axis.
type Trigger int

const (
	OnPress Trigger = iota
	OnRelease
	OnChange
	OnButtonPress
	OnButtonRelease
	OnButtonChange
)

var triggerNames = map[Trigger]string{
	OnPress:         "on-press",
	OnRelease:       "on-release",
	OnChange:        "on-change",
	OnButtonPress:   "on-button-press",
	OnButtonRelease: "on-button-release",
	OnButtonChange:  "on-button-change",
}

func (t Trigger) String() string {
	if s, ok := triggerNames[t]; ok {
		return s
	}
	return "on-press"
}

// ParseTrigger converts a config string into a Trigger.
func ParseTrigger(s string) (Trigger, error) {
	for t, name := range triggerNames {
		if name == s {
			return t, nil
		}
	}
	return OnPress, fmt.Errorf("unknown trigger %q", s)
}

// IsButton reports whether the trigger reads the main control's button
// value instead of the bound axis value for its edge condition.
func (t Trigger) IsButton() bool {
	return t == OnButtonPress || t == OnButtonRelease || t == OnButtonChange
}

// IsChange reports whether the trigger fires on value changes rather than
// activation edges. Change triggers carry no activation threshold.
func (t Trigger) IsChange() bool {
	return t == OnChange || t == OnButtonChange
}

// InputCombo couples one main control stream with up to two modifier gates,
// a trigger condition, a deadzone and an activation threshold. An invalid
// modifier filter counts as vacuously held.
type InputCombo struct {
	Main      InputFilter
	Modifier1 InputFilter
	Modifier2 InputFilter
	Trigger   Trigger
	Deadzone  float64 // lower clamp on the normalized main value
	Threshold float64 // activation cutoff; 0 for change triggers
}

// Valid reports whether the combo has a usable main control.
func (c InputCombo) Valid() bool { return c.Main.Valid() }

// Compare orders combos over (main, mod1, mod2, trigger, threshold).
func (c InputCombo) Compare(o InputCombo) int {
	if v := c.Main.Compare(o.Main); v != 0 {
		return v
	}
	if v := c.Modifier1.Compare(o.Modifier1); v != 0 {
		return v
	}
	if v := c.Modifier2.Compare(o.Modifier2); v != 0 {
		return v
	}
	if c.Trigger != o.Trigger {
		return cmpInt(int(c.Trigger), int(o.Trigger))
	}
	switch {
	case c.Threshold < o.Threshold:
		return -1
	case c.Threshold > o.Threshold:
		return 1
	}
	return 0
}

func (c InputCombo) String() string {
	return fmt.Sprintf("%s %s", c.Main, c.Trigger)
}

// UnmappedInputValue is a timestamped snapshot of one resolved combo: the
// remapped axis value, the sampled button value (for button triggers), and
// whether the combo counts as activated.
type UnmappedInputValue struct {
	Timestamp   int64 // milliseconds
	Activated   bool
	AxisValue   float64 // normalized 0..1 after deadzone remap
	ButtonValue float64 // main control's simple value, button triggers only
}
