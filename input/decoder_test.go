package input

import "testing"

type fakeDisplay struct {
	w, h int
}

func (d fakeDisplay) WindowSize() (int, int) { return d.w, d.h }

func newTestDecoder() *Decoder {
	return NewDecoder(DefaultAttributeTable(), fakeDisplay{w: 640, h: 360})
}

func TestDecoderDescribe(t *testing.T) {
	dec := newTestDecoder()

	cases := []struct {
		name string
		ev   Event
		want InputSourceDescription
	}{
		{"keyboard", EventKeyboard{Key: 42, Down: true},
			InputSourceDescription{DeviceKeyboard, ControlButton, 0, 42}},
		{"mouse button", EventMouseButton{Button: 1, Down: true},
			InputSourceDescription{DeviceMouse, ControlButton, 0, 1}},
		{"mouse motion", EventMouseMotion{X: 10, Y: 20},
			InputSourceDescription{DeviceMouse, ControlPoint, 0, 0}},
		{"mouse wheel", EventMouseWheel{DY: 1},
			InputSourceDescription{DeviceMouse, ControlMotion, 0, 0}},
		{"gamepad button", EventGamepadButton{Device: 1, Button: 3, Down: true},
			InputSourceDescription{DeviceController, ControlButton, 1, 3}},
		{"gamepad axis", EventGamepadAxis{Device: 1, Axis: 2, Value: 100},
			InputSourceDescription{DeviceController, ControlAxis, 1, 2}},
		{"gamepad hat", EventGamepadHat{Device: 0, Hat: 0, Direction: HatUp},
			InputSourceDescription{DeviceController, ControlRadio, 0, 0}},
		{"trackball", EventGamepadBall{Device: 0, Ball: 0, DX: 5},
			InputSourceDescription{DeviceController, ControlMotion, 0, 0}},
		{"touch", EventTouch{Finger: 2, X: 0.5, Y: 0.5, Pressed: true},
			InputSourceDescription{DeviceTouch, ControlPoint, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dec.Describe(tc.ev)
			if got != tc.want {
				t.Errorf("Describe = %v, want %v", got, tc.want)
			}
			if _, ok := dec.Attributes(got); !ok {
				t.Errorf("no attributes for %v", got)
			}
		})
	}
}

func TestDecoderDescribeUnknownEvent(t *testing.T) {
	type bogusEvent struct{ Event }
	dec := newTestDecoder()
	if desc := dec.Describe(bogusEvent{}); desc.Valid() {
		t.Errorf("Describe(bogus) = %v, want invalid", desc)
	}
}

func TestExtractButtonValues(t *testing.T) {
	dec := newTestDecoder()
	simple := NewAxisFilter(AxisSimple, false, false)

	ev := EventKeyboard{Key: 7, Down: true}
	f := InputFilter{Source: dec.Describe(ev), Axis: simple}
	if v, err := dec.Extract(f, ev); err != nil || v != 1 {
		t.Errorf("pressed key = %v, %v; want 1, nil", v, err)
	}
	ev.Down = false
	if v, err := dec.Extract(f, ev); err != nil || v != 0 {
		t.Errorf("released key = %v, %v; want 0, nil", v, err)
	}
}

func TestExtractStickAxis(t *testing.T) {
	dec := newTestDecoder()

	cases := []struct {
		name     string
		raw      float64
		negative bool
		want     float64
	}{
		{"half deflection positive", 16384, false, 0.5},
		{"half deflection negative filter", 16384, true, 0},
		{"negative deflection positive filter", -16384, false, 0},
		{"negative deflection negative filter", -16384, true, 0.5},
		{"full positive", 32768, false, 1},
		{"overrange clamps", 40000, false, 1},
		{"centered", 0, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := EventGamepadAxis{Device: 0, Axis: 0, Value: tc.raw}
			f := InputFilter{
				Source: dec.Describe(ev),
				Axis:   NewAxisFilter(AxisX, tc.negative, false),
			}
			v, err := dec.Extract(f, ev)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if v != tc.want {
				t.Errorf("Extract = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestExtractMousePositionAndMotion(t *testing.T) {
	dec := newTestDecoder()
	ev := EventMouseMotion{X: 320, Y: 90, DX: 64, DY: -36}
	src := dec.Describe(ev)

	cases := []struct {
		filter string
		want   float64
	}{
		{"+x", 0.5},
		{"+y", 0.25},
		{"-x", 0},  // absolute positions have no negative half
		{"+dx", 0.1},
		{"-dx", 0},
		{"+dy", 0},
		{"-dy", 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			axis, err := ParseAxisFilter(tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			v, err := dec.Extract(InputFilter{Source: src, Axis: axis}, ev)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if diff := v - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Extract = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestExtractWheel(t *testing.T) {
	dec := newTestDecoder()
	ev := EventMouseWheel{DY: 1}
	src := dec.Describe(ev)

	up := InputFilter{Source: src, Axis: NewAxisFilter(AxisY, false, true)}
	if v, err := dec.Extract(up, ev); err != nil || v != 1 {
		t.Errorf("wheel up = %v, %v; want 1, nil", v, err)
	}
	down := InputFilter{Source: src, Axis: NewAxisFilter(AxisY, true, true)}
	if v, err := dec.Extract(down, ev); err != nil || v != 0 {
		t.Errorf("wheel down filter on up tick = %v, %v; want 0, nil", v, err)
	}
}

func TestExtractHatMembership(t *testing.T) {
	dec := newTestDecoder()

	cases := []struct {
		name   string
		dir    HatDirection
		filter AxisFilter
		want   float64
	}{
		{"up on +y", HatUp, NewAxisFilter(AxisY, false, false), 1},
		{"up on -y", HatUp, NewAxisFilter(AxisY, true, false), 0},
		{"left-up on -x", HatLeftUp, NewAxisFilter(AxisX, true, false), 1},
		{"left-up on +y", HatLeftUp, NewAxisFilter(AxisY, false, false), 1},
		{"right-down on +x", HatRightDown, NewAxisFilter(AxisX, false, false), 1},
		{"right-down on -y", HatRightDown, NewAxisFilter(AxisY, true, false), 1},
		{"centre on anything", HatCentre, NewAxisFilter(AxisX, false, false), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := EventGamepadHat{Direction: tc.dir}
			v, err := dec.Extract(InputFilter{Source: dec.Describe(ev), Axis: tc.filter}, ev)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if v != tc.want {
				t.Errorf("Extract = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestExtractTrackball(t *testing.T) {
	dec := newTestDecoder()
	ev := EventGamepadBall{DX: 64, DY: -128}
	src := dec.Describe(ev)

	if v, _ := dec.Extract(InputFilter{Source: src, Axis: NewAxisFilter(AxisX, false, true)}, ev); v != 0.5 {
		t.Errorf("+dx = %v, want 0.5", v)
	}
	if v, _ := dec.Extract(InputFilter{Source: src, Axis: NewAxisFilter(AxisY, true, true)}, ev); v != 1 {
		t.Errorf("-dy = %v, want 1", v)
	}
}

func TestExtractUnsupportedFilterErrors(t *testing.T) {
	dec := newTestDecoder()
	ev := EventKeyboard{Key: 7, Down: true}
	f := InputFilter{Source: dec.Describe(ev), Axis: NewAxisFilter(AxisX, false, false)}
	if _, err := dec.Extract(f, ev); err == nil {
		t.Error("Extract axis from key event: want error")
	}
}
