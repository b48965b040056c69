package input

// Event is a platform input event. The platform layer produces one concrete
// event per raw state change; the Decoder turns it into a control identity
// and scalar values. Unrecognized concrete types are discarded silently.
type Event interface {
	// When returns the event timestamp in milliseconds.
	When() int64
}

// HatDirection is the 8-way position of a hat/d-pad style control.
type HatDirection int

const (
	HatCentre HatDirection = iota
	HatUp
	HatDown
	HatLeft
	HatRight
	HatLeftUp
	HatLeftDown
	HatRightUp
	HatRightDown
)

// EventKeyboard is a key press or release.
type EventKeyboard struct {
	Time   int64
	Device int
	Key    int // platform key code
	Down   bool
}

// EventMouseButton is a mouse button press or release.
type EventMouseButton struct {
	Time   int64
	Device int
	Button int
	Down   bool
}

// EventMouseMotion carries the cursor's absolute pixel position and the
// relative motion since the previous report.
type EventMouseMotion struct {
	Time   int64
	Device int
	X, Y   int // absolute, pixels
	DX, DY int // relative, pixels
}

// EventMouseWheel is a scroll wheel report, in wheel ticks.
type EventMouseWheel struct {
	Time   int64
	Device int
	DX, DY float64
}

// EventGamepadButton is a controller button press or release.
type EventGamepadButton struct {
	Time   int64
	Device int
	Button int
	Down   bool
}

// EventGamepadAxis is an absolute stick/trigger axis position in the raw
// signed 16-bit range (-32768..32767).
type EventGamepadAxis struct {
	Time   int64
	Device int
	Axis   int
	Value  float64
}

// EventGamepadHat is an 8-way hat switch position report.
type EventGamepadHat struct {
	Time      int64
	Device    int
	Hat       int
	Direction HatDirection
}

// EventGamepadBall is a trackball motion report in the raw ±128 range.
type EventGamepadBall struct {
	Time   int64
	Device int
	Ball   int
	DX, DY float64
}

// EventTouch is a touch point report. X and Y are already normalized to
// 0..1; DX and DY are normalized deltas since the previous report.
type EventTouch struct {
	Time    int64
	Device  int
	Finger  int
	X, Y    float64
	DX, DY  float64
	Pressed bool
}

func (e EventKeyboard) When() int64      { return e.Time }
func (e EventMouseButton) When() int64   { return e.Time }
func (e EventMouseMotion) When() int64   { return e.Time }
func (e EventMouseWheel) When() int64    { return e.Time }
func (e EventGamepadButton) When() int64 { return e.Time }
func (e EventGamepadAxis) When() int64   { return e.Time }
func (e EventGamepadHat) When() int64    { return e.Time }
func (e EventGamepadBall) When() int64   { return e.Time }
func (e EventTouch) When() int64         { return e.Time }
