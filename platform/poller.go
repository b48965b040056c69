// Package platform adapts ebiten's polled input state into the event
// stream the input package consumes. Ebiten exposes per-frame snapshots,
// not events, so the poller keeps last-frame state and synthesizes one
// event per observed change.
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/automoto/ember/config"
	"github.com/automoto/ember/input"
)

// Raw axis range the gamepad events report in. Ebiten normalizes stick
// positions to -1..1; events carry the signed 16-bit convention instead.
const stickScale = 32767.0

type gamepadState struct {
	axes []float64
	hat  input.HatDirection
}

type touchState struct {
	x, y float64
}

// Poller synthesizes input events from ebiten's per-frame input state.
// It also serves as the decoder's display info source.
type Poller struct {
	cursorX, cursorY int
	gamepads         map[ebiten.GamepadID]*gamepadState
	touches          map[ebiten.TouchID]touchState

	gamepadIDs []ebiten.GamepadID
	touchIDs   []ebiten.TouchID
	keys       []ebiten.Key
}

func NewPoller() *Poller {
	x, y := ebiten.CursorPosition()
	return &Poller{
		cursorX:  x,
		cursorY:  y,
		gamepads: make(map[ebiten.GamepadID]*gamepadState),
		touches:  make(map[ebiten.TouchID]touchState),
	}
}

// WindowSize returns the logical screen dimensions mouse and touch
// coordinates are normalized against.
func (p *Poller) WindowSize() (int, int) {
	return config.C.Width, config.C.Height
}

// Poll reads the current frame's input state and returns one event per
// change since the previous call, all stamped with now (milliseconds).
func (p *Poller) Poll(now int64) []input.Event {
	var events []input.Event
	events = p.pollKeyboard(now, events)
	events = p.pollMouse(now, events)
	events = p.pollGamepads(now, events)
	events = p.pollTouches(now, events)
	return events
}

func (p *Poller) pollKeyboard(now int64, events []input.Event) []input.Event {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		events = append(events, input.EventKeyboard{Time: now, Key: int(k), Down: true})
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		events = append(events, input.EventKeyboard{Time: now, Key: int(k), Down: false})
	}
	return events
}

func (p *Poller) pollMouse(now int64, events []input.Event) []input.Event {
	for b := ebiten.MouseButtonLeft; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			events = append(events, input.EventMouseButton{Time: now, Button: int(b), Down: true})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			events = append(events, input.EventMouseButton{Time: now, Button: int(b), Down: false})
		}
	}

	x, y := ebiten.CursorPosition()
	if x != p.cursorX || y != p.cursorY {
		events = append(events, input.EventMouseMotion{
			Time: now,
			X:    x, Y: y,
			DX: x - p.cursorX, DY: y - p.cursorY,
		})
		p.cursorX, p.cursorY = x, y
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		events = append(events, input.EventMouseWheel{Time: now, DX: wx, DY: wy})
	}
	return events
}

func (p *Poller) pollGamepads(now int64, events []input.Event) []input.Event {
	p.gamepadIDs = ebiten.AppendGamepadIDs(p.gamepadIDs[:0])

	seen := make(map[ebiten.GamepadID]bool, len(p.gamepadIDs))
	for _, id := range p.gamepadIDs {
		seen[id] = true
		st := p.gamepads[id]
		if st == nil {
			st = &gamepadState{}
			p.gamepads[id] = st
		}
		events = p.pollGamepad(now, id, st, events)
	}
	for id := range p.gamepads {
		if !seen[id] {
			delete(p.gamepads, id)
		}
	}
	return events
}

func (p *Poller) pollGamepad(now int64, id ebiten.GamepadID, st *gamepadState, events []input.Event) []input.Event {
	device := int(id)

	n := ebiten.GamepadAxisCount(id)
	for len(st.axes) < n {
		st.axes = append(st.axes, 0)
	}
	for axis := 0; axis < n; axis++ {
		v := ebiten.GamepadAxisValue(id, ebiten.GamepadAxisType(axis))
		if v != st.axes[axis] {
			st.axes[axis] = v
			events = append(events, input.EventGamepadAxis{
				Time: now, Device: device, Axis: axis, Value: v * stickScale,
			})
		}
	}

	for b := 0; b < ebiten.GamepadButtonCount(id); b++ {
		button := ebiten.GamepadButton(b)
		if inpututil.IsGamepadButtonJustPressed(id, button) {
			events = append(events, input.EventGamepadButton{Time: now, Device: device, Button: b, Down: true})
		}
		if inpututil.IsGamepadButtonJustReleased(id, button) {
			events = append(events, input.EventGamepadButton{Time: now, Device: device, Button: b, Down: false})
		}
	}

	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		dir := dpadDirection(id)
		if dir != st.hat {
			st.hat = dir
			events = append(events, input.EventGamepadHat{Time: now, Device: device, Direction: dir})
		}
	}
	return events
}

// dpadDirection folds the standard layout's four d-pad buttons into one
// 8-way hat position.
func dpadDirection(id ebiten.GamepadID) input.HatDirection {
	up := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
	down := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
	left := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
	right := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)

	switch {
	case up && left:
		return input.HatLeftUp
	case up && right:
		return input.HatRightUp
	case down && left:
		return input.HatLeftDown
	case down && right:
		return input.HatRightDown
	case up:
		return input.HatUp
	case down:
		return input.HatDown
	case left:
		return input.HatLeft
	case right:
		return input.HatRight
	}
	return input.HatCentre
}

func (p *Poller) pollTouches(now int64, events []input.Event) []input.Event {
	w, h := p.WindowSize()
	fw, fh := float64(w), float64(h)

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		px, py := ebiten.TouchPosition(id)
		x, y := float64(px)/fw, float64(py)/fh

		prev, known := p.touches[id]
		if !known {
			events = append(events, input.EventTouch{
				Time: now, Finger: int(id), X: x, Y: y, Pressed: true,
			})
		} else if x != prev.x || y != prev.y {
			events = append(events, input.EventTouch{
				Time: now, Finger: int(id),
				X: x, Y: y,
				DX: x - prev.x, DY: y - prev.y,
				Pressed: true,
			})
		}
		p.touches[id] = touchState{x: x, y: y}
	}

	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		prev := p.touches[id]
		events = append(events, input.EventTouch{
			Time: now, Finger: int(id), X: prev.x, Y: prev.y, Pressed: false,
		})
		delete(p.touches, id)
	}
	return events
}
