package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/ember/input"
	"github.com/automoto/ember/platform"
)

// InputMethod represents the type of input device most recently used.
type InputMethod int

const (
	InputKeyboardMouse InputMethod = iota
	InputGamepad
	InputTouch
)

// InputData is the singleton holding the input pipeline: the platform
// poller feeding raw events, the manager mapping them to actions, and the
// dispatcher routing triggered actions to handlers.
type InputData struct {
	Poller   *platform.Poller
	Manager  *input.Manager
	Dispatch *input.Dispatch

	LastInputMethod InputMethod // for UI prompts
	LastDrain       int64       // timestamp of the last queue drain, ms
}

var Input = donburi.NewComponentType[InputData]()
