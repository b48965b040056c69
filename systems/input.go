package systems

import (
	"log"
	"time"

	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/ember/components"
	cfg "github.com/automoto/ember/config"
	"github.com/automoto/ember/input"
	"github.com/automoto/ember/platform"
)

// UpdateInput runs the frame's input pipeline: poll the platform for raw
// events, queue them on the manager, drain triggered actions up to the
// current time, and dispatch each one to its registered handlers.
// Must run before any system that reads action values.
func UpdateInput(ecs *ecs.ECS) {
	in := getOrCreateInput(ecs)
	now := time.Now().UnixMilli()

	events := in.Poller.Poll(now)
	for _, ev := range events {
		in.Manager.QueueInput(ev)
		trackInputMethod(in, ev)
	}

	for _, ta := range in.Manager.TriggeredActions(now) {
		in.Dispatch.DispatchAction(ta.Definition, ta.Data)
	}
	in.LastDrain = now
}

// GetInput returns the singleton Input component, building the pipeline
// on first use. Callers use it to register handlers and inspect contexts.
func GetInput(ecs *ecs.ECS) *components.InputData {
	return getOrCreateInput(ecs)
}

// getOrCreateInput returns the singleton Input component, building the
// whole pipeline on first use.
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))

		poller := platform.NewPoller()
		manager := input.NewManager(input.NewDecoder(input.DefaultAttributeTable(), poller))
		if err := manager.LoadConfiguration(cfg.Input); err != nil {
			log.Printf("Warning: failed to load input configuration: %v", err)
		}

		components.Input.SetValue(entry, components.InputData{
			Poller:   poller,
			Manager:  manager,
			Dispatch: input.NewDispatch(cfg.C.Width, cfg.C.Height),
		})
	}
	return components.Input.Get(entry)
}

func trackInputMethod(in *components.InputData, ev input.Event) {
	switch ev.(type) {
	case input.EventKeyboard, input.EventMouseButton, input.EventMouseWheel:
		in.LastInputMethod = components.InputKeyboardMouse
	case input.EventGamepadButton, input.EventGamepadAxis, input.EventGamepadHat:
		in.LastInputMethod = components.InputGamepad
	case input.EventTouch:
		in.LastInputMethod = components.InputTouch
	}
}
