package input

import (
	"fmt"

	"github.com/solarlune/resolv"
)

// HandlerFunc consumes one triggered action and reports whether it handled
// it.
type HandlerFunc func(def ActionDefinition, data ActionData) bool

// Handle is the caller's claim on a registered handler. Closing it
// invalidates the registration; the dispatcher prunes closed handles
// lazily during the next dispatch that visits them.
type Handle struct {
	id     uint64
	closed bool
}

// Close invalidates the handler registration.
func (h *Handle) Close() { h.closed = true }

// Closed reports whether the handle has been invalidated.
func (h *Handle) Closed() bool { return h.closed }

type handlerEntry struct {
	handle *Handle
	fn     HandlerFunc
	region *resolv.Object // nil = no region scoping
	tag    string
}

// Dispatch fans triggered actions out to registered handlers, keyed by the
// qualified "context.action" name. Handlers may optionally be scoped to a
// screen region: location-valued actions are then delivered only when the
// reported position falls inside the region, giving per-viewport routing.
type Dispatch struct {
	handlers map[string][]*handlerEntry
	space    *resolv.Space
	screenW  int
	screenH  int
	nextID   uint64
}

// NewDispatch builds a dispatcher for a screen of the given pixel size.
func NewDispatch(screenW, screenH int) *Dispatch {
	return &Dispatch{
		handlers: make(map[string][]*handlerEntry),
		space:    resolv.NewSpace(screenW, screenH, 16, 16),
		screenW:  screenW,
		screenH:  screenH,
	}
}

// RegisterActionHandler subscribes a handler to one qualified action.
func (d *Dispatch) RegisterActionHandler(context, action string, fn HandlerFunc) *Handle {
	return d.register(context, action, fn, nil)
}

// RegisterActionHandlerInRegion subscribes a handler to one qualified
// action, scoped to a screen rectangle. Location-valued action data is
// delivered only when its position lies inside the rectangle; all other
// action data is delivered unconditionally.
func (d *Dispatch) RegisterActionHandlerInRegion(context, action string, x, y, w, h float64, fn HandlerFunc) *Handle {
	region := resolv.NewObject(x, y, w, h)
	return d.register(context, action, fn, region)
}

func (d *Dispatch) register(context, action string, fn HandlerFunc, region *resolv.Object) *Handle {
	d.nextID++
	handle := &Handle{id: d.nextID}
	entry := &handlerEntry{handle: handle, fn: fn, region: region}
	if region != nil {
		entry.tag = fmt.Sprintf("region-%d", handle.id)
		region.AddTags(entry.tag)
		d.space.Add(region)
	}
	key := context + "." + action
	d.handlers[key] = append(d.handlers[key], entry)
	return handle
}

// UnregisterActionHandler closes the handle. Equivalent to handle.Close();
// the entry is removed during the next dispatch that visits it.
func (d *Dispatch) UnregisterActionHandler(handle *Handle) {
	if handle != nil {
		handle.Close()
	}
}

// DispatchAction delivers one triggered action to its current subscribers
// and reports whether any of them handled it. Closed handles encountered
// during the pass are pruned.
func (d *Dispatch) DispatchAction(def ActionDefinition, data ActionData) bool {
	key := def.QualifiedName()
	entries, ok := d.handlers[key]
	if !ok {
		return false
	}

	handled := false
	live := entries[:0]
	for _, e := range entries {
		if e.handle.closed {
			if e.region != nil {
				d.space.Remove(e.region)
			}
			continue
		}
		live = append(live, e)
		if e.region != nil && def.Attributes.StateIsLocation() && !d.regionContains(e, data) {
			continue
		}
		if e.fn(def, data) {
			handled = true
		}
	}
	if len(live) == 0 {
		delete(d.handlers, key)
	} else {
		d.handlers[key] = live
	}
	return handled
}

// regionContains probes whether the location payload falls inside the
// entry's screen region.
func (d *Dispatch) regionContains(e *handlerEntry, data ActionData) bool {
	px := data.Axes[0] * float64(d.screenW)
	py := data.Axes[1] * float64(d.screenH)

	probe := resolv.NewObject(px, py, 1, 1)
	d.space.Add(probe)
	defer d.space.Remove(probe)
	return probe.Check(0, 0, e.tag) != nil
}

// HandlerCount returns the number of live handlers for a qualified action
// name. Closed-but-unpruned handles are not counted.
func (d *Dispatch) HandlerCount(context, action string) int {
	n := 0
	for _, e := range d.handlers[context+"."+action] {
		if !e.handle.closed {
			n++
		}
	}
	return n
}
