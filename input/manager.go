package input

import (
	"fmt"
	"log"
	"sort"
)

const (
	// NumPriorities is the number of distinct context priority levels.
	NumPriorities = 16
	// DefaultPriority is used when a context's config omits a priority.
	DefaultPriority = NumPriorities / 2
	// ModifierHoldThreshold is the raw value a modifier filter must reach
	// for the modifier to count as held.
	ModifierHoldThreshold = 0.7
)

// contextEntry couples a registered context with its fixed priority.
type contextEntry struct {
	ctx      *Context
	priority int
}

// comboRouting fans a combo out to context names, bucketed by priority.
// The bucket index is inverted — index 0 holds the HIGHEST numeric
// priority — so a forward walk of the array visits contexts in
// highest-priority-first order.
type comboRouting struct {
	buckets [NumPriorities][]string // sorted names per bucket
}

func (r *comboRouting) empty() bool {
	for i := range r.buckets {
		if len(r.buckets[i]) > 0 {
			return false
		}
	}
	return true
}

// queuedInput is one unmapped input event waiting to be drained.
type queuedInput struct {
	combo InputCombo
	value UnmappedInputValue
}

// Manager owns the raw input cache, the filter and combo fan-out tables,
// and the time-ordered queue of unmapped input events. Platform events go
// in through QueueInput; application ticks drain triggered actions back
// out through TriggeredActions. Single-threaded by design: both calls must
// come from the same loop.
type Manager struct {
	dec *Decoder

	contexts map[string]*contextEntry

	rawInputState    map[InputFilter]float64
	filterToCombos   map[InputFilter]map[InputCombo]struct{}
	comboRouting     map[InputCombo]*comboRouting
	inputComboStates map[InputCombo]UnmappedInputValue

	queue []queuedInput
}

// NewManager builds a manager around a decoder.
func NewManager(dec *Decoder) *Manager {
	return &Manager{
		dec:              dec,
		contexts:         make(map[string]*contextEntry),
		rawInputState:    make(map[InputFilter]float64),
		filterToCombos:   make(map[InputFilter]map[InputCombo]struct{}),
		comboRouting:     make(map[InputCombo]*comboRouting),
		inputComboStates: make(map[InputCombo]UnmappedInputValue),
	}
}

// Decoder returns the manager's decoder.
func (m *Manager) Decoder() *Decoder { return m.dec }

// RegisterActionContext creates and registers a named context at the given
// priority (0 is lowest, NumPriorities-1 highest). Duplicate names are a
// configuration error.
func (m *Manager) RegisterActionContext(name string, priority int) (*Context, error) {
	if _, ok := m.contexts[name]; ok {
		return nil, fmt.Errorf("action context %q already registered", name)
	}
	if priority < 0 {
		priority = 0
	}
	if priority >= NumPriorities {
		priority = NumPriorities - 1
	}
	ctx := newContext(name, m)
	m.contexts[name] = &contextEntry{ctx: ctx, priority: priority}
	return ctx, nil
}

// UnregisterActionContext tears a context down: all of its input binds are
// released first so nothing in the shared tables keeps referencing it.
func (m *Manager) UnregisterActionContext(name string) error {
	entry, ok := m.contexts[name]
	if !ok {
		return fmt.Errorf("action context %q not registered", name)
	}
	entry.ctx.UnregisterInputBinds()
	delete(m.contexts, name)
	return nil
}

// ActionContext returns a registered context by name.
func (m *Manager) ActionContext(name string) (*Context, bool) {
	entry, ok := m.contexts[name]
	if !ok {
		return nil, false
	}
	return entry.ctx, true
}

// ContextNames returns the registered context names, sorted.
func (m *Manager) ContextNames() []string {
	names := make([]string, 0, len(m.contexts))
	for name := range m.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QueueInput ingests one platform event: the raw value of every tracked
// filter the event's control carries is recomputed, every combo attached
// to a changed filter is re-resolved, and combos whose trigger condition
// qualifies are pushed onto the unmapped input queue. Events the decoder
// does not recognize are discarded silently.
func (m *Manager) QueueInput(ev Event) {
	desc := m.dec.Describe(ev)
	if !desc.Valid() {
		return
	}
	attrs, ok := m.dec.Attributes(desc)
	if !ok {
		log.Printf("Warning: no attributes for control %s, event ignored", desc)
		return
	}

	var dirty []InputFilter
	for _, f := range derivableFilters(desc, attrs) {
		old, tracked := m.rawInputState[f]
		if !tracked {
			continue
		}
		v, err := m.dec.Extract(f, ev)
		if err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		// Change filters carry transient deltas; they are always "changed".
		if v != old || f.Axis.Change() {
			m.rawInputState[f] = v
			dirty = append(dirty, f)
		}
	}

	for _, combo := range m.affectedCombos(dirty) {
		prev := m.inputComboStates[combo]
		snap := m.resolveCombo(combo, ev.When())
		if triggerQualifies(combo, prev, snap) {
			m.queue = append(m.queue, queuedInput{combo: combo, value: snap})
		}
		m.inputComboStates[combo] = snap
	}
}

// affectedCombos collects the distinct combos attached to the dirty
// filters, in a deterministic order.
func (m *Manager) affectedCombos(dirty []InputFilter) []InputCombo {
	seen := make(map[InputCombo]struct{})
	var combos []InputCombo
	for _, f := range dirty {
		for combo := range m.filterToCombos[f] {
			if _, dup := seen[combo]; !dup {
				seen[combo] = struct{}{}
				combos = append(combos, combo)
			}
		}
	}
	sort.Slice(combos, func(i, j int) bool { return combos[i].Compare(combos[j]) < 0 })
	return combos
}

// resolveCombo recomputes a combo's snapshot from the raw state cache.
// Unheld modifiers force-zero the result.
func (m *Manager) resolveCombo(combo InputCombo, timestamp int64) UnmappedInputValue {
	snap := UnmappedInputValue{Timestamp: timestamp}

	for _, mod := range [2]InputFilter{combo.Modifier1, combo.Modifier2} {
		if !mod.Valid() {
			continue // absent modifier is vacuously held
		}
		if m.rawInputState[mod] < ModifierHoldThreshold {
			return snap
		}
	}

	snap.AxisValue = deadzoneRemap(m.rawInputState[combo.Main], combo.Deadzone)
	if combo.Trigger.IsButton() {
		button := InputFilter{Source: combo.Main.Source, Axis: NewAxisFilter(AxisSimple, false, false)}
		snap.ButtonValue = m.rawInputState[button]
		snap.Activated = snap.ButtonValue > combo.Threshold
	} else {
		snap.Activated = snap.AxisValue > combo.Threshold
	}
	return snap
}

// triggerQualifies implements the edge/change conditions that let a combo
// snapshot enter the queue.
func triggerQualifies(combo InputCombo, prev, snap UnmappedInputValue) bool {
	switch combo.Trigger {
	case OnPress, OnButtonPress:
		return snap.Activated && !prev.Activated
	case OnRelease, OnButtonRelease:
		return !snap.Activated && prev.Activated
	case OnChange, OnButtonChange:
		// A change-type main filter is transient: while activated it always
		// counts as changed even if the magnitude repeats.
		if combo.Main.Axis.Change() && snap.Activated {
			return true
		}
		return snap.AxisValue != prev.AxisValue
	}
	return false
}

// TriggeredActions drains the unmapped input queue up to and including the
// target timestamp, maps each entry into the bound contexts in
// highest-priority-first order (respecting propagation), and returns the
// flattened triggered-action list. Entries with later timestamps stay
// queued for the next call.
func (m *Manager) TriggeredActions(targetTimeMillis int64) []TriggeredAction {
	var touched []*Context
	touchedSet := make(map[*Context]struct{})

	for len(m.queue) > 0 && m.queue[0].value.Timestamp <= targetTimeMillis {
		qi := m.queue[0]
		m.queue = m.queue[1:]

		routing, ok := m.comboRouting[qi.combo]
		if !ok {
			continue
		}

	buckets:
		for level := 0; level < NumPriorities; level++ {
			for _, name := range routing.buckets[level] {
				entry, ok := m.contexts[name]
				if !ok || !entry.ctx.Enabled() {
					continue
				}
				entry.ctx.mapToAction(qi.value, qi.combo)
				if _, seen := touchedSet[entry.ctx]; !seen {
					touchedSet[entry.ctx] = struct{}{}
					touched = append(touched, entry.ctx)
				}
				if !entry.ctx.PropagateAllowed() {
					break buckets
				}
			}
		}
	}

	var out []TriggeredAction
	for _, ctx := range touched {
		out = append(out, ctx.TriggeredActions()...)
	}
	return out
}

// QueueLen returns the number of undelivered unmapped inputs.
func (m *Manager) QueueLen() int { return len(m.queue) }

// registerInputCombo wires a combo into the shared tables on behalf of a
// context. Every filter the combo depends on (main, valid modifiers, and
// the synthetic simple filter a button trigger samples) must be supported
// by its control's attributes; a filter the control can never produce
// rejects the whole combo. Accepted filters start being tracked in the
// raw state cache.
func (m *Manager) registerInputCombo(combo InputCombo, contextName string) error {
	entry, ok := m.contexts[contextName]
	if !ok {
		return fmt.Errorf("action context %q not registered", contextName)
	}
	for _, f := range comboFilters(combo) {
		attrs, known := m.dec.Attributes(f.Source)
		if !known {
			return fmt.Errorf("combo %s: no attributes known for control %s", combo, f.Source)
		}
		if !f.SupportedBy(attrs) {
			return fmt.Errorf("combo %s: filter %s not supported by control %s", combo, f.Axis, f.Source)
		}
	}

	routing := m.comboRouting[combo]
	if routing == nil {
		routing = &comboRouting{}
		m.comboRouting[combo] = routing
	}
	idx := NumPriorities - 1 - entry.priority
	routing.buckets[idx] = insertSorted(routing.buckets[idx], contextName)

	for _, f := range comboFilters(combo) {
		set := m.filterToCombos[f]
		if set == nil {
			set = make(map[InputCombo]struct{})
			m.filterToCombos[f] = set
		}
		set[combo] = struct{}{}
		if _, tracked := m.rawInputState[f]; !tracked {
			m.rawInputState[f] = 0
		}
	}
	if _, ok := m.inputComboStates[combo]; !ok {
		m.inputComboStates[combo] = UnmappedInputValue{}
	}
	return nil
}

// unregisterInputCombo releases one context's claim on a combo. When the
// last context lets go, the combo is scrubbed from every shared table: the
// fan-out sets, the snapshot cache, the raw state cache (for filters no
// other combo still uses), and any undelivered queue entries.
func (m *Manager) unregisterInputCombo(combo InputCombo, contextName string) {
	routing, ok := m.comboRouting[combo]
	if !ok {
		return
	}
	if entry, ok := m.contexts[contextName]; ok {
		idx := NumPriorities - 1 - entry.priority
		routing.buckets[idx] = removeSorted(routing.buckets[idx], contextName)
	} else {
		for i := range routing.buckets {
			routing.buckets[i] = removeSorted(routing.buckets[i], contextName)
		}
	}
	if !routing.empty() {
		return
	}

	delete(m.comboRouting, combo)
	delete(m.inputComboStates, combo)
	for _, f := range comboFilters(combo) {
		set := m.filterToCombos[f]
		delete(set, combo)
		if len(set) == 0 {
			delete(m.filterToCombos, f)
			delete(m.rawInputState, f)
		}
	}

	if len(m.queue) > 0 {
		kept := m.queue[:0]
		for _, qi := range m.queue {
			if qi.combo != combo {
				kept = append(kept, qi)
			}
		}
		m.queue = kept
	}
}

// comboFilters lists every raw filter a combo depends on. Button triggers
// on a non-simple main control implicitly sample that control's simple
// filter, so it is registered in lockstep with the combo.
func comboFilters(combo InputCombo) []InputFilter {
	filters := []InputFilter{combo.Main}
	if combo.Modifier1.Valid() {
		filters = append(filters, combo.Modifier1)
	}
	if combo.Modifier2.Valid() {
		filters = append(filters, combo.Modifier2)
	}
	if combo.Trigger.IsButton() && combo.Main.Axis.Axis() != AxisSimple {
		filters = append(filters, InputFilter{
			Source: combo.Main.Source,
			Axis:   NewAxisFilter(AxisSimple, false, false),
		})
	}
	return filters
}

// derivableFilters enumerates every filter a control's attributes admit,
// in a fixed order: the simple filter first, then per axis the state
// filters (positive, negative) followed by the change filters.
func derivableFilters(desc InputSourceDescription, attrs Attributes) []InputFilter {
	var filters []InputFilter
	if attrs.HasButtonValue() {
		filters = append(filters, InputFilter{Source: desc, Axis: NewAxisFilter(AxisSimple, false, false)})
	}
	for axis := AxisX; int(axis) <= attrs.NumAxes(); axis++ {
		if attrs.HasStateValue() {
			filters = append(filters, InputFilter{Source: desc, Axis: NewAxisFilter(axis, false, false)})
			if attrs.HasNegative() {
				filters = append(filters, InputFilter{Source: desc, Axis: NewAxisFilter(axis, true, false)})
			}
		}
		if attrs.HasChangeValue() {
			filters = append(filters, InputFilter{Source: desc, Axis: NewAxisFilter(axis, false, true)})
			if attrs.HasNegative() {
				filters = append(filters, InputFilter{Source: desc, Axis: NewAxisFilter(axis, true, true)})
			}
		}
	}
	return filters
}

// deadzoneRemap linearly remaps [deadzone, 1] onto [0, 1], clamping values
// below the deadzone to zero.
func deadzoneRemap(raw, deadzone float64) float64 {
	if deadzone >= 1 {
		return 0
	}
	if deadzone < 0 {
		deadzone = 0
	}
	if raw <= deadzone {
		return 0
	}
	v := (raw - deadzone) / (1 - deadzone)
	if v > 1 {
		return 1
	}
	return v
}

func insertSorted(names []string, name string) []string {
	i := sort.SearchStrings(names, name)
	if i < len(names) && names[i] == name {
		return names
	}
	names = append(names, "")
	copy(names[i+1:], names[i:])
	names[i] = name
	return names
}

func removeSorted(names []string, name string) []string {
	i := sort.SearchStrings(names, name)
	if i >= len(names) || names[i] != name {
		return names
	}
	return append(names[:i], names[i+1:]...)
}
