// Package history groups processed messages by the configuration that
// was active when each group began.
package history

import (
	"enigma/internal/errors"
	"enigma/internal/machine"
)

// MessageRecord is one processed message.
type MessageRecord struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	DurationMs int64  `json:"durationMs"`
}

// Group is an ordered list of messages processed under one original
// configuration.
type Group struct {
	State   machine.CodeState `json:"state"`
	Records []MessageRecord   `json:"records"`
}

// Tracker maintains the mapping original CodeState -> ordered messages.
// A group is opened exactly when a configuration succeeds, never per
// processed message, and reset does not touch it.
type Tracker struct {
	groups  []Group
	index   map[string]int
	current int // index into groups, -1 when no configuration is active
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{index: make(map[string]int), current: -1}
}

// Begin opens the group for the given original state, creating it when
// the state has not been seen before. Reconfiguring with a previously
// used state continues its existing group.
func (t *Tracker) Begin(state machine.CodeState) {
	key := state.Key()
	if i, ok := t.index[key]; ok {
		t.current = i
		return
	}
	t.groups = append(t.groups, Group{State: state})
	t.index[key] = len(t.groups) - 1
	t.current = len(t.groups) - 1
}

// Record appends a message to the active group.
func (t *Tracker) Record(rec MessageRecord) error {
	if t.current < 0 {
		return errors.New(errors.StateError,
			"no configuration group is active; configure the machine first")
	}
	t.groups[t.current].Records = append(t.groups[t.current].Records, rec)
	return nil
}

// Groups returns the groups in creation order.
func (t *Tracker) Groups() []Group {
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// TotalMessages returns the number of recorded messages across groups.
func (t *Tracker) TotalMessages() int {
	n := 0
	for _, g := range t.groups {
		n += len(g.Records)
	}
	return n
}

// Clear drops all groups. Used on new spec load and terminate.
func (t *Tracker) Clear() {
	t.groups = nil
	t.index = make(map[string]int)
	t.current = -1
}

// Restore replaces the tracker contents with previously captured
// groups, e.g. from a snapshot. No group is active until Begin runs.
func (t *Tracker) Restore(groups []Group) {
	t.groups = make([]Group, len(groups))
	copy(t.groups, groups)
	t.index = make(map[string]int, len(groups))
	for i, g := range t.groups {
		t.index[g.State.Key()] = i
	}
	t.current = -1
}
