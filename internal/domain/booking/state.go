package booking

import "strings"

// State is a query-time classification of bookings relative to "now".
// It is distinct from the stored Status: CURRENT/PAST/FUTURE are temporal,
// WAITING/REJECTED select on status, ALL selects everything.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// StateFilter is the result of parsing a textual state argument. An
// unrecognized value is carried through as Raw rather than failing at the
// boundary, so the engine can report it uniformly before touching the store.
type StateFilter struct {
	state      State
	raw        string
	recognized bool
}

// ParseStateFilter resolves a textual state value once, at the boundary.
// Matching is case-insensitive and whitespace-tolerant; an empty value means
// ALL. Anything else yields an unrecognized filter holding the raw text.
func ParseStateFilter(raw string) StateFilter {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return StateFilter{state: StateAll, recognized: true}
	}
	switch State(normalized) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return StateFilter{state: State(normalized), recognized: true}
	}
	return StateFilter{raw: raw}
}

// KnownState wraps a known State in a filter, for callers inside the process
// that never deal with raw text.
func KnownState(s State) StateFilter {
	return StateFilter{state: s, recognized: true}
}

// Recognized reports whether the filter holds a known state.
func (f StateFilter) Recognized() bool { return f.recognized }

// State returns the known state. Only meaningful when Recognized is true.
func (f StateFilter) State() State { return f.state }

// Raw returns the original unrecognized text.
func (f StateFilter) Raw() string { return f.raw }
