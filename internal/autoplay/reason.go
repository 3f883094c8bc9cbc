package autoplay

import "strings"

// SuspendReason identifies one cause that blocks automatic advancement.
// Each monitor owns exactly one reason and only toggles its own membership.
type SuspendReason uint8

const (
	Hover SuspendReason = 1 << iota
	Focus
	ManualInteraction
	TabHidden
)

var allReasons = []SuspendReason{Hover, Focus, ManualInteraction, TabHidden}

func (r SuspendReason) String() string {
	switch r {
	case Hover:
		return "hover"
	case Focus:
		return "focus"
	case ManualInteraction:
		return "manual-interaction"
	case TabHidden:
		return "tab-hidden"
	default:
		return "unknown"
	}
}

// MarshalText renders the reason by name in JSON payloads.
func (r SuspendReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ReasonSet is the set of currently active suspend reasons. The zero value is
// an empty set.
type ReasonSet struct {
	bits SuspendReason
}

// Add inserts r. Adding a present reason is a no-op. It reports whether the
// set changed.
func (s *ReasonSet) Add(r SuspendReason) bool {
	if s.bits&r != 0 {
		return false
	}
	s.bits |= r
	return true
}

// Remove deletes r. Removing an absent reason is a no-op. It reports whether
// the set changed.
func (s *ReasonSet) Remove(r SuspendReason) bool {
	if s.bits&r == 0 {
		return false
	}
	s.bits &^= r
	return true
}

// Has reports whether r is present.
func (s ReasonSet) Has(r SuspendReason) bool { return s.bits&r != 0 }

// IsEmpty reports whether no reason is present.
func (s ReasonSet) IsEmpty() bool { return s.bits == 0 }

// Reasons lists the present reasons in declaration order.
func (s ReasonSet) Reasons() []SuspendReason {
	out := make([]SuspendReason, 0, len(allReasons))
	for _, r := range allReasons {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s ReasonSet) String() string {
	if s.IsEmpty() {
		return "none"
	}
	names := make([]string, 0, len(allReasons))
	for _, r := range s.Reasons() {
		names = append(names, r.String())
	}
	return strings.Join(names, ",")
}
