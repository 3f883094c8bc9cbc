package session

import "fmt"

// Signal kinds accepted from widgets.
const (
	PointerEnter = "pointer-enter"
	PointerLeave = "pointer-leave"
	FocusIn      = "focus-in"
	FocusOut     = "focus-out"
	Visible      = "visible"
	Hidden       = "hidden"
	PointerDown  = "pointer-down"
	Select       = "select"
	Next         = "next"
	Prev         = "prev"
	Reset        = "reset"
)

// Signal is one event reported by a widget.
type Signal struct {
	Kind  string `json:"kind" binding:"required"`
	Index int    `json:"index"`
}

func (sig Signal) action() (func(*session) error, error) {
	switch sig.Kind {
	case PointerEnter:
		return func(s *session) error { s.presenter.PointerEnter(); return nil }, nil
	case PointerLeave:
		return func(s *session) error { s.presenter.PointerLeave(); return nil }, nil
	case FocusIn:
		return func(s *session) error { s.presenter.FocusIn(); return nil }, nil
	case FocusOut:
		return func(s *session) error { s.presenter.FocusOut(); return nil }, nil
	case Visible:
		return func(s *session) error { s.visible.Set(true); return nil }, nil
	case Hidden:
		return func(s *session) error { s.visible.Set(false); return nil }, nil
	case PointerDown:
		return func(s *session) error { s.presenter.PointerDown(); return nil }, nil
	case Select:
		return func(s *session) error { return s.presenter.Select(sig.Index) }, nil
	case Next:
		return func(s *session) error { s.presenter.Next(); return nil }, nil
	case Prev:
		return func(s *session) error { s.presenter.Prev(); return nil }, nil
	case Reset:
		return func(s *session) error { s.presenter.ResetInteraction(); return nil }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, sig.Kind)
	}
}
