// Package carousel provides Track, the in-process carousel engine: it owns the
// selected position, moves it on request and notifies subscribers of
// selection changes and raw user pointer-down events.
//
// Track is not safe for concurrent use; it lives on the same event loop as
// the autoplay scheduler that drives it.
package carousel

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by Select for an index outside the track.
var ErrIndexOutOfRange = errors.New("carousel: index out of range")

// Track is a row of items with one selected position.
type Track struct {
	count    int
	selected int
	loop     bool
	closed   bool

	nextID            int
	selectionHandlers map[int]func(index int)
	pointerHandlers   map[int]func()
}

// NewTrack creates a track of count items. When loop is true the track
// advances from the last item back to the first on its own; otherwise
// CanAdvance reports false on the last item.
func NewTrack(count int, loop bool) *Track {
	return &Track{
		count:             max(count, 0),
		loop:              loop,
		selectionHandlers: make(map[int]func(int)),
		pointerHandlers:   make(map[int]func()),
	}
}

// ItemCount returns the number of items.
func (t *Track) ItemCount() int { return t.count }

// SelectedIndex returns the selected position.
func (t *Track) SelectedIndex() int { return t.selected }

// Loop reports whether the track wraps by itself.
func (t *Track) Loop() bool { return t.loop }

// Ready reports whether the track has items and has not been closed.
func (t *Track) Ready() bool { return !t.closed && t.count > 0 }

// CanAdvance reports whether Advance would move forward.
func (t *Track) CanAdvance() bool {
	if !t.Ready() || t.count <= 1 {
		return false
	}
	return t.loop || t.selected < t.count-1
}

// CanRetreat reports whether Retreat would move backward.
func (t *Track) CanRetreat() bool {
	if !t.Ready() || t.count <= 1 {
		return false
	}
	return t.loop || t.selected > 0
}

// Advance moves to the next item.
func (t *Track) Advance() {
	if !t.CanAdvance() {
		return
	}
	t.setSelected((t.selected + 1) % t.count)
}

// Retreat moves to the previous item.
func (t *Track) Retreat() {
	if !t.CanRetreat() {
		return
	}
	t.setSelected((t.selected - 1 + t.count) % t.count)
}

// JumpTo selects index. Out-of-range indexes are ignored.
func (t *Track) JumpTo(index int) {
	if !t.Ready() || index < 0 || index >= t.count {
		return
	}
	t.setSelected(index)
}

// Select is JumpTo with validation.
func (t *Track) Select(index int) error {
	if index < 0 || index >= t.count {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, t.count)
	}
	t.JumpTo(index)
	return nil
}

// SetItemCount replaces the number of items, e.g. after the backing data was
// reloaded. The selection is clamped into range.
func (t *Track) SetItemCount(n int) {
	if t.closed {
		return
	}
	t.count = max(n, 0)
	switch {
	case t.count == 0:
		t.selected = 0
	case t.selected >= t.count:
		t.setSelected(t.count - 1)
	}
}

// PointerDown reports a raw user pointer-down on the track, before any drag
// or click is resolved.
func (t *Track) PointerDown() {
	if t.closed {
		return
	}
	for _, fn := range t.pointerHandlers {
		fn()
	}
}

// OnSelectionChange subscribes fn to selection changes.
func (t *Track) OnSelectionChange(fn func(index int)) (cancel func()) {
	id := t.subscribeID()
	t.selectionHandlers[id] = fn
	return func() { delete(t.selectionHandlers, id) }
}

// OnUserPointerDown subscribes fn to raw pointer-down events.
func (t *Track) OnUserPointerDown(fn func()) (cancel func()) {
	id := t.subscribeID()
	t.pointerHandlers[id] = fn
	return func() { delete(t.pointerHandlers, id) }
}

// Close tears the track down and drops every subscriber.
func (t *Track) Close() {
	t.closed = true
	clear(t.selectionHandlers)
	clear(t.pointerHandlers)
}

func (t *Track) subscribeID() int {
	t.nextID++
	return t.nextID
}

func (t *Track) setSelected(index int) {
	if index == t.selected {
		return
	}
	t.selected = index
	for _, fn := range t.selectionHandlers {
		fn(index)
	}
}
