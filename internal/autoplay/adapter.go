package autoplay

//go:generate mockgen -destination=mocks/mock_adapter.go -package=mocks github.com/tinytelemetry/marquee/internal/autoplay Adapter

// Adapter is the carousel engine that owns position and transitions.
// The scheduler only reads from it and asks it to move.
type Adapter interface {
	ItemCount() int
	SelectedIndex() int
	CanAdvance() bool
	Advance()
	JumpTo(index int)
}

// Readiness is implemented by adapters that can exist before they are live
// (items not loaded yet, or already torn down).
type Readiness interface {
	Ready() bool
}

// Snapshot is a read-only view of the adapter's position.
type Snapshot struct {
	ItemCount     int  `json:"item_count"`
	SelectedIndex int  `json:"selected_index"`
	CanAdvance    bool `json:"can_advance"`
}

// SnapshotOf reads the adapter. A nil adapter yields the zero snapshot.
func SnapshotOf(a Adapter) Snapshot {
	if a == nil {
		return Snapshot{}
	}
	return Snapshot{
		ItemCount:     a.ItemCount(),
		SelectedIndex: a.SelectedIndex(),
		CanAdvance:    a.CanAdvance(),
	}
}

func adapterLive(a Adapter) bool {
	if a == nil {
		return false
	}
	if r, ok := a.(Readiness); ok {
		return r.Ready()
	}
	return true
}
