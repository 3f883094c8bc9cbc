package presenter

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/carousel"
	"github.com/tinytelemetry/marquee/internal/clock"
	"github.com/tinytelemetry/marquee/internal/monitor"
)

func newTestPresenter(t *testing.T, cfg autoplay.Config) (*Presenter, *clock.Fake, *monitor.VisibilitySwitch) {
	t.Helper()
	fc := clock.NewFake(time.Unix(0, 0))
	sw := monitor.NewVisibilitySwitch(true)
	p := New(Options{
		Config:     cfg,
		Clock:      fc,
		Visibility: sw,
		Logger:     zerolog.Nop(),
	})
	t.Cleanup(p.Close)
	return p, fc, sw
}

func TestPresenter_LoadStartsAutoplay(t *testing.T) {
	p, fc, _ := newTestPresenter(t, autoplay.DefaultConfig())
	if p.State().TimerActive {
		t.Fatal("timer active before items were loaded")
	}

	p.Load(4)
	fc.Advance(8 * time.Second)
	if got := p.State().SelectedIndex; got != 2 {
		t.Fatalf("SelectedIndex = %d, want 2", got)
	}
}

func TestPresenter_LoadSingleItemStops(t *testing.T) {
	p, fc, _ := newTestPresenter(t, autoplay.DefaultConfig())
	p.Load(4)
	p.Load(1)
	if p.State().TimerActive {
		t.Fatal("timer active with one item")
	}
	if fc.Active() != 0 {
		t.Fatalf("clock has %d timers, want 0", fc.Active())
	}
}

func TestPresenter_ManualNavigationStopsUntilReset(t *testing.T) {
	p, fc, _ := newTestPresenter(t, autoplay.DefaultConfig())
	p.Load(5)

	p.Next()
	st := p.State()
	if st.SelectedIndex != 1 || st.TimerActive {
		t.Fatalf("after Next: selected=%d active=%v, want 1 false", st.SelectedIndex, st.TimerActive)
	}
	if len(st.Reasons) != 1 || st.Reasons[0] != autoplay.ManualInteraction {
		t.Fatalf("reasons = %v, want [manual-interaction]", st.Reasons)
	}

	fc.Advance(time.Minute)
	if got := p.State().SelectedIndex; got != 1 {
		t.Fatalf("autoplay moved to %d while stopped", got)
	}

	p.ResetInteraction()
	fc.Advance(4 * time.Second)
	if got := p.State().SelectedIndex; got != 2 {
		t.Fatalf("SelectedIndex = %d after reset, want 2", got)
	}
}

func TestPresenter_NavigationWithoutStopOnInteraction(t *testing.T) {
	cfg := autoplay.DefaultConfig()
	cfg.StopOnInteraction = false
	p, fc, _ := newTestPresenter(t, cfg)
	p.Load(5)

	p.Prev()
	if got := p.State().SelectedIndex; got != 0 {
		t.Fatalf("Prev on first item of non-looping track moved to %d", got)
	}
	if err := p.Select(3); err != nil {
		t.Fatalf("Select(3): %v", err)
	}
	fc.Advance(4 * time.Second)
	if got := p.State().SelectedIndex; got != 4 {
		t.Fatalf("SelectedIndex = %d, want 4", got)
	}
}

func TestPresenter_SelectOutOfRange(t *testing.T) {
	p, fc, _ := newTestPresenter(t, autoplay.DefaultConfig())
	p.Load(2)
	if err := p.Select(7); !errors.Is(err, carousel.ErrIndexOutOfRange) {
		t.Fatalf("Select(7) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := p.Select(-1); !errors.Is(err, carousel.ErrIndexOutOfRange) {
		t.Fatalf("Select(-1) error = %v, want ErrIndexOutOfRange", err)
	}

	st := p.State()
	if !st.TimerActive {
		t.Fatal("rejected select stopped autoplay")
	}
	if len(st.Reasons) != 0 {
		t.Fatalf("reasons = %v after rejected select, want none", st.Reasons)
	}
	fc.Advance(4 * time.Second)
	if got := p.State().SelectedIndex; got != 1 {
		t.Fatalf("SelectedIndex = %d after one interval, want 1", got)
	}
}

func TestPresenter_StateReflectsSignals(t *testing.T) {
	p, _, sw := newTestPresenter(t, autoplay.DefaultConfig())
	p.Load(3)
	p.PointerEnter()
	p.FocusIn()
	sw.Set(false)

	st := p.State()
	if !st.Hovering || !st.Focused || st.Visible {
		t.Fatalf("state = %+v", st)
	}
	if len(st.Reasons) != 3 {
		t.Fatalf("reasons = %v, want hover, focus and tab-hidden", st.Reasons)
	}
	if !st.TimerActive {
		t.Fatal("hover, focus and hidden must not tear the timer down")
	}
}

func TestPresenter_SelectionNotifications(t *testing.T) {
	p, fc, _ := newTestPresenter(t, autoplay.DefaultConfig())
	var seen []int
	p.OnSelectionChange(func(i int) { seen = append(seen, i) })
	p.Load(3)
	fc.Advance(12 * time.Second)

	want := []int{1, 2, 0}
	if len(seen) != len(want) {
		t.Fatalf("selection changes = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("selection changes = %v, want %v", seen, want)
		}
	}
}

func TestPresenter_CloseCancelsTimer(t *testing.T) {
	p, fc, sw := newTestPresenter(t, autoplay.DefaultConfig())
	p.Load(3)
	p.Close()
	p.Close()

	if fc.Active() != 0 {
		t.Fatalf("clock has %d timers after Close", fc.Active())
	}
	if sw.Subscribers() != 0 {
		t.Fatalf("visibility has %d subscribers after Close", sw.Subscribers())
	}
	p.Load(5)
	p.Next()
	if fc.Active() != 0 {
		t.Fatal("closed presenter restarted its timer")
	}
}
