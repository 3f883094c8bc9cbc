package autoplay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/autoplay/mocks"
	"github.com/tinytelemetry/marquee/internal/carousel"
	"github.com/tinytelemetry/marquee/internal/clock"
)

const interval = 4 * time.Second

type switchVisibility struct{ visible bool }

func (v *switchVisibility) Visible() bool { return v.visible }

type recordingObserver struct {
	outcomes []autoplay.Outcome
	started  int
	stopped  int
}

func (o *recordingObserver) TickObserved(outcome autoplay.Outcome) {
	o.outcomes = append(o.outcomes, outcome)
}
func (o *recordingObserver) TimerStarted() { o.started++ }
func (o *recordingObserver) TimerStopped() { o.stopped++ }

type fixture struct {
	clock *clock.Fake
	track *carousel.Track
	vis   *switchVisibility
	obs   *recordingObserver
	sched *autoplay.Scheduler
}

func newFixture(t *testing.T, items int, cfg autoplay.Config) *fixture {
	t.Helper()
	f := &fixture{
		clock: clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		track: carousel.NewTrack(items, false),
		vis:   &switchVisibility{visible: true},
		obs:   &recordingObserver{},
	}
	f.sched = autoplay.NewScheduler(cfg, f.clock,
		autoplay.WithVisibility(f.vis),
		autoplay.WithObserver(f.obs),
	)
	return f
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	f.sched.Start()
	f.sched.Start()

	assert.True(t, f.sched.Active())
	assert.Equal(t, 1, f.clock.Active(), "repeated Start must not create a second timer")
	assert.Equal(t, 1, f.obs.started)

	f.clock.Advance(interval)
	assert.Equal(t, 1, f.track.SelectedIndex(), "one timer means one advance per interval")
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	f.sched.Stop()
	f.sched.Stop()

	assert.False(t, f.sched.Active())
	assert.Equal(t, 0, f.clock.Active())
	assert.Equal(t, 1, f.obs.stopped)

	f.clock.Advance(time.Minute)
	assert.Equal(t, 0, f.track.SelectedIndex())
}

func TestScheduler_StartNoOpConditions(t *testing.T) {
	t.Parallel()

	disabled := autoplay.DefaultConfig()
	disabled.Enabled = false

	tests := []struct {
		name  string
		items int
		cfg   autoplay.Config
		skip  bool // do not attach an adapter
	}{
		{name: "single item", items: 1, cfg: autoplay.DefaultConfig()},
		{name: "no items yet", items: 0, cfg: autoplay.DefaultConfig()},
		{name: "disabled", items: 5, cfg: disabled},
		{name: "no adapter", items: 5, cfg: autoplay.DefaultConfig(), skip: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.items, tt.cfg)
			if !tt.skip {
				f.sched.Attach(f.track)
			}
			f.sched.Start()
			assert.False(t, f.sched.Active())
			assert.Equal(t, 0, f.clock.Active())
		})
	}
}

func TestScheduler_ConstructedBeforeAdapterIsLive(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	require.False(t, f.sched.Active())

	f.track.SetItemCount(3)
	f.sched.Start()
	assert.True(t, f.sched.Active())
}

func TestScheduler_ThreeFiresAdvanceThree(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	fires := f.clock.Advance(3 * interval)
	assert.Equal(t, 3, fires)
	assert.Equal(t, 3, f.track.SelectedIndex())
}

func TestScheduler_WrapsWhenAdapterCannotAdvance(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 3, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	f.clock.Advance(2 * interval)
	require.Equal(t, 2, f.track.SelectedIndex())

	f.clock.Advance(interval)
	assert.Equal(t, 0, f.track.SelectedIndex())
	assert.Equal(t, []autoplay.Outcome{
		autoplay.OutcomeAdvanced, autoplay.OutcomeAdvanced, autoplay.OutcomeWrapped,
	}, f.obs.outcomes)
}

func TestScheduler_HoverSuspendsThenResumesOnCadence(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	f.sched.Suspend(autoplay.Hover)
	f.clock.Advance(10 * time.Second)
	assert.Equal(t, 0, f.track.SelectedIndex(), "no advance while hovering")
	assert.True(t, f.sched.Active(), "hover gates ticks, it does not stop the timer")

	f.sched.Release(autoplay.Hover)
	assert.Equal(t, 0, f.track.SelectedIndex(), "release does not advance by itself")

	// Fires keep their original cadence: 12s, 16s, 20s.
	f.clock.Advance(2 * time.Second)
	assert.Equal(t, 1, f.track.SelectedIndex())
	f.clock.Advance(2 * interval)
	assert.Equal(t, 3, f.track.SelectedIndex())
}

func TestScheduler_TabHiddenMidCycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	f.clock.Advance(2 * time.Second)
	f.vis.visible = false
	f.sched.Suspend(autoplay.TabHidden)
	f.clock.Advance(30 * time.Second)
	assert.Equal(t, 0, f.track.SelectedIndex(), "no advance while hidden")

	// Visible again at 32s: the next scheduled fire is at 36s.
	f.vis.visible = true
	f.sched.Release(autoplay.TabHidden)
	assert.Equal(t, 0, f.track.SelectedIndex(), "becoming visible must not advance immediately")

	f.clock.Advance(interval - time.Millisecond)
	assert.Equal(t, 0, f.track.SelectedIndex())
	f.clock.Advance(time.Millisecond)
	assert.Equal(t, 1, f.track.SelectedIndex())
}

func TestScheduler_VisibilityCheckedAtFireTime(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	// Hidden without any monitor touching the reason set.
	f.vis.visible = false
	f.clock.Advance(interval)
	assert.Equal(t, 0, f.track.SelectedIndex())
	assert.Equal(t, []autoplay.Outcome{autoplay.OutcomeHidden}, f.obs.outcomes)
}

func TestScheduler_ManualInteractionIsSticky(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)

	f.sched.Interrupt()
	assert.False(t, f.sched.Active(), "manual interaction tears the timer down")
	assert.Equal(t, 0, f.clock.Active())

	f.sched.Suspend(autoplay.Hover)
	f.sched.Release(autoplay.Hover)
	f.sched.Suspend(autoplay.Focus)
	f.sched.Release(autoplay.Focus)
	f.sched.Suspend(autoplay.TabHidden)
	f.sched.Release(autoplay.TabHidden)
	f.clock.Advance(time.Minute)

	assert.False(t, f.sched.Active())
	assert.Equal(t, 0, f.track.SelectedIndex())
	assert.Equal(t, []autoplay.SuspendReason{autoplay.ManualInteraction}, f.sched.Reasons())

	f.sched.ResetInteraction()
	assert.True(t, f.sched.Active(), "explicit reset resumes autoplay")
	f.clock.Advance(interval)
	assert.Equal(t, 1, f.track.SelectedIndex())
}

func TestScheduler_ResumeWaitsForLastReason(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	f.sched.Interrupt()
	f.sched.Suspend(autoplay.Focus)

	f.sched.ResetInteraction()
	assert.False(t, f.sched.Active(), "focus still holds autoplay")

	f.sched.Release(autoplay.Focus)
	assert.True(t, f.sched.Active(), "clearing the last reason restarts the timer")
}

func TestScheduler_CloseIsFinal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	f.sched.Close()
	f.sched.Close()
	f.sched.Start()
	f.sched.Release(autoplay.Hover)

	assert.False(t, f.sched.Active())
	assert.Equal(t, 0, f.clock.Active())
}

func TestScheduler_DetachStopsTimer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, autoplay.DefaultConfig())
	f.sched.Attach(f.track)
	f.sched.Detach()

	assert.False(t, f.sched.Active())
	f.sched.Start()
	assert.False(t, f.sched.Active(), "no adapter, no timer")
}

func TestScheduler_GatingProperty(t *testing.T) {
	t.Parallel()

	reasons := []autoplay.SuspendReason{
		autoplay.Hover, autoplay.Focus, autoplay.ManualInteraction, autoplay.TabHidden,
	}
	for mask := 0; mask < 1<<len(reasons); mask++ {
		for _, visible := range []bool{true, false} {
			for _, items := range []int{0, 1, 2, 5} {
				for _, enabled := range []bool{true, false} {
					cfg := autoplay.DefaultConfig()
					cfg.Enabled = enabled
					f := newFixture(t, items, cfg)
					f.vis.visible = visible
					for i, r := range reasons {
						if mask&(1<<i) != 0 {
							f.sched.Suspend(r)
						}
					}
					f.sched.Attach(f.track)
					f.clock.Advance(interval)

					want := mask == 0 && visible && items > 1 && enabled
					got := f.track.SelectedIndex() != 0
					assert.Equal(t, want, got,
						"mask=%04b visible=%v items=%d enabled=%v", mask, visible, items, enabled)
				}
			}
		}
	}
}

func TestScheduler_TickUsesAdapterPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		canAdvance bool
		expect     func(m *mocks.MockAdapter)
	}{
		{
			name:       "advance when possible",
			canAdvance: true,
			expect:     func(m *mocks.MockAdapter) { m.EXPECT().Advance().Times(1) },
		},
		{
			name:       "wrap to first otherwise",
			canAdvance: false,
			expect:     func(m *mocks.MockAdapter) { m.EXPECT().JumpTo(0).Times(1) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			adapter := mocks.NewMockAdapter(ctrl)
			adapter.EXPECT().ItemCount().Return(4).AnyTimes()
			adapter.EXPECT().CanAdvance().Return(tt.canAdvance).AnyTimes()
			tt.expect(adapter)

			fc := clock.NewFake(time.Unix(0, 0))
			s := autoplay.NewScheduler(autoplay.DefaultConfig(), fc)
			s.Attach(adapter)
			fc.Advance(interval)
		})
	}
}

func TestScheduler_SuspendedTickNeverTouchesAdapterPosition(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	adapter := mocks.NewMockAdapter(ctrl)
	adapter.EXPECT().ItemCount().Return(4).AnyTimes()
	adapter.EXPECT().CanAdvance().Return(true).AnyTimes()
	// No Advance or JumpTo expectations: any call fails the test.

	fc := clock.NewFake(time.Unix(0, 0))
	s := autoplay.NewScheduler(autoplay.DefaultConfig(), fc)
	s.Attach(adapter)
	s.Suspend(autoplay.Focus)
	fc.Advance(5 * interval)
	assert.True(t, s.Active())
}
