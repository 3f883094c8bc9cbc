// Package presenter assembles one carousel instance: the track, its autoplay
// scheduler and the monitors feeding the scheduler. Hosts (widget sessions,
// the terminal UI) forward raw signals to a Presenter and read State back.
//
// A Presenter must be confined to the event loop that owns its clock.
package presenter

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/carousel"
	"github.com/tinytelemetry/marquee/internal/clock"
	"github.com/tinytelemetry/marquee/internal/monitor"
)

// Options configures New.
type Options struct {
	Config     autoplay.Config
	Clock      clock.Clock
	Visibility monitor.VisibilitySource
	Observer   autoplay.Observer
	Logger     zerolog.Logger
	// Loop makes the track wrap on its own instead of autoplay jumping back.
	Loop bool
}

// State is a point-in-time view for rendering and APIs.
type State struct {
	ItemCount     int                      `json:"item_count"`
	SelectedIndex int                      `json:"selected_index"`
	CanAdvance    bool                     `json:"can_advance"`
	TimerActive   bool                     `json:"timer_active"`
	Reasons       []autoplay.SuspendReason `json:"reasons"`
	Visible       bool                     `json:"visible"`
	Hovering      bool                     `json:"hovering"`
	Focused       bool                     `json:"focused"`
}

// Presenter is one carousel with autoplay.
type Presenter struct {
	track       *carousel.Track
	scheduler   *autoplay.Scheduler
	visibility  *monitor.VisibilityMonitor
	interaction *monitor.InteractionMonitor
	closed      bool
}

// New builds a presenter with no items. The scheduler is attached right away
// and starts once Load supplies more than one item.
func New(opts Options) *Presenter {
	track := carousel.NewTrack(0, opts.Loop)
	schedOpts := []autoplay.Option{autoplay.WithLogger(opts.Logger)}
	if opts.Observer != nil {
		schedOpts = append(schedOpts, autoplay.WithObserver(opts.Observer))
	}
	sched := autoplay.NewScheduler(opts.Config, opts.Clock, schedOpts...)

	vis := monitor.NewVisibilityMonitor(opts.Visibility, sched, opts.Logger)
	sched.SetVisibility(vis)
	inter := monitor.NewInteractionMonitor(opts.Config, sched, opts.Logger)
	inter.Bind(track)

	p := &Presenter{
		track:       track,
		scheduler:   sched,
		visibility:  vis,
		interaction: inter,
	}
	vis.Start()
	sched.Attach(track)
	return p
}

// Load replaces the item count and starts autoplay if it can now run.
func (p *Presenter) Load(count int) {
	if p.closed {
		return
	}
	p.track.SetItemCount(count)
	if p.track.ItemCount() <= 1 {
		p.scheduler.Stop()
		return
	}
	p.scheduler.Start()
}

// OnSelectionChange subscribes to selection changes from any source.
func (p *Presenter) OnSelectionChange(fn func(index int)) (cancel func()) {
	return p.track.OnSelectionChange(fn)
}

func (p *Presenter) PointerEnter() { p.interaction.PointerEnter() }
func (p *Presenter) PointerLeave() { p.interaction.PointerLeave() }
func (p *Presenter) FocusIn()      { p.interaction.FocusIn() }
func (p *Presenter) FocusOut()     { p.interaction.FocusOut() }

// PointerDown forwards a raw pointer-down on the track.
func (p *Presenter) PointerDown() {
	if p.closed {
		return
	}
	p.track.PointerDown()
}

// Next is user navigation to the following item.
func (p *Presenter) Next() {
	if p.closed {
		return
	}
	p.track.PointerDown()
	p.track.Advance()
}

// Prev is user navigation to the previous item.
func (p *Presenter) Prev() {
	if p.closed {
		return
	}
	p.track.PointerDown()
	p.track.Retreat()
}

// Select is user navigation to index. An out-of-range index is rejected
// before it counts as an interaction, so autoplay keeps running.
func (p *Presenter) Select(index int) error {
	if p.closed {
		return nil
	}
	if n := p.track.ItemCount(); index < 0 || index >= n {
		return fmt.Errorf("%w: %d not in [0,%d)", carousel.ErrIndexOutOfRange, index, n)
	}
	p.track.PointerDown()
	return p.track.Select(index)
}

// ResetInteraction lets autoplay resume after user navigation stopped it.
func (p *Presenter) ResetInteraction() { p.scheduler.ResetInteraction() }

// State snapshots the presenter.
func (p *Presenter) State() State {
	snap := autoplay.SnapshotOf(p.track)
	reasons := p.scheduler.Reasons()
	if reasons == nil {
		reasons = []autoplay.SuspendReason{}
	}
	return State{
		ItemCount:     snap.ItemCount,
		SelectedIndex: snap.SelectedIndex,
		CanAdvance:    snap.CanAdvance,
		TimerActive:   p.scheduler.Active(),
		Reasons:       reasons,
		Visible:       p.visibility.Visible(),
		Hovering:      p.interaction.Hovering(),
		Focused:       p.interaction.Focused(),
	}
}

// Close tears the presenter down. The timer is cancelled before the track
// goes away so no tick can reach a closed track.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.scheduler.Close()
	p.visibility.Stop()
	p.interaction.Close()
	p.track.Close()
}
