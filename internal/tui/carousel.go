package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/model"
	"github.com/tinytelemetry/marquee/internal/monitor"
	"github.com/tinytelemetry/marquee/internal/presenter"
)

// CarouselPageID identifies the testimonial carousel page.
const CarouselPageID = "carousel"

const fetchTimeout = 10 * time.Second

// TickMsg triggers a testimonial refresh.
type TickMsg time.Time

type testimonialsLoadedMsg struct {
	items []model.Testimonial
	err   error
}

// CarouselOptions configures NewCarouselPage.
type CarouselOptions struct {
	Store          model.TestimonialQuerier
	Autoplay       autoplay.Config
	Loop           bool
	UpdateInterval time.Duration
	Logger         zerolog.Logger
}

// CarouselPage shows testimonials one at a time and autoplays through them.
//
// Terminal focus reporting stands in for tab visibility, mouse motion over the
// card for hover and the tab key for keyboard focus.
type CarouselPage struct {
	store          model.TestimonialQuerier
	cfg            autoplay.Config
	updateInterval time.Duration
	log            zerolog.Logger

	clock      *teaClock
	visibility *monitor.VisibilitySwitch
	presenter  *presenter.Presenter

	keys    KeyMap
	help    help.Model
	dots    paginator.Model
	spinner spinner.Model

	items        []model.Testimonial
	loaded       bool
	lastError    string
	tickInFlight bool
	fetching     bool
	focused      bool
	hovering     bool

	width  int
	height int
}

// NewCarouselPage builds the page. Nothing runs until Init.
func NewCarouselPage(opts CarouselOptions) *CarouselPage {
	interval := opts.UpdateInterval
	if interval <= 0 {
		interval = model.DefaultUpdateInterval
	}

	c := newTeaClock()
	vis := monitor.NewVisibilitySwitch(true)

	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = authorStyle.Render("●") + " "
	dots.InactiveDot = dimStyle.Render("○") + " "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = dimStyle

	p := &CarouselPage{
		store:          opts.Store,
		cfg:            opts.Autoplay,
		updateInterval: interval,
		log:            opts.Logger,
		clock:          c,
		visibility:     vis,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dots:           dots,
		spinner:        s,
	}
	p.presenter = presenter.New(presenter.Options{
		Config:     opts.Autoplay,
		Clock:      c,
		Visibility: vis,
		Logger:     opts.Logger,
		Loop:       opts.Loop,
	})
	p.presenter.OnSelectionChange(func(i int) { p.dots.Page = i })
	return p
}

func (p *CarouselPage) ID() string { return CarouselPageID }

func (p *CarouselPage) Init() tea.Cmd {
	if p.fetching {
		return nil
	}
	p.fetching = true
	return tea.Batch(p.fetchCmd(), p.spinner.Tick)
}

// Close stops autoplay and releases the presenter.
func (p *CarouselPage) Close() { p.presenter.Close() }

// State exposes the presenter state for the status line and tests.
func (p *CarouselPage) State() presenter.State { return p.presenter.State() }

func (p *CarouselPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	cmd := p.update(msg)
	return tea.Batch(cmd, p.clock.Drain()), nil
}

func (p *CarouselPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		return nil

	case tea.FocusMsg:
		p.visibility.Set(true)
		return nil

	case tea.BlurMsg:
		p.visibility.Set(false)
		return nil

	case autoplayFireMsg:
		p.clock.Handle(msg)
		return nil

	case TickMsg:
		next := tea.Tick(p.updateInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
		if p.tickInFlight {
			return next
		}
		p.tickInFlight = true
		return tea.Batch(p.fetchCmd(), next)

	case testimonialsLoadedMsg:
		first := !p.loaded
		p.tickInFlight = false
		p.fetching = false
		p.loaded = true
		if msg.err != nil {
			p.lastError = msg.err.Error()
			p.log.Warn().Err(msg.err).Msg("tui: refresh testimonials")
		} else {
			p.lastError = ""
			p.setItems(msg.items)
		}
		if first {
			return tea.Tick(p.updateInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
		}
		return nil

	case spinner.TickMsg:
		if p.loaded {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *CarouselPage) setItems(items []model.Testimonial) {
	p.items = items
	p.dots.TotalPages = max(len(items), 1)
	p.presenter.Load(len(items))
	p.dots.Page = p.presenter.State().SelectedIndex
}

func (p *CarouselPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Quit):
		p.Close()
		return tea.Quit
	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
	case key.Matches(msg, p.keys.Focus):
		p.focused = !p.focused
		if p.focused {
			p.presenter.FocusIn()
		} else {
			p.presenter.FocusOut()
		}
	case key.Matches(msg, p.keys.Prev):
		p.presenter.Prev()
	case key.Matches(msg, p.keys.Next):
		p.presenter.Next()
	case key.Matches(msg, p.keys.First):
		p.selectIndex(0)
	case key.Matches(msg, p.keys.Last):
		p.selectIndex(len(p.items) - 1)
	case key.Matches(msg, p.keys.Jump):
		p.selectIndex(int(msg.Runes[0] - '1'))
	case key.Matches(msg, p.keys.Reset):
		p.presenter.ResetInteraction()
	case key.Matches(msg, p.keys.Refresh):
		if !p.fetching && !p.tickInFlight {
			p.tickInFlight = true
			return p.fetchCmd()
		}
	}
	return nil
}

func (p *CarouselPage) selectIndex(i int) {
	if err := p.presenter.Select(i); err != nil {
		p.log.Debug().Err(err).Int("index", i).Msg("tui: select ignored")
	}
}

func (p *CarouselPage) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := p.layout()
	over := l.inCard(msg.X, msg.Y) || l.dotAt(msg.X, msg.Y, len(p.items)) >= 0
	if over != p.hovering {
		p.hovering = over
		if over {
			p.presenter.PointerEnter()
		} else {
			p.presenter.PointerLeave()
		}
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if i := l.dotAt(msg.X, msg.Y, len(p.items)); i >= 0 {
		p.selectIndex(i)
		return nil
	}
	if !l.inCard(msg.X, msg.Y) {
		return nil
	}
	switch third := (msg.X - l.cardX) * 3 / l.cardWidth; third {
	case 0:
		p.presenter.Prev()
	case 2:
		p.presenter.Next()
	default:
		p.presenter.PointerDown()
	}
	return nil
}

func (p *CarouselPage) fetchCmd() tea.Cmd {
	store := p.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		items, err := store.ListTestimonials(ctx)
		return testimonialsLoadedMsg{items: items, err: err}
	}
}
