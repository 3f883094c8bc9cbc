package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/autoplay"
)

func TestView_LoadingBeforeFirstFetch(t *testing.T) {
	p := NewCarouselPage(CarouselOptions{Store: &fakeQuerier{}, Autoplay: autoplay.DefaultConfig(), Logger: zerolog.Nop()})
	defer p.Close()

	if out := p.View(80, 24); !strings.Contains(out, "Loading testimonials") {
		t.Fatalf("view = %q", out)
	}
}

func TestView_ShowsSelectedTestimonial(t *testing.T) {
	p := newLoadedPage(t, 3, nil)

	out := p.View(100, 30)
	for _, want := range []string{"Author A", "Great product number A", "CTO, Acme", "1/3", "playing every 4s"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	fire(p)
	if out := p.View(100, 30); !strings.Contains(out, "Author B") {
		t.Error("view did not follow autoplay")
	}
}

func TestView_StatusReflectsReasons(t *testing.T) {
	p := newLoadedPage(t, 3, nil)
	p.Update(tea.BlurMsg{})
	if s := p.statusLine(); !strings.Contains(s, "paused: tab-hidden") {
		t.Fatalf("status = %q", s)
	}

	off := newLoadedPage(t, 3, func(c *autoplay.Config) { c.Enabled = false })
	if s := off.statusLine(); !strings.Contains(s, "autoplay off") {
		t.Fatalf("status = %q", s)
	}
}

func TestView_EmptyAndError(t *testing.T) {
	p := newLoadedPage(t, 0, nil)
	if out := p.View(80, 24); !strings.Contains(out, "No testimonials yet") {
		t.Fatalf("view = %q", out)
	}

	p.Update(testimonialsLoadedMsg{err: errors.New("socket closed")})
	if out := p.View(80, 24); !strings.Contains(out, "refresh failed: socket closed") {
		t.Fatalf("view = %q", out)
	}
}

func TestLayout_DotHitTesting(t *testing.T) {
	l := layout{dotsX: 4, dotsY: 13}
	cases := []struct{ x, y, want int }{
		{4, 13, 0}, {5, 13, 0}, {6, 13, 1}, {9, 13, 2}, {10, 13, -1}, {3, 13, -1}, {4, 12, -1},
	}
	for _, c := range cases {
		if got := l.dotAt(c.x, c.y, 3); got != c.want {
			t.Errorf("dotAt(%d,%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}
