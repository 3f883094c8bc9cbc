package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/marquee/internal/autoplay"
	"github.com/tinytelemetry/marquee/internal/model"
)

const (
	marginLeft   = 2
	headerRows   = 2
	cardHeight   = 11
	maxCardWidth = 76
	minCardWidth = 24
)

// layout holds screen coordinates shared by View and mouse hit testing.
type layout struct {
	cardX, cardY int
	cardWidth    int
	dotsX, dotsY int
}

func (p *CarouselPage) layout() layout {
	w := maxCardWidth
	if p.width > 0 {
		w = min(max(p.width-2*marginLeft, minCardWidth), maxCardWidth)
	}
	return layout{
		cardX:     marginLeft,
		cardY:     headerRows,
		cardWidth: w,
		dotsX:     marginLeft + 2,
		dotsY:     headerRows + cardHeight,
	}
}

func (l layout) inCard(x, y int) bool {
	return x >= l.cardX && x < l.cardX+l.cardWidth && y >= l.cardY && y < l.cardY+cardHeight
}

// dotAt returns the pager dot under (x, y), or -1. Each dot is two cells wide.
func (l layout) dotAt(x, y, n int) int {
	if y != l.dotsY || x < l.dotsX {
		return -1
	}
	i := (x - l.dotsX) / 2
	if i >= n {
		return -1
	}
	return i
}

func (p *CarouselPage) View(width, height int) string {
	if width > 0 {
		p.width = width
	}
	if height > 0 {
		p.height = height
	}
	l := p.layout()
	indent := strings.Repeat(" ", marginLeft)

	var b strings.Builder
	b.WriteString(indent + titleStyle.Render("marquee") + " " + dimStyle.Render("testimonials") + "\n\n")

	if !p.loaded {
		b.WriteString(indent + p.spinner.View() + " " + dimStyle.Render("Loading testimonials...") + "\n")
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().MarginLeft(l.cardX).Render(p.renderCard(l.cardWidth)) + "\n")
	if len(p.items) > 1 {
		b.WriteString(strings.Repeat(" ", l.dotsX) + p.dots.View())
	}
	b.WriteString("\n\n")
	b.WriteString(indent + p.statusLine() + "\n")
	if p.lastError != "" {
		b.WriteString(indent + errorStyle.Render("refresh failed: "+p.lastError) + "\n")
	}
	b.WriteString(indent + p.help.View(p.keys) + "\n")
	return b.String()
}

func (p *CarouselPage) renderCard(width int) string {
	style := cardStyle.Width(width - 2).Height(cardHeight - 2).MaxHeight(cardHeight)
	if p.focused {
		style = style.BorderForeground(ColorBlue)
	}
	if len(p.items) == 0 {
		return style.Render(dimStyle.Render("No testimonials yet. Add some with `marquee seed FILE`."))
	}

	idx := min(p.State().SelectedIndex, len(p.items)-1)
	t := p.items[idx]
	body := quoteStyle.Render("“"+t.Quote+"”") + "\n\n" + byline(t)
	if t.Rating > 0 {
		body += "\n" + ratingStyle.Render(strings.Repeat("★", t.Rating)) +
			dimStyle.Render(strings.Repeat("☆", max(5-t.Rating, 0)))
	}
	return style.Render(body)
}

func byline(t model.Testimonial) string {
	line := authorStyle.Render(t.Author)
	var parts []string
	if t.Role != "" {
		parts = append(parts, t.Role)
	}
	if t.Company != "" {
		parts = append(parts, t.Company)
	}
	if len(parts) > 0 {
		line += roleStyle.Render(" · " + strings.Join(parts, ", "))
	}
	return line
}

func (p *CarouselPage) statusLine() string {
	st := p.State()
	position := dimStyle.Render(fmt.Sprintf("%d/%d", min(st.SelectedIndex+1, st.ItemCount), st.ItemCount))

	var state string
	switch {
	case !p.cfg.Enabled:
		state = dimStyle.Render("autoplay off")
	case st.ItemCount <= 1:
		state = dimStyle.Render("autoplay idle")
	case slices.Contains(st.Reasons, autoplay.ManualInteraction):
		state = pausedStyle.Render("autoplay stopped, press r to resume")
	case len(st.Reasons) > 0:
		state = pausedStyle.Render("paused: " + reasonList(st.Reasons))
	case st.TimerActive:
		state = playingStyle.Render(fmt.Sprintf("playing every %s", p.cfg.Interval()))
	default:
		state = dimStyle.Render("autoplay stopped")
	}
	return position + "  " + state
}

func reasonList(reasons []autoplay.SuspendReason) string {
	names := make([]string, len(reasons))
	for i, r := range reasons {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
