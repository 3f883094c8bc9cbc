package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
//
// Input (keys, mouse) goes to the active page only. Every other message is
// broadcast so background pages keep their timers and refresh loops alive.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	order := make([]string, 0, len(pages))
	for _, p := range pages {
		pageMap[p.ID()] = p
		order = append(order, p.ID())
	}
	a := &App{pages: pageMap, order: order}
	if len(order) > 0 {
		a.activePage = order[0]
	}
	return a
}

// Active returns the id of the page on screen.
func (a *App) Active() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	if !isInput(msg) {
		var cmds []tea.Cmd
		for _, id := range a.order {
			if id == a.activePage {
				continue
			}
			cmd, _ := a.pages[id].Update(msg)
			cmds = append(cmds, cmd)
		}
		cmd, nav := p.Update(msg)
		cmds = append(cmds, cmd)
		return a, a.navigate(nav, tea.Batch(cmds...))
	}

	cmd, nav := p.Update(msg)
	return a, a.navigate(nav, cmd)
}

func (a *App) navigate(nav *PageNav, cmd tea.Cmd) tea.Cmd {
	if nav == nil {
		return cmd
	}
	if _, exists := a.pages[nav.PageID]; !exists {
		return cmd
	}
	a.activePage = nav.PageID
	return tea.Batch(cmd, a.pages[a.activePage].Init())
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// Close releases every page that holds resources.
func (a *App) Close() {
	for _, id := range a.order {
		if c, ok := a.pages[id].(Closer); ok {
			c.Close()
		}
	}
}

func isInput(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return true
	}
	return false
}
