// Package tui is the terminal front end: a generate page that turns a pair
// of documents into a flashcard set, and a viewer page for reviewing sets
// card by card with an AI chat on the side.
package tui

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nfarhana/kadstudi/internal/chat"
	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/generate"
)

// App bundles the dependencies every page shares. The rng is injected so
// tests can drive shuffles deterministically.
type App struct {
	Store     *deck.Store
	Generator *generate.Generator
	Companion *chat.Companion
	Rng       *rand.Rand
	Version   string
}

type page int

const (
	pageGenerate page = iota
	pageViewer
)

// Model is the root bubbletea model. It owns the tab bar and delegates
// everything else to the active page.
type Model struct {
	app    *App
	page   page
	gen    GenerateModel
	viewer ViewerModel
	width  int
	height int
}

func NewModel(app *App) Model {
	return Model{
		app:    app,
		gen:    NewGenerateModel(app),
		viewer: NewViewerModel(app),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gen.width = msg.Width
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3})
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.canSwitchPage() {
				m.switchPage()
				return m, nil
			}
		}
		return m.routeToActive(msg)
	}

	// Async results and ticks go to both pages; each ignores what is not
	// addressed to it.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.gen, cmd = m.gen.Update(msg)
	cmds = append(cmds, cmd)
	m.viewer, cmd = m.viewer.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) canSwitchPage() bool {
	if m.page == pageGenerate {
		return !m.gen.working
	}
	return !m.viewer.chatFocus && !m.viewer.busy
}

func (m *Model) switchPage() {
	if m.page == pageGenerate {
		m.page = pageViewer
		// Pick up sets saved since the viewer last looked.
		m.viewer.Refresh()
		return
	}
	m.page = pageGenerate
}

func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.page == pageGenerate {
		m.gen, cmd = m.gen.Update(msg)
	} else {
		m.viewer, cmd = m.viewer.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.tabBar())
	sb.WriteString("\n\n")
	if m.page == pageGenerate {
		sb.WriteString(m.gen.View())
	} else {
		sb.WriteString(m.viewer.View())
	}
	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("tab: switch page • ctrl+c: quit"))
	return sb.String()
}

func (m Model) tabBar() string {
	genTab := TabStyle.Render("Generate Flashcards")
	viewTab := TabStyle.Render("Flashcard Viewer")
	if m.page == pageGenerate {
		genTab = ActiveTabStyle.Render("Generate Flashcards")
	} else {
		viewTab = ActiveTabStyle.Render("Flashcard Viewer")
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, genTab, viewTab)
}
