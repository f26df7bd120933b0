package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/extract"
)

const (
	fieldQuestion = iota
	fieldAnswer
	fieldSetName
	fieldCount
)

// generateDoneMsg reports the outcome of one generation run.
type generateDoneMsg struct {
	setName string
	count   int
	warn    string
	err     error
}

// GenerateModel is the upload-and-generate page: two document paths, a set
// name, and a blocking generation run with a spinner.
type GenerateModel struct {
	app     *App
	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model
	working bool
	status  []statusLine
	width   int
}

type statusLine struct {
	style lipgloss.Style
	text  string
}

func NewGenerateModel(app *App) GenerateModel {
	var m GenerateModel
	m.app = app

	labels := [fieldCount]string{
		"Path to the Question Paper (PDF or HTML)",
		"Path to the Scheme Answer (PDF or HTML)",
		"Name for this flashcard set (e.g. 'Physics Midterm Chapter 3')",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 0
		m.inputs[i] = ti
	}
	m.inputs[fieldQuestion].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	m.spinner = sp

	return m
}

func (m GenerateModel) Update(msg tea.Msg) (GenerateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.working {
			// One blocking operation at a time; the user waits it out.
			return m, nil
		}
		switch msg.String() {
		case "up", "shift+tab":
			m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
			return m, nil
		case "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "enter":
			if m.focus < fieldSetName {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.startGenerate()
		case "ctrl+g":
			return m.startGenerate()
		case "ctrl+r":
			m.reloadSets()
			return m, nil
		case "ctrl+d":
			m.clearAll()
			return m, nil
		}

	case spinner.TickMsg:
		if m.working {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case generateDoneMsg:
		m.working = false
		switch {
		case msg.err != nil:
			m.say(ErrorStyle, msg.err.Error())
		case msg.warn != "":
			m.say(WarningStyle, msg.warn)
		default:
			m.say(SuccessStyle, fmt.Sprintf("Generated %d flashcards for set '%s'!", msg.count, msg.setName))
			m.say(InfoStyle, "Switch to the viewer (tab) to review them.")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *GenerateModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *GenerateModel) say(style lipgloss.Style, text string) {
	m.status = append(m.status, statusLine{style: style, text: text})
	const keep = 6
	if len(m.status) > keep {
		m.status = m.status[len(m.status)-keep:]
	}
}

// startGenerate kicks off extraction + generation + save as one blocking
// command. If either document fails extraction, generation is skipped
// entirely rather than proceeding with one side missing.
func (m GenerateModel) startGenerate() (GenerateModel, tea.Cmd) {
	qPath := strings.TrimSpace(m.inputs[fieldQuestion].Value())
	aPath := strings.TrimSpace(m.inputs[fieldAnswer].Value())
	name := strings.TrimSpace(m.inputs[fieldSetName].Value())

	switch {
	case name == "":
		m.say(WarningStyle, "Please enter a name for the flashcard set before generating.")
		return m, nil
	case qPath == "" || aPath == "":
		m.say(WarningStyle, "Please provide both the Question Paper and Scheme Answer documents.")
		return m, nil
	}

	m.working = true
	m.say(InfoStyle, "Extracting text and generating flashcards. This might take a moment...")

	app := m.app
	run := func() tea.Msg {
		questionText, err := extract.File(qPath)
		if err != nil {
			return generateDoneMsg{err: err}
		}
		answerText, err := extract.File(aPath)
		if err != nil {
			return generateDoneMsg{err: err}
		}

		cards, err := app.Generator.Cards(context.Background(), questionText, answerText)
		if err != nil {
			return generateDoneMsg{err: err}
		}
		if len(cards) == 0 {
			return generateDoneMsg{warn: "No flashcards generated from the provided content. Try different documents."}
		}

		// Merge into whatever is already on disk; a broken store file is
		// reported but does not block saving the new set.
		sets, loadErr := app.Store.Load()
		if err := app.Store.Save(mergeSet(sets, name, cards)); err != nil {
			return generateDoneMsg{err: err}
		}
		warn := ""
		if loadErr != nil {
			warn = fmt.Sprintf("Previous store file was unreadable and has been replaced (%v).", loadErr)
		}
		return generateDoneMsg{setName: name, count: len(cards), warn: warn}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func mergeSet(sets deck.Sets, name string, cards []deck.Card) deck.Sets {
	if sets == nil {
		sets = deck.Sets{}
	}
	sets[name] = cards
	return sets
}

func (m *GenerateModel) reloadSets() {
	sets, err := m.app.Store.Load()
	if err != nil {
		m.say(ErrorStyle, err.Error())
		return
	}
	if len(sets) == 0 {
		m.say(InfoStyle, "No saved flashcard sets found.")
		return
	}
	m.say(SuccessStyle, fmt.Sprintf("Loaded %d flashcard set(s) from %s.", len(sets), m.app.Store.Path()))
}

func (m *GenerateModel) clearAll() {
	if err := m.app.Store.Clear(); err != nil {
		m.say(ErrorStyle, err.Error())
		return
	}
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(fieldQuestion)
	m.say(SuccessStyle, "All flashcards and session data cleared.")
}

func (m GenerateModel) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Flashcard Generation"))
	sb.WriteString("\n")
	sb.WriteString(InfoStyle.Render("Point at your Question Paper and Scheme Answer documents to generate smart flashcards."))
	sb.WriteString("\n\n")

	labels := [fieldCount]string{"Question Paper", "Scheme Answer", "Set Name"}
	for i := range m.inputs {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		sb.WriteString(label.Render(labels[i]))
		sb.WriteString("\n")
		sb.WriteString(InputBoxStyle.Render(m.inputs[i].View()))
		sb.WriteString("\n")
	}

	if m.working {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(SpinnerStyle.Render(" Gemini is analyzing both documents and generating flashcards..."))
		sb.WriteString("\n")
	}

	if len(m.status) > 0 {
		sb.WriteString("\n")
		for _, line := range m.status {
			sb.WriteString(line.style.Render(line.text))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("enter/↓: next field • ctrl+g: generate • ctrl+r: load saved • ctrl+d: clear all data"))
	return sb.String()
}
