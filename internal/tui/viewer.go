package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nfarhana/kadstudi/internal/chat"
	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/session"
)

// chatDoneMsg carries the assistant's reply (or the failure) for one
// question asked about the current card.
type chatDoneMsg struct {
	question string
	reply    string
	err      error
}

type setItem struct {
	name  string
	count int
}

func (i setItem) Title() string       { return i.name }
func (i setItem) Description() string { return fmt.Sprintf("%d flashcards", i.count) }
func (i setItem) FilterValue() string { return i.name }

// ViewerModel is the review page: a dashboard listing saved sets and a
// card-by-card review view with reveal, navigation, shuffle and chat.
type ViewerModel struct {
	app       *App
	sets      deck.Sets
	setList   list.Model
	sess      session.State
	chatInput textinput.Model
	chatFocus bool
	busy      bool
	spinner   spinner.Model
	status    string
	statusSty lipgloss.Style
	width     int
	height    int
}

func NewViewerModel(app *App) ViewerModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(Teal).BorderLeftForeground(Teal)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(DimTeal).BorderLeftForeground(Teal)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Your Flashcard Sets"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	ti := textinput.New()
	ti.Placeholder = "Ask about this flashcard..."
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := ViewerModel{
		app:       app,
		sets:      deck.Sets{},
		setList:   l,
		sess:      session.NewDashboard(),
		chatInput: ti,
		spinner:   sp,
	}
	m.Refresh()
	return m
}

// Refresh reloads the store and reconciles the active review session with
// whatever is now on disk.
func (m *ViewerModel) Refresh() {
	sets, err := m.app.Store.Load()
	if err != nil {
		m.say(ErrorStyle, err.Error())
	}
	m.sets = sets

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = setItem{name: name, count: len(sets[name])}
	}
	m.setList.SetItems(items)

	if m.sess.View == session.ViewReview {
		cards, ok := sets[m.sess.SetName]
		if !ok {
			m.sess = m.sess.Back()
			m.say(WarningStyle, "The set you were reviewing no longer exists.")
			return
		}
		m.sess = m.sess.Sync(cards, m.app.Rng)
	}
}

func (m *ViewerModel) say(style lipgloss.Style, text string) {
	m.status = text
	m.statusSty = style
}

func (m *ViewerModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.setList.SetSize(width, maxInt(height-6, 4))
	m.chatInput.Width = maxInt(width-8, 20)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (m ViewerModel) Update(msg tea.Msg) (ViewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case chatDoneMsg:
		m.busy = false
		m.sess = m.sess.Append(chat.Turn{Role: chat.RoleUser, Content: msg.question})
		if msg.err != nil {
			m.sess = m.sess.Append(chat.ErrorTurn(msg.err))
		} else {
			m.sess = m.sess.Append(chat.Turn{Role: chat.RoleAssistant, Content: msg.reply})
		}
		return m, nil

	case tea.KeyMsg:
		if m.sess.View == session.ViewDashboard {
			return m.updateDashboard(msg)
		}
		return m.updateReview(msg)
	}
	return m, nil
}

func (m ViewerModel) updateDashboard(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		item, ok := m.setList.SelectedItem().(setItem)
		if !ok {
			return m, nil
		}
		m.status = ""
		m.sess = m.sess.Open(item.name, m.sets[item.name], m.app.Rng)
		if len(m.sets[item.name]) == 0 {
			m.say(WarningStyle, "This set is empty.")
		}
		return m, nil
	case "r":
		m.Refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.setList, cmd = m.setList.Update(msg)
	return m, cmd
}

func (m ViewerModel) updateReview(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	if m.chatFocus {
		switch msg.String() {
		case "esc":
			m.chatFocus = false
			m.chatInput.Blur()
			return m, nil
		case "enter":
			return m.askChat()
		}
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd
	}

	if m.busy {
		return m, nil
	}

	_, hasCard := m.sess.Current()
	switch msg.String() {
	case "esc", "b":
		m.sess = m.sess.Back()
		m.status = ""
		m.Refresh()
		return m, nil
	case " ", "enter":
		m.sess = m.sess.Reveal()
		return m, nil
	case "n", "right":
		m.sess = m.sess.Next()
		return m, nil
	case "p", "left":
		m.sess = m.sess.Prev()
		return m, nil
	case "s":
		m.sess = m.sess.Shuffle(m.app.Rng)
		return m, nil
	case "x":
		if hasCard {
			m.exportSet()
		}
		return m, nil
	case "a", "/":
		if hasCard {
			m.chatFocus = true
			m.chatInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}
	return m, nil
}

func (m ViewerModel) askChat() (ViewerModel, tea.Cmd) {
	question := strings.TrimSpace(m.chatInput.Value())
	card, ok := m.sess.Current()
	if question == "" || !ok || m.busy {
		return m, nil
	}
	m.chatInput.Reset()
	m.busy = true

	app := m.app
	transcript := m.sess.Transcript
	run := func() tea.Msg {
		reply, err := app.Companion.Ask(context.Background(), card, transcript, question)
		return chatDoneMsg{question: question, reply: reply, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m *ViewerModel) exportSet() {
	path := exportFileName(m.sess.SetName)
	if err := deck.ExportXLSX(path, m.sess.SetName, m.sess.Cards); err != nil {
		m.say(ErrorStyle, err.Error())
		return
	}
	m.say(SuccessStyle, fmt.Sprintf("Exported set to %s.", path))
}

func exportFileName(setName string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, setName)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "flashcards"
	}
	return clean + ".xlsx"
}

func (m ViewerModel) View() string {
	if m.sess.View == session.ViewDashboard {
		return m.viewDashboard()
	}
	return m.viewReview()
}

func (m ViewerModel) viewDashboard() string {
	var sb strings.Builder
	if len(m.setList.Items()) == 0 {
		sb.WriteString(TitleStyle.Render("Your Flashcard Sets"))
		sb.WriteString("\n\n")
		sb.WriteString(InfoStyle.Render("No flashcard sets yet. Generate some on the generate tab, or press r to reload."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.setList.View())
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString(m.statusSty.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(HelpStyle.Render("↑/↓: select • enter: review • r: reload"))
	return sb.String()
}

func (m ViewerModel) viewReview() string {
	var sb strings.Builder

	card, hasCard := m.sess.Current()
	total := len(m.sess.Order)

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("Reviewing: %s", m.sess.SetName)))
	if hasCard {
		sb.WriteString(InfoStyle.Render(fmt.Sprintf("  (card %d of %d)", m.sess.Cursor+1, total)))
	}
	sb.WriteString("\n\n")

	if !hasCard {
		sb.WriteString(WarningStyle.Render("This set has no flashcards."))
		sb.WriteString("\n\n")
		sb.WriteString(HelpStyle.Render("esc: back to sets"))
		return sb.String()
	}

	var face strings.Builder
	face.WriteString(TypeBadgeStyle.Render(string(card.Type)))
	face.WriteString("\n\n")
	face.WriteString(QuestionLabelStyle.Render("Q: "))
	face.WriteString(QuestionStyle.Render(card.Front))
	if m.sess.Revealed {
		face.WriteString("\n\n")
		face.WriteString(AnswerLabelStyle.Render("A:"))
		face.WriteString("\n")
		face.WriteString(m.renderMarkdown(answerMarkdown(card.Back)))
	}
	sb.WriteString(CardBoxStyle.Width(maxInt(m.width-4, 40)).Render(face.String()))
	sb.WriteString("\n")

	if len(m.sess.Transcript) > 0 || m.chatFocus || m.busy {
		sb.WriteString("\n")
		for _, turn := range m.sess.Transcript {
			if turn.Role == chat.RoleUser {
				sb.WriteString(ChatUserStyle.Render("You: "))
			} else {
				sb.WriteString(ChatAssistantStyle.Render("AI: "))
			}
			sb.WriteString(ChatAssistantStyle.Render(turn.Content))
			sb.WriteString("\n")
		}
	}

	if m.busy {
		sb.WriteString(m.spinner.View())
		sb.WriteString(SpinnerStyle.Render(" Thinking..."))
		sb.WriteString("\n")
	}

	if m.chatFocus {
		sb.WriteString(InputBoxStyle.Render(m.chatInput.View()))
		sb.WriteString("\n")
		sb.WriteString(HelpStyle.Render("enter: ask • esc: leave chat"))
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(m.statusSty.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	help := "space: show answer • n/→: next • p/←: prev • s: shuffle • a: ask AI • x: export • esc: back"
	if m.sess.Revealed {
		help = "n/→: next • p/←: prev • s: shuffle • a: ask AI • x: export • esc: back"
	}
	sb.WriteString(HelpStyle.Render(help))
	return sb.String()
}

// answerMarkdown renders list answers as bullet points, matching how they
// were authored.
func answerMarkdown(back deck.Back) string {
	if !back.IsList() {
		return back.String()
	}
	var sb strings.Builder
	for _, line := range back.Lines() {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m ViewerModel) renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(maxInt(m.width-10, 40)),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
