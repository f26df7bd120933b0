package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Teal      = lipgloss.Color("#00D4AA")
	Blue      = lipgloss.Color("#306998")
	Green     = lipgloss.Color("#4CAF50")
	Amber     = lipgloss.Color("#FFD700")
	Red       = lipgloss.Color("#FF4136")
	White     = lipgloss.Color("#e0e0e0")
	LightGray = lipgloss.Color("#aaaaaa")
	MidGray   = lipgloss.Color("#3a3a4e")
	DimTeal   = lipgloss.Color("#005f49")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Teal)

	// Card faces
	QuestionLabelStyle = lipgloss.NewStyle().
				Foreground(Blue).
				Bold(true)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	AnswerLabelStyle = lipgloss.NewStyle().
				Foreground(Green).
				Bold(true)

	CardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimTeal).
			Padding(1, 2)

	TypeBadgeStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true)

	// Chat
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(White)

	// Status messages
	InfoStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Inputs
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimTeal).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(Teal).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MidGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Amber)
)
