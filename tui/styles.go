package tui

import "github.com/charmbracelet/lipgloss"

var (
	// appTitleStyle styles the application title. Rendered at call site with content.
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 0, 0, 1)

	// taglineStyle styles the account and range line under the title.
	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// hashtagStyle styles post hashtags.
	hashtagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// timestampStyle styles timestamps.
	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// contentStyle styles post content text.
	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// linkStyle styles post URLs in the detail view.
	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DC4E4"))

	// mediaStyle styles the attachment hint next to the timestamp.
	mediaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true)

	// selectedStyle highlights the currently selected post.
	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// unselectedStyle gives unselected posts a subtle greyed-out border.
	unselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// statusBarStyle styles the bottom status bar.
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// errorStyle styles error messages.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)
)
