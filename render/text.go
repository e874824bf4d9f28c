package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6600"))
	linkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DC4E4"))
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D"))
	contentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CAD3F5"))
	hashtagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6DA95"))
	mediaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D")).Italic(true)
)

const dayFormat = "02.01.2006"

// TextFormatter renders posts for a terminal, one card per post.
type TextFormatter struct{}

// NewText creates a terminal formatter.
func NewText() *TextFormatter {
	return &TextFormatter{}
}

// Format writes the result set as styled text to w. Truncated excerpts get
// a trailing ellipsis here, the collected content never carries one.
func (f *TextFormatter) Format(w io.Writer, input Input) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tootspan"))
	b.WriteString("  ")
	b.WriteString(linkStyle.Render("@" + input.Acct))
	b.WriteString(summaryStyle.Render(fmt.Sprintf("  %s to %s", input.Range.Start.Format(dayFormat), input.Range.End.Format(dayFormat))))
	b.WriteString("\n")
	summary := fmt.Sprintf("%d posts", len(input.Posts))
	if input.Pages > 0 {
		summary = fmt.Sprintf("%d posts, %d statuses scanned over %d pages", len(input.Posts), input.Scanned, input.Pages)
	}
	b.WriteString(summaryStyle.Render(summary))
	b.WriteString("\n")

	if len(input.Posts) == 0 {
		b.WriteString("\nno posts in this range\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, p := range input.Posts {
		b.WriteString("\n")
		b.WriteString(timestampStyle.Render(p.CreatedAt.Format("2006-01-02 15:04")))
		if p.URL != "" {
			b.WriteString("  ")
			b.WriteString(linkStyle.Render(p.URL))
		}
		b.WriteString("\n")

		content := p.Content
		if p.Truncated {
			content += "…"
		}
		for _, line := range strings.Split(content, "\n") {
			b.WriteString(contentStyle.Render("┃ " + line))
			b.WriteString("\n")
		}

		if len(p.Hashtags) > 0 {
			tags := make([]string, len(p.Hashtags))
			for i, tag := range p.Hashtags {
				tags[i] = "#" + tag
			}
			b.WriteString(hashtagStyle.Render(strings.Join(tags, " ")))
			b.WriteString("\n")
		}
		for _, m := range p.Media {
			b.WriteString(mediaStyle.Render(fmt.Sprintf("[%s] %s", m.Type, m.URL)))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
