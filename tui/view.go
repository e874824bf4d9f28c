package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const dayFormat = "02.01.2006"

// View renders the browser as a string.
func (m Model) View() string {
	var b strings.Builder

	title := appTitleStyle.Render("tootspan")
	tagline := taglineStyle.Render(fmt.Sprintf("@%s  %s to %s",
		m.acct, m.rng.Start.Format(dayFormat), m.rng.End.Format(dayFormat)))

	b.WriteString(title + "\n")
	b.WriteString(tagline + "\n\n")

	switch {
	case m.loading && len(m.posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Collecting posts...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.posts) == 0:
		b.WriteString("  No posts in this range.\n")
	case m.showDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	if m.loading && len(m.posts) > 0 {
		b.WriteString(fmt.Sprintf("  %s Refreshing...\n", m.spinner.View()))
	}

	b.WriteString(m.helpView())

	s := b.String()
	if m.width > 0 {
		s = clampLinesToWidth(s, m.width)
	}
	return s
}

func (m Model) renderList() string {
	start := m.startIndex
	if start >= len(m.posts) {
		start = len(m.posts) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + m.visibleCount()
	if end > len(m.posts) {
		end = len(m.posts)
	}

	bodyWidth := 70
	if m.width > 0 && m.width-8 < bodyWidth {
		bodyWidth = m.width - 8
	}
	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")

	var b strings.Builder
	for i := start; i < end; i++ {
		p := m.posts[i]

		header := timestampStyle.Render(p.CreatedAt.Format("Mon, Jan 02 2006 15:04"))
		if n := len(p.Media); n > 0 {
			header += mediaStyle.Render(fmt.Sprintf("  [%d media]", n))
		}

		content := p.Content
		if p.Truncated {
			content += "…"
		}
		var body strings.Builder
		for _, line := range strings.Split(truncateToTwoLines(content, bodyWidth), "\n") {
			body.WriteString(indicator + contentStyle.Render(line) + "\n")
		}

		item := header + "\n" + strings.TrimSuffix(body.String(), "\n")
		if len(p.Hashtags) > 0 {
			tags := make([]string, len(p.Hashtags))
			for j, t := range p.Hashtags {
				tags[j] = "#" + t
			}
			item += "\n" + hashtagStyle.Render(strings.Join(tags, " "))
		}

		if i == m.cursor {
			item = selectedStyle.Render(item)
		} else {
			item = unselectedStyle.Render(item)
		}
		b.WriteString(item)
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderDetail() string {
	p, ok := m.SelectedPost()
	if !ok {
		return ""
	}

	bodyWidth := 70
	if m.width > 0 && m.width-8 < bodyWidth {
		bodyWidth = m.width - 8
	}
	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")

	var b strings.Builder
	b.WriteString(timestampStyle.Render(p.CreatedAt.Format("Mon, Jan 02 2006 15:04")))
	b.WriteString("\n")

	content := p.Content
	if p.Truncated {
		content += "…"
	}
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(content)
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(indicator + contentStyle.Render(line) + "\n")
	}

	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for j, t := range p.Hashtags {
			tags[j] = "#" + t
		}
		b.WriteString(hashtagStyle.Render(strings.Join(tags, " ")) + "\n")
	}
	for _, a := range p.Media {
		b.WriteString(mediaStyle.Render(fmt.Sprintf("[%s] %s", a.Type, a.URL)) + "\n")
	}
	if p.URL != "" {
		b.WriteString(linkStyle.Render(p.URL) + "\n")
	}

	return selectedStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) helpView() string {
	var items []string
	if m.showDetail {
		items = []string{
			"j/k: move",
			"o: open",
			"esc/q: back",
		}
	} else {
		items = []string{
			"j/k: move",
			"enter: detail",
			"o: open",
			"r: refresh",
			"q: quit",
		}
	}
	if len(m.posts) > 0 {
		items = append(items, fmt.Sprintf("%d/%d", m.cursor+1, len(m.posts)))
	}
	return statusBarStyle.Render("  " + strings.Join(items, " • "))
}
