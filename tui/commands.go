package tui

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchPosts() tea.Cmd {
	collect := m.collect
	return func() tea.Msg {
		posts, err := collect(context.Background())
		if err != nil {
			return PostsErrorMsg{Err: err}
		}
		return PostsLoadedMsg{Posts: posts}
	}
}

func openURL(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if !isSafeExternalURL(rawURL) {
			return nil
		}
		_ = exec.Command("open", rawURL).Start()
		return nil
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
