package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/tootspan/domain"
)

// CollectFunc runs a collection pass and returns the posts to browse.
type CollectFunc func(ctx context.Context) ([]domain.Post, error)

// PostsLoadedMsg is sent when the collection run completes successfully.
type PostsLoadedMsg struct {
	Posts []domain.Post
}

// PostsErrorMsg is sent when the collection run fails.
type PostsErrorMsg struct {
	Err error
}

// Card layout approximation used for scrolling math. Header (~4) and
// status bar (~3) are reserved, each card is 4 content lines + 2 border.
const (
	cardHeight     = 6
	reservedHeight = 7
)

// Model is the root Bubble Tea model for the post browser.
type Model struct {
	collect    CollectFunc
	acct       string
	rng        domain.DateRange
	posts      []domain.Post
	cursor     int
	startIndex int
	width      int
	height     int
	loading    bool
	showDetail bool
	err        error
	keys       KeyMap
	spinner    spinner.Model
}

// New creates a browser model with injected dependencies.
func New(acct string, rng domain.DateRange, collect CollectFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		collect: collect,
		acct:    acct,
		rng:     rng,
		loading: true,
		keys:    DefaultKeyMap(),
		spinner: s,
	}
}

// Init starts the initial collection run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(),
		m.spinner.Tick,
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case PostsLoadedMsg:
		m.posts = msg.Posts
		m.loading = false
		m.err = nil
		m.cursor = 0
		m.startIndex = 0
		m.showDetail = false
		return m, nil

	case PostsErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// q steps out of the detail view first, ctrl+c always quits.
			if m.showDetail && msg.String() != "ctrl+c" {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.showDetail = false
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if !m.loading && len(m.posts) > 0 {
				m.showDetail = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				break
			}
			m.loading = true
			return m, m.fetchPosts()

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.ensureCursorVisible()

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
			m.ensureCursorVisible()

		case key.Matches(msg, m.keys.Open):
			if p, ok := m.SelectedPost(); ok && p.URL != "" {
				return m, openURL(p.URL)
			}
		}
	}

	return m, nil
}

func (m Model) visibleCount() int {
	available := m.height - reservedHeight
	if available < 0 {
		available = 0
	}
	n := available / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if last := m.startIndex + m.visibleCount() - 1; m.cursor > last {
		m.startIndex = m.cursor - m.visibleCount() + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

// Posts returns the current posts for external access.
func (m Model) Posts() []domain.Post {
	return m.posts
}

// Loading returns whether a collection run is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.posts) == 0 {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}
