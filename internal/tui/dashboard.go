// Package tui implements the interactive author dashboard and the
// interactive prompts used by commands. The dashboard re-derives its
// view from the session snapshot on every change, so a session that
// expires mid-run drops the user back to the login screen on its own.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/guard"
	"github.com/quillforge/quill/internal/session"
)

// recentBooks caps the dashboard book list
const recentBooks = 5

// Model is the dashboard application state
type Model struct {
	store  *session.Store
	client *api.Client

	snap    session.Snapshot
	spinner spinner.Model

	stats         *api.AuthorStats
	books         []api.Book
	notifications []api.Notification
	unread        int

	width    int
	height   int
	ready    bool
	quitting bool
	loading  bool

	lastError string

	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Card     lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2).
			MarginRight(1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
	}
}

// NewModel creates a dashboard model over the session store. The store's
// client is used for the dashboard data fetches.
func NewModel(store *session.Store, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return Model{
		store:   store,
		client:  client,
		snap:    session.Snapshot{Validating: true},
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

// Messages

type sessionMsg session.Snapshot

type statsMsg struct{ stats *api.AuthorStats }

type booksMsg struct{ books []api.Book }

type notificationsMsg struct {
	notifications []api.Notification
	unread        int
}

type dataErrMsg struct{ err error }

// Init kicks off session validation (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkAuthCmd())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Validating && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionMsg:
		m.snap = session.Snapshot(msg)
		if guard.Decide(m.snap) == guard.RenderContent {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadDataCmd())
		}
		return m, nil

	case statsMsg:
		m.stats = msg.stats
		m.loading = false
		return m, nil

	case booksMsg:
		m.books = msg.books
		return m, nil

	case notificationsMsg:
		m.notifications = msg.notifications
		m.unread = msg.unread
		return m, nil

	case dataErrMsg:
		m.lastError = msg.err.Error()
		m.loading = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "l":
		if m.snap.Authenticated() {
			return m, m.logoutCmd()
		}

	case "r":
		m.lastError = ""
		switch guard.Decide(m.snap) {
		case guard.RenderContent:
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadDataCmd())
		case guard.RedirectPending:
			return m, m.refreshProfileCmd()
		}
	}

	return m, nil
}

// Commands

func (m Model) checkAuthCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		store.CheckAuth(ctx)
		return sessionMsg(store.Snapshot())
	}
}

func (m Model) logoutCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store.Logout(ctx)
		return sessionMsg(store.Snapshot())
	}
}

func (m Model) refreshProfileCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		store.RefreshAuthorProfile(ctx)
		return sessionMsg(store.Snapshot())
	}
}

func (m Model) loadDataCmd() tea.Cmd {
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			stats, err := client.MyStats(ctx)
			if err != nil {
				return dataErrMsg{err: err}
			}
			return statsMsg{stats: stats}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			page, err := client.MyBooks(ctx, api.ListBooksParams{Limit: recentBooks})
			if err != nil {
				return dataErrMsg{err: err}
			}
			return booksMsg{books: page.Items}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			page, err := client.Notifications(ctx, api.ListNotificationsParams{Limit: recentBooks})
			if err != nil {
				return dataErrMsg{err: err}
			}
			unread, err := client.UnreadCount(ctx)
			if err != nil {
				return dataErrMsg{err: err}
			}
			return notificationsMsg{notifications: page.Items, unread: unread}
		},
	)
}

// View renders the screen the guard decision calls for (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return ""
	}

	switch guard.Decide(m.snap) {
	case guard.Loading:
		return m.renderValidating()
	case guard.RedirectLogin:
		return m.renderLoginRequired()
	case guard.RedirectApply:
		return m.renderApplyRequired()
	case guard.RedirectPending:
		return m.renderPending()
	default:
		return m.renderDashboard()
	}
}
