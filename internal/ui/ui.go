package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"movitv/internal/models"
	"movitv/internal/services"
	"movitv/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	BookmarkListView
	DetailView
	ConfirmRemoveView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Synchronizer
	session      models.Session
	width        int
	height       int
	bookmarkList list.Model
	listReady    bool
	selected     *models.EnrichedBookmark
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	notification string
	notifyKind   models.NotificationKind
	err          error
	help         help.Model
	keys         keyMap
}

type refreshCompleteMsg struct {
	err error
}

type progressUpdateMsg tasks.ProgressUpdate

type removeCompleteMsg struct {
	outcome tasks.Outcome
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Synchronizer, session models.Session) *Model {
	return &Model{
		ctx:     ctx,
		view:    LoadingView,
		engine:  engine,
		session: session,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the initial bookmark refresh.
func (m *Model) Init() tea.Cmd {
	return m.startRefresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.bookmarkList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case BookmarkListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmRemoveView:
			return m.handleConfirmKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case refreshCompleteMsg:
		if m.progressChan != nil {
			m.progressChan = nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rebuildList()
		m.view = BookmarkListView
		return m, nil

	case removeCompleteMsg:
		m.notification = msg.outcome.Notification.Message
		m.notifyKind = msg.outcome.Notification.Kind
		if msg.outcome.Ok() {
			m.rebuildList()
		}
		m.view = BookmarkListView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case BookmarkListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	case ConfirmRemoveView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list is filtering, every key belongs to the filter input.
	if m.listReady && m.bookmarkList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.notification = ""
		m.view = LoadingView
		return m, m.startRefresh()
	case "esc":
		// Clearing an applied filter re-fetches rather than restoring a
		// cached snapshot, so removals made elsewhere show up.
		if m.listReady && m.bookmarkList.FilterState() == list.FilterApplied {
			m.bookmarkList.ResetFilter()
			m.view = LoadingView
			return m, m.startRefresh()
		}
		return m.updateList(msg)
	case "enter":
		if b := m.selectedBookmark(); b != nil {
			m.selected = b
			m.view = DetailView
		}
		return m, nil
	case "x":
		if b := m.selectedBookmark(); b != nil {
			m.selected = b
			m.view = ConfirmRemoveView
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BookmarkListView
		return m, nil
	case "x":
		m.view = ConfirmRemoveView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = BookmarkListView
		return m, nil
	case "y":
		return m, m.removeSelected()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.bookmarkList, cmd = m.bookmarkList.Update(msg)
	return m, cmd
}

func (m *Model) selectedBookmark() *models.EnrichedBookmark {
	if !m.listReady {
		return nil
	}
	item, ok := m.bookmarkList.SelectedItem().(bookmarkItem)
	if !ok {
		return nil
	}
	b := item.bookmark
	return &b
}

func (m *Model) rebuildList() {
	bookmarks := m.engine.Bookmarks()
	items := make([]list.Item, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = bookmarkItem{bookmark: b}
	}

	m.bookmarkList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.bookmarkList.Title = fmt.Sprintf("Bookmarks (%d)", len(bookmarks))
	m.bookmarkList.SetSize(m.width-4, m.height-8)
	m.listReady = true
}

func (m *Model) startRefresh() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		defer close(progress)
		m.err = m.engine.Refresh(m.ctx, m.session, progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return refreshCompleteMsg{err: m.err}
		}

		update, ok := <-progress
		if !ok {
			return refreshCompleteMsg{err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) removeSelected() tea.Cmd {
	selected := *m.selected
	return func() tea.Msg {
		outcome := m.engine.Remove(m.ctx, m.session, selected.BookmarkID, selected.MediaType)
		return removeCompleteMsg{outcome: outcome}
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Loading Bookmarks")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchBookmarks:
		phase = m.progress.Message
	case tasks.Enrich:
		phase = fmt.Sprintf("Resolving titles (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Connecting..."
	}

	return fmt.Sprintf("%s\n\n%s", title, phase)
}

func (m *Model) renderList() string {
	if m.engine.LoginRequired() {
		return styles.warn.Render("Please login to see your bookmarks\n\nRun: movitv auth login\n\nPress q to quit")
	}

	var banner string
	if m.notification != "" {
		style := styles.ok
		if m.notifyKind == models.NotifyError {
			style = styles.err
		}
		banner = style.Render(m.notification) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", banner, m.bookmarkList.View(), helpView)
}

func (m *Model) renderDetail() string {
	b := m.selected
	title := styles.title.Render(bookmarkItem{bookmark: *b}.Title())

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Type: %s\n", b.MediaType.Label()))
	if b.Metadata != nil {
		if year := b.Metadata.Year(); year != "" {
			body.WriteString(fmt.Sprintf("Year: %s\n", year))
		}
		if b.Metadata.VoteAverage > 0 {
			body.WriteString(fmt.Sprintf("Rating: %.1f\n", b.Metadata.VoteAverage))
		}
		if b.Metadata.PosterPath != "" {
			body.WriteString(fmt.Sprintf("Poster: %s\n", services.ImageURL(b.Metadata.PosterPath)))
		}
		if b.Metadata.Overview != "" {
			body.WriteString(fmt.Sprintf("\n%s\n", b.Metadata.Overview))
		}
	} else {
		body.WriteString(styles.warn.Render("Details unavailable for this title\n"))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, body.String(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Remove '%s' from bookmarks?", bookmarkItem{bookmark: *m.selected}.Title()))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", title, helpView)
}
