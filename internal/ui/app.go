package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/users"
)

// RecordStore is the data-access layer the controller drives.
// It is implemented by *store.Store.
type RecordStore interface {
	List(ctx context.Context) ([]*users.Record, error)
	Cached() ([]*users.Record, bool)
	Update(ctx context.Context, id int64, rec *users.Record) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     RecordStore
	BaseURL   string // shown in the header
	ThemeName string
	Compact   bool
	PrefsPath string // empty disables saving preferences
}

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the view-state controller. Exactly one of list, edit and busy is
// non-nil, matching state.Kind.
type Model struct {
	ctx       context.Context
	store     RecordStore
	baseURL   string
	prefsPath string
	keys      keyMap
	help      help.Model

	theme   Theme
	compact bool
	width   int
	height  int

	state ViewState
	list  *listScreen
	edit  *editScreen
	busy  *busyScreen

	// parked holds the list screen while a delete is in flight; it is not mounted.
	parked  *listScreen
	loadErr error
}

// New creates the controller in Busy("Loading users").
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		baseURL:   opts.BaseURL,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		compact:   opts.Compact,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.mountBusy(labelLoading)
	return m
}

// Mounted returns the screen currently shown.
func (m Model) Mounted() ViewState {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return m.busy.start()
	}
	return tea.Batch(m.busy.start(), loadUsersCmd(m.ctx, m.store))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScreens()
		return m, nil

	case spinner.TickMsg:
		if m.busy == nil {
			return m, nil
		}
		return m, m.busy.update(msg)

	case usersLoadedMsg:
		if m.state.Kind != Busy || m.parked != nil {
			return m, nil
		}
		m.loadErr = nil
		m.mountList(msg.records)
		return m, nil

	case usersLoadFailedMsg:
		// No fallback screen: the loading placeholder stays up.
		log.Printf("list users failed: %v", msg.err)
		m.loadErr = msg.err
		return m, nil

	case editRequestedMsg:
		if m.state.Kind != Listing || msg.record == nil {
			return m, nil
		}
		m.mountEdit(msg.record)
		return m, nil

	case deleteRequestedMsg:
		if m.state.Kind != Listing {
			return m, nil
		}
		list := m.list
		cmd := m.mountBusy(labelDeleting)
		m.parked = list
		return m, tea.Batch(cmd, deleteUserCmd(m.ctx, m.store, msg.id))

	case deleteDoneMsg:
		if m.state.Kind != Busy || m.parked == nil {
			return m, nil
		}
		if !msg.ok {
			log.Printf("delete user %d failed: %v", msg.id, msg.err)
		}
		m.remountParked(msg.id, msg.ok)
		return m, nil

	case returnRequestedMsg:
		if m.state.Kind != Editing {
			return m, nil
		}
		if !msg.dirty {
			return m, m.showUsers()
		}
		cmd := m.mountBusy(labelUpdating)
		return m, tea.Batch(cmd, updateUserCmd(m.ctx, m.store, msg.record))

	case updateDoneMsg:
		if m.state.Kind != Busy || m.parked != nil {
			return m, nil
		}
		if !msg.ok {
			// Local edits stay in the cache even though the server rejected them.
			log.Printf("update user %d failed: %v", msg.id, msg.err)
		}
		return m, m.showUsers()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Kind {
	case Listing:
		if !m.list.confirm {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.CycleTheme):
				m.theme = GetTheme(NextTheme(m.theme.Name))
				m.savePrefs()
				return m, nil
			case key.Matches(msg, m.keys.ToggleCompact):
				m.compact = !m.compact
				m.list.setCompact(m.compact)
				m.savePrefs()
				return m, nil
			}
		}
		return m, m.list.update(msg)
	case Editing:
		return m, m.edit.update(msg)
	}
	// Busy: nothing is reachable until the call settles.
	return m, nil
}

// showUsers renders the list from the cache, or loads it first.
func (m *Model) showUsers() tea.Cmd {
	if m.store == nil {
		return m.mountBusy(labelLoading)
	}
	if records, ok := m.store.Cached(); ok {
		m.mountList(records)
		return nil
	}
	return tea.Batch(m.mountBusy(labelLoading), loadUsersCmd(m.ctx, m.store))
}

func (m *Model) unmountAll() {
	m.list = nil
	m.edit = nil
	m.busy = nil
	m.parked = nil
}

func (m *Model) mountList(records []*users.Record) {
	m.unmountAll()
	m.state = listingState()
	m.list = newListScreen(records, listHandlers{
		onEdit:   func(rec *users.Record) tea.Msg { return editRequestedMsg{record: rec} },
		onDelete: func(id int64) tea.Msg { return deleteRequestedMsg{id: id} },
	}, m.keys, m.compact)
	m.resizeScreens()
}

func (m *Model) remountParked(id int64, deleted bool) {
	list := m.parked
	m.unmountAll()
	if deleted {
		list.removeRow(id)
	} else {
		list.notice = fmt.Sprintf("Could not delete user %d", id)
	}
	m.state = listingState()
	m.list = list
	m.resizeScreens()
}

func (m *Model) mountEdit(rec *users.Record) {
	m.unmountAll()
	m.state = editingState(rec)
	m.edit = newEditScreen(rec, editHandlers{
		onReturn: func(rec *users.Record, dirty bool) tea.Msg {
			return returnRequestedMsg{record: rec, dirty: dirty}
		},
	}, m.keys)
	m.resizeScreens()
}

func (m *Model) mountBusy(label string) tea.Cmd {
	m.unmountAll()
	m.state = busyState(label)
	m.busy = newBusyScreen(label)
	return m.busy.start()
}

func (m *Model) bodyHeight() int {
	// header + footer
	return max(m.height-2, 1)
}

func (m *Model) resizeScreens() {
	if m.list != nil {
		m.list.setHeight(m.bodyHeight() - 1)
	}
	if m.edit != nil {
		m.edit.setHeight(m.bodyHeight() - 1)
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Compact: m.compact}); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	st := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader(st))
	b.WriteString("\n")
	b.WriteString(m.renderBody(st))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(st))
	return b.String()
}

func (m Model) renderHeader(st Styles) string {
	text := "roster"
	if m.baseURL != "" {
		text += "  " + m.baseURL
	}
	text = ansi.Truncate(text, max(m.width-2, 1), "…")
	return st.Header.Width(m.width).Render(text)
}

func (m Model) renderBody(st Styles) string {
	switch m.state.Kind {
	case Listing:
		return renderList(m.list, st, m.width, m.bodyHeight())
	case Editing:
		return renderEdit(m.edit, st, m.width, m.bodyHeight())
	default:
		hint := ""
		if m.loadErr != nil {
			hint = describeError(m.loadErr) + "  (ctrl+c to quit)"
		}
		return renderBusy(m.busy, st, hint)
	}
}

func (m Model) renderFooter(st Styles) string {
	switch m.state.Kind {
	case Listing:
		if m.list.confirm {
			prompt := "Delete this user?"
			if row := m.list.selected(); row != nil {
				prompt = fmt.Sprintf("Delete user %d?", row.id)
			}
			return st.Footer.Render(st.DangerText.Render(prompt) + "  " + m.help.ShortHelpView(m.keys.confirmHelp()))
		}
		out := m.help.ShortHelpView(m.keys.listHelp())
		if m.list.notice != "" {
			out = st.WarningText.Render(m.list.notice) + "  " + out
		}
		return st.Footer.Render(out)
	case Editing:
		return st.Footer.Render(m.help.ShortHelpView(m.keys.editHelp()))
	}
	return ""
}

func describeError(err error) string {
	var ne *users.NetworkError
	if errors.As(err, &ne) && ne.StatusCode != 0 {
		return fmt.Sprintf("Server returned status %d", ne.StatusCode)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "Connection refused"
	case strings.Contains(msg, "no such host"):
		return "Host not found"
	case strings.Contains(msg, "timeout"):
		return "Connection timeout"
	}
	return "Request failed: " + msg
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
