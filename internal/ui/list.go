package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/roster/internal/users"
)

// listHandlers are the controller actions a list screen can trigger.
type listHandlers struct {
	onEdit   func(rec *users.Record) tea.Msg
	onDelete func(id int64) tea.Msg
}

type listRow struct {
	id     int64
	hasID  bool
	record *users.Record
}

// listScreen is one entry per cached record plus a cursor.
type listScreen struct {
	rows     []listRow
	cursor   int
	confirm  bool // delete of rows[cursor] awaits y/n
	notice   string
	offset   int // first visible line
	height   int // visible lines for rows
	compact  bool
	handlers listHandlers
	keys     keyMap
}

func newListScreen(records []*users.Record, handlers listHandlers, keys keyMap, compact bool) *listScreen {
	rows := make([]listRow, 0, len(records))
	for _, rec := range records {
		id, ok := rec.ID()
		rows = append(rows, listRow{id: id, hasID: ok, record: rec})
	}
	return &listScreen{
		rows:     rows,
		compact:  compact,
		handlers: handlers,
		keys:     keys,
		height:   1,
	}
}

func (l *listScreen) selected() *listRow {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return nil
	}
	return &l.rows[l.cursor]
}

func (l *listScreen) rowHeight() int {
	if l.compact {
		return 1
	}
	return 3
}

func (l *listScreen) setHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
	l.ensureVisible()
}

func (l *listScreen) setCompact(compact bool) {
	l.compact = compact
	l.ensureVisible()
}

func (l *listScreen) ensureVisible() {
	top := l.cursor * l.rowHeight()
	bottom := top + l.rowHeight()
	if top < l.offset {
		l.offset = top
	}
	if bottom > l.offset+l.height {
		l.offset = bottom - l.height
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// removeRow drops the row for id without rebuilding the screen.
func (l *listScreen) removeRow(id int64) {
	kept := l.rows[:0]
	for _, row := range l.rows {
		if row.hasID && row.id == id {
			continue
		}
		kept = append(kept, row)
	}
	l.rows = kept
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

func (l *listScreen) update(msg tea.KeyMsg) tea.Cmd {
	if l.confirm {
		return l.updateConfirm(msg)
	}
	l.notice = ""

	switch {
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.rows)-1 {
			l.cursor++
		}
	case key.Matches(msg, l.keys.Top):
		l.cursor = 0
	case key.Matches(msg, l.keys.Bottom):
		if len(l.rows) > 0 {
			l.cursor = len(l.rows) - 1
		}
	case key.Matches(msg, l.keys.Edit):
		row := l.selected()
		if row == nil || l.handlers.onEdit == nil {
			return nil
		}
		rec := row.record
		return func() tea.Msg { return l.handlers.onEdit(rec) }
	case key.Matches(msg, l.keys.Delete):
		row := l.selected()
		if row == nil {
			return nil
		}
		if !row.hasID {
			l.notice = "This user has no id and cannot be deleted"
			return nil
		}
		l.confirm = true
	}
	l.ensureVisible()
	return nil
}

func (l *listScreen) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, l.keys.ConfirmYes):
		l.confirm = false
		row := l.selected()
		if row == nil || l.handlers.onDelete == nil {
			return nil
		}
		id := row.id
		return func() tea.Msg { return l.handlers.onDelete(id) }
	case key.Matches(msg, l.keys.ConfirmNo):
		l.confirm = false
	}
	return nil
}

// userLine is the headline of a list entry: [ID:1] bob (Bob).
func userLine(rec *users.Record) string {
	return fmt.Sprintf("[ID:%s] %s (%s)", rec.Text("id"), rec.Text("username"), rec.Text("name"))
}

func renderList(l *listScreen, st Styles, width, height int) string {
	title := st.Title.Render(fmt.Sprintf("Users (%d)", len(l.rows)))
	if len(l.rows) == 0 {
		return title + "\n\n" + st.MutedText.Render("No users.")
	}

	var lines []string
	for i, row := range l.rows {
		entry := []string{userLine(row.record)}
		if !l.compact {
			entry = append(entry,
				"  Email: "+row.record.Text("email"),
				"  Phone: "+row.record.Text("phone"))
		} else {
			entry[0] += "  " + row.record.Text("email")
		}
		for j, line := range entry {
			line = ansi.Truncate(line, max(width-2, 1), "…")
			switch {
			case i == l.cursor:
				line = st.Selected.Render(padRight(line, width-2))
			case j > 0:
				line = st.MutedText.Render(line)
			default:
				line = st.Text.Render(line)
			}
			lines = append(lines, line)
		}
	}

	vp := viewport.New(width, max(height-1, 1))
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(l.offset)
	return title + "\n" + vp.View()
}

func padRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
