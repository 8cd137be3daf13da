package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/users"
)

// editHandlers are the controller actions an edit screen can trigger.
type editHandlers struct {
	onReturn func(rec *users.Record, dirty bool) tea.Msg
}

type formItemKind int

const (
	itemGroup formItemKind = iota
	itemField
	itemReadOnly
)

// formItem is one line of the edit form.
type formItem struct {
	kind  formItemKind
	depth int
	label string // legend for groups, key for fields
	value string // read-only text
	input textinput.Model
	set   func(value string)
}

// editScreen binds a form to the live record. Field edits are written
// straight into the record; dirty records whether any field changed.
type editScreen struct {
	record   *users.Record
	items    []formItem
	fields   []int // indexes of itemField entries in items
	focus    int   // index into fields
	dirty    bool
	offset   int
	height   int
	handlers editHandlers
	keys     keyMap
}

func newEditScreen(rec *users.Record, handlers editHandlers, keys keyMap) *editScreen {
	e := &editScreen{
		record:   rec,
		handlers: handlers,
		keys:     keys,
		height:   1,
	}
	e.addRecord(rec, 0, true)
	for i, it := range e.items {
		if it.kind == itemField {
			e.fields = append(e.fields, i)
		}
	}
	if len(e.fields) > 0 {
		e.items[e.fields[0]].input.Focus()
	}
	return e
}

// addRecord appends rec's fields; nested mappings and arrays become groups
// and are recursed into until a leaf is reached.
func (e *editScreen) addRecord(rec *users.Record, depth int, top bool) {
	for _, k := range rec.Keys() {
		k := k // per-iteration copy; module targets go 1.21 (pre-1.22 loopvar semantics)
		v, _ := rec.Get(k)
		if top && k == "id" {
			e.items = append(e.items, formItem{kind: itemReadOnly, depth: depth, label: k, value: users.FormatValue(v)})
			continue
		}
		e.addValue(k, v, depth, func(s string) { rec.Set(k, s) })
	}
}

func (e *editScreen) addArray(items []any, depth int) {
	for i, v := range items {
		i := i // per-iteration copy; module targets go 1.21 (pre-1.22 loopvar semantics)
		e.addValue(strconv.Itoa(i), v, depth, func(s string) { items[i] = s })
	}
}

func (e *editScreen) addValue(k string, v any, depth int, set func(string)) {
	switch val := v.(type) {
	case *users.Record:
		e.items = append(e.items, formItem{kind: itemGroup, depth: depth, label: strings.ToUpper(k)})
		e.addRecord(val, depth+1, false)
	case []any:
		e.items = append(e.items, formItem{kind: itemGroup, depth: depth, label: strings.ToUpper(k)})
		e.addArray(val, depth+1)
	default:
		e.items = append(e.items, formItem{
			kind:  itemField,
			depth: depth,
			label: k,
			input: newFieldInput(users.FormatValue(v)),
			set:   set,
		})
	}
}

func newFieldInput(value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(value)
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (e *editScreen) focusedItem() *formItem {
	if len(e.fields) == 0 {
		return nil
	}
	return &e.items[e.fields[e.focus]]
}

func (e *editScreen) moveFocus(delta int) {
	if len(e.fields) == 0 {
		return
	}
	e.focusedItem().input.Blur()
	e.focus = (e.focus + delta + len(e.fields)) % len(e.fields)
	e.focusedItem().input.Focus()
	e.ensureVisible()
}

func (e *editScreen) setHeight(h int) {
	if h < 1 {
		h = 1
	}
	e.height = h
	e.ensureVisible()
}

func (e *editScreen) ensureVisible() {
	if len(e.fields) == 0 {
		return
	}
	line := e.fields[e.focus]
	if line < e.offset {
		e.offset = line
	}
	if line >= e.offset+e.height {
		e.offset = line - e.height + 1
	}
	// Keep a group legend in view when its first field is focused.
	if line > 0 && line-1 < e.offset && e.items[line-1].kind == itemGroup && e.height > 1 {
		e.offset = line - 1
	}
}

func (e *editScreen) update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, e.keys.Back):
		if e.handlers.onReturn == nil {
			return nil
		}
		rec, dirty := e.record, e.dirty
		return func() tea.Msg { return e.handlers.onReturn(rec, dirty) }
	case key.Matches(msg, e.keys.NextField):
		e.moveFocus(1)
		return nil
	case key.Matches(msg, e.keys.PrevField):
		e.moveFocus(-1)
		return nil
	}

	it := e.focusedItem()
	if it == nil {
		return nil
	}
	before := it.input.Value()
	var cmd tea.Cmd
	it.input, cmd = it.input.Update(msg)
	if after := it.input.Value(); after != before {
		it.set(after)
		e.dirty = true
	}
	return cmd
}

func renderEdit(e *editScreen, st Styles, width, height int) string {
	id := "?"
	if e.record != nil {
		id = e.record.Text("id")
	}
	title := st.Title.Render(fmt.Sprintf("Modifying user id: %s", id))
	if e.dirty {
		title += " " + st.WarningText.Render("(modified)")
	}

	focused := -1
	if len(e.fields) > 0 {
		focused = e.fields[e.focus]
	}

	lines := make([]string, 0, len(e.items))
	for i, it := range e.items {
		indent := strings.Repeat("  ", it.depth)
		switch it.kind {
		case itemGroup:
			lines = append(lines, indent+st.Legend.Render(it.label))
		case itemReadOnly:
			lines = append(lines, indent+"  "+st.MutedText.Render(it.label+": "+it.value))
		default:
			marker, label := "  ", st.Text.Render(it.label+": ")
			if i == focused {
				marker, label = st.AccentText.Render("› "), st.Selected.Render(it.label+":")+" "
			}
			lines = append(lines, indent+marker+label+it.input.View())
		}
	}
	if len(lines) == 0 {
		lines = append(lines, st.MutedText.Render("No editable fields."))
	}

	vp := viewport.New(width, max(height-1, 1))
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(e.offset)
	return title + "\n" + vp.View()
}
