package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/users"
)

func newTestEdit(t *testing.T, raw string) (*editScreen, *users.Record, *bool) {
	t.Helper()
	rec := decodeRecords(t, "["+raw+"]")[0]
	var returnedDirty bool
	e := newEditScreen(rec, editHandlers{
		onReturn: func(_ *users.Record, dirty bool) tea.Msg {
			returnedDirty = dirty
			return nil
		},
	}, DefaultKeyMap())
	return e, rec, &returnedDirty
}

func focusLabel(t *testing.T, e *editScreen, label string) {
	t.Helper()
	for range e.fields {
		if e.focusedItem().label == label {
			return
		}
		e.moveFocus(1)
	}
	t.Fatalf("no field labelled %q", label)
}

func TestEditScreen_IDIsReadOnly(t *testing.T) {
	e, _, _ := newTestEdit(t, `{"id":7,"name":"Bob"}`)
	if e.items[0].kind != itemReadOnly || e.items[0].label != "id" {
		t.Fatalf("items[0] = %+v, want read-only id", e.items[0])
	}
	if len(e.fields) != 1 || e.focusedItem().label != "name" {
		t.Fatalf("editable fields = %d, focused %q, want only name", len(e.fields), e.focusedItem().label)
	}
}

func TestEditScreen_NestedGroupsAreEditable(t *testing.T) {
	e, rec, _ := newTestEdit(t, `{"id":1,"name":"Bob","address":{"street":"Main","geo":{"lat":"1.5"}}}`)

	var legends []string
	for _, it := range e.items {
		if it.kind == itemGroup {
			legends = append(legends, it.label)
		}
	}
	if strings.Join(legends, ",") != "ADDRESS,GEO" {
		t.Fatalf("group legends = %v, want [ADDRESS GEO]", legends)
	}

	focusLabel(t, e, "lat")
	if got := e.focusedItem().depth; got != 2 {
		t.Fatalf("lat depth = %d, want 2", got)
	}
	e.update(runes("9"))

	addr, _ := rec.Get("address")
	geo, _ := addr.(*users.Record).Get("geo")
	if got := geo.(*users.Record).Text("lat"); got != "1.59" {
		t.Fatalf("lat = %q, want 1.59", got)
	}
	if !e.dirty {
		t.Fatalf("nested edit did not mark the form dirty")
	}
}

func TestEditScreen_ArrayElementsAreFields(t *testing.T) {
	e, rec, _ := newTestEdit(t, `{"id":1,"tags":["a","b"]}`)
	focusLabel(t, e, "1")
	e.update(runes("c"))

	tags, _ := rec.Get("tags")
	got := tags.([]any)
	if len(got) != 2 || got[0] != "a" || got[1] != "bc" {
		t.Fatalf("tags = %#v, want [a bc]", got)
	}
}

func TestEditScreen_EditedNumberBecomesString(t *testing.T) {
	e, rec, _ := newTestEdit(t, `{"id":1,"age":30,"nick":null}`)
	focusLabel(t, e, "age")
	e.update(runes("1"))

	if v, _ := rec.Get("age"); v != "301" {
		t.Fatalf("age = %#v, want string 301", v)
	}
	if v, _ := rec.Get("nick"); v != nil {
		t.Fatalf("untouched null = %#v, want nil", v)
	}
}

func TestEditScreen_BackReportsDirty(t *testing.T) {
	e, _, dirty := newTestEdit(t, `{"id":1,"name":"Bob"}`)

	cmd := e.update(keyEsc)
	cmd()
	if *dirty {
		t.Fatalf("untouched form reported dirty")
	}

	e.update(runes("!"))
	cmd = e.update(keyEsc)
	cmd()
	if !*dirty {
		t.Fatalf("edited form reported clean")
	}
}

func TestEditScreen_FocusWraps(t *testing.T) {
	e, _, _ := newTestEdit(t, `{"id":1,"a":"1","b":"2"}`)
	e.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := e.focusedItem().label; got != "b" {
		t.Fatalf("focus after shift+tab = %q, want b", got)
	}
	e.update(keyTab)
	if got := e.focusedItem().label; got != "a" {
		t.Fatalf("focus after tab = %q, want a", got)
	}
}

func TestRenderEdit_ShowsModifiedMarker(t *testing.T) {
	e, _, _ := newTestEdit(t, `{"id":3,"name":"Bob"}`)
	st := GetTheme("Dracula").Styles()

	if out := renderEdit(e, st, 80, 20); strings.Contains(out, "(modified)") || !strings.Contains(out, "Modifying user id: 3") {
		t.Fatalf("clean render wrong:\n%s", out)
	}
	e.update(runes("x"))
	if out := renderEdit(e, st, 80, 20); !strings.Contains(out, "(modified)") {
		t.Fatalf("dirty render missing marker:\n%s", out)
	}
}
