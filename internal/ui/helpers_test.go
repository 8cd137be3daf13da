package ui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/store"
	"github.com/five82/roster/internal/users"
)

const usersJSON = `[
	{"id":1,"name":"Bob","username":"bob","email":"bob@example.com","phone":"555-0101","address":{"city":"Paris","geo":{"lat":"1.5"}}},
	{"id":2,"name":"Amy","username":"amy","email":"amy@example.com","phone":"555-0102"}
]`

type fakeService struct {
	records   []*users.Record
	fetchErr  error
	updateErr error
	deleteErr error

	fetches int
	updates []string // bodies as sent
	deletes []int64
}

func (f *fakeService) FetchUsers(ctx context.Context) ([]*users.Record, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.records, nil
}

func (f *fakeService) UpdateUser(ctx context.Context, id int64, rec *users.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	f.updates = append(f.updates, string(body))
	return f.updateErr
}

func (f *fakeService) DeleteUser(ctx context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

var errBoom = errors.New("boom")

func decodeRecords(t *testing.T, raw string) []*users.Record {
	t.Helper()
	var records []*users.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return records
}

func newTestModel(t *testing.T, svc *fakeService) (Model, *store.Store) {
	t.Helper()
	if svc.records == nil && svc.fetchErr == nil {
		svc.records = decodeRecords(t, usersJSON)
	}
	st := store.New(svc)
	m := New(Options{Context: context.Background(), Store: st, BaseURL: "http://users.test"})
	return m, st
}

// drain runs cmd and every command it leads to, feeding the resulting
// messages back into the model. Spinner ticks are dropped so nothing sleeps.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			updated, out := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, out)
		}
	}
	return m
}

// step delivers one message and returns the model without running the
// commands it produced.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, cmd := step(t, m, msg)
	return drain(t, m, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// loaded returns a model that has finished its initial fetch.
func loaded(t *testing.T, svc *fakeService) (Model, *store.Store) {
	t.Helper()
	m, st := newTestModel(t, svc)
	m = drain(t, m, m.Init())
	if got := m.Mounted().Kind; got != Listing {
		t.Fatalf("after load Mounted().Kind = %v, want listing", got)
	}
	return m, st
}
