package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/users"
)

// Messages

type usersLoadedMsg struct {
	records []*users.Record
}

type usersLoadFailedMsg struct {
	err error
}

type editRequestedMsg struct {
	record *users.Record
}

type deleteRequestedMsg struct {
	id int64
}

type deleteDoneMsg struct {
	id  int64
	ok  bool
	err error
}

type returnRequestedMsg struct {
	record *users.Record
	dirty  bool
}

type updateDoneMsg struct {
	id  int64
	ok  bool
	err error
}

// Commands

func loadUsersCmd(ctx context.Context, rs RecordStore) tea.Cmd {
	return func() tea.Msg {
		records, err := rs.List(ctx)
		if err != nil {
			return usersLoadFailedMsg{err: err}
		}
		return usersLoadedMsg{records: records}
	}
}

func deleteUserCmd(ctx context.Context, rs RecordStore, id int64) tea.Cmd {
	return func() tea.Msg {
		ok, err := rs.Delete(ctx, id)
		return deleteDoneMsg{id: id, ok: ok, err: err}
	}
}

func updateUserCmd(ctx context.Context, rs RecordStore, rec *users.Record) tea.Cmd {
	return func() tea.Msg {
		id, hasID := rec.ID()
		if !hasID {
			return updateDoneMsg{err: fmt.Errorf("user has no integer id")}
		}
		ok, err := rs.Update(ctx, id, rec)
		return updateDoneMsg{id: id, ok: ok, err: err}
	}
}
