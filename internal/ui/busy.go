package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// busyScreen is the labeled placeholder shown while a network call is in
// flight. It renders no controls.
type busyScreen struct {
	label   string
	spinner spinner.Model
}

func newBusyScreen(label string) *busyScreen {
	return &busyScreen{
		label:   label,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (b *busyScreen) start() tea.Cmd {
	return b.spinner.Tick
}

func (b *busyScreen) update(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return cmd
}

func renderBusy(b *busyScreen, st Styles, hint string) string {
	sp := b.spinner
	sp.Style = st.AccentText
	out := sp.View() + " " + st.Text.Render(b.label)
	if hint != "" {
		out += "\n\n" + st.MutedText.Render(hint)
	}
	return out
}
