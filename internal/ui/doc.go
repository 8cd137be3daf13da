// Package ui provides the terminal user interface for roster.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the view-state controller: it owns
// the single mounted screen and routes every event either to that screen or
// to one of its own transitions. Screens never talk to the network; they hand
// intents back to the controller through handlers injected when they are
// mounted.
//
// # Package Structure
//
//   - app.go: Model, transitions between screens, and the Run entry point
//   - list.go: the users list with its delete confirmation
//   - edit.go: the dynamic form built from a record's fields
//   - busy.go: the labeled spinner shown while a call is in flight
//   - messages.go: messages and the commands that drive the store
//   - viewstate.go: ViewKind and ViewState
//   - keys.go: key bindings and help groups
//   - theme.go: color themes and lipgloss styles
//
// # View States
//
// Exactly one state is mounted at a time:
//
//   - Busy(label): "Loading users", "Deleting user" or "Updating changes...".
//     Input other than ctrl+c is ignored until the call settles.
//   - Listing: one entry per cached user, with edit and delete actions.
//   - Editing(record): a form bound to the cached record itself.
//
// Leaving a screen unmounts it before the next one is built. The list screen
// is the one exception: while a delete is in flight it is parked, then
// remounted with the row removed (or a notice on failure).
//
// # Editing
//
// Field edits are written into the live record as they are typed, so
// returning to the list always shows the local values. Returning from a
// dirty form sends one full replacement to the server; an untouched form
// returns without any network call.
//
// # Keyboard Shortcuts
//
// List:
//
//   - j/k or arrows: move
//   - g/G: top and bottom
//   - enter/e: edit the selected user
//   - d: delete the selected user (confirm with y, cancel with n or esc)
//   - c: toggle compact rows
//   - T: cycle theme
//   - q: quit
//
// Edit:
//
//   - tab/down/enter: next field
//   - shift+tab/up: previous field
//   - esc: back to the users list
//
// ctrl+c quits from any screen.
package ui
