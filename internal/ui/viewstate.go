package ui

import "github.com/five82/roster/internal/users"

// ViewKind names the screen that is mounted.
type ViewKind int

const (
	// Busy is a transient placeholder shown while a network call is in flight.
	Busy ViewKind = iota
	Listing
	Editing
)

func (k ViewKind) String() string {
	switch k {
	case Listing:
		return "listing"
	case Editing:
		return "editing"
	default:
		return "busy"
	}
}

// Busy labels.
const (
	labelLoading  = "Loading users"
	labelDeleting = "Deleting user"
	labelUpdating = "Updating changes..."
)

// ViewState is the single mounted screen: Listing, Editing(Record) or
// Busy(Label).
type ViewState struct {
	Kind   ViewKind
	Label  string        // Busy only
	Record *users.Record // Editing only
}

func listingState() ViewState {
	return ViewState{Kind: Listing}
}

func editingState(rec *users.Record) ViewState {
	return ViewState{Kind: Editing, Record: rec}
}

func busyState(label string) ViewState {
	return ViewState{Kind: Busy, Label: label}
}
