package domain

import "fmt"

// State is the read state of a news item.
type State int

const (
	StateNew State = iota
	StateUnread
	StateUpdated
	StateRead
	StateHidden
)

var stateNames = map[State]string{
	StateNew:     "new",
	StateUnread:  "unread",
	StateUpdated: "updated",
	StateRead:    "read",
	StateHidden:  "hidden",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Visible reports whether the state belongs to the visible collection.
func (s State) Visible() bool {
	return s != StateHidden
}

// Unread reports whether the state counts as unread.
func (s State) Unread() bool {
	return s == StateNew || s == StateUnread || s == StateUpdated
}

// ParseState is the inverse of String.
func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", s)
}
