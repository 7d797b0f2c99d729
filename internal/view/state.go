// Package view holds the dashboard's UI state machine and turns a dataset
// plus that state into a render-ready page model.
package view

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	TabApiaries Tab = "apiaries"
	TabHives    Tab = "hives"
	TabHarvest  Tab = "harvest"
	TabCalendar Tab = "calendar"
)

const (
	EventSelectTab EventKind = iota + 1
	EventOpenCreateDialog
	EventCloseCreateDialog
	EventSubmitCreateDialog
)

const (
	queryTab    = "tab"
	queryDialog = "dialog"
	dialogOpen  = "open"
)

type (
	Tab       string
	EventKind int

	// State is everything the dashboard remembers between renders. It never
	// touches the dataset.
	State struct {
		Tab              Tab
		CreateDialogOpen bool
	}

	Event struct {
		Kind EventKind
		Tab  Tab // only for EventSelectTab
	}
)

var (
	ErrUnknownTab   = errors.New("unknown tab")
	ErrUnknownEvent = errors.New("unknown event")
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabApiaries, TabHives, TabHarvest, TabCalendar}
}

func (t Tab) IsValid() bool {
	switch t {
	case TabApiaries, TabHives, TabHarvest, TabCalendar:
		return true
	default:
		return false
	}
}

// ParseTab accepts only the exact tab identifiers, so each tab has one URL.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
	}
	return t, nil
}

func (k EventKind) String() string {
	switch k {
	case EventSelectTab:
		return "select_tab"
	case EventOpenCreateDialog:
		return "open_create_dialog"
	case EventCloseCreateDialog:
		return "close_create_dialog"
	case EventSubmitCreateDialog:
		return "submit_create_dialog"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

func SelectTab(t Tab) Event     { return Event{Kind: EventSelectTab, Tab: t} }
func OpenCreateDialog() Event   { return Event{Kind: EventOpenCreateDialog} }
func CloseCreateDialog() Event  { return Event{Kind: EventCloseCreateDialog} }
func SubmitCreateDialog() Event { return Event{Kind: EventSubmitCreateDialog} }

// InitialState is the state of a fresh dashboard.
func InitialState() State {
	return State{Tab: TabApiaries}
}

// Transition applies e to s. On error the returned state equals s.
func Transition(s State, e Event) (State, error) {
	switch e.Kind {
	case EventSelectTab:
		if !e.Tab.IsValid() {
			return s, fmt.Errorf("%w: %q", ErrUnknownTab, e.Tab)
		}
		s.Tab = e.Tab
	case EventOpenCreateDialog:
		s.CreateDialogOpen = true
	case EventCloseCreateDialog, EventSubmitCreateDialog:
		// Submitting has no write path; it only closes the dialog.
		s.CreateDialogOpen = false
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownEvent, e.Kind)
	}
	return s, nil
}

// Events returns every valid event.
func Events() []Event {
	events := make([]Event, 0, len(Tabs())+3)
	for _, t := range Tabs() {
		events = append(events, SelectTab(t))
	}
	return append(events, OpenCreateDialog(), CloseCreateDialog(), SubmitCreateDialog())
}

// ReachableStates walks the state graph from InitialState and returns every
// state it reaches, in discovery order.
func ReachableStates() []State {
	start := InitialState()
	seen := map[State]bool{start: true}
	queue := []State{start}
	out := []State{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range Events() {
			next, err := Transition(cur, e)
			if err != nil || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
			out = append(out, next)
		}
	}
	return out
}

// StateFromQuery reads ?tab= and ?dialog=open. Anything unrecognised keeps
// the initial value.
func StateFromQuery(q url.Values) State {
	s := InitialState()
	if t, err := ParseTab(q.Get(queryTab)); err == nil {
		s.Tab = t
	}
	s.CreateDialogOpen = strings.EqualFold(strings.TrimSpace(q.Get(queryDialog)), dialogOpen)
	return s
}

// Query encodes s so that StateFromQuery(s.Query()) == s.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set(queryTab, string(s.Tab))
	if s.CreateDialogOpen {
		q.Set(queryDialog, dialogOpen)
	}
	return q
}

// Href returns the dashboard URL for s.
func (s State) Href() string {
	return "/?" + s.Query().Encode()
}

// TabPartialHref is the fragment URL that renders s's tab panel.
func (s State) TabPartialHref() string {
	href := "/ui/tabs/" + url.PathEscape(string(s.Tab))
	if s.CreateDialogOpen {
		href += "?" + queryDialog + "=" + dialogOpen
	}
	return href
}

// DialogPartialHref is the fragment URL of the create dialog for s's tab.
func (s State) DialogPartialHref() string {
	return "/ui/apiaries/new?" + url.Values{queryTab: {string(s.Tab)}}.Encode()
}
