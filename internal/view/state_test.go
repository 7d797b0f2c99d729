package view

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	s := InitialState()
	assert.Equal(t, State{Tab: TabApiaries}, s)

	s, err := Transition(s, SelectTab(TabHarvest))
	require.NoError(t, err)
	assert.Equal(t, TabHarvest, s.Tab)

	s, err = Transition(s, OpenCreateDialog())
	require.NoError(t, err)
	assert.True(t, s.CreateDialogOpen)
	assert.Equal(t, TabHarvest, s.Tab, "opening the dialog keeps the tab")

	s, err = Transition(s, SubmitCreateDialog())
	require.NoError(t, err)
	assert.False(t, s.CreateDialogOpen)

	s, _ = Transition(s, OpenCreateDialog())
	s, err = Transition(s, CloseCreateDialog())
	require.NoError(t, err)
	assert.Equal(t, State{Tab: TabHarvest}, s)
}

func TestTransitionErrorsLeaveStateUnchanged(t *testing.T) {
	start := State{Tab: TabHives, CreateDialogOpen: true}

	got, err := Transition(start, SelectTab("weather"))
	require.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, start, got)

	got, err = Transition(start, Event{Kind: 42})
	require.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, start, got)
}

func TestTransitionIsIdempotent(t *testing.T) {
	for _, s := range ReachableStates() {
		for _, e := range Events() {
			once, err := Transition(s, e)
			require.NoError(t, err)
			twice, err := Transition(once, e)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "%s from %+v", e.Kind, s)
		}
	}
}

func TestReachableStates(t *testing.T) {
	states := ReachableStates()
	require.Len(t, states, len(Tabs())*2)
	assert.Equal(t, InitialState(), states[0])

	seen := map[State]bool{}
	for _, s := range states {
		assert.True(t, s.Tab.IsValid())
		assert.False(t, seen[s], "duplicate state %+v", s)
		seen[s] = true
	}
	for _, tab := range Tabs() {
		assert.True(t, seen[State{Tab: tab}])
		assert.True(t, seen[State{Tab: tab, CreateDialogOpen: true}])
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs() {
		got, err := ParseTab(string(tab))
		require.NoError(t, err)
		assert.Equal(t, tab, got)
	}

	for _, s := range []string{"", "Hives", "HIVES", " hives", "hives "} {
		_, err := ParseTab(s)
		assert.ErrorIs(t, err, ErrUnknownTab, "input %q", s)
	}
}

func TestStateQueryRoundTrip(t *testing.T) {
	for _, s := range ReachableStates() {
		assert.Equal(t, s, StateFromQuery(s.Query()))
	}
}

func TestStateFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  State
	}{
		{"empty", "", InitialState()},
		{"tab only", "tab=calendar", State{Tab: TabCalendar}},
		{"dialog open", "tab=hives&dialog=open", State{Tab: TabHives, CreateDialogOpen: true}},
		{"dialog case", "dialog=OPEN", State{Tab: TabApiaries, CreateDialogOpen: true}},
		{"unknown tab", "tab=weather", InitialState()},
		{"tab is case sensitive", "tab=HIVES", InitialState()},
		{"unknown dialog value", "dialog=yes", InitialState()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, StateFromQuery(q))
		})
	}
}

func TestStateHref(t *testing.T) {
	assert.Equal(t, "/?tab=apiaries", InitialState().Href())
	assert.Equal(t, "/?dialog=open&tab=hives", State{Tab: TabHives, CreateDialogOpen: true}.Href())
}

func TestPartialHrefs(t *testing.T) {
	assert.Equal(t, "/ui/tabs/apiaries", InitialState().TabPartialHref())
	assert.Equal(t, "/ui/tabs/harvest?dialog=open", State{Tab: TabHarvest, CreateDialogOpen: true}.TabPartialHref())
	assert.Equal(t, "/ui/apiaries/new?tab=calendar", State{Tab: TabCalendar}.DialogPartialHref())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "select_tab", EventSelectTab.String())
	assert.Equal(t, "submit_create_dialog", EventSubmitCreateDialog.String())
	assert.Equal(t, "event(9)", EventKind(9).String())
}
