package router

import (
	"testing"

	"myhair/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stylist = &model.Profile{ID: 7, Name: "Amal", Type: model.UserCoiffeur}
	client  = &model.Profile{ID: 1, Name: "Sara", Type: model.UserClient}
)

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		got, err := ParsePage(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Len(t, Pages(), 11)

	_, err := ParsePage("admin")
	assert.Error(t, err)
}

func TestNavigate(t *testing.T) {
	scrolls := 0
	r := New(WithScrollTop(func() { scrolls++ }))
	assert.Equal(t, Home, r.Current())
	_, ok := r.SelectedID()
	assert.False(t, ok)

	r.Navigate(Profile, 7)
	assert.Equal(t, Profile, r.Current())
	id, ok := r.SelectedID()
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	r.Navigate(Reservation)
	id, _ = r.SelectedID()
	assert.Equal(t, 7, id, "navigating without an id keeps the selection")

	r.Navigate(Dashboard)
	assert.Equal(t, Dashboard, r.Current(), "navigate does not gate")
	assert.Equal(t, 3, scrolls)

	other := 0
	r.SetScrollTop(func() { other++ })
	r.Navigate(Home)
	assert.Equal(t, 3, scrolls)
	assert.Equal(t, 1, other)
}

func TestDeriveInitialPage(t *testing.T) {
	assert.Equal(t, Dashboard, DeriveInitialPage(stylist, Home))
	assert.Equal(t, Dashboard, DeriveInitialPage(stylist, Search))
	assert.Equal(t, Search, DeriveInitialPage(client, Search))
	assert.Equal(t, Home, DeriveInitialPage(nil, Home))
}

func TestApplySession(t *testing.T) {
	r := New()
	r.Navigate(Map)
	assert.Equal(t, Map, r.ApplySession(client))
	assert.Equal(t, Map, r.ApplySession(nil))
	assert.Equal(t, Dashboard, r.ApplySession(stylist))
	assert.Equal(t, Dashboard, r.Current())
}

func TestSelect(t *testing.T) {
	seven, zero := 7, 0
	tests := []struct {
		name     string
		page     Page
		selected *int
		user     *model.Profile
		want     View
	}{
		{"home anonymous", Home, nil, nil, View{Page: Home}},
		{"dashboard for stylist", Dashboard, nil, stylist, View{Page: Dashboard, User: stylist}},
		{"dashboard logged out goes to login", Dashboard, nil, nil, View{Page: Login}},
		{"dashboard for client goes home", Dashboard, nil, client, View{Page: Home, User: client}},
		{"profile with id", Profile, &seven, client, View{Page: Profile, StylistID: 7, User: client}},
		{"profile without id goes to search", Profile, nil, client, View{Page: Search, User: client}},
		{"reservation without id goes to search", Reservation, nil, nil, View{Page: Search}},
		{"reservation keeps id", Reservation, &seven, nil, View{Page: Reservation, StylistID: 7}},
		{"profile with zero id", Profile, &zero, nil, View{Page: Profile, StylistID: 0}},
		{"map keeps selection prop", Map, &seven, nil, View{Page: Map, StylistID: 7}},
		{"unknown page renders home", Page("nope"), nil, nil, View{Page: Home}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.page, tt.selected, tt.user)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Select(tt.page, tt.selected, tt.user), "selection is deterministic")
		})
	}
}

func TestBootScenarios(t *testing.T) {
	t.Run("cached stylist confirmed lands on dashboard", func(t *testing.T) {
		r := New()
		r.ApplySession(stylist)
		assert.Equal(t, Dashboard, r.View(stylist).Page)
	})
	t.Run("anonymous boot stays home", func(t *testing.T) {
		r := New()
		r.ApplySession(nil)
		assert.Equal(t, Home, r.View(nil).Page)
	})
}

func TestNavigate_ZeroIDIsASelection(t *testing.T) {
	r := New()
	r.Navigate(Profile, 0)

	id, ok := r.SelectedID()
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, View{Page: Profile, StylistID: 0, User: client}, r.View(client))
}
