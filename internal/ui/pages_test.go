package ui

import (
	"testing"

	"myhair/internal/catalog"
	"myhair/internal/model"
	"myhair/internal/router"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePage_TopRated(t *testing.T) {
	f := newFakeAPI()
	var s screen = newHomePage(testDeps(f, nil))
	s, _ = feed(t, s, s.Init())

	view := s.View()
	assert.Contains(t, view, "Amal")
	assert.Contains(t, view, "u: sign up")

	home := s.(homePage)
	first, ok := home.list.Selected()
	require.True(t, ok)
	assert.Equal(t, 7, first.ID, "highest rating first")

	s, cmd := s.Update(keyType(tea.KeyDown))
	assert.Nil(t, cmd)
	s, _ = s.Update(keyType(tea.KeyDown))
	_, cmd = s.Update(keyType(tea.KeyEnter))
	nav, ok := navigation(collect(t, cmd))
	require.True(t, ok)
	assert.Equal(t, navigateMsg{page: router.Profile, id: []int{9}}, nav)
}

func TestHomePage_BackendDown(t *testing.T) {
	f := newFakeAPI()
	f.err = errBackendDown
	var s screen = newHomePage(testDeps(f, clientUser))
	s, _ = feed(t, s, s.Init())
	assert.Contains(t, s.View(), "Network error")
	assert.NotContains(t, s.View(), "u: sign up")
}

func TestHomePage_IgnoresOtherPagesLists(t *testing.T) {
	var s screen = newHomePage(testDeps(newFakeAPI(), nil))
	s, _ = s.Update(stylistsLoadedMsg{page: router.Search, items: sampleStylists()})
	assert.True(t, s.(homePage).loading)
}

func TestSearchPage_Filters(t *testing.T) {
	f := newFakeAPI()
	var s screen = newSearchPage(testDeps(f, nil))
	s, _ = feed(t, s, s.Init())
	assert.Len(t, s.(searchPage).list.items, 3)

	// Cities are offered in sorted order: Lyon, then Paris.
	s, _ = s.Update(keyRunes("c"))
	page := s.(searchPage)
	assert.Equal(t, "Lyon", page.filters.City)
	assert.Len(t, page.list.items, 2)

	s, _ = s.Update(keyRunes("a"))
	page = s.(searchPage)
	assert.Equal(t, catalog.AvailabilityAvailable, page.filters.Availability)
	require.Len(t, page.list.items, 1)
	assert.Equal(t, 9, page.list.items[0].ID)
	assert.Contains(t, s.View(), "1 of 3 stylists")
	assert.Contains(t, s.View(), "x: reset filters")

	s, _ = s.Update(keyRunes("x"))
	page = s.(searchPage)
	assert.Equal(t, catalog.DefaultFilters(), page.filters)
	assert.Len(t, page.list.items, 3)

	s, _ = s.Update(keyRunes("o"))
	page = s.(searchPage)
	assert.Equal(t, catalog.SortWaiting, page.filters.Sort)
	assert.Equal(t, 9, page.list.items[0].ID, "shortest queue first")
}

func TestCycle(t *testing.T) {
	assert.Equal(t, "b", cycle([]string{"a", "b"}, "a"))
	assert.Equal(t, "a", cycle([]string{"a", "b"}, "b"))
	assert.Equal(t, "a", cycle([]string{"a", "b"}, "zzz"))
	assert.Equal(t, 4.0, cycle(ratingSteps, 3.0))
}

func TestMapPage_DistanceAndNameFilter(t *testing.T) {
	f := newFakeAPI()
	var s screen = newMapPage(testDeps(f, nil))
	s, _ = feed(t, s, s.Init())

	page := s.(mapPage)
	require.Len(t, page.list.items, 3)
	assert.Equal(t, 7, page.list.items[0].ID, "closest to the center first")
	assert.Equal(t, 9, page.list.items[2].ID, "stylists without coordinates come last")
	assert.Equal(t, "0.0 km", page.list.extra[7])
	assert.Equal(t, "no location", page.list.extra[9])

	s, _ = s.Update(keyRunes("/"))
	s = typeInto(s, "LYON")
	page = s.(mapPage)
	assert.Len(t, page.list.items, 2, "the filter matches the city too")

	s, _ = s.Update(keyType(tea.KeyEnter))
	assert.False(t, s.(mapPage).searching)
	s, _ = s.Update(keyType(tea.KeyEsc))
	assert.Len(t, s.(mapPage).list.items, 3, "esc clears the filter")
}

func TestMapPage_NearbyMode(t *testing.T) {
	f := newFakeAPI()
	f.nearby = []model.NearbyStylist{{ID: 7, Name: "Amal", Dist: 1.2}}
	var s screen = newMapPage(testDeps(f, nil))
	s, _ = feed(t, s, s.Init())

	s, cmd := s.Update(keyRunes("n"))
	s, _ = feed(t, s, cmd)
	page := s.(mapPage)
	require.Len(t, page.list.items, 1)
	assert.Equal(t, "1.2 km", page.list.extra[7])
	assert.Contains(t, s.View(), "within 50 km")
}

func TestProfilePage_BookAndFollow(t *testing.T) {
	tests := []struct {
		name string
		user *model.Profile
		key  string
		want navigateMsg
	}{
		{"book logged out", nil, "b", navigateMsg{page: router.Login}},
		{"follow logged out", nil, "f", navigateMsg{page: router.Login}},
		{"book logged in", clientUser, "b", navigateMsg{page: router.Reservation, id: []int{7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s screen = newProfilePage(testDeps(newFakeAPI(), tt.user), 7, 80)
			s, _ = feed(t, s, s.Init())
			_, cmd := s.Update(keyRunes(tt.key))
			nav, ok := navigation(collect(t, cmd))
			require.True(t, ok)
			assert.Equal(t, tt.want, nav)
		})
	}
}

func TestProfilePage_Subscribe(t *testing.T) {
	f := newFakeAPI()
	var s screen = newProfilePage(testDeps(f, clientUser), 7, 80)
	s, _ = feed(t, s, s.Init())
	assert.Contains(t, s.View(), "12 rue de Rivoli")
	assert.Contains(t, s.View(), "Coupe")

	s, cmd := s.Update(keyRunes("f"))
	s, out := feed(t, s, cmd)
	assert.Equal(t, []bool{true}, f.subscribed)
	assert.True(t, s.(profilePage).detail.IsSubscribed)
	assert.Contains(t, out, tea.Msg(statusMsg{text: "You now follow this stylist."}))
}

func TestProfilePage_Comment(t *testing.T) {
	f := newFakeAPI()
	var s screen = newProfilePage(testDeps(f, clientUser), 7, 80)
	s, _ = feed(t, s, s.Init())

	s, _ = s.Update(keyRunes("c"))
	s = typeInto(s, "Super coupe")
	s, cmd := s.Update(keyType(tea.KeyEnter))
	_, out := feed(t, s, cmd)
	assert.Equal(t, []string{"Super coupe"}, f.comments)
	assert.Contains(t, out, tea.Msg(statusMsg{text: "Thanks for your comment!"}))
}

func TestProfilePage_NotFound(t *testing.T) {
	var s screen = newProfilePage(testDeps(newFakeAPI(), nil), 99, 80)
	s, _ = feed(t, s, s.Init())
	assert.Contains(t, s.View(), "Stylist not found")

	_, cmd := s.Update(keyType(tea.KeyEsc))
	nav, _ := navigation(collect(t, cmd))
	assert.Equal(t, router.Search, nav.page)
}

func fillReservation(t *testing.T, s screen, date, at string) screen {
	t.Helper()
	s = typeInto(s, date)
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, at)
	return s
}

func TestReservationPage_Success(t *testing.T) {
	tests := []struct {
		name string
		user *model.Profile
		want router.Page
	}{
		{"client goes home", clientUser, router.Home},
		{"stylist goes to the dashboard", stylistUser, router.Dashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI()
			var s screen = newReservationPage(testDeps(f, tt.user), 7)
			s, _ = feed(t, s, s.Init())
			assert.Contains(t, s.View(), "Coupe + brushing")

			s = fillReservation(t, s, "2025-03-01", "14:30")
			s, cmd := s.Update(keyType(tea.KeyEnter))
			_, out := feed(t, s, cmd)

			require.Len(t, f.reserved, 1)
			assert.Equal(t, model.ReservationRequest{ServiceID: 21, Date: "2025-03-01", Time: "14:30"}, f.reserved[0])
			nav, ok := navigation(out)
			require.True(t, ok)
			assert.Equal(t, tt.want, nav.page)
		})
	}
}

func TestReservationPage_ValidatesDateAndTime(t *testing.T) {
	f := newFakeAPI()
	var s screen = newReservationPage(testDeps(f, clientUser), 7)
	s, _ = feed(t, s, s.Init())

	s = fillReservation(t, s, "01/03/2025", "14:30")
	s, cmd := s.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Date must look like")
	assert.Empty(t, f.reserved)
}

func TestReservationPage_MenuFallback(t *testing.T) {
	d := &model.StylistDetail{Menu: []model.MenuItem{{ID: 11, Name: "Coupe", Price: 25}, {ID: 12, Name: "Brushing", Price: 18}}}
	got := bookableServices(d)
	assert.Equal(t, []model.Service{{ID: 0, Name: "Coupe", Price: 25}, {ID: 1, Name: "Brushing", Price: 18}}, got)
}

func TestMobileRequestPage(t *testing.T) {
	f := newFakeAPI()
	var s screen = newMobileRequestPage(testDeps(f, clientUser))
	assert.Equal(t, "Paris", s.(mobileRequestPage).form.Value("location"), "prefilled with the user's city")

	s = typeInto(s, "Brushing")
	s, _ = s.Update(keyType(tea.KeyTab))
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, "2025-03-02")
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, "09:00")
	s, cmd := s.Update(keyType(tea.KeyEnter))
	_, out := feed(t, s, cmd)

	require.Len(t, f.mobile, 1)
	assert.Equal(t, model.MobileRequest{Service: "Brushing", Location: "Paris", Date: "2025-03-02", Time: "09:00"}, f.mobile[0])
	nav, ok := navigation(out)
	require.True(t, ok)
	assert.Equal(t, router.Home, nav.page)
}

func TestClientSignup_GoesToLogin(t *testing.T) {
	f := newFakeAPI()
	var s screen = newClientSignupPage(testDeps(f, nil))
	s = typeInto(s, "Lina")
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, "lina@client.com")
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, "password")
	s, cmd := s.Update(keyType(tea.KeyEnter))
	_, out := feed(t, s, cmd)

	require.Len(t, f.clients, 1)
	assert.Equal(t, "lina@client.com", f.clients[0].Email)
	nav, ok := navigation(out)
	require.True(t, ok)
	assert.Equal(t, router.Login, nav.page)
}

func TestCoiffeurSignup_RejectsUnknownCategory(t *testing.T) {
	f := newFakeAPI()
	var s screen = newCoiffeurSignupPage(testDeps(f, nil))
	reg := s.(registrationPage)
	reg.form = reg.form.
		SetValue("name", "Salon K").
		SetValue("email", "k@salon.com").
		SetValue("password", "pw").
		SetValue("city", "Lyon").
		SetValue("category", "Barbier")
	reg.form.focus = len(reg.form.fields) - 1
	s, cmd := reg.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Category must be")
	assert.Empty(t, f.coiffeurs)
}

func TestSignupSelection(t *testing.T) {
	var s screen = newSignupPage()
	s, _ = s.Update(keyType(tea.KeyDown))
	_, cmd := s.Update(keyType(tea.KeyEnter))
	nav, ok := navigation(collect(t, cmd))
	require.True(t, ok)
	assert.Equal(t, router.SignupCoiffeur, nav.page)
}

func TestLoginPage(t *testing.T) {
	var s screen = newLoginPage()

	s, cmd := s.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
	s, cmd = s.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Please fill in: Email, Password")

	s = newLoginPage()
	s = typeInto(s, "sara@client.com")
	s, _ = s.Update(keyType(tea.KeyTab))
	s = typeInto(s, "password")
	s, cmd = s.Update(keyType(tea.KeyEnter))
	msgs := collect(t, cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, loginRequestMsg{email: "sara@client.com", password: "password"}, msgs[0])
	assert.Contains(t, s.View(), "Signing in...")
}
