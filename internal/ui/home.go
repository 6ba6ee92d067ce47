package ui

import (
	"strings"

	"myhair/internal/api"
	"myhair/internal/catalog"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	tea "github.com/charmbracelet/bubbletea"
)

// topStylists is how many stylists the home page features.
const topStylists = 6

// stylistsLoadedMsg carries a stylist list fetched for page.
type stylistsLoadedMsg struct {
	page  router.Page
	items []model.Stylist
	err   error
}

func loadStylistsCmd(d deps, page router.Page, q api.StylistQuery) tea.Cmd {
	return func() tea.Msg {
		items, err := d.api.Stylists(d.ctx, q)
		return stylistsLoadedMsg{page: page, items: items, err: err}
	}
}

type homePage struct {
	deps
	list    stylistList
	loading bool
	err     string
}

func newHomePage(d deps) homePage {
	return homePage{deps: d, list: newStylistList("No stylists yet."), loading: true}
}

func (m homePage) Init() tea.Cmd {
	return loadStylistsCmd(m.deps, router.Home, api.StylistQuery{SortBy: catalog.SortRating})
}

func (m homePage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stylistsLoadedMsg:
		if msg.page != router.Home {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		f := catalog.DefaultFilters()
		f.Sort = catalog.SortRating
		items := catalog.Filter(msg.items, f)
		if len(items) > topStylists {
			items = items[:topStylists]
		}
		m.list = m.list.SetItems(items)

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return m, navigate(router.Search)
		case "m":
			return m, navigate(router.Map)
		case "u":
			if m.user == nil {
				return m, navigate(router.Signup)
			}
		}
		var open bool
		m.list, open = m.list.Update(msg)
		if open {
			s, _ := m.list.Selected()
			return m, navigate(router.Profile, s.ID)
		}
	}
	return m, nil
}

func (m homePage) View() string {
	var b strings.Builder
	b.WriteString(Logo())
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Find your stylist, skip the queue"))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Top rated"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(subtleStyle.Render("Loading stylists..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	hint := "enter: open profile • s: search • m: map"
	if m.user == nil {
		hint += " • u: sign up"
	}
	b.WriteString(subtleStyle.Render(hint))
	return b.String()
}
