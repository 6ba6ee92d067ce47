package ui

import (
	"fmt"
	"strings"

	"myhair/internal/api"
	"myhair/internal/catalog"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ratingSteps       = []float64{0, 3, 4, 4.5}
	availabilitySteps = []string{catalog.AvailabilityAll, catalog.AvailabilityAvailable, catalog.AvailabilityPopular}
	sortSteps         = []string{catalog.SortRating, catalog.SortWaiting, catalog.SortPopular}
)

// searchPage filters the full stylist list locally.
type searchPage struct {
	deps
	all     []model.Stylist
	filters catalog.Filters
	list    stylistList
	loading bool
	err     string
}

func newSearchPage(d deps) searchPage {
	return searchPage{
		deps:    d,
		filters: catalog.DefaultFilters(),
		list:    newStylistList("No stylist matches these filters."),
		loading: true,
	}
}

func (m searchPage) Init() tea.Cmd {
	return loadStylistsCmd(m.deps, router.Search, api.StylistQuery{})
}

func (m searchPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stylistsLoadedMsg:
		if msg.page != router.Search {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		m.all = msg.items
		return m.apply(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.filters.City = cycle(append([]string{""}, catalog.Cities(m.all)...), m.filters.City)
			return m.apply(), nil
		case "t":
			m.filters.Category = cycle(append([]string{"all"}, catalog.Categories(m.all)...), m.filters.Category)
			return m.apply(), nil
		case "r":
			m.filters.MinRating = cycle(ratingSteps, m.filters.MinRating)
			return m.apply(), nil
		case "a":
			m.filters.Availability = cycle(availabilitySteps, m.filters.Availability)
			return m.apply(), nil
		case "o":
			m.filters.Sort = cycle(sortSteps, m.filters.Sort)
			return m.apply(), nil
		case "x":
			m.filters = catalog.DefaultFilters()
			return m.apply(), nil
		case "m":
			return m, navigate(router.Map)
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

func (m searchPage) apply() searchPage {
	m.list = m.list.SetItems(catalog.Filter(m.all, m.filters))
	return m
}

// cycle returns the value after current in steps, wrapping around. An
// unknown current restarts at the first step.
func cycle[T comparable](steps []T, current T) T {
	for i, s := range steps {
		if s == current {
			return steps[(i+1)%len(steps)]
		}
	}
	return steps[0]
}

func (m searchPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search stylists"))
	b.WriteString("\n")

	city := m.filters.City
	if city == "" {
		city = "any"
	}
	rating := "any"
	if m.filters.MinRating > 0 {
		rating = fmt.Sprintf("%.1f+", m.filters.MinRating)
	}
	b.WriteString(fmt.Sprintf("[c] city: %s  [t] category: %s  [r] rating: %s  [a] availability: %s  [o] sort: %s",
		city, m.filters.Category, rating, m.filters.Availability, m.filters.Sort))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(subtleStyle.Render("Loading stylists..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf("%d of %d stylists", len(m.list.items), len(m.all))))
	}
	b.WriteString("\n")
	hint := "enter: open profile • m: map"
	if m.filters.Active() {
		hint += " • x: reset filters"
	}
	b.WriteString(subtleStyle.Render(hint))
	return b.String()
}
