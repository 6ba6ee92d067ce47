package ui

import (
	"fmt"
	"sort"
	"strings"

	"myhair/internal/api"
	"myhair/internal/catalog"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Map center used for distances, Paris like the web map.
const (
	mapCenterLat = 48.8566
	mapCenterLng = 2.3522
)

type locationsLoadedMsg struct {
	items []model.Location
	err   error
}

type nearbyLoadedMsg struct {
	items []model.NearbyStylist
	err   error
}

// mapPage lists stylists by distance from the map center, filtered by name
// or city. In nearby mode only the stylists the backend reports within the
// nearby radius are shown.
type mapPage struct {
	deps
	stylists  []model.Stylist
	locations map[int]model.Location
	nearby    map[int]float64
	nearMode  bool

	search    textinput.Model
	searching bool

	list    stylistList
	loading bool
	err     string
}

func newMapPage(d deps) mapPage {
	ti := textinput.New()
	ti.Placeholder = "name or city"
	ti.Prompt = "/ "
	return mapPage{
		deps:    d,
		search:  ti,
		list:    newStylistList("No stylist found."),
		loading: true,
	}
}

func (m mapPage) Init() tea.Cmd {
	d := m.deps
	return tea.Batch(
		loadStylistsCmd(d, router.Map, api.StylistQuery{}),
		func() tea.Msg {
			items, err := d.api.Locations(d.ctx)
			return locationsLoadedMsg{items: items, err: err}
		},
	)
}

func (m mapPage) loadNearby() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		items, err := d.api.Nearby(d.ctx, mapCenterLat, mapCenterLng)
		return nearbyLoadedMsg{items: items, err: err}
	}
}

func (m mapPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stylistsLoadedMsg:
		if msg.page != router.Map {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		m.stylists = msg.items
		return m.apply(), nil

	case locationsLoadedMsg:
		// Pins are optional; stylists keep their own coordinates.
		if msg.err == nil {
			m.locations = make(map[int]model.Location, len(msg.items))
			for _, l := range msg.items {
				m.locations[l.ID] = l
			}
		}
		return m.apply(), nil

	case nearbyLoadedMsg:
		if msg.err != nil {
			m.nearMode = false
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		m.nearby = make(map[int]float64, len(msg.items))
		for _, n := range msg.items {
			m.nearby[n.ID] = n.Dist
		}
		return m.apply(), nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc", "enter":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m.apply(), cmd
		}
		switch msg.String() {
		case "/":
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		case "n":
			m.nearMode = !m.nearMode
			if m.nearMode {
				return m.apply(), m.loadNearby()
			}
			return m.apply(), nil
		case "s":
			return m, navigate(router.Search)
		}
		if key.Matches(msg, listKeys.Back) && m.search.Value() != "" {
			m.search.SetValue("")
			return m.apply(), nil
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

// apply recomputes the visible rows: name/city filter, nearby restriction,
// then distance order with unlocated stylists last.
func (m mapPage) apply() mapPage {
	items := catalog.MatchName(m.stylists, m.search.Value())
	dist := make(map[int]float64, len(items))
	extra := make(map[int]string, len(items))

	var located, unlocated []model.Stylist
	for _, s := range items {
		if m.nearMode {
			d, ok := m.nearby[s.ID]
			if !ok {
				continue
			}
			dist[s.ID] = d
			extra[s.ID] = fmt.Sprintf("%.1f km", d)
			located = append(located, s)
			continue
		}
		lat, lng, ok := m.coordinates(s)
		if !ok {
			extra[s.ID] = "no location"
			unlocated = append(unlocated, s)
			continue
		}
		d := catalog.RoundKm(catalog.Distance(mapCenterLat, mapCenterLng, lat, lng))
		dist[s.ID] = d
		extra[s.ID] = fmt.Sprintf("%.1f km", d)
		located = append(located, s)
	}
	sort.SliceStable(located, func(i, j int) bool { return dist[located[i].ID] < dist[located[j].ID] })

	m.list = m.list.SetItems(append(located, unlocated...)).SetExtra(extra)
	return m
}

func (m mapPage) coordinates(s model.Stylist) (float64, float64, bool) {
	if s.Lat != nil && s.Lng != nil {
		return *s.Lat, *s.Lng, true
	}
	if l, ok := m.locations[s.ID]; ok && (l.Lat != 0 || l.Lng != 0) {
		return l.Lat, l.Lng, true
	}
	return 0, 0, false
}

func (m mapPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stylists around you"))
	b.WriteString("\n")
	mode := fmt.Sprintf("all stylists, %d on the map", len(m.locations))
	if m.nearMode {
		mode = fmt.Sprintf("within %.0f km", catalog.NearbyRadiusKm)
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("From Paris center · %s", mode)))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	switch {
	case m.loading:
		b.WriteString(subtleStyle.Render("Loading map..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("/: filter by name or city • n: nearby only • enter: open profile • s: search"))
	return b.String()
}
