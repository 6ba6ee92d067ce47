package ui

import (
	"fmt"
	"strconv"
	"strings"

	"myhair/internal/api"
	"myhair/internal/catalog"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardSection int

const (
	sectionQueue dashboardSection = iota
	sectionReservations
	sectionMenu
	sectionProfile
	sectionPublish
)

var sectionTitles = []string{"Queue", "Reservations", "Menu", "Location & avatar", "Publish"}

type workspaceLoadedMsg struct {
	ws  *api.Workspace
	err error
}

type waitingSavedMsg struct {
	err error
}

type statusSavedMsg struct {
	id     int
	status string
	err    error
}

type menuAddedMsg struct {
	item model.MenuItem
	err  error
}

type menuDeletedMsg struct {
	id  int
	err error
}

type locationSavedMsg struct {
	lat, lng float64
	err      error
}

type avatarSavedMsg struct {
	url string
	err error
}

type publishedMsg struct {
	err error
}

// dashboardPage is the stylist workspace.
type dashboardPage struct {
	deps
	spinner spinner.Model
	loading bool
	err     string

	detail       *model.StylistDetail
	summary      *model.Dashboard
	reservations []model.Reservation
	waiting      int

	section dashboardSection
	cursor  int

	// editing routes keys to the active form of the section.
	editing       bool
	menuForm      form
	locationForm  form
	avatarForm    form
	publishForm   form
	profileFocus  int // 0 location, 1 avatar
	confirmDelete int
}

func newDashboardPage(d deps) dashboardPage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brand)
	return dashboardPage{
		deps:    d,
		spinner: s,
		loading: true,
		menuForm: newForm(
			fieldSpec{name: "name", label: "Name", required: true},
			fieldSpec{name: "price", label: "Price (€)", required: true},
			fieldSpec{name: "description", label: "Description"},
		),
		locationForm: newForm(
			fieldSpec{name: "lat", label: "Latitude", value: strconv.FormatFloat(mapCenterLat, 'f', 4, 64), required: true},
			fieldSpec{name: "lng", label: "Longitude", value: strconv.FormatFloat(mapCenterLng, 'f', 4, 64), required: true},
		),
		avatarForm: newForm(
			fieldSpec{name: "path", label: "Image file", placeholder: "~/photo.jpg", required: true},
		),
		publishForm: newForm(
			fieldSpec{name: "text", label: "Text", required: true},
			fieldSpec{name: "images", label: "Images", placeholder: "comma separated file paths"},
		),
	}
}

func (m dashboardPage) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m dashboardPage) load() tea.Cmd {
	d := m.deps
	if d.user == nil {
		return nil
	}
	id := d.user.ID
	return func() tea.Msg {
		ws, err := d.api.LoadWorkspace(d.ctx, id)
		return workspaceLoadedMsg{ws: ws, err: err}
	}
}

func (m dashboardPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workspaceLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		m.err = ""
		m.detail = msg.ws.Detail
		m.summary = msg.ws.Summary
		m.reservations = msg.ws.Reservations
		m.waiting = m.detail.Waiting
		if m.summary != nil && m.summary.Profile != nil {
			m.waiting = m.summary.Profile.Waiting
		}
		if m.detail.Lat != nil && m.detail.Lng != nil {
			m.locationForm = m.locationForm.
				SetValue("lat", strconv.FormatFloat(*m.detail.Lat, 'f', 4, 64)).
				SetValue("lng", strconv.FormatFloat(*m.detail.Lng, 'f', 4, 64))
		}
		return m, nil

	case waitingSavedMsg:
		if msg.err != nil {
			return m, notifyErr("Queue update failed: " + apperrors.Reason(msg.err))
		}
		return m, nil

	case statusSavedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		for i := range m.reservations {
			if m.reservations[i].ID == msg.id {
				m.reservations[i].Status = msg.status
			}
		}
		return m, notify(fmt.Sprintf("Reservation #%d is now %s.", msg.id, msg.status))

	case menuAddedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		m.detail.Menu = append(m.detail.Menu, msg.item)
		m.menuForm = m.menuForm.SetValue("name", "").SetValue("price", "").SetValue("description", "")
		m.editing = false
		return m, notify("Menu item added!")

	case menuDeletedMsg:
		if msg.err != nil {
			return m, notifyErr("Delete failed: " + apperrors.Reason(msg.err))
		}
		menu := m.detail.Menu[:0:0]
		for _, item := range m.detail.Menu {
			if item.ID != msg.id {
				menu = append(menu, item)
			}
		}
		m.detail.Menu = menu
		m.cursor = min(m.cursor, max(0, len(menu)-1))
		return m, nil

	case locationSavedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		lat, lng := msg.lat, msg.lng
		m.detail.Lat, m.detail.Lng = &lat, &lng
		m.editing = false
		return m, notify("Location saved.")

	case avatarSavedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		m.detail.Image = msg.url
		m.avatarForm = m.avatarForm.SetValue("path", "")
		m.editing = false
		return m, notify("Profile picture updated!")

	case publishedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		m.publishForm = m.publishForm.SetValue("text", "").SetValue("images", "")
		m.editing = false
		return m, tea.Batch(notify("Posted successfully!"), m.load())

	case tea.KeyMsg:
		if m.detail == nil {
			if msg.String() == "r" {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.load())
			}
			return m, nil
		}
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardPage) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	k := msg.String()
	if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(sectionTitles) {
		m.section = dashboardSection(n - 1)
		m.cursor = 0
		m.confirmDelete = 0
		return m, nil
	}
	switch k {
	case "r":
		return m, m.load()
	case "v":
		return m, navigate(router.Profile, m.detail.ID)
	}

	switch m.section {
	case sectionQueue:
		switch k {
		case "+", "=":
			return m.bumpQueue(1)
		case "-", "_":
			return m.bumpQueue(-1)
		}

	case sectionReservations:
		if m.moveCursor(msg, len(m.reservations)) {
			return m, nil
		}
		if len(m.reservations) == 0 {
			return m, nil
		}
		status := map[string]string{
			"c": model.StatusConfirmed,
			"x": model.StatusCancelled,
			"d": model.StatusCompleted,
			"p": model.StatusPending,
		}[k]
		if status != "" {
			return m, m.setStatus(m.reservations[m.cursor].ID, status)
		}

	case sectionMenu:
		if m.moveCursor(msg, len(m.detail.Menu)) {
			m.confirmDelete = 0
			return m, nil
		}
		switch k {
		case "a":
			m.editing = true
			return m, nil
		case "d":
			if len(m.detail.Menu) > 0 {
				m.confirmDelete = m.detail.Menu[m.cursor].ID
			}
			return m, nil
		case "y":
			if id := m.confirmDelete; id != 0 {
				m.confirmDelete = 0
				return m, m.deleteMenu(id)
			}
		case "n", "esc":
			m.confirmDelete = 0
		}

	case sectionProfile:
		switch k {
		case "l":
			m.profileFocus, m.editing = 0, true
		case "i":
			m.profileFocus, m.editing = 1, true
		}

	case sectionPublish:
		if k == "enter" || k == "a" {
			m.editing = true
		}
	}
	return m, nil
}

func (m *dashboardPage) moveCursor(msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case key.Matches(msg, listKeys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
		return true
	}
	return false
}

// bumpQueue applies the change locally first, then saves the new count.
func (m dashboardPage) bumpQueue(delta int) (screen, tea.Cmd) {
	m.waiting = catalog.QueueDelta(m.waiting, delta)
	if m.summary != nil && m.summary.Profile != nil {
		m.summary.Profile.Waiting = m.waiting
	}
	d, id, waiting := m.deps, m.detail.ID, m.waiting
	return m, func() tea.Msg {
		return waitingSavedMsg{err: d.api.UpdateWaiting(d.ctx, id, waiting)}
	}
}

func (m dashboardPage) setStatus(id int, status string) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		return statusSavedMsg{id: id, status: status, err: d.api.SetReservationStatus(d.ctx, id, status)}
	}
}

func (m dashboardPage) deleteMenu(id int) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		return menuDeletedMsg{id: id, err: d.api.DeleteMenuItem(d.ctx, id)}
	}
}

func (m dashboardPage) updateForm(msg tea.KeyMsg) (screen, tea.Cmd) {
	if key.Matches(msg, formKeys.Back) {
		m.editing = false
		return m, nil
	}
	d := m.deps
	var cmd tea.Cmd
	var submitted bool

	switch m.section {
	case sectionMenu:
		m.menuForm, cmd, submitted = m.menuForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		if err := m.menuForm.Validate(); err != nil {
			return m, notifyErr(err.Error())
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(m.menuForm.Value("price"), ",", "."), 64)
		if err != nil || price < 0 {
			return m, notifyErr("Price must be a positive number")
		}
		item := model.NewMenuItem{Name: m.menuForm.Value("name"), Price: price, Description: m.menuForm.Value("description")}
		return m, func() tea.Msg {
			id, err := d.api.AddMenuItem(d.ctx, item)
			return menuAddedMsg{item: model.MenuItem{ID: id, Name: item.Name, Price: item.Price, Description: item.Description}, err: err}
		}

	case sectionProfile:
		if m.profileFocus == 1 {
			m.avatarForm, cmd, submitted = m.avatarForm.Update(msg)
			if !submitted {
				return m, cmd
			}
			if err := m.avatarForm.Validate(); err != nil {
				return m, notifyErr(err.Error())
			}
			path := m.avatarForm.Value("path")
			return m, func() tea.Msg {
				url, err := d.api.UploadAvatar(d.ctx, path)
				return avatarSavedMsg{url: url, err: err}
			}
		}
		m.locationForm, cmd, submitted = m.locationForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		lat, errLat := strconv.ParseFloat(m.locationForm.Value("lat"), 64)
		lng, errLng := strconv.ParseFloat(m.locationForm.Value("lng"), 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return m, notifyErr("Latitude and longitude must be valid coordinates")
		}
		return m, func() tea.Msg {
			return locationSavedMsg{lat: lat, lng: lng, err: d.api.UpdateLocation(d.ctx, lat, lng)}
		}

	case sectionPublish:
		m.publishForm, cmd, submitted = m.publishForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		if err := m.publishForm.Validate(); err != nil {
			return m, notifyErr(err.Error())
		}
		pub := model.NewPublication{Text: m.publishForm.Value("text"), Images: splitPaths(m.publishForm.Value("images"))}
		return m, func() tea.Msg {
			_, err := d.api.Publish(d.ctx, pub)
			return publishedMsg{err: err}
		}
	}
	m.editing = false
	return m, nil
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (m dashboardPage) View() string {
	if m.loading {
		return fmt.Sprintf("%s Loading your workspace...", m.spinner.View())
	}
	if m.detail == nil {
		return errorStyle.Render(m.err) + "\n" + subtleStyle.Render("r: retry")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard · " + catalog.DisplayName(m.detail.Name)))
	b.WriteString("\n")

	var tabs []string
	for i, t := range sectionTitles {
		label := fmt.Sprintf("%d %s", i+1, t)
		if dashboardSection(i) == m.section {
			tabs = append(tabs, navActiveItemStyle.Render(label))
		} else {
			tabs = append(tabs, navItemStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch m.section {
	case sectionQueue:
		b.WriteString(m.queueView())
	case sectionReservations:
		b.WriteString(m.reservationsView())
	case sectionMenu:
		b.WriteString(m.menuView())
	case sectionProfile:
		b.WriteString(m.profileView())
	case sectionPublish:
		b.WriteString(m.publishView())
	}
	return b.String()
}

func (m dashboardPage) queueView() string {
	var b strings.Builder
	capacity := m.detail.Capacity
	if m.summary != nil && m.summary.Profile != nil {
		p := m.summary.Profile
		capacity = p.Capacity
		b.WriteString(fmt.Sprintf("%s · %s\n", p.Category, ratingStyle.Render(fmt.Sprintf("★ %.1f", p.Rating))))
	}
	b.WriteString(cardStyle.Render(fmt.Sprintf("Clients waiting\n\n   %s   ", queueLabel(m.waiting, capacity))))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("+: one more client • -: one less • r: reload • v: view public profile"))

	if m.summary != nil && len(m.summary.DeplacementRequests) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render("Home service requests"))
		b.WriteString("\n")
		for _, r := range m.summary.DeplacementRequests {
			b.WriteString(itemStyle.Render(fmt.Sprintf("#%d %s · %s · %s %s", r.ID, r.Service, r.Location, r.Date, r.Time)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m dashboardPage) reservationsView() string {
	if len(m.reservations) == 0 {
		return subtleStyle.Render("No reservations yet.")
	}
	var b strings.Builder
	for i, r := range m.reservations {
		line := fmt.Sprintf("#%d %s %s · %s · %s [%s]", r.ID, r.Date, r.Time, r.ClientName, r.Service, r.Status)
		if r.Notes != "" {
			line += " · " + r.Notes
		}
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render("c: confirm • x: cancel • d: completed • p: pending"))
	return b.String()
}

func (m dashboardPage) menuView() string {
	var b strings.Builder
	if len(m.detail.Menu) == 0 {
		b.WriteString(subtleStyle.Render("Your menu is empty."))
		b.WriteString("\n")
	}
	for i, item := range m.detail.Menu {
		line := fmt.Sprintf("%s  %.2f€", item.Name, item.Price)
		if item.Description != "" {
			line += "  " + subtleStyle.Render(item.Description)
		}
		if i == m.cursor && !m.editing {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case m.editing:
		b.WriteString(sectionStyle.Render("New menu item"))
		b.WriteString("\n")
		b.WriteString(m.menuForm.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter: add • esc: cancel"))
	case m.confirmDelete != 0:
		b.WriteString(errorStyle.Render("Delete this menu item? (y/n)"))
	default:
		b.WriteString(subtleStyle.Render("a: add item • d: delete item"))
	}
	return b.String()
}

func (m dashboardPage) profileView() string {
	var b strings.Builder
	where := "not on the map yet"
	if m.detail.Lat != nil && m.detail.Lng != nil {
		where = fmt.Sprintf("%.4f, %.4f", *m.detail.Lat, *m.detail.Lng)
	}
	b.WriteString(fmt.Sprintf("Location: %s\n", where))
	image := m.detail.Image
	if image == "" {
		image = "none"
	}
	b.WriteString(fmt.Sprintf("Avatar: %s\n\n", image))

	switch {
	case m.editing && m.profileFocus == 0:
		b.WriteString(m.locationForm.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter: save location • esc: cancel"))
	case m.editing:
		b.WriteString(m.avatarForm.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter: upload • esc: cancel"))
	default:
		b.WriteString(subtleStyle.Render("l: set location • i: upload avatar"))
	}
	return b.String()
}

func (m dashboardPage) publishView() string {
	if !m.editing {
		return subtleStyle.Render("a: write a new post")
	}
	return m.publishForm.View() + "\n" + subtleStyle.Render("enter: publish • esc: cancel")
}
