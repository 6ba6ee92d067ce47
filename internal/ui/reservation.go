package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type reservedMsg struct {
	id  int
	err error
}

// reservationPage books an appointment with one stylist.
type reservationPage struct {
	deps
	stylistID int
	detail    *model.StylistDetail
	services  []model.Service
	service   int
	form      form
	loading   bool
	pending   bool
	err       string
}

func newReservationPage(d deps, stylistID int) reservationPage {
	return reservationPage{
		deps:      d,
		stylistID: stylistID,
		loading:   true,
		form: newForm(
			fieldSpec{name: "date", label: "Date", placeholder: "YYYY-MM-DD", required: true, limit: 10},
			fieldSpec{name: "time", label: "Time", placeholder: "HH:MM", required: true, limit: 5},
			fieldSpec{name: "notes", label: "Notes", placeholder: "Anything the stylist should know"},
		),
	}
}

func (m reservationPage) Init() tea.Cmd {
	return loadDetailCmd(m.deps, m.stylistID)
}

// bookableServices prefers the explicit services and falls back to the
// menu entries, numbered from zero.
func bookableServices(d *model.StylistDetail) []model.Service {
	if len(d.Services) > 0 {
		return d.Services
	}
	out := make([]model.Service, 0, len(d.Menu))
	for i, item := range d.Menu {
		out = append(out, model.Service{ID: i, Name: item.Name, Price: item.Price})
	}
	return out
}

func (m reservationPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.id != m.stylistID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		m.detail = msg.detail
		m.services = bookableServices(msg.detail)

	case reservedMsg:
		m.pending = false
		if msg.err != nil {
			m.err = "Error: " + apperrors.Reason(msg.err)
			return m, nil
		}
		next := router.Home
		if m.user.IsStylist() {
			next = router.Dashboard
		}
		return m, tea.Batch(notify("Reservation request sent!"), navigate(next))

	case tea.KeyMsg:
		if m.pending || m.detail == nil {
			if key.Matches(msg, formKeys.Back) {
				return m, navigate(router.Profile, m.stylistID)
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, formKeys.Back):
			return m, navigate(router.Profile, m.stylistID)
		case msg.String() == "ctrl+n" && len(m.services) > 0:
			m.service = (m.service + 1) % len(m.services)
			return m, nil
		case msg.String() == "ctrl+p" && len(m.services) > 0:
			m.service = (m.service - 1 + len(m.services)) % len(m.services)
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.form, cmd, submitted = m.form.Update(msg)
		if !submitted {
			return m, cmd
		}
		req, err := m.request()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		m.pending = true
		d, id := m.deps, m.stylistID
		return m, func() tea.Msg {
			rid, err := d.api.Reserve(d.ctx, id, req)
			return reservedMsg{id: rid, err: err}
		}
	}
	return m, nil
}

// request validates the form and builds the booking.
func (m reservationPage) request() (model.ReservationRequest, error) {
	if err := m.form.Validate(); err != nil {
		return model.ReservationRequest{}, err
	}
	req := model.ReservationRequest{
		Date:  m.form.Value("date"),
		Time:  m.form.Value("time"),
		Notes: m.form.Value("notes"),
	}
	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return req, errors.New("Date must look like 2025-01-31")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return req, errors.New("Time must look like 14:30")
	}
	if len(m.services) > 0 {
		req.ServiceID = m.services[m.service].ID
	}
	return req, nil
}

func (m reservationPage) View() string {
	if m.loading {
		return subtleStyle.Render("Loading...")
	}
	if m.detail == nil {
		return errorStyle.Render(m.err) + "\n" + subtleStyle.Render("esc: back")
	}

	var b strings.Builder
	b.WriteString(subtleStyle.Render("Book appointment with"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(m.detail.Name))
	b.WriteString("\n")

	service := "General"
	if len(m.services) > 0 {
		s := m.services[m.service]
		service = fmt.Sprintf("%s (%.2f€)", s.Name, s.Price)
	}
	b.WriteString(labelStyle.Render("Service") + service + subtleStyle.Render("  ctrl+n/ctrl+p to change"))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	switch {
	case m.pending:
		b.WriteString(subtleStyle.Render("Sending request..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: confirm booking • esc: back to profile"))
	return b.String()
}
