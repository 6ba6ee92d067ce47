package ui

import (
	"strings"

	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type mobileRequestedMsg struct {
	err error
}

// mobileRequestPage broadcasts a home-service request to mobile stylists.
type mobileRequestPage struct {
	deps
	form    form
	pending bool
	err     string
}

func newMobileRequestPage(d deps) mobileRequestPage {
	city := ""
	if d.user != nil {
		city = d.user.City
	}
	return mobileRequestPage{deps: d, form: newForm(
		fieldSpec{name: "service", label: "Service", placeholder: "Coupe, brushing...", required: true},
		fieldSpec{name: "location", label: "Address", value: city, required: true},
		fieldSpec{name: "date", label: "Date", placeholder: "YYYY-MM-DD", required: true, limit: 10},
		fieldSpec{name: "time", label: "Time", placeholder: "HH:MM", required: true, limit: 5},
		fieldSpec{name: "details", label: "Details"},
	)}
}

func (m mobileRequestPage) Init() tea.Cmd { return nil }

func (m mobileRequestPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mobileRequestedMsg:
		m.pending = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		return m, tea.Batch(notify("Request sent to mobile stylists!"), navigate(router.Home))

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		if key.Matches(msg, formKeys.Back) {
			return m, navigate(router.Home)
		}
		if m.user == nil {
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.form, cmd, submitted = m.form.Update(msg)
		if !submitted {
			return m, cmd
		}
		if err := m.form.Validate(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		req := model.MobileRequest{
			Service:  m.form.Value("service"),
			Location: m.form.Value("location"),
			Date:     m.form.Value("date"),
			Time:     m.form.Value("time"),
			Details:  m.form.Value("details"),
		}
		m.err = ""
		m.pending = true
		d := m.deps
		return m, func() tea.Msg { return mobileRequestedMsg{err: d.api.RequestMobile(d.ctx, req)} }
	}
	return m, nil
}

func (m mobileRequestPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Request a home service"))
	b.WriteString("\n")
	if m.user == nil {
		b.WriteString(subtleStyle.Render("Log in (f4) to send a request to mobile stylists."))
		return b.String()
	}
	b.WriteString(subtleStyle.Render("Mobile stylists near you will receive your request."))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	switch {
	case m.pending:
		b.WriteString(subtleStyle.Render("Sending..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: send request • esc: back"))
	return b.String()
}
