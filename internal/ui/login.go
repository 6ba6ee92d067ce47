package ui

import (
	"strings"

	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type loginPage struct {
	form    form
	pending bool
	err     string
}

func newLoginPage() loginPage {
	return loginPage{form: newForm(
		fieldSpec{name: "email", label: "Email", placeholder: "you@example.com", required: true},
		fieldSpec{name: "password", label: "Password", required: true, secret: true},
	)}
}

func (m loginPage) Init() tea.Cmd { return nil }

func (m loginPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.pending = false
		if !msg.res.Success {
			m.err = msg.res.Error
			m.form = m.form.SetValue("password", "")
		}
		return m, nil

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		switch {
		case key.Matches(msg, formKeys.Back):
			return m, navigate(router.Home)
		case msg.String() == "ctrl+n":
			return m, navigate(router.Signup)
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
		m.err = ""
		m.pending = true
		req := loginRequestMsg{email: m.form.Value("email"), password: m.form.Value("password")}
		return m, func() tea.Msg { return req }
	}
	return m, nil
}

func (m loginPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome back"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Sign in to your account"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	switch {
	case m.pending:
		b.WriteString(subtleStyle.Render("Signing in..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: sign in • ctrl+n: create an account • esc: back"))
	return b.String()
}
