package ui

import (
	"context"
	"strings"

	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// signupPage lets the visitor pick an account kind.
type signupPage struct {
	cursor int
}

var signupChoices = []struct {
	page  router.Page
	title string
	desc  string
}{
	{router.SignupClient, "I'm a client", "Find stylists, book and follow the queue."},
	{router.SignupCoiffeur, "I'm a stylist", "Manage your salon, queue and bookings."},
}

func newSignupPage() signupPage { return signupPage{} }

func (m signupPage) Init() tea.Cmd { return nil }

func (m signupPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, listKeys.Down):
		if m.cursor < len(signupChoices)-1 {
			m.cursor++
		}
	case key.Matches(k, listKeys.Open):
		return m, navigate(signupChoices[m.cursor].page)
	case key.Matches(k, listKeys.Back), k.String() == "l":
		return m, navigate(router.Login)
	}
	return m, nil
}

func (m signupPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Join MyHair"))
	b.WriteString("\n")
	for i, c := range signupChoices {
		card := sectionStyle.Render(c.title) + "\n" + subtleStyle.Render(c.desc)
		style := cardStyle
		if i == m.cursor {
			style = style.BorderForeground(brand)
		}
		b.WriteString(style.Render(card))
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render("enter: continue • l: already have an account? log in"))
	return b.String()
}

// signupDoneMsg reports a registration attempt.
type signupDoneMsg struct {
	err error
}

// registrationPage is the form shared by both signup kinds. On success it
// sends the visitor to the login page.
type registrationPage struct {
	title   string
	form    form
	submit  func(ctx context.Context, f form) error
	ctx     context.Context
	pending bool
	err     string
}

func newClientSignupPage(d deps) registrationPage {
	return registrationPage{
		title: "Create a client account",
		ctx:   d.ctx,
		form: newForm(
			fieldSpec{name: "name", label: "Full name", required: true},
			fieldSpec{name: "email", label: "Email", placeholder: "you@example.com", required: true},
			fieldSpec{name: "password", label: "Password", required: true, secret: true},
			fieldSpec{name: "city", label: "City"},
			fieldSpec{name: "phone", label: "Phone"},
		),
		submit: func(ctx context.Context, f form) error {
			_, err := d.api.SignupClient(ctx, model.ClientSignup{
				Name:     f.Value("name"),
				Email:    f.Value("email"),
				Password: f.Value("password"),
				City:     f.Value("city"),
				Phone:    f.Value("phone"),
			})
			return err
		},
	}
}

func newCoiffeurSignupPage(d deps) registrationPage {
	return registrationPage{
		title: "Register your salon",
		ctx:   d.ctx,
		form: newForm(
			fieldSpec{name: "name", label: "Salon name", required: true},
			fieldSpec{name: "email", label: "Email", placeholder: "salon@example.com", required: true},
			fieldSpec{name: "password", label: "Password", required: true, secret: true},
			fieldSpec{name: "city", label: "City", required: true},
			fieldSpec{name: "phone", label: "Phone"},
			fieldSpec{name: "category", label: "Category", placeholder: "Homme, Femme or Déplacé", value: model.CategoryWomen, required: true},
			fieldSpec{name: "address", label: "Address"},
			fieldSpec{name: "description", label: "Description"},
			fieldSpec{name: "virement_name", label: "Transfer name"},
			fieldSpec{name: "virement_proof", label: "Transfer proof", placeholder: "path to a file"},
		),
		submit: func(ctx context.Context, f form) error {
			_, err := d.api.SignupCoiffeur(ctx, model.CoiffeurSignup{
				Name:          f.Value("name"),
				Email:         f.Value("email"),
				Password:      f.Value("password"),
				City:          f.Value("city"),
				Phone:         f.Value("phone"),
				Category:      f.Value("category"),
				Description:   f.Value("description"),
				Address:       f.Value("address"),
				VirementName:  f.Value("virement_name"),
				VirementProof: f.Value("virement_proof"),
			})
			return err
		},
	}
}

func (m registrationPage) Init() tea.Cmd { return nil }

func (m registrationPage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signupDoneMsg:
		m.pending = false
		if msg.err != nil {
			m.err = apperrors.Reason(msg.err)
			return m, nil
		}
		return m, tea.Batch(
			notify("Account created! Check your email to confirm it, then log in."),
			navigate(router.Login),
		)

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		if key.Matches(msg, formKeys.Back) {
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
		if c := m.form.Value("category"); c != "" && !validCategory(c) {
			m.err = "Category must be Homme, Femme or Déplacé"
			return m, nil
		}
		m.err = ""
		m.pending = true
		f, submit, ctx := m.form, m.submit, m.ctx
		return m, func() tea.Msg { return signupDoneMsg{err: submit(ctx, f)} }
	}
	return m, nil
}

func validCategory(c string) bool {
	switch c {
	case model.CategoryMen, model.CategoryWomen, model.CategoryMobile:
		return true
	}
	return false
}

func (m registrationPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	switch {
	case m.pending:
		b.WriteString(subtleStyle.Render("Creating your account..."))
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("tab: next field • enter: submit • esc: back"))
	return b.String()
}
