package ui

import (
	"context"
	"fmt"
	"strings"

	"myhair/internal/model"
	"myhair/internal/router"
	"myhair/internal/session"
	"myhair/internal/telemetry"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// screen is a page sub-model. Pages return themselves so the app never has
// to type-assert.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
}

// deps is what every page receives.
type deps struct {
	ctx  context.Context
	api  API
	user *model.Profile
}

// App is the root model: navbar, the current page and the session spinner.
type App struct {
	ctx    context.Context
	store  *session.Store
	router *router.Router
	api    API

	view   router.View
	screen screen

	body    *viewport.Model
	spinner spinner.Model
	help    help.Model
	status  statusMsg

	width, height int
	restored      bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithContext sets the context used for backend calls.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) { a.ctx = ctx }
}

// NewApp wires the session store, the router and the backend client.
func NewApp(store *session.Store, r *router.Router, client API, opts ...AppOption) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brand)

	body := viewport.New(80, 20)
	a := &App{
		ctx:     context.Background(),
		store:   store,
		router:  r,
		api:     client,
		body:    &body,
		spinner: s,
		help:    help.New(),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(a)
	}
	r.SetScrollTop(func() { a.body.GotoTop() })
	return a
}

// Watch forwards every session change to send, usually a tea.Program's
// Send, so changes made outside the app's own commands reach the pages.
// The returned func stops forwarding.
func (a *App) Watch(send func(tea.Msg)) func() {
	return a.store.OnChange(func(s session.Snapshot) {
		send(sessionChangedMsg{snap: s})
	})
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, restoreCmd(a.ctx, a.store))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.resizeBody()

	case tea.KeyMsg:
		if key.Matches(msg, appKeys.Quit) {
			return a, tea.Quit
		}
		if a.loading() {
			return a, nil
		}
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case spinner.TickMsg:
		if msg.ID == a.spinner.ID() {
			if !a.loading() {
				return a, nil
			}
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}

	case sessionResolvedMsg:
		a.restored = true
		a.router.ApplySession(msg.snap.User)
		return a, a.rebuild()

	case sessionChangedMsg:
		if a.loading() || a.screen == nil || model.SameAccount(a.view.User, msg.snap.User) {
			return a, nil
		}
		if msg.snap.Cause == session.CauseLogin {
			a.router.ApplySession(msg.snap.User)
		}
		// The page was built for another account.
		return a, a.rebuild()

	case navigateMsg:
		a.status = statusMsg{}
		a.router.Navigate(msg.page, msg.id...)
		return a, a.rebuild()

	case loginRequestMsg:
		return a, loginCmd(a.ctx, a.store, msg.email, msg.password)

	case loginDoneMsg:
		if !msg.res.Success {
			break // the login page shows the reason inline
		}
		page := a.router.ApplySession(msg.res.User)
		if page == router.Login {
			a.router.Navigate(router.Home)
		}
		a.status = statusMsg{text: fmt.Sprintf("Welcome back, %s!", msg.res.User.Name)}
		return a, a.rebuild()

	case logoutDoneMsg:
		a.router.Navigate(router.Home)
		a.status = statusMsg{text: "You have been logged out."}
		return a, a.rebuild()

	case refreshDoneMsg:
		if model.SameAccount(msg.before, msg.after) {
			return a, nil
		}
		a.router.ApplySession(msg.after)
		return a, a.rebuild()

	case statusMsg:
		a.status = msg
		return a, nil
	}

	if a.screen != nil {
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		cmds = append(cmds, cmd)
		a.syncBody()
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	user := a.store.User()
	switch {
	case key.Matches(msg, appKeys.Home):
		return navigate(router.Home), true
	case key.Matches(msg, appKeys.Search):
		return navigate(router.Search), true
	case key.Matches(msg, appKeys.Map):
		return navigate(router.Map), true
	case key.Matches(msg, appKeys.Account):
		if user == nil {
			return navigate(router.Login), true
		}
		if user.IsStylist() {
			return navigate(router.Dashboard), true
		}
		return navigate(router.RequestMobile), true
	case key.Matches(msg, appKeys.Refresh):
		return refreshCmd(a.ctx, a.store), true
	case key.Matches(msg, appKeys.Logout):
		if user == nil {
			return nil, true
		}
		telemetry.LogInfo("Logging out", "user_id", user.ID)
		return logoutCmd(a.ctx, a.store), true
	case key.Matches(msg, appKeys.PageUp):
		a.body.SetYOffset(a.body.YOffset - a.body.Height/2)
		return nil, true
	case key.Matches(msg, appKeys.PageDown):
		a.body.SetYOffset(a.body.YOffset + a.body.Height/2)
		return nil, true
	}
	return nil, false
}

// loading is true until the first session resolution arrives.
func (a *App) loading() bool {
	return !a.restored || a.store.Loading()
}

// rebuild selects the view for the current router state and session and
// swaps in a fresh page model.
func (a *App) rebuild() tea.Cmd {
	a.view = a.router.View(a.store.User())
	a.screen = a.newScreen(a.view)
	a.body.GotoTop()
	a.syncBody()
	return a.screen.Init()
}

func (a *App) newScreen(v router.View) screen {
	d := deps{ctx: a.ctx, api: a.api, user: v.User}
	switch v.Page {
	case router.Login:
		return newLoginPage()
	case router.Signup:
		return newSignupPage()
	case router.SignupClient:
		return newClientSignupPage(d)
	case router.SignupCoiffeur:
		return newCoiffeurSignupPage(d)
	case router.Search:
		return newSearchPage(d)
	case router.Map:
		return newMapPage(d)
	case router.Profile:
		return newProfilePage(d, v.StylistID, a.width)
	case router.Reservation:
		return newReservationPage(d, v.StylistID)
	case router.RequestMobile:
		return newMobileRequestPage(d)
	case router.Dashboard:
		return newDashboardPage(d)
	default:
		return newHomePage(d)
	}
}

// Page reports the page currently rendered.
func (a *App) Page() router.Page {
	return a.view.Page
}

func (a *App) resizeBody() {
	// navbar, status line and help take four rows
	a.body.Width = a.width
	a.body.Height = max(1, a.height-4)
	a.syncBody()
}

func (a *App) syncBody() {
	if a.screen == nil {
		return
	}
	a.body.SetContent(a.screen.View())
}

func (a *App) View() string {
	if a.loading() {
		return fmt.Sprintf("\n  %s Loading your session...\n", a.spinner.View())
	}

	var b strings.Builder
	b.WriteString(a.navbar())
	b.WriteString("\n")
	b.WriteString(a.body.View())
	b.WriteString("\n")
	if a.status.text != "" {
		if a.status.err {
			b.WriteString(errorStyle.Render(a.status.text))
		} else {
			b.WriteString(okStyle.Render(a.status.text))
		}
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(a.help.View(appKeys)))
	return b.String()
}

// navItems lists the navbar entries for a session. Stylists only get their
// dashboard; other visitors get browsing pages, plus the mobile request
// form once logged in.
func navItems(user *model.Profile) []router.Page {
	if user.IsStylist() {
		return []router.Page{router.Home, router.Dashboard}
	}
	items := []router.Page{router.Home, router.Search, router.Map}
	if user != nil {
		items = append(items, router.RequestMobile)
	}
	return items
}

var navLabels = map[router.Page]string{
	router.Home:          "Home",
	router.Search:        "Search",
	router.Map:           "Map",
	router.RequestMobile: "Home service",
	router.Dashboard:     "Dashboard",
}

func (a *App) navbar() string {
	user := a.store.User()
	var items []string
	for _, p := range navItems(user) {
		style := navItemStyle
		if p == a.view.Page {
			style = navActiveItemStyle
		}
		items = append(items, style.Render(navLabels[p]))
	}
	who := "Not signed in (f4 to log in)"
	if user != nil {
		who = fmt.Sprintf("%s (%s)", user.Name, user.Type)
	}
	left := navbarStyle.Render("✂ MyHair")
	right := subtleStyle.Render(who)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(right))
	return left + middle + strings.Repeat(" ", gap) + right
}
