// Package router holds the current page and the role-based page policy.
package router

import (
	"fmt"

	"myhair/internal/model"
	"myhair/internal/telemetry"
)

// Page identifies a screen.
type Page string

const (
	Home           Page = "home"
	Login          Page = "login"
	Signup         Page = "signup"
	SignupClient   Page = "signup-client"
	SignupCoiffeur Page = "signup-coiffeur"
	Search         Page = "search"
	Map            Page = "map"
	Profile        Page = "profile"
	Reservation    Page = "reservation"
	RequestMobile  Page = "request-mobile"
	Dashboard      Page = "dashboard"
)

var pages = []Page{Home, Login, Signup, SignupClient, SignupCoiffeur, Search, Map, Profile, Reservation, RequestMobile, Dashboard}

// Pages lists every page identifier.
func Pages() []Page {
	return append([]Page(nil), pages...)
}

// ParsePage validates a page identifier.
func ParsePage(s string) (Page, error) {
	for _, p := range pages {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// Router is the navigation state. It is owned by the UI event loop and is
// not safe for concurrent use.
type Router struct {
	current   Page
	selected  *int
	scrollTop func()
}

// Option configures a Router.
type Option func(*Router)

// WithScrollTop sets the hook run on every navigation.
func WithScrollTop(fn func()) Option {
	return func(r *Router) { r.scrollTop = fn }
}

// SetScrollTop replaces the navigation hook. The UI installs it once its
// scrollable body exists.
func (r *Router) SetScrollTop(fn func()) {
	r.scrollTop = fn
}

// New returns a router on the home page.
func New(opts ...Option) *Router {
	r := &Router{current: Home}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Navigate moves to page. When an id is given it becomes the selected
// entity; otherwise the previous selection is kept. No permission check
// happens here, see Select.
func (r *Router) Navigate(page Page, id ...int) {
	if r.scrollTop != nil {
		r.scrollTop()
	}
	r.current = page
	if len(id) > 0 {
		sel := id[0]
		r.selected = &sel
	}
	telemetry.TrackNavigation(string(page))
}

// Current returns the requested page, before gating.
func (r *Router) Current() Page {
	return r.current
}

// SelectedID returns the selected entity id, if any.
func (r *Router) SelectedID() (int, bool) {
	if r.selected == nil {
		return 0, false
	}
	return *r.selected, true
}

// ApplySession applies the stylist redirect after a session resolution or
// login and returns the resulting page.
func (r *Router) ApplySession(user *model.Profile) Page {
	if next := DeriveInitialPage(user, r.current); next != r.current {
		r.current = next
		telemetry.TrackNavigation(string(next))
	}
	return r.current
}

// View selects what to render for user.
func (r *Router) View(user *model.Profile) View {
	return Select(r.current, r.selected, user)
}

// DeriveInitialPage is the redirect rule: a stylist session always lands on
// the dashboard, anything else keeps the requested page.
func DeriveInitialPage(user *model.Profile, requested Page) Page {
	if user.IsStylist() {
		return Dashboard
	}
	return requested
}
