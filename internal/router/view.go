package router

import "myhair/internal/model"

// View is the page to render and the props it receives.
type View struct {
	Page Page
	// StylistID is the selected stylist. Only meaningful on pages that
	// need one; gating guarantees a selection was made.
	StylistID int
	User      *model.Profile
}

// Select is the page selection step. It is pure: the same inputs always
// give the same View.
//
// Gating: the dashboard needs a stylist session and falls back to login
// when logged out or home for a client; profile and reservation need a
// selected stylist and fall back to search; unknown pages render home.
func Select(page Page, selectedID *int, user *model.Profile) View {
	v := View{Page: page, User: user}
	if selectedID != nil {
		v.StylistID = *selectedID
	}

	switch page {
	case Dashboard:
		switch {
		case user == nil:
			v.Page = Login
		case !user.IsStylist():
			v.Page = Home
		}
	case Profile, Reservation:
		if selectedID == nil {
			v.Page = Search
		}
	case Home, Login, Signup, SignupClient, SignupCoiffeur, Search, Map, RequestMobile:
	default:
		v.Page = Home
	}
	return v
}
