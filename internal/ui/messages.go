package ui

import (
	"context"

	"myhair/internal/model"
	"myhair/internal/router"
	"myhair/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// navigateMsg asks the app to move to another page.
type navigateMsg struct {
	page router.Page
	id   []int // empty keeps the current selection
}

func navigate(page router.Page, id ...int) tea.Cmd {
	msg := navigateMsg{page: page, id: id}
	return func() tea.Msg { return msg }
}

// statusMsg is a one-line notice shown under the page.
type statusMsg struct {
	text string
	err  bool
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, err: true} }
}

type sessionResolvedMsg struct {
	snap session.Snapshot
}

// sessionChangedMsg is pushed by the store on any change, see App.Watch.
type sessionChangedMsg struct {
	snap session.Snapshot
}

type loginDoneMsg struct {
	res session.Result
}

type logoutDoneMsg struct{}

type refreshDoneMsg struct {
	before, after *model.Profile
}

// loginRequestMsg is sent by the login page; the app owns the store.
type loginRequestMsg struct {
	email, password string
}

func restoreCmd(ctx context.Context, store *session.Store) tea.Cmd {
	return func() tea.Msg {
		_ = store.Restore(ctx)
		return sessionResolvedMsg{snap: store.Snapshot()}
	}
}

func loginCmd(ctx context.Context, store *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{res: store.Login(ctx, email, password)}
	}
}

func logoutCmd(ctx context.Context, store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func refreshCmd(ctx context.Context, store *session.Store) tea.Cmd {
	return func() tea.Msg {
		before := store.User()
		store.Refresh(ctx)
		return refreshDoneMsg{before: before, after: store.User()}
	}
}
