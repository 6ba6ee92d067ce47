package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"myhair/internal/catalog"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"
	"myhair/internal/router"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type detailLoadedMsg struct {
	id     int
	detail *model.StylistDetail
	err    error
}

func loadDetailCmd(d deps, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := d.api.Stylist(d.ctx, id)
		return detailLoadedMsg{id: id, detail: detail, err: err}
	}
}

type subscribedMsg struct {
	on  bool
	err error
}

type commentedMsg struct {
	err error
}

type profilePage struct {
	deps
	id      int
	width   int
	detail  *model.StylistDetail
	loading bool
	err     string

	comment    textinput.Model
	commenting bool
}

func newProfilePage(d deps, id, width int) profilePage {
	ti := textinput.New()
	ti.Placeholder = "Leave a comment"
	ti.CharLimit = 500
	return profilePage{deps: d, id: id, width: width, loading: true, comment: ti}
}

func (m profilePage) Init() tea.Cmd {
	return loadDetailCmd(m.deps, m.id)
}

func (m profilePage) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case detailLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var apiErr *apperrors.APIError
			if errors.As(msg.err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				m.err = "Stylist not found"
			} else {
				m.err = apperrors.Reason(msg.err)
			}
			return m, nil
		}
		m.detail = msg.detail

	case subscribedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		if m.detail != nil {
			m.detail.IsSubscribed = msg.on
			if msg.on {
				m.detail.SubscriberCount++
			} else if m.detail.SubscriberCount > 0 {
				m.detail.SubscriberCount--
			}
		}
		if msg.on {
			return m, notify("You now follow this stylist.")
		}
		return m, notify("You no longer follow this stylist.")

	case commentedMsg:
		if msg.err != nil {
			return m, notifyErr(apperrors.Reason(msg.err))
		}
		return m, tea.Batch(notify("Thanks for your comment!"), loadDetailCmd(m.deps, m.id))

	case tea.KeyMsg:
		if m.commenting {
			return m.updateComment(msg)
		}
		if key.Matches(msg, listKeys.Back) {
			return m, navigate(router.Search)
		}
		if m.detail == nil {
			return m, nil
		}
		switch msg.String() {
		case "b":
			if m.user == nil {
				return m, navigate(router.Login)
			}
			return m, navigate(router.Reservation, m.detail.ID)
		case "f":
			if m.user == nil {
				return m, navigate(router.Login)
			}
			return m, m.subscribe(!m.detail.IsSubscribed)
		case "c":
			if m.user == nil {
				return m, notifyErr("Log in to leave a comment.")
			}
			m.commenting = true
			cmd := m.comment.Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m profilePage) updateComment(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.comment.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.comment.Value())
		if text == "" {
			return m, nil
		}
		m.commenting = false
		m.comment.Blur()
		m.comment.SetValue("")
		d, id := m.deps, m.id
		return m, func() tea.Msg { return commentedMsg{err: d.api.Comment(d.ctx, id, text)} }
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m profilePage) subscribe(on bool) tea.Cmd {
	d, id := m.deps, m.id
	return func() tea.Msg {
		return subscribedMsg{on: on, err: d.api.Subscribe(d.ctx, id, on)}
	}
}

func (m profilePage) View() string {
	if m.loading {
		return subtleStyle.Render("Loading profile...")
	}
	if m.err != "" {
		return errorStyle.Render(m.err) + "\n" + subtleStyle.Render("esc: back to search")
	}
	s := m.detail

	var b strings.Builder
	b.WriteString(titleStyle.Render(catalog.DisplayName(s.Name)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · %s  %s  %s\n", s.Category, s.City,
		ratingStyle.Render(fmt.Sprintf("★ %.1f", s.Rating)), queueLabel(s.Waiting, s.Capacity)))
	if s.Address != "" {
		b.WriteString(subtleStyle.Render(s.Address))
		b.WriteString("\n")
	}
	follow := "Follow"
	if s.IsSubscribed {
		follow = "Following"
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d followers · %s", s.SubscriberCount, follow)))
	b.WriteString("\n\n")

	if desc := renderMarkdown(s.Description, m.width-4); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	if len(s.Menu) > 0 || len(s.Services) > 0 {
		b.WriteString(sectionStyle.Render("Menu"))
		b.WriteString("\n")
		for _, item := range s.Menu {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s  %.2f€", item.Name, item.Price)))
			b.WriteString("\n")
		}
		for _, svc := range s.Services {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s  %.2f€", svc.Name, svc.Price)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.Feed) > 0 {
		b.WriteString(sectionStyle.Render("Portfolio"))
		b.WriteString("\n")
		for _, p := range s.Feed {
			post := renderMarkdown(p.Text, m.width-8)
			meta := subtleStyle.Render(fmt.Sprintf("%s · ♥ %d · %d comments", p.CreatedAt, p.Likes, len(p.Comments)))
			b.WriteString(cardStyle.Render(post + "\n" + meta))
			b.WriteString("\n")
		}
	}

	if m.commenting {
		b.WriteString(m.comment.View())
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter: send • esc: cancel"))
		return b.String()
	}
	b.WriteString(subtleStyle.Render("b: book • f: follow • c: comment • esc: back"))
	return b.String()
}
