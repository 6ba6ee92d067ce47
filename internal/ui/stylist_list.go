package ui

import (
	"fmt"
	"strings"

	"myhair/internal/catalog"
	"myhair/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// stylistList is the cursor list shared by the home, search and map pages.
type stylistList struct {
	items  []model.Stylist
	extra  map[int]string
	cursor int
	empty  string
}

func newStylistList(empty string) stylistList {
	return stylistList{empty: empty}
}

// SetItems replaces the rows and keeps the cursor in range.
func (l stylistList) SetItems(items []model.Stylist) stylistList {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = max(0, len(items)-1)
	}
	return l
}

// SetExtra attaches a trailing annotation per stylist id, e.g. a distance.
func (l stylistList) SetExtra(extra map[int]string) stylistList {
	l.extra = extra
	return l
}

// Selected returns the stylist under the cursor.
func (l stylistList) Selected() (model.Stylist, bool) {
	if len(l.items) == 0 {
		return model.Stylist{}, false
	}
	return l.items[l.cursor], true
}

// Update moves the cursor. open is true when the user picked a row.
func (l stylistList) Update(msg tea.KeyMsg) (stylistList, bool) {
	switch {
	case key.Matches(msg, listKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, listKeys.Down):
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
	case key.Matches(msg, listKeys.Open):
		_, ok := l.Selected()
		return l, ok
	}
	return l, false
}

func (l stylistList) View() string {
	if len(l.items) == 0 {
		return subtleStyle.Render(l.empty)
	}
	var b strings.Builder
	for i, s := range l.items {
		line := fmt.Sprintf("%s · %s · %s  %s  %s",
			catalog.DisplayName(s.Name), s.Category, s.City,
			ratingStyle.Render(fmt.Sprintf("★ %.1f", s.Rating)),
			queueLabel(s.Waiting, s.Capacity))
		if extra, ok := l.extra[s.ID]; ok {
			line += "  " + subtleStyle.Render(extra)
		}
		if i == l.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func queueLabel(waiting, capacity int) string {
	label := fmt.Sprintf("%d waiting", waiting)
	if capacity > 0 {
		label = fmt.Sprintf("%d/%d waiting", waiting, capacity)
	}
	if waiting >= catalog.BusyThreshold {
		return errorStyle.Render(label)
	}
	return okStyle.Render(label)
}
