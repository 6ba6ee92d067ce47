package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	"github.com/muesli/termenv"
)

// sanitizer strips any HTML a stylist typed into a description or post.
var sanitizer = bluemonday.StrictPolicy()

// renderMarkdown renders user-supplied text for the terminal. It never
// fails: on renderer errors the sanitized text is returned as is.
func renderMarkdown(text string, width int) string {
	clean := strings.TrimSpace(sanitizer.Sanitize(text))
	if clean == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	style := "dark"
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return clean
	}
	out, err := r.Render(clean)
	if err != nil {
		return clean
	}
	return strings.TrimRight(out, "\n")
}
