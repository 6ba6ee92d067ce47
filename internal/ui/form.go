package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldSpec declares one input of a form.
type fieldSpec struct {
	name        string
	label       string
	placeholder string
	value       string
	required    bool
	secret      bool
	limit       int
}

type formField struct {
	fieldSpec
	input textinput.Model
}

// form is a vertical stack of text inputs with tab navigation. Enter on the
// last field, or on any field when every required field is filled, reports
// submitted.
type form struct {
	fields []formField
	focus  int
}

func newForm(specs ...fieldSpec) form {
	f := form{fields: make([]formField, len(specs))}
	for i, s := range specs {
		ti := textinput.New()
		ti.Placeholder = s.placeholder
		ti.Prompt = ""
		ti.Width = 40
		if s.limit > 0 {
			ti.CharLimit = s.limit
		}
		if s.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if s.value != "" {
			ti.SetValue(s.value)
		}
		f.fields[i] = formField{fieldSpec: s, input: ti}
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// Update handles navigation and forwards everything else to the focused
// input. submitted is true when the user asked to submit.
func (f form) Update(msg tea.Msg) (form, tea.Cmd, bool) {
	if len(f.fields) == 0 {
		return f, nil, false
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, formKeys.Next):
			return f.move(1), nil, false
		case key.Matches(msg, formKeys.Prev):
			return f.move(-1), nil, false
		case key.Matches(msg, formKeys.Submit):
			if f.focus < len(f.fields)-1 && len(f.Missing()) > 0 {
				return f.move(1), nil, false
			}
			return f, nil, true
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, false
}

func (f form) move(step int) form {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + step + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
	return f
}

// Value returns the trimmed value of the named field.
func (f form) Value(name string) string {
	for _, fld := range f.fields {
		if fld.name == name {
			return strings.TrimSpace(fld.input.Value())
		}
	}
	return ""
}

// SetValue replaces the value of the named field.
func (f form) SetValue(name, value string) form {
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields[i].input.SetValue(value)
		}
	}
	return f
}

// Missing lists the labels of required fields left empty.
func (f form) Missing() []string {
	var out []string
	for _, fld := range f.fields {
		if fld.required && strings.TrimSpace(fld.input.Value()) == "" {
			out = append(out, fld.label)
		}
	}
	return out
}

// Validate returns a user-facing error for missing required fields.
func (f form) Validate() error {
	if missing := f.Missing(); len(missing) > 0 {
		return fmt.Errorf("Please fill in: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (f form) View() string {
	var rows []string
	for i, fld := range f.fields {
		label := fld.label
		if fld.required {
			label += " *"
		}
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), fld.input.View()))
	}
	return strings.Join(rows, "\n")
}
