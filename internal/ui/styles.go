package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used across the TUI.

var (
	brand = lipgloss.Color("205") // Pink

	// Navbar and footer
	navbarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#C2185B")).
			Bold(true).
			Padding(0, 1)

	navItemStyle       = lipgloss.NewStyle().Padding(0, 1)
	navActiveItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(brand).
				Bold(true).
				Underline(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	// Page content
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brand).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	ratingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	// Lists
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(brand)

	// Forms
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(16)
	focusedLabelStyle = labelStyle.Foreground(brand).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)
