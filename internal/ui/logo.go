package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const asciiLogo = `
  __  __       _    _       _
 |  \/  |_   _| |  | | __ _(_)_ __
 | |\/| | | | | |__| |/ _' | | '__|
 | |  | | |_| |  __  | (_| | | |
 |_|  |_|\__, |_|  |_|\__,_|_|_|
         |___/
`

// Pink to violet, one color per line.
var logoColors = []string{"#FF5FAF", "#FF5FD7", "#FF5FFF", "#D75FFF", "#AF5FFF", "#875FFF"}

var (
	logoOnce     sync.Once
	renderedLogo string
)

// Logo returns the banner shown above the home page.
func Logo() string {
	logoOnce.Do(func() {
		lines := strings.Split(strings.Trim(asciiLogo, "\n"), "\n")
		colored := make([]string, 0, len(lines))
		for i, line := range lines {
			color := logoColors[len(logoColors)-1]
			if i < len(logoColors) {
				color = logoColors[i]
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
			colored = append(colored, style.Render(line))
		}
		renderedLogo = logoContainerStyle.Render(strings.Join(colored, "\n"))
	})
	return renderedLogo
}

var logoContainerStyle = lipgloss.NewStyle().
	MarginBottom(1).
	Padding(0, 1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(brand)
