package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme
type Theme struct {
	Primary    lipgloss.Color
	Assistant  lipgloss.Color
	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	Error      lipgloss.Color
	Background lipgloss.Color
}

// CurrentTheme is the theme used by the render helpers
var CurrentTheme = Theme{
	Primary:    lipgloss.Color("#00ff00"),
	Assistant:  lipgloss.Color("#5fafff"),
	Text:       lipgloss.Color("#ffffff"),
	TextMuted:  lipgloss.Color("#808080"),
	Error:      lipgloss.Color("#ff5f5f"),
	Background: lipgloss.Color("#000000"),
}

// SetTheme sets the current theme
func SetTheme(t Theme) {
	CurrentTheme = t
}

func label(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// UserLine renders a message typed by the user.
func UserLine(content string) string {
	return label(CurrentTheme.Primary).Render("you") + " " +
		lipgloss.NewStyle().Foreground(CurrentTheme.Text).Render(content)
}

// AssistantLine renders a model reply, indenting continuation lines under
// the label.
func AssistantLine(content string) string {
	prefix := label(CurrentTheme.Assistant).Render("llm")
	indent := strings.Repeat(" ", lipgloss.Width(prefix)+1)
	body := strings.ReplaceAll(content, "\n", "\n"+indent)
	return prefix + " " + lipgloss.NewStyle().Foreground(CurrentTheme.Text).Render(body)
}

// Status renders muted informational text such as the responding indicator.
func Status(content string) string {
	return lipgloss.NewStyle().Italic(true).Foreground(CurrentTheme.TextMuted).Render(content)
}

// ErrorLine renders an error for the terminal.
func ErrorLine(content string) string {
	return label(CurrentTheme.Error).Render("error") + " " + content
}

// Heading renders a section title in listings.
func Heading(content string) string {
	return label(CurrentTheme.Primary).Underline(true).Render(content)
}
