package tui

import (
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme shared by all interactive forms.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()

	purple := lipgloss.Color("#7D56F4")
	theme.Focused.Title = theme.Focused.Title.Foreground(purple).Bold(true)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(purple)
	theme.Focused.TextInput.Cursor = theme.Focused.TextInput.Cursor.Foreground(purple)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(purple)

	return theme
}
