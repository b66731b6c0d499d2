// Package tui holds the shared terminal styling and the huh-backed
// implementation of the prompt port.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"

	"github.com/txgo/txgo/internal/prompt"
)

// Prompter asks through huh forms on the controlling terminal.
type Prompter struct {
	theme *huh.Theme
}

var _ prompt.Prompter = (*Prompter)(nil)

// NewPrompter creates a Prompter with the shared theme.
func NewPrompter() *Prompter {
	return &Prompter{theme: NewHuhTheme()}
}

// Input asks for a single line of text; value is the prefilled default.
func (p *Prompter) Input(title, value string) (string, error) {
	answer := value

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&answer),
		),
	).
		WithTheme(p.theme).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return "", err
	}

	return answer, nil
}

// Password asks for a secret without echoing it.
func (p *Prompter) Password(title string) (string, error) {
	answer := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&answer),
		),
	).
		WithTheme(p.theme).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return "", err
	}

	return answer, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(title string) (bool, error) {
	answer := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).
		WithTheme(p.theme).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return false, err
	}

	return answer, nil
}
