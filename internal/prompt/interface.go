// Package prompt defines the narrow port behind which all interactive input
// lives, so the stores and the sync engine stay testable with injected,
// non-interactive implementations.
package prompt

// Prompter asks the user for input.
type Prompter interface {
	// Input asks for a single line of text; value is the prefilled default.
	Input(title, value string) (string, error)

	// Password asks for a secret without echoing it.
	Password(title string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string) (bool, error)
}
