package prompt

import "fmt"

// MockPrompter implements Prompter for testing. Answers are consumed in
// order; running out of scripted answers fails the calling code instead of
// blocking.
type MockPrompter struct {
	Inputs    []string
	Passwords []string
	Confirms  []bool

	// Hooks for testing error scenarios
	InputError    error
	PasswordError error
	ConfirmError  error

	// Recorded titles, in call order
	Calls []string
}

// NewMockPrompter creates a new MockPrompter
func NewMockPrompter() *MockPrompter {
	return &MockPrompter{}
}

func (m *MockPrompter) Input(title, value string) (string, error) {
	m.Calls = append(m.Calls, title)
	if m.InputError != nil {
		return "", m.InputError
	}
	if len(m.Inputs) == 0 {
		return "", fmt.Errorf("mock prompter: no scripted input for %q", title)
	}
	answer := m.Inputs[0]
	m.Inputs = m.Inputs[1:]
	if answer == "" {
		return value, nil
	}
	return answer, nil
}

func (m *MockPrompter) Password(title string) (string, error) {
	m.Calls = append(m.Calls, title)
	if m.PasswordError != nil {
		return "", m.PasswordError
	}
	if len(m.Passwords) == 0 {
		return "", fmt.Errorf("mock prompter: no scripted password for %q", title)
	}
	answer := m.Passwords[0]
	m.Passwords = m.Passwords[1:]
	return answer, nil
}

func (m *MockPrompter) Confirm(title string) (bool, error) {
	m.Calls = append(m.Calls, title)
	if m.ConfirmError != nil {
		return false, m.ConfirmError
	}
	if len(m.Confirms) == 0 {
		return false, fmt.Errorf("mock prompter: no scripted confirmation for %q", title)
	}
	answer := m.Confirms[0]
	m.Confirms = m.Confirms[1:]
	return answer, nil
}
