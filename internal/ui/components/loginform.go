// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/authcode-tui/internal/model"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN FORM COMPONENT - Username, password, and activation digits
// =============================================================================

// Form field indices.
const (
	fieldUsername = iota
	fieldPassword
	fieldDigits
	fieldCount
)

// LoginSubmitMsg is emitted when the user submits a complete form.
type LoginSubmitMsg struct {
	Creds  model.Credentials
	Digits string
}

// LoginForm collects the username, password, and activation digits.
type LoginForm struct {
	inputs  []textinput.Model
	focused int
	errMsg  string
	theme   *styles.Theme
}

// NewLoginForm creates a login form with focus on the username field.
func NewLoginForm(theme *styles.Theme) *LoginForm {
	inputs := make([]textinput.Model, fieldCount)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Prompt = "> "
	username.PromptStyle = theme.InputPrompt
	username.PlaceholderStyle = theme.InputPlaceholder
	username.Focus()
	inputs[fieldUsername] = username

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.Prompt = "> "
	password.PromptStyle = theme.InputPrompt
	password.PlaceholderStyle = theme.InputPlaceholder
	// SECURITY: mask the password as it is typed
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	digits := textinput.New()
	digits.Placeholder = "activation digits"
	digits.CharLimit = 16
	digits.Width = 32
	digits.Prompt = "> "
	digits.PromptStyle = theme.InputPrompt
	digits.PlaceholderStyle = theme.InputPlaceholder
	inputs[fieldDigits] = digits

	return &LoginForm{
		inputs: inputs,
		theme:  theme,
	}
}

// Prefill sets the username field, for re-login after session expiry.
func (f *LoginForm) Prefill(username string) {
	f.inputs[fieldUsername].SetValue(username)
	if username != "" {
		f.focusField(fieldPassword)
	}
}

// SetError shows an inline error line under the form.
func (f *LoginForm) SetError(msg string) {
	f.errMsg = msg
}

// Reset clears all fields and errors.
func (f *LoginForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errMsg = ""
	f.focusField(fieldUsername)
}

// Values returns the current form contents.
func (f *LoginForm) Values() (model.Credentials, string) {
	return model.Credentials{
		Username: strings.TrimSpace(f.inputs[fieldUsername].Value()),
		Password: f.inputs[fieldPassword].Value(),
	}, strings.TrimSpace(f.inputs[fieldDigits].Value())
}

// Update handles key events: tab/shift+tab and up/down move focus, enter
// advances and submits from the last field.
func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focusField((f.focused + 1) % fieldCount)
			return nil
		case "shift+tab", "up":
			f.focusField((f.focused + fieldCount - 1) % fieldCount)
			return nil
		case "enter":
			if f.focused < fieldCount-1 {
				f.focusField(f.focused + 1)
				return nil
			}
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// submit validates the form and emits LoginSubmitMsg, or sets an inline
// error and moves focus to the offending field.
func (f *LoginForm) submit() tea.Cmd {
	creds, digits := f.Values()

	if creds.Username == "" {
		f.errMsg = "username is required"
		f.focusField(fieldUsername)
		return nil
	}
	if creds.Password == "" {
		f.errMsg = "password is required"
		f.focusField(fieldPassword)
		return nil
	}
	if digits == "" {
		f.errMsg = "activation digits are required"
		f.focusField(fieldDigits)
		return nil
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			f.errMsg = "activation digits must be numeric"
			f.focusField(fieldDigits)
			return nil
		}
	}

	f.errMsg = ""
	return func() tea.Msg {
		return LoginSubmitMsg{Creds: creds, Digits: digits}
	}
}

func (f *LoginForm) focusField(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.inputs[f.focused].Focus()
}

// View renders the form inside its container.
func (f *LoginForm) View() string {
	labels := []string{"Username", "Password", "Digits"}

	var sb strings.Builder
	sb.WriteString(f.theme.InputPrompt.Render("Sign in"))
	sb.WriteString("\n\n")
	for i, input := range f.inputs {
		sb.WriteString(f.theme.InputLabel.Render(labels[i]))
		sb.WriteString(input.View())
		sb.WriteString("\n")
	}

	if f.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.RenderError(f.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(f.theme.InputHint.Render("tab: next field  enter: submit  ctrl+c: quit"))

	return f.theme.InputContainer.Render(sb.String())
}
