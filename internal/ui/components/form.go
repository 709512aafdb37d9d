// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gdinject/internal/ui/styles"
)

// =============================================================================
// FORM DIALOG
// =============================================================================

// FormResult is the outcome of a key press in a Form.
type FormResult int

const (
	FormPending FormResult = iota
	FormSubmitted
	FormCancelled
)

// Form is a modal dialog with one text input per label.
type Form struct {
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	err     string
	visible bool
	width   int
	theme   *styles.Theme
}

// NewForm creates a hidden form with the given field labels.
func NewForm(theme *styles.Theme, title string, labels ...string) *Form {
	f := &Form{
		title:  title,
		labels: labels,
		width:  44,
		theme:  theme,
	}
	for range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		ti.Width = f.width - 10
		ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Blue).Bold(true)
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// SetTitle changes the dialog title.
func (f *Form) SetTitle(title string) {
	f.title = title
}

// SetPlaceholder sets the placeholder of field i.
func (f *Form) SetPlaceholder(i int, text string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].Placeholder = text
	}
}

// Show opens the form with the given initial values and focuses the first field.
func (f *Form) Show(values ...string) tea.Cmd {
	f.visible = true
	f.err = ""
	for i := range f.inputs {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.inputs[i].SetValue(v)
		f.inputs[i].CursorEnd()
	}
	return f.focusField(0)
}

// Hide closes the form.
func (f *Form) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Visible reports whether the form is open.
func (f *Form) Visible() bool {
	return f.visible
}

// Values returns the current field values in label order.
func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// Focus returns the index of the focused field.
func (f *Form) Focus() int {
	return f.focus
}

// SetError shows msg under the fields; the form stays open.
func (f *Form) SetError(msg string) {
	f.err = msg
}

// Error returns the message set by SetError.
func (f *Form) Error() string {
	return f.err
}

// SetWidth sets the dialog width.
func (f *Form) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	f.width = width
	for i := range f.inputs {
		f.inputs[i].Width = width - 10
	}
}

func (f *Form) focusField(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// Update handles a message while the form is open. Tab and arrows move between
// fields, enter on the last field submits, esc cancels. Other keys go to the
// focused input.
func (f *Form) Update(msg tea.Msg) (FormResult, tea.Cmd) {
	if !f.visible {
		return FormPending, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			f.Hide()
			return FormCancelled, nil
		case "tab", "down":
			return FormPending, f.focusField(f.focus + 1)
		case "shift+tab", "up":
			return FormPending, f.focusField(f.focus - 1)
		case "enter":
			if f.focus < len(f.inputs)-1 {
				return FormPending, f.focusField(f.focus + 1)
			}
			return FormSubmitted, nil
		}
	}

	if len(f.inputs) == 0 {
		return FormPending, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return FormPending, cmd
}

// View renders the dialog.
func (f *Form) View() string {
	if !f.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(f.theme.DialogTitle.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		b.WriteString(f.theme.DialogLabel.Render(f.labels[i] + ":"))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString(f.theme.DialogError.Render(styles.StatusIndicators.Error + " " + f.err))
		b.WriteString("\n")
	}
	b.WriteString(f.theme.ShortcutDesc.Render("enter: save  esc: cancel  tab: next field"))

	return f.theme.Dialog.Width(f.width).Render(b.String())
}
