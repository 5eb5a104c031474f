package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"edura/internal/ui/theme"
)

// Field describes one input. Key matches the json tag of the struct the form
// is validated against.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
	Limit       int
}

// SubmitMsg is emitted when enter is pressed on the last field.
type SubmitMsg struct {
	ID     string
	Values map[string]string
}

// Form is a vertical stack of text inputs with inline errors.
type Form struct {
	id     string
	title  string
	fields []Field
	inputs []textinput.Model
	focus  int
	errs   map[string]string
	width  int
}

func New(id, title string, fields []Field) Form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		if f.Limit > 0 {
			ti.CharLimit = f.Limit
		}
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	return Form{id: id, title: title, fields: fields, inputs: inputs}
}

func (f Form) ID() string { return f.id }

// Focus focuses the current field and returns its blink command.
func (f *Form) Focus() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *Form) SetWidth(w int) {
	f.width = w
	for i := range f.inputs {
		f.inputs[i].Width = max(w-4, 10)
	}
}

// Values returns the trimmed input of every field. Secret fields keep their
// exact value.
func (f Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, field := range f.fields {
		v := f.inputs[i].Value()
		if !field.Secret {
			v = strings.TrimSpace(v)
		}
		out[field.Key] = v
	}
	return out
}

func (f *Form) SetValue(key, value string) {
	for i, field := range f.fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
		}
	}
}

// SetErrors replaces the inline messages. Focus moves to the first field
// with an error.
func (f *Form) SetErrors(errs map[string]string) tea.Cmd {
	f.errs = errs
	for i, field := range f.fields {
		if _, ok := errs[field.Key]; ok {
			f.focus = i
			return f.Focus()
		}
	}
	return nil
}

func (f Form) Errors() map[string]string { return f.errs }

// Reset clears every input and message.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errs = nil
	f.focus = 0
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % len(f.inputs)
			return f, f.Focus()
		case "shift+tab", "up":
			f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
			return f, f.Focus()
		case "enter":
			if f.focus < len(f.inputs)-1 {
				f.focus++
				return f, f.Focus()
			}
			id, values := f.id, f.Values()
			return f, func() tea.Msg { return SubmitMsg{ID: id, Values: values} }
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f Form) View(th theme.Theme) string {
	var sb strings.Builder
	if f.title != "" {
		sb.WriteString(th.Title.Render(f.title) + "\n\n")
	}
	if msg, ok := f.errs[""]; ok {
		sb.WriteString(th.Bad.Render(msg) + "\n\n")
	}
	for i, field := range f.fields {
		label := field.Label
		if i == f.focus {
			label = th.Hot.Render("› " + label)
		} else {
			label = th.Muted.Render("  " + label)
		}
		sb.WriteString(label + "\n")
		sb.WriteString("  " + f.inputs[i].View() + "\n")
		if msg, ok := f.errs[field.Key]; ok {
			sb.WriteString("  " + th.Bad.Render(msg) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
