package dialog

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const entryKey = "EntryElement"

// EntryElement is a single-line text entry row. Its input starts at the
// section's shared caption offset.
type EntryElement struct {
	element

	value       string
	placeholder string
	keyboard    KeyboardKind
	password    bool

	input *textinput.Model
	host  Host

	// OnValueChanged is called when editing ends.
	OnValueChanged func(Element)
}

// NewEntryElement creates a single-line entry row.
func NewEntryElement(caption, placeholder, value string) *EntryElement {
	return &EntryElement{
		element:     element{caption: caption},
		placeholder: placeholder,
		value:       value,
	}
}

// NewPasswordElement creates an entry row whose input is masked.
func NewPasswordElement(caption, placeholder, value string) *EntryElement {
	e := NewEntryElement(caption, placeholder, value)
	e.password = true
	return e
}

// EntryCaption implements EntryStyle.
func (e *EntryElement) EntryCaption() string { return e.caption }

// SetCaption changes the caption and drops the section's cached alignment.
func (e *EntryElement) SetCaption(caption string) {
	e.caption = caption
	if e.section != nil {
		e.section.InvalidateAlignment()
	}
}

func (e *EntryElement) Value() string { return e.value }

// SetValue replaces the value and updates a live input.
func (e *EntryElement) SetValue(v string) {
	e.value = v
	if e.input != nil {
		e.input.SetValue(v)
	}
}

func (e *EntryElement) Summary() string {
	if e.password {
		return ""
	}
	return e.value
}

func (e *EntryElement) Placeholder() string { return e.placeholder }

func (e *EntryElement) SetPlaceholder(p string) {
	e.placeholder = p
	if e.input != nil {
		e.input.Placeholder = p
	}
}

func (e *EntryElement) Keyboard() KeyboardKind { return e.keyboard }

func (e *EntryElement) SetKeyboard(k KeyboardKind) { e.keyboard = k }

func (e *EntryElement) Cell(host Host) (*Cell, error) {
	e.host = host
	cell := host.DequeueCell(entryKey)
	if cell == nil {
		cell = NewCell(entryKey)
	}
	geo, err := AlignmentResolver{Measurer: host.Measurer()}.Resolve(e.section)
	if err != nil {
		return nil, err
	}
	if e.input == nil {
		in := textinput.New()
		in.Prompt = ""
		in.SetValue(e.value)
		if e.password {
			in.EchoMode = textinput.EchoPassword
		}
		e.input = &in
	}
	e.input.Width = max(Columns(host.ContentWidth()-geo.Offset), 1)
	e.input.Placeholder = e.placeholder

	cell.Caption = e.caption
	cell.Indent = geo.Offset
	cell.Content = inputView{e.input}
	return cell, nil
}

type inputView struct{ in *textinput.Model }

func (v inputView) View() string { return v.in.View() }

func (e *EntryElement) Selected(host Host, path IndexPath) {
	e.RequestFocus(true)
	host.DeselectRow(path, true)
}

func (e *EntryElement) Focused() bool { return e.input != nil && e.input.Focused() }

// RequestFocus scrolls the row into view and focuses its input.
func (e *EntryElement) RequestFocus(animated bool) {
	if e.host == nil {
		return
	}
	if path, ok := PathOf(e); ok {
		e.host.ScrollToRow(path, ScrollMiddle, animated)
	}
	if e.input != nil {
		e.input.Focus()
	}
}

func (e *EntryElement) ReleaseFocus(animated bool) {
	if e.host == nil {
		return
	}
	if path, ok := PathOf(e); ok {
		e.host.ScrollToRow(path, ScrollMiddle, animated)
	}
	e.Blur()
}

// Blur ends editing, storing the input's text.
func (e *EntryElement) Blur() {
	if !e.Focused() {
		return
	}
	e.input.Blur()
	e.value = e.input.Value()
	if e.OnValueChanged != nil {
		e.OnValueChanged(e)
	}
}

func (e *EntryElement) HandleMsg(msg tea.Msg) tea.Cmd {
	if !e.Focused() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			e.Blur()
			return nil
		}
		if key.Type == tea.KeyRunes {
			runes := key.Runes[:0:0]
			for _, r := range key.Runes {
				if e.keyboard.Accepts(r) {
					runes = append(runes, r)
				}
			}
			if len(runes) == 0 {
				return nil
			}
			key.Runes = runes
			msg = key
		}
	}
	var cmd tea.Cmd
	*e.input, cmd = e.input.Update(msg)
	e.value = e.input.Value()
	return cmd
}

func (e *EntryElement) Dispose() {
	e.host = nil
	e.input = nil
}
