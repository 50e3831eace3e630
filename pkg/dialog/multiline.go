package dialog

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMultilineHeight is the row height of a new MultilineEntryElement.
const DefaultMultilineHeight = 112

const multilineKey = "MultilineEntryElement"

// MultilineEntryElement is an entry row for multi-line text.
//
// Its EditingSurface is created the first time the row is displayed and kept
// for the row's lifetime; each display call attaches it to whatever cell the
// host hands out. A focus request made before the surface exists is remembered
// and honoured on the next display.
type MultilineEntryElement struct {
	EntryElement

	font           Font
	height         float64
	capitalization Capitalization
	correction     Correction

	surface       *EditingSurface
	captionHeight float64
	host          Host
	pendingFocus  bool

	// Changed is called whenever the value changes through the surface.
	Changed func(Element)
	// ShouldReturn is consulted by nothing yet; it is kept so callers can
	// declare return-key behaviour ahead of it being wired.
	ShouldReturn func() bool
}

// NewMultilineEntryElement creates a multi-line entry row.
func NewMultilineEntryElement(caption, value string) *MultilineEntryElement {
	return &MultilineEntryElement{
		EntryElement:   EntryElement{element: element{caption: caption}, value: value},
		font:           SystemFont,
		height:         DefaultMultilineHeight,
		capitalization: CapitalizeSentences,
		correction:     CorrectionDefault,
	}
}

// ReuseKey is the cell pool key used by multi-line rows.
func (m *MultilineEntryElement) ReuseKey() string { return multilineKey }

func (m *MultilineEntryElement) Summary() string { return m.value }

// Matches reports whether the value or caption contains text, ignoring case.
func (m *MultilineEntryElement) Matches(text string) bool {
	return containsFold(m.value, text) || m.EntryElement.Matches(text)
}

// Height implements Sizer.
func (m *MultilineEntryElement) Height() float64 { return m.height }

func (m *MultilineEntryElement) SetHeight(h float64) {
	m.height = h
	if m.surface != nil {
		f := m.surface.Frame()
		f.Height = m.captionHeight + h
		m.surface.SetFrame(f)
	}
}

func (m *MultilineEntryElement) Font() Font { return m.font }

func (m *MultilineEntryElement) SetFont(f Font) {
	m.font = f
	if m.surface != nil {
		m.surface.SetFont(f)
	}
}

func (m *MultilineEntryElement) SetPlaceholder(p string) {
	m.placeholder = p
	if m.surface != nil {
		m.surface.SetPlaceholder(p)
	}
}

func (m *MultilineEntryElement) SetKeyboard(k KeyboardKind) {
	m.keyboard = k
	if m.surface != nil {
		m.surface.SetKeyboard(k)
	}
}

func (m *MultilineEntryElement) Capitalization() Capitalization { return m.capitalization }

func (m *MultilineEntryElement) SetCapitalization(c Capitalization) {
	m.capitalization = c
	if m.surface != nil {
		m.surface.SetCapitalization(c)
	}
}

func (m *MultilineEntryElement) Correction() Correction { return m.correction }

func (m *MultilineEntryElement) SetCorrection(c Correction) {
	m.correction = c
	if m.surface != nil {
		m.surface.SetCorrection(c)
	}
}

// SetValue replaces the value and the text of a live surface.
func (m *MultilineEntryElement) SetValue(v string) {
	m.value = v
	if m.surface != nil {
		m.surface.SetText(v)
	}
}

// Surface returns the row's editing surface, nil until first displayed.
func (m *MultilineEntryElement) Surface() *EditingSurface { return m.surface }

// FocusPending reports whether a focus request is waiting for a surface.
func (m *MultilineEntryElement) FocusPending() bool { return m.pendingFocus }

func (m *MultilineEntryElement) Cell(host Host) (*Cell, error) {
	m.host = host

	geo, err := AlignmentResolver{Measurer: host.Measurer()}.Resolve(m.section)
	if err != nil {
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			ce.Element = m.caption
		}
		return nil, err
	}

	cell := host.DequeueCell(multilineKey)
	if cell == nil {
		cell = NewCell(multilineKey)
	}

	if m.surface == nil {
		m.createSurface(host, geo)
	}

	if m.pendingFocus {
		m.surface.Focus()
		m.pendingFocus = false
	}

	m.surface.SetKeyboard(m.keyboard)
	m.surface.SetPlaceholder(m.placeholder)
	m.surface.SetCapitalization(m.capitalization)
	m.surface.SetCorrection(m.correction)

	cell.Caption = m.caption
	cell.Indent = geo.Offset
	cell.Stacked = true
	cell.Attach(m.surface)
	return cell, nil
}

// createSurface sizes the frame from the section geometry in effect on first
// display. Later alignment changes move the caption but not the frame.
func (m *MultilineEntryElement) createSurface(host Host, geo Geometry) {
	m.captionHeight = geo.MinHeight

	s := NewEditingSurface(Frame{Width: host.ContentWidth(), Height: geo.MinHeight + m.height}, m.value)
	s.SetFont(m.font)
	s.SetAccessory(&AccessoryBar{
		Label:  "Done",
		Keys:   []string{"esc", "ctrl+d"},
		Action: s.Blur,
	})
	s.OnChanged = m.FetchValue
	s.OnEnded = func() {
		m.FetchValue()
		if m.OnValueChanged != nil {
			m.OnValueChanged(m)
		}
	}
	s.OnStarted = func() {
		s.SetReturnKey(ReturnKeyDefault)
	}
	m.surface = s

	slog.Debug("multiline surface created", "caption", m.caption, "lines", Lines(s.Frame().Height))
}

// FetchValue copies the surface text into the value and fires Changed when
// it differs.
func (m *MultilineEntryElement) FetchValue() {
	if m.surface == nil {
		return
	}
	text := m.surface.Text()
	if text == m.value {
		return
	}
	m.value = text
	if m.Changed != nil {
		m.Changed(m)
	}
}

// RequestFocus asks for input focus. Without a host the request waits for the
// next display; otherwise the row is scrolled to and focused right away.
func (m *MultilineEntryElement) RequestFocus(animated bool) {
	m.pendingFocus = true
	if m.host == nil {
		return
	}
	if path, ok := PathOf(m); ok {
		m.host.ScrollToRow(path, ScrollMiddle, animated)
	}
	if m.surface != nil {
		m.surface.Focus()
		m.pendingFocus = false
	}
}

// ReleaseFocus cancels a pending request and resigns focus.
func (m *MultilineEntryElement) ReleaseFocus(animated bool) {
	m.pendingFocus = false
	if m.host == nil {
		return
	}
	if path, ok := PathOf(m); ok {
		m.host.ScrollToRow(path, ScrollMiddle, animated)
	}
	if m.surface != nil {
		m.surface.Blur()
	}
}

func (m *MultilineEntryElement) Focused() bool {
	return m.surface != nil && m.surface.Focused()
}

func (m *MultilineEntryElement) Blur() {
	if m.surface != nil {
		m.surface.Blur()
	}
}

func (m *MultilineEntryElement) HandleMsg(msg tea.Msg) tea.Cmd {
	if m.surface == nil {
		return nil
	}
	return m.surface.Update(msg)
}

func (m *MultilineEntryElement) Selected(host Host, path IndexPath) {
	m.RequestFocus(true)
	host.DeselectRow(path, true)
}

func (m *MultilineEntryElement) Dispose() {
	m.host = nil
	if m.surface != nil {
		m.surface.Release()
		m.surface = nil
		slog.Debug("multiline surface released", "caption", m.caption)
	}
}
