package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Element is one row of a section.
type Element interface {
	Caption() string
	// Summary is the row's value as shown outside the form, e.g. in listings.
	Summary() string
	Matches(text string) bool
	// Cell returns the visual cell the host should draw for this row.
	Cell(host Host) (*Cell, error)
	// Selected is called when the user activates the row at path.
	Selected(host Host, path IndexPath)
	// Dispose releases any views the row holds. It is safe to call repeatedly.
	Dispose()
	Section() *Section

	setSection(s *Section)
}

// Sizer is implemented by rows with a fixed height, in layout units.
type Sizer interface {
	Height() float64
}

// Focuser is implemented by rows that can take input focus.
type Focuser interface {
	RequestFocus(animated bool)
	ReleaseFocus(animated bool)
}

// Editor is implemented by rows owning a live editing surface. Hosts route
// input to the focused editor.
type Editor interface {
	Element
	Focused() bool
	HandleMsg(msg tea.Msg) tea.Cmd
	// Blur drops focus without scrolling.
	Blur()
}

// IndexPath addresses a row inside a root element.
type IndexPath struct {
	Section int
	Row     int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("%d/%d", p.Section, p.Row)
}

// PathOf returns the index path of e within its root element.
func PathOf(e Element) (IndexPath, bool) {
	s := e.Section()
	if s == nil || s.root == nil {
		return IndexPath{}, false
	}
	return s.root.IndexPath(e)
}

// element holds what every row shares.
type element struct {
	caption string
	section *Section
}

func (e *element) Caption() string { return e.caption }

func (e *element) Section() *Section { return e.section }

func (e *element) setSection(s *Section) { e.section = s }

// Matches reports whether the caption contains text, ignoring case.
func (e *element) Matches(text string) bool {
	return containsFold(e.caption, text)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// StringElement is a read-only caption/value row.
type StringElement struct {
	element
	Value string
}

// NewStringElement creates a read-only row.
func NewStringElement(caption, value string) *StringElement {
	return &StringElement{element: element{caption: caption}, Value: value}
}

const stringKey = "StringElement"

func (e *StringElement) Summary() string { return e.Value }

func (e *StringElement) Matches(text string) bool {
	return containsFold(e.Value, text) || e.element.Matches(text)
}

func (e *StringElement) Cell(host Host) (*Cell, error) {
	cell := host.DequeueCell(stringKey)
	if cell == nil {
		cell = NewCell(stringKey)
		cell.Background = Appearance.Background
	}
	cell.Caption = e.caption
	cell.Detail = e.Value
	return cell, nil
}

func (e *StringElement) Selected(host Host, path IndexPath) {
	host.DeselectRow(path, true)
}

func (e *StringElement) Dispose() {}
