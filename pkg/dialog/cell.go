package dialog

import "github.com/charmbracelet/lipgloss"

// View is anything a cell can draw in its content area.
type View interface {
	View() string
}

// attachable views remember the cell they are attached to, so attaching them
// somewhere else detaches them first.
type attachable interface {
	superview() *Cell
	setSuperview(c *Cell)
}

// SelectionStyle is how a host highlights a selected cell.
type SelectionStyle int

const (
	SelectionDefault SelectionStyle = iota
	SelectionNone
)

// ScrollPosition is where a host should place a row it scrolls to.
type ScrollPosition int

const (
	ScrollNone ScrollPosition = iota
	ScrollTop
	ScrollMiddle
	ScrollBottom
)

// Host is the list that displays a root element. Rows borrow cells from its
// reuse pool and post scroll requests to it; hosts never report completion.
type Host interface {
	// DequeueCell returns a pooled cell for key, or nil if none is free.
	DequeueCell(key string) *Cell
	Measurer() Measurer
	// ContentWidth is the width of a cell's content area, in layout units.
	ContentWidth() float64
	ScrollToRow(path IndexPath, pos ScrollPosition, animated bool)
	DeselectRow(path IndexPath, animated bool)
}

// Cell is a pooled visual container. Hosts hand the same Cell to different
// rows over time; a row must not keep one between display calls.
type Cell struct {
	Key            string
	Caption        string
	Detail         string
	Content        View
	SelectionStyle SelectionStyle
	Background     lipgloss.Color
	// Indent is the caption column width in layout units; zero means the
	// caption takes its natural width.
	Indent float64
	// Stacked draws Content below the caption instead of beside it.
	Stacked bool
}

// Appearance holds the colours used for new cells.
var Appearance = struct {
	Background         lipgloss.Color
	EditableBackground lipgloss.Color
	LabelFont          Font
}{
	Background:         lipgloss.Color(""),
	EditableBackground: lipgloss.Color("235"),
	LabelFont:          ReferenceFont,
}

// NewCell builds a fresh cell for key: no selection highlight, editable background.
func NewCell(key string) *Cell {
	return &Cell{
		Key:            key,
		SelectionStyle: SelectionNone,
		Background:     Appearance.EditableBackground,
	}
}

// Attach places v in the cell's content area, detaching it from whichever
// cell held it before.
func (c *Cell) Attach(v View) {
	if a, ok := v.(attachable); ok {
		if prev := a.superview(); prev != nil && prev != c && prev.Content == v {
			prev.Content = nil
		}
		a.setSuperview(c)
	}
	if c.Content != nil && c.Content != v {
		c.detachContent()
	}
	c.Content = v
}

// PrepareForReuse clears row state before the host hands the cell out again.
func (c *Cell) PrepareForReuse() {
	c.detachContent()
	c.Caption = ""
	c.Detail = ""
	c.Indent = 0
	c.Stacked = false
}

func (c *Cell) detachContent() {
	if a, ok := c.Content.(attachable); ok && a.superview() == c {
		a.setSuperview(nil)
	}
	c.Content = nil
}
