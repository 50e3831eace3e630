package dialog

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Layout units. Geometry inside the dialog model is expressed in abstract
// units so measurement services stay independent of the terminal grid; hosts
// convert with Columns and Lines.
const (
	ColumnUnits = 8  // units per terminal column
	LineUnits   = 16 // units per terminal line
)

// Size is a measured width/height pair in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Frame positions a view inside a cell's content area.
type Frame struct {
	X, Y          float64
	Width, Height float64
}

// Font describes how a piece of text is drawn.
type Font struct {
	Name string
	Size float64
	Bold bool
}

var (
	// ReferenceFont is used to measure captions when aligning entry rows.
	ReferenceFont = Font{Name: "system", Size: 17, Bold: true}
	// SystemFont is the default input font.
	SystemFont = Font{Name: "system", Size: 17}
)

// Style maps the font onto a terminal style.
func (f Font) Style() lipgloss.Style {
	return lipgloss.NewStyle().Bold(f.Bold)
}

// Measurer measures text drawn in a font.
type Measurer interface {
	Measure(text string, font Font) Size
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, font Font) Size

// Measure calls f(text, font).
func (f MeasurerFunc) Measure(text string, font Font) Size {
	return f(text, font)
}

// Columns converts a width in layout units to terminal columns, rounding up.
func Columns(units float64) int {
	if units <= 0 {
		return 0
	}
	return int(math.Ceil(units / ColumnUnits))
}

// Lines converts a height in layout units to terminal lines, rounding up.
func Lines(units float64) int {
	if units <= 0 {
		return 0
	}
	return int(math.Ceil(units / LineUnits))
}
