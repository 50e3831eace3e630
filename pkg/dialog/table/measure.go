package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dialog/pkg/dialog"
)

// CellMeasurer measures text on the terminal grid: one column is
// dialog.ColumnUnits wide and one line dialog.LineUnits tall.
type CellMeasurer struct{}

// Measure returns the width of the widest line and the number of lines.
func (CellMeasurer) Measure(text string, font dialog.Font) dialog.Size {
	lines := strings.Split(font.Style().Render(text), "\n")
	width := 0
	for _, l := range lines {
		width = max(width, ansi.StringWidth(l))
	}
	return dialog.Size{
		Width:  float64(width * dialog.ColumnUnits),
		Height: float64(len(lines) * dialog.LineUnits),
	}
}
