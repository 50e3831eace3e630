package dialog

import "unicode/utf8"

// fakeHost is a minimal Host with an explicit cell pool.
type fakeHost struct {
	pool       map[string][]*Cell
	measurer   Measurer
	width      float64
	scrolls    []scrollCall
	deselected []IndexPath
}

type scrollCall struct {
	path     IndexPath
	pos      ScrollPosition
	animated bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		pool:     map[string][]*Cell{},
		measurer: gridMeasurer{},
		width:    80 * ColumnUnits,
	}
}

func (h *fakeHost) DequeueCell(key string) *Cell {
	cells := h.pool[key]
	if len(cells) == 0 {
		return nil
	}
	c := cells[len(cells)-1]
	h.pool[key] = cells[:len(cells)-1]
	c.PrepareForReuse()
	return c
}

// recycle returns a cell to the pool, as a host does when it scrolls away.
func (h *fakeHost) recycle(c *Cell) {
	h.pool[c.Key] = append(h.pool[c.Key], c)
}

func (h *fakeHost) Measurer() Measurer     { return h.measurer }
func (h *fakeHost) ContentWidth() float64 { return h.width }

func (h *fakeHost) ScrollToRow(path IndexPath, pos ScrollPosition, animated bool) {
	h.scrolls = append(h.scrolls, scrollCall{path, pos, animated})
}

func (h *fakeHost) DeselectRow(path IndexPath, animated bool) {
	h.deselected = append(h.deselected, path)
}

// gridMeasurer measures one column per rune and one line per string.
type gridMeasurer struct{}

func (gridMeasurer) Measure(text string, font Font) Size {
	return Size{Width: float64(utf8.RuneCountInString(text) * ColumnUnits), Height: LineUnits}
}

// widthMeasurer reports fixed widths per caption and counts calls.
type widthMeasurer struct {
	widths map[string]float64
	height float64
	calls  int
}

func (m *widthMeasurer) Measure(text string, font Font) Size {
	m.calls++
	w, ok := m.widths[text]
	if !ok {
		w = float64(len(text))
	}
	return Size{Width: w, Height: m.height}
}
