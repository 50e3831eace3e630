package dialog

import "log/slog"

const (
	captionPadding  = 25
	maxCaptionWidth = 160
	// sentinelWidth seeds the caption scan so a section without captioned
	// entries still lines its inputs up with the caption offset of plain rows.
	sentinelWidth = -15
)

// Geometry is the caption column shared by every entry row of a section.
// Offset is where input fields start; MinHeight is the tallest caption.
type Geometry struct {
	Offset    float64
	MinHeight float64
}

// IsZero reports whether the geometry has not been computed.
func (g Geometry) IsZero() bool {
	return g.Offset == 0
}

// EntryStyle is implemented by rows whose input field takes part in the
// section's caption alignment.
type EntryStyle interface {
	Element
	EntryCaption() string
}

// AlignmentResolver computes a section's shared Geometry once and caches it
// on the section.
type AlignmentResolver struct {
	Measurer Measurer
}

// Resolve returns the section's cached geometry, computing and storing it on
// first use. Only entry rows with a non-empty caption are measured; the widest
// one wins and is clamped so a long caption cannot push inputs off screen.
func (r AlignmentResolver) Resolve(s *Section) (Geometry, error) {
	if s == nil {
		return Geometry{}, &ConfigurationError{Op: "resolve alignment", Msg: msgOutsideSection}
	}
	if !s.alignment.IsZero() {
		return s.alignment, nil
	}

	best := Size{Width: sentinelWidth, Height: r.Measurer.Measure("M", ReferenceFont).Height}
	for _, e := range s.elements {
		ee, ok := e.(EntryStyle)
		if !ok {
			continue
		}
		caption := ee.EntryCaption()
		if caption == "" {
			continue
		}
		size := r.Measurer.Measure(caption, ReferenceFont)
		if size.Width > best.Width {
			best = size
		}
	}

	s.alignment = Geometry{
		Offset:    captionPadding + min(best.Width, maxCaptionWidth),
		MinHeight: best.Height,
	}
	slog.Debug("section alignment resolved", "section", s.Header, "offset", s.alignment.Offset, "min_height", s.alignment.MinHeight)
	return s.alignment, nil
}
