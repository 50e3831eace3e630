package dialog

// Section is an ordered group of rows sharing one caption alignment.
type Section struct {
	Header string
	Footer string

	elements  []Element
	root      *RootElement
	alignment Geometry
}

// NewSection creates a section holding elems.
func NewSection(header string, elems ...Element) *Section {
	s := &Section{Header: header}
	s.Add(elems...)
	return s
}

// Add appends rows to the section.
func (s *Section) Add(elems ...Element) *Section {
	for _, e := range elems {
		e.setSection(s)
	}
	s.elements = append(s.elements, elems...)
	s.InvalidateAlignment()
	return s
}

// Insert places rows before index idx. Out of range indexes append.
func (s *Section) Insert(idx int, elems ...Element) {
	if idx < 0 || idx > len(s.elements) {
		idx = len(s.elements)
	}
	for _, e := range elems {
		e.setSection(s)
	}
	s.elements = append(s.elements[:idx], append(append([]Element(nil), elems...), s.elements[idx:]...)...)
	s.InvalidateAlignment()
}

// Remove disposes and removes the row at idx.
func (s *Section) Remove(idx int) {
	if idx < 0 || idx >= len(s.elements) {
		return
	}
	e := s.elements[idx]
	e.Dispose()
	e.setSection(nil)
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	s.InvalidateAlignment()
}

// Elements returns the section's rows. The slice must not be modified.
func (s *Section) Elements() []Element { return s.elements }

// Len returns the number of rows.
func (s *Section) Len() int { return len(s.elements) }

// Root returns the root element the section belongs to, if any.
func (s *Section) Root() *RootElement { return s.root }

// Alignment returns the cached caption alignment; zero until resolved.
func (s *Section) Alignment() Geometry { return s.alignment }

// SetAlignment stores a caption alignment for the section.
func (s *Section) SetAlignment(g Geometry) { s.alignment = g }

// InvalidateAlignment drops the cached alignment so the next display
// recomputes it. Rows whose surface already exists keep their size.
func (s *Section) InvalidateAlignment() { s.alignment = Geometry{} }

// RootElement is the top of a dialog: a titled list of sections.
type RootElement struct {
	Caption string

	sections []*Section
}

// NewRoot creates a root element.
func NewRoot(caption string, sections ...*Section) *RootElement {
	r := &RootElement{Caption: caption}
	r.Add(sections...)
	return r
}

// Add appends sections.
func (r *RootElement) Add(sections ...*Section) *RootElement {
	for _, s := range sections {
		s.root = r
	}
	r.sections = append(r.sections, sections...)
	return r
}

// Sections returns the root's sections. The slice must not be modified.
func (r *RootElement) Sections() []*Section { return r.sections }

// IndexPath locates e.
func (r *RootElement) IndexPath(e Element) (IndexPath, bool) {
	for si, s := range r.sections {
		for ri, el := range s.elements {
			if el == e {
				return IndexPath{Section: si, Row: ri}, true
			}
		}
	}
	return IndexPath{}, false
}

// ElementAt returns the row at p, or nil.
func (r *RootElement) ElementAt(p IndexPath) Element {
	if p.Section < 0 || p.Section >= len(r.sections) {
		return nil
	}
	s := r.sections[p.Section]
	if p.Row < 0 || p.Row >= len(s.elements) {
		return nil
	}
	return s.elements[p.Row]
}

// Search returns every row matching text, in display order.
func (r *RootElement) Search(text string) []Element {
	var out []Element
	for _, s := range r.sections {
		for _, e := range s.elements {
			if e.Matches(text) {
				out = append(out, e)
			}
		}
	}
	return out
}

// Dispose disposes every row. It is safe to call repeatedly.
func (r *RootElement) Dispose() {
	for _, s := range r.sections {
		for _, e := range s.elements {
			e.Dispose()
		}
	}
}
