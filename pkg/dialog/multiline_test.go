package dialog

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newNotes(value string) (*MultilineEntryElement, *RootElement) {
	notes := NewMultilineEntryElement("Notes", value)
	root := NewRoot("Form",
		NewSection("About", NewEntryElement("Name", "", "")),
		NewSection("Details", NewStringElement("Kind", "bug"), notes),
	)
	return notes, root
}

func TestMultilineCellCreatesSurfaceOnce(t *testing.T) {
	notes, _ := newNotes("first draft")
	host := newFakeHost()

	if notes.Surface() != nil {
		t.Fatal("surface should not exist before the first display")
	}

	cell, err := notes.Cell(host)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	s := notes.Surface()
	if s == nil {
		t.Fatal("Cell should create the surface")
	}
	if cell.Content != View(s) {
		t.Error("surface should be attached to the returned cell")
	}
	if cell.Caption != "Notes" {
		t.Errorf("Caption = %q, want %q", cell.Caption, "Notes")
	}
	if cell.SelectionStyle != SelectionNone {
		t.Errorf("SelectionStyle = %v, want SelectionNone", cell.SelectionStyle)
	}
	if cell.Background != Appearance.EditableBackground {
		t.Errorf("Background = %q, want editable background", cell.Background)
	}
	if s.Text() != "first draft" {
		t.Errorf("surface text = %q, want %q", s.Text(), "first draft")
	}

	// Caption height comes from the section geometry, on top of the row height.
	wantHeight := float64(LineUnits) + DefaultMultilineHeight
	if s.Frame().Height != wantHeight {
		t.Errorf("surface height = %v, want %v", s.Frame().Height, wantHeight)
	}
	if s.Frame().Width != host.ContentWidth() {
		t.Errorf("surface width = %v, want %v", s.Frame().Width, host.ContentWidth())
	}
}

func TestMultilineCellIdempotent(t *testing.T) {
	notes, _ := newNotes("text")
	notes.SetPlaceholder("Say more")
	notes.SetKeyboard(KeyboardASCII)
	notes.SetCapitalization(CapitalizeWords)
	notes.SetCorrection(CorrectionNo)
	host := newFakeHost()

	first, err := notes.Cell(host)
	if err != nil {
		t.Fatal(err)
	}
	s := notes.Surface()
	host.recycle(first)

	second, err := notes.Cell(host)
	if err != nil {
		t.Fatal(err)
	}
	if notes.Surface() != s {
		t.Fatal("second Cell replaced the surface")
	}
	if second.Caption != "Notes" || second.Content != View(s) {
		t.Errorf("second cell = {%q %v}, want caption and same surface", second.Caption, second.Content)
	}
	if s.Placeholder() != "Say more" || s.Keyboard() != KeyboardASCII ||
		s.Capitalization() != CapitalizeWords || s.Correction() != CorrectionNo {
		t.Errorf("surface config = %q %v %v %v", s.Placeholder(), s.Keyboard(), s.Capitalization(), s.Correction())
	}
}

func TestMultilineRebindsToNewCell(t *testing.T) {
	notes, _ := newNotes("")
	host := newFakeHost()

	first, _ := notes.Cell(host)
	s := notes.Surface()

	// Host hands out a different cell; the old one is still out of the pool.
	second, _ := notes.Cell(host)
	if first == second {
		t.Fatal("expected a fresh cell when the pool is empty")
	}
	if second.Content != View(s) {
		t.Error("surface should move to the new cell")
	}
	if first.Content != nil {
		t.Error("surface should be detached from the previous cell")
	}
	if s.Cell() != second {
		t.Error("surface should report its new cell")
	}
}

func TestMultilineRecycledCellFromOtherRow(t *testing.T) {
	a := NewMultilineEntryElement("A", "aaa")
	b := NewMultilineEntryElement("B", "bbb")
	NewRoot("", NewSection("", a, b))
	host := newFakeHost()

	cell, _ := a.Cell(host)
	host.recycle(cell)

	reused, _ := b.Cell(host)
	if reused != cell {
		t.Fatal("expected the pooled cell to be reused")
	}
	if reused.Content != View(b.Surface()) {
		t.Error("reused cell should show b's surface")
	}
	if a.Surface().Cell() != nil {
		t.Error("a's surface should be detached when its cell was reused")
	}
	if a.Surface().Text() != "aaa" {
		t.Errorf("a's text = %q, want it kept across recycling", a.Surface().Text())
	}
}

func TestMultilineConfigPushedToLiveSurface(t *testing.T) {
	notes, _ := newNotes("")
	host := newFakeHost()
	if _, err := notes.Cell(host); err != nil {
		t.Fatal(err)
	}
	s := notes.Surface()

	notes.SetPlaceholder("p")
	notes.SetKeyboard(KeyboardEmail)
	notes.SetCapitalization(CapitalizeNone)
	notes.SetCorrection(CorrectionYes)
	notes.SetFont(Font{Name: "mono", Size: 12, Bold: true})
	notes.SetHeight(64)

	if s.Placeholder() != "p" {
		t.Errorf("placeholder = %q", s.Placeholder())
	}
	if s.Keyboard() != KeyboardEmail {
		t.Errorf("keyboard = %v", s.Keyboard())
	}
	if s.Capitalization() != CapitalizeNone {
		t.Errorf("capitalization = %v", s.Capitalization())
	}
	if s.Correction() != CorrectionYes {
		t.Errorf("correction = %v", s.Correction())
	}
	if !s.Font().Bold || s.Font().Name != "mono" {
		t.Errorf("font = %+v", s.Font())
	}
	if s.Frame().Height != LineUnits+64 {
		t.Errorf("height = %v, want %v", s.Frame().Height, LineUnits+64)
	}
	if notes.Height() != 64 {
		t.Errorf("Height() = %v, want 64", notes.Height())
	}
}

func TestMultilineValuePropagation(t *testing.T) {
	notes, _ := newNotes("")
	var changed, valueChanged int
	notes.Changed = func(Element) { changed++ }
	notes.OnValueChanged = func(Element) { valueChanged++ }

	host := newFakeHost()
	if _, err := notes.Cell(host); err != nil {
		t.Fatal(err)
	}
	s := notes.Surface()

	s.Focus()
	s.SetText("hello")
	s.Blur()

	if notes.Value() != "hello" {
		t.Errorf("Value = %q, want %q", notes.Value(), "hello")
	}
	if changed != 1 {
		t.Errorf("Changed fired %d times, want 1", changed)
	}
	if valueChanged != 1 {
		t.Errorf("OnValueChanged fired %d times, want 1", valueChanged)
	}

	s.Focus()
	s.Blur()
	if changed != 1 {
		t.Errorf("Changed fired %d times after unchanged edit, want 1", changed)
	}
}

func TestMultilineTypingFiresChanged(t *testing.T) {
	notes, _ := newNotes("")
	var changed int
	notes.Changed = func(Element) { changed++ }
	host := newFakeHost()
	notes.Cell(host)
	notes.Surface().Focus()

	notes.HandleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	if notes.Value() != "Hi" {
		t.Errorf("Value = %q, want %q (sentence capitalization)", notes.Value(), "Hi")
	}
	if changed != 1 {
		t.Errorf("Changed fired %d times, want 1", changed)
	}
}

func TestMultilineCapitalizesAtCursor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		moves []tea.KeyMsg
		want  string
	}{
		{"start of existing text", "world", []tea.KeyMsg{{Type: tea.KeyHome}}, "Xworld"},
		{"inside a word", "Hello. world", []tea.KeyMsg{{Type: tea.KeyLeft}}, "Hello. worlxd"},
		{"after a full stop mid-line", "one. two", []tea.KeyMsg{
			{Type: tea.KeyHome}, {Type: tea.KeyRight}, {Type: tea.KeyRight},
			{Type: tea.KeyRight}, {Type: tea.KeyRight}, {Type: tea.KeyRight},
		}, "one. Xtwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, _ := newNotes(tt.value)
			notes.Cell(newFakeHost())
			notes.Surface().Focus()

			for _, m := range tt.moves {
				notes.HandleMsg(m)
			}
			notes.HandleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

			if notes.Value() != tt.want {
				t.Errorf("Value = %q, want %q", notes.Value(), tt.want)
			}
		})
	}
}

func TestFetchValueWithoutSurface(t *testing.T) {
	notes, _ := newNotes("v")
	called := false
	notes.Changed = func(Element) { called = true }

	notes.FetchValue()

	if called || notes.Value() != "v" {
		t.Error("FetchValue without a surface should do nothing")
	}
}

func TestMultilineDeferredFocus(t *testing.T) {
	notes, _ := newNotes("")

	notes.RequestFocus(true)
	if !notes.FocusPending() {
		t.Fatal("focus request before display should be pending")
	}

	host := newFakeHost()
	if _, err := notes.Cell(host); err != nil {
		t.Fatal(err)
	}
	if !notes.Surface().Focused() {
		t.Error("surface should take focus during the display call")
	}
	if notes.FocusPending() {
		t.Error("pending focus should be cleared after display")
	}
	if len(host.scrolls) != 0 {
		t.Errorf("deferred focus should not scroll, got %v", host.scrolls)
	}
}

func TestMultilineRequestFocusAfterDisplay(t *testing.T) {
	notes, _ := newNotes("")
	host := newFakeHost()
	notes.Cell(host)

	notes.RequestFocus(false)

	if !notes.Focused() {
		t.Error("surface should be focused immediately")
	}
	if notes.FocusPending() {
		t.Error("pending flag should be cleared once the surface took focus")
	}
	want := scrollCall{IndexPath{Section: 1, Row: 1}, ScrollMiddle, false}
	if len(host.scrolls) != 1 || host.scrolls[0] != want {
		t.Errorf("scrolls = %v, want [%v]", host.scrolls, want)
	}

	notes.ReleaseFocus(true)
	if notes.Focused() {
		t.Error("ReleaseFocus should blur the surface")
	}
	if len(host.scrolls) != 2 || !host.scrolls[1].animated {
		t.Errorf("ReleaseFocus should scroll to the row, got %v", host.scrolls)
	}
}

func TestMultilineReleaseFocusClearsPending(t *testing.T) {
	notes, _ := newNotes("")
	notes.RequestFocus(true)
	notes.ReleaseFocus(true)

	host := newFakeHost()
	notes.Cell(host)
	if notes.Focused() {
		t.Error("cancelled focus request should not focus on display")
	}
}

func TestMultilineSelected(t *testing.T) {
	notes, _ := newNotes("")
	host := newFakeHost()
	notes.Cell(host)
	path := IndexPath{Section: 1, Row: 1}

	notes.Selected(host, path)

	if !notes.Focused() {
		t.Error("selecting the row should focus it")
	}
	if len(host.deselected) != 1 || host.deselected[0] != path {
		t.Errorf("deselected = %v, want [%v]", host.deselected, path)
	}
}

func TestMultilineAccessoryDone(t *testing.T) {
	notes, _ := newNotes("")
	host := newFakeHost()
	notes.Cell(host)
	notes.RequestFocus(false)

	notes.HandleMsg(tea.KeyMsg{Type: tea.KeyEsc})

	if notes.Focused() {
		t.Error("Done should resign focus")
	}
}

func TestMultilineDisposeTwice(t *testing.T) {
	notes, root := newNotes("")
	host := newFakeHost()
	cell, _ := notes.Cell(host)
	s := notes.Surface()

	notes.Dispose()
	notes.Dispose()
	root.Dispose()

	if notes.Surface() != nil {
		t.Error("surface should be dropped")
	}
	if !s.Released() {
		t.Error("surface should be released")
	}
	if cell.Content != nil {
		t.Error("released surface should leave its cell")
	}

	// Without a host, focus requests are deferred again.
	notes.RequestFocus(true)
	if len(host.scrolls) != 0 {
		t.Error("disposed row should not talk to its old host")
	}
}

func TestMultilineOutsideSection(t *testing.T) {
	notes := NewMultilineEntryElement("Loose", "")
	_, err := notes.Cell(newFakeHost())

	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Cell error = %v, want *ConfigurationError", err)
	}
	if ce.Element != "Loose" {
		t.Errorf("Element = %q, want %q", ce.Element, "Loose")
	}
	if notes.Surface() != nil {
		t.Error("no surface should be created")
	}
}

func TestMultilineMatches(t *testing.T) {
	notes, _ := newNotes("hello")

	tests := []struct {
		text string
		want bool
	}{
		{"ell", true},
		{"ELL", true},
		{"xyz", false},
		{"note", true}, // caption
	}
	for _, tt := range tests {
		if got := notes.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMultilineSummaryAndHeight(t *testing.T) {
	notes, _ := newNotes("body")
	if notes.Summary() != "body" {
		t.Errorf("Summary = %q", notes.Summary())
	}
	if notes.Height() != DefaultMultilineHeight {
		t.Errorf("Height = %v, want %v", notes.Height(), DefaultMultilineHeight)
	}
	var _ Sizer = notes
	var _ Editor = notes
	var _ Focuser = notes
}

func TestMultilineSetValueUpdatesSurface(t *testing.T) {
	notes, _ := newNotes("a")
	notes.Cell(newFakeHost())

	notes.SetValue("b")

	if notes.Surface().Text() != "b" {
		t.Errorf("surface text = %q, want %q", notes.Surface().Text(), "b")
	}
}
