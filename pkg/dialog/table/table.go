// Package table displays a dialog.RootElement as a scrolling list of rows
// inside a bubbletea program. It is the dialog.Host rows draw themselves into.
package table

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dialog/pkg/dialog"
	"github.com/marcus/dialog/pkg/dialog/mouse"
)

const (
	gutterWidth   = 2
	defaultWidth  = 80
	defaultHeight = 24
	chromeLines   = 2 // title + status line
)

// Option configures a Table.
type Option func(*Table)

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(t *Table) {
		if width > 0 {
			t.width = width
		}
		if height > 0 {
			t.height = height
		}
	}
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(t *Table) { t.styles = s }
}

// WithMeasurer replaces the terminal measurer.
func WithMeasurer(m dialog.Measurer) Option {
	return func(t *Table) { t.measurer = m }
}

// WithMouse enables click selection and wheel scrolling.
func WithMouse(enabled bool) Option {
	return func(t *Table) { t.mouseEnabled = enabled }
}

// WithSubmit registers a callback run when the user submits the form.
func WithSubmit(fn func()) Option {
	return func(t *Table) { t.onSubmit = fn }
}

type scrollRequest struct {
	path dialog.IndexPath
	pos  dialog.ScrollPosition
}

type renderedRow struct {
	index   int
	content string
	lines   int
}

// Table is a virtualised list host for a root element. Only rows that are
// on screen are asked for cells; cells go back to a per-key pool before
// every layout pass.
type Table struct {
	root     *dialog.RootElement
	styles   Styles
	measurer dialog.Measurer

	width, height int

	rows      []dialog.IndexPath
	top       int
	cursor    int
	highlight bool
	pending   *scrollRequest

	pool     map[string][]*dialog.Cell
	inUse    []*dialog.Cell
	rendered []renderedRow

	mouse        *mouse.Handler
	mouseEnabled bool

	active    dialog.Editor
	status    string
	err       error
	submitted bool
	quitting  bool
	onSubmit  func()
}

// New creates a table showing root.
func New(root *dialog.RootElement, opts ...Option) *Table {
	t := &Table{
		root:      root,
		styles:    DefaultStyles(),
		measurer:  CellMeasurer{},
		width:     defaultWidth,
		height:    defaultHeight,
		pool:      map[string][]*dialog.Cell{},
		mouse:     mouse.NewHandler(),
		highlight: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Reload()
	return t
}

// Reload re-reads the row structure of the root element.
func (t *Table) Reload() {
	t.rows = t.rows[:0]
	for si, s := range t.root.Sections() {
		for ri := range s.Elements() {
			t.rows = append(t.rows, dialog.IndexPath{Section: si, Row: ri})
		}
	}
	t.cursor = clamp(t.cursor, 0, max(len(t.rows)-1, 0))
	t.top = clamp(t.top, 0, max(len(t.rows)-1, 0))
	t.refresh()
}

// Submitted reports whether the form was submitted rather than abandoned.
func (t *Table) Submitted() bool { return t.submitted }

// Err returns the last error raised by a row, if any.
func (t *Table) Err() error { return t.err }

// Cursor returns the index path of the row under the cursor.
func (t *Table) Cursor() (dialog.IndexPath, bool) {
	if len(t.rows) == 0 {
		return dialog.IndexPath{}, false
	}
	return t.rows[t.cursor], true
}

// DequeueCell implements dialog.Host.
func (t *Table) DequeueCell(key string) *dialog.Cell {
	cells := t.pool[key]
	if len(cells) == 0 {
		return nil
	}
	c := cells[len(cells)-1]
	t.pool[key] = cells[:len(cells)-1]
	c.PrepareForReuse()
	return c
}

// Measurer implements dialog.Host.
func (t *Table) Measurer() dialog.Measurer { return t.measurer }

// ContentWidth implements dialog.Host.
func (t *Table) ContentWidth() float64 {
	return float64(max(t.width-gutterWidth, 1) * dialog.ColumnUnits)
}

// ScrollToRow implements dialog.Host. The request is applied on the next
// layout pass; callers are not told when it happened.
func (t *Table) ScrollToRow(path dialog.IndexPath, pos dialog.ScrollPosition, animated bool) {
	t.pending = &scrollRequest{path: path, pos: pos}
	slog.Debug("scroll requested", "path", path.String(), "animated", animated)
}

// DeselectRow implements dialog.Host.
func (t *Table) DeselectRow(path dialog.IndexPath, animated bool) {
	if idx := t.indexOf(path); idx == t.cursor {
		t.highlight = false
	}
}

func (t *Table) indexOf(path dialog.IndexPath) int {
	for i, p := range t.rows {
		if p == path {
			return i
		}
	}
	return -1
}

// Init implements tea.Model.
func (t *Table) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (t *Table) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width, t.height = msg.Width, msg.Height
		t.resizeSurfaces()

	case tea.KeyMsg:
		cmd = t.handleKey(msg)

	case tea.MouseMsg:
		if t.mouseEnabled {
			t.handleMouse(msg)
		}

	default:
		if t.active != nil {
			cmd = t.active.HandleMsg(msg)
		}
	}

	t.refresh()
	return t, cmd
}

// refresh lays the table out around the focused editor. A row's Cell call
// can honour a deferred focus request, so focus is synced again afterwards.
func (t *Table) refresh() {
	t.syncFocus()
	t.layout()

	before := t.active
	t.syncFocus()
	if t.active != before {
		t.layout()
	}
}

func (t *Table) handleKey(msg tea.KeyMsg) tea.Cmd {
	t.status = ""

	switch msg.String() {
	case "ctrl+c":
		return t.quit()
	case "ctrl+s":
		return t.submit()
	}

	if t.active != nil && t.active.Focused() {
		return t.active.HandleMsg(msg)
	}

	switch msg.String() {
	case "up", "k", "shift+tab":
		t.moveCursor(-1)
	case "down", "j", "tab":
		t.moveCursor(1)
	case "pgup":
		t.moveCursor(-max(t.bodyHeight()/2, 1))
	case "pgdown":
		t.moveCursor(max(t.bodyHeight()/2, 1))
	case "home", "g":
		t.moveCursor(-len(t.rows))
	case "end", "G":
		t.moveCursor(len(t.rows))
	case "enter", " ":
		t.selectRow(t.cursor)
	case "ctrl+y":
		t.copyRow(t.cursor)
	case "q":
		return t.quit()
	}
	return nil
}

func (t *Table) handleMouse(msg tea.MouseMsg) {
	action := t.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return
		}
		if idx, ok := action.Region.Data.(int); ok {
			t.cursor = idx
			t.highlight = true
			t.selectRow(idx)
		}
	case mouse.ActionScrollUp:
		t.top = max(t.top-1, 0)
	case mouse.ActionScrollDown:
		t.top = min(t.top+1, max(len(t.rows)-1, 0))
	}
}

func (t *Table) moveCursor(delta int) {
	if len(t.rows) == 0 {
		return
	}
	t.cursor = clamp(t.cursor+delta, 0, len(t.rows)-1)
	t.highlight = true
	t.pending = &scrollRequest{path: t.rows[t.cursor], pos: dialog.ScrollNone}
}

func (t *Table) selectRow(idx int) {
	if idx < 0 || idx >= len(t.rows) {
		return
	}
	path := t.rows[idx]
	if e := t.root.ElementAt(path); e != nil {
		e.Selected(t, path)
	}
}

func (t *Table) copyRow(idx int) {
	if idx < 0 || idx >= len(t.rows) {
		return
	}
	e := t.root.ElementAt(t.rows[idx])
	if e == nil {
		return
	}
	if err := clipboardWriter(e.Summary()); err != nil {
		t.status = "Copy failed: " + err.Error()
		slog.Warn("clipboard copy failed", "err", err)
		return
	}
	t.status = fmt.Sprintf("Copied %q", e.Caption())
}

// commit ends any edit in progress so values are up to date.
func (t *Table) commit() {
	if t.active != nil && t.active.Focused() {
		t.active.Blur()
	}
	t.active = nil
}

func (t *Table) submit() tea.Cmd {
	t.commit()
	t.submitted = true
	if t.onSubmit != nil {
		t.onSubmit()
	}
	t.quitting = true
	return tea.Quit
}

func (t *Table) quit() tea.Cmd {
	t.commit()
	t.quitting = true
	return tea.Quit
}

// syncFocus keeps a single editor focused: when a row takes focus the
// previously active one is blurred.
func (t *Table) syncFocus() {
	var next dialog.Editor
	for _, p := range t.rows {
		ed, ok := t.root.ElementAt(p).(dialog.Editor)
		if !ok || !ed.Focused() {
			continue
		}
		if ed != t.active {
			next = ed
		}
	}

	if next != nil {
		if t.active != nil {
			t.active.Blur()
		}
		t.active = next
		if path, ok := dialog.PathOf(next); ok {
			if idx := t.indexOf(path); idx >= 0 {
				t.cursor = idx
			}
		}
		return
	}
	if t.active != nil && !t.active.Focused() {
		t.active = nil
	}
}

type surfaceOwner interface {
	Surface() *dialog.EditingSurface
}

func (t *Table) resizeSurfaces() {
	for _, p := range t.rows {
		if so, ok := t.root.ElementAt(p).(surfaceOwner); ok && so.Surface() != nil {
			f := so.Surface().Frame()
			f.Width = t.ContentWidth()
			so.Surface().SetFrame(f)
		}
	}
}

func (t *Table) bodyHeight() int {
	return max(t.height-chromeLines, 1)
}

// estimateLines guesses a row's height without asking it for a cell.
func (t *Table) estimateLines(idx int) int {
	p := t.rows[idx]
	n := 1
	if sz, ok := t.root.ElementAt(p).(dialog.Sizer); ok {
		n = dialog.Lines(sz.Height()) + 1
	}
	if p.Row == 0 && t.root.Sections()[p.Section].Header != "" {
		n++
	}
	return n
}

func (t *Table) applyScroll() {
	req := t.pending
	t.pending = nil
	if req == nil {
		return
	}
	idx := t.indexOf(req.path)
	if idx < 0 {
		return
	}

	body := t.bodyHeight()
	switch req.pos {
	case dialog.ScrollTop:
		t.top = idx
	case dialog.ScrollMiddle:
		t.top = t.topFor(idx, body/2)
	case dialog.ScrollBottom:
		t.top = t.topFor(idx, body)
	default:
		if idx < t.top {
			t.top = idx
		} else if !t.visible(idx) {
			t.top = t.topFor(idx, body)
		}
	}
}

// topFor returns the first row index so that row idx ends within space lines.
func (t *Table) topFor(idx, space int) int {
	used := t.estimateLines(idx)
	top := idx
	for top > 0 {
		next := used + t.estimateLines(top-1)
		if next > space {
			break
		}
		used = next
		top--
	}
	return top
}

func (t *Table) visible(idx int) bool {
	used := 0
	for i := t.top; i < len(t.rows) && i <= idx; i++ {
		used += t.estimateLines(i)
	}
	return used <= t.bodyHeight()
}

// layout hands every visible row a cell and renders it.
func (t *Table) layout() {
	t.applyScroll()

	for _, c := range t.inUse {
		t.pool[c.Key] = append(t.pool[c.Key], c)
	}
	t.inUse = t.inUse[:0]
	t.rendered = t.rendered[:0]
	t.mouse.Clear()

	body := t.bodyHeight()
	y := 1 // below the title
	used := 0
	for i := t.top; i < len(t.rows) && used < body; i++ {
		p := t.rows[i]
		s := t.root.Sections()[p.Section]
		e := t.root.ElementAt(p)

		var sb strings.Builder
		if p.Row == 0 && s.Header != "" {
			sb.WriteString(t.styles.Header.Render(s.Header))
			sb.WriteString("\n")
		}

		cell, err := e.Cell(t)
		if err != nil {
			t.err = err
			slog.Error("row cell", "path", p.String(), "err", err)
			sb.WriteString(t.styles.Error.Render(err.Error()))
		} else {
			t.inUse = append(t.inUse, cell)
			sb.WriteString(t.renderCell(cell, e, i == t.cursor))
		}

		if p.Row == s.Len()-1 && s.Footer != "" {
			sb.WriteString("\n")
			sb.WriteString(t.styles.Footer.Render(s.Footer))
		}

		content := sb.String()
		lines := lipgloss.Height(content)
		t.rendered = append(t.rendered, renderedRow{index: i, content: content, lines: lines})
		t.mouse.HitMap.AddRect(fmt.Sprintf("row-%d", i), 0, y, t.width, lines, i)
		y += lines
		used += lines
	}
}

func (t *Table) renderCell(cell *dialog.Cell, e dialog.Element, atCursor bool) string {
	width := max(t.width-gutterWidth, 1)

	captionCols := lipgloss.Width(cell.Caption) + 1
	if cell.Indent > 0 {
		captionCols = dialog.Columns(cell.Indent)
	}
	caption := ansi.Truncate(cell.Caption, max(captionCols-1, 0), "…")
	captionCol := t.styles.Caption.Width(captionCols).Render(caption)

	var content string
	switch {
	case cell.Content != nil:
		content = cell.Content.View()
	case cell.Detail != "":
		content = t.styles.Detail.Render(cell.Detail)
	}

	var row string
	if cell.Stacked {
		row = lipgloss.JoinVertical(lipgloss.Left, captionCol, content)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top, captionCol, content)
	}

	minLines := 1
	if sz, ok := e.(dialog.Sizer); ok {
		minLines = dialog.Lines(sz.Height())
	}

	style := lipgloss.NewStyle().Width(width).Height(max(minLines, lipgloss.Height(row)))
	if cell.Background != "" {
		style = style.Background(cell.Background)
	}
	if atCursor && t.highlight && cell.SelectionStyle != dialog.SelectionNone {
		style = style.Inherit(t.styles.Selected)
	}
	row = style.Render(row)

	gutter := strings.Repeat(" ", gutterWidth)
	if atCursor {
		gutter = t.styles.Cursor.Render("▌") + " "
	}
	lines := strings.Split(row, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = gutter + lines[i]
		} else {
			lines[i] = strings.Repeat(" ", gutterWidth) + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (t *Table) View() string {
	if t.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(t.styles.Title.Render(t.root.Caption))
	sb.WriteString("\n")

	used := 0
	body := t.bodyHeight()
	for _, r := range t.rendered {
		lines := strings.Split(r.content, "\n")
		if used+len(lines) > body {
			lines = lines[:max(body-used, 0)]
		}
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		used += len(lines)
		if used >= body {
			break
		}
	}
	for ; used < body; used++ {
		sb.WriteString("\n")
	}

	sb.WriteString(t.statusLine())
	return sb.String()
}

func (t *Table) statusLine() string {
	if t.err != nil {
		return t.styles.Error.Render(t.err.Error())
	}
	if t.status != "" {
		return t.styles.Status.Render(t.status)
	}
	if t.active != nil && t.active.Focused() {
		return t.styles.Help.Render("esc done · ctrl+s submit · ctrl+c quit")
	}
	return t.styles.Help.Render("↑/↓ move · enter edit · ctrl+y copy · ctrl+s submit · q quit")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
