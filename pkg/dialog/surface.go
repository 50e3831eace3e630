package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AccessoryBar is the control strip shown under a focused surface.
type AccessoryBar struct {
	Label  string
	Keys   []string
	Action func()
}

var accessoryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("212")).
	Bold(true).
	Padding(0, 1)

// Handles reports whether key triggers the bar's action.
func (b *AccessoryBar) Handles(key tea.KeyMsg) bool {
	for _, k := range b.Keys {
		if key.String() == k {
			return true
		}
	}
	return false
}

// Render draws the bar right-aligned in width columns.
func (b *AccessoryBar) Render(width int) string {
	button := accessoryStyle.Render(b.Label)
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(button)), lipgloss.Right, button)
}

// EditingSurface is the live multi-line input of a row. It keeps its text
// across cell rebindings and reports edits through its callbacks.
type EditingSurface struct {
	area           textarea.Model
	frame          Frame
	font           Font
	placeholder    string
	keyboard       KeyboardKind
	capitalization Capitalization
	correction     Correction
	returnKey      ReturnKey
	accessory      *AccessoryBar
	cell           *Cell
	released       bool

	OnChanged func()
	OnStarted func()
	OnEnded   func()
}

// NewEditingSurface creates a surface occupying frame, showing text.
func NewEditingSurface(frame Frame, text string) *EditingSurface {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetValue(text)
	s := &EditingSurface{area: ta, font: SystemFont}
	s.SetFrame(frame)
	return s
}

func (s *EditingSurface) superview() *Cell { return s.cell }

func (s *EditingSurface) setSuperview(c *Cell) { s.cell = c }

// Cell returns the cell the surface is attached to, if any.
func (s *EditingSurface) Cell() *Cell { return s.cell }

// Frame returns the surface's frame in layout units.
func (s *EditingSurface) Frame() Frame { return s.frame }

// SetFrame resizes the surface.
func (s *EditingSurface) SetFrame(f Frame) {
	s.frame = f
	s.area.SetWidth(max(Columns(f.Width), 1))
	s.area.SetHeight(max(Lines(f.Height), 1))
}

// Text returns the surface's current text.
func (s *EditingSurface) Text() string { return s.area.Value() }

// SetText replaces the text without firing OnChanged.
func (s *EditingSurface) SetText(text string) {
	if s.area.Value() != text {
		s.area.SetValue(text)
	}
}

func (s *EditingSurface) Font() Font { return s.font }

func (s *EditingSurface) SetFont(f Font) {
	s.font = f
	s.area.FocusedStyle.Text = f.Style()
	s.area.BlurredStyle.Text = f.Style()
}

func (s *EditingSurface) Placeholder() string { return s.placeholder }

func (s *EditingSurface) SetPlaceholder(p string) {
	s.placeholder = p
	s.area.Placeholder = p
}

func (s *EditingSurface) Keyboard() KeyboardKind { return s.keyboard }

func (s *EditingSurface) SetKeyboard(k KeyboardKind) { s.keyboard = k }

func (s *EditingSurface) Capitalization() Capitalization { return s.capitalization }

func (s *EditingSurface) SetCapitalization(c Capitalization) { s.capitalization = c }

func (s *EditingSurface) Correction() Correction { return s.correction }

func (s *EditingSurface) SetCorrection(c Correction) { s.correction = c }

func (s *EditingSurface) ReturnKey() ReturnKey { return s.returnKey }

func (s *EditingSurface) SetReturnKey(k ReturnKey) { s.returnKey = k }

func (s *EditingSurface) Accessory() *AccessoryBar { return s.accessory }

func (s *EditingSurface) SetAccessory(b *AccessoryBar) { s.accessory = b }

// Focused reports whether the surface has input focus.
func (s *EditingSurface) Focused() bool { return s.area.Focused() }

// Focus gives the surface input focus and fires OnStarted.
func (s *EditingSurface) Focus() {
	if s.released || s.area.Focused() {
		return
	}
	s.area.Focus()
	if s.OnStarted != nil {
		s.OnStarted()
	}
}

// Blur removes input focus and fires OnEnded.
func (s *EditingSurface) Blur() {
	if !s.area.Focused() {
		return
	}
	s.area.Blur()
	if s.OnEnded != nil {
		s.OnEnded()
	}
}

// Update feeds a message to the surface while it is focused.
func (s *EditingSurface) Update(msg tea.Msg) tea.Cmd {
	if s.released || !s.area.Focused() {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if s.accessory != nil && s.accessory.Handles(key) {
			if s.accessory.Action != nil {
				s.accessory.Action()
			}
			return nil
		}
		if key.Type == tea.KeyRunes {
			runes := s.filterRunes(key.Runes)
			if len(runes) == 0 {
				return nil
			}
			key.Runes = runes
			msg = key
		}
	}

	before := s.area.Value()
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	if s.area.Value() != before && s.OnChanged != nil {
		s.OnChanged()
	}
	return cmd
}

func (s *EditingSurface) filterRunes(in []rune) []rune {
	prev := s.textBeforeCursor()
	out := make([]rune, 0, len(in))
	for _, r := range in {
		if !s.keyboard.Accepts(r) {
			continue
		}
		r = s.capitalization.Apply(prev, r)
		prev += string(r)
		out = append(out, r)
	}
	return out
}

// textBeforeCursor returns the text from the start up to the cursor.
func (s *EditingSurface) textBeforeCursor() string {
	lines := strings.Split(s.area.Value(), "\n")
	row := min(max(s.area.Line(), 0), len(lines)-1)
	line := []rune(lines[row])
	li := s.area.LineInfo()
	col := min(max(li.StartColumn+li.ColumnOffset, 0), len(line))

	before := append(lines[:row:row], string(line[:col]))
	return strings.Join(before, "\n")
}

// View renders the text area and, while focused, the accessory bar.
func (s *EditingSurface) View() string {
	if s.released {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(s.area.View())
	if s.accessory != nil && s.area.Focused() {
		sb.WriteString("\n")
		sb.WriteString(s.accessory.Render(Columns(s.frame.Width)))
	}
	return sb.String()
}

// Release detaches the surface and makes it inert. Callbacks are dropped
// without firing.
func (s *EditingSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.OnChanged, s.OnStarted, s.OnEnded = nil, nil, nil
	s.area.Blur()
	if s.cell != nil && s.cell.Content == View(s) {
		s.cell.Content = nil
	}
	s.cell = nil
}

// Released reports whether Release has been called.
func (s *EditingSurface) Released() bool { return s.released }
