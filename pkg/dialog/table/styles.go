package table

import "github.com/charmbracelet/lipgloss"

// Default palette, shared with the rest of the CLI.
var (
	Primary     = lipgloss.Color("212")
	Error       = lipgloss.Color("196")
	Muted       = lipgloss.Color("241")
	BgSecondary = lipgloss.Color("235")
	BgSelected  = lipgloss.Color("237")
)

// Styles used when drawing a table.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Caption  lipgloss.Style
	Detail   lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// Theme overrides the palette; empty fields keep the defaults.
type Theme struct {
	Primary    string
	Muted      string
	Background string
}

// DefaultStyles returns the default table styles.
func DefaultStyles() Styles {
	return StylesFromTheme(Theme{})
}

// StylesFromTheme builds styles from a theme.
func StylesFromTheme(th Theme) Styles {
	primary, muted, bg := Primary, Muted, BgSelected
	if th.Primary != "" {
		primary = lipgloss.Color(th.Primary)
	}
	if th.Muted != "" {
		muted = lipgloss.Color(th.Muted)
	}
	if th.Background != "" {
		bg = lipgloss.Color(th.Background)
	}

	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Header: lipgloss.NewStyle().Bold(true).Underline(true),
		Footer: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Caption: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),
		Detail: lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color("255")),
		Cursor: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Status: lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(Error).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(muted),
	}
}
