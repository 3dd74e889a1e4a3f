package views

import (
	"github.com/charmbracelet/lipgloss"

	"picgrid/internal/domain"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Chrome     lipgloss.Color // header and status bar background
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Focus      lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Tag        lipgloss.Color
	Backdrop   lipgloss.Color // desaturated content behind the viewer
	Background lipgloss.Color
}

// LightPalette is used when the effective theme is light
var LightPalette = Palette{
	Chrome:     lipgloss.Color("#f5f5f5"),
	Text:       lipgloss.Color("235"),
	Muted:      lipgloss.Color("243"),
	Accent:     lipgloss.Color("26"),
	Border:     lipgloss.Color("250"),
	Focus:      lipgloss.Color("33"),
	Error:      lipgloss.Color("160"),
	Warning:    lipgloss.Color("130"),
	Tag:        lipgloss.Color("30"),
	Backdrop:   lipgloss.Color("252"),
	Background: lipgloss.Color("255"),
}

// DarkPalette is used when the effective theme is dark
var DarkPalette = Palette{
	Chrome:     lipgloss.Color("#1e1e2e"),
	Text:       lipgloss.Color("252"),
	Muted:      lipgloss.Color("241"),
	Accent:     lipgloss.Color("99"),
	Border:     lipgloss.Color("238"),
	Focus:      lipgloss.Color("214"),
	Error:      lipgloss.Color("203"),
	Warning:    lipgloss.Color("214"),
	Tag:        lipgloss.Color("78"),
	Backdrop:   lipgloss.Color("239"),
	Background: lipgloss.Color("234"),
}

// Styles contains all the style definitions for the UI
type Styles struct {
	Theme   domain.ThemeMode
	Palette Palette

	Title         lipgloss.Style
	Header        lipgloss.Style
	Location      lipgloss.Style
	SearchPrompt  lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	Help          lipgloss.Style
	Filter        lipgloss.Style
	Card          lipgloss.Style
	CardFocused   lipgloss.Style
	CardTitle     lipgloss.Style
	CardMeta      lipgloss.Style
	CardTag       lipgloss.Style
	Empty         lipgloss.Style
	ErrorBox      lipgloss.Style
	Viewer        lipgloss.Style
	ViewerCaption lipgloss.Style
	Backdrop      lipgloss.Style
}

// NewStyles creates the styles for an effective theme. chrome overrides
// the palette's chrome color when not empty.
func NewStyles(effective domain.ThemeMode, chrome string) *Styles {
	p := DarkPalette
	if effective == domain.ThemeLight {
		p = LightPalette
	}
	if chrome != "" {
		p.Chrome = lipgloss.Color(chrome)
	}

	return &Styles{
		Theme:   effective,
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Header: lipgloss.NewStyle().
			Background(p.Chrome).
			Foreground(p.Text).
			Padding(0, 1),
		Location:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		SearchPrompt: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(p.Muted),
		Status: lipgloss.NewStyle().
			Background(p.Chrome).
			Foreground(p.Muted).
			Padding(0, 1),
		StatusError:   lipgloss.NewStyle().Foreground(p.Error),
		StatusWarning: lipgloss.NewStyle().Foreground(p.Warning),
		Help:          lipgloss.NewStyle().Faint(true),
		Filter:        lipgloss.NewStyle().Foreground(p.Warning),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Focus),
		CardTitle: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		CardMeta:  lipgloss.NewStyle().Foreground(p.Muted),
		CardTag:   lipgloss.NewStyle().Foreground(p.Tag),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			Padding(1, 2),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Error).
			Foreground(p.Error).
			Padding(1, 2),
		Viewer: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		ViewerCaption: lipgloss.NewStyle().Foreground(p.Text),
		Backdrop:      lipgloss.NewStyle().Foreground(p.Backdrop),
	}
}
