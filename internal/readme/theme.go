package readme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ghreadme/ghreadme/internal/config"
)

// Palette holds the terminal colors of one preview theme.
type Palette struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	TitleForeground  lipgloss.Color
	LinkForeground   lipgloss.Color
	BorderColor      lipgloss.Color

	// Background fills the preview viewport; the renderer never paints it.
	Background lipgloss.Color
}

// DarkPalette matches the dark HTML stylesheet.
var DarkPalette = Palette{
	NormalText:       lipgloss.Color("#e0e0e0"),
	FaintText:        lipgloss.Color("245"),
	HeaderForeground: lipgloss.Color("255"),
	TitleForeground:  lipgloss.Color("#3b82f6"),
	LinkForeground:   lipgloss.Color("#3b82f6"),
	BorderColor:      lipgloss.Color("240"),
	Background:       lipgloss.Color("#1e1e1e"),
}

// LightPalette matches the light HTML stylesheet.
var LightPalette = Palette{
	NormalText:       lipgloss.Color("#1f2328"),
	FaintText:        lipgloss.Color("243"),
	HeaderForeground: lipgloss.Color("232"),
	TitleForeground:  lipgloss.Color("#0078d7"),
	LinkForeground:   lipgloss.Color("#0078d7"),
	BorderColor:      lipgloss.Color("250"),
	Background:       lipgloss.Color("#ffffff"),
}

// PaletteFor returns the palette of theme, falling back to the light one.
func PaletteFor(theme config.Theme) Palette {
	if theme == config.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}
