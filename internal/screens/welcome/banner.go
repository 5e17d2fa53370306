package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/ui/theme"
)

const bannerArt = `
█▀▄▀█ ▄▀█ ▀█▀ █ █ █▀█ █ █ █▀ █ █
█ ▀ █ █▀█  █  █▀█ █▀▄ █▄█ ▄█ █▀█`

const bannerCompact = "M A T H R U S H"

// RenderBanner returns the MATHRUSH banner in marquee yellow, with a compact
// fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
