package components

import (
	"image/color"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

// RarityColor returns the theme color for an achievement rarity.
func RarityColor(r achievements.Rarity) color.Color {
	switch r {
	case achievements.RarityCommon:
		return theme.Text
	case achievements.RarityRare:
		return theme.Secondary
	case achievements.RarityEpic:
		return theme.Primary
	case achievements.RarityLegendary:
		return theme.ArcadeYellow
	default:
		return theme.Text
	}
}
