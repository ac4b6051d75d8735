package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/horde/internal/game"
	"github.com/udisondev/horde/internal/model"
)

const (
	glyphSurvivor     = '@'
	glyphDeadSurvivor = '+'
	glyphZombie       = 'Z'
	glyphCorpse       = '%'
)

var (
	colorSurvivor    = tcell.ColorWhite
	colorDead        = tcell.ColorGray
	colorZombie      = tcell.NewRGBColor(0x6b, 0x8e, 0x23) // walker olive
	colorCorpse      = tcell.ColorDarkRed
	colorHUD         = tcell.ColorSilver
	colorArenaBorder = tcell.ColorDimGray
)

// Glyph returns the rune drawn for e.
func Glyph(e game.Entity) rune {
	switch {
	case e.Kind == game.KindSurvivor && e.Dead:
		return glyphDeadSurvivor
	case e.Kind == game.KindSurvivor:
		return glyphSurvivor
	case e.Dead:
		return glyphCorpse
	default:
		return glyphZombie
	}
}

// EntityStyle returns the style for e: zombies use their skin colour,
// dim while idle and bold while pursuing.
func EntityStyle(e game.Entity) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)

	if e.Kind == game.KindSurvivor {
		if e.Dead {
			return base.Foreground(colorDead)
		}
		return base.Foreground(colorSurvivor).Bold(true)
	}

	if e.Dead {
		return base.Foreground(colorCorpse)
	}

	style := base.Foreground(ParseColor(e.Color, colorZombie))
	if e.Intention == model.IntentionPursue {
		return style.Bold(true)
	}
	return style.Dim(true)
}

// ParseColor parses "#rrggbb" or a colour name; fallback is returned for anything else.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// drawOrder puts corpses below living zombies and survivors on top.
func drawOrder(e game.Entity) int {
	switch {
	case e.Dead:
		return 0
	case e.Kind == game.KindZombie:
		return 1
	default:
		return 2
	}
}
