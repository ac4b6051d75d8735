// Package view renders arena snapshots in the terminal.
package view

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/udisondev/horde/internal/game"
)

// hudRows is the number of rows reserved at the bottom for the HUD.
const hudRows = 2

// ErrQuit is returned by Run when the user asks to quit.
var ErrQuit = errors.New("viewer: quit requested")

// Viewer draws the latest snapshot on a tcell screen.
// Snapshots are consumed on the viewer goroutine; the simulation never waits for it.
type Viewer struct {
	screen    tcell.Screen
	snapshots <-chan game.Snapshot

	last    game.Snapshot
	hasLast bool
	frames  int
}

// NewViewer creates a viewer. The screen must be initialized; the caller finalizes it.
func NewViewer(screen tcell.Screen, snapshots <-chan game.Snapshot) *Viewer {
	return &Viewer{
		screen:    screen,
		snapshots: snapshots,
	}
}

// Run draws snapshots until ctx is cancelled (returns nil) or the user presses
// q, Esc or Ctrl-C (returns ErrQuit).
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if quit := v.handleEvent(ev); quit {
				slog.Info("viewer quit requested", "framesDrawn", v.frames)
				return ErrQuit
			}

		case snap := <-v.snapshots:
			v.last = snap
			v.hasLast = true
			v.Draw(snap)
		}
	}
}

// FramesDrawn returns the number of snapshots drawn.
func (v *Viewer) FramesDrawn() int {
	return v.frames
}

func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return true
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
		if v.hasLast {
			v.Draw(v.last)
		}
	}
	return false
}

// Draw renders one snapshot: arena border, entities, then the HUD rows.
func (v *Viewer) Draw(snap game.Snapshot) {
	v.screen.Clear()

	w, h := v.screen.Size()
	cam := Camera{
		ArenaWidth:  snap.Width,
		ArenaHeight: snap.Height,
		ViewWidth:   w - 2,
		ViewHeight:  h - hudRows - 2,
	}
	v.drawBorder(cam)

	entities := slices.Clone(snap.Entities)
	slices.SortStableFunc(entities, func(a, b game.Entity) int {
		return cmp.Compare(drawOrder(a), drawOrder(b))
	})
	for _, e := range entities {
		sx, sy, visible := cam.WorldToScreen(e.Position)
		if !visible {
			continue
		}
		// +1 for the border.
		v.screen.SetContent(sx+1, sy+1, Glyph(e), nil, EntityStyle(e))
	}

	hud := tcell.StyleDefault.Foreground(colorHUD)
	v.drawText(0, h-hudRows, StatusLine(snap), hud)
	v.drawText(0, h-hudRows+1, SurvivorLine(snap), hud)

	v.screen.Show()
	v.frames++
}

func (v *Viewer) drawBorder(cam Camera) {
	if cam.ViewWidth <= 0 || cam.ViewHeight <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(colorArenaBorder)
	right, bottom := cam.ViewWidth+1, cam.ViewHeight+1

	for x := 1; x < right; x++ {
		v.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		v.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < bottom; y++ {
		v.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		v.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	v.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	v.screen.SetContent(right, 0, tcell.RuneURCorner, nil, style)
	v.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	v.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// drawText writes s from column x, advancing by each rune's display width.
func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
