package view

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/horde/internal/game"
	"github.com/udisondev/horde/internal/model"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(w, h)
	require.NoError(t, ss.Init())
	t.Cleanup(ss.Fini)
	return ss
}

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Time:   1500 * time.Millisecond,
		Frame:  90,
		Width:  80,
		Height: 40,
		Entities: []game.Entity{
			{ObjectID: 0x10000001, Kind: game.KindSurvivor, Name: "ellie", Position: model.Vec3{X: 10, Y: 10}, Health: 60, MaxHealth: 100},
			{ObjectID: 0x10000002, Kind: game.KindSurvivor, Name: "joel", Position: model.Vec3{X: 70, Y: 30}, Dead: true, Hits: 8, MaxHealth: 150},
			{ObjectID: 0x20000001, Kind: game.KindZombie, Name: "walker", Position: model.Vec3{X: 40, Y: 20}, Intention: model.IntentionPursue, HasTarget: true, Color: "#6b8e23"},
			{ObjectID: 0x20000002, Kind: game.KindZombie, Name: "walker", Position: model.Vec3{X: 60, Y: 4}, Dead: true, Intention: model.IntentionDead},
		},
		Stats: game.Stats{Attacks: 11, SurvivorDeaths: 1, ZombieDeaths: 1, ZombiesAlive: 1, SurvivorsAlive: 1},
	}
}

func TestCamera_WorldToScreen(t *testing.T) {
	cam := Camera{ArenaWidth: 80, ArenaHeight: 40, ViewWidth: 40, ViewHeight: 20}

	tests := []struct {
		name    string
		pos     model.Vec3
		sx, sy  int
		visible bool
	}{
		{"origin", model.Vec3{}, 0, 0, true},
		{"middle", model.Vec3{X: 40, Y: 20}, 20, 10, true},
		{"far edge", model.Vec3{X: 80, Y: 40}, 39, 19, true},
		{"negative", model.Vec3{X: -1, Y: 5}, 0, 0, false},
		{"outside", model.Vec3{X: 81, Y: 5}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy, visible := cam.WorldToScreen(tt.pos)
			assert.Equal(t, tt.visible, visible)
			if tt.visible {
				assert.Equal(t, tt.sx, sx)
				assert.Equal(t, tt.sy, sy)
			}
		})
	}

	_, _, visible := Camera{ArenaWidth: 80, ArenaHeight: 40}.WorldToScreen(model.Vec3{X: 1, Y: 1})
	assert.False(t, visible, "empty view")
}

func TestGlyph(t *testing.T) {
	snap := testSnapshot()

	assert.Equal(t, '@', Glyph(snap.Entities[0]))
	assert.Equal(t, '+', Glyph(snap.Entities[1]))
	assert.Equal(t, 'Z', Glyph(snap.Entities[2]))
	assert.Equal(t, '%', Glyph(snap.Entities[3]))
}

func TestEntityStyle_ZombieIntention(t *testing.T) {
	zombie := game.Entity{Kind: game.KindZombie, Color: "#ff0000", Intention: model.IntentionPursue}

	fg, _, attrs := EntityStyle(zombie).Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xff, 0, 0), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	zombie.Intention = model.IntentionIdle
	_, _, attrs = EntityStyle(zombie).Decompose()
	assert.NotZero(t, attrs&tcell.AttrDim)
	assert.Zero(t, attrs&tcell.AttrBold)

	zombie.Dead = true
	fg, _, _ = EntityStyle(zombie).Decompose()
	assert.Equal(t, colorCorpse, fg)
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x6b, 0x8e, 0x23), ParseColor("#6b8e23", tcell.ColorRed))
	assert.Equal(t, tcell.ColorRed, ParseColor("", tcell.ColorRed))
	assert.Equal(t, tcell.ColorRed, ParseColor("not-a-colour", tcell.ColorRed))
}

func TestStatusLine(t *testing.T) {
	line := StatusLine(testSnapshot())

	assert.Contains(t, line, "t=1.5s")
	assert.Contains(t, line, "frame=90")
	assert.Contains(t, line, "zombies=1")
	assert.Contains(t, line, "attacks=11")
}

func TestSurvivorLine(t *testing.T) {
	assert.Equal(t, "ellie 60/100  joel dead (8 hits)", SurvivorLine(testSnapshot()))
}

func TestViewer_Draw(t *testing.T) {
	screen := newSimScreen(t, 42, 24)
	v := NewViewer(screen, nil)

	v.Draw(testSnapshot())

	// Arena 80x40 into 40x20 cells, offset by the border.
	mainc, _, _, _ := screen.GetContent(6, 6)
	assert.Equal(t, '@', mainc)

	mainc, _, style, _ := screen.GetContent(21, 11)
	assert.Equal(t, 'Z', mainc)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)

	mainc, _, _, _ = screen.GetContent(31, 3)
	assert.Equal(t, '%', mainc)

	mainc, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, mainc)

	mainc, _, _, _ = screen.GetContent(0, 22)
	assert.Equal(t, 't', mainc, "HUD starts on the first reserved row")

	assert.Equal(t, 1, v.FramesDrawn())
}

func TestViewer_RunQuitKey(t *testing.T) {
	screen := newSimScreen(t, 42, 24)
	snapshots := make(chan game.Snapshot, 1)
	v := NewViewer(screen, snapshots)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()

	snapshots <- testSnapshot()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQuit)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not quit")
	}
}

func TestViewer_RunContextCancel(t *testing.T) {
	screen := newSimScreen(t, 42, 24)
	v := NewViewer(screen, make(chan game.Snapshot))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not stop")
	}
}
