package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilemotion/common"
	"github.com/milk9111/tilemotion/tilemap"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = color.RGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}
	hazardColor     = color.RGBA{R: 255, G: 0, B: 0, A: 160}
	probeColor      = color.RGBA{R: 0, G: 255, B: 0, A: 200}
)

// tileLayer caches the grid as an image and repaints only cells reported by
// Grid.DrainChanges.
type tileLayer struct {
	grid *tilemap.Grid
	img  *ebiten.Image
}

func newTileLayer(grid *tilemap.Grid) *tileLayer {
	b := grid.WorldBounds()
	l := &tileLayer{grid: grid, img: ebiten.NewImage(int(b.Width), int(b.Height))}
	grid.DrainChanges()
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			l.paint(col, row)
		}
	}
	return l
}

func (l *tileLayer) sync(grid *tilemap.Grid) {
	if grid != l.grid {
		*l = *newTileLayer(grid)
		return
	}
	for _, c := range grid.DrainChanges() {
		l.paint(c.Col, c.Row)
	}
}

func (l *tileLayer) paint(col, row int) {
	r := l.grid.CellRect(col, row)
	cell := l.img.SubImage(image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))).(*ebiten.Image)
	cell.Fill(backgroundColor)

	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.Width), float32(r.Height)
	switch {
	case l.grid.IsSolid(col, row):
		vector.FillRect(l.img, x, y, w, h, colornames.Slategray, false)
		vector.StrokeRect(l.img, x+0.5, y+0.5, w-1, h-1, 1, colornames.Darkslategray, false)
	case l.grid.IsHazard(col, row):
		// Stepped teeth along the cell floor.
		const teeth, steps = 3, 4
		tw := w / teeth
		for i := 0; i < teeth; i++ {
			for j := 0; j < steps; j++ {
				inset := tw / 2 * float32(j) / steps
				sy := y + h - h*2/3*float32(j+1)/steps
				vector.FillRect(l.img, x+float32(i)*tw+inset, sy, tw-2*inset, h*2/3/steps, hazardColor, false)
			}
		}
	}
}

func (l *tileLayer) draw(screen *ebiten.Image) {
	screen.DrawImage(l.img, nil)
}

func strokeBox(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, c, false)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	box := g.sim.PlayerBox()
	st := g.sim.State()

	body := color.Color(colornames.Crimson)
	if g.sim.Spec.Color.Color != nil {
		body = g.sim.Spec.Color.Color
	}
	vector.FillRect(screen, float32(box.X), float32(box.Y), float32(box.Width), float32(box.Height), body, false)

	switch {
	case st == nil:
	case st.Dashing():
		strokeBox(screen, box, colornames.White)
	case st.WallSliding():
		strokeBox(screen, box, colornames.Orange)
	}
	if st != nil {
		// Facing marker on the leading edge.
		fx := box.X + box.Width/2 + float64(st.Facing())*box.Width/2
		vector.StrokeLine(screen, float32(fx), float32(box.Y+4), float32(fx), float32(box.Y+box.Height/2), 2, colornames.Yellow, false)
	}

	if g.showProbe {
		strokeBox(screen, g.sim.Physics.Resolver().GroundProbe(box), probeColor)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  level: %s  player: %s\n", ebiten.ActualFPS(), g.sim.LevelName(), g.sim.Spec.Name)
	b.WriteString(g.sim.Snapshot().String())
	b.WriteByte('\n')
	if st := g.sim.State(); st != nil {
		fmt.Fprintf(&b, "coyote %.3f  buffer %.3f  dash %.3f  dash cd %.3f  wall-jump cd %.3f\n",
			st.CoyoteRemaining(), st.JumpBufferRemaining(), st.DashRemaining(),
			st.DashCooldownRemaining(), st.WallJumpCooldownRemaining())
	}
	if g.script != nil {
		fmt.Fprintf(&b, "script %s frame %d", g.script.Name(), g.script.Frame())
		if g.script.Done() {
			b.WriteString(" (done, R restarts)")
		}
		if err := g.script.Err(); err != nil {
			fmt.Fprintf(&b, " error: %v", err)
		}
		b.WriteByte('\n')
	}
	for _, ev := range g.events {
		fmt.Fprintf(&b, "%5d %s (%.1f, %.1f)\n", ev.Frame, ev.Kind, ev.X, ev.Y)
	}
	if g.statusTimer > 0 {
		b.WriteString(g.status)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 4, 4)
}
