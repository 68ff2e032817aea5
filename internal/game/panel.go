package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 240
	panelHeight = 300
	panelMargin = 10
	rowHeight   = 24
)

// Theme colors - indigo dark theme
var (
	colorBgDark        = rl.NewColor(10, 10, 15, 255)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawPanel draws the simulation controls in the top right corner.
func (g *Game) drawPanel() {
	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	y := float32(panelMargin)
	g.panel = rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: panelHeight}
	gui.Panel(g.panel, "Simulation")

	row := func(i int) rl.Rectangle {
		return rl.Rectangle{X: x + 10, Y: y + 32 + float32(i)*(rowHeight+6), Width: panelWidth - 20, Height: rowHeight}
	}
	w := g.World
	pw := w.Physics

	slider := row(0)
	slider.X += 70
	slider.Width -= 110
	gui.Label(row(0), "Time scale")
	w.TimeScale = gui.Slider(slider, "", fmt.Sprintf("%.2f", w.TimeScale), w.TimeScale, 0, 4)

	check := row(1)
	check.Width = rowHeight
	w.Paused = gui.CheckBox(check, "Paused", w.Paused)
	check = row(2)
	check.Width = rowHeight
	pw.Context.SafetyNet.Enabled = gui.CheckBox(check, "Safety net", pw.Context.SafetyNet.Enabled)
	check = row(3)
	check.Width = rowHeight
	g.DebugMode = gui.CheckBox(check, "Debug view", g.DebugMode)

	if gui.Button(row(4), "Spawn ball") {
		g.SpawnBall()
	}
	if gui.Button(row(5), "Clear spawned") {
		n := w.Despawn()
		g.message = fmt.Sprintf("removed %d balls", n)
	}

	gui.Label(row(6), fmt.Sprintf("Bodies %d  Dynamic %d  Sources %d",
		pw.BodyCount(), pw.DynamicCount(), pw.GravityCount()))
	gui.Label(row(7), fmt.Sprintf("Octree entries %d  Resets %d", pw.Index().Len(), g.resets))
}
