package world

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit3d/internal/engine"
)

// idlePulseRate is the idle glow frequency in radians per second.
const idlePulseRate = 2.0

// Appearance is the draw color of an object. Gravity sources start pulsing
// once the physics world adopts them.
type Appearance struct {
	engine.BaseComponent
	Color rl.Color

	idle  bool
	phase float32
}

func NewAppearance(color rl.Color) *Appearance {
	return &Appearance{Color: color}
}

// PlayIdle starts the idle pulse.
func (a *Appearance) PlayIdle() {
	a.idle = true
}

func (a *Appearance) Idle() bool {
	return a.idle
}

func (a *Appearance) Update(deltaTime float32) {
	if a.idle {
		a.phase = math32.Mod(a.phase+deltaTime*idlePulseRate, 2*math32.Pi)
	}
}

// Tint returns Color, brightened by the idle pulse.
func (a *Appearance) Tint() rl.Color {
	if !a.idle {
		return a.Color
	}
	glow := 0.15 * (1 + math32.Sin(a.phase)) / 2
	return rl.ColorBrightness(a.Color, glow)
}
