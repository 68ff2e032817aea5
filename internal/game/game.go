package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"orbit3d/internal/camera"
	"orbit3d/internal/config"
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"
	"orbit3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerTag marks the body the keyboard drives and the camera follows.
const PlayerTag = "player"

type Game struct {
	World     *world.World
	Camera    *camera.OrbitCamera
	Player    *engine.GameObject
	ScenePath string
	DebugMode bool

	rng     *rand.Rand
	resets  int
	panel   rl.Rectangle
	message string

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(ctx config.SimulationContext, scenePath string) *Game {
	return &Game{
		World:     world.New(ctx),
		Camera:    camera.New(rl.Vector3{}, 40),
		ScenePath: scenePath,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load reads the scene file and hooks up the player and safety net log.
func (g *Game) Load() error {
	if err := g.World.LoadScene(g.ScenePath); err != nil {
		return err
	}

	if players := g.World.Scene.FindByTag(PlayerTag); len(players) > 0 {
		g.Player = players[0]
		g.Camera.Target = g.Player.WorldPosition()
	} else {
		log.Printf("Game: no object tagged %q in %s, camera stays on the origin", PlayerTag, g.ScenePath)
	}

	g.World.Physics.SafetyNetStarted.AddListener(func(rb *physics.RigidBody) {
		g.resets++
		g.message = fmt.Sprintf("%s fell off, resetting", rb.GetGameObject().Name)
	})
	g.World.Physics.SafetyNetEnded.AddListener(func(rb *physics.RigidBody) {
		g.message = fmt.Sprintf("%s restored", rb.GetGameObject().Name)
	})

	g.World.Scene.Start()
	return nil
}

func (g *Game) Run() error {
	if err := g.Load(); err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "orbit3d")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func (g *Game) playerBody() *physics.RigidBody {
	if g.Player == nil {
		return nil
	}
	return engine.GetComponent[*physics.RigidBody](g.Player)
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rb := g.playerBody(); rb != nil && !g.World.Paused {
		applyInput(rb, readInput(), deltaTime*60*g.World.TimeScale)
	}

	g.World.Update(deltaTime)

	if rb := g.playerBody(); rb != nil {
		up := rl.Vector3RotateByQuaternion(rb.Axes.Up, g.Player.WorldRotation())
		g.Camera.Follow(g.Player.WorldPosition(), up)
	}
	if !rl.CheckCollisionPointRec(rl.GetMousePosition(), g.panel) {
		g.Camera.Update()
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.World.Paused = !g.World.Paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.SpawnBall()
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// SpawnBall drops a ball above a random gravity source.
func (g *Game) SpawnBall() {
	sources := g.World.Physics.GravitySources()
	if len(sources) == 0 {
		g.World.SpawnBall(spawnPoint(g.rng, rl.Vector3{}, 0, 10), 0.5, rl.Orange)
		return
	}
	src := sources[g.rng.Intn(len(sources))]
	obj := src.GetGameObject()
	radius := src.ExtentInDirection(rl.Vector3{Y: 1})
	g.World.SpawnBall(spawnPoint(g.rng, obj.WorldPosition(), radius, 8), 0.5, rl.Orange)
}

func (g *Game) Draw() {
	camera := g.Camera.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(12, 12, 20, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	for _, obj := range g.World.Visible(camera, aspect) {
		drawBody(obj)
	}
	if g.DebugMode {
		g.drawDebug()
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Q/E to turn, Space to jump, right drag to orbit", 10, 10, 20, rl.LightGray)
	rl.DrawText("N spawns a ball, P pauses, F1 toggles debug view", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if g.message != "" {
		rl.DrawText(g.message, 10, int32(rl.GetScreenHeight())-30, 20, rl.Gold)
	}

	g.drawPanel()

	if g.DebugMode {
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), 10, 85, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, 105, 16, rl.Green)
		if rb := g.playerBody(); rb != nil {
			rl.DrawText(fmt.Sprintf("Grounded: %v  Moving: %v  Gravity body: %d",
				rb.IsGrounded(), rb.IsMoving(), rb.GravityBody), 10, 125, 16, rl.Yellow)
		}
	}
}
