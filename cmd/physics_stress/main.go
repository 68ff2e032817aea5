// Stress test comparing octree raycasts against a linear scan of every collider
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"orbit3d/internal/config"
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const raysPerRun = 2000

func main() {
	configPath := flag.String("config", config.DefaultPath, "simulation config (YAML)")
	flag.Parse()

	ctx, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	fmt.Printf("Octree: threshold %d | depth %d | overlap %.2f\n\n",
		ctx.Octree.ObjectsThreshold, ctx.Octree.DepthMax, ctx.Octree.Overlap)

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000, 20000}

	for _, count := range testCounts {
		testRaycasts(ctx, count)
	}
}

func randomShape(rng *rand.Rand) physics.Shape {
	switch rng.Intn(3) {
	case 0:
		return physics.SphereShape(0.5 + rng.Float32()*0.5)
	case 1:
		return physics.BoxShape(rl.Vector3{X: 0.5 + rng.Float32(), Y: 0.5 + rng.Float32(), Z: 0.5 + rng.Float32()})
	default:
		return physics.CapsuleShape(0.3+rng.Float32()*0.3, 0.5+rng.Float32()*0.5)
	}
}

func randomPoint(rng *rand.Rand, size float32) rl.Vector3 {
	return rl.Vector3{
		X: rng.Float32()*size - size/2,
		Y: rng.Float32()*size - size/2,
		Z: rng.Float32()*size - size/2,
	}
}

func testRaycasts(ctx config.SimulationContext, count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	w := physics.NewWorld(ctx)
	objs := make([]*engine.GameObject, count)
	shapes := make([]physics.Shape, count)

	buildStart := time.Now()
	for i := range objs {
		g := engine.NewGameObject(fmt.Sprintf("collider_%d", i))
		g.Transform.Position = randomPoint(rng, spawnSize)
		g.Transform.Rotation = rl.QuaternionFromEuler(rng.Float32()*3, rng.Float32()*3, rng.Float32()*3)
		shapes[i] = randomShape(rng)
		g.AddComponent(w.NewRigidBody(shapes[i]))
		w.Add(g)
		objs[i] = g
	}
	buildTime := time.Since(buildStart)

	type ray struct {
		origin, dir rl.Vector3
		far         float32
	}
	rays := make([]ray, raysPerRun)
	for i := range rays {
		rays[i] = ray{
			origin: randomPoint(rng, spawnSize),
			dir:    rl.Vector3Normalize(randomPoint(rng, 2)),
			far:    10 + rng.Float32()*spawnSize/2,
		}
	}

	// Time octree
	treeStart := time.Now()
	treeHits := 0
	for _, r := range rays {
		if _, ok := w.Raycast(r.origin, r.dir, r.far, nil); ok {
			treeHits++
		}
	}
	treeTime := time.Since(treeStart) / raysPerRun

	// Time linear scan
	scanStart := time.Now()
	scanHits := 0
	for _, r := range rays {
		for i, g := range objs {
			if _, ok := physics.RaycastShape(g, shapes[i], r.origin, r.dir, r.far); ok {
				scanHits++
				break
			}
		}
	}
	scanTime := time.Since(scanStart) / raysPerRun

	// Calculate speedup
	speedup := float64(scanTime) / float64(treeTime)

	fmt.Printf("%5d colliders: build %8v | octree %8v/ray (%4d hits) | scan %10v/ray (%4d hits) | %.1fx speedup\n",
		count, buildTime.Round(time.Microsecond),
		treeTime.Round(time.Nanosecond), treeHits,
		scanTime.Round(time.Nanosecond), scanHits, speedup)
}
