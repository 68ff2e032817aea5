// Package config holds the SimulationContext: the process-level defaults a
// physics World is constructed with. It is loaded from YAML and falls back to
// Default() when no file is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the demo looks for a config file.
const DefaultPath = "config/physics.yaml"

// Vec3 is a YAML-friendly [x, y, z] triple.
type Vec3 [3]float32

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type OctreeConfig struct {
	// ObjectsThreshold is the item count above which a node splits.
	ObjectsThreshold int `yaml:"objects_threshold"`
	DepthMax         int `yaml:"depth_max"`
	// Overlap loosens node bounds by this fraction of their width.
	Overlap float32 `yaml:"overlap"`
}

type SafetyNetConfig struct {
	Enabled bool `yaml:"enabled"`
	// Timeout defaults to the context's IntersectionTimeout when zero.
	Timeout time.Duration `yaml:"timeout"`
}

// BodyDefaults seed every new RigidBody.
type BodyDefaults struct {
	MovementDamping float32 `yaml:"movement_damping"`
	GravityDamping  float32 `yaml:"gravity_damping"`
	LerpDelta       float32 `yaml:"lerp_delta"`
}

type SimulationContext struct {
	GravitySource    Vec3 `yaml:"gravity_source"`
	GravityMagnitude Vec3 `yaml:"gravity_magnitude"`
	// IntersectionTimeout is how long a body may go without touching its
	// current gravity source before a nearer source can take over.
	IntersectionTimeout time.Duration   `yaml:"intersection_timeout"`
	Octree              OctreeConfig    `yaml:"octree"`
	SafetyNet           SafetyNetConfig `yaml:"safety_net"`
	Bodies              BodyDefaults    `yaml:"bodies"`
}

func Default() SimulationContext {
	return SimulationContext{
		GravitySource:       Vec3{0, 0, 0},
		GravityMagnitude:    Vec3{0, -1, 0},
		IntersectionTimeout: 500 * time.Millisecond,
		Octree: OctreeConfig{
			ObjectsThreshold: 8,
			DepthMax:         8,
			Overlap:          0.15,
		},
		SafetyNet: SafetyNetConfig{
			Enabled: true,
		},
		Bodies: BodyDefaults{
			MovementDamping: 0.5,
			GravityDamping:  0.99,
			LerpDelta:       0.1,
		},
	}
}

// Load reads a SimulationContext from path on top of Default(). A missing
// file is not an error: the defaults are returned.
func Load(path string) (SimulationContext, error) {
	ctx := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config: %s not found, using defaults", path)
		return ctx, nil
	}
	if err != nil {
		return ctx, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(data, &ctx); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return ctx, nil
}

// Parse decodes YAML into ctx, keeping fields the document does not set,
// and validates the result.
func Parse(data []byte, ctx *SimulationContext) error {
	if err := yaml.Unmarshal(data, ctx); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return ctx.Validate()
}

func (c SimulationContext) Validate() error {
	if c.IntersectionTimeout < 0 {
		return fmt.Errorf("intersection_timeout must not be negative, got %s", c.IntersectionTimeout)
	}
	if c.SafetyNet.Timeout < 0 {
		return fmt.Errorf("safety_net.timeout must not be negative, got %s", c.SafetyNet.Timeout)
	}
	if c.Octree.ObjectsThreshold < 1 {
		return fmt.Errorf("octree.objects_threshold must be at least 1, got %d", c.Octree.ObjectsThreshold)
	}
	if c.Octree.DepthMax < 0 {
		return fmt.Errorf("octree.depth_max must not be negative, got %d", c.Octree.DepthMax)
	}
	if c.Octree.Overlap < 0 {
		return fmt.Errorf("octree.overlap must not be negative, got %g", c.Octree.Overlap)
	}
	for name, d := range map[string]float32{
		"bodies.movement_damping": c.Bodies.MovementDamping,
		"bodies.gravity_damping":  c.Bodies.GravityDamping,
		"bodies.lerp_delta":       c.Bodies.LerpDelta,
	} {
		if d < 0 || d > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %g", name, d)
		}
	}
	return nil
}

// SafetyNetTimeout resolves the effective safety net timeout in seconds.
func (c SimulationContext) SafetyNetTimeout() float32 {
	if c.SafetyNet.Timeout > 0 {
		return float32(c.SafetyNet.Timeout.Seconds())
	}
	return float32(c.IntersectionTimeout.Seconds())
}
