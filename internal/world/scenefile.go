package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"orbit3d/internal/components"
	"orbit3d/internal/config"
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects"`
}

// ObjectDef is one GameObject. Rotation is Euler angles in degrees.
type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components"`
	Children   []ObjectDef       `json:"children,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type appearanceDef struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `json:"type"`
	Radius float32    `json:"radius"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type capsuleColliderDef struct {
	Type       string  `json:"type"`
	Radius     float32 `json:"radius"`
	HalfHeight float32 `json:"halfHeight"`
}

// meshColliderDef holds either a plane size or raw triangles, each given
// as nine model-space coordinates.
type meshColliderDef struct {
	Type      string       `json:"type"`
	Plane     []float32    `json:"plane,omitempty"`
	Triangles [][9]float32 `json:"triangles,omitempty"`
}

type rigidBodyDef struct {
	Type             string      `json:"type"`
	Dynamic          bool        `json:"dynamic,omitempty"`
	GravitySource    bool        `json:"gravitySource,omitempty"`
	MovementDamping  *float32    `json:"movementDamping,omitempty"`
	GravityDamping   *float32    `json:"gravityDamping,omitempty"`
	LerpDelta        *float32    `json:"lerpDelta,omitempty"`
	GravityMagnitude *[3]float32 `json:"gravityMagnitude,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	var r, g, b, a uint8
	if n, _ := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); n == 4 {
		return rl.Color{R: r, G: g, B: b, A: a}
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func array3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// ReadScene loads the object trees stored at path. Bodies are seeded with
// the given defaults before per-object overrides apply.
func ReadScene(path string, bodies config.BodyDefaults) ([]*engine.GameObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data, bodies)
}

func ParseScene(data []byte, bodies config.BodyDefaults) ([]*engine.GameObject, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	roots := make([]*engine.GameObject, 0, len(sf.Objects))
	for _, objDef := range sf.Objects {
		l := loader{bodies: bodies}
		g, err := l.build(objDef)
		if err != nil {
			return nil, fmt.Errorf("parse scene: %w", err)
		}
		// Meshes bake world-space triangles, so wait for the full hierarchy
		for _, p := range l.meshes {
			p.mesh.BuildFromTriangles(p.triangles)
		}
		roots = append(roots, g)
	}
	return roots, nil
}

type pendingMesh struct {
	mesh      *components.MeshCollider
	triangles []components.Triangle
}

type loader struct {
	bodies config.BodyDefaults
	meshes []pendingMesh
}

func (l *loader) build(objDef ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(objDef.Name)
	g.Tags = objDef.Tags
	g.Transform.Position = vec3(objDef.Position)
	g.Transform.Rotation = rl.QuaternionFromEuler(
		objDef.Rotation[0]*rl.Deg2rad,
		objDef.Rotation[1]*rl.Deg2rad,
		objDef.Rotation[2]*rl.Deg2rad,
	)

	// Default scale to 1 if zero
	if objDef.Scale != [3]float32{} {
		g.Transform.Scale = vec3(objDef.Scale)
	}

	for _, raw := range objDef.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("object %q: %w", objDef.Name, err)
		}

		var err error
		switch header.Type {
		case "Appearance":
			err = loadAppearance(g, raw)
		case "BoxCollider":
			err = loadBoxCollider(g, raw)
		case "SphereCollider":
			err = loadSphereCollider(g, raw)
		case "CapsuleCollider":
			err = loadCapsuleCollider(g, raw)
		case "MeshCollider":
			err = l.loadMeshCollider(g, raw)
		case "RigidBody":
			err = l.loadRigidBody(g, raw)
		default:
			log.Printf("Scene: %q has unknown component type %q, skipping", objDef.Name, header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("object %q: %s: %w", objDef.Name, header.Type, err)
		}
	}

	for _, childDef := range objDef.Children {
		child, err := l.build(childDef)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

func loadAppearance(g *engine.GameObject, raw json.RawMessage) error {
	var def appearanceDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	g.AddComponent(NewAppearance(lookupColor(def.Color)))
	return nil
}

func loadBoxCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def boxColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	col := components.NewBoxCollider(vec3(def.Size))
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadSphereCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def sphereColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	if def.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", def.Radius)
	}
	col := components.NewSphereCollider(def.Radius)
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadCapsuleCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def capsuleColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	if def.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", def.Radius)
	}
	g.AddComponent(components.NewCapsuleCollider(def.Radius, def.HalfHeight))
	return nil
}

func (l *loader) loadMeshCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def meshColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}

	var tris []components.Triangle
	switch {
	case len(def.Plane) >= 2:
		tris = components.PlaneTriangles(def.Plane[0], def.Plane[1])
	case len(def.Triangles) > 0:
		tris = make([]components.Triangle, len(def.Triangles))
		for i, t := range def.Triangles {
			tris[i] = components.NewTriangle(
				rl.Vector3{X: t[0], Y: t[1], Z: t[2]},
				rl.Vector3{X: t[3], Y: t[4], Z: t[5]},
				rl.Vector3{X: t[6], Y: t[7], Z: t[8]},
			)
		}
	default:
		return fmt.Errorf("needs a plane size or triangles")
	}

	mesh := components.NewMeshCollider()
	g.AddComponent(mesh)
	l.meshes = append(l.meshes, pendingMesh{mesh: mesh, triangles: tris})
	return nil
}

func (l *loader) loadRigidBody(g *engine.GameObject, raw json.RawMessage) error {
	var def rigidBodyDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return err
	}
	rb := physics.NewRigidBodyWithDefaults(l.bodies)
	rb.Dynamic = def.Dynamic
	rb.GravitySource = def.GravitySource
	if def.MovementDamping != nil {
		rb.VelocityMovement.Damping = *def.MovementDamping
	}
	if def.GravityDamping != nil {
		rb.VelocityGravity.Damping = *def.GravityDamping
	}
	if def.LerpDelta != nil {
		rb.LerpDelta = *def.LerpDelta
	}
	if def.GravityMagnitude != nil {
		m := vec3(*def.GravityMagnitude)
		rb.GravityMagnitude = &m
	}
	g.AddComponent(rb)
	return nil
}

// LoadScene reads path and adds every root to the scene, which registers
// their bodies with the physics world.
func (w *World) LoadScene(path string) error {
	roots, err := ReadScene(path, w.Physics.Context.Bodies)
	if err != nil {
		return err
	}
	for _, g := range roots {
		w.Scene.AddGameObject(g)
	}
	log.Printf("Scene: loaded %d objects from %s (%d bodies, %d gravity sources)",
		len(roots), path, w.Physics.BodyCount(), w.Physics.GravityCount())
	return nil
}

// --- Saving ---

// SaveScene writes the current scene, skipping objects tagged "runtime".
func (w *World) SaveScene(path string) error {
	data, err := EncodeScene(w.Scene.GameObjects)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func EncodeScene(roots []*engine.GameObject) ([]byte, error) {
	var sf SceneFile
	for _, g := range roots {
		if g.HasTag(RuntimeTag) {
			continue
		}
		objDef, err := encodeObject(g)
		if err != nil {
			return nil, err
		}
		sf.Objects = append(sf.Objects, objDef)
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func encodeObject(g *engine.GameObject) (ObjectDef, error) {
	euler := rl.QuaternionToEuler(g.Transform.Rotation)
	objDef := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Position: array3(g.Transform.Position),
		Rotation: array3(rl.Vector3Scale(euler, rl.Rad2deg)),
		Scale:    array3(g.Transform.Scale),
	}

	for _, c := range g.Components() {
		raw, err := serializeComponent(c)
		if err != nil {
			return ObjectDef{}, fmt.Errorf("marshal %q: %w", g.Name, err)
		}
		if raw != nil {
			objDef.Components = append(objDef.Components, raw)
		}
	}

	for _, child := range g.Children {
		if child.HasTag(RuntimeTag) {
			continue
		}
		childDef, err := encodeObject(child)
		if err != nil {
			return ObjectDef{}, err
		}
		objDef.Children = append(objDef.Children, childDef)
	}
	return objDef, nil
}

func serializeComponent(c engine.Component) (json.RawMessage, error) {
	var def any

	switch comp := c.(type) {
	case *Appearance:
		def = appearanceDef{Type: "Appearance", Color: lookupColorName(comp.Color)}

	case *components.BoxCollider:
		def = boxColliderDef{
			Type:   "BoxCollider",
			Size:   array3(comp.Size),
			Offset: array3(comp.Offset),
		}

	case *components.SphereCollider:
		def = sphereColliderDef{
			Type:   "SphereCollider",
			Radius: comp.Radius,
			Offset: array3(comp.Offset),
		}

	case *components.CapsuleCollider:
		def = capsuleColliderDef{
			Type:       "CapsuleCollider",
			Radius:     comp.Radius,
			HalfHeight: comp.HalfHeight,
		}

	case *components.MeshCollider:
		d := meshColliderDef{Type: "MeshCollider"}
		for _, t := range comp.Local {
			d.Triangles = append(d.Triangles, [9]float32{
				t.V0.X, t.V0.Y, t.V0.Z,
				t.V1.X, t.V1.Y, t.V1.Z,
				t.V2.X, t.V2.Y, t.V2.Z,
			})
		}
		def = d

	case *physics.RigidBody:
		movement := comp.VelocityMovement.Damping
		gravity := comp.VelocityGravity.Damping
		lerp := comp.LerpDelta
		d := rigidBodyDef{
			Type:            "RigidBody",
			Dynamic:         comp.Dynamic,
			GravitySource:   comp.GravitySource,
			MovementDamping: &movement,
			GravityDamping:  &gravity,
			LerpDelta:       &lerp,
		}
		if comp.GravityMagnitude != nil {
			m := array3(*comp.GravityMagnitude)
			d.GravityMagnitude = &m
		}
		def = d

	default:
		return nil, nil
	}

	return json.Marshal(def)
}
