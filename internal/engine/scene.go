package engine

// Scene holds root GameObjects and notifies listeners when subtrees enter or
// leave it. Physics and other systems subscribe to OnAttach/OnDetach instead
// of walking the scene themselves.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject

	OnAttach EventWithArg[*GameObject]
	OnDetach EventWithArg[*GameObject]
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

// AddGameObject adds g as a root object and fires OnAttach for its subtree.
func (s *Scene) AddGameObject(g *GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	s.GameObjects = append(s.GameObjects, g)
	s.register(g)
	s.OnAttach.Invoke(g)
}

// Attach parents child under parent, which must already be in the scene.
func (s *Scene) Attach(parent, child *GameObject) {
	s.removeRoot(child)
	parent.AddChild(child)
	s.register(child)
	s.OnAttach.Invoke(child)
}

// RemoveGameObject removes g and its subtree from the scene, detaching it
// from its parent when g is not a root.
func (s *Scene) RemoveGameObject(g *GameObject) {
	if !s.removeRoot(g) && g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	s.unregister(g)
	s.OnDetach.Invoke(g)
}

func (s *Scene) removeRoot(g *GameObject) bool {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) register(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	for obj := range g.Traverse() {
		obj.Scene = s
		s.uidMap[obj.UID] = obj
	}
}

func (s *Scene) unregister(g *GameObject) {
	for obj := range g.Traverse() {
		obj.Scene = nil
		delete(s.uidMap, obj.UID)
	}
}

// FindByUID returns the object with the given UID anywhere in the scene.
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, root := range s.GameObjects {
		for g := range root.Traverse() {
			if g.Name == name {
				return g
			}
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, root := range s.GameObjects {
		for g := range root.Traverse() {
			if g.HasTag(tag) {
				result = append(result, g)
			}
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, root := range s.GameObjects {
		for g := range root.Traverse() {
			g.Start()
		}
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
