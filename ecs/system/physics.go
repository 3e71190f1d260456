package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeObstacle
	collisionTypeSolid
)

const defaultBodySize = 32.0

// PhysicsSystem owns the Chipmunk space. Obstacles become static boxes
// whose contacts with players are filtered by the traversal gate.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	// world is only set while the space is stepping.
	world *ecs.World

	entities       map[ecs.Entity]*bodyInfo
	playerShapes   map[*cp.Shape]ecs.Entity
	obstacleShapes map[*cp.Shape]ecs.Entity

	contacts map[contactKey]bool
	pending  []ecs.CollisionEvent
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

type contactKey struct {
	player   ecs.Entity
	obstacle ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:          newSpace(),
		entities:       make(map[ecs.Entity]*bodyInfo),
		playerShapes:   make(map[*cp.Shape]ecs.Entity),
		obstacleShapes: make(map[*cp.Shape]ecs.Entity),
		contacts:       make(map[contactKey]bool),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	if dt := w.Delta(); dt > 0 {
		ps.world = w
		ps.space.Step(dt)
		ps.world = nil
	}

	ps.syncTransforms(w)
	ps.flushEvents(w)
}

// Sync creates bodies for new entities and removes those of destroyed
// ones. Update calls it every tick; call it directly after loading a level
// so overlap queries work before the first step.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
}

// Overlaps returns the obstacles under e, sorted by ascending obstacle ID.
// A blocking obstacle only counts once e's center is inside it; the solver
// leaves a sliver of overlap against walls that must not lift the player.
func (ps *PhysicsSystem) Overlaps(w *ecs.World, e ecs.Entity) []height.Obstacle {
	if ps == nil || ps.space == nil || w == nil {
		return nil
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	radius := defaultBodySize / 2
	if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		radius = colliderRadius(bodyComp)
	}
	var state *height.State
	if hc, ok := ecs.Get(w, e, component.HeightComponent.Kind()); ok {
		state = hc.State
	}

	center := cp.Vector{X: transform.X, Y: transform.Y}
	var out []height.Obstacle
	ps.space.BBQuery(cp.NewBBForCircle(center, radius), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		obstacleEntity, ok := ps.obstacleShapes[shape]
		if !ok {
			return
		}
		o, ok := ecs.Get(w, obstacleEntity, component.ObstacleComponent.Kind())
		if !ok || !o.OverlapsCircle(center, radius) {
			return
		}
		if state != nil && !o.Bounds.ContainsVect(center) && state.Gate().ShouldBlock(*o, state.Effective()) {
			return
		}
		out = append(out, *o)
	}, nil)

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func colliderRadius(bodyComp *component.PhysicsBody) float64 {
	if bodyComp.Radius > 0 {
		return bodyComp.Radius
	}
	if bodyComp.Width > 0 && bodyComp.Height > 0 {
		return math.Max(bodyComp.Width, bodyComp.Height) / 2
	}
	return defaultBodySize / 2
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	gateHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeObstacle)
	gateHandler.UserData = ps
	gateHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		key, ok := sys.contactFor(arb)
		if !ok {
			return true
		}
		return sys.gate(key)
	}
	gateHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		if key, ok := sys.contactFor(arb); ok {
			delete(sys.contacts, key)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) contactFor(arb *cp.Arbiter) (contactKey, bool) {
	shapeA, shapeB := arb.Shapes()
	player, ok := ps.playerShapes[shapeA]
	obstacleShape := shapeB
	if !ok {
		player, ok = ps.playerShapes[shapeB]
		if !ok {
			return contactKey{}, false
		}
		obstacleShape = shapeA
	}
	obstacle, ok := ps.obstacleShapes[obstacleShape]
	if !ok {
		return contactKey{}, false
	}
	return contactKey{player: player, obstacle: obstacle}, true
}

// gate reports whether the contact should be solved this step and records
// a collision event whenever the decision for a pair changes.
func (ps *PhysicsSystem) gate(key contactKey) bool {
	w := ps.world
	if w == nil {
		return true
	}
	hc, ok := ecs.Get(w, key.player, component.HeightComponent.Kind())
	if !ok || hc.State == nil {
		return true
	}
	o, ok := ecs.Get(w, key.obstacle, component.ObstacleComponent.Kind())
	if !ok {
		return true
	}

	effective := hc.State.Effective()
	block := hc.State.Gate().ShouldBlock(*o, effective)
	// Standing on the obstacle while the base is still relaxing up to it.
	if block && hc.State.Target() == o.Height {
		if info, ok := ps.entities[key.player]; ok && info.body != nil && o.Bounds.ContainsVect(info.body.Position()) {
			block = false
		}
	}

	if prev, seen := ps.contacts[key]; !seen || prev != block {
		ps.contacts[key] = block
		kind := ecs.CollisionEventPassOver
		if block {
			kind = ecs.CollisionEventBlocked
		}
		ps.pending = append(ps.pending, ecs.CollisionEvent{
			Entity:    key.player,
			Obstacle:  key.obstacle,
			Kind:      kind,
			Effective: effective,
			Height:    o.Height,
		})
	}
	return block
}

func (ps *PhysicsSystem) flushEvents(w *ecs.World) {
	for _, evt := range ps.pending {
		w.Events().Push(ecs.Event{Type: ecs.EventTypeCollision, Data: evt})
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		var info *bodyInfo
		if o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok {
			info = ps.createObstacle(e, *o, bodyComp)
		} else {
			info = ps.createBodyInfo(e, transform, bodyComp, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
		}
		if info == nil {
			continue
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		if len(info.shapes) > 0 {
			bodyComp.Shape = info.shapes[0]
		}
	}
}

func (ps *PhysicsSystem) createObstacle(e ecs.Entity, o height.Obstacle, bodyComp *component.PhysicsBody) *bodyInfo {
	shape := cp.NewBox2(ps.space.StaticBody, o.Bounds, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeObstacle)
	ps.space.AddShape(shape)
	ps.obstacleShapes[shape] = e

	return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = defaultBodySize, defaultBodySize
	}
	center := cp.Vector{X: transform.X, Y: transform.Y}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			shape = cp.NewBox2(ps.space.StaticBody, cp.NewBBForExtents(center, width/2, height/2), 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Top-down bodies never rotate.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(center)
	body.SetAngle(0)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
		ps.playerShapes[shape] = e
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.obstacleShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}

	for key := range ps.contacts {
		if !w.IsAlive(key.player) || !w.IsAlive(key.obstacle) {
			delete(ps.contacts, key)
		}
	}
}
