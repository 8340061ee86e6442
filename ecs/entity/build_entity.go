package entity

import (
	"fmt"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/prefabs"
	"github.com/milk9111/jamfest/puzzle"
)

// Request describes one entity to build.
type Request struct {
	Kind puzzle.Kind
	X    float64
	Y    float64
	// Collidable entities get a physics body when their look has one.
	Collidable bool
	Props      prefabs.PropsSpec
}

type buildContext struct {
	req  Request
	look prefabs.LookSpec
	spec *prefabs.EntitiesSpec
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"puzzle_tag":   addPuzzleTag,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"physics_body": addPhysicsBody,
	"velocity":     addVelocity,
	"player":       addPlayer,
	"sign":         addSign,
	"hazard":       addHazard,
	"landing":      addLanding,
}

var componentBuildOrder = []string{
	"transform",
	"puzzle_tag",
	"sprite",
	"render_layer",
	"physics_body",
	"velocity",
	"player",
	"sign",
	"hazard",
	"landing",
}

// Builder creates entities from their kind using the look table.
type Builder struct {
	Spec *prefabs.EntitiesSpec
}

func NewBuilder(spec *prefabs.EntitiesSpec) *Builder {
	return &Builder{Spec: spec}
}

// Build creates the entity described by req. On error the partly built
// entity is destroyed.
func (b *Builder) Build(w *ecs.World, req Request) (ecs.Entity, error) {
	if req.Kind == puzzle.KindUnknown {
		return 0, fmt.Errorf("entity: build: unknown kind")
	}
	ctx := &buildContext{req: req, look: b.Spec.Look(req.Kind), spec: b.Spec}
	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		if err := componentRegistry[name](w, e, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: build %s: %s: %w", req.Kind, name, err)
		}
	}
	return e, nil
}

func addTransform(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: ctx.req.X, Y: ctx.req.Y})
}

func addPuzzleTag(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.PuzzleTagComponent.Kind(), &component.PuzzleTag{Kind: ctx.req.Kind})
}

func addSprite(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	sprite := &component.Sprite{Width: ctx.look.Width, Height: ctx.look.Height}
	if ctx.look.Color != nil {
		sprite.Color = ctx.look.Color.Color
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: ctx.look.Layer})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if !ctx.req.Collidable || ctx.look.Body == prefabs.BodyNone {
		return nil
	}
	body := &component.PhysicsBody{
		Width:  ctx.look.Width,
		Height: ctx.look.Height,
		Mass:   1,
		Sensor: ctx.look.Sensor,
	}
	switch ctx.look.Body {
	case prefabs.BodyStatic:
		body.Type = component.BodyStatic
	case prefabs.BodyKinematic:
		body.Type = component.BodyKinematic
	case prefabs.BodyDynamic:
		body.Type = component.BodyDynamic
	default:
		return fmt.Errorf("unknown body type %q", ctx.look.Body)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

// addVelocity gives every moving body a velocity slot the puzzle can steer.
func addVelocity(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if !ctx.req.Collidable {
		return nil
	}
	if ctx.look.Body != prefabs.BodyKinematic && ctx.look.Body != prefabs.BodyDynamic {
		return nil
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addPlayer(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if ctx.req.Kind != puzzle.KindPlayer {
		return nil
	}
	speed := 100.0
	if ctx.spec != nil && ctx.spec.Player.MoveSpeed > 0 {
		speed = ctx.spec.Player.MoveSpeed
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: speed}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addSign(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if ctx.req.Kind != puzzle.KindSign {
		return nil
	}
	return ecs.Add(w, e, component.SignComponent.Kind(), &component.Sign{Text: ctx.req.Props.Text})
}

func addHazard(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if ctx.req.Kind != puzzle.KindLava {
		return nil
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Tracked: ctx.req.Props.Tracked})
}

func addLanding(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	if !ctx.req.Props.HasTarget() {
		return nil
	}
	return ecs.Add(w, e, component.LandingComponent.Kind(), &component.Landing{X: *ctx.req.Props.TargetX, Y: *ctx.req.Props.TargetY})
}
