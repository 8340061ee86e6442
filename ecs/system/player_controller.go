package system

import (
	"math"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
)

// PlayerControllerSystem turns the player's Input into a velocity. Diagonal
// movement is normalised so it is no faster than straight movement.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input) {
		x, y := input.MoveX, input.MoveY
		if l := math.Hypot(x, y); l > 1 {
			x /= l
			y /= l
		}
		vel := &component.Velocity{X: x * player.MoveSpeed, Y: y * player.MoveSpeed}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
			panic("player controller system: update velocity: " + err.Error())
		}
	})
}
