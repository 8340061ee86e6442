package entity

import (
	"fmt"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/levels"
	"github.com/milk9111/jamfest/prefabs"
	"github.com/milk9111/jamfest/puzzle"
)

// LoadLevelToWorld fills an empty world with the level's tiles and entities,
// a camera on the player and one caption per text channel.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, b *Builder) error {
	width, height := lvl.Bounds()
	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	var tileErr error
	lvl.EachTile(func(t levels.Tile) {
		if tileErr != nil {
			return
		}
		req := Request{X: t.X, Y: t.Y, Collidable: true}
		switch t.Glyph {
		case levels.TileWall:
			req.Kind = puzzle.KindWall
		case levels.TileLava:
			req.Kind = puzzle.KindLava
		case levels.TileTrackedLava:
			req.Kind = puzzle.KindLava
			req.Props.Tracked = true
		default:
			return
		}
		if _, err := b.Build(w, req); err != nil {
			tileErr = fmt.Errorf("level: tile %d,%d: %w", t.Col, t.Row, err)
		}
	})
	if tileErr != nil {
		return tileErr
	}

	playerX, playerY := width/2, height/2
	for i, ent := range lvl.Entities {
		kind, ok := puzzle.ParseKind(ent.Type)
		if !ok {
			return fmt.Errorf("level: entity %d: unknown type %q", i, ent.Type)
		}
		props, err := prefabs.DecodeProps[prefabs.PropsSpec](ent.Props)
		if err != nil {
			return fmt.Errorf("level: entity %d: %w", i, err)
		}
		if _, err := b.Build(w, Request{Kind: kind, X: ent.X, Y: ent.Y, Collidable: true, Props: props}); err != nil {
			return fmt.Errorf("level: entity %d: %w", i, err)
		}
		if kind == puzzle.KindPlayer {
			playerX, playerY = ent.X, ent.Y
		}
	}

	var camSpec prefabs.CameraSpec
	var capSpec prefabs.CaptionSpec
	if b.Spec != nil {
		camSpec, capSpec = b.Spec.Camera, b.Spec.Caption
	}
	if _, err := NewCamera(w, camSpec, playerX, playerY); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	for _, ch := range []puzzle.Channel{puzzle.ChannelSign, puzzle.ChannelWin} {
		if _, err := NewCaption(w, ch, capSpec); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}
	return nil
}
