package component

import (
	"image/color"

	"github.com/milk9111/jamfest/puzzle"
)

// Sprite is a filled rectangle centred on the entity's Transform.
type Sprite struct {
	Color  color.Color
	Width  float64
	Height float64
}

var SpriteComponent = NewComponent[Sprite]()

// Caption is on-screen text owned by one display channel.
type Caption struct {
	Channel puzzle.Channel
	Text    string
	Color   color.Color
	Scale   float64
}

var CaptionComponent = NewComponent[Caption]()

// RenderLayer orders sprites; lower layers draw first and ties fall back to
// entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
