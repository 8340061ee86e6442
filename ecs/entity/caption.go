package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/prefabs"
	"github.com/milk9111/jamfest/puzzle"
)

// NewCaption creates the empty text slot for ch.
func NewCaption(w *ecs.World, ch puzzle.Channel, spec prefabs.CaptionSpec) (ecs.Entity, error) {
	caption := &component.Caption{Channel: ch, Color: color.White, Scale: spec.Scale}
	if spec.Color != nil {
		caption.Color = spec.Color.Color
	}
	if caption.Scale <= 0 {
		caption.Scale = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CaptionComponent.Kind(), caption); err != nil {
		return 0, fmt.Errorf("caption: add caption %s: %w", ch, err)
	}
	return e, nil
}

// SetCaption replaces the text on ch; an empty text clears it. It reports
// false when no caption owns ch.
func SetCaption(w *ecs.World, ch puzzle.Channel, text string) bool {
	found := false
	ecs.ForEach(w, component.CaptionComponent.Kind(), func(_ ecs.Entity, c *component.Caption) {
		if c.Channel != ch {
			return
		}
		c.Text = text
		found = true
	})
	return found
}

// CaptionText returns the text currently shown on ch.
func CaptionText(w *ecs.World, ch puzzle.Channel) string {
	text := ""
	ecs.ForEach(w, component.CaptionComponent.Kind(), func(_ ecs.Entity, c *component.Caption) {
		if c.Channel == ch {
			text = c.Text
		}
	})
	return text
}
