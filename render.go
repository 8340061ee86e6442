package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/jamfest/common"
	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
	"github.com/milk9111/jamfest/puzzle"
)

var background = color.RGBA{R: 0x1b, G: 0x1f, B: 0x24, A: 0xff}

type RenderSystem struct {
	face  ebtext.Face
	debug bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13), debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(background)

	camX, camY, zoom := common.BaseWidth/2.0, common.BaseHeight/2.0, 1.0
	if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
			camX, camY = cam.X, cam.Y
			if cam.Zoom > 0 {
				zoom = cam.Zoom
			}
		}
	}

	entities := ecs.Query(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Color == nil {
			continue
		}
		x := (t.X-s.Width/2-camX)*zoom + common.BaseWidth/2
		y := (t.Y-s.Height/2-camY)*zoom + common.BaseHeight/2
		vector.FillRect(screen, float32(x), float32(y), float32(s.Width*zoom), float32(s.Height*zoom), s.Color, false)
	}

	ecs.ForEach(w, component.CaptionComponent.Kind(), func(_ ecs.Entity, c *component.Caption) {
		if c.Text != "" {
			r.drawCaption(screen, c)
		}
	})
}

// drawCaption puts sign text along the bottom edge and win text in the
// middle of the screen.
func (r *RenderSystem) drawCaption(screen *ebiten.Image, c *component.Caption) {
	lines := strings.Split(c.Text, "\n")
	lineHeight := float64(basicfont.Face7x13.Metrics().Height.Ceil()) * c.Scale
	blockHeight := lineHeight * float64(len(lines))

	y := common.BaseHeight - blockHeight - 12
	if c.Channel == puzzle.ChannelWin {
		y = (common.BaseHeight - blockHeight) / 2
		vector.FillRect(screen, 0, float32(y-8), common.BaseWidth, float32(blockHeight+16), color.RGBA{A: 0xb0}, false)
	}

	for _, line := range lines {
		width, _ := ebtext.Measure(line, r.face, 0)
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(c.Scale, c.Scale)
		op.GeoM.Translate((common.BaseWidth-width*c.Scale)/2, y)
		op.ColorScale.ScaleWithColor(c.Color)
		ebtext.Draw(screen, line, r.face, op)
		y += lineHeight
	}
}

// DrawDebug prints the frame rate and every completed flag.
func (r *RenderSystem) DrawDebug(screen *ebiten.Image, state puzzle.State) {
	if !r.debug {
		return
	}
	flags := make([]string, 0, 8)
	for _, f := range state.Completed() {
		flags = append(flags, f.String())
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f\n%s", ebiten.ActualTPS(), strings.Join(flags, "\n")))
}
