package system

import (
	"github.com/milk9111/jamfest/common"
	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/component"
)

// CameraSystem eases the camera towards the player, clamped so the view
// never leaves the level bounds.
type CameraSystem struct {
	// ViewW and ViewH are the screen size in pixels.
	ViewW float64
	ViewH float64
}

func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{ViewW: viewW, ViewH: viewH}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	tx, ty := target.X, target.Y
	if bounds, ok := firstBounds(w); ok {
		tx, ty = cs.clamp(cam, bounds, tx, ty)
	}

	if !cam.Snapped || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.X, cam.Y = tx, ty
		cam.Snapped = true
		return
	}
	cam.X = common.Lerp(cam.X, tx, cam.Smoothness)
	cam.Y = common.Lerp(cam.Y, ty, cam.Smoothness)
}

func (cs *CameraSystem) clamp(cam *component.Camera, bounds *component.LevelBounds, x, y float64) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := cs.ViewW / zoom / 2
	halfH := cs.ViewH / zoom / 2
	return clampAxis(x, halfW, bounds.Width), clampAxis(y, halfH, bounds.Height)
}

func clampAxis(v, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	if v < half {
		return half
	}
	if v > size-half {
		return size - half
	}
	return v
}

func firstBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}
