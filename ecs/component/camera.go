package component

type Camera struct {
	Zoom       float64
	Smoothness float64
	// X and Y are the world point at the centre of the screen.
	X float64
	Y float64
	// Snapped is false until the camera has jumped to its target once.
	Snapped bool
}

var CameraComponent = NewComponent[Camera]()

// LevelBounds is the world-space size of the loaded room. The camera never
// shows anything outside it.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
