package component

// Transform is the world-space centre of an entity.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is the requested velocity of a mover in pixels per second. The
// physics system pushes it onto kinematic bodies each step.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
