package component

import "github.com/milk9111/jamfest/puzzle"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// PuzzleTag exposes an entity to the puzzle core under its kind.
type PuzzleTag struct {
	Kind puzzle.Kind
}

var PuzzleTagComponent = NewComponent[PuzzleTag]()

// Sign holds the message shown when the player stands near a sign.
type Sign struct {
	Text string
}

var SignComponent = NewComponent[Sign]()

// Landing is where a falling rope coil comes to rest.
type Landing struct {
	X float64
	Y float64
}

var LandingComponent = NewComponent[Landing]()
