package component

// Hazard marks a lava tile. Tracked tiles are the ones a bridge replaces.
type Hazard struct {
	Tracked bool
}

var HazardComponent = NewComponent[Hazard]()
