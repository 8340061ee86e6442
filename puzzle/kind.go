package puzzle

// Kind tags what a world entity is. Handlers select entities by kind rather
// than holding references across ticks.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPlayer
	KindBear
	KindSugarBag
	KindBasket
	KindJamJar
	KindRopeCoil
	KindMentos
	KindSoda
	KindEmptySoda
	KindBullseye
	KindChest
	KindOpenedChest
	KindPlanks
	KindBridge
	KindSign
	KindWall
	KindLava
	KindLavaDecor
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindPlayer:      "player",
	KindBear:        "bear",
	KindSugarBag:    "sugar_bag",
	KindBasket:      "blueberry_basket",
	KindJamJar:      "jam_jar",
	KindRopeCoil:    "rope_coil",
	KindMentos:      "mentos",
	KindSoda:        "soda_bottle",
	KindEmptySoda:   "empty_soda",
	KindBullseye:    "bullseye",
	KindChest:       "treasure_chest",
	KindOpenedChest: "opened_chest",
	KindPlanks:      "wooden_planks",
	KindBridge:      "wooden_bridge",
	KindSign:        "sign",
	KindWall:        "wall",
	KindLava:        "lava",
	KindLavaDecor:   "lava_decor",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a level/prefab name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindUnknown {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}
