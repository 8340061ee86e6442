package puzzle

// Handler is one named step of the tick.
type Handler struct {
	Name string
	Run  func(t *Tick)
}

// Handlers is the fixed tick order. Later handlers depend on flags set by
// earlier ones in the same or a previous tick.
var Handlers = []Handler{
	{Name: "sugar", Run: sugarPuzzle},
	{Name: "mentos", Run: mentosPuzzle},
	{Name: "mentos_homing", Run: mentosHoming},
	{Name: "rope_drop", Run: ropeDrop},
	{Name: "bridge", Run: bridgePuzzle},
	{Name: "jam_cooking", Run: jamCooking},
	{Name: "pickups", Run: pickups},
	{Name: "bear_homing", Run: bearHoming},
	{Name: "treasure_chest", Run: treasureChest},
	{Name: "sign_text", Run: signText},
}

// spokenNear reports whether tok was heard while the player stood closer
// than radius to the first entity of kind k.
func spokenNear(t *Tick, tok Token, k Kind, radius float64) (Body, bool) {
	if !t.Heard(tok) {
		return Body{}, false
	}
	player := t.Snap.Player()
	target, ok := t.Snap.First(k)
	if !ok || player.Pos.Dist(target.Pos) >= radius {
		return Body{}, false
	}
	return player, true
}

func sugarPuzzle(t *Tick) {
	if t.State.SugarCompleted {
		return
	}
	player, ok := spokenNear(t, TokenSugar, KindBasket, t.Tuning.SugarRadius)
	if !ok {
		return
	}
	t.Emit(Spawn(KindSugarBag, player.Pos))
	t.ConsumeTokens()
	t.State.SugarCompleted = true
}

func mentosPuzzle(t *Tick) {
	if t.State.MentosCompleted {
		return
	}
	player, ok := spokenNear(t, TokenMentos, KindSoda, t.Tuning.MentosRadius)
	if !ok {
		return
	}
	t.Emit(Spawn(KindMentos, player.Pos))
	t.ConsumeTokens()
	t.State.MentosCompleted = true
}

func mentosHoming(t *Tick) {
	mentos, ok := t.Snap.First(KindMentos)
	if !ok {
		return
	}
	soda, ok := t.Snap.First(KindSoda)
	if !ok {
		return
	}
	t.Seek(mentos, soda.Pos, t.Tuning.MentosSpeed, t.Tuning.MentosHit, func() {
		t.Emit(
			Despawn(mentos.ID),
			Despawn(soda.ID),
			Spawn(KindEmptySoda, soda.Pos),
		)
		switch t.Tuning.MentosOutcome {
		case OutcomeRope:
			t.Emit(Spawn(KindRopeCoil, soda.Pos))
		default:
			t.State.BullseyeJustHit = true
		}
	})
}

func ropeDrop(t *Tick) {
	if !t.State.BullseyeJustHit {
		return
	}
	rope, ok := t.Snap.First(KindRopeCoil)
	if !ok {
		// Picked up before it landed.
		t.State.BullseyeJustHit = false
		return
	}
	t.Seek(rope, rope.Target, t.Tuning.RopeDropSpeed, t.Tuning.RopeLanded, func() {
		t.State.BullseyeJustHit = false
	})
}

func bridgePuzzle(t *Tick) {
	s := t.State
	if s.BridgeCompleted || !s.RopeCollected || !s.PlanksCollected {
		return
	}
	player, ok := spokenNear(t, TokenBridge, KindChest, t.Tuning.BridgeRadius)
	if !ok {
		return
	}

	var lava []Body
	for _, tile := range t.Snap.All(KindLava) {
		if tile.Tracked {
			lava = append(lava, tile)
		}
	}

	t.Emit(Spawn(KindBridge, centroid(lava, player.Pos)))
	for _, tile := range lava {
		t.Emit(Despawn(tile.ID), SpawnDecor(KindLavaDecor, tile.Pos))
	}
	t.ConsumeTokens()
	t.State.BridgeCompleted = true
}

func centroid(bodies []Body, fallback Vec) Vec {
	if len(bodies) == 0 {
		return fallback
	}
	var sum Vec
	for _, b := range bodies {
		sum = sum.Add(b.Pos)
	}
	return sum.Scale(1 / float64(len(bodies)))
}

func jamCooking(t *Tick) {
	if t.State.JamCreated {
		return
	}
	if t.Tuning.JamMode == JamTimer {
		jamByTimer(t)
		return
	}
	jamByCollision(t)
}

func jamByCollision(t *Tick) {
	bag, ok := t.Snap.First(KindSugarBag)
	if !ok {
		return
	}
	basket, ok := t.Snap.First(KindBasket)
	if !ok {
		return
	}
	t.Seek(bag, basket.Pos, t.Tuning.SugarBagSpeed, t.Tuning.JamOverlap, func() {
		cookJam(t, basket)
	})
}

func jamByTimer(t *Tick) {
	if !t.State.SugarCompleted {
		return
	}
	if !t.State.JamTimerStarted {
		t.State.JamTimerStarted = true
		t.State.JamTimerLeft = t.Tuning.JamDelay
		return
	}
	if t.State.JamTimerLeft > 0 {
		t.State.JamTimerLeft -= t.Snap.Dt
		if t.State.JamTimerLeft > 0 {
			return
		}
	}
	basket, ok := t.Snap.First(KindBasket)
	if !ok {
		return
	}
	cookJam(t, basket)
}

func cookJam(t *Tick, basket Body) {
	if bag, ok := t.Snap.First(KindSugarBag); ok {
		t.Emit(Despawn(bag.ID))
	}
	t.Emit(Despawn(basket.ID), Spawn(KindJamJar, basket.Pos))
	t.State.JamCreated = true
}

func pickups(t *Tick) {
	player := t.Snap.Player()

	if rope, ok := t.Snap.Touched(player.ID, KindRopeCoil); ok {
		t.Emit(Despawn(rope.ID))
		t.State.RopeCollected = true
	}

	planks, ok := t.Snap.Touched(player.ID, KindPlanks)
	if !ok {
		return
	}
	// The bear is still sitting on the wood.
	if bear, ok := t.Snap.First(KindBear); ok && bear.Pos.Dist(planks.Pos) < t.Tuning.BearGuardRadius {
		return
	}
	t.Emit(Despawn(planks.ID))
	t.State.PlanksCollected = true
}

func bearHoming(t *Tick) {
	jar, ok := t.Snap.First(KindJamJar)
	if !ok {
		return
	}
	bear, ok := t.Snap.First(KindBear)
	if !ok {
		return
	}
	t.Seek(bear, jar.Pos, t.Tuning.BearSpeed, t.Tuning.BearStop, nil)
}

func treasureChest(t *Tick) {
	if t.State.ChestOpened {
		return
	}
	player := t.Snap.Player()
	chest, ok := t.Snap.First(KindChest)
	if !ok || player.Pos.Dist(chest.Pos) >= t.Tuning.ChestRadius {
		return
	}
	t.Emit(
		Despawn(chest.ID),
		Spawn(KindOpenedChest, chest.Pos),
		ShowText(ChannelWin, t.Tuning.WinText),
	)
	t.State.ChestOpened = true
}

// signText shows the nearest sign in range. Equal distances resolve to the
// lowest entity id because snapshot bodies are id ordered.
func signText(t *Tick) {
	player := t.Snap.Player()

	var (
		nearest Body
		best    float64
		found   bool
	)
	for _, sign := range t.Snap.All(KindSign) {
		d := player.Pos.Dist(sign.Pos)
		if d >= t.Tuning.SignRadius {
			continue
		}
		if !found || d < best {
			nearest, best, found = sign, d, true
		}
	}

	if !found {
		if t.State.SignText != "" {
			t.Emit(ClearText(ChannelSign))
			t.State.SignText = ""
		}
		return
	}
	if t.State.SignText == "" && nearest.Text != "" {
		t.Emit(ShowText(ChannelSign, nearest.Text))
		t.State.SignText = nearest.Text
	}
}
