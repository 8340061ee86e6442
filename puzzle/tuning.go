package puzzle

import (
	"errors"
	"fmt"
)

// JamMode selects how the jam is cooked once sugar exists.
type JamMode string

const (
	// JamCollision steers the sugar bag into the basket.
	JamCollision JamMode = "collision"
	// JamTimer cooks the jam a fixed delay after the sugar puzzle.
	JamTimer JamMode = "timer"
)

// MentosOutcome selects what the exploding soda produces.
type MentosOutcome string

const (
	// OutcomeBullseye knocks the hanging rope coil off the bullseye.
	OutcomeBullseye MentosOutcome = "bullseye"
	// OutcomeRope drops a rope coil where the soda stood.
	OutcomeRope MentosOutcome = "rope"
)

// Tuning holds every distance, speed and variant switch the handlers use.
// Distances are world units, speeds are units per second.
type Tuning struct {
	SugarRadius     float64
	MentosRadius    float64
	BridgeRadius    float64
	ChestRadius     float64
	SignRadius      float64
	BearGuardRadius float64

	MentosSpeed float64
	MentosHit   float64

	SugarBagSpeed float64
	JamOverlap    float64
	JamDelay      float64

	RopeDropSpeed float64
	RopeLanded    float64

	BearSpeed float64
	BearStop  float64

	JamMode       JamMode
	MentosOutcome MentosOutcome

	WinText string
}

// DefaultTuning matches the large-map variant.
func DefaultTuning() Tuning {
	return Tuning{
		SugarRadius:     200,
		MentosRadius:    200,
		BridgeRadius:    200,
		ChestRadius:     40,
		SignRadius:      40,
		BearGuardRadius: 16,

		MentosSpeed: 80,
		MentosHit:   20,

		SugarBagSpeed: 60,
		JamOverlap:    5,
		JamDelay:      2,

		RopeDropSpeed: 50,
		RopeLanded:    5,

		BearSpeed: 40,
		BearStop:  20,

		JamMode:       JamCollision,
		MentosOutcome: OutcomeBullseye,

		WinText: "You found the treasure! You win!",
	}
}

var errNonPositive = errors.New("must be positive")

// Validate rejects tunings the handlers cannot work with.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"sugar_radius", t.SugarRadius},
		{"mentos_radius", t.MentosRadius},
		{"bridge_radius", t.BridgeRadius},
		{"chest_radius", t.ChestRadius},
		{"sign_radius", t.SignRadius},
		{"bear_guard_radius", t.BearGuardRadius},
		{"mentos_speed", t.MentosSpeed},
		{"mentos_hit", t.MentosHit},
		{"sugar_bag_speed", t.SugarBagSpeed},
		{"jam_overlap", t.JamOverlap},
		{"jam_delay", t.JamDelay},
		{"rope_drop_speed", t.RopeDropSpeed},
		{"rope_landed", t.RopeLanded},
		{"bear_speed", t.BearSpeed},
		{"bear_stop", t.BearStop},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("puzzle: tuning %s: %w", p.name, errNonPositive)
		}
	}
	switch t.JamMode {
	case JamCollision, JamTimer:
	default:
		return fmt.Errorf("puzzle: tuning jam_mode: unknown mode %q", t.JamMode)
	}
	switch t.MentosOutcome {
	case OutcomeBullseye, OutcomeRope:
	default:
		return fmt.Errorf("puzzle: tuning mentos_outcome: unknown outcome %q", t.MentosOutcome)
	}
	return nil
}
