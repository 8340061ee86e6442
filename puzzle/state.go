package puzzle

import "fmt"

// Flag names one boolean of State.
type Flag uint8

const (
	FlagSugarCompleted Flag = iota + 1
	FlagMentosCompleted
	FlagBridgeCompleted
	FlagJamCreated
	FlagPlanksCollected
	FlagRopeCollected
	FlagBullseyeJustHit
	FlagChestOpened
)

var Flags = []Flag{
	FlagSugarCompleted,
	FlagMentosCompleted,
	FlagBridgeCompleted,
	FlagJamCreated,
	FlagPlanksCollected,
	FlagRopeCollected,
	FlagBullseyeJustHit,
	FlagChestOpened,
}

func (f Flag) String() string {
	switch f {
	case FlagSugarCompleted:
		return "sugar_puzzle_completed"
	case FlagMentosCompleted:
		return "mentos_puzzle_completed"
	case FlagBridgeCompleted:
		return "bridge_puzzle_completed"
	case FlagJamCreated:
		return "jam_created"
	case FlagPlanksCollected:
		return "wooden_planks_collected"
	case FlagRopeCollected:
		return "rope_coil_collected"
	case FlagBullseyeJustHit:
		return "bullseye_just_hit"
	case FlagChestOpened:
		return "treasure_chest_opened"
	default:
		return "unknown"
	}
}

// Transient reports whether a flag may go back to false.
func (f Flag) Transient() bool {
	return f == FlagBullseyeJustHit
}

// State is the whole puzzle progress of one session. It is created at
// session start and threaded through every tick by the Driver.
type State struct {
	SugarCompleted  bool
	MentosCompleted bool
	BridgeCompleted bool
	JamCreated      bool
	PlanksCollected bool
	RopeCollected   bool
	BullseyeJustHit bool
	ChestOpened     bool

	// Timer-mode jam cooking.
	JamTimerStarted bool
	JamTimerLeft    float64

	// SignText is the sign message currently on screen, empty when none.
	SignText string
}

func (s State) Get(f Flag) bool {
	switch f {
	case FlagSugarCompleted:
		return s.SugarCompleted
	case FlagMentosCompleted:
		return s.MentosCompleted
	case FlagBridgeCompleted:
		return s.BridgeCompleted
	case FlagJamCreated:
		return s.JamCreated
	case FlagPlanksCollected:
		return s.PlanksCollected
	case FlagRopeCollected:
		return s.RopeCollected
	case FlagBullseyeJustHit:
		return s.BullseyeJustHit
	case FlagChestOpened:
		return s.ChestOpened
	default:
		return false
	}
}

// Completed lists the flags currently set.
func (s State) Completed() []Flag {
	var out []Flag
	for _, f := range Flags {
		if s.Get(f) {
			out = append(out, f)
		}
	}
	return out
}

// Transition is a flag that changed value during a tick.
type Transition struct {
	Flag  Flag
	Value bool
}

// Diff returns the flags whose value differs between prev and next.
func Diff(prev, next State) []Transition {
	var out []Transition
	for _, f := range Flags {
		if prev.Get(f) != next.Get(f) {
			out = append(out, Transition{Flag: f, Value: next.Get(f)})
		}
	}
	return out
}

// Monotonic checks that no non-transient flag went from true to false.
func Monotonic(prev, next State) error {
	for _, tr := range Diff(prev, next) {
		if !tr.Value && !tr.Flag.Transient() {
			return fmt.Errorf("puzzle: flag %s was reset", tr.Flag)
		}
	}
	return nil
}
