package puzzle

// Tick is the context threaded through every handler during one step.
type Tick struct {
	State  State
	Snap   *Snapshot
	Tuning Tuning

	tokens   []Token
	consumed []Token
	effects  []Effect
}

func newTick(state State, snap *Snapshot, tuning Tuning, tokens []Token) *Tick {
	return &Tick{
		State:  state,
		Snap:   snap,
		Tuning: tuning,
		tokens: append([]Token(nil), tokens...),
	}
}

// Heard reports whether tok is still pending this tick.
func (t *Tick) Heard(tok Token) bool {
	for _, pending := range t.tokens {
		if pending == tok {
			return true
		}
	}
	return false
}

// ConsumeTokens clears the whole pending batch, not just the matched token.
func (t *Tick) ConsumeTokens() {
	t.consumed = append(t.consumed, t.tokens...)
	t.tokens = nil
}

func (t *Tick) Emit(effects ...Effect) {
	t.effects = append(t.effects, effects...)
}

func (t *Tick) Effects() []Effect {
	return t.effects
}
