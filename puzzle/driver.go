package puzzle

import "time"

// Report summarises one tick for observers.
type Report struct {
	Tick        uint64
	Prev        State
	Next        State
	Transitions []Transition
	Consumed    []Token
	Dropped     []Token
	Effects     []Effect
	Duration    time.Duration
}

// Observer receives a Report after every tick. Implementations must not
// block; they run on the tick goroutine.
type Observer interface {
	ObserveTick(r Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r Report)

func (f ObserverFunc) ObserveTick(r Report) { f(r) }

// Driver owns the session State and runs Handlers in order once per tick.
// It is not safe for concurrent use; speech producers hand tokens over
// through a queue that the caller drains before Step.
type Driver struct {
	state     State
	tuning    Tuning
	handlers  []Handler
	observers []Observer
	ticks     uint64
}

func NewDriver(tuning Tuning, observers ...Observer) *Driver {
	d := &Driver{
		tuning:   tuning,
		handlers: Handlers,
	}
	for _, o := range observers {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
	return d
}

func (d *Driver) State() State {
	return d.state
}

// Reset returns the session to its initial state, for a level restart.
func (d *Driver) Reset() {
	d.state = State{}
	d.ticks = 0
}

func (d *Driver) Tuning() Tuning {
	return d.tuning
}

// SetTuning swaps the tuning used from the next tick on.
func (d *Driver) SetTuning(t Tuning) {
	d.tuning = t
}

// Step advances the puzzle state by one tick. tokens is everything drained
// from the speech queue for this tick; whatever no handler consumes is
// dropped. The returned effects are for the world layer to apply.
func (d *Driver) Step(snap *Snapshot, tokens []Token) []Effect {
	start := time.Now()
	prev := d.state

	t := newTick(prev, snap, d.tuning, tokens)
	for _, h := range d.handlers {
		h.Run(t)
	}
	if err := Monotonic(prev, t.State); err != nil {
		panic("puzzle driver: " + err.Error())
	}

	d.state = t.State
	d.ticks++

	if len(d.observers) > 0 {
		r := Report{
			Tick:        d.ticks,
			Prev:        prev,
			Next:        t.State,
			Transitions: Diff(prev, t.State),
			Consumed:    t.consumed,
			Dropped:     t.tokens,
			Effects:     t.effects,
			Duration:    time.Since(start),
		}
		for _, o := range d.observers {
			o.ObserveTick(r)
		}
	}
	return t.effects
}
