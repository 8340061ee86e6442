// Package speech turns recognised speech into puzzle tokens and hands them
// to the tick goroutine.
package speech

import (
	"sync"

	"github.com/milk9111/jamfest/puzzle"
)

// Queue is an unbounded multi-producer, single-consumer token queue. Any
// goroutine may Push; the tick goroutine calls Drain once per tick.
type Queue struct {
	mu    sync.Mutex
	items []puzzle.Token
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends tokens in order.
func (q *Queue) Push(tokens ...puzzle.Token) {
	if q == nil || len(tokens) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, tokens...)
	q.mu.Unlock()
}

// Drain returns every queued token and clears the queue. It never blocks on
// producers beyond the mutex hand-off.
func (q *Queue) Drain() []puzzle.Token {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
