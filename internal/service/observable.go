package service

import (
	"sync"

	"storefront/internal/util"
)

// observable holds one snapshot with its subscribers. Each fetch takes a
// ticket from begin; commit applies the completion only when no later
// ticket has been applied yet.
type observable[T any] struct {
	view string

	mu      sync.Mutex
	next    uint64
	applied uint64
	snap    T
	subs    map[int]chan T
	nextSub int
}

func newObservable[T any](view string, initial T) *observable[T] {
	return &observable[T]{view: view, snap: initial, subs: make(map[int]chan T)}
}

func (o *observable[T]) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.next++
	return o.next
}

// commit runs apply on the current snapshot if seq is still the newest
// completion and notifies subscribers. It reports whether seq was applied.
func (o *observable[T]) commit(seq uint64, apply func(cur *T, seq uint64)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if seq <= o.applied {
		util.StaleCompletionsTotal.WithLabelValues(o.view).Inc()
		return false
	}
	o.applied = seq
	apply(&o.snap, seq)

	for _, ch := range o.subs {
		offer(ch, o.snap)
	}
	return true
}

func (o *observable[T]) current() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// subscribe returns a channel that always holds the latest snapshot. The
// current snapshot is delivered immediately.
func (o *observable[T]) subscribe() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan T, 1)
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	ch <- o.snap

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// offer replaces whatever the subscriber has not read yet.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
