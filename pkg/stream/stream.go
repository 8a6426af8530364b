// Package stream provides push-based, multi-subscriber value streams for live
// query results. A subscriber holds a Subscription whose channel carries the
// latest snapshot; closing the subscription stops delivery and releases the
// producer side.
package stream

import (
	"context"
	"log"
	"sync"
)

// Subscription is one consumer's cursor over a live value. C buffers at most
// the latest undelivered snapshot: a slow consumer observes conflated updates
// rather than a growing backlog.
type Subscription[T any] struct {
	C chan T

	done chan struct{}
	once sync.Once
	stop func()
}

func newSubscription[T any]() *Subscription[T] {
	return &Subscription[T]{
		C:    make(chan T, 1),
		done: make(chan struct{}),
	}
}

// Push delivers v to the subscriber, replacing an undelivered snapshot if one
// is still buffered. Producers call this; consumers receive from C.
func (s *Subscription[T]) Push(v T) {
	for {
		select {
		case <-s.done:
			return
		case s.C <- v:
			return
		default:
		}
		// Buffer full: drop the stale snapshot and retry.
		select {
		case <-s.C:
		default:
		}
	}
}

// Close detaches the subscription from its producer and stops delivery.
// Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		close(s.done)
	})
}

// Done is closed when the subscription has been closed.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Hub fans values out to any number of independent subscribers.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs map[*Subscription[T]]struct{}
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscriber. The subscriber receives every value
// published after registration until it calls Close.
func (h *Hub[T]) Subscribe() *Subscription[T] {
	s := newSubscription[T]()
	s.stop = func() {
		h.mu.Lock()
		delete(h.subs, s)
		h.mu.Unlock()
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Publish delivers v to every current subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		s.Push(v)
	}
}

// Len returns the current subscriber count.
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Watch turns a one-shot fetch into a live query. It pushes the current result
// immediately, then re-runs the fetch and pushes a fresh snapshot every time
// the invalidation signal fires. The signal subscription is closed together
// with the returned one.
func Watch[T any](ctx context.Context, signal *Subscription[struct{}], fetch func(context.Context) (T, error)) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	sub := newSubscription[T]()
	sub.stop = func() {
		cancel()
		signal.Close()
	}

	run := func() {
		v, err := fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("stream: live query refresh failed: %v", err)
			}
			return
		}
		sub.Push(v)
	}

	go func() {
		// Context cancellation must release the signal subscription just
		// like an explicit Close.
		defer sub.Close()
		run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.done:
				return
			case <-signal.C:
				run()
			}
		}
	}()

	return sub
}

// CombineLatest3 emits f over the most recent value of each input whenever any
// input emits, once all three have produced at least one value. Closing the
// returned subscription closes all three inputs.
func CombineLatest3[A, B, C, R any](
	a *Subscription[A],
	b *Subscription[B],
	c *Subscription[C],
	f func(A, B, C) R,
) *Subscription[R] {
	out := newSubscription[R]()
	out.stop = func() {
		a.Close()
		b.Close()
		c.Close()
	}

	go func() {
		var (
			va            A
			vb            B
			vc            C
			okA, okB, okC bool
		)
		emit := func() {
			if okA && okB && okC {
				out.Push(f(va, vb, vc))
			}
		}
		for {
			select {
			case <-out.done:
				return
			case v := <-a.C:
				va, okA = v, true
				emit()
			case v := <-b.C:
				vb, okB = v, true
				emit()
			case v := <-c.C:
				vc, okC = v, true
				emit()
			}
		}
	}()

	return out
}
