// Package load de-duplicates asynchronous resource loads. Concurrent
// requests for the same font or text resource collapse into a single
// in-flight load: the first requester runs the fetch, later requesters
// block on the same result, and a completed result is cached by key until
// forgotten.
package load

import (
	"context"
	"sync"
)

// flight is one in-flight or completed load.
type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Group de-duplicates loads by key. The zero value is not usable; create
// with NewGroup.
//
// Group is safe for concurrent use.
type Group[K comparable, V any] struct {
	mu      sync.Mutex
	flights map[K]*flight[V]
}

// NewGroup creates an empty load group.
func NewGroup[K comparable, V any]() *Group[K, V] {
	return &Group[K, V]{flights: make(map[K]*flight[V])}
}

// Load returns the resource for key, fetching it with fn if no result is
// cached. If another load for the same key is in flight, Load waits for it
// and returns its result instead of fetching again.
//
// A successful result stays cached until Forget. A failed load is not
// cached: the error propagates to every waiter of that flight, and the
// next Load retries.
//
// ctx cancels only this caller's wait, never the underlying fetch; other
// waiters are unaffected.
func (g *Group[K, V]) Load(ctx context.Context, key K, fn func(context.Context) (V, error)) (V, error) {
	g.mu.Lock()
	if f, ok := g.flights[key]; ok {
		g.mu.Unlock()
		return g.wait(ctx, f)
	}

	f := &flight[V]{done: make(chan struct{})}
	g.flights[key] = f
	g.mu.Unlock()

	f.val, f.err = fn(ctx)
	close(f.done)

	if f.err != nil {
		// Do not cache failures; let the next requester retry.
		g.mu.Lock()
		if g.flights[key] == f {
			delete(g.flights, key)
		}
		g.mu.Unlock()
	}
	return f.val, f.err
}

// wait blocks until the flight completes or the caller's context ends.
func (g *Group[K, V]) wait(ctx context.Context, f *flight[V]) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Forget drops the cached result for key. An in-flight load is not
// interrupted; its waiters still receive its result, but subsequent Load
// calls fetch anew once it completes.
func (g *Group[K, V]) Forget(key K) {
	g.mu.Lock()
	delete(g.flights, key)
	g.mu.Unlock()
}

// Cached reports whether a completed, successful result is cached for key.
func (g *Group[K, V]) Cached(key K) bool {
	g.mu.Lock()
	f, ok := g.flights[key]
	g.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-f.done:
		return f.err == nil
	default:
		return false
	}
}
