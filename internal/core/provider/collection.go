package provider

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/diaglab/labdesk/internal/pkg/metrics"
)

// FetchFunc loads a value from the lab API.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Collection is a read-through cache over one lab API read. The first Get
// loads the value; later calls are served from memory until Refresh or
// Invalidate. Concurrent loads share a single request.
type Collection[T any] struct {
	name  string
	fetch FetchFunc[T]

	group singleflight.Group

	mu       sync.RWMutex
	value    T
	loaded   bool
	inflight int
	gen      uint64
}

func NewCollection[T any](name string, fetch func(ctx context.Context) (T, error)) *Collection[T] {
	return &Collection[T]{name: name, fetch: fetch}
}

// Name is the collection label used in metrics and logs.
func (c *Collection[T]) Name() string {
	return c.name
}

// Get returns the cached value, loading it on first use.
func (c *Collection[T]) Get(ctx context.Context) (T, error) {
	c.mu.RLock()
	if c.loaded {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()
	return c.load(ctx)
}

// Refresh reloads the value from the lab API regardless of the cache.
func (c *Collection[T]) Refresh(ctx context.Context) (T, error) {
	c.Invalidate()
	return c.load(ctx)
}

// Invalidate drops the cached value; the next Get reloads it.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.loaded = false
	c.gen++
	c.group.Forget(c.name)
}

// Loading reports whether a load is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

func (c *Collection[T]) load(ctx context.Context) (T, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	v, err, _ := c.group.Do(c.name, func() (any, error) {
		c.mu.Lock()
		if c.loaded {
			v := c.value
			c.mu.Unlock()
			return v, nil
		}
		c.inflight++
		c.mu.Unlock()

		start := time.Now()
		val, err := c.fetch(ctx)
		metrics.ProviderFetchDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())

		c.mu.Lock()
		defer c.mu.Unlock()
		c.inflight--

		if err != nil {
			metrics.ProviderFetchTotal.WithLabelValues(c.name, "error").Inc()
			return val, err
		}
		metrics.ProviderFetchTotal.WithLabelValues(c.name, "ok").Inc()

		// An Invalidate during the fetch means the result may be stale.
		if c.gen == gen {
			c.value = val
			c.loaded = true
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
