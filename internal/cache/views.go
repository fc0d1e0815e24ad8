package cache

import (
	"context"
	"sync"
	"time"
)

type View string

const (
	ViewProducts  View = "products"
	ViewMovements View = "movements"
	ViewBalances  View = "balances"
)

type key struct {
	owner   string
	view    View
	variant string
}

type slot struct {
	owner string
	view  View
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Views memoizes read results per owner and view. Entries are discarded, never
// patched: an invalidation drops every variant of the view and bumps its
// generation so that a fetch started before the invalidation is not stored.
type Views struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	entries     map[key]entry
	generations map[slot]uint64
}

func NewViews(ttl time.Duration) *Views {
	return &Views{
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[key]entry),
		generations: make(map[slot]uint64),
	}
}

func (c *Views) get(owner string, view View, variant string) (interface{}, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gen := c.generations[slot{owner, view}]
	e, ok := c.entries[key{owner, view, variant}]
	if !ok {
		return nil, gen, false
	}
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		delete(c.entries, key{owner, view, variant})
		return nil, gen, false
	}
	return e.value, gen, true
}

func (c *Views) put(owner string, view View, variant string, gen uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[slot{owner, view}] != gen {
		return
	}
	c.entries[key{owner, view, variant}] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops the owner's cached results for the given views.
func (c *Views) Invalidate(owner string, views ...View) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range views {
		c.generations[slot{owner, v}]++
	}
	for k := range c.entries {
		for _, v := range views {
			if k.owner == owner && k.view == v {
				delete(c.entries, k)
				break
			}
		}
	}
}

// Len reports the number of live entries.
func (c *Views) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Load returns the cached value for (owner, view, variant) or calls fetch and
// stores its result. A nil cache always fetches. Errors are never cached.
func Load[T any](ctx context.Context, c *Views, owner string, view View, variant string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fetch(ctx)
	}

	v, gen, ok := c.get(owner, view, variant)
	if ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.put(owner, view, variant, gen, value)
	return value, nil
}
