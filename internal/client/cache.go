package client

import "sync"

// queryKey identifies one cached query result: "dates" or "logs:<date>".
type queryKey string

const keyDates queryKey = "dates"

func keyLogs(date string) queryKey {
	return queryKey("logs:" + date)
}

// queryCache is an explicit request cache passed around via the Client
// handle. Invalidation happens on mutation, never by timeout.
type queryCache struct {
	mu      sync.Mutex
	entries map[queryKey]any
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[queryKey]any)}
}

func (c *queryCache) get(key queryKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *queryCache) set(key queryKey, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *queryCache) invalidate(keys ...queryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}
