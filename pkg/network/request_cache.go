package network

// requestCache remembers the last responses of one session by request id,
// evicting the oldest once full.
type requestCache struct {
	capacity  int
	responses map[string]Response
	order     []string
}

func newRequestCache(capacity int) *requestCache {
	return &requestCache{
		capacity:  capacity,
		responses: make(map[string]Response, capacity),
	}
}

func (c *requestCache) get(id string) (Response, bool) {
	r, ok := c.responses[id]
	return r, ok
}

func (c *requestCache) put(id string, r Response) {
	if _, exists := c.responses[id]; exists {
		c.responses[id] = r
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.responses, oldest)
	}
	c.order = append(c.order, id)
	c.responses[id] = r
}
