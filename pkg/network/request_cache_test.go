package network

import "testing"

func TestRequestCacheEvictsOldest(t *testing.T) {
	c := newRequestCache(2)
	c.put("a", Response{ID: "a", OK: true})
	c.put("b", Response{ID: "b"})
	c.put("a", Response{ID: "a", Error: "replaced"})
	c.put("c", Response{ID: "c"})

	if _, ok := c.get("a"); ok {
		t.Error("oldest entry should be evicted")
	}
	for _, id := range []string{"b", "c"} {
		if r, ok := c.get(id); !ok || r.ID != id {
			t.Errorf("get(%q) = %+v, %v", id, r, ok)
		}
	}
}
