package ecs

import "testing"

func TestIDAllocator(t *testing.T) {
	a := NewIDAllocator()
	first := a.Next()
	second := a.Next()
	if first == InvalidID {
		t.Fatal("allocator must never return the invalid id")
	}
	if second != first+1 {
		t.Errorf("ids should increase by one: %d then %d", first, second)
	}
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore[string]()
	s.Add(3, "c")
	s.Add(1, "a")
	s.Add(2, "b")

	if s.Add(1, "dup") {
		t.Error("Add should reject a duplicate id")
	}

	got := s.Filter(nil)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Filter(nil) = %v, want %v", got, want)
		}
	}

	if !s.Remove(1) {
		t.Fatal("Remove(1) should succeed")
	}
	if s.Remove(1) {
		t.Error("second Remove(1) should report false")
	}
	s.Add(1, "a2")

	ids := s.IDs()
	wantIDs := []EntityID{3, 2, 1}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] {
			t.Fatalf("IDs() = %v, want %v", ids, wantIDs)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestStoreFilter(t *testing.T) {
	s := NewStore[int]()
	for i := 1; i <= 6; i++ {
		s.Add(EntityID(i), i)
	}
	even := s.Filter(func(v int) bool { return v%2 == 0 })
	if len(even) != 3 || even[0] != 2 || even[2] != 6 {
		t.Errorf("Filter(even) = %v", even)
	}
	if v, ok := s.Get(4); !ok || v != 4 {
		t.Errorf("Get(4) = %v, %v", v, ok)
	}
	if s.Has(42) {
		t.Error("Has(42) should be false")
	}
}
