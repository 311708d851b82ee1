package idgen

import "testing"

func TestUUIDUnique(t *testing.T) {
	g := UUID{}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.New()
		if len(id) != 36 {
			t.Fatalf("unexpected UUID format: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate UUID %q", id)
		}
		seen[id] = true
	}
}

func TestSequential(t *testing.T) {
	g := NewSequential("msg-")
	if got := g.New(); got != "msg-1" {
		t.Errorf("first ID = %q, want msg-1", got)
	}
	if got := g.New(); got != "msg-2" {
		t.Errorf("second ID = %q, want msg-2", got)
	}
	g.Reset()
	if got := g.New(); got != "msg-1" {
		t.Errorf("after Reset, ID = %q, want msg-1", got)
	}
}
