// Released under an MIT license. See LICENSE.

package hash

import (
	"strconv"
	"testing"
)

func TestInsertLookup(t *testing.T) {
	h := Create(127)

	h.Insert("a", 1)
	h.Insert("b", 2)

	v, ok := h.Lookup("a")
	if !ok || v.(int) != 1 {
		t.Errorf("lookup a = %v, %v; want 1, true", v, ok)
	}

	v, ok = h.Lookup("b")
	if !ok || v.(int) != 2 {
		t.Errorf("lookup b = %v, %v; want 2, true", v, ok)
	}

	if _, ok = h.Lookup("c"); ok {
		t.Error("lookup c succeeded; want failure")
	}
}

func TestShadowing(t *testing.T) {
	h := Create(127)

	h.Insert("key", "old")
	h.Insert("key", "new")

	v, ok := h.Lookup("key")
	if !ok || v.(string) != "new" {
		t.Errorf("lookup key = %v; want new", v)
	}

	if h.Size() != 2 {
		t.Errorf("size = %d; want 2", h.Size())
	}
}

func TestSingleBin(t *testing.T) {
	// Everything chains into one bin; lookup still finds each key.
	h := Create(1)

	for i := 0; i < 32; i++ {
		h.Insert(strconv.Itoa(i), i)
	}

	for i := 0; i < 32; i++ {
		v, ok := h.Lookup(strconv.Itoa(i))
		if !ok || v.(int) != i {
			t.Fatalf("lookup %d = %v, %v; want %d, true", i, v, ok, i)
		}
	}
}

func TestForeach(t *testing.T) {
	h := Create(127)

	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		h.Insert(k, v)
	}

	seen := map[string]int{}
	h.Foreach(func(key string, val any) any {
		seen[key] = val.(int)

		return nil
	})

	if len(seen) != len(want) {
		t.Fatalf("foreach visited %d entries; want %d", len(seen), len(want))
	}

	for k, v := range want {
		if seen[k] != v {
			t.Errorf("foreach saw %s = %d; want %d", k, seen[k], v)
		}
	}
}

func TestForeachShortCircuit(t *testing.T) {
	h := Create(127)

	h.Insert("a", 1)
	h.Insert("b", 2)
	h.Insert("c", 3)

	visited := 0
	v := h.Foreach(func(key string, val any) any {
		visited++

		return val
	})

	if v == nil {
		t.Error("foreach returned nil; want first value")
	}

	if visited != 1 {
		t.Errorf("foreach visited %d entries after stopping; want 1", visited)
	}
}

func TestCreateClampsBins(t *testing.T) {
	h := Create(0)

	if h.Bins() != 1 {
		t.Errorf("bins = %d; want 1", h.Bins())
	}

	h.Insert("k", "v")

	if _, ok := h.Lookup("k"); !ok {
		t.Error("lookup k failed")
	}
}
