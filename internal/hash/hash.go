// Released under an MIT license. See LICENSE.

// Package hash provides the interpreter's string-keyed table type. It is
// used for the interned-symbol table and for user-visible hash objects.
package hash

// T (hash) is a fixed-size open-chaining table. The table owns its keys;
// values are opaque and belong to the caller (usually the cell heap).
type T struct {
	bins []*entry
	used int
}

type hash = T

type entry struct {
	key  string
	val  any
	next *entry
}

// Create makes a hash with the given number of bins. The bin count is fixed
// for the life of the table; a pathological key set degrades lookup to a
// linear scan of one chain.
func Create(bins int) *T {
	if bins < 1 {
		bins = 1
	}

	return &hash{bins: make([]*entry, bins)}
}

// Insert chains the key and value into the key's bin. Duplicate keys are
// allowed; entries are prepended so the most recent insertion shadows
// earlier ones on lookup.
func (h *hash) Insert(key string, val any) {
	i := djb2(key) % uint64(len(h.bins))

	h.bins[i] = &entry{key: key, val: val, next: h.bins[i]}
	h.used++
}

// Lookup scans the key's bin and returns the first matching value.
func (h *hash) Lookup(key string) (any, bool) {
	i := djb2(key) % uint64(len(h.bins))

	for e := h.bins[i]; e != nil; e = e.next {
		if e.key == key {
			return e.val, true
		}
	}

	return nil, false
}

// Foreach calls f for every chain entry, bins in index order and chains
// head first. It stops and returns the first non-nil result from f.
func (h *hash) Foreach(f func(key string, val any) any) any {
	for _, e := range h.bins {
		for ; e != nil; e = e.next {
			if v := f(e.key, e.val); v != nil {
				return v
			}
		}
	}

	return nil
}

// Bins returns the number of bins in the table.
func (h *hash) Bins() int {
	return len(h.bins)
}

// Size returns the number of entries in the table, shadowed ones included.
func (h *hash) Size() int {
	return h.used
}

// djb2 hashes the raw bytes of key: h = h*33 + byte, seeded with 5381.
func djb2(key string) uint64 {
	h := uint64(5381)

	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}

	return h
}
