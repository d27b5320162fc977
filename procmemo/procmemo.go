package procmemo

import (
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/strataforge/strata/vfs"
)

// Key identifies one processed intermediate VFS.
type Key struct {
	URL string
	Ref string
}

// String returns the key's "url@ref" form.
func (k Key) String() string {
	return k.URL + "@" + k.Ref
}

const shardCount = 16

type shard struct {
	mu sync.RWMutex
	m  map[Key]*vfs.VFS
}

// Table is a sharded (url, ref) → VFS memo table. The zero value is not
// usable; construct with New.
type Table struct {
	shards [shardCount]*shard
}

// New returns an empty table.
func New() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i] = &shard{m: make(map[Key]*vfs.VFS)}
	}
	return t
}

func (t *Table) shardFor(key Key) *shard {
	return t.shards[xxh3.HashString(key.String())%shardCount]
}

// GetOrCompute returns the memoized VFS for key, running compute on a
// miss. The closure executes outside the shard lock, so two goroutines
// racing on the same fresh key may both compute; the first to store wins
// and both observe the winner's value. Callers must treat the returned
// VFS as immutable.
func (t *Table) GetOrCompute(key Key, compute func() (*vfs.VFS, error)) (*vfs.VFS, error) {
	s := t.shardFor(key)

	s.mu.RLock()
	cached, ok := s.m[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if winner, ok := s.m[key]; ok {
		return winner, nil
	}
	s.m[key] = result
	return result, nil
}

// Get returns the memoized VFS for key, if present.
func (t *Table) Get(key Key) (*vfs.VFS, bool) {
	s := t.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Insert stores a value for key unconditionally.
func (t *Table) Insert(key Key, value *vfs.VFS) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// Contains reports whether key is memoized.
func (t *Table) Contains(key Key) bool {
	_, ok := t.Get(key)
	return ok
}

// Len returns the number of memoized entries across all shards.
func (t *Table) Len() int {
	total := 0
	for _, s := range t.shards {
		s.mu.RLock()
		total += len(s.m)
		s.mu.RUnlock()
	}
	return total
}

// Clear drops every memoized entry.
func (t *Table) Clear() {
	for _, s := range t.shards {
		s.mu.Lock()
		s.m = make(map[Key]*vfs.VFS)
		s.mu.Unlock()
	}
}
