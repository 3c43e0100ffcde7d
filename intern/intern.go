// Package intern implements the single process-wide shared mutable state
// spec.md §5 allows: a bi-directional string/handle interner for file
// names, locale ids, variable names, and tag names.
//
// No teacher file builds an interner (vippsas-sqlcode's T-SQL
// reserved-word table is a static map, not one), so the sharding
// discipline below is built directly from spec.md §5's description
// ("readers never block each other; a writer locks out readers briefly...
// a sharded lock-free structure") using the stdlib sync.RWMutex.
package intern

import "sync"

const (
	shardBits  = 5
	shardCount = 1 << shardBits
	shardMask  = shardCount - 1
)

// Handle is a compact, process-lifetime-stable reference to an interned
// string. The low shardBits bits identify the owning shard so Resolve
// needs only the handle, not the original string.
type Handle uint32

type shard struct {
	mu      sync.RWMutex
	strings []string
	byValue map[string]Handle
}

// Interner is a sharded bi-directional string/handle map. The zero value
// is not usable; construct with New.
type Interner struct {
	shards [shardCount]*shard
}

// New returns an empty Interner ready for concurrent use.
func New() *Interner {
	in := &Interner{}
	for i := range in.shards {
		in.shards[i] = &shard{byValue: make(map[string]Handle)}
	}
	return in
}

func (in *Interner) shardFor(s string) (*shard, uint32) {
	idx := fnv32(s) & shardMask
	return in.shards[idx], idx
}

// GetOrIntern returns the handle for s, interning it on first use. A
// racing miss may take the write path twice; the map assignment is the
// only point of contention, and it's brief.
func (in *Interner) GetOrIntern(s string) Handle {
	sh, shardIdx := in.shardFor(s)

	sh.mu.RLock()
	if h, ok := sh.byValue[s]; ok {
		sh.mu.RUnlock()
		return h
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if h, ok := sh.byValue[s]; ok {
		return h
	}
	sh.strings = append(sh.strings, s)
	local := uint32(len(sh.strings) - 1)
	h := Handle(local<<shardBits | shardIdx)
	sh.byValue[s] = h
	return h
}

// GetExisting returns the handle already assigned to s, if any, without
// interning it.
func (in *Interner) GetExisting(s string) (Handle, bool) {
	sh, _ := in.shardFor(s)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	h, ok := sh.byValue[s]
	return h, ok
}

// Count returns the total number of distinct strings interned so far,
// summed across all shards.
func (in *Interner) Count() int {
	total := 0
	for _, sh := range in.shards {
		sh.mu.RLock()
		total += len(sh.strings)
		sh.mu.RUnlock()
	}
	return total
}

// Resolve returns the string a handle was assigned to.
func (in *Interner) Resolve(h Handle) (string, bool) {
	shardIdx := uint32(h) & shardMask
	local := uint32(h) >> shardBits
	sh := in.shards[shardIdx]

	sh.mu.RLock()
	defer sh.mu.RUnlock()
	if int(local) >= len(sh.strings) {
		return "", false
	}
	return sh.strings[local], true
}

// fnv32 is the standard FNV-1a hash, used only to pick a shard; it need
// not be cryptographically strong.
func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
