package registry

import "sort"

// Cache is a lazily rebuilt, sorted view over a Table.
//
// View compares the cache's recorded version with the table's and rebuilds
// only on mismatch, so the sort cost is paid once per registration change
// rather than once per dispatch.
type Cache[C any] struct {
	table    *Table[C]
	version  uint64
	snapshot []Entry[C]
	built    bool
}

// NewCache creates a cache over the given table.
func NewCache[C any](t *Table[C]) *Cache[C] {
	return &Cache[C]{table: t}
}

// View returns the table's entries sorted by (priority, sequence).
//
// The returned slice is a snapshot: it is never mutated after being handed
// out. A later rebuild allocates a new slice, so callers iterating an
// older snapshot are unaffected by re-entrant registration changes.
func (c *Cache[C]) View() []Entry[C] {
	if c.built && c.version == c.table.Version() {
		return c.snapshot
	}

	entries := c.table.entries
	snap := make([]Entry[C], len(entries))
	copy(snap, entries)
	sort.Slice(snap, func(i, j int) bool {
		if snap[i].Priority != snap[j].Priority {
			return snap[i].Priority < snap[j].Priority
		}
		return snap[i].Seq < snap[j].Seq
	})

	c.snapshot = snap
	c.version = c.table.Version()
	c.built = true
	return snap
}

// Version returns the table version the current snapshot was built from.
// Meaningless until the first View call.
func (c *Cache[C]) Version() uint64 {
	return c.version
}
