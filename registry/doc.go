// Package registry provides the priority-ordered registration storage
// used by the message bus.
//
// Each (message type, stage, address class) pair owns one Table, the
// mutable source of truth for its registrations, and one Cache, a derived
// read-optimized view.
//
// # Table
//
// A Table holds (priority, sequence, payload) entries in insertion order
// and bumps a version counter on every Insert and Remove. Priority is a
// signed integer; lower values dispatch first. The sequence number is
// supplied by the caller (the bus hands out one monotonic sequence across
// all of its tables) so that priority ties break deterministically even
// between entries living in different tables.
//
// # Cache
//
// Cache.View returns the table's entries sorted by (priority, sequence).
// The sorted slice is rebuilt only when the cache's recorded version
// differs from the table's, amortizing the sort across many dispatches
// between registration changes.
//
// Rebuilds always allocate a fresh slice and never mutate a slice already
// returned by View. A dispatch walk that is still iterating an older
// snapshot keeps seeing it unchanged even if a nested, re-entrant emission
// inserts or removes registrations and forces a rebuild.
//
// # Usage
//
//	tbl := registry.NewTable[func()]()
//	cache := registry.NewCache(tbl)
//
//	id := tbl.Insert(10, seq, callback)
//	for _, e := range cache.View() {
//	    e.Payload()
//	}
//	tbl.Remove(id)
package registry
