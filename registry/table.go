package registry

// ID identifies one registration within its Table.
// IDs are never reused for the life of the table.
type ID uint64

// Entry is one registration: a payload plus its ordering keys.
type Entry[C any] struct {
	// ID is the table-local registration identifier.
	ID ID

	// Priority determines dispatch order; lower values run first.
	Priority int

	// Seq breaks priority ties. It is assigned by the caller from a
	// monotonic counter, never from wall-clock time, so ordering stays
	// deterministic under fast successive registrations.
	Seq uint64

	// Payload is the stage-specific callback record.
	Payload C
}

// Table is the mutable priority registry for one dispatch stage of one
// message type. It is the source of truth; reads for dispatch go through
// a Cache built from it.
type Table[C any] struct {
	entries []Entry[C]
	nextID  ID
	version uint64
}

// NewTable creates an empty table.
func NewTable[C any]() *Table[C] {
	return &Table[C]{}
}

// Insert adds a registration and returns its id.
// The table's version is bumped, invalidating any cache built from it.
func (t *Table[C]) Insert(priority int, seq uint64, payload C) ID {
	t.nextID++
	id := t.nextID
	t.entries = append(t.entries, Entry[C]{
		ID:       id,
		Priority: priority,
		Seq:      seq,
		Payload:  payload,
	})
	t.version++
	return id
}

// Remove deletes the registration with the given id.
// Returns false if the id is not present. The table's version is bumped
// only on an actual removal.
func (t *Table[C]) Remove(id ID) bool {
	for i, e := range t.entries {
		if e.ID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.version++
			return true
		}
	}
	return false
}

// Len returns the number of registrations in the table.
func (t *Table[C]) Len() int {
	return len(t.entries)
}

// Version returns the table's mutation counter. It increases on every
// successful Insert and Remove.
func (t *Table[C]) Version() uint64 {
	return t.version
}
