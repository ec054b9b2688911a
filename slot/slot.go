package slot

import "reflect"

// ID is a dense per-process identifier for a message type.
// IDs start at 0 and increase by one for each new type seen.
type ID int

// None indicates that no slot has been assigned.
const None ID = -1

var (
	byType = make(map[reflect.Type]ID)
	names  []string
)

// For returns the slot for type T, assigning the next unused slot the
// first time T is seen. The result is stable for the life of the process.
func For[T any]() ID {
	return ForType(reflect.TypeOf((*T)(nil)).Elem())
}

// ForType is the type-erased form of For. It exists for the few boundary
// points where the concrete message type is not statically known, such as
// global accept-all delivery.
func ForType(rt reflect.Type) ID {
	if id, ok := byType[rt]; ok {
		return id
	}
	id := ID(len(names))
	byType[rt] = id
	names = append(names, rt.String())
	return id
}

// Lookup returns the slot already assigned to rt, or None if rt has never
// been seen. It never assigns.
func Lookup(rt reflect.Type) ID {
	if id, ok := byType[rt]; ok {
		return id
	}
	return None
}

// Name returns the fully qualified type name for a slot.
// Returns the empty string for an unassigned slot.
func (id ID) Name() string {
	if id < 0 || int(id) >= len(names) {
		return ""
	}
	return names[id]
}

// Name returns the type name for the given slot.
func Name(id ID) string {
	return id.Name()
}

// Count returns the number of slots assigned so far.
func Count() int {
	return len(names)
}
