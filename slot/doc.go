// Package slot assigns dense integer slots to message types.
//
// Every distinct message type is given a stable, sequentially increasing
// slot the first time it is seen. Slots are dense (0, 1, 2, ...) so the
// bus can index per-type state with a plain slice instead of hashing by
// runtime type on every dispatch.
//
// # Usage
//
//	s := slot.For[HealMessage]()   // first call assigns the next slot
//	s2 := slot.For[HealMessage]()  // s2 == s, forever
//	name := slot.Name(s)           // "msgbus_test.HealMessage"
//
// Slot assignment is a pure memoizing allocator: there are no error
// conditions and slots are never reclaimed for the life of the process.
//
// # Thread Safety
//
// The slot table is process-wide and, like the rest of the engine, is not
// synchronized. Callers that register message types from multiple
// goroutines must serialize externally.
package slot
