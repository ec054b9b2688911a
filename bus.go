package msgbus

import (
	"github.com/google/uuid"

	"github.com/dshills/msgbus/registry"
	"github.com/dshills/msgbus/slot"
)

// Bus orchestrates registration storage and the three-stage dispatch
// walk. Each Bus is fully isolated; tests should construct their own with
// New rather than sharing the process-wide Default bus.
//
// A Bus is not safe for concurrent use. All registration and emission
// calls must happen on one goroutine or be externally serialized.
type Bus struct {
	id uuid.UUID

	// types holds one *typeTables[T] per message type, indexed by slot.
	// Entries are nil until the type is first registered or emitted on
	// this bus.
	types []any

	// acceptAll holds global accept-all registrations, which fire for
	// every message of every type and mode.
	acceptAll *list[acceptAllReg]

	// seq is the bus-global insertion sequence. One counter across all
	// tables keeps priority ties deterministic even between entries that
	// live in different tables and meet only in a merged walk.
	seq uint64

	regCount int

	diagnostics bool
	recorder    *recorder

	isolate bool
	report  func(error)

	emissions  uint64
	deliveries uint64
	cancelled  uint64
	faults     uint64
}

// New creates an isolated bus.
func New(opts ...Option) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		id:          uuid.New(),
		acceptAll:   newList[acceptAllReg](),
		diagnostics: cfg.diagnostics,
		recorder:    newRecorder(cfg.diagnosticsCapacity),
		isolate:     cfg.faultIsolation,
		report:      cfg.faultReporter,
	}
	if b.report == nil {
		b.report = defaultFaultReporter
	}
	return b
}

// ID returns the bus's unique identifier.
func (b *Bus) ID() string {
	return b.id.String()
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		BusID:         b.id.String(),
		Emissions:     b.emissions,
		Deliveries:    b.deliveries,
		Cancelled:     b.cancelled,
		Faults:        b.faults,
		Registrations: b.regCount,
	}
}

// nextSeq returns the next bus-global insertion sequence number.
func (b *Bus) nextSeq() uint64 {
	b.seq++
	return b.seq
}

// fault routes a callback error according to the bus's fault policy.
// Default: the wrapped error is returned and the caller aborts the walk.
// With fault isolation, the error goes to the reporter and the walk
// continues (delivery to remaining callbacks is best-effort).
func (b *Bus) fault(stage Stage, typeName string, err error) error {
	b.faults++
	derr := &DispatchError{Stage: stage, TypeName: typeName, Err: err}
	if b.isolate {
		b.report(derr)
		return nil
	}
	return derr
}

// list pairs a registration table with its dispatch cache.
type list[C any] struct {
	table *registry.Table[C]
	cache *registry.Cache[C]
}

func newList[C any]() *list[C] {
	t := registry.NewTable[C]()
	return &list[C]{table: t, cache: registry.NewCache(t)}
}

func (l *list[C]) view() []registry.Entry[C] {
	return l.cache.View()
}

// Stage payloads. Each carries its gate (the registration) and the
// stage-specific callback form.
type (
	handlerReg[T any] struct {
		reg *registration
		fn  func(*T) error
	}

	spyReg[T any] struct {
		reg *registration
		fn  func(OwnerID, *T) error
	}

	interceptorReg[T any] struct {
		reg *registration
		fn  func(*T) bool
	}

	postReg[T any] struct {
		reg *registration
		fn  func(*T) error
	}

	acceptAllReg struct {
		reg *registration
		fn  func(Envelope) error
	}
)

// typeTables is the per-bus registration storage for one message type.
type typeTables[T any] struct {
	slot slot.ID
	name string

	interceptors *list[interceptorReg[T]]
	untargeted   *list[handlerReg[T]]

	// targeted and broadcast map the addressee to its direct table.
	// Created lazily on first direct registration.
	targeted     map[OwnerID]*list[handlerReg[T]]
	targetedSpy  *list[spyReg[T]]
	broadcast    map[OwnerID]*list[handlerReg[T]]
	broadcastSpy *list[spyReg[T]]

	post *list[postReg[T]]
}

func newTypeTables[T any](s slot.ID) *typeTables[T] {
	return &typeTables[T]{
		slot:         s,
		name:         slot.Name(s),
		interceptors: newList[interceptorReg[T]](),
		untargeted:   newList[handlerReg[T]](),
		targetedSpy:  newList[spyReg[T]](),
		broadcastSpy: newList[spyReg[T]](),
		post:         newList[postReg[T]](),
	}
}

// targetedFor returns the direct targeted table for an owner, creating it
// if needed.
func (tt *typeTables[T]) targetedFor(owner OwnerID) *list[handlerReg[T]] {
	if tt.targeted == nil {
		tt.targeted = make(map[OwnerID]*list[handlerReg[T]])
	}
	l := tt.targeted[owner]
	if l == nil {
		l = newList[handlerReg[T]]()
		tt.targeted[owner] = l
	}
	return l
}

// broadcastFor returns the direct broadcast table for a source owner,
// creating it if needed.
func (tt *typeTables[T]) broadcastFor(owner OwnerID) *list[handlerReg[T]] {
	if tt.broadcast == nil {
		tt.broadcast = make(map[OwnerID]*list[handlerReg[T]])
	}
	l := tt.broadcast[owner]
	if l == nil {
		l = newList[handlerReg[T]]()
		tt.broadcast[owner] = l
	}
	return l
}

// tablesFor resolves the per-type tables for T on bus b, creating them on
// first use. The slot id indexes directly into b.types, so steady-state
// lookup is a slice index plus one type assertion.
func tablesFor[T any](b *Bus) *typeTables[T] {
	s := slot.For[T]()
	for int(s) >= len(b.types) {
		b.types = append(b.types, nil)
	}
	if tt, ok := b.types[s].(*typeTables[T]); ok {
		return tt
	}
	tt := newTypeTables[T](s)
	b.types[s] = tt
	return tt
}
