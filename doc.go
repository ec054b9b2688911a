// Package msgbus provides an in-process publish/subscribe message
// dispatch engine with priority-ordered synchronous delivery.
//
// The bus is a communication backbone for decoupled components: emitters
// construct a plain message value and hand it to an emit entry point;
// subscribers attach callbacks through a registration token and receive
// every matching message in deterministic priority order.
//
// # Architecture
//
//	                 ┌────────────────────────────────────────┐
//	                 │                 Bus                     │
//	                 │  - per-type registration tables         │
//	                 │  - three-stage dispatch walk            │
//	                 │  - diagnostics ring buffer              │
//	                 └────────────────────────────────────────┘
//	                                   │
//	        ┌──────────────────────────┼──────────────────────────┐
//	        ▼                          ▼                          ▼
//	┌───────────────┐        ┌──────────────────┐       ┌────────────────┐
//	│     slot      │        │     registry     │       │  Token/Handler │
//	│ dense integer │        │ priority tables  │       │   lifecycle    │
//	│ per msg type  │        │ + sorted caches  │       │                │
//	└───────────────┘        └──────────────────┘       └────────────────┘
//
// # Addressing Modes
//
// A message can be emitted three ways:
//
//   - Untargeted: delivered to every active handler registered for its type.
//   - Targeted: carries an explicit target OwnerID; delivered to handlers
//     registered directly for that owner plus "spy" handlers observing all
//     targets.
//   - Broadcast: carries an explicit source OwnerID; mirrors targeted
//     semantics with source in place of target.
//
// The target or source travels with the emit call, not inside the message
// value, so one message type can be reused across modes.
//
// # Dispatch Stages
//
// Every emission walks three stages in order:
//
//  1. Interceptors: may mutate the message in place or cancel the whole
//     dispatch by returning false. Cancellation is a flag check, not a
//     panic or error.
//  2. Handlers: the merged, priority-ordered walk of direct, spy, and
//     global accept-all registrations for the emission's mode.
//  3. Post-processors: run after the handler stage regardless of how many
//     handlers fired.
//
// Lower priority values run first; ties break by registration order.
//
// # Lifecycle
//
// Registrations are batched under a Token bound to one Handler:
//
//	h := msgbus.NewHandler(ownerID)
//	tok, _ := msgbus.NewToken(h, bus) // nil bus uses the default bus
//
//	msgbus.RegisterUntargeted(tok, 0, func(m *Ping) error {
//	    ...
//	    return nil
//	})
//
//	tok.Enable() // registrations start firing
//	...
//	tok.Disable() // stop firing, registrations stay
//	tok.Enable()  // firing again, nothing re-registered
//	tok.Dispose() // registrations removed for good
//
// # Emission
//
//	msgbus.EmitUntargeted(bus, &Ping{})
//	msgbus.EmitTargeted(bus, target, &Heal{Amount: 5})
//	msgbus.EmitBroadcast(bus, source, &Died{})
//
// Emit returns only after every callback invoked for the message has
// returned. A nil bus argument uses the process-wide default bus.
//
// # Zero-Copy Delivery
//
// Messages are delivered by pointer, so a value-type message is never
// boxed or copied on the hot path. Copy-form registrations
// (RegisterUntargetedValue and friends) exist for callers that prefer
// value callbacks.
//
// # Re-entrancy
//
// A handler may emit while being dispatched. Outer walks iterate
// immutable snapshots that registration changes never mutate in place, so
// nested emissions cannot corrupt an in-progress walk.
//
// # Thread Safety
//
// The engine is single-threaded by design: there are no locks, no
// atomics, and no background goroutines. Sharing a bus across goroutines
// requires external serialization of all registration and emission calls.
// The one exception is the lazy initialization of the default bus, which
// uses sync.Once.
//
// # Subpackages
//
//   - slot: dense integer slot assignment per message type
//   - registry: priority-ordered registration tables and their caches
package msgbus
