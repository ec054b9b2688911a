package msgbus

import "github.com/dshills/msgbus/slot"

// OwnerID identifies the logical subscriber or addressee of a message,
// typically an entity or component instance. Two owners are the same iff
// their ids are equal; the id itself carries no behavior.
type OwnerID uint64

// AddressingMode describes how an emission is addressed.
type AddressingMode int

const (
	// ModeUntargeted delivers to every active handler for the type.
	ModeUntargeted AddressingMode = iota

	// ModeTargeted delivers alongside an explicit target OwnerID.
	ModeTargeted

	// ModeBroadcast delivers alongside an explicit source OwnerID.
	ModeBroadcast
)

// String returns a human-readable mode name.
func (m AddressingMode) String() string {
	switch m {
	case ModeUntargeted:
		return "untargeted"
	case ModeTargeted:
		return "targeted"
	case ModeBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// Stage identifies one of the three dispatch stages.
type Stage int

const (
	// StageInterceptor runs first and may cancel or mutate the message.
	StageInterceptor Stage = iota

	// StageHandler is the main delivery stage.
	StageHandler

	// StagePostProcessor runs after handlers, regardless of how many fired.
	StagePostProcessor
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageInterceptor:
		return "interceptor"
	case StageHandler:
		return "handler"
	case StagePostProcessor:
		return "post-processor"
	default:
		return "unknown"
	}
}

// Envelope is the type-erased view of an emission handed to global
// accept-all callbacks, where the concrete message type is unknown.
type Envelope struct {
	// Message is the message value, as a pointer to its concrete type.
	Message any

	// TypeName is the fully qualified message type name.
	TypeName string

	// Slot is the message type's slot.
	Slot slot.ID

	// Mode is the emission's addressing mode.
	Mode AddressingMode

	// Target is the addressee for targeted emissions, zero otherwise.
	Target OwnerID

	// Source is the originator for broadcast emissions, zero otherwise.
	Source OwnerID
}

// Stats contains bus counters for tooling and tests.
//
// All counters are cumulative for the life of the bus.
type Stats struct {
	// BusID identifies the bus the stats belong to.
	BusID string

	// Emissions is the number of emit calls.
	Emissions uint64

	// Deliveries is the number of handler-stage callback invocations.
	Deliveries uint64

	// Cancelled is the number of emissions halted by an interceptor.
	Cancelled uint64

	// Faults is the number of callback errors observed during dispatch.
	Faults uint64

	// Registrations is the current number of live registrations.
	Registrations int
}
