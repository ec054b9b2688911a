package msgbus

import (
	"time"

	"github.com/google/uuid"
)

// timeNow is a variable to allow testing with fixed timestamps.
var timeNow = time.Now

// RecordKind classifies a diagnostics record.
type RecordKind int

const (
	// RecordEmission is appended once per emit call.
	RecordEmission RecordKind = iota

	// RecordRegistered is appended when a registration is added.
	RecordRegistered

	// RecordRemoved is appended when a registration is removed.
	RecordRemoved
)

// String returns a human-readable kind name.
func (k RecordKind) String() string {
	switch k {
	case RecordEmission:
		return "emission"
	case RecordRegistered:
		return "registered"
	case RecordRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Record is one diagnostics entry. Emission records carry the addressing
// fields and handler count; registration records carry the stage.
type Record struct {
	// ID uniquely identifies this record.
	ID string

	// Time is when the record was appended.
	Time time.Time

	// Kind classifies the record.
	Kind RecordKind

	// TypeName is the message type involved. Empty for global accept-all
	// registration records.
	TypeName string

	// Stage is the dispatch stage, for registration records.
	Stage Stage

	// Mode is the addressing mode, for emission records.
	Mode AddressingMode

	// Target is the addressee of a targeted emission, zero otherwise.
	Target OwnerID

	// Source is the originator of a broadcast emission, zero otherwise.
	Source OwnerID

	// Handlers is the number of handler-stage callbacks invoked.
	Handlers int

	// Cancelled is true if an interceptor halted the emission.
	Cancelled bool
}

// recorder is a bounded ring buffer of diagnostics records. When full,
// the oldest record is overwritten.
type recorder struct {
	buf   []Record
	head  int
	count int
}

func newRecorder(capacity int) *recorder {
	if capacity <= 0 {
		capacity = defaultDiagnosticsCapacity
	}
	return &recorder{buf: make([]Record, capacity)}
}

func (r *recorder) append(rec Record) {
	r.buf[(r.head+r.count)%len(r.buf)] = rec
	if r.count < len(r.buf) {
		r.count++
	} else {
		r.head = (r.head + 1) % len(r.buf)
	}
}

// log returns the buffered records, oldest first, as a copy.
func (r *recorder) log() []Record {
	out := make([]Record, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// SetDiagnostics toggles diagnostics recording. Disabled by default; the
// ring buffer keeps whatever it held when recording was last on.
func (b *Bus) SetDiagnostics(enabled bool) {
	b.diagnostics = enabled
}

// DiagnosticsEnabled returns true if diagnostics recording is on.
func (b *Bus) DiagnosticsEnabled() bool {
	return b.diagnostics
}

// DiagnosticsLog returns the recorded diagnostics entries, oldest first.
// The result is a copy; no wire format, no persistence.
func (b *Bus) DiagnosticsLog() []Record {
	return b.recorder.log()
}

// recordEmission appends an emission record if diagnostics are on.
func (b *Bus) recordEmission(typeName string, mode AddressingMode, target, source OwnerID, handlers int, cancelled bool) {
	if !b.diagnostics {
		return
	}
	b.recorder.append(Record{
		ID:        uuid.NewString(),
		Time:      timeNow(),
		Kind:      RecordEmission,
		TypeName:  typeName,
		Mode:      mode,
		Target:    target,
		Source:    source,
		Handlers:  handlers,
		Cancelled: cancelled,
	})
}

// recordRegistration appends a registration lifecycle record if
// diagnostics are on.
func (b *Bus) recordRegistration(kind RecordKind, typeName string, stage Stage) {
	if !b.diagnostics {
		return
	}
	b.recorder.append(Record{
		ID:       uuid.NewString(),
		Time:     timeNow(),
		Kind:     kind,
		TypeName: typeName,
		Stage:    stage,
	})
}
