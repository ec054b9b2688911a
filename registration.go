package msgbus

import "github.com/dshills/msgbus/registry"

// Registration is the handle for a single registered callback.
// It controls the registration-level active flag, which is independent of
// the owning Handler's flag; both must be set for the callback to fire.
type Registration interface {
	// ID returns the registration's table-local identifier.
	ID() registry.ID

	// IsActive returns true if the registration-level flag is set.
	// Note this does not consult the owning handler's flag.
	IsActive() bool

	// Activate sets the registration-level flag.
	Activate()

	// Deactivate clears the registration-level flag. The registration
	// stays in its table and can be re-activated.
	Deactivate()

	// Remove permanently deletes the registration from its table.
	// Safe to call more than once.
	Remove()
}

// registration is the internal Registration implementation. It doubles as
// the dispatch gate: table payloads point at it and check fires() before
// invoking their callback.
type registration struct {
	id       registry.ID
	owner    *Handler
	bus      *Bus
	typeName string
	stage    Stage
	active   bool
	removed  bool
	detach   func()
}

// fires reports whether the callback should be invoked: both the
// registration flag and the owner-level gate must be open.
func (r *registration) fires() bool {
	return r.active && !r.removed && r.owner.active
}

// ID returns the registration's identifier.
func (r *registration) ID() registry.ID {
	return r.id
}

// IsActive returns the registration-level flag.
func (r *registration) IsActive() bool {
	return r.active && !r.removed
}

// Activate sets the registration-level flag.
func (r *registration) Activate() {
	if r.removed {
		return
	}
	r.active = true
}

// Deactivate clears the registration-level flag.
func (r *registration) Deactivate() {
	r.active = false
}

// Remove deletes the registration from its table.
func (r *registration) Remove() {
	if r.removed {
		return
	}
	r.removed = true
	r.active = false
	r.detach()
	r.bus.regCount--
	r.bus.recordRegistration(RecordRemoved, r.typeName, r.stage)
}
