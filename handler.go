package msgbus

// Handler is the per-owner node that all of an owner's registrations
// attach to. It carries the owner identity and the owner-level active
// gate: a registration fires only while both its own flag and its
// handler's flag are set.
//
// Exactly one Handler should exist per owner at a time. The engine does
// not enforce this; the component-lifecycle layer that creates handlers
// is expected to.
type Handler struct {
	owner  OwnerID
	active bool
}

// NewHandler creates a handler for the given owner. Handlers start
// inactive; Token.Enable activates them.
func NewHandler(owner OwnerID) *Handler {
	return &Handler{owner: owner}
}

// Owner returns the handler's owner identity.
func (h *Handler) Owner() OwnerID {
	return h.owner
}

// IsActive returns true if the owner-level gate is open.
func (h *Handler) IsActive() bool {
	return h.active
}

// Activate opens the owner-level gate.
func (h *Handler) Activate() {
	h.active = true
}

// Deactivate closes the owner-level gate. Registrations remain in their
// tables but stop firing until Activate.
func (h *Handler) Deactivate() {
	h.active = false
}
