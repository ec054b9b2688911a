package msgbus

// Token owns a batch of registrations created against one Handler and
// controls their lifecycle as a unit. A token is created staged (no
// registrations firing), transitions to enabled with Enable, may toggle
// with Disable any number of times, and is terminally removed with
// Dispose.
//
// Every registration reachable from a token is removable through it:
// Dispose removes all of them from their tables and no dangling
// registration survives.
type Token struct {
	bus      *Bus
	handler  *Handler
	regs     []*registration
	enabled  bool
	disposed bool
}

// NewToken creates a token bound to the given handler and bus.
// A nil bus binds to the process-wide default bus.
func NewToken(h *Handler, bus *Bus) (*Token, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if bus == nil {
		bus = Default()
	}
	return &Token{bus: bus, handler: h}, nil
}

// Handler returns the bound handler.
func (t *Token) Handler() *Handler {
	return t.handler
}

// Bus returns the bound bus.
func (t *Token) Bus() *Bus {
	return t.bus
}

// Count returns the number of live registrations held by the token.
func (t *Token) Count() int {
	n := 0
	for _, r := range t.regs {
		if !r.removed {
			n++
		}
	}
	return n
}

// IsEnabled returns true if Enable has been called more recently than
// Disable.
func (t *Token) IsEnabled() bool {
	return t.enabled && !t.disposed
}

// IsDisposed returns true after Dispose.
func (t *Token) IsDisposed() bool {
	return t.disposed
}

// Enable activates the handler and marks every registration active.
// Returns ErrTokenDisposed after Dispose.
func (t *Token) Enable() error {
	if t.disposed {
		return ErrTokenDisposed
	}
	t.handler.Activate()
	for _, r := range t.regs {
		if !r.removed {
			r.active = true
		}
	}
	t.enabled = true
	return nil
}

// Disable deactivates the handler. Registrations keep their own flags and
// stay in their tables; they simply stop firing until Enable. The owner
// gate is a single flag, so disabling is O(1) regardless of registration
// count.
func (t *Token) Disable() error {
	if t.disposed {
		return ErrTokenDisposed
	}
	t.handler.Deactivate()
	t.enabled = false
	return nil
}

// Dispose removes every registration from its table and poisons the
// token. Safe to call more than once; Enable and further registrations
// fail afterward.
func (t *Token) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.enabled = false
	t.handler.Deactivate()
	for _, r := range t.regs {
		r.Remove()
	}
	t.regs = nil
}

// precheck validates a registration attempt.
func (t *Token) precheck(fnIsNil bool) error {
	if t == nil {
		return ErrNilToken
	}
	if t.disposed {
		return ErrTokenDisposed
	}
	if fnIsNil {
		return ErrNilCallback
	}
	return nil
}

// newRegistration constructs the shared registration record for a new
// table entry. The caller fills in id and detach after inserting.
func (t *Token) newRegistration(typeName string, stage Stage) *registration {
	return &registration{
		owner:    t.handler,
		bus:      t.bus,
		typeName: typeName,
		stage:    stage,
		active:   t.enabled,
	}
}

// track retains the registration on the token and updates bus accounting.
func (t *Token) track(r *registration) {
	t.regs = append(t.regs, r)
	t.bus.regCount++
	t.bus.recordRegistration(RecordRegistered, r.typeName, r.stage)
}

// RegisterGlobalAcceptAll registers a callback that fires for literally
// every message of every type and mode, after the interceptor stage has
// let the emission through. Intended for tooling; every emission on the
// bus pays for it, so it is expensive by construction.
func (t *Token) RegisterGlobalAcceptAll(priority int, fn func(Envelope) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	r := t.newRegistration("", StageHandler)
	tbl := t.bus.acceptAll.table
	r.id = tbl.Insert(priority, t.bus.nextSeq(), acceptAllReg{reg: r, fn: fn})
	id := r.id
	r.detach = func() { tbl.Remove(id) }
	t.track(r)
	return r, nil
}
