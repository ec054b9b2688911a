package msgbus

// Registration functions are package-level generics taking the token as
// their first argument, since Go methods cannot introduce type
// parameters. They all validate synchronously: a nil callback or a
// disposed token fails here, never at dispatch time.

// insertReg finishes a registration: inserts the payload, wires the
// detach closure, and retains the handle on the token.
func insertReg[C any](t *Token, r *registration, l *list[C], priority int, payload C) {
	tbl := l.table
	r.id = tbl.Insert(priority, t.bus.nextSeq(), payload)
	id := r.id
	r.detach = func() { tbl.Remove(id) }
	t.track(r)
}

// RegisterUntargeted registers a handler for every untargeted emission of
// T. The message is delivered by pointer; this is the zero-copy path.
func RegisterUntargeted[T any](t *Token, priority int, fn func(*T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageHandler)
	insertReg(t, r, tt.untargeted, priority, handlerReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterUntargetedValue is the copy form of RegisterUntargeted: the
// callback receives the message by value.
func RegisterUntargetedValue[T any](t *Token, priority int, fn func(T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	return RegisterUntargeted(t, priority, func(m *T) error { return fn(*m) })
}

// RegisterTargeted registers a direct targeted handler: it fires only
// when the emission's target equals the token's handler owner.
func RegisterTargeted[T any](t *Token, priority int, fn func(*T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageHandler)
	insertReg(t, r, tt.targetedFor(t.handler.Owner()), priority, handlerReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterTargetedValue is the copy form of RegisterTargeted.
func RegisterTargetedValue[T any](t *Token, priority int, fn func(T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	return RegisterTargeted(t, priority, func(m *T) error { return fn(*m) })
}

// RegisterTargetedWithoutTargeting registers a spy: it fires for every
// targeted emission of T regardless of target, receiving the target
// alongside the message.
func RegisterTargetedWithoutTargeting[T any](t *Token, priority int, fn func(OwnerID, *T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageHandler)
	insertReg(t, r, tt.targetedSpy, priority, spyReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterBroadcast registers a direct broadcast handler: it fires only
// when the emission's source equals the token's handler owner.
func RegisterBroadcast[T any](t *Token, priority int, fn func(*T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageHandler)
	insertReg(t, r, tt.broadcastFor(t.handler.Owner()), priority, handlerReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterBroadcastValue is the copy form of RegisterBroadcast.
func RegisterBroadcastValue[T any](t *Token, priority int, fn func(T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	return RegisterBroadcast(t, priority, func(m *T) error { return fn(*m) })
}

// RegisterBroadcastWithoutSource registers a broadcast spy: it fires for
// every broadcast emission of T regardless of source, receiving the
// source alongside the message.
func RegisterBroadcastWithoutSource[T any](t *Token, priority int, fn func(OwnerID, *T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageHandler)
	insertReg(t, r, tt.broadcastSpy, priority, spyReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterInterceptor registers a pre-handler predicate for T. It runs
// for every emission of T in any addressing mode, may mutate the message
// in place, and cancels the remaining dispatch by returning false.
func RegisterInterceptor[T any](t *Token, priority int, fn func(*T) bool) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StageInterceptor)
	insertReg(t, r, tt.interceptors, priority, interceptorReg[T]{reg: r, fn: fn})
	return r, nil
}

// RegisterPostProcessor registers a callback that runs after the handler
// stage of every uncancelled emission of T, even when zero handlers
// fired.
func RegisterPostProcessor[T any](t *Token, priority int, fn func(*T) error) (Registration, error) {
	if err := t.precheck(fn == nil); err != nil {
		return nil, err
	}
	tt := tablesFor[T](t.bus)
	r := t.newRegistration(tt.name, StagePostProcessor)
	insertReg(t, r, tt.post, priority, postReg[T]{reg: r, fn: fn})
	return r, nil
}
