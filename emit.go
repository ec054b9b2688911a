package msgbus

import "github.com/dshills/msgbus/registry"

// Emit entry points are package-level generics for the same reason the
// registration functions are. Each returns only after every callback
// invoked for the message has returned: there is no queue, no goroutine,
// and no suspension point anywhere in the walk.

// EmitUntargeted delivers msg to every active handler registered for T,
// regardless of owner. A nil bus uses the default bus.
func EmitUntargeted[T any](b *Bus, msg *T) error {
	if msg == nil {
		return ErrNilMessage
	}
	if b == nil {
		b = Default()
	}
	tt := tablesFor[T](b)
	b.emissions++

	if !runInterceptors(b, tt, msg) {
		b.cancelled++
		b.recordEmission(tt.name, ModeUntargeted, 0, 0, 0, true)
		return nil
	}

	invoked, err := walkHandlers(b, tt, msg, ModeUntargeted, 0, 0, tt.untargeted.view(), nil)
	if err == nil {
		err = runPostProcessors(b, tt, msg)
	}
	b.recordEmission(tt.name, ModeUntargeted, 0, 0, invoked, false)
	return err
}

// EmitTargeted delivers msg alongside an explicit target. Direct handlers
// registered for that owner and spy handlers observing all targets are
// walked as one priority-ordered sequence, not as two passes.
func EmitTargeted[T any](b *Bus, target OwnerID, msg *T) error {
	if msg == nil {
		return ErrNilMessage
	}
	if b == nil {
		b = Default()
	}
	tt := tablesFor[T](b)
	b.emissions++

	if !runInterceptors(b, tt, msg) {
		b.cancelled++
		b.recordEmission(tt.name, ModeTargeted, target, 0, 0, true)
		return nil
	}

	var direct []registry.Entry[handlerReg[T]]
	if l := tt.targeted[target]; l != nil {
		direct = l.view()
	}
	invoked, err := walkHandlers(b, tt, msg, ModeTargeted, target, 0, direct, tt.targetedSpy.view())
	if err == nil {
		err = runPostProcessors(b, tt, msg)
	}
	b.recordEmission(tt.name, ModeTargeted, target, 0, invoked, false)
	return err
}

// EmitBroadcast delivers msg alongside an explicit source. Mirrors
// targeted semantics with source in place of target.
func EmitBroadcast[T any](b *Bus, source OwnerID, msg *T) error {
	if msg == nil {
		return ErrNilMessage
	}
	if b == nil {
		b = Default()
	}
	tt := tablesFor[T](b)
	b.emissions++

	if !runInterceptors(b, tt, msg) {
		b.cancelled++
		b.recordEmission(tt.name, ModeBroadcast, 0, source, 0, true)
		return nil
	}

	var direct []registry.Entry[handlerReg[T]]
	if l := tt.broadcast[source]; l != nil {
		direct = l.view()
	}
	invoked, err := walkHandlers(b, tt, msg, ModeBroadcast, 0, source, direct, tt.broadcastSpy.view())
	if err == nil {
		err = runPostProcessors(b, tt, msg)
	}
	b.recordEmission(tt.name, ModeBroadcast, 0, source, invoked, false)
	return err
}

// runInterceptors walks the interceptor stage in (priority, seq) order.
// The first interceptor returning false halts the entire dispatch; no
// further interceptors, handlers, or post-processors run.
func runInterceptors[T any](b *Bus, tt *typeTables[T], msg *T) bool {
	for _, e := range tt.interceptors.view() {
		if !e.Payload.reg.fires() {
			continue
		}
		if !e.Payload.fn(msg) {
			return false
		}
	}
	return true
}

// walkHandlers runs the handler stage: a three-way merge of the direct
// view, the spy view, and the bus-wide accept-all view, ordered by
// (priority, seq) across all three. Inactive registrations and
// registrations whose owner is inactive are skipped.
//
// Returns the number of callbacks invoked. On a callback error the
// bus's fault policy decides whether the walk continues.
func walkHandlers[T any](
	b *Bus,
	tt *typeTables[T],
	msg *T,
	mode AddressingMode,
	target, source OwnerID,
	direct []registry.Entry[handlerReg[T]],
	spies []registry.Entry[spyReg[T]],
) (int, error) {
	global := b.acceptAll.view()

	// The spy callback receives the emission's address: the target for
	// targeted mode, the source for broadcast.
	addr := target
	if mode == ModeBroadcast {
		addr = source
	}

	var env Envelope
	if len(global) > 0 {
		env = Envelope{
			Message:  msg,
			TypeName: tt.name,
			Slot:     tt.slot,
			Mode:     mode,
			Target:   target,
			Source:   source,
		}
	}

	invoked := 0
	i, j, k := 0, 0, 0
	for {
		// Pick the source whose head has the smallest (priority, seq).
		src := -1
		var bestP int
		var bestS uint64
		if i < len(direct) {
			src, bestP, bestS = 0, direct[i].Priority, direct[i].Seq
		}
		if j < len(spies) && (src < 0 || entryBefore(spies[j].Priority, spies[j].Seq, bestP, bestS)) {
			src, bestP, bestS = 1, spies[j].Priority, spies[j].Seq
		}
		if k < len(global) && (src < 0 || entryBefore(global[k].Priority, global[k].Seq, bestP, bestS)) {
			src = 2
		}
		if src < 0 {
			return invoked, nil
		}

		var err error
		fired := false
		switch src {
		case 0:
			e := direct[i]
			i++
			if e.Payload.reg.fires() {
				fired = true
				err = e.Payload.fn(msg)
			}
		case 1:
			e := spies[j]
			j++
			if e.Payload.reg.fires() {
				fired = true
				err = e.Payload.fn(addr, msg)
			}
		case 2:
			e := global[k]
			k++
			if e.Payload.reg.fires() {
				fired = true
				err = e.Payload.fn(env)
			}
		}
		if !fired {
			continue
		}
		invoked++
		b.deliveries++
		if err != nil {
			if ferr := b.fault(StageHandler, tt.name, err); ferr != nil {
				return invoked, ferr
			}
		}
	}
}

// runPostProcessors walks the post-processor stage. It runs after the
// handler stage completes, even when zero handlers fired.
func runPostProcessors[T any](b *Bus, tt *typeTables[T], msg *T) error {
	for _, e := range tt.post.view() {
		if !e.Payload.reg.fires() {
			continue
		}
		if err := e.Payload.fn(msg); err != nil {
			if ferr := b.fault(StagePostProcessor, tt.name, err); ferr != nil {
				return ferr
			}
		}
	}
	return nil
}

// entryBefore reports whether ordering key (p1, s1) dispatches before
// (p2, s2): ascending priority, ties broken by insertion sequence.
func entryBefore(p1 int, s1 uint64, p2 int, s2 uint64) bool {
	if p1 != p2 {
		return p1 < p2
	}
	return s1 < s2
}
