package msgbus

import "testing"

func TestNewToken_NilHandler(t *testing.T) {
	if _, err := NewToken(nil, New()); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestToken_StartsStaged(t *testing.T) {
	bus := New()
	tok, err := NewToken(NewHandler(1), bus)
	if err != nil {
		t.Fatalf("NewToken() failed: %v", err)
	}

	invoked := 0
	RegisterUntargeted(tok, 0, func(m *Ping) error {
		invoked++
		return nil
	})

	// Not enabled yet: nothing fires.
	EmitUntargeted(bus, &Ping{})
	if invoked != 0 {
		t.Errorf("staged token fired %d times, want 0", invoked)
	}
	if tok.IsEnabled() {
		t.Error("expected token to start disabled")
	}
}

func TestToken_EnableDisableEnable(t *testing.T) {
	bus := New()
	tok := enabledToken(t, bus, 1)

	invoked := 0
	RegisterUntargeted(tok, 0, func(m *Ping) error {
		invoked++
		return nil
	})

	EmitUntargeted(bus, &Ping{})
	if invoked != 1 {
		t.Fatalf("enabled: invoked = %d, want 1", invoked)
	}

	if err := tok.Disable(); err != nil {
		t.Fatalf("Disable() failed: %v", err)
	}
	EmitUntargeted(bus, &Ping{})
	if invoked != 1 {
		t.Fatalf("disabled: invoked = %d, want still 1", invoked)
	}

	// Re-enable restores delivery without re-registering.
	if err := tok.Enable(); err != nil {
		t.Fatalf("Enable() failed: %v", err)
	}
	EmitUntargeted(bus, &Ping{})
	if invoked != 2 {
		t.Errorf("re-enabled: invoked = %d, want 2", invoked)
	}
}

func TestToken_DisposeRemovesRegistrations(t *testing.T) {
	bus := New()
	baseline := bus.Stats().Registrations

	tok := enabledToken(t, bus, 1)
	invoked := 0
	RegisterUntargeted(tok, 0, func(m *Ping) error {
		invoked++
		return nil
	})
	RegisterInterceptor(tok, 0, func(m *Ping) bool { return true })
	RegisterPostProcessor(tok, 0, func(m *Ping) error { return nil })
	tok.RegisterGlobalAcceptAll(0, func(env Envelope) error { return nil })

	if got := bus.Stats().Registrations; got != baseline+4 {
		t.Fatalf("registrations = %d, want %d", got, baseline+4)
	}

	tok.Dispose()

	if got := bus.Stats().Registrations; got != baseline {
		t.Errorf("registrations after Dispose = %d, want baseline %d", got, baseline)
	}
	if !tok.IsDisposed() {
		t.Error("expected IsDisposed() == true")
	}

	EmitUntargeted(bus, &Ping{})
	if invoked != 0 {
		t.Errorf("disposed token fired %d times, want 0", invoked)
	}
}

func TestToken_EnableAfterDispose(t *testing.T) {
	tok := enabledToken(t, New(), 1)
	tok.Dispose()

	if err := tok.Enable(); err != ErrTokenDisposed {
		t.Errorf("Enable after Dispose = %v, want ErrTokenDisposed", err)
	}
	if err := tok.Disable(); err != ErrTokenDisposed {
		t.Errorf("Disable after Dispose = %v, want ErrTokenDisposed", err)
	}
}

func TestToken_RegisterAfterDispose(t *testing.T) {
	tok := enabledToken(t, New(), 1)
	tok.Dispose()

	if _, err := RegisterUntargeted(tok, 0, func(m *Ping) error { return nil }); err != ErrTokenDisposed {
		t.Errorf("RegisterUntargeted after Dispose = %v, want ErrTokenDisposed", err)
	}
	if _, err := tok.RegisterGlobalAcceptAll(0, func(env Envelope) error { return nil }); err != ErrTokenDisposed {
		t.Errorf("RegisterGlobalAcceptAll after Dispose = %v, want ErrTokenDisposed", err)
	}
}

func TestToken_DisposeIdempotent(t *testing.T) {
	tok := enabledToken(t, New(), 1)
	tok.Dispose()
	tok.Dispose() // must not panic or double-remove
}

func TestRegister_NilCallback(t *testing.T) {
	tok := enabledToken(t, New(), 1)

	if _, err := RegisterUntargeted[Ping](tok, 0, nil); err != ErrNilCallback {
		t.Errorf("RegisterUntargeted(nil) = %v, want ErrNilCallback", err)
	}
	if _, err := RegisterTargeted[Ping](tok, 0, nil); err != ErrNilCallback {
		t.Errorf("RegisterTargeted(nil) = %v, want ErrNilCallback", err)
	}
	if _, err := RegisterInterceptor[Ping](tok, 0, nil); err != ErrNilCallback {
		t.Errorf("RegisterInterceptor(nil) = %v, want ErrNilCallback", err)
	}
	if _, err := RegisterPostProcessor[Ping](tok, 0, nil); err != ErrNilCallback {
		t.Errorf("RegisterPostProcessor(nil) = %v, want ErrNilCallback", err)
	}
	if _, err := tok.RegisterGlobalAcceptAll(0, nil); err != ErrNilCallback {
		t.Errorf("RegisterGlobalAcceptAll(nil) = %v, want ErrNilCallback", err)
	}
}

func TestRegister_NilToken(t *testing.T) {
	var tok *Token
	if _, err := RegisterUntargeted(tok, 0, func(m *Ping) error { return nil }); err != ErrNilToken {
		t.Errorf("RegisterUntargeted(nil token) = %v, want ErrNilToken", err)
	}
}

func TestToken_Count(t *testing.T) {
	tok := enabledToken(t, New(), 1)
	if tok.Count() != 0 {
		t.Errorf("Count() = %d, want 0", tok.Count())
	}

	reg, _ := RegisterUntargeted(tok, 0, func(m *Ping) error { return nil })
	RegisterUntargeted(tok, 0, func(m *Ping) error { return nil })
	if tok.Count() != 2 {
		t.Errorf("Count() = %d, want 2", tok.Count())
	}

	reg.Remove()
	if tok.Count() != 1 {
		t.Errorf("Count() after Remove = %d, want 1", tok.Count())
	}
}

func TestRegistration_IndividualToggle(t *testing.T) {
	bus := New()
	tok := enabledToken(t, bus, 1)

	invoked := 0
	reg, _ := RegisterUntargeted(tok, 0, func(m *Ping) error {
		invoked++
		return nil
	})

	reg.Deactivate()
	EmitUntargeted(bus, &Ping{})
	if invoked != 0 {
		t.Errorf("deactivated registration fired %d times, want 0", invoked)
	}

	reg.Activate()
	EmitUntargeted(bus, &Ping{})
	if invoked != 1 {
		t.Errorf("re-activated registration fired %d times, want 1", invoked)
	}
}

func TestRegistration_RemoveTwice(t *testing.T) {
	bus := New()
	tok := enabledToken(t, bus, 1)

	reg, _ := RegisterUntargeted(tok, 0, func(m *Ping) error { return nil })
	before := bus.Stats().Registrations

	reg.Remove()
	reg.Remove()

	if got := bus.Stats().Registrations; got != before-1 {
		t.Errorf("registrations = %d, want %d (double Remove must not double-count)", got, before-1)
	}
	if reg.IsActive() {
		t.Error("removed registration reports active")
	}
}

func TestHandler_Lifecycle(t *testing.T) {
	h := NewHandler(OwnerID(9))
	if h.IsActive() {
		t.Error("new handler should be inactive")
	}
	if h.Owner() != 9 {
		t.Errorf("Owner() = %d, want 9", h.Owner())
	}

	h.Activate()
	if !h.IsActive() {
		t.Error("expected active after Activate()")
	}
	h.Deactivate()
	if h.IsActive() {
		t.Error("expected inactive after Deactivate()")
	}
}

func TestToken_RegistrationAddedWhileEnabled(t *testing.T) {
	bus := New()
	tok := enabledToken(t, bus, 1)

	// Registrations created on an already-enabled token fire without a
	// second Enable call.
	invoked := 0
	RegisterUntargeted(tok, 0, func(m *Ping) error {
		invoked++
		return nil
	})

	EmitUntargeted(bus, &Ping{})
	if invoked != 1 {
		t.Errorf("invoked = %d, want 1", invoked)
	}
}
