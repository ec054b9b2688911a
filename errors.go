package msgbus

import "errors"

// Sentinel errors for the message bus.
var (
	// ErrNilCallback is returned when a nil callback is registered.
	// Registration failures surface at the registration call site, never
	// at dispatch time.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrNilHandler is returned when a token is created without a handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilToken is returned when a registration is attempted through a
	// nil token.
	ErrNilToken = errors.New("token cannot be nil")

	// ErrNilMessage is returned when emitting a nil message pointer.
	ErrNilMessage = errors.New("message cannot be nil")

	// ErrTokenDisposed is returned when operating a token after Dispose.
	ErrTokenDisposed = errors.New("token has been disposed")
)

// DispatchError wraps an error returned by a callback during dispatch
// with the stage and message type it occurred in.
type DispatchError struct {
	// Stage is the dispatch stage the failing callback belonged to.
	Stage Stage

	// TypeName is the message type being dispatched.
	TypeName string

	// Err is the underlying callback error.
	Err error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return e.Stage.String() + " fault dispatching " + e.TypeName + ": " + e.Err.Error()
}

// Unwrap returns the underlying callback error.
func (e *DispatchError) Unwrap() error {
	return e.Err
}
