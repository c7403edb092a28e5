package binder

import "errors"

// Binding errors. All are startup-time programmer errors; none are expected
// during request processing.
var (
	// ErrMissingHandler indicates a route field whose name has no matching
	// exported method with the routekit.HandlerFunc signature.
	ErrMissingHandler = errors.New("route declared without a matching handler method")

	// ErrUnknownMiddleware indicates a use tag naming middleware that was
	// never registered with WithMiddleware.
	ErrUnknownMiddleware = errors.New("middleware name not registered")

	// ErrNilController indicates a nil controller was passed to Bind, or a
	// resolver produced nil for a controller type reference.
	ErrNilController = errors.New("nil controller")
)
