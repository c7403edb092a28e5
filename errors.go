package routekit

import "errors"

// Metadata errors surface during binding, not at request time. All of them
// signal programmer mistakes and are fatal at startup.
var (
	// ErrMissingMetadata indicates a controller without an embedded
	// Controller marker or with an absent/malformed mount tag.
	ErrMissingMetadata = errors.New("missing or malformed mount metadata")

	// ErrInvalidRoute indicates a route tag that does not parse: wrong field
	// count, unknown HTTP verb, or a path not starting with "/".
	ErrInvalidRoute = errors.New("invalid route metadata")

	// ErrMissingResolver indicates a type reference (middleware or
	// controller) was supplied without a Resolver to instantiate it.
	ErrMissingResolver = errors.New("no resolver configured for type reference")

	// ErrResolve wraps failures coming out of a Resolver, including
	// resolved values of the wrong type.
	ErrResolve = errors.New("resolver failed to produce a usable instance")
)
