package routekit

import "net/http"

// Controller is a zero-size marker type. Embedding it turns a struct into a
// routable controller; the struct tag on the embedded field carries the
// mount metadata:
//
//	type ProfileController struct {
//		routekit.Controller `mount:"/profile" use:"auth"`
//	}
//
// The mount tag is required. A controller without it fails binding with
// ErrMissingMetadata.
type Controller struct{}

// Route is a zero-size marker type for route declarations. A struct field of
// this type declares one route; the field name must match an exported method
// on the controller with the HandlerFunc signature:
//
//	Show routekit.Route `route:"GET /{id}" use:"audit"`
//
// Fields of any other type are plain data and are ignored by the binder.
type Route struct{}

// HandlerFunc is the signature controller methods must have to be bound as
// route handlers. A non-nil error is routed into the error-middleware chain
// instead of being written to the response by the handler itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP implements http.Handler, swallowing the error. It exists for
// tests and for using a HandlerFunc outside a bound table; bound handlers
// are wrapped by the router adapter, which feeds errors to the error chain.
func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = h(w, r)
}
