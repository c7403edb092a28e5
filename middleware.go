package routekit

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// MiddlewareFunc is the plain-function middleware form, identical to chi's.
// Function refs are used unchanged, without wrapping.
type MiddlewareFunc func(next http.Handler) http.Handler

// Middleware is the capability-object middleware form: any value with a
// Handle method. The binder binds Handle to the supplied instance, so the
// object may carry state shared across requests.
type Middleware interface {
	Handle(next http.Handler) http.Handler
}

// ErrorMiddleware processes an error returned by a route handler. It may
// write a response and stop, or call next(err) to pass the error (possibly
// transformed) to the following error middleware. The chain runs in
// registration order; when it is exhausted the router adapter's fallback
// writes an HTTP response itself.
type ErrorMiddleware func(err error, w http.ResponseWriter, r *http.Request, next func(error))

// Resolver instantiates type references. It is an external collaborator,
// typically backed by the host application's dependency container. Resolve
// receives the pointer type recorded by Type or binder.Type and returns a
// ready-to-use instance of it.
type Resolver interface {
	Resolve(t reflect.Type) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(t reflect.Type) (any, error)

func (f ResolverFunc) Resolve(t reflect.Type) (any, error) { return f(t) }

type refKind int

const (
	refFunc refKind = iota
	refObject
	refType
)

// Ref is a middleware reference: one of a plain function, a capability
// object, or a type to be instantiated through a Resolver at bind time. The
// three variants are an explicit union; Resolve switches on the variant
// instead of inspecting dynamic types.
type Ref struct {
	kind refKind
	fn   MiddlewareFunc
	obj  Middleware
	typ  reflect.Type
}

// Func wraps a plain middleware function. It is used as-is at bind time.
func Func(mw MiddlewareFunc) Ref {
	return Ref{kind: refFunc, fn: mw}
}

// Object wraps a middleware capability object. Its Handle method is bound to
// the given instance at bind time.
func Object(m Middleware) Ref {
	return Ref{kind: refObject, obj: m}
}

// Type records a middleware type to be instantiated through the binder's
// Resolver. T is the pointer type of the middleware implementation:
//
//	routekit.Type[*AuthMiddleware]()
//
// Binding a table containing a type ref without a Resolver fails with
// ErrMissingResolver.
func Type[T Middleware]() Ref {
	return Ref{kind: refType, typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Resolve reduces the reference to a callable MiddlewareFunc. r may be nil;
// it is only consulted for type refs.
func (ref Ref) Resolve(r Resolver) (MiddlewareFunc, error) {
	switch ref.kind {
	case refFunc:
		if ref.fn == nil {
			return nil, errors.Join(ErrResolve, errors.New("nil middleware function"))
		}
		return ref.fn, nil
	case refObject:
		if ref.obj == nil {
			return nil, errors.Join(ErrResolve, errors.New("nil middleware object"))
		}
		return ref.obj.Handle, nil
	case refType:
		if r == nil {
			return nil, errors.Join(ErrMissingResolver, fmt.Errorf("middleware type %s requires a resolver", ref.typ))
		}
		v, err := r.Resolve(ref.typ)
		if err != nil {
			return nil, errors.Join(ErrResolve, fmt.Errorf("middleware type %s: %w", ref.typ, err))
		}
		m, ok := v.(Middleware)
		if !ok {
			return nil, errors.Join(ErrResolve, fmt.Errorf("resolved %T for %s does not implement routekit.Middleware", v, ref.typ))
		}
		return m.Handle, nil
	default:
		return nil, errors.Join(ErrResolve, fmt.Errorf("unknown middleware ref kind %d", ref.kind))
	}
}
