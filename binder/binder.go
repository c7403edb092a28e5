package binder

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/dmitrymomot/routekit"
)

// Binder accumulates registration state (named middleware, globals, error
// chain) and produces immutable route tables. It is not safe for concurrent
// use, which is irrelevant in practice: binding happens once during startup.
type Binder struct {
	resolver routekit.Resolver
	registry map[string]routekit.Ref
	globals  []routekit.Ref
	errChain []routekit.ErrorMiddleware
}

// Option configures a Binder.
type Option func(*Binder)

// WithResolver supplies the factory used to instantiate type references,
// both middleware (routekit.Type) and controllers (binder.Type).
func WithResolver(r routekit.Resolver) Option {
	return func(b *Binder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithMiddleware registers a named middleware reference for use in mount and
// route use tags. Registering the same name twice overwrites the previous
// reference.
func WithMiddleware(name string, ref routekit.Ref) Option {
	if name == "" {
		panic("binder.WithMiddleware: name cannot be empty")
	}
	return func(b *Binder) {
		b.registry[name] = ref
	}
}

// New returns a Binder configured with the given options.
func New(opts ...Option) *Binder {
	b := &Binder{
		registry: make(map[string]routekit.Ref),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Use appends global middleware, applied to the whole router before any
// mount. Call order is preserved across multiple calls.
func (b *Binder) Use(refs ...routekit.Ref) {
	b.globals = append(b.globals, refs...)
}

// UseError appends error middleware. The chain runs in registration order
// when a bound handler returns a non-nil error, and only then.
func (b *Binder) UseError(mw ...routekit.ErrorMiddleware) {
	for _, m := range mw {
		if m != nil {
			b.errChain = append(b.errChain, m)
		}
	}
}

// TypeRef is an un-instantiated controller reference produced by Type.
type TypeRef struct {
	t reflect.Type
}

// Type defers controller construction to the binder's resolver. T is the
// pointer type of the controller:
//
//	table, err := b.Bind(binder.Type[*AdminController]())
//
// Bind fails with routekit.ErrMissingResolver when no resolver is
// configured.
func Type[T any]() TypeRef {
	return TypeRef{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// Bind walks the controllers in argument order and produces the route
// table. Each controller contributes one mount plus one registration per
// route field, in declaration order. The first error aborts binding; a
// partially bound table is never returned.
func (b *Binder) Bind(controllers ...any) (*routekit.Table, error) {
	globals, err := b.resolveRefs(b.globals)
	if err != nil {
		return nil, fmt.Errorf("global middleware: %w", err)
	}

	table := &routekit.Table{
		Middleware: globals,
		ErrorChain: append([]routekit.ErrorMiddleware(nil), b.errChain...),
	}

	for i, ctrl := range controllers {
		mount, err := b.bindController(ctrl)
		if err != nil {
			return nil, fmt.Errorf("controller %d: %w", i, err)
		}
		table.Mounts = append(table.Mounts, mount)
	}
	return table, nil
}

func (b *Binder) bindController(ctrl any) (routekit.Mount, error) {
	if ref, ok := ctrl.(TypeRef); ok {
		resolved, err := b.resolveController(ref)
		if err != nil {
			return routekit.Mount{}, err
		}
		ctrl = resolved
	}
	if ctrl == nil {
		return routekit.Mount{}, ErrNilController
	}

	rv := reflect.ValueOf(ctrl)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return routekit.Mount{}, ErrNilController
	}
	// Promote struct values to pointers so pointer-receiver methods bind.
	if rv.Kind() == reflect.Struct {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		rv = pv
	}
	name := rv.Type().String()

	meta, err := routekit.MountMetaOf(ctrl)
	if err != nil {
		return routekit.Mount{}, err
	}
	mountMW, err := b.resolveNames(meta.Middleware)
	if err != nil {
		return routekit.Mount{}, fmt.Errorf("%s mount: %w", name, err)
	}

	routes, err := routekit.RoutesOf(ctrl)
	if err != nil {
		return routekit.Mount{}, err
	}

	mount := routekit.Mount{
		Controller: name,
		BasePath:   meta.BasePath,
		Middleware: mountMW,
	}

	for _, rm := range routes {
		handler, err := lookupHandler(rv, rm.Name)
		if err != nil {
			return routekit.Mount{}, fmt.Errorf("%s: %w", name, err)
		}
		routeMW, err := b.resolveNames(rm.Middleware)
		if err != nil {
			return routekit.Mount{}, fmt.Errorf("%s.%s: %w", name, rm.Name, err)
		}

		chain := make([]routekit.MiddlewareFunc, 0, len(mountMW)+len(routeMW))
		chain = append(chain, mountMW...)
		chain = append(chain, routeMW...)

		mount.Routes = append(mount.Routes, routekit.Registration{
			Method:     rm.Method,
			Path:       rm.Path,
			FullPath:   joinPath(meta.BasePath, rm.Path),
			Name:       rm.Name,
			Middleware: chain,
			Handler:    handler,
		})
	}

	return mount, nil
}

func (b *Binder) resolveController(ref TypeRef) (any, error) {
	if b.resolver == nil {
		return nil, errors.Join(routekit.ErrMissingResolver, fmt.Errorf("controller type %s requires a resolver", ref.t))
	}
	v, err := b.resolver.Resolve(ref.t)
	if err != nil {
		return nil, errors.Join(routekit.ErrResolve, fmt.Errorf("controller type %s: %w", ref.t, err))
	}
	if v == nil {
		return nil, errors.Join(ErrNilController, fmt.Errorf("resolver returned nil for %s", ref.t))
	}
	return v, nil
}

func (b *Binder) resolveNames(names []string) ([]routekit.MiddlewareFunc, error) {
	if len(names) == 0 {
		return nil, nil
	}
	refs := make([]routekit.Ref, 0, len(names))
	for _, name := range names {
		ref, ok := b.registry[name]
		if !ok {
			return nil, errors.Join(ErrUnknownMiddleware, fmt.Errorf("middleware %q", name))
		}
		refs = append(refs, ref)
	}
	return b.resolveRefs(refs)
}

func (b *Binder) resolveRefs(refs []routekit.Ref) ([]routekit.MiddlewareFunc, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]routekit.MiddlewareFunc, 0, len(refs))
	for _, ref := range refs {
		mw, err := ref.Resolve(b.resolver)
		if err != nil {
			return nil, err
		}
		out = append(out, mw)
	}
	return out, nil
}

func lookupHandler(rv reflect.Value, name string) (routekit.HandlerFunc, error) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, errors.Join(ErrMissingHandler, fmt.Errorf("no method %s", name))
	}
	h, ok := m.Interface().(func(http.ResponseWriter, *http.Request) error)
	if !ok {
		return nil, errors.Join(ErrMissingHandler, fmt.Errorf("method %s has signature %s, want func(http.ResponseWriter, *http.Request) error", name, m.Type()))
	}
	return h, nil
}

// joinPath concatenates a mount base path and a route path without
// introducing double slashes. The root route on a mount maps to the mount
// path itself.
func joinPath(base, path string) string {
	if base == "/" {
		return path
	}
	if path == "/" {
		return base
	}
	return base + path
}
