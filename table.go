package routekit

// Registration is one bound route: the verb and controller-relative path,
// the full path after mounting, and the middleware chain to run before the
// handler. Middleware holds mount-level refs followed by route-level refs,
// in declaration order; the handler runs last.
type Registration struct {
	Method     string
	Path       string
	FullPath   string
	Name       string
	Middleware []MiddlewareFunc
	Handler    HandlerFunc
}

// Mount is one bound controller: a sub-router mounted at BasePath, with the
// controller's shared middleware applied before every route.
type Mount struct {
	Controller string
	BasePath   string
	Middleware []MiddlewareFunc
	Routes     []Registration
}

// Table is the binding result: an ordered, immutable route table. Mounts
// appear in controller argument order and routes in declaration order, so
// attaching the table to a router reproduces first-registered-wins matching
// precedence deterministically. A Table carries no behavior; the router
// package attaches it to a live chi router.
type Table struct {
	Mounts     []Mount
	Middleware []MiddlewareFunc
	ErrorChain []ErrorMiddleware
}

// Len returns the total number of route registrations across all mounts.
func (t *Table) Len() int {
	n := 0
	for _, m := range t.Mounts {
		n += len(m.Routes)
	}
	return n
}

// Routes returns all registrations across mounts in table order. The slice
// is freshly allocated; mutating it does not affect the table.
func (t *Table) Routes() []Registration {
	out := make([]Registration, 0, t.Len())
	for _, m := range t.Mounts {
		out = append(out, m.Routes...)
	}
	return out
}
