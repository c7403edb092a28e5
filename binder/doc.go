// Package binder turns annotated controllers into a route table.
//
// The binder is configured once with named middleware and an optional
// resolver, then Bind walks the supplied controllers and produces a
// *routekit.Table:
//
//	b := binder.New(
//		binder.WithMiddleware("auth", routekit.Object(authMW)),
//		binder.WithMiddleware("audit", routekit.Func(auditMW)),
//		binder.WithResolver(container),
//	)
//	b.Use(routekit.Func(requestid.Middleware))
//	b.UseError(apiErrorRenderer)
//
//	table, err := b.Bind(
//		&UserController{users: store},
//		binder.Type[*AdminController](),
//	)
//
// Binding fails fast on programmer errors: a controller without mount
// metadata, a route field without a matching handler method, a middleware
// name missing from the registry, or a type reference without a resolver.
// Nothing is silently skipped except plain data fields and plain methods,
// which are by definition not route declarations.
//
// Bind is pure with respect to its inputs: controllers are never mutated
// and binding the same controllers twice yields equal tables.
package binder
