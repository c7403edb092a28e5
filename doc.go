// Package routekit provides a declarative routing layer on top of chi.
//
// Controllers are plain structs that describe their routes with struct tags
// instead of imperative registration calls. An embedded Controller marker
// carries the mount metadata (base path plus shared middleware), and Route
// marker fields carry per-route metadata (HTTP verb, path, middleware):
//
//	type userRoutes struct {
//		List   routekit.Route `route:"GET /"`
//		Create routekit.Route `route:"POST /" use:"audit"`
//		Show   routekit.Route `route:"GET /{id}"`
//	}
//
//	type UserController struct {
//		routekit.Controller `mount:"/users" use:"auth"`
//		userRoutes
//
//		users UserStore
//	}
//
//	func (c *UserController) List(w http.ResponseWriter, r *http.Request) error { ... }
//	func (c *UserController) Create(w http.ResponseWriter, r *http.Request) error { ... }
//	func (c *UserController) Show(w http.ResponseWriter, r *http.Request) error { ... }
//
// Route fields usually live on an embedded descriptor struct so that field
// names can match handler method names without colliding with them.
//
// At application startup the binder package inspects annotated controllers
// and produces a Table, a plain data structure listing every mount and route
// registration. The router package then attaches a Table to a chi.Router:
//
//	b := binder.New(
//		binder.WithMiddleware("auth", routekit.Object(authMW)),
//		binder.WithMiddleware("audit", routekit.Func(auditMW)),
//	)
//	table, err := b.Bind(&UserController{users: store})
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := router.New(table)
//
// Binding runs once, synchronously, during startup. Metadata is read-only
// and binding never mutates the controllers, so binding the same input twice
// yields equal tables. The Table is immutable after Bind and safe for
// concurrent reads.
//
// Handler methods return an error. A non-nil error is passed through the
// table's error-middleware chain (see Binder.UseError) before a fallback
// writes an HTTP response, so controllers stay free of response-writing
// error boilerplate.
package routekit
