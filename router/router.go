// Package router attaches a bound route table to a chi router.
//
// The adapter is deliberately thin: all decisions (paths, verbs, middleware
// order, error chain) were made at bind time and live in the table. New only
// translates them into chi registrations, one sub-router per mount:
//
//	table, err := b.Bind(&UserController{}, &AdminController{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := router.New(table, router.WithLogger(log))
//	srv.Run(ctx, r)
package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/routekit"
	"github.com/dmitrymomot/routekit/handler"
)

type config struct {
	logger           *slog.Logger
	notFound         http.HandlerFunc
	methodNotAllowed http.HandlerFunc
}

// Option configures the adapter.
type Option func(*config)

// WithLogger sets the logger used by the fallback error handler. Without it
// unhandled handler errors are written but not logged.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithNotFound sets the handler for unmatched paths.
func WithNotFound(h http.HandlerFunc) Option {
	return func(c *config) { c.notFound = h }
}

// WithMethodNotAllowed sets the handler for matched paths with an unmatched
// verb.
func WithMethodNotAllowed(h http.HandlerFunc) Option {
	return func(c *config) { c.methodNotAllowed = h }
}

// New builds a chi router from the table. Global middleware is applied
// first, then each mount becomes a sub-router mounted at its base path with
// the mount middleware applied, then each route is registered in table
// order. Route matching precedence therefore follows declaration order.
func New(t *routekit.Table, opts ...Option) chi.Router {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	for _, mw := range t.Middleware {
		r.Use(mw)
	}
	if cfg.notFound != nil {
		r.NotFound(cfg.notFound)
	}
	if cfg.methodNotAllowed != nil {
		r.MethodNotAllowed(cfg.methodNotAllowed)
	}

	for _, mount := range t.Mounts {
		sub := chi.NewRouter()
		for _, mw := range mount.Middleware {
			sub.Use(mw)
		}
		for _, route := range mount.Routes {
			// Route-level middleware only: mount middleware is already on
			// the sub-router, and Registration.Middleware repeats it.
			extra := route.Middleware
			if len(extra) >= len(mount.Middleware) {
				extra = extra[len(mount.Middleware):]
			}
			h := wrap(route.Handler, t.ErrorChain, cfg.logger)
			if len(extra) > 0 {
				sub.With(toChi(extra)...).Method(route.Method, route.Path, h)
			} else {
				sub.Method(route.Method, route.Path, h)
			}
		}
		r.Mount(mount.BasePath, sub)
	}

	return r
}

func toChi(mws []routekit.MiddlewareFunc) []func(http.Handler) http.Handler {
	out := make([]func(http.Handler) http.Handler, len(mws))
	for i, mw := range mws {
		out[i] = mw
	}
	return out
}

// wrap converts an erroring handler into an http.Handler. A non-nil error
// runs the error chain in order; each element may write a response and stop
// or call next(err) to continue. An exhausted chain falls through to the
// default responder.
func wrap(h routekit.HandlerFunc, chain []routekit.ErrorMiddleware, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var next func(error)
		i := 0
		next = func(e error) {
			if e == nil {
				return
			}
			if i == len(chain) {
				respond(w, r, e, log)
				return
			}
			mw := chain[i]
			i++
			mw(e, w, r, next)
		}
		next(err)
	})
}

// respond is the terminal error responder: status and body come from the
// error when it is an HTTPError, otherwise 500.
func respond(w http.ResponseWriter, r *http.Request, err error, log *slog.Logger) {
	code := http.StatusInternalServerError
	body := http.StatusText(http.StatusInternalServerError)

	var httpErr handler.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		body = httpErr.Key
	}

	if log != nil {
		log.LogAttrs(r.Context(), handler.LogLevel(code), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", code),
			slog.String("error", err.Error()),
		)
	}

	http.Error(w, body, code)
}
