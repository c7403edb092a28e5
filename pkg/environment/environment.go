// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and structured
// logs. All helpers are allocation-free and never return errors; a missing
// value is the zero value "".
package environment

import (
	"context"
	"log/slog"
	"net/http"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

type contextKey struct{}

// WithContext attaches the environment to the context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from the context, or "" when unset.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether the context carries a production environment.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Production || env == "prod"
}

// IsDevelopment reports whether the context carries a development environment.
func IsDevelopment(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Development || env == "dev"
}

// IsStaging reports whether the context carries a staging environment.
func IsStaging(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Staging || env == "stage"
}

// Middleware attaches the given environment to every request context. It has
// the plain middleware signature, so it can be registered with the binder as
// routekit.Func(environment.Middleware(env)).
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}

// LoggerExtractor returns a logger context extractor injecting the
// environment under the "env" key.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
