// Package requestid provides HTTP middleware and helpers for request
// correlation identifiers.
//
// The middleware attaches a request ID to every request: a client-supplied
// "X-Request-ID" header is validated and reused, otherwise a fresh UUIDv4 is
// generated. The ID is stored in the request context, echoed back in the
// response header, and can be injected into slog records via
// LoggerExtractor.
//
// The package never returns errors; invalid client-supplied IDs are silently
// replaced.
package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/routekit"
)

// Header is the canonical request-ID header name.
const Header = "X-Request-ID"

const maxIDLength = 128

var validIDRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

type contextKey struct{}

// WithContext attaches the request ID to the context.
func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// FromContext retrieves the request ID from the context, or "" when unset.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, ok := ctx.Value(contextKey{}).(string)
	if !ok {
		return ""
	}
	return requestID
}

// Middleware attaches a request ID to every request. It has the plain
// middleware signature and can be registered with the binder as
// routekit.Func(requestid.Middleware).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = uuid.New().String()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// New returns the middleware as a routekit capability object, for
// registration by name in use tags:
//
//	binder.WithMiddleware("requestid", routekit.Object(requestid.New()))
func New() routekit.Middleware {
	return capability{}
}

type capability struct{}

func (capability) Handle(next http.Handler) http.Handler {
	return Middleware(next)
}

// LoggerExtractor returns a logger context extractor injecting the request
// ID under the "request_id" key.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return slog.String("request_id", requestID), true
		}
		return slog.Attr{}, false
	}
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
