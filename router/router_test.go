package router_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit"
	"github.com/dmitrymomot/routekit/binder"
	"github.com/dmitrymomot/routekit/handler"
	"github.com/dmitrymomot/routekit/pkg/logger"
	"github.com/dmitrymomot/routekit/pkg/requestid"
	"github.com/dmitrymomot/routekit/router"
)

func traceMW(name string, trace *[]string) routekit.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, name)
			next.ServeHTTP(w, r)
		})
	}
}

type shopRoutes struct {
	List  routekit.Route `route:"GET /"`
	Show  routekit.Route `route:"GET /{id}"`
	Buy   routekit.Route `route:"POST /{id}/buy" use:"c"`
	Crash routekit.Route `route:"GET /crash"`
	Gone  routekit.Route `route:"GET /gone"`
}

type shopController struct {
	routekit.Controller `mount:"/shop" use:"a,b"`
	shopRoutes

	trace *[]string
}

func (c *shopController) List(w http.ResponseWriter, r *http.Request) error {
	*c.trace = append(*c.trace, "handler")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("list"))
	return err
}

func (c *shopController) Show(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("show"))
	return err
}

func (c *shopController) Buy(w http.ResponseWriter, r *http.Request) error {
	*c.trace = append(*c.trace, "handler")
	w.WriteHeader(http.StatusCreated)
	return nil
}

func (c *shopController) Crash(w http.ResponseWriter, r *http.Request) error {
	return errors.New("kaboom")
}

func (c *shopController) Gone(w http.ResponseWriter, r *http.Request) error {
	return handler.ErrNotFound
}

func bindShop(t *testing.T, trace *[]string, b *binder.Binder) *routekit.Table {
	t.Helper()
	table, err := b.Bind(&shopController{trace: trace})
	require.NoError(t, err)
	return table
}

func newShopBinder(trace *[]string) *binder.Binder {
	return binder.New(
		binder.WithMiddleware("a", routekit.Func(traceMW("a", trace))),
		binder.WithMiddleware("b", routekit.Func(traceMW("b", trace))),
		binder.WithMiddleware("c", routekit.Func(traceMW("c", trace))),
	)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("routes answer at their full paths", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "list", rec.Body.String())

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/42", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "show", rec.Body.String())
	})

	t.Run("chain order is mount then route middleware then handler", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/shop/42/buy", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"a", "b", "c", "handler"}, trace)
	})

	t.Run("mount middleware does not run twice per route", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
		assert.Equal(t, []string{"a", "b", "handler"}, trace)
	})

	t.Run("global middleware runs before mount middleware", func(t *testing.T) {
		t.Parallel()
		var trace []string
		b := newShopBinder(&trace)
		b.Use(routekit.Func(traceMW("global", &trace)))
		r := router.New(bindShop(t, &trace, b))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
		assert.Equal(t, []string{"global", "a", "b", "handler"}, trace)
	})

	t.Run("unmatched path hits the not-found handler", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)), router.WithNotFound(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("custom not found"))
			},
		))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "custom not found", rec.Body.String())
	})

	t.Run("request id middleware integrates as a capability object", func(t *testing.T) {
		t.Parallel()
		var trace []string
		b := binder.New(
			binder.WithMiddleware("a", routekit.Func(traceMW("a", &trace))),
			binder.WithMiddleware("b", routekit.Object(requestid.New())),
			binder.WithMiddleware("c", routekit.Func(traceMW("c", &trace))),
		)
		r := router.New(bindShop(t, &trace, b))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})
}

func TestErrorChain(t *testing.T) {
	t.Parallel()

	t.Run("fallback writes 500 for plain errors", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/crash", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("fallback honors HTTPError status and key", func(t *testing.T) {
		t.Parallel()
		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/gone", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("error middleware runs in order and may short-circuit", func(t *testing.T) {
		t.Parallel()
		var seen []string
		var trace []string
		b := newShopBinder(&trace)
		b.UseError(func(err error, w http.ResponseWriter, r *http.Request, next func(error)) {
			seen = append(seen, "first")
			next(err)
		})
		b.UseError(func(err error, w http.ResponseWriter, r *http.Request, next func(error)) {
			seen = append(seen, "second")
			w.WriteHeader(http.StatusTeapot)
		})
		b.UseError(func(err error, w http.ResponseWriter, r *http.Request, next func(error)) {
			seen = append(seen, "third")
			next(err)
		})
		r := router.New(bindShop(t, &trace, b))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/crash", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, []string{"first", "second"}, seen)
	})

	t.Run("error middleware may replace the error", func(t *testing.T) {
		t.Parallel()
		var trace []string
		b := newShopBinder(&trace)
		b.UseError(func(err error, w http.ResponseWriter, r *http.Request, next func(error)) {
			next(handler.ErrServiceUnavailable)
		})
		r := router.New(bindShop(t, &trace, b))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/crash", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("error middleware is not invoked on success", func(t *testing.T) {
		t.Parallel()
		var trace []string
		called := false
		b := newShopBinder(&trace)
		b.UseError(func(err error, w http.ResponseWriter, r *http.Request, next func(error)) {
			called = true
			next(err)
		})
		r := router.New(bindShop(t, &trace, b))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})

	t.Run("fallback logs the failure", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON))

		var trace []string
		r := router.New(bindShop(t, &trace, newShopBinder(&trace)), router.WithLogger(log))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/crash", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, buf.String(), "request failed")
		assert.Contains(t, buf.String(), "kaboom")
		assert.Contains(t, buf.String(), "/shop/crash")
	})
}
