package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracechain/tracechain/pkg/router"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestVerbsAndGroups(t *testing.T) {
	r := router.New()
	r.Get("/things", "things.index", ok)
	r.Put("/things/{id}", "things.update", ok)
	r.Patch("/things/{id}", "things.patch", ok)
	r.Delete("/things/{id}", "things.destroy", ok)

	api := r.Group("/api")
	api.Post("/things", "things.store", ok)
	api.Patch("/things/{id}", "things.patch", ok)

	h := r.Handler()
	cases := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/things", http.StatusOK},
		{http.MethodPut, "/things/42", http.StatusOK},
		{http.MethodPatch, "/things/42", http.StatusOK},
		{http.MethodDelete, "/things/42", http.StatusOK},
		{http.MethodPost, "/api/things", http.StatusOK},
		{http.MethodPatch, "/api/things/42", http.StatusOK},
		{http.MethodPost, "/things", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Put("/api/things/{id}", "things.update", ok)

	url, err := r.URL("things.update", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/api/things/42", url)

	_, err = r.URL("things.update", nil)
	assert.Error(t, err, "missing params must error")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesIntrospection(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	g := r.Group("/api")
	g.Delete("/b/{id}", "b.destroy", ok)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/a", Name: "a"}, infos[0])
	assert.Equal(t, router.RouteInfo{Method: http.MethodDelete, Path: "/api/b/{id}", Name: "b.destroy"}, infos[1])
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", tag("outer"))
	g.Get("/x", "x", ok, tag("inner"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}
