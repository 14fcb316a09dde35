package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/thread", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/thread", "418"))
	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/thread?id=5", nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/thread", "418"))

	assert.Equal(t, 3.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMiddleware_ErrorKinds(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Put("/thread", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	access := httpErrorsTotal.WithLabelValues("access")
	before := testutil.ToFloat64(access)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/thread", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(access)-before)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", errorKind(http.StatusOK))
	assert.Equal(t, "input", errorKind(http.StatusBadRequest))
	assert.Equal(t, "access", errorKind(http.StatusForbidden))
	assert.Equal(t, "rate_limited", errorKind(http.StatusTooManyRequests))
	assert.Equal(t, "internal", errorKind(http.StatusInternalServerError))
	assert.Equal(t, "other", errorKind(http.StatusNotFound))
}
