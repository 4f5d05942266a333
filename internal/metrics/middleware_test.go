package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/dig/{playerID}/state", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/dig/{playerID}/state", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"alice", "bob"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dig/"+id+"/state", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	h := Middleware(http.NotFoundHandler())
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/player-xyz", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestStatusRecorder_Flushes(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	sr.Flush()
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, sr.Unwrap())
}
