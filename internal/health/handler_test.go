// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func get(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	h := NewHandler()

	for _, path := range []string{"/healthz", "/livez"} {
		w := get(h, path)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}

	h.SetShutdown(true)
	w := get(h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"shutting_down"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		deps   []Dependency
		status int
		want   string
	}{
		{
			name:   "all healthy",
			deps:   []Dependency{{Name: "database", Checker: up}, {Name: "redis", Checker: up}},
			status: http.StatusOK,
			want:   "ok",
		},
		{
			name:   "redis down",
			deps:   []Dependency{{Name: "database", Checker: up}, {Name: "redis", Checker: down}},
			status: http.StatusServiceUnavailable,
			want:   "degraded",
		},
		{
			name:   "unconfigured checker",
			deps:   []Dependency{{Name: "database"}},
			status: http.StatusServiceUnavailable,
			want:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.deps...)
			h.SetReady(true)

			w := get(h, "/readyz")
			require.Equal(t, tt.status, w.Code)

			var body ReadinessResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Status)
			require.Len(t, body.Checks, len(tt.deps))
			for i, dep := range tt.deps {
				assert.Equal(t, dep.Name, body.Checks[i].Name)
			}
		})
	}
}

func TestReadinessFailureHidesError(t *testing.T) {
	h := NewHandler(Dependency{Name: "redis", Checker: down})
	h.SetReady(true)

	w := get(h, "/readyz")
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "ping failed")
}

func TestReadinessNotReady(t *testing.T) {
	h := NewHandler(Dependency{Name: "database", Checker: up})

	w := get(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())

	h.SetReady(true)
	assert.Equal(t, http.StatusOK, get(h, "/readyz").Code)
}
