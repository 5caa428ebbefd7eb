package recoverer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("no panic", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		h := New(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Zero(t, logs.Len())
	})

	t.Run("panic recovered", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		h := New(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abc123", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"status":"error","message":"server error occurred"}`, rec.Body.String())

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "panic recovered", entry.Message)
		assert.Equal(t, "/abc123", entry.ContextMap()["path"])
		assert.Equal(t, "boom", entry.ContextMap()["panic"])
	})

	t.Run("abort handler propagates", func(t *testing.T) {
		h := New(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
