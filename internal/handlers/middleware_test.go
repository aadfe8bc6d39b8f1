package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware(t *testing.T) {
	called := false
	h := CORSMiddleware("https://exam.example")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/register", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://exam.example", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), AdminSecretHeader)
	require.False(t, called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session/s1", nil))
	require.True(t, called)
	require.Equal(t, "https://exam.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
