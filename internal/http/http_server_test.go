package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/adapter/crypto"
	"gitlab.com/examproctor-2025.net/internal/adapter/logging"
	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/services/admin"
	"gitlab.com/examproctor-2025.net/internal/core/services/exam"
)

// the embedded interfaces are nil; routes exercised here never reach the services
type stubExam struct{ exam.IExamService }
type stubAdmin struct{ admin.IAdminService }

func newServer(t *testing.T) *Server {
	t.Helper()
	auth, err := crypto.NewAdminAuthService(&config.AuthConfig{AdminSecret: "letmein", AdminTokenTTL: time.Hour})
	require.NoError(t, err)

	realtime := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := NewServer(0, "exam-test", "*", *NewServiceProvider(stubExam{}, stubAdmin{}, auth), realtime, logging.NewNopLogger())
	require.NoError(t, srv.Init())
	return srv
}

func serve(srv *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestInitRequiresServices(t *testing.T) {
	srv := NewServer(0, "exam-test", "*", ServiceProvider{}, nil, logging.NewNopLogger())
	require.Error(t, srv.Init())
}

func TestRouting(t *testing.T) {
	srv := newServer(t)

	require.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/healthz").Code)
	require.Equal(t, http.StatusTeapot, serve(srv, http.MethodGet, "/ws").Code)
	require.Equal(t, http.StatusUnauthorized, serve(srv, http.MethodGet, "/api/admin/students").Code)
	require.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/nothing").Code)
	require.Equal(t, http.StatusMethodNotAllowed, serve(srv, http.MethodGet, "/api/submit/s1").Code)

	rec := serve(srv, http.MethodOptions, "/api/submit/s1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
