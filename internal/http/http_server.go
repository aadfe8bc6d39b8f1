package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/services/admin"
	"gitlab.com/examproctor-2025.net/internal/core/services/exam"
	"gitlab.com/examproctor-2025.net/internal/handlers"
	adminhdl "gitlab.com/examproctor-2025.net/internal/handlers/admin"
	examhdl "gitlab.com/examproctor-2025.net/internal/handlers/exam"
)

const shutdownTimeout = 5 * time.Second

type ServiceProvider struct {
	examService  exam.IExamService
	adminService admin.IAdminService
	adminAuth    primary.AdminAuthService
}

func NewServiceProvider(
	examService exam.IExamService,
	adminService admin.IAdminService,
	adminAuth primary.AdminAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		examService:  examService,
		adminService: adminService,
		adminAuth:    adminAuth,
	}
}

type Server struct {
	handler         http.Handler
	Port            int
	ServiceName     string
	CorsOrigin      string
	ServiceProvider ServiceProvider
	realtime        http.Handler
	logger          primary.Logger
}

func NewServer(port int, serviceName, corsOrigin string, serviceProvider ServiceProvider, realtime http.Handler, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		CorsOrigin:      corsOrigin,
		ServiceProvider: serviceProvider,
		realtime:        realtime,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.examService == nil || s.ServiceProvider.adminService == nil || s.ServiceProvider.adminAuth == nil {
		return fmt.Errorf("%s: service provider is incomplete", s.ServiceName)
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	if s.realtime != nil {
		r.Handle("/ws", s.realtime)
	}

	examhdl.NewHandler(s.ServiceProvider.examService, s.logger).RegisterRoutes(r)
	guard := handlers.New(s.ServiceProvider.adminAuth, s.logger).AdminMiddleware
	adminhdl.NewHandler(s.ServiceProvider.adminService, s.ServiceProvider.adminAuth, s.logger).RegisterRoutes(r, guard)

	s.handler = handlers.CORSMiddleware(s.CorsOrigin)(r)
	return nil
}

// Handler returns the routed handler; Init must have been called
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.Port),
		Handler:     s.handler,
		ReadTimeout: 15 * time.Second,
		// judging compiles and runs every test case in one request
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr, "service", s.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down http server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
