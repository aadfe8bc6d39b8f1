package admin

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	adminsvc "gitlab.com/examproctor-2025.net/internal/core/services/admin"
	"gitlab.com/examproctor-2025.net/internal/handlers/response"
)

type VerifyRequest struct {
	Secret string `json:"secret"`
}

type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Token string `json:"token,omitempty"`
}

// Handler serves the dashboard API under /api/admin
type Handler struct {
	adminService adminsvc.IAdminService
	auth         primary.AdminAuthService
	logger       primary.Logger
}

func NewHandler(adminService adminsvc.IAdminService, auth primary.AdminAuthService, logger primary.Logger) *Handler {
	return &Handler{
		adminService: adminService,
		auth:         auth,
		logger:       logger,
	}
}

// RegisterRoutes mounts verify openly and everything else behind guard
func (h *Handler) RegisterRoutes(router *mux.Router, guard mux.MiddlewareFunc) {
	router.HandleFunc("/api/admin/verify", h.Verify).Methods(http.MethodPost)

	protected := router.PathPrefix("/api/admin").Subrouter()
	protected.Use(guard)
	protected.HandleFunc("/students", h.Students).Methods(http.MethodGet)
	protected.HandleFunc("/violations", h.Violations).Methods(http.MethodGet)
	protected.HandleFunc("/answers/{rollNumber}", h.Answers).Methods(http.MethodGet)
	protected.HandleFunc("/export-csv", h.ExportCSV).Methods(http.MethodGet)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}
	if !h.auth.VerifySecret(r.Context(), req.Secret) {
		response.WriteJSON(w, http.StatusUnauthorized, VerifyResponse{Valid: false})
		return
	}
	token, err := h.auth.GenerateToken(r.Context())
	if err != nil {
		response.WriteServiceError(w, h.logger, "verify", err)
		return
	}
	response.WriteSuccess(w, VerifyResponse{Valid: true, Token: token})
}

func (h *Handler) Students(w http.ResponseWriter, r *http.Request) {
	students, err := h.adminService.ListStudents(r.Context())
	if err != nil {
		response.WriteServiceError(w, h.logger, "list students", err)
		return
	}
	response.WriteSuccess(w, students)
}

func (h *Handler) Violations(w http.ResponseWriter, r *http.Request) {
	violations, err := h.adminService.ListViolations(r.Context())
	if err != nil {
		response.WriteServiceError(w, h.logger, "list violations", err)
		return
	}
	response.WriteSuccess(w, violations)
}

func (h *Handler) Answers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.adminService.AnswersFor(r.Context(), mux.Vars(r)["rollNumber"])
	if err != nil {
		response.WriteServiceError(w, h.logger, "answers", err)
		return
	}
	response.WriteSuccess(w, answers)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.adminService.ExportCSV(r.Context(), &buf); err != nil {
		response.WriteServiceError(w, h.logger, "export csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	_, _ = w.Write(buf.Bytes())
}
