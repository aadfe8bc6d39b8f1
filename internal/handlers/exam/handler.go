package exam

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	examsvc "gitlab.com/examproctor-2025.net/internal/core/services/exam"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/handlers/response"
)

// maxBodyBytes bounds request bodies, which carry source code
const maxBodyBytes = 2 << 20

// Handler serves the candidate API. Every route but register is keyed by the session id.
type Handler struct {
	examService examsvc.IExamService
	logger      primary.Logger
}

func NewHandler(examService examsvc.IExamService, logger primary.Logger) *Handler {
	return &Handler{
		examService: examService,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/session/{sessionId}", h.GetSession).Methods(http.MethodGet)
	router.HandleFunc("/api/start/{sessionId}", h.Start).Methods(http.MethodPost)
	router.HandleFunc("/api/questions/{sessionId}", h.Questions).Methods(http.MethodGet)
	router.HandleFunc("/api/answer/{sessionId}", h.Answer).Methods(http.MethodPost)
	router.HandleFunc("/api/run/{sessionId}", h.Run).Methods(http.MethodPost)
	router.HandleFunc("/api/submit-code/{sessionId}", h.SubmitCode).Methods(http.MethodPost)
	router.HandleFunc("/api/violation/{sessionId}", h.Violation).Methods(http.MethodPost)
	router.HandleFunc("/api/submit/{sessionId}", h.Submit).Methods(http.MethodPost)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.examService.Register(r.Context(), req)
	if err != nil {
		response.WriteServiceError(w, h.logger, "register", err)
		return
	}
	response.WriteSuccess(w, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.examService.GetSession(r.Context(), sessionID(r))
	if err != nil {
		response.WriteServiceError(w, h.logger, "session", err)
		return
	}
	response.WriteSuccess(w, view)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	result, err := h.examService.Start(r.Context(), sessionID(r))
	if err != nil {
		response.WriteServiceError(w, h.logger, "start", err)
		return
	}
	response.WriteSuccess(w, StartResponse{
		Started:   result.Started,
		StartTime: result.StartTime,
		Remaining: result.RemainingMs(),
		Resumed:   result.Resumed,
	})
}

func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.examService.Questions(r.Context(), sessionID(r))
	if err != nil {
		response.WriteServiceError(w, h.logger, "questions", err)
		return
	}
	response.WriteSuccess(w, questions)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.examService.RecordAnswer(r.Context(), sessionID(r), req.QuestionID, req.Answer); err != nil {
		response.WriteServiceError(w, h.logger, "answer", err)
		return
	}
	response.WriteSuccess(w, AnswerResponse{Saved: true})
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Input != nil {
		result, err := h.examService.RunAdhoc(r.Context(), sessionID(r), req.Language, req.Code, *req.Input)
		if err != nil {
			response.WriteServiceError(w, h.logger, "run", err)
			return
		}
		response.WriteSuccess(w, result)
		return
	}

	verdict, err := h.examService.RunTests(r.Context(), sessionID(r), req.QuestionID, req.Language, req.Code)
	if err != nil {
		response.WriteServiceError(w, h.logger, "run tests", err)
		return
	}
	response.WriteSuccess(w, verdict)
}

func (h *Handler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	var req SubmitCodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	verdict, err := h.examService.JudgeSubmission(r.Context(), sessionID(r), req.QuestionID, req.Language, req.Code)
	if err != nil {
		response.WriteServiceError(w, h.logger, "submit code", err)
		return
	}
	response.WriteSuccess(w, verdict)
}

func (h *Handler) Violation(w http.ResponseWriter, r *http.Request) {
	var req ViolationRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.examService.RecordViolation(r.Context(), sessionID(r), req.Reason)
	if err != nil {
		response.WriteServiceError(w, h.logger, "violation", err)
		return
	}
	response.WriteSuccess(w, result)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.examService.Submit(r.Context(), sessionID(r), domain.ReasonManual)
	if err != nil {
		response.WriteServiceError(w, h.logger, "submit", err)
		return
	}
	response.WriteSuccess(w, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Debug("Failed to decode request", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "invalid request")
		return false
	}
	return true
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["sessionId"]
}
