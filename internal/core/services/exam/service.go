package exam

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

// IExamService owns the session state machine. It is the only component that
// moves a session between states.
type IExamService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)

	GetSession(ctx context.Context, sessionID string) (*domain.SessionView, error)

	// Start begins the exam clock, or resumes it if the session already started
	Start(ctx context.Context, sessionID string) (*domain.StartResult, error)

	// Questions returns the catalog without correct answers or hidden test cases
	Questions(ctx context.Context, sessionID string) ([]*domain.Question, error)

	RecordAnswer(ctx context.Context, sessionID, questionID string, value domain.AnswerValue) error

	RunAdhoc(ctx context.Context, sessionID, language, code, stdin string) (domain.ExecutionResult, error)

	// RunTests judges code without persisting the verdict
	RunTests(ctx context.Context, sessionID, questionID, language, code string) (*domain.Verdict, error)

	// JudgeSubmission judges code and stores the verdict and the code
	JudgeSubmission(ctx context.Context, sessionID, questionID, language, code string) (*domain.Verdict, error)

	RecordViolation(ctx context.Context, sessionID, reason string) (*domain.ViolationResult, error)

	// Submit is the single entry point for manual, time-limit and violation submissions.
	// Exactly one caller per session performs the transition; the others get the stored score.
	Submit(ctx context.Context, sessionID, reason string) (*domain.SubmitResult, error)
}
