package judge

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

// IJudgeService runs candidate code against a question's test cases
type IJudgeService interface {
	// Judge runs code against every test case of the question. It does not persist anything.
	Judge(ctx context.Context, questionID, language, code string) (*domain.Verdict, error)

	// Run executes code once with the given stdin
	Run(ctx context.Context, language, code, stdin string) (domain.ExecutionResult, error)
}
