package secondary

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

type CodeExecutor interface {
	// Execute compiles (if needed) and runs code once with the given stdin.
	// Execution failures come back inside the result; the error is reserved for
	// validation failures such as an unsupported language.
	Execute(ctx context.Context, language, code, stdin string) (domain.ExecutionResult, error)

	// Supports reports whether the language has a registered variant
	Supports(language string) bool
}
