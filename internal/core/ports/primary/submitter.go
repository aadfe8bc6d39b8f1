package primary

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

// SubmitFunc requests the terminal submission of a session. Timers and the
// violation monitor hold one; only the exam service implements it.
type SubmitFunc func(ctx context.Context, sessionID, reason string) (*domain.SubmitResult, error)
