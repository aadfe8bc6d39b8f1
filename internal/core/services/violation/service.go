package violation

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

// IViolationService counts proctoring reports and forces submission at the threshold
type IViolationService interface {
	// RecordViolation is a no-op returning a neutral result for submitted sessions
	RecordViolation(ctx context.Context, sessionID, reason string) (*domain.ViolationResult, error)

	// SetSubmitter sets the function called when the threshold is reached
	SetSubmitter(submitter primary.SubmitFunc)
}
