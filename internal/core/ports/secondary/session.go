package secondary

import (
	"context"
	"time"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

type SessionRepository interface {
	// Create inserts a new session. A duplicate roll number fails with errs.ErrAlreadyRegistered.
	Create(ctx context.Context, session *domain.Session) error

	// GetBySessionID returns nil, nil when absent
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error)

	// GetByRollNumber returns nil, nil when absent
	GetByRollNumber(ctx context.Context, rollNumber string) (*domain.Session, error)

	// SetStartTime sets the start time only if it is unset and the session is not submitted
	SetStartTime(ctx context.Context, sessionID string, startTime time.Time) (bool, error)

	// MarkSubmitted flips submitted false->true and sets score and end time in one step.
	// It reports false when the session was already submitted.
	MarkSubmitted(ctx context.Context, sessionID string, score int, endTime time.Time) (bool, error)

	// IncrementViolations bumps the counter of an unsubmitted session and returns the new value.
	// ok is false when the session is missing or already submitted.
	IncrementViolations(ctx context.Context, sessionID string) (count int, ok bool, err error)

	// ListActive returns started, unsubmitted sessions
	ListActive(ctx context.Context) ([]*domain.Session, error)

	// List returns every session, newest registration first
	List(ctx context.Context) ([]*domain.Session, error)
}
