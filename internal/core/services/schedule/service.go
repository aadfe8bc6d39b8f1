package schedule

import (
	"context"
	"time"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
)

// ISchedulerService keeps one deadline callback per active session
type ISchedulerService interface {
	// Arm schedules the time-limit submission for the session and returns the remaining time.
	// A non-positive remaining time submits immediately without registering a callback.
	Arm(sessionID string, startTime time.Time, duration time.Duration) time.Duration

	// Disarm cancels the session's callback if one is armed
	Disarm(sessionID string) bool

	// Deadline returns when the armed callback will fire
	Deadline(sessionID string) (time.Time, bool)

	// Restore re-arms every started, unsubmitted session from persisted state
	Restore(ctx context.Context) (int, error)

	// SetSubmitter sets the function called when a deadline passes
	SetSubmitter(submitter primary.SubmitFunc)
}
