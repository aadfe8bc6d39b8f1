package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

var _ ISchedulerService = &SchedulerService{}

// stopper is the part of *time.Timer the registry needs
type stopper interface {
	Stop() bool
}

type entry struct {
	deadline time.Time
	timer    stopper
}

// SchedulerService is the process-wide deadline registry
type SchedulerService struct {
	sessionRepo secondary.SessionRepository
	logger      primary.Logger
	examCfg     *config.ExamConfig

	mu        sync.Mutex
	timers    map[string]*entry
	submitter primary.SubmitFunc

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) stopper
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	sessionRepo secondary.SessionRepository,
	logger primary.Logger,
	examCfg *config.ExamConfig,
) *SchedulerService {
	return &SchedulerService{
		sessionRepo: sessionRepo,
		logger:      logger,
		examCfg:     examCfg,
		timers:      make(map[string]*entry),
		submitter: func(ctx context.Context, sessionID, reason string) (*domain.SubmitResult, error) {
			return nil, nil
		},
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// SetSubmitter sets the function to call when a session runs out of time
func (s *SchedulerService) SetSubmitter(submitter primary.SubmitFunc) {
	if submitter == nil {
		return
	}
	s.mu.Lock()
	s.submitter = submitter
	s.mu.Unlock()
}

func (s *SchedulerService) Arm(sessionID string, startTime time.Time, duration time.Duration) time.Duration {
	remaining := domain.Remaining(startTime, duration, s.now())

	s.mu.Lock()
	if prev, ok := s.timers[sessionID]; ok {
		prev.timer.Stop()
		delete(s.timers, sessionID)
	}
	if remaining <= 0 {
		submit := s.submitter
		s.mu.Unlock()

		s.logger.Info("Deadline already passed, submitting", "sessionId", sessionID, "remaining", remaining)
		s.submit(submit, sessionID)
		return remaining
	}

	e := &entry{deadline: startTime.Add(duration)}
	e.timer = s.afterFunc(remaining, func() { s.fire(sessionID, e) })
	s.timers[sessionID] = e
	s.mu.Unlock()

	s.logger.Debug("Timer armed", "sessionId", sessionID, "remaining", remaining)
	return remaining
}

// fire runs on the timer goroutine. A callback whose entry was replaced or
// disarmed in the meantime does nothing.
func (s *SchedulerService) fire(sessionID string, e *entry) {
	s.mu.Lock()
	if s.timers[sessionID] != e {
		s.mu.Unlock()
		return
	}
	delete(s.timers, sessionID)
	submit := s.submitter
	s.mu.Unlock()

	s.logger.Info("Timer fired", "sessionId", sessionID)
	s.submit(submit, sessionID)
}

func (s *SchedulerService) submit(submit primary.SubmitFunc, sessionID string) {
	if _, err := submit(context.Background(), sessionID, domain.ReasonTimeLimit); err != nil {
		s.logger.Error("Time limit submission failed", "sessionId", sessionID, "error", err)
	}
}

func (s *SchedulerService) Disarm(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.timers[sessionID]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.timers, sessionID)
	s.logger.Debug("Timer disarmed", "sessionId", sessionID)
	return true
}

func (s *SchedulerService) Deadline(sessionID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.timers[sessionID]
	if !ok {
		return time.Time{}, false
	}
	return e.deadline, true
}

// Restore is called once at startup, before any request is served
func (s *SchedulerService) Restore(ctx context.Context) (int, error) {
	sessions, err := s.sessionRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active sessions: %w", err)
	}

	restored := 0
	for _, session := range sessions {
		if session.Submitted || session.StartTime == nil {
			continue
		}
		remaining := s.Arm(session.SessionID, *session.StartTime, s.examCfg.Duration)
		s.logger.Info("Timer restored", "sessionId", session.SessionID, "remaining", remaining)
		restored++
	}
	return restored, nil
}
