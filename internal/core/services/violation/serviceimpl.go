package violation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ IViolationService = (*ViolationService)(nil)

const defaultReason = "unspecified"

type ViolationService struct {
	sessionRepo   secondary.SessionRepository
	violationRepo secondary.ViolationRepository
	notifier      secondary.Notifier
	logger        primary.Logger
	examCfg       *config.ExamConfig
	submitter     primary.SubmitFunc
}

func NewViolationService(
	sessionRepo secondary.SessionRepository,
	violationRepo secondary.ViolationRepository,
	notifier secondary.Notifier,
	logger primary.Logger,
	examCfg *config.ExamConfig,
) *ViolationService {
	return &ViolationService{
		sessionRepo:   sessionRepo,
		violationRepo: violationRepo,
		notifier:      notifier,
		logger:        logger,
		examCfg:       examCfg,
		submitter: func(ctx context.Context, sessionID, reason string) (*domain.SubmitResult, error) {
			return nil, fmt.Errorf("no submitter configured")
		},
	}
}

func (s *ViolationService) SetSubmitter(submitter primary.SubmitFunc) {
	if submitter != nil {
		s.submitter = submitter
	}
}

func (s *ViolationService) RecordViolation(ctx context.Context, sessionID, reason string) (*domain.ViolationResult, error) {
	session, err := s.sessionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get session: %v", errs.ErrInternal, err)
	}
	if session == nil {
		return nil, errs.ErrSessionNotFound
	}
	if session.Submitted {
		return &domain.ViolationResult{Violations: session.ViolationCount}, nil
	}

	// the conditional increment is the gate; a submission that won the race makes this a no-op
	count, ok, err := s.sessionRepo.IncrementViolations(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to increment violations: %v", errs.ErrInternal, err)
	}
	if !ok {
		return &domain.ViolationResult{Violations: session.ViolationCount}, nil
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultReason
	}
	if err := s.violationRepo.Append(ctx, &domain.Violation{
		RollNumber: session.RollNumber,
		Reason:     reason,
		Timestamp:  time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to append violation: %v", errs.ErrInternal, err)
	}
	if err := s.notifier.NotifyAudience(ctx, domain.EventAdminUpdate, nil); err != nil {
		s.logger.Warn("Failed to notify admins", "sessionId", sessionID, "error", err)
	}

	s.logger.Info("Violation recorded", "sessionId", sessionID, "reason", reason, "count", count)
	result := &domain.ViolationResult{Violations: count, Recorded: true, Reason: reason}
	if count < s.examCfg.MaxViolations {
		return result, nil
	}

	s.logger.Info("Violation limit reached, submitting", "sessionId", sessionID, "count", count)
	res, err := s.submitter(ctx, sessionID, domain.ReasonMaxViolations)
	if err != nil {
		return nil, fmt.Errorf("failed to submit after violations: %w", err)
	}
	// only the caller whose call performed the submission reports it
	if res != nil && res.FirstSubmission {
		result.AutoSubmitted = true
		result.Reason = domain.ReasonMaxViolations
	}
	return result, nil
}
