package exam

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/core/services/judge"
	"gitlab.com/examproctor-2025.net/internal/core/services/schedule"
	"gitlab.com/examproctor-2025.net/internal/core/services/violation"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ IExamService = (*ExamService)(nil)

// Repositories groups the stores the exam service writes through
type Repositories struct {
	Sessions    secondary.SessionRepository
	Answers     secondary.AnswerRepository
	Submissions secondary.SubmissionRepository
}

type ExamService struct {
	repos      Repositories
	catalog    secondary.QuestionCatalog
	judge      judge.IJudgeService
	scheduler  schedule.ISchedulerService
	violations violation.IViolationService
	notifier   secondary.Notifier
	logger     primary.Logger
	examCfg    *config.ExamConfig

	locks *keyLock
	now   func() time.Time
}

// NewExamService creates the exam service and registers it as the submitter of
// the scheduler and the violation monitor
func NewExamService(
	repos Repositories,
	catalog secondary.QuestionCatalog,
	judgeSvc judge.IJudgeService,
	scheduler schedule.ISchedulerService,
	violations violation.IViolationService,
	notifier secondary.Notifier,
	logger primary.Logger,
	examCfg *config.ExamConfig,
) *ExamService {
	s := &ExamService{
		repos:      repos,
		catalog:    catalog,
		judge:      judgeSvc,
		scheduler:  scheduler,
		violations: violations,
		notifier:   notifier,
		logger:     logger,
		examCfg:    examCfg,
		locks:      newKeyLock(),
		now:        time.Now,
	}
	scheduler.SetSubmitter(s.Submit)
	violations.SetSubmitter(s.Submit)
	return s
}

func (s *ExamService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	year := strings.TrimSpace(req.Year)
	section := strings.ToUpper(strings.TrimSpace(req.Section))
	roll := strings.ToUpper(strings.TrimSpace(req.RollNumber))
	if name == "" || year == "" || section == "" || roll == "" {
		return nil, fmt.Errorf("%w: name, year, section and roll number are required", errs.ErrInvalidInput)
	}

	existing, err := s.repos.Sessions.GetByRollNumber(ctx, roll)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to look up roll number: %v", errs.ErrInternal, err)
	}
	if existing != nil {
		return nil, errs.ErrAlreadyRegistered
	}

	session := &domain.Session{
		SessionID:    uuid.NewString(),
		Name:         name,
		Year:         year,
		Section:      section,
		RollNumber:   roll,
		RegisteredAt: s.now(),
	}
	if err := s.repos.Sessions.Create(ctx, session); err != nil {
		if errors.Is(err, errs.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create session: %v", errs.ErrInternal, err)
	}

	s.logger.Info("Candidate registered", "sessionId", session.SessionID, "rollNumber", roll)
	if err := s.notifier.NotifyAudience(ctx, domain.EventAdminUpdate, nil); err != nil {
		s.logger.Warn("Failed to notify admins", "error", err)
	}
	return &domain.RegisterResponse{SessionID: session.SessionID, RollNumber: roll}, nil
}

func (s *ExamService) GetSession(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &domain.SessionView{Session: session}
	if session.StartTime != nil {
		ms := max(session.Remaining(s.examCfg.Duration, s.now()), 0).Milliseconds()
		view.RemainingMs = &ms
	}
	return view, nil
}

func (s *ExamService) Start(ctx context.Context, sessionID string) (*domain.StartResult, error) {
	startTime, resumed, err := s.markStarted(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Arm may submit synchronously, so it runs without the session lock held
	remaining := s.scheduler.Arm(sessionID, startTime, s.examCfg.Duration)
	if remaining <= 0 {
		s.logger.Info("Resumed session already out of time", "sessionId", sessionID)
		return nil, errs.ErrTimeExpired
	}

	// a submission that landed between the lock release and Arm leaves a stray timer
	if current, err := s.repos.Sessions.GetBySessionID(ctx, sessionID); err == nil && current != nil && current.Submitted {
		s.scheduler.Disarm(sessionID)
		return nil, errs.ErrAlreadySubmitted
	}

	if !resumed {
		remaining = s.examCfg.Duration
		if err := s.notifier.NotifyAudience(ctx, domain.EventAdminUpdate, nil); err != nil {
			s.logger.Warn("Failed to notify admins", "sessionId", sessionID, "error", err)
		}
	}
	s.logger.Info("Exam started", "sessionId", sessionID, "resumed", resumed, "remaining", remaining)
	return &domain.StartResult{
		Started:   true,
		StartTime: startTime,
		Remaining: remaining,
		Resumed:   resumed,
	}, nil
}

// markStarted persists the start time of a fresh session and reports the effective start time
func (s *ExamService) markStarted(ctx context.Context, sessionID string) (time.Time, bool, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return time.Time{}, false, err
	}
	if session.StartTime != nil {
		return *session.StartTime, true, nil
	}

	now := s.now()
	ok, err := s.repos.Sessions.SetStartTime(ctx, sessionID, now)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: failed to set start time: %v", errs.ErrInternal, err)
	}
	if ok {
		return now, false, nil
	}

	// another process started or submitted it first
	session, err = s.activeSession(ctx, sessionID)
	if err != nil {
		return time.Time{}, false, err
	}
	if session.StartTime == nil {
		return time.Time{}, false, fmt.Errorf("%w: start time was not persisted", errs.ErrInternal)
	}
	return *session.StartTime, true, nil
}

func (s *ExamService) Questions(ctx context.Context, sessionID string) ([]*domain.Question, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StartTime == nil {
		return nil, errs.ErrNotStarted
	}

	all := s.catalog.All()
	out := make([]*domain.Question, 0, len(all))
	for _, q := range all {
		public := *q
		public.Answer = nil
		public.TestCases = nil
		out = append(out, &public)
	}
	return out, nil
}

func (s *ExamService) RecordAnswer(ctx context.Context, sessionID, questionID string, value domain.AnswerValue) error {
	// held until the upsert lands so a concurrent Submit scores this answer or rejects it
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if value.IsZero() {
		return fmt.Errorf("%w: answer is required", errs.ErrInvalidInput)
	}
	if _, ok := s.catalog.FindQuestion(questionID); !ok {
		return fmt.Errorf("%w: %s", errs.ErrQuestionNotFound, questionID)
	}

	if err := s.repos.Answers.Upsert(ctx, &domain.Answer{
		RollNumber: session.RollNumber,
		QuestionID: questionID,
		Value:      value,
		UpdatedAt:  s.now(),
	}); err != nil {
		return fmt.Errorf("%w: failed to save answer: %v", errs.ErrInternal, err)
	}
	return nil
}

func (s *ExamService) RunAdhoc(ctx context.Context, sessionID, language, code, stdin string) (domain.ExecutionResult, error) {
	if _, err := s.activeSession(ctx, sessionID); err != nil {
		return domain.ExecutionResult{}, err
	}
	return s.judge.Run(ctx, language, code, stdin)
}

func (s *ExamService) RunTests(ctx context.Context, sessionID, questionID, language, code string) (*domain.Verdict, error) {
	if _, err := s.activeSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.judge.Judge(ctx, questionID, language, code)
}

func (s *ExamService) JudgeSubmission(ctx context.Context, sessionID, questionID, language, code string) (*domain.Verdict, error) {
	if _, err := s.activeSession(ctx, sessionID); err != nil {
		return nil, err
	}

	// judging can take seconds, so only the write runs under the session lock
	verdict, err := s.judge.Judge(ctx, questionID, language, code)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	submission := domain.NewCodeSubmission(session.RollNumber, questionID, language, code, verdict)
	if err := s.repos.Submissions.Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("%w: failed to save code submission: %v", errs.ErrInternal, err)
	}
	if err := s.repos.Answers.Upsert(ctx, &domain.Answer{
		RollNumber: session.RollNumber,
		QuestionID: questionID,
		Value:      domain.CodeAnswer(code),
		UpdatedAt:  submission.UpdatedAt,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to save code answer: %v", errs.ErrInternal, err)
	}

	s.logger.Info("Code submission judged", "sessionId", sessionID, "questionId", questionID,
		"passed", verdict.Passed, "total", verdict.Total)
	return verdict, nil
}

func (s *ExamService) RecordViolation(ctx context.Context, sessionID, reason string) (*domain.ViolationResult, error) {
	result, err := s.violations.RecordViolation(ctx, sessionID, reason)
	if err != nil {
		return nil, err
	}
	if result.Recorded && !result.AutoSubmitted {
		payload := domain.ViolationWarningPayload{Count: result.Violations, Reason: result.Reason}
		if err := s.notifier.NotifySession(ctx, sessionID, domain.EventViolationWarning, payload); err != nil {
			s.logger.Warn("Failed to warn session", "sessionId", sessionID, "error", err)
		}
	}
	return result, nil
}

func (s *ExamService) Submit(ctx context.Context, sessionID, reason string) (*domain.SubmitResult, error) {
	if reason == "" {
		reason = domain.ReasonManual
	}
	forced := reason != domain.ReasonManual
	if forced {
		// a forced submission must not die with the request that triggered it
		ctx = context.WithoutCancel(ctx)
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.repos.Sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get session: %v", errs.ErrInternal, err)
	}
	if session == nil {
		return nil, errs.ErrSessionNotFound
	}
	if session.Submitted {
		return &domain.SubmitResult{Submitted: true, Score: session.Score}, nil
	}

	var (
		score   int
		won     bool
		endTime = s.now()
	)
	persist := func() error {
		answers, err := s.repos.Answers.ListByRollNumber(ctx, session.RollNumber)
		if err != nil {
			return fmt.Errorf("failed to list answers: %w", err)
		}
		submissions, err := s.repos.Submissions.ListByRollNumber(ctx, session.RollNumber)
		if err != nil {
			return fmt.Errorf("failed to list code submissions: %w", err)
		}
		score = Score(s.catalog, answers, submissions)
		won, err = s.repos.Sessions.MarkSubmitted(ctx, sessionID, score, endTime)
		return err
	}

	if err := s.persistSubmission(ctx, sessionID, forced, persist); err != nil {
		if forced {
			s.logger.Error("fatal inconsistency: session expired but not marked submitted",
				"sessionId", sessionID, "rollNumber", session.RollNumber, "reason", reason, "error", err)
		}
		return nil, fmt.Errorf("%w: failed to persist submission: %v", errs.ErrInternal, err)
	}
	s.scheduler.Disarm(sessionID)

	if !won {
		current, err := s.repos.Sessions.GetBySessionID(ctx, sessionID)
		if err != nil || current == nil {
			return nil, fmt.Errorf("%w: failed to reload submitted session: %v", errs.ErrInternal, err)
		}
		return &domain.SubmitResult{Submitted: true, Score: current.Score}, nil
	}

	s.logger.Info("Exam submitted", "sessionId", sessionID, "reason", reason, "score", score)
	if forced {
		payload := domain.AutoSubmitPayload{Reason: reason, Score: score}
		if err := s.notifier.NotifySession(ctx, sessionID, domain.EventAutoSubmit, payload); err != nil {
			s.logger.Warn("Failed to notify session", "sessionId", sessionID, "error", err)
		}
	}
	if err := s.notifier.NotifyAudience(ctx, domain.EventAdminUpdate, nil); err != nil {
		s.logger.Warn("Failed to notify admins", "sessionId", sessionID, "error", err)
	}

	return &domain.SubmitResult{Submitted: true, Score: score, FirstSubmission: true}, nil
}

// persistSubmission runs op once for manual submissions and retries it with
// exponential backoff for forced ones
func (s *ExamService) persistSubmission(ctx context.Context, sessionID string, forced bool, op func() error) error {
	if !forced {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = s.examCfg.SubmitRetryMaxDelay
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		s.logger.Warn("Retrying forced submission", "sessionId", sessionID, "error", err, "next", next)
	})
}

// activeSession loads a session that exists and is not submitted
func (s *ExamService) activeSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.repos.Sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get session: %v", errs.ErrInternal, err)
	}
	if session == nil {
		return nil, errs.ErrSessionNotFound
	}
	if session.Submitted {
		return nil, errs.ErrAlreadySubmitted
	}
	return session, nil
}
