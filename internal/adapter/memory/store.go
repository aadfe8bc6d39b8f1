// Package memory is a process-local store used by STORE_DRIVER=memory and by service tests
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var (
	_ secondary.SessionRepository    = (*SessionRepository)(nil)
	_ secondary.AnswerRepository     = (*AnswerRepository)(nil)
	_ secondary.SubmissionRepository = (*SubmissionRepository)(nil)
	_ secondary.ViolationRepository  = (*ViolationRepository)(nil)
)

type recordKey struct {
	rollNumber string
	questionID string
}

// Store holds every record behind one lock, so each repository call is atomic
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*domain.Session
	byRoll      map[string]string
	answers     map[recordKey]*domain.Answer
	submissions map[recordKey]*domain.CodeSubmission
	violations  []*domain.Violation
}

func NewStore() *Store {
	return &Store{
		sessions:    make(map[string]*domain.Session),
		byRoll:      make(map[string]string),
		answers:     make(map[recordKey]*domain.Answer),
		submissions: make(map[recordKey]*domain.CodeSubmission),
	}
}

func (s *Store) Sessions() *SessionRepository       { return &SessionRepository{s} }
func (s *Store) Answers() *AnswerRepository         { return &AnswerRepository{s} }
func (s *Store) Submissions() *SubmissionRepository { return &SubmissionRepository{s} }
func (s *Store) Violations() *ViolationRepository   { return &ViolationRepository{s} }

func copySession(in *domain.Session) *domain.Session {
	out := *in
	if in.StartTime != nil {
		t := *in.StartTime
		out.StartTime = &t
	}
	if in.EndTime != nil {
		t := *in.EndTime
		out.EndTime = &t
	}
	return &out
}

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Create(_ context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byRoll[session.RollNumber]; ok {
		return errs.ErrAlreadyRegistered
	}
	if _, ok := r.s.sessions[session.SessionID]; ok {
		return errs.ErrAlreadyRegistered
	}
	r.s.sessions[session.SessionID] = copySession(session)
	r.s.byRoll[session.RollNumber] = session.SessionID
	return nil
}

func (r *SessionRepository) GetBySessionID(_ context.Context, sessionID string) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return copySession(session), nil
}

func (r *SessionRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*domain.Session, error) {
	r.s.mu.Lock()
	id, ok := r.s.byRoll[rollNumber]
	r.s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetBySessionID(ctx, id)
}

func (r *SessionRepository) SetStartTime(_ context.Context, sessionID string, startTime time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[sessionID]
	if !ok || session.Submitted || session.StartTime != nil {
		return false, nil
	}
	session.StartTime = &startTime
	return true, nil
}

func (r *SessionRepository) MarkSubmitted(_ context.Context, sessionID string, score int, endTime time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[sessionID]
	if !ok || session.Submitted {
		return false, nil
	}
	session.Submitted = true
	session.Score = score
	session.EndTime = &endTime
	return true, nil
}

func (r *SessionRepository) IncrementViolations(_ context.Context, sessionID string) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[sessionID]
	if !ok || session.Submitted {
		return 0, false, nil
	}
	session.ViolationCount++
	return session.ViolationCount, true, nil
}

func (r *SessionRepository) ListActive(_ context.Context) ([]*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Session, 0)
	for _, session := range r.s.sessions {
		if session.StartTime != nil && !session.Submitted {
			out = append(out, copySession(session))
		}
	}
	return out, nil
}

func (r *SessionRepository) List(_ context.Context) ([]*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Session, 0, len(r.s.sessions))
	for _, session := range r.s.sessions {
		out = append(out, copySession(session))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

type AnswerRepository struct{ s *Store }

func (r *AnswerRepository) Upsert(_ context.Context, answer *domain.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := *answer
	r.s.answers[recordKey{answer.RollNumber, answer.QuestionID}] = &a
	return nil
}

func (r *AnswerRepository) ListByRollNumber(_ context.Context, rollNumber string) ([]*domain.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Answer, 0)
	for key, answer := range r.s.answers {
		if key.rollNumber == rollNumber {
			a := *answer
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

type SubmissionRepository struct{ s *Store }

func (r *SubmissionRepository) Upsert(_ context.Context, submission *domain.CodeSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub := *submission
	r.s.submissions[recordKey{submission.RollNumber, submission.QuestionID}] = &sub
	return nil
}

func (r *SubmissionRepository) ListByRollNumber(_ context.Context, rollNumber string) ([]*domain.CodeSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.CodeSubmission, 0)
	for key, submission := range r.s.submissions {
		if key.rollNumber == rollNumber {
			sub := *submission
			out = append(out, &sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

type ViolationRepository struct{ s *Store }

func (r *ViolationRepository) Append(_ context.Context, violation *domain.Violation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v := *violation
	r.s.violations = append(r.s.violations, &v)
	return nil
}

func (r *ViolationRepository) List(_ context.Context) ([]*domain.Violation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Violation, 0, len(r.s.violations))
	for i := len(r.s.violations) - 1; i >= 0; i-- {
		v := *r.s.violations[i]
		out = append(out, &v)
	}
	return out, nil
}
