package secondary

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

type AnswerRepository interface {
	// Upsert writes the answer for (roll number, question); last write wins
	Upsert(ctx context.Context, answer *domain.Answer) error

	ListByRollNumber(ctx context.Context, rollNumber string) ([]*domain.Answer, error)
}

type SubmissionRepository interface {
	// Upsert writes the submission for (roll number, question); last write wins
	Upsert(ctx context.Context, submission *domain.CodeSubmission) error

	ListByRollNumber(ctx context.Context, rollNumber string) ([]*domain.CodeSubmission, error)
}

type ViolationRepository interface {
	Append(ctx context.Context, violation *domain.Violation) error

	// List returns every violation, newest first
	List(ctx context.Context) ([]*domain.Violation, error)
}
