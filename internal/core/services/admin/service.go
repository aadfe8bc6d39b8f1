package admin

import (
	"context"
	"io"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

// IAdminService is the read-only dashboard view over every session
type IAdminService interface {
	// ListStudents returns all sessions, newest registration first
	ListStudents(ctx context.Context) ([]*domain.Session, error)

	// ListViolations returns all violations, newest first
	ListViolations(ctx context.Context) ([]*domain.Violation, error)

	AnswersFor(ctx context.Context, rollNumber string) (*domain.StudentAnswers, error)

	// ExportCSV writes one row per session, oldest registration first
	ExportCSV(ctx context.Context, w io.Writer) error
}
