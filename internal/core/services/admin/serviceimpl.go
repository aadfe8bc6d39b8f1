package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ IAdminService = (*AdminService)(nil)

var csvHeader = []string{
	"Roll Number", "Name", "Year", "Section", "Score", "Submitted", "Start Time", "End Time", "Violations",
}

type AdminService struct {
	sessionRepo    secondary.SessionRepository
	answerRepo     secondary.AnswerRepository
	submissionRepo secondary.SubmissionRepository
	violationRepo  secondary.ViolationRepository
	logger         primary.Logger
}

func NewAdminService(
	sessionRepo secondary.SessionRepository,
	answerRepo secondary.AnswerRepository,
	submissionRepo secondary.SubmissionRepository,
	violationRepo secondary.ViolationRepository,
	logger primary.Logger,
) *AdminService {
	return &AdminService{
		sessionRepo:    sessionRepo,
		answerRepo:     answerRepo,
		submissionRepo: submissionRepo,
		violationRepo:  violationRepo,
		logger:         logger,
	}
}

func (s *AdminService) ListStudents(ctx context.Context) ([]*domain.Session, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list sessions: %v", errs.ErrInternal, err)
	}
	return sessions, nil
}

func (s *AdminService) ListViolations(ctx context.Context) ([]*domain.Violation, error) {
	violations, err := s.violationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list violations: %v", errs.ErrInternal, err)
	}
	return violations, nil
}

func (s *AdminService) AnswersFor(ctx context.Context, rollNumber string) (*domain.StudentAnswers, error) {
	roll := strings.ToUpper(strings.TrimSpace(rollNumber))
	if roll == "" {
		return nil, fmt.Errorf("%w: roll number is required", errs.ErrInvalidInput)
	}

	answers, err := s.answerRepo.ListByRollNumber(ctx, roll)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list answers: %v", errs.ErrInternal, err)
	}
	coding, err := s.submissionRepo.ListByRollNumber(ctx, roll)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list code submissions: %v", errs.ErrInternal, err)
	}
	return &domain.StudentAnswers{Answers: answers, Coding: coding}, nil
}

func (s *AdminService) ExportCSV(ctx context.Context, w io.Writer) error {
	sessions, err := s.ListStudents(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := len(sessions) - 1; i >= 0; i-- {
		if err := cw.Write(csvRow(sessions[i])); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.Info("Results exported", "rows", len(sessions))
	return nil
}

func csvRow(s *domain.Session) []string {
	return []string{
		s.RollNumber,
		s.Name,
		s.Year,
		s.Section,
		strconv.Itoa(s.Score),
		strconv.FormatBool(s.Submitted),
		formatTime(s.StartTime),
		formatTime(s.EndTime),
		strconv.Itoa(s.ViolationCount),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
