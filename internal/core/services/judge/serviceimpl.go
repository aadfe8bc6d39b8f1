package judge

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

type JudgeService struct {
	catalog  secondary.QuestionCatalog
	executor secondary.CodeExecutor
	logger   primary.Logger
}

func NewJudgeService(
	catalog secondary.QuestionCatalog,
	executor secondary.CodeExecutor,
	logger primary.Logger,
) *JudgeService {
	return &JudgeService{
		catalog:  catalog,
		executor: executor,
		logger:   logger,
	}
}

// Judge runs the cases one after another. A failing case never aborts the suite.
func (s *JudgeService) Judge(ctx context.Context, questionID, language, code string) (*domain.Verdict, error) {
	q, ok := s.catalog.FindQuestion(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrQuestionNotFound, questionID)
	}
	if !q.IsCoding() || len(q.TestCases) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotCodingQuestion, questionID)
	}
	if strings.TrimSpace(language) == "" {
		language = q.Language
	}
	if !s.executor.Supports(language) {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	verdict := &domain.Verdict{
		QuestionID: q.ID,
		Total:      len(q.TestCases),
		Results:    make([]domain.CaseResult, 0, len(q.TestCases)),
	}
	for i, tc := range q.TestCases {
		res, err := s.executor.Execute(ctx, language, code, tc.Input)
		if err != nil {
			return nil, fmt.Errorf("run test case %d: %w", i+1, err)
		}

		passed := !res.Failed() && Normalize(res.Output) == Normalize(tc.Expected)
		if passed {
			verdict.Passed++
		}
		verdict.Results = append(verdict.Results, domain.CaseResult{
			Input:    tc.Input,
			Expected: tc.Expected,
			Output:   res.Output,
			Error:    res.Error,
			Passed:   passed,
		})
	}

	s.logger.Debug("Submission judged", "questionId", q.ID, "language", language,
		"passed", verdict.Passed, "total", verdict.Total)
	return verdict, nil
}

func (s *JudgeService) Run(ctx context.Context, language, code, stdin string) (domain.ExecutionResult, error) {
	return s.executor.Execute(ctx, language, code, stdin)
}
