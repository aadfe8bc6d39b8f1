package submissionrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	querybuilder "gitlab.com/examproctor-2025.net/internal/utils"
)

var _ secondary.SubmissionRepository = &submissionRepo{}

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SubmissionRepository {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *submissionRepo) Upsert(ctx context.Context, sub *domain.CodeSubmission) error {
	tbl := domain.GetCodeSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.RollNumber, tbl.QuestionID, tbl.Code, tbl.Language,
			tbl.PassedTestCases, tbl.TotalTestCases, tbl.UpdatedAt).
		Into(tbl.TableName()).
		Values(sub.RollNumber, sub.QuestionID, sub.Code, sub.Language,
			sub.PassedTestCases, sub.TotalTestCases, sub.UpdatedAt).
		OnConflict(tbl.RollNumber, tbl.QuestionID).
		SetExclude(tbl.Code, tbl.Language, tbl.PassedTestCases, tbl.TotalTestCases, tbl.UpdatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to upsert code submission", "rollNumber", sub.RollNumber, "questionId", sub.QuestionID, "error", err)
		return fmt.Errorf("failed to upsert code submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) ListByRollNumber(ctx context.Context, rollNumber string) ([]*domain.CodeSubmission, error) {
	tbl := domain.GetCodeSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.RollNumber, tbl.QuestionID, tbl.Code, tbl.Language,
			tbl.PassedTestCases, tbl.TotalTestCases, tbl.UpdatedAt).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.RollNumber), rollNumber).
		OrderBy(tbl.QuestionID, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	subs := make([]*domain.CodeSubmission, 0)
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list code submissions: %w", err)
	}
	return subs, nil
}
