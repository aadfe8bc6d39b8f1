package answerrepository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	querybuilder "gitlab.com/examproctor-2025.net/internal/utils"
)

var _ secondary.AnswerRepository = &answerRepo{}

type answerRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// answerRow splits the answer value into its two nullable columns
type answerRow struct {
	RollNumber  string         `db:"roll_number"`
	QuestionID  string         `db:"question_id"`
	OptionIndex sql.NullInt64  `db:"option_index"`
	Code        sql.NullString `db:"code"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r answerRow) toDomain() *domain.Answer {
	a := &domain.Answer{RollNumber: r.RollNumber, QuestionID: r.QuestionID, UpdatedAt: r.UpdatedAt}
	switch {
	case r.OptionIndex.Valid:
		a.Value = domain.OptionAnswer(int(r.OptionIndex.Int64))
	case r.Code.Valid:
		a.Value = domain.CodeAnswer(r.Code.String)
	}
	return a
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.AnswerRepository {
	return &answerRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *answerRepo) Upsert(ctx context.Context, answer *domain.Answer) error {
	tbl := domain.GetAnswerTable()
	var option, code interface{}
	if answer.Value.Option != nil {
		option = *answer.Value.Option
	}
	if answer.Value.Code != nil {
		code = *answer.Value.Code
	}

	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.RollNumber, tbl.QuestionID, tbl.OptionIndex, tbl.Code, tbl.UpdatedAt).
		Into(tbl.TableName()).
		Values(answer.RollNumber, answer.QuestionID, option, code, answer.UpdatedAt).
		OnConflict(tbl.RollNumber, tbl.QuestionID).
		SetExclude(tbl.OptionIndex, tbl.Code, tbl.UpdatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to upsert answer", "rollNumber", answer.RollNumber, "questionId", answer.QuestionID, "error", err)
		return fmt.Errorf("failed to upsert answer: %w", err)
	}
	return nil
}

func (r *answerRepo) ListByRollNumber(ctx context.Context, rollNumber string) ([]*domain.Answer, error) {
	tbl := domain.GetAnswerTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.RollNumber, tbl.QuestionID, tbl.OptionIndex, tbl.Code, tbl.UpdatedAt).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.RollNumber), rollNumber).
		OrderBy(tbl.QuestionID, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var rows []answerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	answers := make([]*domain.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, row.toDomain())
	}
	return answers, nil
}
