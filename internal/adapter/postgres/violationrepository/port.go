package violationrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	querybuilder "gitlab.com/examproctor-2025.net/internal/utils"
)

var _ secondary.ViolationRepository = &violationRepo{}

type violationRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.ViolationRepository {
	return &violationRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *violationRepo) Append(ctx context.Context, v *domain.Violation) error {
	tbl := domain.GetViolationTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.RollNumber, tbl.Reason, tbl.Timestamp).
		Into(tbl.TableName()).
		Values(v.RollNumber, v.Reason, v.Timestamp).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to append violation", "rollNumber", v.RollNumber, "error", err)
		return fmt.Errorf("failed to append violation: %w", err)
	}
	return nil
}

func (r *violationRepo) List(ctx context.Context) ([]*domain.Violation, error) {
	tbl := domain.GetViolationTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.RollNumber, tbl.Reason, tbl.Timestamp).
		From(tbl.TableName()).
		OrderBy(tbl.Timestamp, false).
		OrderBy("id", false).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	violations := make([]*domain.Violation, 0)
	if err := r.db.SelectContext(ctx, &violations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	return violations, nil
}
