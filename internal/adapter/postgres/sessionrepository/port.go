// Package sessionrepository stores sessions in the students table
package sessionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/examproctor-2025.net/internal/adapter/postgres"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
	querybuilder "gitlab.com/examproctor-2025.net/internal/utils"
)

var _ secondary.SessionRepository = &sessionRepo{}

type sessionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SessionRepository {
	return &sessionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.Session) error {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.SessionID, tbl.Name, tbl.Year, tbl.Section, tbl.RollNumber, tbl.RegisteredAt).
		Into(tbl.TableName()).
		Values(session.SessionID, session.Name, session.Year, session.Section, session.RollNumber, session.RegisteredAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return errs.ErrAlreadyRegistered
		}
		r.logger.Error("Failed to create session", "rollNumber", session.RollNumber, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return r.getOne(ctx, domain.GetSessionTable().SessionID, sessionID)
}

func (r *sessionRepo) GetByRollNumber(ctx context.Context, rollNumber string) (*domain.Session, error) {
	return r.getOne(ctx, domain.GetSessionTable().RollNumber, rollNumber)
}

func (r *sessionRepo) getOne(ctx context.Context, col string, value string) (*domain.Session, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", col), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepo) SetStartTime(ctx context.Context, sessionID string, startTime time.Time) (bool, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData{tbl.StartTime: startTime}).
		Where(fmt.Sprintf("%s = ?", tbl.SessionID), sessionID).
		And(fmt.Sprintf("%s IS NULL", tbl.StartTime)).
		And(fmt.Sprintf("%s = ?", tbl.Submitted), false).
		Build()

	return r.execConditional(ctx, query, args)
}

func (r *sessionRepo) MarkSubmitted(ctx context.Context, sessionID string, score int, endTime time.Time) (bool, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData{
			tbl.Submitted: true,
			tbl.Score:     score,
			tbl.EndTime:   endTime,
		}).
		Where(fmt.Sprintf("%s = ?", tbl.SessionID), sessionID).
		And(fmt.Sprintf("%s = ?", tbl.Submitted), false).
		Build()

	return r.execConditional(ctx, query, args)
}

// execConditional runs a guarded update and reports whether a row changed
func (r *sessionRepo) execConditional(ctx context.Context, query string, args []interface{}) (bool, error) {
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

func (r *sessionRepo) IncrementViolations(ctx context.Context, sessionID string) (int, bool, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.TableName(), querybuilder.UpdateData{
			tbl.ViolationCount: querybuilder.Raw(tbl.ViolationCount + " + 1"),
		}).
		Where(fmt.Sprintf("%s = ?", tbl.SessionID), sessionID).
		And(fmt.Sprintf("%s = ?", tbl.Submitted), false).
		Returning(tbl.ViolationCount).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var count int
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to increment violations: %w", err)
	}
	return count, true, nil
}

func (r *sessionRepo) ListActive(ctx context.Context) ([]*domain.Session, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s IS NOT NULL", tbl.StartTime)).
		And(fmt.Sprintf("%s = ?", tbl.Submitted), false).
		Build()

	return r.list(ctx, query, args)
}

func (r *sessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	tbl := domain.GetSessionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		OrderBy(tbl.RegisteredAt, false).
		Build()

	return r.list(ctx, query, args)
}

func (r *sessionRepo) list(ctx context.Context, query string, args []interface{}) ([]*domain.Session, error) {
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	sessions := make([]*domain.Session, 0)
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
