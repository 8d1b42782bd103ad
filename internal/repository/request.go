package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Request interface {
	CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.BookRequest, error)
	ListByStudent(ctx context.Context, username string) ([]model.StudentRequest, error)
	ListPending(ctx context.Context) ([]model.StudentRequest, error)
	ProcessRequest(ctx context.Context, requestID int, status model.Status) (model.BookRequest, error)
	DeleteByStudent(ctx context.Context, username string) error
	DeleteAllPending(ctx context.Context) error
}

type requestRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRequestRepository(db *sqlx.DB, log *zap.Logger) (*requestRepository, error) {
	return &requestRepository{
		db:  db,
		log: log.Named("request-repo"),
	}, nil
}

const (
	bookRequestsTableName = `book_requests`
)

func (r *requestRepository) CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.BookRequest, error) {
	query, args, err := qb.Select("quantity").
		From(booksTableName).
		Where(sq.Eq{"book_id": req.BookID}).
		ToSql()
	if err != nil {
		return model.BookRequest{}, err
	}
	var quantity int
	if err := r.db.GetContext(ctx, &quantity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRequest{}, errs.ErrNotFound
		}
		return model.BookRequest{}, err
	}
	// Scarcity is enforced at approval, not here: several pending
	// requests may outnumber the available copies.
	if quantity <= 0 {
		return model.BookRequest{}, errs.ErrUnavailable
	}

	query, args, err = qb.Insert(bookRequestsTableName).
		Columns("book_id", "student_username", "status", "request_date").
		Values(req.BookID, req.StudentUsername, model.StatusPending, time.Now().UTC()).
		Suffix("returning request_id, book_id, student_username, status, request_date, response_date").
		ToSql()
	if err != nil {
		return model.BookRequest{}, err
	}
	var created model.BookRequest
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateRequest", zap.String("q", query), zap.Any("args", args))
		return model.BookRequest{}, err
	}
	return created, nil
}

func (r *requestRepository) ListByStudent(ctx context.Context, username string) ([]model.StudentRequest, error) {
	query, args, err := qb.Select("request_id", "r.book_id", "student_username", "status", "request_date", "response_date", "title", "author").
		From(bookRequestsTableName + " r").
		Join(fmt.Sprintf("%s b on b.book_id = r.book_id", booksTableName)).
		Where(sq.Eq{"student_username": username}).
		OrderBy("request_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.StudentRequest, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *requestRepository) ListPending(ctx context.Context) ([]model.StudentRequest, error) {
	query, args, err := qb.Select("request_id", "r.book_id", "student_username", "status", "request_date", "response_date", "title", "author").
		From(bookRequestsTableName + " r").
		Join(fmt.Sprintf("%s b on b.book_id = r.book_id", booksTableName)).
		Where(sq.Eq{"status": model.StatusPending}).
		OrderBy("request_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.StudentRequest, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// ProcessRequest moves a pending request to approved or rejected and
// returns the processed row. The quantity decrement and the status write
// happen in one transaction: two concurrent approvals cannot both
// consume the last copy.
func (r *requestRepository) ProcessRequest(ctx context.Context, requestID int, status model.Status) (model.BookRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BookRequest{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var req model.BookRequest
	q := fmt.Sprintf(`select request_id, book_id, student_username, status, request_date, response_date
from %s where request_id = $1 for update`, bookRequestsTableName)
	if err := tx.GetContext(ctx, &req, q, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRequest{}, errs.ErrNotFound
		}
		return model.BookRequest{}, err
	}
	if req.Status != model.StatusPending {
		return model.BookRequest{}, errs.ErrAlreadyProcessed
	}

	if status == model.StatusApproved {
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`update %s
	set quantity = quantity - 1
where book_id = $1 and quantity > 0`, booksTableName), req.BookID)
		if err != nil {
			return model.BookRequest{}, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return model.BookRequest{}, err
		}
		if affected == 0 {
			return model.BookRequest{}, errs.ErrUnavailable
		}
	}

	respondedAt := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`update %s
	set status = $1, response_date = $2
where request_id = $3`, bookRequestsTableName), status, respondedAt, requestID); err != nil {
		return model.BookRequest{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BookRequest{}, err
	}

	req.Status = status
	req.ResponseDate = &respondedAt
	return req, nil
}

func (r *requestRepository) DeleteByStudent(ctx context.Context, username string) error {
	query, args, err := qb.Delete(bookRequestsTableName).
		Where(sq.Eq{"student_username": username}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *requestRepository) DeleteAllPending(ctx context.Context) error {
	query, args, err := qb.Delete(bookRequestsTableName).
		Where(sq.Eq{"status": model.StatusPending}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
