package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Catalog interface {
	ListCategories(ctx context.Context) ([]string, error)
	CreateCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	ListBooks(ctx context.Context, category string) ([]model.Book, error)
	CreateBook(ctx context.Context, book model.Book) error
	UpdateQuantity(ctx context.Context, bookID string, quantity int) error
	DeleteBook(ctx context.Context, bookID string) error
}

type catalogRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCatalogRepository(db *sqlx.DB, log *zap.Logger) (*catalogRepository, error) {
	return &catalogRepository{
		db:  db,
		log: log.Named("catalog-repo"),
	}, nil
}

const (
	categoriesTableName = `categories`
	booksTableName      = `books`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *catalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("name").
		From(categoriesTableName).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, name string) error {
	query, args, err := qb.Insert(categoriesTableName).
		Columns("name").
		Values(name).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrConflict
		}
		return err
	}
	return nil
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, name string) error {
	query, args, err := qb.Select("count(*)").
		From(booksTableName).
		Where(sq.Eq{"category": name}).
		ToSql()
	if err != nil {
		return err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return err
	}
	if count > 0 {
		return errs.ErrInUse
	}

	query, args, err = qb.Delete(categoriesTableName).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) ListBooks(ctx context.Context, category string) ([]model.Book, error) {
	q := qb.Select("book_id", "title", "author", "category", "quantity").
		From(booksTableName).
		OrderBy("book_id")

	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *catalogRepository) CreateBook(ctx context.Context, book model.Book) error {
	query, args, err := qb.Select("name").
		From(categoriesTableName).
		Where(sq.Eq{"name": book.Category}).
		ToSql()
	if err != nil {
		return err
	}
	var name string
	if err := r.db.GetContext(ctx, &name, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrInvalidReference
		}
		return err
	}

	query, args, err = qb.Insert(booksTableName).
		Columns("book_id", "title", "author", "category", "quantity").
		Values(book.BookID, book.Title, book.Author, book.Category, book.Quantity).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return errs.ErrConflict
			case pgerrcode.ForeignKeyViolation:
				return errs.ErrInvalidReference
			}
		}
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return err
	}
	return nil
}

func (r *catalogRepository) UpdateQuantity(ctx context.Context, bookID string, quantity int) error {
	query, args, err := qb.Update(booksTableName).
		Set("quantity", quantity).
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) DeleteBook(ctx context.Context, bookID string) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"book_id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
