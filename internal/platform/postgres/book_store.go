package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/store"
)

// Every book query returns these columns, in this order.
const bookColumns = `b.id, b.title, b.price::text, b.url, b.category_id, c.id, c.name, b.created_at, b.updated_at`

const selectBooks = `SELECT ` + bookColumns + ` FROM books b JOIN categories c ON c.id = b.category_id`

const insertBook = `
WITH b AS (
	INSERT INTO books (title, price, url, category_id, created_at, updated_at)
	VALUES ($1, $2::text::numeric, $3, $4, $5, $5)
	RETURNING id, title, price, url, category_id, created_at, updated_at
)
SELECT ` + bookColumns + ` FROM b JOIN categories c ON c.id = b.category_id`

const updateBook = `
WITH b AS (
	UPDATE books
	SET title = $1, price = $2::text::numeric, url = $3, category_id = $4, updated_at = $5
	WHERE id = $6
	RETURNING id, title, price, url, category_id, created_at, updated_at
)
SELECT ` + bookColumns + ` FROM b JOIN categories c ON c.id = b.category_id`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresBookStore creates a book store on db. If logger is nil, the
// default logger is used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		b     domain.Book
		c     domain.Category
		price string
	)
	if err := row.Scan(&b.ID, &b.Title, &price, &b.URL, &b.CategoryID, &c.ID, &c.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.Book{}, err
	}
	p, err := decimal.Parse(price)
	if err != nil {
		return domain.Book{}, fmt.Errorf("invalid price %q for book %d: %w", price, b.ID, err)
	}
	b.Price = p
	b.Category = &c
	return b, nil
}

func (s *PostgresBookStore) queryBooks(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("book", "list", err)
	}
	defer func() { _ = rows.Close() }()

	books := []domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("book", "list", err)
	}
	return books, nil
}

// Count implements store.BookStore.Count
func (s *PostgresBookStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, wrapError("book", "count", err)
	}
	return n, nil
}

// List implements store.BookStore.List
func (s *PostgresBookStore) List(ctx context.Context, page domain.PageRequest) ([]domain.Book, int, error) {
	total, err := s.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Book{}, 0, nil
	}

	books, err := s.queryBooks(ctx, selectBooks+` ORDER BY b.id LIMIT $1 OFFSET $2`, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// GetByID implements store.BookStore.GetByID
func (s *PostgresBookStore) GetByID(ctx context.Context, id int) (*domain.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, selectBooks+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, wrapError("book", "get", err)
	}
	return &b, nil
}

// Search implements store.BookStore.Search
func (s *PostgresBookStore) Search(ctx context.Context, title string) ([]domain.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.queryBooks(ctx, selectBooks+` ORDER BY b.id`)
	}
	return s.queryBooks(ctx,
		selectBooks+` WHERE b.title ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY b.id`,
		escapeLike(title))
}

// Create implements store.BookStore.Create
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	created, err := scanBook(s.db.QueryRowContext(ctx, insertBook,
		book.Title, book.Price.String(), book.URL, book.CategoryID, s.now()))
	if err != nil {
		s.logger.DebugContext(ctx, "book insert failed", slog.Int("category_id", book.CategoryID))
		return wrapError("book", "create", err)
	}
	*book = created
	return nil
}

// Update implements store.BookStore.Update
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	updated, err := scanBook(s.db.QueryRowContext(ctx, updateBook,
		book.Title, book.Price.String(), book.URL, book.CategoryID, s.now(), book.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrBookNotFound
		}
		return wrapError("book", "update", err)
	}
	*book = updated
	return nil
}

// Delete implements store.BookStore.Delete
func (s *PostgresBookStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return wrapError("book", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}
