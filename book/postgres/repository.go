package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/book"
	"github.com/marcelsud/bookstore-catalog/fault"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/* PostgreSQL implementation of book.Repository. The reference columns are
 * plain text on purpose: the service layer owns referential integrity, so
 * there is no foreign key constraint here.
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a connection pool with the default sizing (25, 5, 5 min).
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a connection pool with custom sizing.
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// EnsureSchema creates the books table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			year INTEGER NOT NULL
		)
	`
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating books table: %w", err)
	}
	return nil
}

func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return book.Book{}, fault.NewMalformedID("Book", id)
	}

	query := "SELECT id, title, author_id, category_id, year FROM books WHERE id = $1"

	var b book.Book
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.CategoryID,
		&b.Year,
	)

	if err == sql.ErrNoRows {
		return book.Book{}, fault.NewNotFound("Book")
	}

	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	return b, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	query := "SELECT id, title, author_id, category_id, year FROM books ORDER BY title"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)

	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.CategoryID, &b.Year); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	id := uuid.New().String()
	query := "INSERT INTO books (id, title, author_id, category_id, year) VALUES ($1, $2, $3, $4, $5)"

	if _, err := r.DB.ExecContext(ctx, query, id, b.Title, b.AuthorID, b.CategoryID, b.Year); err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	if _, err := uuid.Parse(b.ID); err != nil {
		return fault.NewMalformedID("Book", b.ID)
	}

	query := "UPDATE books SET title = $2, author_id = $3, category_id = $4, year = $5 WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, b.ID, b.Title, b.AuthorID, b.CategoryID, b.Year)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Book")
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Book", id)
	}

	result, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Book")
	}

	return nil
}

// Count reports the number of stored books, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.DB.Close()
}
