package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/fault"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/* PostgreSQL implementation of author.Repository. Identifiers are UUID
 * strings generated on insert, kept as text so the two backends share one
 * identifier format.
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a connection pool with the default sizing (25, 5, 5 min).
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a connection pool with custom sizing.
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection may be reused
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

// EnsureSchema creates the authors table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			biography TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating authors table: %w", err)
	}
	return nil
}

func (r *Repository) Select(ctx context.Context, id string) (author.Author, error) {
	if _, err := uuid.Parse(id); err != nil {
		return author.Author{}, fault.NewMalformedID("Author", id)
	}

	query := "SELECT id, name, biography FROM authors WHERE id = $1"

	var a author.Author
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Biography,
	)

	if err == sql.ErrNoRows {
		return author.Author{}, fault.NewNotFound("Author")
	}

	if err != nil {
		return author.Author{}, fmt.Errorf("selecting author: %w", err)
	}

	return a, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]author.Author, error) {
	query := "SELECT id, name, biography FROM authors ORDER BY name"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)

	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}

	return authors, nil
}

func (r *Repository) Insert(ctx context.Context, a author.Author) (string, error) {
	id := uuid.New().String()
	query := "INSERT INTO authors (id, name, biography) VALUES ($1, $2, $3)"

	if _, err := r.DB.ExecContext(ctx, query, id, a.Name, a.Biography); err != nil {
		return "", fmt.Errorf("inserting author: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, a author.Author) error {
	if _, err := uuid.Parse(a.ID); err != nil {
		return fault.NewMalformedID("Author", a.ID)
	}

	query := "UPDATE authors SET name = $2, biography = $3 WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, a.ID, a.Name, a.Biography)
	if err != nil {
		return fmt.Errorf("updating author: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Author")
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Author", id)
	}

	result, err := r.DB.ExecContext(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Author")
	}

	return nil
}

// Count reports the number of stored authors, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.DB.Close()
}
