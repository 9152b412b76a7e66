package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/fault"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgreSQL implementation of category.Repository.
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

// EnsureSchema creates the categories table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating categories table: %w", err)
	}
	return nil
}

func (r *Repository) Select(ctx context.Context, id string) (category.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return category.Category{}, fault.NewMalformedID("Category", id)
	}

	query := "SELECT id, name, description FROM categories WHERE id = $1"

	var c category.Category
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
	)

	if err == sql.ErrNoRows {
		return category.Category{}, fault.NewNotFound("Category")
	}

	if err != nil {
		return category.Category{}, fmt.Errorf("selecting category: %w", err)
	}

	return c, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]category.Category, error) {
	query := "SELECT id, name, description FROM categories ORDER BY name"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)

	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) Insert(ctx context.Context, c category.Category) (string, error) {
	id := uuid.New().String()
	query := "INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)"

	if _, err := r.DB.ExecContext(ctx, query, id, c.Name, c.Description); err != nil {
		return "", fmt.Errorf("inserting category: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, c category.Category) error {
	if _, err := uuid.Parse(c.ID); err != nil {
		return fault.NewMalformedID("Category", c.ID)
	}

	query := "UPDATE categories SET name = $2, description = $3 WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Category")
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Category", id)
	}

	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fault.NewNotFound("Category")
	}

	return nil
}

// Count reports the number of stored categories, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.DB.Close()
}
