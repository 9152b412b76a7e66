package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/book"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository. The references are stored as
 * plain id fields; nothing at this layer enforces them.
 */

const (
	hashPrefix = "book"
	indexKey   = "books"
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

func hashKey(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

func fromHash(data map[string]string) (book.Book, error) {
	year, err := strconv.Atoi(data["year"])
	if err != nil {
		return book.Book{}, fmt.Errorf("parsing book year: %w", err)
	}
	return book.Book{
		ID:         data["id"],
		Title:      data["title"],
		AuthorID:   data["author_id"],
		CategoryID: data["category_id"],
		Year:       year,
	}, nil
}

func toHash(b book.Book) map[string]interface{} {
	return map[string]interface{}{
		"id":          b.ID,
		"title":       b.Title,
		"author_id":   b.AuthorID,
		"category_id": b.CategoryID,
		"year":        b.Year,
	}
}

func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return book.Book{}, fault.NewMalformedID("Book", id)
	}

	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return book.Book{}, fmt.Errorf("getting book: %w", err)
	}
	if len(data) == 0 {
		return book.Book{}, fault.NewNotFound("Book")
	}

	return fromHash(data)
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing book ids: %w", err)
	}

	books := make([]book.Book, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("getting book %s: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		b, err := fromHash(data)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	b.ID = uuid.New().String()

	if err := r.client.HSet(ctx, hashKey(b.ID), toHash(b)).Err(); err != nil {
		return "", fmt.Errorf("storing book: %w", err)
	}

	if err := r.client.SAdd(ctx, indexKey, b.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing book: %w", err)
	}

	return b.ID, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	if _, err := uuid.Parse(b.ID); err != nil {
		return fault.NewMalformedID("Book", b.ID)
	}

	exists, err := r.client.Exists(ctx, hashKey(b.ID)).Result()
	if err != nil {
		return fmt.Errorf("checking book: %w", err)
	}
	if exists == 0 {
		return fault.NewNotFound("Book")
	}

	if err := r.client.HSet(ctx, hashKey(b.ID), toHash(b)).Err(); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Book", id)
	}

	deleted, err := r.client.Del(ctx, hashKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if deleted == 0 {
		return fault.NewNotFound("Book")
	}

	if err := r.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("unindexing book: %w", err)
	}

	return nil
}

// Count reports the number of indexed books, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}
