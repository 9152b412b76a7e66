package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of author.Repository.
 * Each record lives in a hash (author:<id>); the authors set indexes the
 * collection for listing and counting. Identifiers are UUIDs assigned on
 * insert; anything that does not parse as a UUID is rejected before any
 * round trip.
 */

const (
	hashPrefix = "author"
	indexKey   = "authors"
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

	// Test connection
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

func (r *Repository) Select(ctx context.Context, id string) (author.Author, error) {
	if _, err := uuid.Parse(id); err != nil {
		return author.Author{}, fault.NewMalformedID("Author", id)
	}

	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return author.Author{}, fmt.Errorf("getting author: %w", err)
	}
	if len(data) == 0 {
		return author.Author{}, fault.NewNotFound("Author")
	}

	return author.Author{
		ID:        data["id"],
		Name:      data["name"],
		Biography: data["biography"],
	}, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]author.Author, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing author ids: %w", err)
	}

	authors := make([]author.Author, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("getting author %s: %w", id, err)
		}
		// Indexed but already deleted: skip rather than fail the listing.
		if len(data) == 0 {
			continue
		}
		authors = append(authors, author.Author{
			ID:        data["id"],
			Name:      data["name"],
			Biography: data["biography"],
		})
	}

	return authors, nil
}

// Insert stores the record under a freshly assigned UUID and indexes it.
func (r *Repository) Insert(ctx context.Context, a author.Author) (string, error) {
	id := uuid.New().String()

	err := r.client.HSet(ctx, hashKey(id), map[string]interface{}{
		"id":        id,
		"name":      a.Name,
		"biography": a.Biography,
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing author: %w", err)
	}

	if err := r.client.SAdd(ctx, indexKey, id).Err(); err != nil {
		return "", fmt.Errorf("indexing author: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, a author.Author) error {
	if _, err := uuid.Parse(a.ID); err != nil {
		return fault.NewMalformedID("Author", a.ID)
	}

	exists, err := r.client.Exists(ctx, hashKey(a.ID)).Result()
	if err != nil {
		return fmt.Errorf("checking author: %w", err)
	}
	if exists == 0 {
		return fault.NewNotFound("Author")
	}

	err = r.client.HSet(ctx, hashKey(a.ID), map[string]interface{}{
		"id":        a.ID,
		"name":      a.Name,
		"biography": a.Biography,
	}).Err()
	if err != nil {
		return fmt.Errorf("updating author: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Author", id)
	}

	deleted, err := r.client.Del(ctx, hashKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	if deleted == 0 {
		return fault.NewNotFound("Author")
	}

	if err := r.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("unindexing author: %w", err)
	}

	return nil
}

// Count reports the number of indexed authors, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}
