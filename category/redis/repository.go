package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of category.Repository. Same layout as the author
 * repository: one hash per record, one index set per collection.
 */

const (
	hashPrefix = "category"
	indexKey   = "categories"
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

func (r *Repository) Select(ctx context.Context, id string) (category.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return category.Category{}, fault.NewMalformedID("Category", id)
	}

	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return category.Category{}, fmt.Errorf("getting category: %w", err)
	}
	if len(data) == 0 {
		return category.Category{}, fault.NewNotFound("Category")
	}

	return category.Category{
		ID:          data["id"],
		Name:        data["name"],
		Description: data["description"],
	}, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]category.Category, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing category ids: %w", err)
	}

	categories := make([]category.Category, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("getting category %s: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		categories = append(categories, category.Category{
			ID:          data["id"],
			Name:        data["name"],
			Description: data["description"],
		})
	}

	return categories, nil
}

func (r *Repository) Insert(ctx context.Context, c category.Category) (string, error) {
	id := uuid.New().String()

	err := r.client.HSet(ctx, hashKey(id), map[string]interface{}{
		"id":          id,
		"name":        c.Name,
		"description": c.Description,
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing category: %w", err)
	}

	if err := r.client.SAdd(ctx, indexKey, id).Err(); err != nil {
		return "", fmt.Errorf("indexing category: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, c category.Category) error {
	if _, err := uuid.Parse(c.ID); err != nil {
		return fault.NewMalformedID("Category", c.ID)
	}

	exists, err := r.client.Exists(ctx, hashKey(c.ID)).Result()
	if err != nil {
		return fmt.Errorf("checking category: %w", err)
	}
	if exists == 0 {
		return fault.NewNotFound("Category")
	}

	err = r.client.HSet(ctx, hashKey(c.ID), map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
	}).Err()
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fault.NewMalformedID("Category", id)
	}

	deleted, err := r.client.Del(ctx, hashKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if deleted == 0 {
		return fault.NewNotFound("Category")
	}

	if err := r.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("unindexing category: %w", err)
	}

	return nil
}

// Count reports the number of indexed categories, used by the metrics gauges.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}
