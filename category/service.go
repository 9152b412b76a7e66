package category

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookstore-catalog/fault"
)

// UseCase defines the business operations for category management.
type UseCase interface {
	Create(ctx context.Context, name, description string) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Update(ctx context.Context, id string, in UpdateInput) (Category, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, name, description string) (Category, error) {
	if violations := ValidateName(name); len(violations) > 0 {
		return Category{}, fault.NewValidation(violations...)
	}
	c := Category{
		Name:        name,
		Description: description,
	}
	id, err := s.Repo.Insert(ctx, c)
	if err != nil {
		return Category{}, fmt.Errorf("inserting category: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	c, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Category{}, fmt.Errorf("selecting category: %w", err)
	}
	return c, nil
}

// Update overwrites only the supplied fields, re-validating the name when
// it is present, and returns the merged record.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Category, error) {
	c, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Category{}, fmt.Errorf("selecting category: %w", err)
	}
	if in.Name != nil {
		if violations := ValidateName(*in.Name); len(violations) > 0 {
			return Category{}, fault.NewValidation(violations...)
		}
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return Category{}, fmt.Errorf("updating category: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
