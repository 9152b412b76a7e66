package author

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookstore-catalog/fault"
)

// UseCase defines the business operations for author management.
type UseCase interface {
	Create(ctx context.Context, name, biography string) (Author, error)
	List(ctx context.Context) ([]Author, error)
	Get(ctx context.Context, id string) (Author, error)
	Update(ctx context.Context, id string, in UpdateInput) (Author, error)
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

func (s *Service) Create(ctx context.Context, name, biography string) (Author, error) {
	if name == "" {
		return Author{}, fault.NewValidation("name is required")
	}
	a := Author{
		Name:      name,
		Biography: biography,
	}
	id, err := s.Repo.Insert(ctx, a)
	if err != nil {
		return Author{}, fmt.Errorf("inserting author: %w", err)
	}
	a.ID = id
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Author, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting authors: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id string) (Author, error) {
	a, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Author{}, fmt.Errorf("selecting author: %w", err)
	}
	return a, nil
}

// Update overwrites only the supplied fields and returns the merged record.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Author, error) {
	a, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Author{}, fmt.Errorf("selecting author: %w", err)
	}
	if in.Name != nil {
		if *in.Name == "" {
			return Author{}, fault.NewValidation("name is required")
		}
		a.Name = *in.Name
	}
	if in.Biography != nil {
		a.Biography = *in.Biography
	}
	if err := s.Repo.Update(ctx, a); err != nil {
		return Author{}, fmt.Errorf("updating author: %w", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	return nil
}
