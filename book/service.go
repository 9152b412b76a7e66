package book

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/fault"
)

// UseCase defines the business operations for book management. Reads
// return Detail so clients get the referenced author and category without
// extra round trips.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (Book, error)
	List(ctx context.Context) ([]Detail, error)
	Get(ctx context.Context, id string) (Detail, error)
	Update(ctx context.Context, id string, in UpdateInput) (Book, error)
	Delete(ctx context.Context, id string) error
}

// Service orchestrates reference validation and store access. It reads
// from the author and category collections but never writes to them.
type Service struct {
	Repo       Repository
	Authors    author.Reader
	Categories category.Reader
}

func NewService(repo Repository, authors author.Reader, categories category.Reader) *Service {
	return &Service{
		Repo:       repo,
		Authors:    authors,
		Categories: categories,
	}
}

/* validateReferences confirms each supplied reference resolves to an
 * existing record, one lookup per reference, short-circuiting on the first
 * miss. The check and the subsequent write are not atomic: a concurrent
 * delete of the referenced record can still leave a dangling reference.
 */
func (s *Service) validateReferences(ctx context.Context, authorID, categoryID *string) error {
	if authorID != nil {
		if _, err := s.Authors.Select(ctx, *authorID); err != nil {
			if fault.IsKind(err, fault.NotFound) || fault.IsKind(err, fault.MalformedID) {
				return fault.NewReferenceNotFound("authorId", "Author", *authorID)
			}
			return fmt.Errorf("resolving authorId: %w", err)
		}
	}
	if categoryID != nil {
		if _, err := s.Categories.Select(ctx, *categoryID); err != nil {
			if fault.IsKind(err, fault.NotFound) || fault.IsKind(err, fault.MalformedID) {
				return fault.NewReferenceNotFound("categoryId", "Category", *categoryID)
			}
			return fmt.Errorf("resolving categoryId: %w", err)
		}
	}
	return nil
}

// Create validates both references, then the book's own fields, and only
// then persists. A failed validation leaves no persisted change.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := s.validateReferences(ctx, &in.AuthorID, &in.CategoryID); err != nil {
		return Book{}, err
	}
	var violations []string
	if in.Title == "" {
		violations = append(violations, "title is required")
	}
	if in.Year == nil {
		violations = append(violations, "year is required")
	}
	if len(violations) > 0 {
		return Book{}, fault.NewValidation(violations...)
	}
	b := Book{
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Year:       *in.Year,
	}
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]Detail, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	details := make([]Detail, 0, len(all))
	for _, b := range all {
		d, err := s.join(ctx, b)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("selecting book: %w", err)
	}
	return s.join(ctx, b)
}

// join resolves the referenced records. A reference that no longer
// resolves embeds nil; store failures propagate.
func (s *Service) join(ctx context.Context, b Book) (Detail, error) {
	d := Detail{Book: b}
	a, err := s.Authors.Select(ctx, b.AuthorID)
	switch {
	case err == nil:
		d.Author = &a
	case !fault.IsKind(err, fault.NotFound) && !fault.IsKind(err, fault.MalformedID):
		return Detail{}, fmt.Errorf("resolving book author: %w", err)
	}
	c, err := s.Categories.Select(ctx, b.CategoryID)
	switch {
	case err == nil:
		d.Category = &c
	case !fault.IsKind(err, fault.NotFound) && !fault.IsKind(err, fault.MalformedID):
		return Detail{}, fmt.Errorf("resolving book category: %w", err)
	}
	return d, nil
}

// Update loads the stored book, re-validates only the references present
// in the input, overwrites the supplied fields and persists the result.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	if err := s.validateReferences(ctx, in.AuthorID, in.CategoryID); err != nil {
		return Book{}, err
	}
	if in.Title != nil {
		if *in.Title == "" {
			return Book{}, fault.NewValidation("title is required")
		}
		b.Title = *in.Title
	}
	if in.AuthorID != nil {
		b.AuthorID = *in.AuthorID
	}
	if in.CategoryID != nil {
		b.CategoryID = *in.CategoryID
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if err := s.Repo.Update(ctx, b); err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
