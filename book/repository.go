package book

import "context"

type Reader interface {
	Select(ctx context.Context, id string) (Book, error)
	SelectAll(ctx context.Context) ([]Book, error)
}

type Writer interface {
	Insert(ctx context.Context, b Book) (string, error)
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
