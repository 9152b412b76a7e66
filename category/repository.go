package category

import "context"

type Reader interface {
	Select(ctx context.Context, id string) (Category, error)
	SelectAll(ctx context.Context) ([]Category, error)
}

type Writer interface {
	Insert(ctx context.Context, c Category) (string, error)
	Update(ctx context.Context, c Category) error
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
