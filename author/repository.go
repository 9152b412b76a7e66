package author

import "context"

/* Small, focused interfaces. They abstract the entity store's behavior,
 * not a particular database.
 */

type Reader interface {
	Select(ctx context.Context, id string) (Author, error)
	SelectAll(ctx context.Context) ([]Author, error)
}

type Writer interface {
	Insert(ctx context.Context, a Author) (string, error)
	Update(ctx context.Context, a Author) error
	Delete(ctx context.Context, id string) error
}

/* Interface composition */

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
