package book

import (
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/category"
)

/* Represents a book in relation to the business, no transport tags.
 * AuthorID and CategoryID are references into the author and category
 * collections; the store does not enforce them, the service does.
 */
type Book struct {
	ID         string
	Title      string
	AuthorID   string
	CategoryID string
	Year       int
}

// CreateInput carries the fields of a new book. Year is a pointer so a
// missing field is distinguishable from year zero.
type CreateInput struct {
	Title      string
	AuthorID   string
	CategoryID string
	Year       *int
}

// UpdateInput carries a partial update. Nil fields keep the stored value;
// supplied references are re-validated before the write.
type UpdateInput struct {
	Title      *string
	AuthorID   *string
	CategoryID *string
	Year       *int
}

/* Detail is the read model: the book joined with the records its
 * references point at. A dangling reference embeds nil rather than
 * failing the read.
 */
type Detail struct {
	Book
	Author   *author.Author
	Category *category.Category
}
