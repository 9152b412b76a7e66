package chi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/book"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostBooks(t *testing.T) {
	h, m := newTestHandler(t)
	year := 1967
	created := book.Book{ID: "b1", Title: "One Hundred Years of Solitude", AuthorID: "a1", CategoryID: "c1", Year: year}
	m.books.On("Create", mock.Anything, book.CreateInput{
		Title:      "One Hundred Years of Solitude",
		AuthorID:   "a1",
		CategoryID: "c1",
		Year:       &year,
	}).Return(created, nil)

	w := doRequest(t, h, http.MethodPost, "/api/book", map[string]interface{}{
		"title":      "One Hundred Years of Solitude",
		"authorId":   "a1",
		"categoryId": "c1",
		"year":       year,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var result bookResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "b1", result.ID)
	assert.Equal(t, "a1", result.AuthorID)
	assert.Equal(t, year, result.Year)
}

func TestPostBooksUnknownAuthor(t *testing.T) {
	h, m := newTestHandler(t)
	year := 2001
	m.books.On("Create", mock.Anything, mock.AnythingOfType("book.CreateInput")).
		Return(book.Book{}, fault.NewReferenceNotFound("authorId", "Author", "a-missing"))

	w := doRequest(t, h, http.MethodPost, "/api/book", map[string]interface{}{
		"title":      "Ghost Book",
		"authorId":   "a-missing",
		"categoryId": "c1",
		"year":       year,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, "Invalid authorId. Author not found.", env.Message)
}

func TestGetBookDetail(t *testing.T) {
	h, m := newTestHandler(t)
	detail := book.Detail{
		Book:     book.Book{ID: "b1", Title: "Gabriela", AuthorID: "a1", CategoryID: "c1", Year: 1958},
		Author:   &author.Author{ID: "a1", Name: "Jorge Amado"},
		Category: &category.Category{ID: "c1", Name: "Fiction"},
	}
	m.books.On("Get", mock.Anything, "b1").Return(detail, nil)

	w := doRequest(t, h, http.MethodGet, "/api/book/b1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var result bookDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Author)
	require.NotNil(t, result.Category)
	assert.Equal(t, "Jorge Amado", result.Author.Name)
	assert.Equal(t, "Fiction", result.Category.Name)
	assert.Equal(t, 1958, result.Year)
}

func TestGetBookDanglingAuthor(t *testing.T) {
	h, m := newTestHandler(t)
	detail := book.Detail{
		Book:     book.Book{ID: "b1", Title: "Orphaned", AuthorID: "a-gone", CategoryID: "c1", Year: 1990},
		Category: &category.Category{ID: "c1", Name: "Fiction"},
	}
	m.books.On("Get", mock.Anything, "b1").Return(detail, nil)

	w := doRequest(t, h, http.MethodGet, "/api/book/b1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var result bookDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Nil(t, result.Author)
	require.NotNil(t, result.Category)
	assert.Equal(t, "Fiction", result.Category.Name)
}

func TestGetBooks(t *testing.T) {
	h, m := newTestHandler(t)
	all := []book.Detail{
		{Book: book.Book{ID: "b1", Title: "Title 1"}},
		{Book: book.Book{ID: "b2", Title: "Title 2"}},
	}
	m.books.On("List", mock.Anything).Return(all, nil)

	w := doRequest(t, h, http.MethodGet, "/api/book", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var results []bookDetailResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Equal(t, len(all), len(results))
}

func TestPutBookYearOnly(t *testing.T) {
	h, m := newTestHandler(t)
	year := 1968
	updated := book.Book{ID: "b1", Title: "Quarto de Despejo", AuthorID: "a1", CategoryID: "c1", Year: year}
	m.books.On("Update", mock.Anything, "b1", book.UpdateInput{Year: &year}).
		Return(updated, nil)

	w := doRequest(t, h, http.MethodPut, "/api/book/b1", map[string]interface{}{
		"year": year,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var result bookResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Quarto de Despejo", result.Title)
	assert.Equal(t, year, result.Year)
}

func TestPutBookNotFound(t *testing.T) {
	h, m := newTestHandler(t)
	title := "Renamed"
	m.books.On("Update", mock.Anything, "b-missing", book.UpdateInput{Title: &title}).
		Return(book.Book{}, fault.NewNotFound("Book"))

	w := doRequest(t, h, http.MethodPut, "/api/book/b-missing", map[string]interface{}{
		"title": title,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Book not found", env.Message)
}

func TestDeleteBook(t *testing.T) {
	h, m := newTestHandler(t)
	m.books.On("Delete", mock.Anything, "b1").Return(nil)

	w := doRequest(t, h, http.MethodDelete, "/api/book/b1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var result messageResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Book deleted successfully", result.Message)
}
