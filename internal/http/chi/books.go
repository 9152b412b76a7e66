package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/bookstore-catalog/book"
	"github.com/marcelsud/bookstore-catalog/routes"
	"github.com/rs/zerolog"
)

type bookRequest struct {
	Title      *string `json:"title"`
	AuthorID   *string `json:"authorId"`
	CategoryID *string `json:"categoryId"`
	Year       *int    `json:"year"`
}

type bookResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AuthorID   string `json:"authorId"`
	CategoryID string `json:"categoryId"`
	Year       int    `json:"year"`
}

/* Reads embed the referenced records. The reference ids stay in the
 * payload so a client can PUT them back unchanged; a dangling reference
 * embeds null.
 */
type bookDetailResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Author   *authorResponse   `json:"author"`
	Category *categoryResponse `json:"category"`
	Year     int               `json:"year"`
}

func toBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:         b.ID,
		Title:      b.Title,
		AuthorID:   b.AuthorID,
		CategoryID: b.CategoryID,
		Year:       b.Year,
	}
}

func toBookDetailResponse(d book.Detail) bookDetailResponse {
	resp := bookDetailResponse{
		ID:    d.ID,
		Title: d.Title,
		Year:  d.Year,
	}
	if d.Author != nil {
		a := toAuthorResponse(*d.Author)
		resp.Author = &a
	}
	if d.Category != nil {
		c := toCategoryResponse(*d.Category)
		resp.Category = &c
	}
	return resp
}

func bookRoutes(s book.UseCase, logger zerolog.Logger) routes.Resource {
	return routes.Resource{
		Name: "book",
		Ops: routes.Operations{
			List:   getBooks(s, logger),
			Create: postBooks(s, logger),
			Get:    getBook(s, logger),
			Update: putBook(s, logger),
			Delete: deleteBook(s, logger),
		},
	}
}

func getBooks(s book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := s.List(r.Context())
		if err != nil {
			respondError(w, logger, err)
			return
		}
		result := make([]bookDetailResponse, 0, len(all))
		for _, d := range all {
			result = append(result, toBookDetailResponse(d))
		}
		respondJSON(w, logger, http.StatusOK, result)
	})
}

func getBook(s book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := s.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toBookDetailResponse(d))
	})
}

func postBooks(s book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bookRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		in := book.CreateInput{Year: req.Year}
		if req.Title != nil {
			in.Title = *req.Title
		}
		if req.AuthorID != nil {
			in.AuthorID = *req.AuthorID
		}
		if req.CategoryID != nil {
			in.CategoryID = *req.CategoryID
		}
		b, err := s.Create(r.Context(), in)
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusCreated, toBookResponse(b))
	})
}

func putBook(s book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bookRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		b, err := s.Update(r.Context(), chi.URLParam(r, "id"), book.UpdateInput{
			Title:      req.Title,
			AuthorID:   req.AuthorID,
			CategoryID: req.CategoryID,
			Year:       req.Year,
		})
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toBookResponse(b))
	})
}

func deleteBook(s book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, messageResponse{Message: "Book deleted successfully"})
	})
}
