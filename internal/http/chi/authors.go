package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/routes"
	"github.com/rs/zerolog"
)

/* Represents the author at the web layer, which is why it has json tags.
 * Request fields are pointers: an omitted field and a field set to the
 * empty string are different things on partial updates.
 */
type authorRequest struct {
	Name      *string `json:"name"`
	Biography *string `json:"biography"`
}

type authorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

func toAuthorResponse(a author.Author) authorResponse {
	return authorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Biography: a.Biography,
	}
}

func authorRoutes(s author.UseCase, logger zerolog.Logger) routes.Resource {
	return routes.Resource{
		Name: "author",
		Ops: routes.Operations{
			List:   getAuthors(s, logger),
			Create: postAuthors(s, logger),
			Get:    getAuthor(s, logger),
			Update: putAuthor(s, logger),
			Delete: deleteAuthor(s, logger),
		},
	}
}

func getAuthors(s author.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := s.List(r.Context())
		if err != nil {
			respondError(w, logger, err)
			return
		}
		result := make([]authorResponse, 0, len(all))
		for _, a := range all {
			result = append(result, toAuthorResponse(a))
		}
		respondJSON(w, logger, http.StatusOK, result)
	})
}

func getAuthor(s author.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, err := s.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toAuthorResponse(a))
	})
}

func postAuthors(s author.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req authorRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		var name, biography string
		if req.Name != nil {
			name = *req.Name
		}
		if req.Biography != nil {
			biography = *req.Biography
		}
		a, err := s.Create(r.Context(), name, biography)
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusCreated, toAuthorResponse(a))
	})
}

func putAuthor(s author.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req authorRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		a, err := s.Update(r.Context(), chi.URLParam(r, "id"), author.UpdateInput{
			Name:      req.Name,
			Biography: req.Biography,
		})
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toAuthorResponse(a))
	})
}

func deleteAuthor(s author.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, messageResponse{Message: "Author deleted successfully"})
	})
}
