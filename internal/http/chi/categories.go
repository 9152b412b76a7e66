package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/routes"
	"github.com/rs/zerolog"
)

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryResponse(c category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func categoryRoutes(s category.UseCase, logger zerolog.Logger) routes.Resource {
	return routes.Resource{
		Name: "category",
		Ops: routes.Operations{
			List:   getCategories(s, logger),
			Create: postCategories(s, logger),
			Get:    getCategory(s, logger),
			Update: putCategory(s, logger),
			Delete: deleteCategory(s, logger),
		},
	}
}

func getCategories(s category.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := s.List(r.Context())
		if err != nil {
			respondError(w, logger, err)
			return
		}
		result := make([]categoryResponse, 0, len(all))
		for _, c := range all {
			result = append(result, toCategoryResponse(c))
		}
		respondJSON(w, logger, http.StatusOK, result)
	})
}

func getCategory(s category.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toCategoryResponse(c))
	})
}

func postCategories(s category.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		var name, description string
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		c, err := s.Create(r.Context(), name, description)
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusCreated, toCategoryResponse(c))
	})
}

func putCategory(s category.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, logger, err)
			return
		}
		c, err := s.Update(r.Context(), chi.URLParam(r, "id"), category.UpdateInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, toCategoryResponse(c))
	})
}

func deleteCategory(s category.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
	})
}
