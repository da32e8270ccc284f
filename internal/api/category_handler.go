package api

import (
	"net/http"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/service"
)

// CategoryHandler serves /api/categories.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if len(categories) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryToResponse(c)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetCategory handles GET /api/categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	category, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(*category))
}
