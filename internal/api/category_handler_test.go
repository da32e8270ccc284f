package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/book-api/internal/platform/memory"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryRouter(opts ...memory.Option) http.Handler {
	mem := memory.New(opts...)
	h := NewCategoryHandler(service.NewCategoryService(mem.Categories(), nil))
	r := chi.NewRouter()
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/categories/{id}", h.GetCategory)
	return r
}

func TestListCategories(t *testing.T) {
	rec := do(t, newCategoryRouter(), http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Equal(t, []CategoryResponse{
		{ID: 1, Name: "Felsefe"},
		{ID: 2, Name: "Roman"},
		{ID: 3, Name: "Deneme"},
	}, categories)

	rec = do(t, newCategoryRouter(memory.WithoutSeed()), http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCategory(t *testing.T) {
	h := newCategoryRouter()

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/categories/2", http.StatusOK},
		{"/api/categories/42", http.StatusNotFound},
		{"/api/categories/0", http.StatusBadRequest},
		{"/api/categories/two", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}

	rec := do(t, h, http.MethodGet, "/api/categories/42", "")
	assert.Equal(t, "The category with 42 could not be found!", decodeError(t, rec)["message"])
}
