package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
)

// BookHandler serves /api/books.
type BookHandler struct {
	books service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(books service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// ListBooks handles GET /api/books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	req, err := getPageRequest(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	page, err := h.books.ListBooks(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if page.TotalCount == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := domain.MapPage(page, bookToResponse)
	setPaginationHeader(w, r, paginationFromPage(resp))
	shared.RespondWithJSON(w, r, http.StatusOK, resp.Items)
}

// GetBook handles GET /api/books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	book, err := h.books.GetBook(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(*book))
}

// SearchBooks handles GET /api/books/search?title=.
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.SearchBooks(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if len(books) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, booksToResponse(books))
}

// CreateBook handles POST /api/books.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, err := h.books.CreateBook(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/books/%d", book.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(*book))
}

// UpdateBook handles PUT /api/books/{id}.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req BookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, err := h.books.UpdateBook(r.Context(), id, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(*book))
}

// DeleteBook handles DELETE /api/books/{id}.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.books.DeleteBook(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
