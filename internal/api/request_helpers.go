package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/platform/logger"
)

// PaginationHeader carries PaginationMetadata as JSON.
const PaginationHeader = "X-Pagination"

// getPathID extracts an integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Missing values yield 0.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// getPageRequest reads ?page and ?page_size. Normalization is left to the
// service.
func getPageRequest(r *http.Request) (domain.PageRequest, error) {
	page, ok := queryInt(r, "page")
	if !ok {
		return domain.PageRequest{}, fmt.Errorf("page must be an integer")
	}
	size, ok := queryInt(r, "page_size")
	if !ok {
		return domain.PageRequest{}, fmt.Errorf("page_size must be an integer")
	}
	return domain.PageRequest{Page: page, PageSize: size}, nil
}

// decodeBody decodes a JSON body and writes a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	return true
}

// setPaginationHeader writes the X-Pagination header.
func setPaginationHeader(w http.ResponseWriter, r *http.Request, meta PaginationMetadata) {
	b, err := json.Marshal(meta)
	if err != nil {
		logger.FromContextOrDefault(r.Context()).Error("failed to encode pagination header", "error", err)
		return
	}
	w.Header().Set(PaginationHeader, string(b))
}
