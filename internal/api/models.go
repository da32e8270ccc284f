package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/service"
)

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BookResponse is the public view of a book.
type BookResponse struct {
	ID       int               `json:"id"`
	Title    string            `json:"title"`
	Price    json.Number       `json:"price"`
	URL      string            `json:"url"`
	Category *CategoryResponse `json:"category,omitempty"`
}

// BookRequest is the payload of POST and PUT /api/books.
type BookRequest struct {
	Title      string      `json:"title"`
	Price      json.Number `json:"price"`
	URL        string      `json:"url"`
	CategoryID int         `json:"category_id"`
}

// PaginationMetadata is serialized into the X-Pagination header.
type PaginationMetadata struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	UserName    string   `json:"user_name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	PhoneNumber string   `json:"phone_number"`
	Roles       []string `json:"roles"`
}

// RegisterResponse mirrors a successful identity result.
type RegisterResponse struct {
	Succeeded bool                   `json:"succeeded"`
	Errors    []domain.IdentityError `json:"errors"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password"  validate:"required"`
}

// TokenRequest defines the payload for the token refresh endpoint.
type TokenRequest struct {
	AccessToken  string `json:"access_token"  validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse carries a token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 access token expiry.
	ExpiresAt string `json:"expires_at"`
}

// priceScale is the number of fractional digits stored for prices.
const priceScale = 2

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func bookToResponse(b domain.Book) BookResponse {
	resp := BookResponse{
		ID:    b.ID,
		Title: b.Title,
		Price: json.Number(b.Price.String()),
		URL:   b.URL,
	}
	if b.Category != nil {
		c := categoryToResponse(*b.Category)
		resp.Category = &c
	}
	return resp
}

func booksToResponse(books []domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = bookToResponse(b)
	}
	return out
}

// toInput converts the request into the domain write model. A price that is
// not a decimal number stays zero so validation reports it with the other
// field errors.
func (req BookRequest) toInput() domain.BookInput {
	in := domain.BookInput{
		Title:      req.Title,
		URL:        req.URL,
		CategoryID: req.CategoryID,
	}
	if price, err := decimal.Parse(strings.TrimSpace(req.Price.String())); err == nil {
		in.Price = price.Round(priceScale)
	}
	return in
}

func paginationFromPage[T any](p domain.Page[T]) PaginationMetadata {
	return PaginationMetadata{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}

func (req RegisterRequest) toInput() service.RegistrationInput {
	return service.RegistrationInput{
		UserName:    req.UserName,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Roles:       req.Roles,
	}
}

func tokenToResponse(pair *service.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
