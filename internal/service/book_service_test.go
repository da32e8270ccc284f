package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/govalues/decimal"
	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/mocks"
	"github.com/phrazzld/book-api/internal/platform/memory"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/phrazzld/book-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T, opts ...memory.Option) (service.BookService, *memory.Store) {
	t.Helper()
	mem := memory.New(opts...)
	return service.NewBookService(mem.Books(), mem.Categories(), nil), mem
}

func validInput() domain.BookInput {
	return domain.BookInput{
		Title:      "Kürk Mantolu",
		Price:      decimal.MustParse("42.50"),
		CategoryID: 2,
	}
}

func TestBookServiceListBooks(t *testing.T) {
	t.Parallel()

	svc, _ := newBookService(t)

	tests := []struct {
		name        string
		req         domain.PageRequest
		wantIDs     []int
		wantPage    int
		wantSize    int
		wantHasNext bool
	}{
		{name: "defaults", req: domain.PageRequest{}, wantIDs: []int{1, 2, 3}, wantPage: 1, wantSize: 10},
		{name: "first of two", req: domain.PageRequest{Page: 1, PageSize: 2}, wantIDs: []int{1, 2}, wantPage: 1, wantSize: 2, wantHasNext: true},
		{name: "second of two", req: domain.PageRequest{Page: 2, PageSize: 2}, wantIDs: []int{3}, wantPage: 2, wantSize: 2},
		{name: "beyond range", req: domain.PageRequest{Page: 5, PageSize: 2}, wantIDs: []int{}, wantPage: 5, wantSize: 2},
		{name: "size capped", req: domain.PageRequest{Page: 1, PageSize: 500}, wantIDs: []int{1, 2, 3}, wantPage: 1, wantSize: domain.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, err := svc.ListBooks(context.Background(), tt.req)
			require.NoError(t, err)

			ids := make([]int, 0, len(page.Items))
			for _, b := range page.Items {
				ids = append(ids, b.ID)
				assert.NotNil(t, b.Category, "book %d has no category", b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantSize, page.PageSize)
			assert.Equal(t, 3, page.TotalCount)
			assert.Equal(t, tt.wantHasNext, page.HasNext)
		})
	}
}

func TestBookServiceGetBook(t *testing.T) {
	t.Parallel()

	svc, _ := newBookService(t)
	ctx := context.Background()

	book, err := svc.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Devlet", book.Title)
	require.NotNil(t, book.Category)
	assert.Equal(t, "Felsefe", book.Category.Name)

	_, err = svc.GetBook(ctx, 5)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "The book with 5 could not be found!", err.Error())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []int{0, -1, 1001} {
		_, err = svc.GetBook(ctx, id)
		assert.ErrorIs(t, err, domain.ErrIDOutOfRange, "id %d", id)
	}
}

func TestBookServiceSearchBooks(t *testing.T) {
	t.Parallel()

	svc, _ := newBookService(t)

	books, err := svc.SearchBooks(context.Background(), "ATEŞ")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 2, books[0].ID)

	books, err = svc.SearchBooks(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestBookServiceCreateBook(t *testing.T) {
	t.Parallel()

	t.Run("creates with category and default url", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookService(t)

		in := validInput()
		in.Title = "  Kürk Mantolu  "
		book, err := svc.CreateBook(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, 4, book.ID)
		assert.Equal(t, "Kürk Mantolu", book.Title)
		assert.Equal(t, domain.DefaultBookURL, book.URL)
		assert.Equal(t, "42.50", book.Price.String())
		require.NotNil(t, book.Category)
		assert.Equal(t, "Roman", book.Category.Name)

		count, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("aggregates validation messages", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookService(t)

		_, err := svc.CreateBook(context.Background(), domain.BookInput{
			Title: "A",
			Price: decimal.MustParse("0.5"),
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{domain.MsgTitleTooShort, domain.MsgPriceRange, domain.MsgCategoryID}, verr.Messages)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookService(t)

		in := validInput()
		in.CategoryID = 99
		_, err := svc.CreateBook(context.Background(), in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{domain.MsgCategoryMissing}, verr.Messages)
	})
}

func TestBookServiceUpdateBook(t *testing.T) {
	t.Parallel()

	svc, _ := newBookService(t)
	ctx := context.Background()

	in := validInput()
	in.URL = "/images/9.jpg"
	book, err := svc.UpdateBook(ctx, 3, in)
	require.NoError(t, err)
	assert.Equal(t, 3, book.ID)
	assert.Equal(t, "Kürk Mantolu", book.Title)
	assert.Equal(t, "/images/9.jpg", book.URL)
	assert.Equal(t, "Roman", book.Category.Name)

	_, err = svc.UpdateBook(ctx, 7, validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateBook(ctx, 2000, validInput())
	assert.ErrorIs(t, err, domain.ErrIDOutOfRange)

	_, err = svc.UpdateBook(ctx, 3, domain.BookInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookServiceDeleteBook(t *testing.T) {
	t.Parallel()

	svc, _ := newBookService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteBook(ctx, 2))
	_, err := svc.GetBook(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteBook(ctx, 2)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 2, nf.ID)

	assert.ErrorIs(t, svc.DeleteBook(ctx, 0), domain.ErrIDOutOfRange)
}

func TestBookServiceStoreFailures(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")

	books := new(mocks.MockBookStore)
	categories := new(mocks.MockCategoryStore)
	books.On("List", mock.Anything, domain.PageRequest{Page: 1, PageSize: 10}).Return(nil, 0, dbErr)
	books.On("GetByID", mock.Anything, 1).Return(nil, dbErr)
	categories.On("GetByID", mock.Anything, 2).Return(&domain.Category{ID: 2, Name: "Roman"}, nil)
	books.On("Create", mock.Anything, mock.AnythingOfType("*domain.Book")).Return(store.ErrInvalidEntity)

	svc := service.NewBookService(books, categories, nil)
	ctx := context.Background()

	_, err := svc.ListBooks(ctx, domain.PageRequest{})
	assert.ErrorIs(t, err, dbErr)

	_, err = svc.GetBook(ctx, 1)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	// A category removed between the check and the insert surfaces as a
	// validation failure.
	_, err = svc.CreateBook(ctx, validInput())
	assert.ErrorIs(t, err, domain.ErrValidation)

	books.AssertExpectations(t)
	categories.AssertExpectations(t)
}

func TestBookServiceLogsStoreErrorContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	storeErr := store.NewStoreError("book", "get", "query failed", errors.New("connection reset"))
	books := new(mocks.MockBookStore)
	books.On("GetByID", mock.Anything, 3).Return(nil, storeErr)

	svc := service.NewBookService(books, new(mocks.MockCategoryStore), logger)
	_, err := svc.GetBook(context.Background(), 3)

	var got *store.StoreError
	require.ErrorAs(t, err, &got)
	assert.Same(t, storeErr, got)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "book store failure", entry["msg"])
	assert.Equal(t, "book", entry["store_entity"])
	assert.Equal(t, "get", entry["store_operation"])
	books.AssertExpectations(t)
}
