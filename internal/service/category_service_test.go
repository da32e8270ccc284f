package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/book-api/internal/domain"
	"github.com/phrazzld/book-api/internal/platform/memory"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	t.Parallel()

	mem := memory.New()
	svc := service.NewCategoryService(mem.Categories(), nil)
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Felsefe", categories[0].Name)

	c, err := svc.GetCategory(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Deneme", c.Name)

	_, err = svc.GetCategory(ctx, 9)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "The category with 9 could not be found!", err.Error())

	_, err = svc.GetCategory(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
