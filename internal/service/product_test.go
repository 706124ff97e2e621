package service_test

import (
	"context"
	"testing"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	svc := service.NewProductService(repo)

	repo.On("ListActive", ctx).Return([]domain.Product{{Slug: "dachbox-m"}, {Slug: "dachbox-l"}}, nil)
	repo.On("GetBySlug", ctx, "dachbox-m").Return(&domain.Product{Slug: "dachbox-m", IsActive: true}, nil)
	repo.On("GetBySlug", ctx, "alt").Return(&domain.Product{Slug: "alt", IsActive: false}, nil)
	repo.On("GetBySlug", ctx, "missing").Return(nil, domain.ErrNotFound)

	products, err := svc.ListActiveProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	p, err := svc.GetProduct(ctx, "dachbox-m")
	require.NoError(t, err)
	assert.Equal(t, "dachbox-m", p.Slug)

	_, err = svc.GetProduct(ctx, "alt")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
