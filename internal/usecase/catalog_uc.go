package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/lorenawear/loja/internal/domain"
)

type CatalogUC struct {
	Catalog domain.CatalogAPI
}

func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Catalog.ListProducts(ctx, f)
}

func (uc *CatalogUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("id vacío")
	}
	return uc.Catalog.GetProduct(ctx, id)
}

func (uc *CatalogUC) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, errors.New("búsqueda vacía")
	}
	return uc.List(ctx, domain.ProductFilter{Query: q})
}

func (uc *CatalogUC) Categories(ctx context.Context) ([]string, error) {
	return uc.Catalog.Categories(ctx)
}

func (uc *CatalogUC) Brands(ctx context.Context) ([]string, error) {
	return uc.Catalog.Brands(ctx)
}

func (uc *CatalogUC) Filters(ctx context.Context) (*domain.ProductFilters, error) {
	return uc.Catalog.ProductFilters(ctx)
}

func (uc *CatalogUC) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, errors.New("id vacío")
	}
	return uc.Catalog.ListReviews(ctx, productID)
}

func (uc *CatalogUC) AddReview(ctx context.Context, r domain.Review) error {
	if r.ProductID == "" {
		return errors.New("id vacío")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating fuera de rango")
	}
	return uc.Catalog.CreateReview(ctx, r)
}
