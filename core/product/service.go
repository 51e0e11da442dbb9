package product

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("product not found")

type (
	Repository interface {
		QueryAllProducts(ctx context.Context) ([]Product, error)
		GetProductByIRI(ctx context.Context, iri string) (Product, error)
		CreateProduct(ctx context.Context, np NewProduct) (string, error)
		UpdateProduct(ctx context.Context, iri string, up UpdateProduct) error
		DeleteProduct(ctx context.Context, iri string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Product, error)
		GetByIRI(ctx context.Context, iri string) (Product, error)
		Create(ctx context.Context, np NewProduct) (Product, error)
		Update(ctx context.Context, iri string, up UpdateProduct) (Product, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Product, error) {
	return svc.repo.QueryAllProducts(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Product, error) {
	return svc.repo.GetProductByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, np NewProduct) (Product, error) {
	iri, err := svc.repo.CreateProduct(ctx, np)
	if err != nil {
		return Product{}, err
	}
	return svc.repo.GetProductByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, up UpdateProduct) (Product, error) {
	if err := svc.repo.UpdateProduct(ctx, iri, up); err != nil {
		return Product{}, err
	}
	return svc.repo.GetProductByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteProduct(ctx, iri)
}
