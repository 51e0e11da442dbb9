package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/product"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) product.Repository {
	return &productRepository{db: db}
}

func (repo *productRepository) QueryAllProducts(ctx context.Context) ([]product.Product, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	products := make([]product.Product, 0, len(repo.db.products))
	for _, p := range repo.db.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].PackName < products[j].PackName })
	return products, nil
}

func (repo *productRepository) GetProductByIRI(ctx context.Context, iri string) (product.Product, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if p, ok := repo.db.products[iri]; ok {
		return *p, nil
	}
	return product.Product{}, product.ErrNotFound
}

func (repo *productRepository) CreateProduct(ctx context.Context, np product.NewProduct) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p := product.Product{
		IRI:           repo.db.mint("product"),
		PackName:      np.PackName,
		Description:   np.Description,
		MonetaryValue: np.MonetaryValue,
	}
	repo.db.products[p.IRI] = &p
	return p.IRI, nil
}

func (repo *productRepository) UpdateProduct(ctx context.Context, iri string, up product.UpdateProduct) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p, ok := repo.db.products[iri]
	if !ok {
		return product.ErrNotFound
	}
	if up.PackName != "" {
		p.PackName = up.PackName
	}
	if up.Description != "" {
		p.Description = up.Description
	}
	if up.MonetaryValue != "" {
		p.MonetaryValue = up.MonetaryValue
	}
	return nil
}

func (repo *productRepository) DeleteProduct(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.products, iri)
	return nil
}
