package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/product"
)

type productRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewProductRepository(client *Client, ns string) product.Repository {
	return &productRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Product",
			Fields: []Field{
				{Name: "packName", Predicate: ns + "packName", Kind: String, Required: true},
				{Name: "description", Predicate: ns + "packDescription", Kind: String},
				{Name: "monetaryValue", Predicate: ns + "monetaryValue", Kind: String},
			},
		},
	}
}

func (repo *productRepository) decode(iri string, row Row) product.Product {
	return product.Product{
		IRI:           iri,
		PackName:      row.String("packName"),
		Description:   row.String("description"),
		MonetaryValue: row.String("monetaryValue"),
	}
}

func (repo *productRepository) QueryAllProducts(ctx context.Context) ([]product.Product, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "packName"))
	if err != nil {
		return nil, err
	}
	products := make([]product.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, repo.decode(row.IRI("uri"), row))
	}
	return products, nil
}

func (repo *productRepository) GetProductByIRI(ctx context.Context, iri string) (product.Product, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return product.Product{}, product.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return product.Product{}, err
	}
	if len(rows) == 0 {
		return product.Product{}, product.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *productRepository) CreateProduct(ctx context.Context, np product.NewProduct) (string, error) {
	iri := MintIRI(repo.ns, np.PackName)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"packName":      np.PackName,
		"description":   np.Description,
		"monetaryValue": np.MonetaryValue,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *productRepository) UpdateProduct(ctx context.Context, iri string, up product.UpdateProduct) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{
		"packName":      up.PackName,
		"description":   up.Description,
		"monetaryValue": up.MonetaryValue,
	})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *productRepository) DeleteProduct(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
