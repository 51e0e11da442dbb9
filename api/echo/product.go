package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/product"
)

type productAPI struct {
	opts *Options
	ns   string
}

func registerProductAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := productAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	pg := g.Group("/products")

	// un-authed endpoints
	pg.GET("", api.query)
	pg.GET("/:id", api.retrieve)

	// authed endpoints
	mg := pg.Group("", jwt)
	mg.POST("", api.create, adminMiddleware())
	mg.PUT("/:id", api.update, adminMiddleware())
	mg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api productAPI) iri(id string) string { return api.ns + id }

func (api *productAPI) query(ctx echo.Context) error {
	products, err := api.opts.ProductSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying products")
	}
	if products == nil {
		products = []product.Product{}
	}
	return ctx.JSON(http.StatusOK, products)
}

func (api *productAPI) create(ctx echo.Context) error {
	var data product.NewProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProduct")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	p, err := api.opts.ProductSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating product")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *productAPI) retrieve(ctx echo.Context) error {
	p, err := api.opts.ProductSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding product by IRI")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *productAPI) update(ctx echo.Context) error {
	var data product.UpdateProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProduct")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	p, err := api.opts.ProductSvc.Update(ctx.Request().Context(), api.iri(ctx.Param("id")), data)
	if err != nil {
		return errors.Wrap(err, "updating product")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *productAPI) destroy(ctx echo.Context) error {
	if err := api.opts.ProductSvc.Delete(ctx.Request().Context(), api.iri(ctx.Param("id"))); err != nil {
		return errors.Wrap(err, "deleting product")
	}
	return ctx.NoContent(http.StatusNoContent)
}
