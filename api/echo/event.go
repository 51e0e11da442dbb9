package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/event"
)

type eventAPI struct {
	opts *Options
	ns   string
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := eventAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	eg := g.Group("/events")

	// un-authed endpoints
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)

	// authed endpoints
	mg := eg.Group("", jwt)
	mg.POST("", api.create, creatorMiddleware())
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api eventAPI) iri(id string) string { return api.ns + id }

func (api *eventAPI) query(ctx echo.Context) error {
	events, err := api.opts.EventSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventAPI) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.CreatorIRI = id.IRI

	e, err := api.opts.EventSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *eventAPI) retrieve(ctx echo.Context) error {
	e, err := api.opts.EventSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding event by IRI")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventAPI) update(ctx echo.Context) error {
	e, err := api.opts.EventSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding event by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(e.CreatorIRI) {
		return errHTTPForbidden
	}

	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	e, err = api.opts.EventSvc.Update(ctx.Request().Context(), e.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventAPI) destroy(ctx echo.Context) error {
	e, err := api.opts.EventSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding event by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(e.CreatorIRI) {
		return errHTTPForbidden
	}

	if err := api.opts.EventSvc.Delete(ctx.Request().Context(), e.IRI); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
