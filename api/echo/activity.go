package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/activity"
)

type activityAPI struct {
	opts *Options
	ns   string
}

func registerActivityAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := activityAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	ag := g.Group("/activities")

	// un-authed endpoints
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)

	// authed endpoints
	mg := ag.Group("", jwt)
	mg.POST("", api.create, creatorMiddleware())
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api activityAPI) iri(id string) string { return api.ns + id }

func (api *activityAPI) query(ctx echo.Context) error {
	filter := new(activity.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	activities, err := api.opts.ActivitySvc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying activities")
	}
	if activities == nil {
		activities = []activity.Activity{}
	}
	return ctx.JSON(http.StatusOK, activities)
}

func (api *activityAPI) create(ctx echo.Context) error {
	var data activity.NewActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewActivity")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	// the creator is always the instructor on record
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.InstructorIRI = id.IRI
	if data.Status == "" {
		data.Status = activity.StatusActive
	}

	a, err := api.opts.ActivitySvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *activityAPI) retrieve(ctx echo.Context) error {
	a, err := api.opts.ActivitySvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding activity by IRI")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *activityAPI) update(ctx echo.Context) error {
	a, err := api.opts.ActivitySvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding activity by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(a.InstructorIRI) {
		return errHTTPForbidden
	}

	var data activity.UpdateActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateActivity")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}
	// reassigning the instructor is an admin move
	if data.InstructorIRI != "" && !id.IsAdmin() {
		return errHTTPForbidden
	}

	a, err = api.opts.ActivitySvc.Update(ctx.Request().Context(), a.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating activity")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *activityAPI) destroy(ctx echo.Context) error {
	a, err := api.opts.ActivitySvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding activity by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(a.InstructorIRI) {
		return errHTTPForbidden
	}

	if err := api.opts.ActivitySvc.Delete(ctx.Request().Context(), a.IRI); err != nil {
		return errors.Wrap(err, "deleting activity")
	}
	return ctx.NoContent(http.StatusNoContent)
}
