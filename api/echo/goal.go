package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/goal"
)

type goalAPI struct {
	opts *Options
	ns   string
}

func registerGoalAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := goalAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	gg := g.Group("/goals")

	// un-authed endpoints
	gg.GET("", api.query)
	gg.GET("/:id", api.retrieve)

	// authed endpoints
	mg := gg.Group("", jwt)
	mg.POST("", api.create)
	mg.PUT("/:id", api.update)
	mg.PUT("/:id/toggle", api.toggle)
	mg.DELETE("/:id", api.destroy)
}

func (api goalAPI) iri(id string) string { return api.ns + id }

func (api *goalAPI) query(ctx echo.Context) error {
	goals, err := api.opts.GoalSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying goals")
	}
	if goals == nil {
		goals = []goal.Goal{}
	}
	return ctx.JSON(http.StatusOK, goals)
}

func (api *goalAPI) create(ctx echo.Context) error {
	var data goal.NewGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	g, err := api.opts.GoalSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating goal")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *goalAPI) retrieve(ctx echo.Context) error {
	g, err := api.opts.GoalSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding goal by IRI")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalAPI) update(ctx echo.Context) error {
	var data goal.UpdateGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGoal")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	g, err := api.opts.GoalSvc.Update(ctx.Request().Context(), api.iri(ctx.Param("id")), data)
	if err != nil {
		return errors.Wrap(err, "updating goal")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalAPI) toggle(ctx echo.Context) error {
	g, err := api.opts.GoalSvc.ToggleCompleted(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "toggling goal")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalAPI) destroy(ctx echo.Context) error {
	if err := api.opts.GoalSvc.Delete(ctx.Request().Context(), api.iri(ctx.Param("id"))); err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	return ctx.NoContent(http.StatusNoContent)
}
