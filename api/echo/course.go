package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/course"
)

type courseAPI struct {
	opts *Options
	ns   string
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := courseAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	cg := g.Group("/courses")

	// un-authed endpoints
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/content", api.content)

	// authed endpoints
	mg := cg.Group("", jwt)
	mg.POST("", api.create, creatorMiddleware())
	mg.PUT("/:id", api.update, creatorMiddleware())
	mg.DELETE("/:id", api.destroy, creatorMiddleware())
}

func (api courseAPI) iri(id string) string { return api.ns + id }

func (api *courseAPI) query(ctx echo.Context) error {
	courses, err := api.opts.CourseSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseAPI) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	c, err := api.opts.CourseSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseAPI) retrieve(ctx echo.Context) error {
	c, err := api.opts.CourseSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding course by IRI")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseAPI) content(ctx echo.Context) error {
	content, err := api.opts.CourseSvc.Content(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding course content by IRI")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"content": content})
}

func (api *courseAPI) update(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	c, err := api.opts.CourseSvc.Update(ctx.Request().Context(), api.iri(ctx.Param("id")), data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseAPI) destroy(ctx echo.Context) error {
	if err := api.opts.CourseSvc.Delete(ctx.Request().Context(), api.iri(ctx.Param("id"))); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
