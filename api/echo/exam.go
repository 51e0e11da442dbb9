package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/exam"
)

type examAPI struct {
	opts *Options
	ns   string
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := examAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	eg := g.Group("/exams")

	// un-authed endpoints
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)

	// authed endpoints
	mg := eg.Group("", jwt)
	mg.POST("", api.create, creatorMiddleware())
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api examAPI) iri(id string) string { return api.ns + id }

func (api *examAPI) query(ctx echo.Context) error {
	exams, err := api.opts.ExamSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []exam.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examAPI) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.CreatorIRI = id.IRI

	e, err := api.opts.ExamSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *examAPI) retrieve(ctx echo.Context) error {
	e, err := api.opts.ExamSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding exam by IRI")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *examAPI) update(ctx echo.Context) error {
	e, err := api.opts.ExamSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding exam by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(e.CreatorIRI) {
		return errHTTPForbidden
	}

	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	e, err = api.opts.ExamSvc.Update(ctx.Request().Context(), e.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *examAPI) destroy(ctx echo.Context) error {
	e, err := api.opts.ExamSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding exam by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(e.CreatorIRI) {
		return errHTTPForbidden
	}

	if err := api.opts.ExamSvc.Delete(ctx.Request().Context(), e.IRI); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}
