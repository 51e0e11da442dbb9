package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/quiz"
)

type quizAPI struct {
	opts *Options
	ns   string
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := quizAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	qg := g.Group("/quizzes")

	// un-authed endpoints
	qg.GET("", api.query)
	qg.GET("/:id", api.retrieve)
	qg.GET("/:id/leaderboard", api.leaderboard)

	// authed endpoints
	mg := qg.Group("", jwt)
	mg.POST("", api.create, creatorMiddleware())
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
	mg.POST("/:id/scores", api.recordScore)
}

func (api quizAPI) iri(id string) string { return api.ns + id }

func (api *quizAPI) query(ctx echo.Context) error {
	quizzes, err := api.opts.QuizSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *quizAPI) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.CreatorIRI = id.IRI

	q, err := api.opts.QuizSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizAPI) retrieve(ctx echo.Context) error {
	q, err := api.opts.QuizSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding quiz by IRI")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizAPI) update(ctx echo.Context) error {
	q, err := api.opts.QuizSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding quiz by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(q.CreatorIRI) {
		return errHTTPForbidden
	}

	var data quiz.UpdateQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuiz")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	q, err = api.opts.QuizSvc.Update(ctx.Request().Context(), q.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating quiz")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizAPI) destroy(ctx echo.Context) error {
	q, err := api.opts.QuizSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding quiz by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(q.CreatorIRI) {
		return errHTTPForbidden
	}

	if err := api.opts.QuizSvc.Delete(ctx.Request().Context(), q.IRI); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *quizAPI) recordScore(ctx echo.Context) error {
	var data quiz.NewScore
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewScore")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	// scores are always recorded for the acting person
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.PersonIRI = id.IRI

	if err := api.opts.QuizSvc.RecordScore(ctx.Request().Context(), api.iri(ctx.Param("id")), data); err != nil {
		return errors.Wrap(err, "recording score")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *quizAPI) leaderboard(ctx echo.Context) error {
	scores, err := api.opts.QuizSvc.Leaderboard(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "querying leaderboard")
	}
	if scores == nil {
		scores = []quiz.Score{}
	}
	return ctx.JSON(http.StatusOK, scores)
}
