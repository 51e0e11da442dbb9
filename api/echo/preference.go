package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/preference"
)

type preferenceAPI struct {
	opts *Options
	ns   string
}

func registerPreferenceAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := preferenceAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	pg := g.Group("/preferences", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
}

func (api preferenceAPI) iri(id string) string { return api.ns + id }

// query lists the acting person's preferences; admins see everyone's.
func (api *preferenceAPI) query(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	prefs, err := api.opts.PreferenceSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying preferences")
	}
	if !id.IsAdmin() {
		own := make([]preference.Preference, 0, len(prefs))
		for _, p := range prefs {
			if p.OwnerIRI == id.IRI {
				own = append(own, p)
			}
		}
		prefs = own
	}
	if prefs == nil {
		prefs = []preference.Preference{}
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *preferenceAPI) create(ctx echo.Context) error {
	var data preference.NewPreference
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPreference")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	data.OwnerIRI = id.IRI

	p, err := api.opts.PreferenceSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating preference")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *preferenceAPI) retrieve(ctx echo.Context) error {
	p, err := api.opts.PreferenceSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding preference by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(p.OwnerIRI) {
		return errHTTPNotFound
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *preferenceAPI) update(ctx echo.Context) error {
	p, err := api.opts.PreferenceSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding preference by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(p.OwnerIRI) {
		return errHTTPForbidden
	}

	var data preference.UpdatePreference
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePreference")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	p, err = api.opts.PreferenceSvc.Update(ctx.Request().Context(), p.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating preference")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *preferenceAPI) destroy(ctx echo.Context) error {
	p, err := api.opts.PreferenceSvc.GetByIRI(ctx.Request().Context(), api.iri(ctx.Param("id")))
	if err != nil {
		return errors.Wrap(err, "finding preference by IRI")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanModify(p.OwnerIRI) {
		return errHTTPForbidden
	}

	if err := api.opts.PreferenceSvc.Delete(ctx.Request().Context(), p.IRI); err != nil {
		return errors.Wrap(err, "deleting preference")
	}
	return ctx.NoContent(http.StatusNoContent)
}
