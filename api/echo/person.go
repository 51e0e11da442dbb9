package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/person"
)

var (
	errPersonNotFoundInCtx = errors.New("person object not found in echo.Context")
	errNoPermsToSetRole    = "not enough rights to set this role"
)

type personAPI struct {
	opts *Options
	ns   string
}

func registerPersonAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := personAPI{opts: opts, ns: opts.Conf.Store.Namespace}

	pg := g.Group("/persons")

	// un-authed endpoints
	pg.POST("/signup", api.signUp)
	pg.POST("/signin", api.signIn)
	pg.GET("/roles", api.queryRoles)

	// authed endpoints
	ag := pg.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("", api.query, adminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id", api.selfOrAdminMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// iri expands the path identifier into a full resource IRI.
func (api personAPI) iri(id string) string { return api.ns + id }

// Handlers

func (api *personAPI) signUp(ctx echo.Context) error {
	var data person.NewPerson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPerson")
	}
	if err := data.Validate(ctx.Request().Context(), api.opts.Validate, api.opts.PersonSvc); err != nil {
		return err
	}
	// open sign-up never grants the administrator role
	if strings.Contains(strings.ToLower(data.RoleIRI), auth.RoleAdministrator) {
		return core.NewValidationError(nil, core.FieldError{Field: "role_iri", Error: errNoPermsToSetRole})
	}

	p, err := api.opts.PersonSvc.SignUp(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing up")
	}

	token, err := GenerateToken(api.opts.Conf, GetPersonClaims(api.opts.Conf, p))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, PersonResponse{Person: p, Token: token})
}

func (api *personAPI) signIn(ctx echo.Context) error {
	var data person.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx, data, api.opts.Conf, api.opts.PersonSvc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(api.opts.Conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *personAPI) queryRoles(ctx echo.Context) error {
	roles, err := api.opts.PersonSvc.AvailableRoles(ctx.Request().Context(), true /* excludeAdministrator */)
	if err != nil {
		return errors.Wrap(err, "querying roles")
	}
	if roles == nil {
		roles = []person.Role{}
	}
	return ctx.JSON(http.StatusOK, roles)
}

func (api *personAPI) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.opts.Conf, api.opts.PersonSvc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *personAPI) query(ctx echo.Context) error {
	persons, err := api.opts.PersonSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying persons")
	}
	if persons == nil {
		persons = []person.Person{}
	}
	return ctx.JSON(http.StatusOK, persons)
}

func (api *personAPI) retrieve(ctx echo.Context) error {
	p, ok := ctx.Get("object").(person.Person)
	if !ok {
		return errors.Wrap(errPersonNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *personAPI) update(ctx echo.Context) error {
	p, ok := ctx.Get("object").(person.Person)
	if !ok {
		return errors.Wrap(errPersonNotFoundInCtx, "retrieving object from context")
	}

	var data person.UpdatePerson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePerson")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	// the role can only be changed by an admin
	if data.RoleIRI != "" && !id.IsAdmin() {
		return errHTTPForbidden
	}

	if err := data.Validate(ctx.Request().Context(), p, api.opts.Validate, api.opts.PersonSvc); err != nil {
		return err
	}

	p, err = api.opts.PersonSvc.Update(ctx.Request().Context(), p.IRI, data)
	if err != nil {
		return errors.Wrap(err, "updating person")
	}

	// a self-edit stales the claims; hand back a fresh token
	resp := PersonResponse{Person: p}
	if id.IRI == p.IRI {
		token, err := GenerateToken(api.opts.Conf, GetPersonClaims(api.opts.Conf, p))
		if err != nil {
			return errors.Wrap(err, "generating token")
		}
		resp.Token = token
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *personAPI) destroy(ctx echo.Context) error {
	p, ok := ctx.Get("object").(person.Person)
	if !ok {
		return errors.Wrap(errPersonNotFoundInCtx, "retrieving object from context")
	}

	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if !id.CanDeletePerson(p.IRI) {
		return errHTTPForbidden
	}

	if err := api.opts.PersonSvc.Delete(ctx.Request().Context(), p.IRI); err != nil {
		return errors.Wrap(err, "deleting person")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// selfOrAdminMiddleware resolves the target person and only lets the person
// themselves or an Administrator reach the detail handlers. Anyone else gets
// a 404, not a 403: they must not learn the resource exists.
func (api *personAPI) selfOrAdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := getContextIdentity(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context identity")
			}

			iri := api.iri(ctx.Param("id"))
			if iri == id.IRI || id.IsAdmin() {
				if p, err := api.opts.PersonSvc.GetByIRI(ctx.Request().Context(), iri); err == nil {
					ctx.Set("object", p)
					return next(ctx)
				} else if errors.Cause(err) != person.ErrNotFound {
					return errors.Wrap(err, "finding person by IRI")
				}
			}
			return errHTTPNotFound
		}
	}
}

type (
	TokenResponse struct {
		Token string `json:"token"`
	}

	PersonResponse struct {
		person.Person
		Token string `json:"token,omitempty"`
	}
)
