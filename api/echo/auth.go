package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/person"
)

const contextTokenKey = "personToken"

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT. They
// carry the whole acting identity, so authorization checks never re-read the
// store.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	RoleIRI      string `json:"role_iri,omitempty"`
	RoleLabel    string `json:"role_label,omitempty"`
}

// Identity resolves the claims into the caller context used by every
// capability check.
func (c Claims) Identity() auth.Identity {
	return auth.Identity{
		IRI:       c.Subject,
		Name:      c.Name,
		Email:     c.Email,
		RoleIRI:   c.RoleIRI,
		RoleLabel: c.RoleLabel,
	}
}

func GetPersonClaims(conf *core.Config, p person.Person, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	id := p.Identity()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   p.IRI,
			Audience:  "Trelix",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         id.Name,
		Email:        id.Email,
		RoleIRI:      id.RoleIRI,
		RoleLabel:    id.RoleLabel,
	}
}

// GenerateToken generates a signed JWT token string representing the person's
// Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func authenticate(ctx echo.Context, creds person.Credentials, conf *core.Config, svc person.Service) (*Claims, error) {
	p, err := svc.SignIn(ctx.Request().Context(), creds)
	if err != nil {
		if errors.Cause(err) == person.ErrInvalidCredentials {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "signing in")
	}
	return GetPersonClaims(conf, p), nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextIdentity resolves the acting identity from the request's claims.
func getContextIdentity(ctx echo.Context) (auth.Identity, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return auth.Anonymous, err
	}
	return claims.Identity(), nil
}

func refreshToken(ctx echo.Context, conf *core.Config, svc person.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// the person must still exist; the fresh read also picks up role changes
	p, err := svc.GetByIRI(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return "", errors.Wrap(err, "finding person by IRI")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetPersonClaims(conf, p, claims.OrigIssuedAt)
	token, err := GenerateToken(conf, newClaims)
	return token, errors.Wrap(err, "generating token")
}
