package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/activity"
	"github.com/trelixedu/trelix/core/course"
	"github.com/trelixedu/trelix/core/event"
	"github.com/trelixedu/trelix/core/exam"
	"github.com/trelixedu/trelix/core/goal"
	"github.com/trelixedu/trelix/core/person"
	"github.com/trelixedu/trelix/core/preference"
	"github.com/trelixedu/trelix/core/product"
	"github.com/trelixedu/trelix/core/quiz"
	"github.com/trelixedu/trelix/storage/triplestore"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "person not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHTTPNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errStoreUnavailable     = echo.NewHTTPError(http.StatusBadGateway, "storage backend unavailable")
)

func isNotFound(err error) bool {
	switch errors.Cause(err) {
	case person.ErrNotFound, activity.ErrNotFound, event.ErrNotFound, goal.ErrNotFound,
		quiz.ErrNotFound, exam.ErrNotFound, course.ErrNotFound, product.ErrNotFound,
		preference.ErrNotFound:
		return true
	}
	return false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to handle our errors. signalShutdown is called in order to gracefully
// shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if isNotFound(err) {
			err = errHTTPNotFound
		} else if errors.Is(err, triplestore.ErrUnavailable) {
			err = errStoreUnavailable
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var p person.Person
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				p.IRI = claims.Subject
				p.Name = claims.Name
				p.Email = claims.Email
			}
			logger.Error(msg, errors.Wrap(err, msg), p)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
