package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		PersonSvc     person.Service
		ActivitySvc   activity.Service
		EventSvc      event.Service
		GoalSvc       goal.Service
		QuizSvc       quiz.Service
		ExamSvc       exam.Service
		CourseSvc     course.Service
		ProductSvc    product.Service
		PreferenceSvc preference.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		// ShutdownSignal reports OS termination signals and internal
		// shutdown requests.
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerPersonAPI(v1, jwt, s.opts)
	registerActivityAPI(v1, jwt, s.opts)
	registerEventAPI(v1, jwt, s.opts)
	registerGoalAPI(v1, jwt, s.opts)
	registerQuizAPI(v1, jwt, s.opts)
	registerExamAPI(v1, jwt, s.opts)
	registerCourseAPI(v1, jwt, s.opts)
	registerProductAPI(v1, jwt, s.opts)
	registerPreferenceAPI(v1, jwt, s.opts)
}

// signalShutdown requests a graceful stop; the main goroutine listens on the
// same channel as for SIGTERM.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.app.Logger.Error(err)
		s.signalShutdown()
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Trelix API!")
}
