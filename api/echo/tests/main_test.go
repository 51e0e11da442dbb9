package tests

import (
	"io/ioutil"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/trelixedu/trelix/api/echo"
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
	emailsvc "github.com/trelixedu/trelix/services/email"
	"github.com/trelixedu/trelix/storage/inmem"
)

var (
	conf *core.Config
	db   *inmem.DB
	app  Server

	personRepo     person.Repository
	activityRepo   activity.Repository
	eventRepo      event.Repository
	goalRepo       goal.Repository
	quizRepo       quiz.Repository
	examRepo       exam.Repository
	courseRepo     course.Repository
	productRepo    product.Repository
	preferenceRepo preference.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Trelix",
		SecretKey:        "8cb36f5e3a664d2cb103a2c0debeca44",
		DefaultFromEmail: "noreply@test.trelix.cd",
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Store.Namespace = inmem.Namespace

	// set up DB & repos
	db = inmem.NewDB()
	personRepo = inmem.NewPersonRepository(db)
	activityRepo = inmem.NewActivityRepository(db)
	eventRepo = inmem.NewEventRepository(db)
	goalRepo = inmem.NewGoalRepository(db)
	quizRepo = inmem.NewQuizRepository(db)
	examRepo = inmem.NewExamRepository(db)
	courseRepo = inmem.NewCourseRepository(db)
	productRepo = inmem.NewProductRepository(db)
	preferenceRepo = inmem.NewPreferenceRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	logger := core.NewStdLogger(log.New(ioutil.Discard, "", 0))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up server
	app = NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,

			PersonSvc:     person.NewService(personRepo, mailSvc, conf),
			ActivitySvc:   activity.NewService(activityRepo),
			EventSvc:      event.NewService(eventRepo),
			GoalSvc:       goal.NewService(goalRepo),
			QuizSvc:       quiz.NewService(quizRepo),
			ExamSvc:       exam.NewService(examRepo),
			CourseSvc:     course.NewService(courseRepo),
			ProductSvc:    product.NewService(productRepo),
			PreferenceSvc: preference.NewService(preferenceRepo),
		},
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
