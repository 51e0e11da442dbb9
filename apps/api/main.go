package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trelixedu/trelix/api/echo"
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
	logsvc "github.com/trelixedu/trelix/services/logger"
	"github.com/trelixedu/trelix/storage/triplestore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	storeLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	storeLogger.Enable(!conf.Debug)

	// set up the triplestore client & repos
	client := triplestore.NewClient(conf.Store, storeLogger)
	ns := conf.Store.Namespace

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : env %q", conf.Env))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:    conf.Address(),
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			PersonSvc:     person.NewService(triplestore.NewPersonRepository(client, ns), mailSvc, conf),
			ActivitySvc:   activity.NewService(triplestore.NewActivityRepository(client, ns)),
			EventSvc:      event.NewService(triplestore.NewEventRepository(client, ns)),
			GoalSvc:       goal.NewService(triplestore.NewGoalRepository(client, ns)),
			QuizSvc:       quiz.NewService(triplestore.NewQuizRepository(client, ns)),
			ExamSvc:       exam.NewService(triplestore.NewExamRepository(client, ns)),
			CourseSvc:     course.NewService(triplestore.NewCourseRepository(client, ns)),
			ProductSvc:    product.NewService(triplestore.NewProductRepository(client, ns)),
			PreferenceSvc: preference.NewService(triplestore.NewPreferenceRepository(client, ns)),
		},
	)

	go server.Start()
	logger.Info(fmt.Sprintf("API listening on %q", conf.Address()))

	// =========================================================================
	// Shutdown

	sig := <-server.ShutdownSignal()
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
