package main

import (
	"log"
	"os"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/storage/triplestore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the triplestore client & repos
	client := triplestore.NewClient(conf.Store, core.NewStdLogger(logger))
	ns := conf.Store.Namespace

	// start CLI
	cli := commandLine{
		personRepo:   triplestore.NewPersonRepository(client, ns),
		activityRepo: triplestore.NewActivityRepository(client, ns),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
