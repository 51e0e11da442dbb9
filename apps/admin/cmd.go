package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trelixedu/trelix/core/activity"
	"github.com/trelixedu/trelix/core/person"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	personRepo   person.Repository
	activityRepo activity.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addperson -email EMAIL -name NAME [-role ROLE] - create or update a person; the password is prompted next")
	fmt.Println("  seed - populate the store with a default instructor and sample activities")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addPersonCmd := flag.NewFlagSet("addperson", flag.ExitOnError)
	addPersonEmail := addPersonCmd.String("email", "", "The person's email address.")
	addPersonName := addPersonCmd.String("name", "", "The person's full name.")
	addPersonRole := addPersonCmd.String("role", "", "Role label: administrator, instructor or student.")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)

	switch args[1] {
	case "addperson":
		if err := addPersonCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addPersonEmail == "" || *addPersonName == "" {
			addPersonCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addPersonCmd.Usage()
			return errHelp
		}
		return cli.addPerson(*addPersonName, *addPersonEmail, string(pwd), *addPersonRole)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}
