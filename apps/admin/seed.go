package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core/activity"
	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/person"
)

const (
	seedInstructorName     = "trelix"
	seedInstructorEmail    = "trelix@trelix.com"
	seedInstructorPassword = "trelix"
)

func seedDate(value string) time.Time {
	t, _ := time.Parse("2006-01-02T15:04:05", value)
	return t
}

func intPtr(i int) *int { return &i }

var seedActivities = []activity.NewActivity{
	{
		Name:        "Angular Routing Task",
		Description: "Implement complex nested routes and lazy loading modules in an Angular project. Analyze navigation efficiency.",
		Duration:    intPtr(90),
		StartDate:   seedDate("2025-11-05T08:30:00"),
		EndDate:     seedDate("2025-11-07T15:00:00"),
		Status:      activity.StatusActive,
		Type:        "Course Assignment",
	},
	{
		Name:        "Laravel Eloquent Relationships",
		Description: "Design and test various Eloquent model relationships (one-to-many, many-to-many, polymorphic) for a blog app.",
		Duration:    intPtr(180),
		StartDate:   seedDate("2025-11-08T10:00:00"),
		EndDate:     seedDate("2025-11-09T17:00:00"),
		Status:      activity.StatusActive,
		Type:        "Workshop",
	},
	{
		Name:        "English Debate Preparation",
		Description: "Prepare arguments and counter-arguments for a debate on artificial intelligence in education.",
		Duration:    intPtr(25),
		StartDate:   seedDate("2025-11-10T14:00:00"),
		EndDate:     seedDate("2025-11-10T16:30:00"),
		Status:      activity.StatusPending,
		Type:        "Assignment",
	},
	{
		Name:        "Business Model Canvas Analysis",
		Description: "Break down and assess a startup idea using the Business Model Canvas. Present key components in a team meeting.",
		Duration:    intPtr(25),
		StartDate:   seedDate("2025-11-12T09:00:00"),
		EndDate:     seedDate("2025-11-12T12:00:00"),
		Status:      activity.StatusPending,
		Type:        "Business Exercise",
	},
	{
		Name:        "Public Speaking Practice",
		Description: "Deliver a three-minute speech on sustainable development to improve public speaking skills.",
		Duration:    intPtr(25),
		StartDate:   seedDate("2025-11-18T09:00:00"),
		EndDate:     seedDate("2025-11-18T10:00:00"),
		Status:      activity.StatusActive,
		Type:        "Soft Skills Exercise",
	},
	{
		Name:        "Python Pandas Data Cleaning",
		Description: "Clean and preprocess raw survey data using Python Pandas. Document transformations and challenges.",
		Duration:    intPtr(60),
		StartDate:   seedDate("2025-11-19T13:30:00"),
		EndDate:     seedDate("2025-11-20T18:00:00"),
		Status:      activity.StatusActive,
		Type:        "Lab Task",
	},
}

// seed ensures the default instructor exists and loads the sample activities.
// Activities already present (matched by name) are left alone, so the command
// can be re-run safely.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	instructor, err := cli.seedInstructor(ctx)
	if err != nil {
		return errors.Wrap(err, "seeding instructor")
	}

	existing, err := cli.activityRepo.FilterActivities(ctx, activity.QueryFilter{})
	if err != nil {
		return errors.Wrap(err, "listing activities")
	}
	existingNames := make(map[string]bool, len(existing))
	for _, a := range existing {
		existingNames[a.Name] = true
	}

	var created, skipped int
	for _, na := range seedActivities {
		if existingNames[na.Name] {
			skipped++
			continue
		}
		na.InstructorIRI = instructor.IRI
		iri, err := cli.activityRepo.CreateActivity(ctx, na)
		if err != nil {
			return errors.Wrapf(err, "creating activity %q", na.Name)
		}
		logger.Printf("activity created: %s (%s)", na.Name, iri)
		created++
	}

	logger.Printf("seed done: %d activities created, %d skipped", created, skipped)
	logger.Printf("you can now sign in as %s", seedInstructorEmail)
	return nil
}

func (cli *commandLine) seedInstructor(ctx context.Context) (person.Person, error) {
	p, err := cli.personRepo.GetPersonByEmail(ctx, seedInstructorEmail)
	if err == nil {
		logger.Printf("instructor already exists: %s", p.IRI)
		return p, nil
	}
	if errors.Cause(err) != person.ErrNotFound {
		return person.Person{}, err
	}

	roleIRI, err := cli.resolveRole(ctx, auth.RoleInstructor)
	if err != nil {
		return person.Person{}, err
	}

	p = person.Person{
		Name:    seedInstructorName,
		Email:   seedInstructorEmail,
		RoleIRI: roleIRI,
	}
	if err = p.SetPassword(seedInstructorPassword); err != nil {
		return person.Person{}, err
	}
	if p, err = cli.personRepo.CreatePerson(ctx, p); err != nil {
		return person.Person{}, err
	}
	logger.Printf("instructor created: %s", p.IRI)
	return p, nil
}
