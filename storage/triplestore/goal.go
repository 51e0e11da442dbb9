package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/goal"
)

type goalRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewGoalRepository(client *Client, ns string) goal.Repository {
	return &goalRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Goal",
			Fields: []Field{
				{Name: "title", Predicate: ns + "goalTitle", Kind: String, Required: true},
				{Name: "description", Predicate: ns + "goalDescription", Kind: String},
				{Name: "date", Predicate: ns + "goalDate", Kind: String},
				{Name: "color", Predicate: ns + "goalColor", Kind: String},
				{Name: "completed", Predicate: ns + "goalCompleted", Kind: Bool},
			},
		},
	}
}

func (repo *goalRepository) decode(iri string, row Row) goal.Goal {
	return goal.Goal{
		IRI:         iri,
		Title:       row.String("title"),
		Description: row.String("description"),
		Date:        row.String("date"),
		Color:       row.String("color"),
		Completed:   row.Bool("completed"),
	}
}

func (repo *goalRepository) QueryAllGoals(ctx context.Context) ([]goal.Goal, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "date"))
	if err != nil {
		return nil, err
	}
	goals := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, repo.decode(row.IRI("uri"), row))
	}
	return goals, nil
}

func (repo *goalRepository) GetGoalByIRI(ctx context.Context, iri string) (goal.Goal, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return goal.Goal{}, goal.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return goal.Goal{}, err
	}
	if len(rows) == 0 {
		return goal.Goal{}, goal.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *goalRepository) CreateGoal(ctx context.Context, ng goal.NewGoal) (string, error) {
	iri := MintIRI(repo.ns, ng.Title)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"title":       ng.Title,
		"description": ng.Description,
		"date":        ng.Date,
		"color":       ng.Color,
		"completed":   false, // new goals always start incomplete
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *goalRepository) UpdateGoal(ctx context.Context, iri string, ug goal.UpdateGoal) error {
	changes := map[string]interface{}{
		"title":       ug.Title,
		"description": ug.Description,
		"date":        ug.Date,
		"color":       ug.Color,
	}
	// explicit false is meaningful for the completed marker; only an absent
	// pointer skips the field
	if ug.Completed != nil {
		changes["completed"] = *ug.Completed
	}
	stmt, err := repo.spec.Patch(iri, changes)
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *goalRepository) DeleteGoal(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
