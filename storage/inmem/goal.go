package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/goal"
)

type goalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) goal.Repository {
	return &goalRepository{db: db}
}

func (repo *goalRepository) QueryAllGoals(ctx context.Context) ([]goal.Goal, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	goals := make([]goal.Goal, 0, len(repo.db.goals))
	for _, g := range repo.db.goals {
		goals = append(goals, *g)
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].Date < goals[j].Date })
	return goals, nil
}

func (repo *goalRepository) GetGoalByIRI(ctx context.Context, iri string) (goal.Goal, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if g, ok := repo.db.goals[iri]; ok {
		return *g, nil
	}
	return goal.Goal{}, goal.ErrNotFound
}

func (repo *goalRepository) CreateGoal(ctx context.Context, ng goal.NewGoal) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	g := goal.Goal{
		IRI:         repo.db.mint("goal"),
		Title:       ng.Title,
		Description: ng.Description,
		Date:        ng.Date,
		Color:       ng.Color,
		Completed:   false,
	}
	repo.db.goals[g.IRI] = &g
	return g.IRI, nil
}

func (repo *goalRepository) UpdateGoal(ctx context.Context, iri string, ug goal.UpdateGoal) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	g, ok := repo.db.goals[iri]
	if !ok {
		return goal.ErrNotFound
	}
	if ug.Title != "" {
		g.Title = ug.Title
	}
	if ug.Description != "" {
		g.Description = ug.Description
	}
	if ug.Date != "" {
		g.Date = ug.Date
	}
	if ug.Color != "" {
		g.Color = ug.Color
	}
	if ug.Completed != nil {
		g.Completed = *ug.Completed
	}
	return nil
}

func (repo *goalRepository) DeleteGoal(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.goals, iri)
	return nil
}
