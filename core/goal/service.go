package goal

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("goal not found")

type (
	Repository interface {
		QueryAllGoals(ctx context.Context) ([]Goal, error)
		GetGoalByIRI(ctx context.Context, iri string) (Goal, error)
		CreateGoal(ctx context.Context, ng NewGoal) (string, error)
		UpdateGoal(ctx context.Context, iri string, ug UpdateGoal) error
		DeleteGoal(ctx context.Context, iri string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Goal, error)
		GetByIRI(ctx context.Context, iri string) (Goal, error)
		Create(ctx context.Context, ng NewGoal) (Goal, error)
		Update(ctx context.Context, iri string, ug UpdateGoal) (Goal, error)
		// ToggleCompleted flips the completed marker, writing an explicit
		// boolean either way.
		ToggleCompleted(ctx context.Context, iri string) (Goal, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Goal, error) {
	return svc.repo.QueryAllGoals(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Goal, error) {
	return svc.repo.GetGoalByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, ng NewGoal) (Goal, error) {
	iri, err := svc.repo.CreateGoal(ctx, ng)
	if err != nil {
		return Goal{}, err
	}
	return svc.repo.GetGoalByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, ug UpdateGoal) (Goal, error) {
	if err := svc.repo.UpdateGoal(ctx, iri, ug); err != nil {
		return Goal{}, err
	}
	return svc.repo.GetGoalByIRI(ctx, iri)
}

func (svc *service) ToggleCompleted(ctx context.Context, iri string) (Goal, error) {
	g, err := svc.repo.GetGoalByIRI(ctx, iri)
	if err != nil {
		return Goal{}, err
	}
	completed := !g.Completed
	if err := svc.repo.UpdateGoal(ctx, iri, UpdateGoal{Completed: &completed}); err != nil {
		return Goal{}, err
	}
	g.Completed = completed
	return g, nil
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteGoal(ctx, iri)
}
