package quiz

import (
	"context"
	"sort"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("quiz not found")

type (
	Repository interface {
		QueryAllQuizzes(ctx context.Context) ([]Quiz, error)
		GetQuizByIRI(ctx context.Context, iri string) (Quiz, error)
		CreateQuiz(ctx context.Context, nq NewQuiz) (string, error)
		UpdateQuiz(ctx context.Context, iri string, uq UpdateQuiz) error
		DeleteQuiz(ctx context.Context, iri string) error

		CreateScore(ctx context.Context, quizIRI string, ns NewScore) (string, error)
		QueryScores(ctx context.Context, quizIRI string) ([]Score, error)
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Quiz, error)
		GetByIRI(ctx context.Context, iri string) (Quiz, error)
		Create(ctx context.Context, nq NewQuiz) (Quiz, error)
		Update(ctx context.Context, iri string, uq UpdateQuiz) (Quiz, error)
		Delete(ctx context.Context, iri string) error

		RecordScore(ctx context.Context, quizIRI string, ns NewScore) error
		// Leaderboard returns the quiz's scores ordered by points descending.
		Leaderboard(ctx context.Context, quizIRI string) ([]Score, error)
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Quiz, error) {
	return svc.repo.QueryAllQuizzes(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Quiz, error) {
	return svc.repo.GetQuizByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, nq NewQuiz) (Quiz, error) {
	iri, err := svc.repo.CreateQuiz(ctx, nq)
	if err != nil {
		return Quiz{}, err
	}
	return svc.repo.GetQuizByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, uq UpdateQuiz) (Quiz, error) {
	if err := svc.repo.UpdateQuiz(ctx, iri, uq); err != nil {
		return Quiz{}, err
	}
	return svc.repo.GetQuizByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteQuiz(ctx, iri)
}

func (svc *service) RecordScore(ctx context.Context, quizIRI string, ns NewScore) error {
	if _, err := svc.repo.GetQuizByIRI(ctx, quizIRI); err != nil {
		return err
	}
	_, err := svc.repo.CreateScore(ctx, quizIRI, ns)
	return err
}

func (svc *service) Leaderboard(ctx context.Context, quizIRI string) ([]Score, error) {
	scores, err := svc.repo.QueryScores(ctx, quizIRI)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Points > scores[j].Points })
	return scores, nil
}
