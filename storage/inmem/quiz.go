package inmem

import (
	"context"
	"sort"

	quizzes "github.com/trelixedu/trelix/core/quiz"
)

type quizRepository struct {
	db *DB
}

func NewQuizRepository(db *DB) quizzes.Repository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) QueryAllQuizzes(ctx context.Context) ([]quizzes.Quiz, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := make([]quizzes.Quiz, 0, len(repo.db.quizzes))
	for _, q := range repo.db.quizzes {
		all = append(all, *q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}

func (repo *quizRepository) GetQuizByIRI(ctx context.Context, iri string) (quizzes.Quiz, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if q, ok := repo.db.quizzes[iri]; ok {
		return *q, nil
	}
	return quizzes.Quiz{}, quizzes.ErrNotFound
}

func (repo *quizRepository) CreateQuiz(ctx context.Context, nq quizzes.NewQuiz) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	q := quizzes.Quiz{
		IRI:        repo.db.mint("quiz"),
		Title:      nq.Title,
		CreatorIRI: nq.CreatorIRI,
	}
	repo.db.quizzes[q.IRI] = &q
	return q.IRI, nil
}

func (repo *quizRepository) UpdateQuiz(ctx context.Context, iri string, uq quizzes.UpdateQuiz) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	q, ok := repo.db.quizzes[iri]
	if !ok {
		return quizzes.ErrNotFound
	}
	if uq.Title != "" {
		q.Title = uq.Title
	}
	return nil
}

func (repo *quizRepository) DeleteQuiz(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.quizzes, iri)
	return nil
}

func (repo *quizRepository) CreateScore(ctx context.Context, quizIRI string, ns quizzes.NewScore) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s := quizzes.Score{
		IRI:       repo.db.mint("score"),
		QuizIRI:   quizIRI,
		PersonIRI: ns.PersonIRI,
		Points:    ns.Points,
	}
	repo.db.scores[s.IRI] = &s
	return s.IRI, nil
}

func (repo *quizRepository) QueryScores(ctx context.Context, quizIRI string) ([]quizzes.Score, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var scores []quizzes.Score
	for _, s := range repo.db.scores {
		if s.QuizIRI != quizIRI {
			continue
		}
		sc := *s
		if p, ok := repo.db.persons[sc.PersonIRI]; ok {
			sc.PersonName = p.Name
		}
		scores = append(scores, sc)
	}
	return scores, nil
}
