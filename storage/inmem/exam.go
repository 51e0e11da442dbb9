package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/exam"
)

type examRepository struct {
	db *DB
}

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) QueryAllExams(ctx context.Context) ([]exam.Exam, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	exams := make([]exam.Exam, 0, len(repo.db.exams))
	for _, e := range repo.db.exams {
		exams = append(exams, *e)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].ExamDate < exams[j].ExamDate })
	return exams, nil
}

func (repo *examRepository) GetExamByIRI(ctx context.Context, iri string) (exam.Exam, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if e, ok := repo.db.exams[iri]; ok {
		return *e, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) CreateExam(ctx context.Context, e exam.Exam) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e.IRI = repo.db.mint("exam")
	repo.db.exams[e.IRI] = &e
	return e.IRI, nil
}

// UpsertExam replaces the whole stored exam, matching the triplestore's
// delete-then-rewrite behavior.
func (repo *examRepository) UpsertExam(ctx context.Context, e exam.Exam) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.exams[e.IRI]; !ok {
		return exam.ErrNotFound
	}
	repo.db.exams[e.IRI] = &e
	return nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.exams, iri)
	return nil
}
