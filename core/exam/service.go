package exam

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("exam not found")

type (
	Repository interface {
		QueryAllExams(ctx context.Context) ([]Exam, error)
		GetExamByIRI(ctx context.Context, iri string) (Exam, error)
		CreateExam(ctx context.Context, e Exam) (string, error)
		// UpsertExam deletes the exam's prior triples and rewrites the full
		// set in one statement.
		UpsertExam(ctx context.Context, e Exam) error
		DeleteExam(ctx context.Context, iri string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Exam, error)
		GetByIRI(ctx context.Context, iri string) (Exam, error)
		Create(ctx context.Context, ne NewExam) (Exam, error)
		Update(ctx context.Context, iri string, ue UpdateExam) (Exam, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Exam, error) {
	return svc.repo.QueryAllExams(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Exam, error) {
	return svc.repo.GetExamByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	e := Exam{
		Name:        ne.Name,
		Description: ne.Description,
		MaxGrade:    ne.MaxGrade,
		ExamDate:    ne.ExamDate,
		Badge:       BadgeForGrade(ne.MaxGrade),
		CreatorIRI:  ne.CreatorIRI,
	}
	iri, err := svc.repo.CreateExam(ctx, e)
	if err != nil {
		return Exam{}, err
	}
	return svc.repo.GetExamByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, ue UpdateExam) (Exam, error) {
	curr, err := svc.repo.GetExamByIRI(ctx, iri)
	if err != nil {
		return Exam{}, err
	}
	e := Exam{
		IRI:         iri,
		Name:        ue.Name,
		Description: ue.Description,
		MaxGrade:    ue.MaxGrade,
		ExamDate:    ue.ExamDate,
		Badge:       BadgeForGrade(ue.MaxGrade),
		CreatorIRI:  curr.CreatorIRI,
	}
	if err := svc.repo.UpsertExam(ctx, e); err != nil {
		return Exam{}, err
	}
	return svc.repo.GetExamByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteExam(ctx, iri)
}
