package course

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByIRI(ctx context.Context, iri string) (Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (string, error)
		UpdateCourse(ctx context.Context, iri string, uc UpdateCourse) error
		DeleteCourse(ctx context.Context, iri string) error
		// GetContent returns just the raw content literal.
		GetContent(ctx context.Context, iri string) (string, error)
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Course, error)
		GetByIRI(ctx context.Context, iri string) (Course, error)
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Update(ctx context.Context, iri string, uc UpdateCourse) (Course, error)
		Delete(ctx context.Context, iri string) error
		Content(ctx context.Context, iri string) (string, error)
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Course, error) {
	return svc.repo.GetCourseByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	iri, err := svc.repo.CreateCourse(ctx, nc)
	if err != nil {
		return Course{}, err
	}
	return svc.repo.GetCourseByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, uc UpdateCourse) (Course, error) {
	if err := svc.repo.UpdateCourse(ctx, iri, uc); err != nil {
		return Course{}, err
	}
	return svc.repo.GetCourseByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteCourse(ctx, iri)
}

func (svc *service) Content(ctx context.Context, iri string) (string, error) {
	return svc.repo.GetContent(ctx, iri)
}
