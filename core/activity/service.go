package activity

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("activity not found")

type (
	Repository interface {
		// FilterActivities applies AND on available QueryFilter fields.
		FilterActivities(ctx context.Context, filter QueryFilter) ([]Activity, error)
		GetActivityByIRI(ctx context.Context, iri string) (Activity, error)
		CreateActivity(ctx context.Context, na NewActivity) (string, error)
		UpdateActivity(ctx context.Context, iri string, ua UpdateActivity) error
		DeleteActivity(ctx context.Context, iri string) error
	}

	Service interface {
		Filter(ctx context.Context, filter QueryFilter) ([]Activity, error)
		GetByIRI(ctx context.Context, iri string) (Activity, error)
		Create(ctx context.Context, na NewActivity) (Activity, error)
		Update(ctx context.Context, iri string, ua UpdateActivity) (Activity, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Activity, error) {
	filter.Clean()
	return svc.repo.FilterActivities(ctx, filter)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Activity, error) {
	return svc.repo.GetActivityByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, na NewActivity) (Activity, error) {
	iri, err := svc.repo.CreateActivity(ctx, na)
	if err != nil {
		return Activity{}, err
	}
	return svc.repo.GetActivityByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, ua UpdateActivity) (Activity, error) {
	if err := svc.repo.UpdateActivity(ctx, iri, ua); err != nil {
		return Activity{}, err
	}
	return svc.repo.GetActivityByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteActivity(ctx, iri)
}
