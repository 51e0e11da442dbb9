package event

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		QueryAllEvents(ctx context.Context) ([]Event, error)
		GetEventByIRI(ctx context.Context, iri string) (Event, error)
		CreateEvent(ctx context.Context, ne NewEvent) (string, error)
		UpdateEvent(ctx context.Context, iri string, ue UpdateEvent) error
		DeleteEvent(ctx context.Context, iri string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Event, error)
		GetByIRI(ctx context.Context, iri string) (Event, error)
		Create(ctx context.Context, ne NewEvent) (Event, error)
		Update(ctx context.Context, iri string, ue UpdateEvent) (Event, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Event, error) {
	return svc.repo.GetEventByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	iri, err := svc.repo.CreateEvent(ctx, ne)
	if err != nil {
		return Event{}, err
	}
	return svc.repo.GetEventByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, ue UpdateEvent) (Event, error) {
	if err := svc.repo.UpdateEvent(ctx, iri, ue); err != nil {
		return Event{}, err
	}
	return svc.repo.GetEventByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeleteEvent(ctx, iri)
}
