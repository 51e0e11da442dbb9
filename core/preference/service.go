package preference

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("preference not found")

type (
	Repository interface {
		QueryAllPreferences(ctx context.Context) ([]Preference, error)
		GetPreferenceByIRI(ctx context.Context, iri string) (Preference, error)
		CreatePreference(ctx context.Context, np NewPreference) (string, error)
		UpdatePreference(ctx context.Context, iri string, up UpdatePreference) error
		DeletePreference(ctx context.Context, iri string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Preference, error)
		GetByIRI(ctx context.Context, iri string) (Preference, error)
		Create(ctx context.Context, np NewPreference) (Preference, error)
		Update(ctx context.Context, iri string, up UpdatePreference) (Preference, error)
		Delete(ctx context.Context, iri string) error
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Preference, error) {
	return svc.repo.QueryAllPreferences(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Preference, error) {
	return svc.repo.GetPreferenceByIRI(ctx, iri)
}

func (svc *service) Create(ctx context.Context, np NewPreference) (Preference, error) {
	iri, err := svc.repo.CreatePreference(ctx, np)
	if err != nil {
		return Preference{}, err
	}
	return svc.repo.GetPreferenceByIRI(ctx, iri)
}

func (svc *service) Update(ctx context.Context, iri string, up UpdatePreference) (Preference, error) {
	if err := svc.repo.UpdatePreference(ctx, iri, up); err != nil {
		return Preference{}, err
	}
	return svc.repo.GetPreferenceByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeletePreference(ctx, iri)
}
