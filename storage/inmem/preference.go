package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/preference"
)

type preferenceRepository struct {
	db *DB
}

func NewPreferenceRepository(db *DB) preference.Repository {
	return &preferenceRepository{db: db}
}

func (repo *preferenceRepository) QueryAllPreferences(ctx context.Context) ([]preference.Preference, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	prefs := make([]preference.Preference, 0, len(repo.db.preferences))
	for _, p := range repo.db.preferences {
		prefs = append(prefs, *p)
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].IRI < prefs[j].IRI })
	return prefs, nil
}

func (repo *preferenceRepository) GetPreferenceByIRI(ctx context.Context, iri string) (preference.Preference, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if p, ok := repo.db.preferences[iri]; ok {
		return *p, nil
	}
	return preference.Preference{}, preference.ErrNotFound
}

func (repo *preferenceRepository) CreatePreference(ctx context.Context, np preference.NewPreference) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p := preference.Preference{
		IRI:          repo.db.mint("preference"),
		Language:     np.Language,
		CourseFormat: np.CourseFormat,
		Period:       np.Period,
		Holidays:     np.Holidays,
		StudyMode:    np.StudyMode,
		OwnerIRI:     np.OwnerIRI,
	}
	repo.db.preferences[p.IRI] = &p
	return p.IRI, nil
}

func (repo *preferenceRepository) UpdatePreference(ctx context.Context, iri string, up preference.UpdatePreference) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p, ok := repo.db.preferences[iri]
	if !ok {
		return preference.ErrNotFound
	}
	if up.Language != "" {
		p.Language = up.Language
	}
	if up.CourseFormat != "" {
		p.CourseFormat = up.CourseFormat
	}
	if up.Period != "" {
		p.Period = up.Period
	}
	if up.Holidays != "" {
		p.Holidays = up.Holidays
	}
	if up.StudyMode != "" {
		p.StudyMode = up.StudyMode
	}
	return nil
}

func (repo *preferenceRepository) DeletePreference(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.preferences, iri)
	return nil
}
