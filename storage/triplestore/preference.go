package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/preference"
)

type preferenceRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewPreferenceRepository(client *Client, ns string) preference.Repository {
	return &preferenceRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Preference",
			Fields: []Field{
				{Name: "language", Predicate: ns + "language", Kind: String, Required: true},
				{Name: "courseFormat", Predicate: ns + "courseFormat", Kind: String},
				{Name: "period", Predicate: ns + "period", Kind: String},
				{Name: "holidays", Predicate: ns + "holidays", Kind: String},
				{Name: "studyMode", Predicate: ns + "studyMode", Kind: String},
				{Name: "owner", Predicate: ns + "preferenceOf", Kind: IRI},
			},
		},
	}
}

func (repo *preferenceRepository) decode(iri string, row Row) preference.Preference {
	return preference.Preference{
		IRI:          iri,
		Language:     row.String("language"),
		CourseFormat: row.String("courseFormat"),
		Period:       row.String("period"),
		Holidays:     row.String("holidays"),
		StudyMode:    row.String("studyMode"),
		OwnerIRI:     row.IRI("owner"),
	}
}

func (repo *preferenceRepository) QueryAllPreferences(ctx context.Context) ([]preference.Preference, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "language"))
	if err != nil {
		return nil, err
	}
	prefs := make([]preference.Preference, 0, len(rows))
	for _, row := range rows {
		prefs = append(prefs, repo.decode(row.IRI("uri"), row))
	}
	return prefs, nil
}

func (repo *preferenceRepository) GetPreferenceByIRI(ctx context.Context, iri string) (preference.Preference, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return preference.Preference{}, preference.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return preference.Preference{}, err
	}
	if len(rows) == 0 {
		return preference.Preference{}, preference.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *preferenceRepository) CreatePreference(ctx context.Context, np preference.NewPreference) (string, error) {
	iri := MintIRI(repo.ns, "preference")
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"language":     np.Language,
		"courseFormat": np.CourseFormat,
		"period":       np.Period,
		"holidays":     np.Holidays,
		"studyMode":    np.StudyMode,
		"owner":        np.OwnerIRI,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *preferenceRepository) UpdatePreference(ctx context.Context, iri string, up preference.UpdatePreference) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{
		"language":     up.Language,
		"courseFormat": up.CourseFormat,
		"period":       up.Period,
		"holidays":     up.Holidays,
		"studyMode":    up.StudyMode,
	})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *preferenceRepository) DeletePreference(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
