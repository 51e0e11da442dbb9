package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/event"
)

type eventRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewEventRepository(client *Client, ns string) event.Repository {
	return &eventRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Evenement",
			Fields: []Field{
				{Name: "name", Predicate: ns + "nomEvenement", Kind: String, Required: true},
				{Name: "date", Predicate: ns + "dateEvenement", Kind: String},
				{Name: "description", Predicate: ns + "description", Kind: String},
				{Name: "location", Predicate: ns + "lieu", Kind: String},
				{Name: "creator", Predicate: ns + "createdBy", Kind: IRI},
			},
		},
	}
}

func (repo *eventRepository) decode(iri string, row Row) event.Event {
	return event.Event{
		IRI:         iri,
		Name:        row.String("name"),
		Date:        row.String("date"),
		Description: row.String("description"),
		Location:    row.String("location"),
		CreatorIRI:  row.IRI("creator"),
	}
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "date"))
	if err != nil {
		return nil, err
	}
	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, repo.decode(row.IRI("uri"), row))
	}
	return events, nil
}

func (repo *eventRepository) GetEventByIRI(ctx context.Context, iri string) (event.Event, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return event.Event{}, event.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return event.Event{}, err
	}
	if len(rows) == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *eventRepository) CreateEvent(ctx context.Context, ne event.NewEvent) (string, error) {
	iri := MintIRI(repo.ns, ne.Name)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"name":        ne.Name,
		"date":        ne.Date,
		"description": ne.Description,
		"location":    ne.Location,
		"creator":     ne.CreatorIRI,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, iri string, ue event.UpdateEvent) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{
		"name":        ue.Name,
		"date":        ue.Date,
		"description": ue.Description,
		"location":    ue.Location,
	})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
