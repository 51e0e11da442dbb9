package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/event"
)

type eventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	events := make([]event.Event, 0, len(repo.db.events))
	for _, e := range repo.db.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

func (repo *eventRepository) GetEventByIRI(ctx context.Context, iri string) (event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if e, ok := repo.db.events[iri]; ok {
		return *e, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) CreateEvent(ctx context.Context, ne event.NewEvent) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e := event.Event{
		IRI:         repo.db.mint("event"),
		Name:        ne.Name,
		Date:        ne.Date,
		Description: ne.Description,
		Location:    ne.Location,
		CreatorIRI:  ne.CreatorIRI,
	}
	repo.db.events[e.IRI] = &e
	return e.IRI, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, iri string, ue event.UpdateEvent) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e, ok := repo.db.events[iri]
	if !ok {
		return event.ErrNotFound
	}
	if ue.Name != "" {
		e.Name = ue.Name
	}
	if ue.Date != "" {
		e.Date = ue.Date
	}
	if ue.Description != "" {
		e.Description = ue.Description
	}
	if ue.Location != "" {
		e.Location = ue.Location
	}
	return nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.events, iri)
	return nil
}
