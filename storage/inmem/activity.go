package inmem

import (
	"context"
	"sort"
	"strings"

	"github.com/trelixedu/trelix/core/activity"
)

type activityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db}
}

// withInstructorName resolves the instructor edge the way the triplestore
// join does: a dangling reference just leaves the name empty.
func (repo *activityRepository) withInstructorName(a activity.Activity) activity.Activity {
	if p, ok := repo.db.persons[a.InstructorIRI]; ok {
		a.InstructorName = p.Name
	}
	return a
}

func (repo *activityRepository) FilterActivities(ctx context.Context, filter activity.QueryFilter) ([]activity.Activity, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	activities := make([]activity.Activity, 0, len(repo.db.activities))
	for _, a := range repo.db.activities {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search)) {
			continue
		}
		activities = append(activities, repo.withInstructorName(*a))
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].Name < activities[j].Name })
	return activities, nil
}

func (repo *activityRepository) GetActivityByIRI(ctx context.Context, iri string) (activity.Activity, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if a, ok := repo.db.activities[iri]; ok {
		return repo.withInstructorName(*a), nil
	}
	return activity.Activity{}, activity.ErrNotFound
}

func (repo *activityRepository) CreateActivity(ctx context.Context, na activity.NewActivity) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a := activity.Activity{
		IRI:           repo.db.mint("activity"),
		Name:          na.Name,
		Description:   na.Description,
		Duration:      na.Duration,
		StartDate:     na.StartDate,
		EndDate:       na.EndDate,
		Status:        na.Status,
		Type:          na.Type,
		InstructorIRI: na.InstructorIRI,
	}
	repo.db.activities[a.IRI] = &a
	return a.IRI, nil
}

func (repo *activityRepository) UpdateActivity(ctx context.Context, iri string, ua activity.UpdateActivity) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a, ok := repo.db.activities[iri]
	if !ok {
		return activity.ErrNotFound
	}
	if ua.Name != "" {
		a.Name = ua.Name
	}
	if ua.Description != "" {
		a.Description = ua.Description
	}
	if ua.Duration != nil {
		a.Duration = ua.Duration
	}
	if !ua.StartDate.IsZero() {
		a.StartDate = ua.StartDate
	}
	if !ua.EndDate.IsZero() {
		a.EndDate = ua.EndDate
	}
	if ua.Status != "" {
		a.Status = ua.Status
	}
	if ua.Type != "" {
		a.Type = ua.Type
	}
	if ua.InstructorIRI != "" {
		a.InstructorIRI = ua.InstructorIRI
	}
	return nil
}

func (repo *activityRepository) DeleteActivity(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.activities, iri)
	return nil
}
