package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/activity"
)

type activityRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewActivityRepository(client *Client, ns string) activity.Repository {
	return &activityRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "activity",
			Fields: []Field{
				{Name: "name", Predicate: ns + "activityName", Kind: String, Required: true},
				{Name: "description", Predicate: ns + "activityDescription", Kind: String},
				{Name: "duration", Predicate: ns + "activityDuration", Kind: Int},
				{Name: "startDate", Predicate: ns + "activityStartDate", Kind: DateTime},
				{Name: "endDate", Predicate: ns + "activityEndDate", Kind: DateTime},
				{Name: "status", Predicate: ns + "activityStatus", Kind: String},
				{Name: "type", Predicate: ns + "activityType", Kind: String},
				{Name: "instructor", Predicate: ns + "hasInstructor", Kind: IRI},
			},
			Joins: []Join{
				{On: "instructor", Predicate: ns + "personName", Var: "instructorName"},
			},
		},
	}
}

func (repo *activityRepository) decode(iri string, row Row) activity.Activity {
	return activity.Activity{
		IRI:            iri,
		Name:           row.String("name"),
		Description:    row.String("description"),
		Duration:       row.IntPtr("duration"),
		StartDate:      row.Time("startDate"),
		EndDate:        row.Time("endDate"),
		Status:         row.String("status"),
		Type:           row.String("type"),
		InstructorIRI:  row.IRI("instructor"),
		InstructorName: row.String("instructorName"),
	}
}

func (repo *activityRepository) FilterActivities(ctx context.Context, filter activity.QueryFilter) ([]activity.Activity, error) {
	query := repo.spec.SelectList(Filters{
		Status: filter.Status,
		Search: filter.Search,
	}, "name")

	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return nil, err
	}
	activities := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, repo.decode(row.IRI("uri"), row))
	}
	return activities, nil
}

func (repo *activityRepository) GetActivityByIRI(ctx context.Context, iri string) (activity.Activity, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return activity.Activity{}, activity.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return activity.Activity{}, err
	}
	if len(rows) == 0 {
		return activity.Activity{}, activity.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *activityRepository) CreateActivity(ctx context.Context, na activity.NewActivity) (string, error) {
	iri := MintIRI(repo.ns, na.Name)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"name":        na.Name,
		"description": na.Description,
		"duration":    na.Duration,
		"startDate":   na.StartDate,
		"endDate":     na.EndDate,
		"status":      na.Status,
		"type":        na.Type,
		"instructor":  na.InstructorIRI,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *activityRepository) UpdateActivity(ctx context.Context, iri string, ua activity.UpdateActivity) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{
		"name":        ua.Name,
		"description": ua.Description,
		"duration":    ua.Duration,
		"startDate":   ua.StartDate,
		"endDate":     ua.EndDate,
		"status":      ua.Status,
		"type":        ua.Type,
		"instructor":  ua.InstructorIRI,
	})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *activityRepository) DeleteActivity(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
