package triplestore

import (
	"context"

	"github.com/trelixedu/trelix/core/course"
)

type courseRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewCourseRepository(client *Client, ns string) course.Repository {
	return &courseRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Module",
			Fields: []Field{
				{Name: "name", Predicate: ns + "moduleName", Kind: String, Required: true},
				{Name: "courseName", Predicate: ns + "courseName", Kind: String},
				{Name: "content", Predicate: ns + "courseContent", Kind: String},
			},
		},
	}
}

func (repo *courseRepository) decode(iri string, row Row) course.Course {
	return course.Course{
		IRI:        iri,
		Name:       row.String("name"),
		CourseName: row.String("courseName"),
		Content:    row.String("content"),
	}
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "name"))
	if err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.decode(row.IRI("uri"), row))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByIRI(ctx context.Context, iri string) (course.Course, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return course.Course{}, course.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return course.Course{}, err
	}
	if len(rows) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (string, error) {
	iri := MintIRI(repo.ns, nc.Name)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"name":       nc.Name,
		"courseName": nc.CourseName,
		"content":    nc.Content,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, iri string, uc course.UpdateCourse) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{
		"name":       uc.Name,
		"courseName": uc.CourseName,
		"content":    uc.Content,
	})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *courseRepository) GetContent(ctx context.Context, iri string) (string, error) {
	c, err := repo.GetCourseByIRI(ctx, iri)
	if err != nil {
		return "", err
	}
	return c.Content, nil
}
