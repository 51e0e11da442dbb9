package inmem

import (
	"context"
	"sort"

	"github.com/trelixedu/trelix/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

func (repo *courseRepository) GetCourseByIRI(ctx context.Context, iri string) (course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if c, ok := repo.db.courses[iri]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (string, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c := course.Course{
		IRI:        repo.db.mint("course"),
		Name:       nc.Name,
		CourseName: nc.CourseName,
		Content:    nc.Content,
	}
	repo.db.courses[c.IRI] = &c
	return c.IRI, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, iri string, uc course.UpdateCourse) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c, ok := repo.db.courses[iri]
	if !ok {
		return course.ErrNotFound
	}
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.CourseName != "" {
		c.CourseName = uc.CourseName
	}
	if uc.Content != "" {
		c.Content = uc.Content
	}
	return nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.courses, iri)
	return nil
}

func (repo *courseRepository) GetContent(ctx context.Context, iri string) (string, error) {
	c, err := repo.GetCourseByIRI(ctx, iri)
	if err != nil {
		return "", err
	}
	return c.Content, nil
}
