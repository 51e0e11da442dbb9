package triplestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/trelixedu/trelix/core/exam"
)

type examRepository struct {
	client *Client
	ns     string
	spec   Spec
}

func NewExamRepository(client *Client, ns string) exam.Repository {
	return &examRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Exam",
			Fields: []Field{
				{Name: "name", Predicate: ns + "examName", Kind: String, Required: true},
				{Name: "description", Predicate: ns + "examDescription", Kind: String},
				{Name: "maxGrade", Predicate: ns + "maxGrade", Kind: Float, Required: true},
				{Name: "examDate", Predicate: ns + "examDate", Kind: Date},
				{Name: "badge", Predicate: ns + "examBadge", Kind: String},
				{Name: "creator", Predicate: ns + "createdBy", Kind: IRI},
			},
		},
	}
}

func (repo *examRepository) decode(iri string, row Row) exam.Exam {
	return exam.Exam{
		IRI:         iri,
		Name:        row.String("name"),
		Description: row.String("description"),
		MaxGrade:    row.Float("maxGrade"),
		ExamDate:    row.String("examDate"),
		Badge:       row.String("badge"),
		CreatorIRI:  row.IRI("creator"),
	}
}

func (repo *examRepository) values(e exam.Exam) map[string]interface{} {
	return map[string]interface{}{
		"name":        e.Name,
		"description": e.Description,
		"maxGrade":    e.MaxGrade,
		"examDate":    e.ExamDate,
		"badge":       e.Badge,
		"creator":     e.CreatorIRI,
	}
}

func (repo *examRepository) QueryAllExams(ctx context.Context) ([]exam.Exam, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "examDate"))
	if err != nil {
		return nil, err
	}
	exams := make([]exam.Exam, 0, len(rows))
	for _, row := range rows {
		exams = append(exams, repo.decode(row.IRI("uri"), row))
	}
	return exams, nil
}

func (repo *examRepository) GetExamByIRI(ctx context.Context, iri string) (exam.Exam, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return exam.Exam{}, exam.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return exam.Exam{}, err
	}
	if len(rows) == 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *examRepository) CreateExam(ctx context.Context, e exam.Exam) (string, error) {
	iri := MintIRI(repo.ns, e.Name)
	stmt, err := repo.spec.InsertData(iri, repo.values(e))
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

// UpsertExam removes every triple on the exam and rewrites the full set in a
// single update request, so a reader never observes a half-replaced exam.
func (repo *examRepository) UpsertExam(ctx context.Context, e exam.Exam) error {
	if !ValidIRI(e.IRI) {
		return exam.ErrNotFound
	}
	insert, err := repo.spec.InsertData(e.IRI, repo.values(e))
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(queryPrefixes)
	fmt.Fprintf(&b, "DELETE WHERE { <%s> ?p ?o . } ;\n", e.IRI)
	b.WriteString(strings.TrimPrefix(insert, queryPrefixes))
	return repo.client.Update(ctx, b.String())
}

func (repo *examRepository) DeleteExam(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}
