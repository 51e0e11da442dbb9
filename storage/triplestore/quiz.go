package triplestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/trelixedu/trelix/core/quiz"
)

type quizRepository struct {
	client    *Client
	ns        string
	spec      Spec
	scoreSpec Spec
}

func NewQuizRepository(client *Client, ns string) quiz.Repository {
	return &quizRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "Quiz",
			Fields: []Field{
				{Name: "title", Predicate: ns + "quizTitle", Kind: String, Required: true},
				{Name: "creator", Predicate: ns + "createdBy", Kind: IRI},
			},
		},
		scoreSpec: Spec{
			Class: ns + "Score",
			Fields: []Field{
				{Name: "quiz", Predicate: ns + "scoreQuiz", Kind: IRI, Required: true},
				{Name: "person", Predicate: ns + "scorePerson", Kind: IRI, Required: true},
				{Name: "points", Predicate: ns + "scorePoints", Kind: Int, Required: true},
			},
			Joins: []Join{
				{On: "person", Predicate: ns + "personName", Var: "personName"},
			},
		},
	}
}

func (repo *quizRepository) decode(iri string, row Row) quiz.Quiz {
	return quiz.Quiz{
		IRI:        iri,
		Title:      row.String("title"),
		CreatorIRI: row.IRI("creator"),
	}
}

func (repo *quizRepository) QueryAllQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "title"))
	if err != nil {
		return nil, err
	}
	quizzes := make([]quiz.Quiz, 0, len(rows))
	for _, row := range rows {
		quizzes = append(quizzes, repo.decode(row.IRI("uri"), row))
	}
	return quizzes, nil
}

func (repo *quizRepository) GetQuizByIRI(ctx context.Context, iri string) (quiz.Quiz, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if len(rows) == 0 {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *quizRepository) CreateQuiz(ctx context.Context, nq quiz.NewQuiz) (string, error) {
	iri := MintIRI(repo.ns, nq.Title)
	stmt, err := repo.spec.InsertData(iri, map[string]interface{}{
		"title":   nq.Title,
		"creator": nq.CreatorIRI,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *quizRepository) UpdateQuiz(ctx context.Context, iri string, uq quiz.UpdateQuiz) error {
	stmt, err := repo.spec.Patch(iri, map[string]interface{}{"title": uq.Title})
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *quizRepository) DeleteQuiz(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *quizRepository) CreateScore(ctx context.Context, quizIRI string, ns quiz.NewScore) (string, error) {
	iri := MintIRI(repo.ns, "score")
	stmt, err := repo.scoreSpec.InsertData(iri, map[string]interface{}{
		"quiz":   quizIRI,
		"person": ns.PersonIRI,
		"points": ns.Points,
	})
	if err != nil {
		return "", err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return "", err
	}
	return iri, nil
}

func (repo *quizRepository) QueryScores(ctx context.Context, quizIRI string) ([]quiz.Score, error) {
	if !ValidIRI(quizIRI) {
		return nil, quiz.ErrNotFound
	}
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("SELECT ?uri ?person ?personName ?points\nWHERE {\n")
	fmt.Fprintf(&b, "    ?uri rdf:type <%s> .\n", repo.scoreSpec.Class)
	fmt.Fprintf(&b, "    ?uri <%sscoreQuiz> <%s> .\n", repo.ns, quizIRI)
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%sscorePerson> ?person . }\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?person <%spersonName> ?personName . }\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%sscorePoints> ?points . }\n", repo.ns)
	b.WriteString("}\n")

	rows, err := repo.client.Select(ctx, b.String())
	if err != nil {
		return nil, err
	}
	scores := make([]quiz.Score, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, quiz.Score{
			IRI:        row.IRI("uri"),
			QuizIRI:    quizIRI,
			PersonIRI:  row.IRI("person"),
			PersonName: row.String("personName"),
			Points:     row.Int("points"),
		})
	}
	return scores, nil
}
