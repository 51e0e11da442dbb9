package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trelixedu/trelix/core/goal"
	"github.com/trelixedu/trelix/storage/inmem"
)

func createGoal(t *testing.T, title string) goal.Goal {
	t.Helper()

	iri, err := goalRepo.CreateGoal(context.Background(), goal.NewGoal{Title: title, Color: goal.DefaultColor})
	if err != nil {
		t.Fatalf("createGoal(): %v", err)
	}
	g, err := goalRepo.GetGoalByIRI(context.Background(), iri)
	if err != nil {
		t.Fatalf("createGoal(): %v", err)
	}
	return g
}

func Test_goalApi_create(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: getToken(t, student), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": reqMsg}),
		},
		{
			name: "Student creates", token: getToken(t, student), wantCode: http.StatusCreated,
			body: marchallObj(t, goal.NewGoal{Title: "Read 12 books"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/goals"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var g goal.Goal
				if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if g.Title != "Read 12 books" {
					t.Errorf("failed! title = %v; want Read 12 books", g.Title)
				}
				if g.Color != goal.DefaultColor {
					t.Errorf("failed! color = %v; want %v", g.Color, goal.DefaultColor)
				}
				if g.Completed {
					t.Error("failed! new goal starts completed")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_goalApi_query(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	books := createGoal(t, "Read 12 books")

	tests := []httpTest{
		{name: "Anonymous visitor", wantCode: http.StatusOK, wantData: marchallList(t, books)},
		{name: "Get all", token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallList(t, books)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/goals"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_goalApi_update(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	token := getToken(t, student)
	books := createGoal(t, "Read 12 books")
	path := "/v1/goals/" + localID(books.IRI)

	t.Run("Toggle marks done", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path+"/toggle", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var g goal.Goal
		if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if !g.Completed {
			t.Error("failed! completed = false; want true")
		}
	})

	t.Run("Explicit false is written", func(t *testing.T) {
		notDone := false
		body := marchallObj(t, goal.UpdateGoal{Completed: &notDone})
		req, rec := newAuthRequest(http.MethodPut, path, token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		g, err := goalRepo.GetGoalByIRI(context.Background(), books.IRI)
		if err != nil {
			t.Fatalf("GetGoalByIRI(): %v", err)
		}
		if g.Completed {
			t.Error("failed! completed = true; want false")
		}
		if g.Title != books.Title {
			t.Errorf("failed! title = %v; want %v", g.Title, books.Title)
		}
	})
}

func Test_goalApi_destroy(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	books := createGoal(t, "Read 12 books")
	path := "/v1/goals/" + localID(books.IRI)

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Deleted goal is gone", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, path, getToken(t, student))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newRequest(http.MethodGet, path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})
}
