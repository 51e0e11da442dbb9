package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/trelixedu/trelix/core/activity"
	"github.com/trelixedu/trelix/core/person"
	"github.com/trelixedu/trelix/storage/inmem"
)

func createActivity(t *testing.T, name, status string, instructor person.Person) activity.Activity {
	t.Helper()

	iri, err := activityRepo.CreateActivity(context.Background(), activity.NewActivity{
		Name:          name,
		Status:        status,
		InstructorIRI: instructor.IRI,
	})
	if err != nil {
		t.Fatalf("CreateActivity(): %v", err)
	}
	a, err := activityRepo.GetActivityByIRI(context.Background(), iri)
	if err != nil {
		t.Fatalf("GetActivityByIRI(): %v", err)
	}
	return a
}

func Test_activityApi_create(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Students cannot create", token: getToken(t, student), wantCode: http.StatusForbidden,
			body:     marchallObj(t, activity.NewActivity{Name: "Yoga"}),
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "required fields", token: getToken(t, instructor), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": reqMsg}),
		},
		{
			name: "Instructor creates", token: getToken(t, instructor), wantCode: http.StatusCreated,
			body: marchallObj(t, activity.NewActivity{Name: "Yoga & Wellness"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/activities"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData activity.Activity
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.IRI == "" {
					t.Error("failed! empty IRI")
				}
				// the creator is always the instructor on record
				if respData.InstructorIRI != instructor.IRI {
					t.Errorf("failed! instructor_iri = %v; want %v", respData.InstructorIRI, instructor.IRI)
				}
				if respData.InstructorName != instructor.Name {
					t.Errorf("failed! instructor_name = %v; want %v", respData.InstructorName, instructor.Name)
				}
				if respData.Status != activity.StatusActive {
					t.Errorf("failed! status = %v; want %v", respData.Status, activity.StatusActive)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_query(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")

	yoga := createActivity(t, "Yoga & Wellness", activity.StatusActive, instructor)
	boxing := createActivity(t, "Boxing", activity.StatusActive, instructor)
	chess := createActivity(t, "Chess Club", activity.StatusCompleted, instructor)

	path := func(status, search string) string {
		v := make(url.Values)
		if status != "" {
			v.Add("status", status)
		}
		if search != "" {
			v.Add("search", search)
		}
		return "/v1/activities?" + v.Encode()
	}
	studentToken := getToken(t, student)
	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Anonymous visitor", path: "/v1/activities", wantData: marchallList(t, boxing, chess, yoga)},
		{name: "Get all", path: "/v1/activities", token: studentToken, wantData: marchallList(t, boxing, chess, yoga)},
		{name: "status=Active", path: path(activity.StatusActive, ""), token: studentToken, wantData: marchallList(t, boxing, yoga)},
		{name: "status=Completed", path: path(activity.StatusCompleted, ""), token: studentToken, wantData: marchallList(t, chess)},
		{name: "status (unknown)", path: path("lol", ""), token: studentToken, wantData: empty},
		{name: "search=yoga", path: path("", "yoga"), token: studentToken, wantData: marchallList(t, yoga)},
		{name: "search (unknown)", path: path("", "lol"), token: studentToken, wantData: empty},
		{name: "status & search", path: path(activity.StatusActive, "box"), token: studentToken, wantData: marchallList(t, boxing)},
		{name: "status & search (empty)", path: path(activity.StatusCompleted, "box"), token: studentToken, wantData: empty},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Malformed filter payload", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/activities", studentToken, []byte(`{"status":`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
	})
}

func Test_activityApi_retrieve(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")
	yoga := createActivity(t, "Yoga & Wellness", activity.StatusActive, instructor)

	tests := []httpTest{
		{
			name: "Anonymous visitor", path: "/v1/activities/" + localID(yoga.IRI),
			wantCode: http.StatusOK, wantData: marchallObj(t, yoga),
		},
		{
			name: "Get one", path: "/v1/activities/" + localID(yoga.IRI), token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, yoga),
		},
		{
			name: "Unknown activity", path: "/v1/activities/activity_999", token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_update(t *testing.T) {
	resetDB()
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")
	rival := createPerson(t, "Rival", "rival@test.cd", inmem.Namespace+"instructor")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")
	yoga := createActivity(t, "Yoga & Wellness", activity.StatusActive, instructor)

	forbidden := marchallObj(t, httpErr{Error: "permission denied"})

	t.Run("Only the owner may edit", func(t *testing.T) {
		body := marchallObj(t, activity.UpdateActivity{Status: activity.StatusCompleted})
		req, rec := newAuthRequest(http.MethodPut, "/v1/activities/"+localID(yoga.IRI), getToken(t, rival), body)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: forbidden}, rec)
	})

	t.Run("Partial update leaves the rest intact", func(t *testing.T) {
		body := marchallObj(t, activity.UpdateActivity{Status: activity.StatusCompleted})
		req, rec := newAuthRequest(http.MethodPut, "/v1/activities/"+localID(yoga.IRI), getToken(t, instructor), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var respData activity.Activity
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if respData.Status != activity.StatusCompleted {
			t.Errorf("failed! status = %v; want %v", respData.Status, activity.StatusCompleted)
		}
		if respData.Name != yoga.Name {
			t.Errorf("failed! name = %v; want %v", respData.Name, yoga.Name)
		}
		if respData.InstructorIRI != instructor.IRI {
			t.Errorf("failed! instructor_iri = %v; want %v", respData.InstructorIRI, instructor.IRI)
		}
	})

	t.Run("Reassigning the instructor needs admin", func(t *testing.T) {
		body := marchallObj(t, activity.UpdateActivity{InstructorIRI: rival.IRI})
		req, rec := newAuthRequest(http.MethodPut, "/v1/activities/"+localID(yoga.IRI), getToken(t, instructor), body)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: forbidden}, rec)
	})

	t.Run("Admin reassigns the instructor", func(t *testing.T) {
		body := marchallObj(t, activity.UpdateActivity{InstructorIRI: rival.IRI})
		req, rec := newAuthRequest(http.MethodPut, "/v1/activities/"+localID(yoga.IRI), getToken(t, admin), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var respData activity.Activity
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if respData.InstructorIRI != rival.IRI {
			t.Errorf("failed! instructor_iri = %v; want %v", respData.InstructorIRI, rival.IRI)
		}
		if respData.InstructorName != rival.Name {
			t.Errorf("failed! instructor_name = %v; want %v", respData.InstructorName, rival.Name)
		}
	})
}

func Test_activityApi_destroy(t *testing.T) {
	resetDB()
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")
	rival := createPerson(t, "Rival", "rival@test.cd", inmem.Namespace+"instructor")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")

	yoga := createActivity(t, "Yoga & Wellness", activity.StatusActive, instructor)
	boxing := createActivity(t, "Boxing", activity.StatusActive, instructor)

	tests := []httpTest{
		{
			name: "Only the owner may delete", path: "/v1/activities/" + localID(yoga.IRI), token: getToken(t, rival),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Owner deletes", path: "/v1/activities/" + localID(yoga.IRI), token: getToken(t, instructor), wantCode: http.StatusNoContent},
		{
			name: "Deleted activity is gone", method: http.MethodGet, path: "/v1/activities/" + localID(yoga.IRI),
			token: getToken(t, instructor), wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{name: "Admin deletes any", path: "/v1/activities/" + localID(boxing.IRI), token: getToken(t, admin), wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodDelete
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
