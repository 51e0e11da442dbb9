package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/trelixedu/trelix/api/echo"
	"github.com/trelixedu/trelix/core/person"
	emailsvc "github.com/trelixedu/trelix/services/email"
	"github.com/trelixedu/trelix/storage/inmem"
)

const reqMsg = "this field is required"

func Test_personApi_signUp(t *testing.T) {
	resetDB()
	createPerson(t, "Taken", "taken@test.cd", inmem.Namespace+"student")

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name": reqMsg, "email": reqMsg, "password": reqMsg, "password_confirm": reqMsg,
			}),
		},
		{
			name: "invalid email", wantCode: http.StatusBadRequest,
			body: marchallObj(t, person.NewPerson{
				Name: "Hero", Email: "lol", Password: testPassword, PasswordConfirm: testPassword,
			}),
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "password confirmation", wantCode: http.StatusBadRequest,
			body: marchallObj(t, person.NewPerson{
				Name: "Hero", Email: "hero@test.cd", Password: testPassword, PasswordConfirm: "lol@C4t12",
			}),
			wantData: marchallObj(t, map[string]string{"password_confirm": "password_confirm must be equal to Password"}),
		},
		{
			name: "administrator role rejected", wantCode: http.StatusBadRequest,
			body: marchallObj(t, person.NewPerson{
				Name: "Hero", Email: "hero@test.cd", Password: testPassword, PasswordConfirm: testPassword,
				RoleIRI: inmem.Namespace + "administrator",
			}),
			wantData: marchallObj(t, map[string]string{"role_iri": "not enough rights to set this role"}),
		},
		{
			name: "duplicate email", wantCode: http.StatusBadRequest,
			body: marchallObj(t, person.NewPerson{
				Name: "Hero", Email: "taken@test.cd", Password: testPassword, PasswordConfirm: testPassword,
			}),
			wantData: marchallObj(t, map[string]string{"email": "a person with this email already exists"}),
		},
		{
			name: "sign up ok", wantCode: http.StatusCreated,
			body: marchallObj(t, person.NewPerson{
				Name: "Hero", Email: "hero@test.cd", Password: testPassword, PasswordConfirm: testPassword,
				RoleIRI: inmem.Namespace + "student",
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/persons/signup"

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ClearSentMessages()

			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData echoapi.PersonResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				if respData.IRI == "" {
					t.Error("failed! empty IRI")
				}
				if respData.Email != "hero@test.cd" {
					t.Errorf("failed! email = %v", respData.Email)
				}
				if respData.RoleLabel != "student" {
					t.Errorf("failed! role_label = %v", respData.RoleLabel)
				}
				if len(emailsvc.SentMessages) != 1 {
					t.Fatalf("failed! len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
				}
				if to := emailsvc.SentMessages[0].To[0].Address; to != respData.Email {
					t.Errorf("failed! welcome mail sent to %v", to)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
			if len(emailsvc.SentMessages) > 0 {
				t.Errorf("failed! len(SentMessages) = %d; want 0", len(emailsvc.SentMessages))
			}
		})
	}
}

func Test_personApi_signIn(t *testing.T) {
	resetDB()
	createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")

	authFailed := marchallObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": reqMsg, "password": reqMsg}),
		},
		{
			name: "unknown email", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, person.Credentials{Email: "lol@test.cd", Password: testPassword}),
			wantData: authFailed,
		},
		{
			name: "wrong password", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, person.Credentials{Email: "hero@test.cd", Password: "lol"}),
			wantData: authFailed,
		},
		{
			name: "sign in ok", wantCode: http.StatusOK,
			body: marchallObj(t, person.Credentials{Email: "hero@test.cd", Password: testPassword}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/persons/signin"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess the token; just check that it's not empty
			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData echoapi.TokenResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_personApi_queryRoles(t *testing.T) {
	resetDB()

	req, rec := newRequest(http.MethodGet, "/v1/persons/roles")
	app.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallList(t,
			person.Role{IRI: inmem.Namespace + "instructor", Label: "instructor"},
			person.Role{IRI: inmem.Namespace + "student", Label: "student"},
		),
	}
	checkCodeAndData(t, tt, rec)
}

func Test_personApi_refreshToken(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")

	now := time.Now()
	unrefreshableClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   student.IRI,
			Audience:  "Trelix",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		Name:         student.Name,
		Email:        student.Email,
		RoleIRI:      student.RoleIRI,
		RoleLabel:    student.RoleLabel,
	}
	unrefreshableToken, err := echoapi.GenerateToken(conf, unrefreshableClaims)
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	deleted := createPerson(t, "Ghost", "ghost@test.cd", inmem.Namespace+"student")
	deletedToken := getToken(t, deleted)
	if err := personRepo.DeletePerson(context.Background(), deleted.IRI); err != nil {
		t.Fatalf("DeletePerson(): %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Person gone", token: deletedToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Refresh period expired", token: unrefreshableToken, wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		},
		{name: "Token refreshed", token: getToken(t, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/persons/token-refresh"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData echoapi.TokenResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_personApi_query(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	instructor := createPerson(t, "Teacher", "teacher@test.cd", inmem.Namespace+"instructor")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")

	forbidden := marchallObj(t, httpErr{Error: "permission denied"})

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Admin required (student)", token: getToken(t, student), wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "Admin required (instructor)", token: getToken(t, instructor), wantCode: http.StatusForbidden, wantData: forbidden},
		{
			name: "Get all", token: getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallList(t, student, instructor, admin),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/persons"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_personApi_retrieve(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	other := createPerson(t, "Other", "other@test.cd", inmem.Namespace+"student")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")

	notFound := marchallObj(t, httpErr{Error: "not found"})

	tests := []httpTest{
		{name: "Auth required", path: "/v1/persons/" + localID(student.IRI), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Get self", path: "/v1/persons/" + localID(student.IRI), token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			// existence must not leak to other persons
			name: "Get other is hidden", path: "/v1/persons/" + localID(other.IRI), token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: notFound,
		},
		{
			name: "Admin gets any", path: "/v1/persons/" + localID(other.IRI), token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, other),
		},
		{
			name: "Admin gets unknown", path: "/v1/persons/person_999", token: getToken(t, admin),
			wantCode: http.StatusNotFound, wantData: notFound,
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

func Test_personApi_update(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	other := createPerson(t, "Other", "other@test.cd", inmem.Namespace+"student")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")

	t.Run("Self edit returns a fresh token", func(t *testing.T) {
		body := marchallObj(t, person.UpdatePerson{Name: "Super Hero"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/persons/"+localID(student.IRI), getToken(t, student), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var respData echoapi.PersonResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if respData.Name != "Super Hero" {
			t.Errorf("failed! name = %v", respData.Name)
		}
		if respData.Token == "" {
			t.Error("failed! empty token")
		}
	})

	t.Run("Role change needs admin", func(t *testing.T) {
		body := marchallObj(t, person.UpdatePerson{RoleIRI: inmem.Namespace + "instructor"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/persons/"+localID(student.IRI), getToken(t, student), body)
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Admin promotes person", func(t *testing.T) {
		body := marchallObj(t, person.UpdatePerson{RoleIRI: inmem.Namespace + "instructor"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/persons/"+localID(other.IRI), getToken(t, admin), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var respData echoapi.PersonResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if respData.RoleLabel != "instructor" {
			t.Errorf("failed! role_label = %v", respData.RoleLabel)
		}
		if respData.Token != "" {
			t.Error("failed! token issued for someone else's edit")
		}
	})

	t.Run("Edit other is hidden", func(t *testing.T) {
		body := marchallObj(t, person.UpdatePerson{Name: "Pwned"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/persons/"+localID(other.IRI), getToken(t, student), body)
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_personApi_destroy(t *testing.T) {
	resetDB()
	student := createPerson(t, "Hero", "hero@test.cd", inmem.Namespace+"student")
	other := createPerson(t, "Other", "other@test.cd", inmem.Namespace+"student")
	admin := createPerson(t, "Admin", "admin@test.cd", inmem.Namespace+"administrator")

	tests := []httpTest{
		{
			name: "Delete other is hidden", path: "/v1/persons/" + localID(other.IRI), token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			// an admin cannot lock everyone out by deleting themselves
			name: "Admin self-delete denied", path: "/v1/persons/" + localID(admin.IRI), token: getToken(t, admin),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Self delete", path: "/v1/persons/" + localID(student.IRI), token: getToken(t, student),
			wantCode: http.StatusNoContent,
		},
		{
			name: "Admin deletes any", path: "/v1/persons/" + localID(other.IRI), token: getToken(t, admin),
			wantCode: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodDelete

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
