package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trelixedu/trelix/api/echo"
	"github.com/trelixedu/trelix/core/person"
	emailsvc "github.com/trelixedu/trelix/services/email"
	"github.com/trelixedu/trelix/storage/inmem"
)

const testPassword = "LolC@t123"

// resetDB empties the store and the sent-mail record between test functions.
func resetDB() {
	db.Clear()
	emailsvc.ClearSentMessages()
}

// createPerson persists a person directly through the repository, bypassing
// the sign-up endpoint.
func createPerson(t *testing.T, name, email, roleIRI string) person.Person {
	t.Helper()

	p := person.Person{Name: name, Email: email, RoleIRI: roleIRI}
	if err := p.SetPassword(testPassword); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	p, err := personRepo.CreatePerson(context.Background(), p)
	if err != nil {
		t.Fatalf("CreatePerson(): %v", err)
	}
	return p
}

// localID strips the namespace off an IRI; detail routes take the local name.
func localID(iri string) string {
	return strings.TrimPrefix(iri, inmem.Namespace)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, p person.Person) string {
	t.Helper()

	token, err := GenerateToken(conf, GetPersonClaims(conf, p))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantCode == http.StatusNoContent {
		if rec.Body.Len() > 0 {
			t.Errorf("failed! data = %v; want empty body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
