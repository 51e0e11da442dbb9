package person_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/person"
	emailsvc "github.com/trelixedu/trelix/services/email"
	"github.com/trelixedu/trelix/storage/inmem"
)

func newTestService() person.Service {
	conf := &core.Config{TestMode: true, AppName: "Trelix", DefaultFromEmail: "noreply@test.trelix.cd"}
	repo := inmem.NewPersonRepository(inmem.NewDB())
	return person.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf)
}

func TestService_SignUp(t *testing.T) {
	emailsvc.ClearSentMessages()
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.SignUp(ctx, person.NewPerson{
		Name: "Hero", Email: "hero@test.cd", Password: "LolC@t123",
		RoleIRI: inmem.Namespace + "student",
	})
	if err != nil {
		t.Fatalf("SignUp(): %v", err)
	}
	if p.IRI == "" {
		t.Error("empty IRI")
	}
	if p.RoleLabel != "student" {
		t.Errorf("role_label = %v; want student", p.RoleLabel)
	}
	if err = p.CheckPassword("LolC@t123"); err != nil {
		t.Error("password not set")
	}

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
	}
	if to := emailsvc.SentMessages[0].To[0].Address; to != p.Email {
		t.Errorf("welcome mail sent to %v; want %v", to, p.Email)
	}
}

func TestService_CheckEmailUniqueness(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.SignUp(ctx, person.NewPerson{Name: "Hero", Email: "hero@test.cd", Password: "LolC@t123"})
	if err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	err = svc.CheckEmailUniqueness(ctx, "hero@test.cd")
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("CheckEmailUniqueness() = %v; want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("unexpected field errors: %+v", vErr.Fields)
	}

	// the person themselves is not a duplicate
	if err = svc.CheckEmailUniqueness(ctx, "hero@test.cd", p); err != nil {
		t.Errorf("CheckEmailUniqueness(excluded) = %v; want nil", err)
	}
	if err = svc.CheckEmailUniqueness(ctx, "fresh@test.cd"); err != nil {
		t.Errorf("CheckEmailUniqueness(fresh) = %v; want nil", err)
	}
}

func TestService_SignIn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, person.NewPerson{Name: "Hero", Email: "hero@test.cd", Password: "LolC@t123"}); err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	tests := []struct {
		name    string
		creds   person.Credentials
		wantErr error
	}{
		{name: "ok", creds: person.Credentials{Email: "hero@test.cd", Password: "LolC@t123"}},
		{name: "wrong password", creds: person.Credentials{Email: "hero@test.cd", Password: "lol"}, wantErr: person.ErrInvalidCredentials},
		{name: "unknown email", creds: person.Credentials{Email: "lol@test.cd", Password: "LolC@t123"}, wantErr: person.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.SignIn(ctx, tt.creds)
			if errors.Cause(err) != tt.wantErr {
				t.Fatalf("SignIn() error = %v; want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && p.Email != tt.creds.Email {
				t.Errorf("email = %v; want %v", p.Email, tt.creds.Email)
			}
		})
	}
}
