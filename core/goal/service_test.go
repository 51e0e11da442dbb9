package goal_test

import (
	"context"
	"testing"

	"github.com/trelixedu/trelix/core/goal"
	"github.com/trelixedu/trelix/storage/inmem"
)

func TestService_ToggleCompleted(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(inmem.NewGoalRepository(inmem.NewDB()))

	g, err := svc.Create(ctx, goal.NewGoal{Title: "Read 12 books", Color: "#3b82f6"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if g.Completed {
		t.Fatal("new goal must start incomplete")
	}

	g, err = svc.ToggleCompleted(ctx, g.IRI)
	if err != nil {
		t.Fatalf("ToggleCompleted(): %v", err)
	}
	if !g.Completed {
		t.Error("first toggle must complete the goal")
	}

	// toggling back writes an explicit false, not an absent value
	g, err = svc.ToggleCompleted(ctx, g.IRI)
	if err != nil {
		t.Fatalf("ToggleCompleted(): %v", err)
	}
	if g.Completed {
		t.Error("second toggle must reopen the goal")
	}

	fetched, err := svc.GetByIRI(ctx, g.IRI)
	if err != nil {
		t.Fatalf("GetByIRI(): %v", err)
	}
	if fetched.Completed {
		t.Error("reopened state must persist")
	}
	if fetched.Title != "Read 12 books" {
		t.Errorf("title = %v; toggling must not touch other fields", fetched.Title)
	}
}
