// Package inmem provides map-backed repositories with the same semantics as
// the triplestore ones. They back the API tests and local development without
// a running endpoint.
package inmem

import (
	"fmt"
	"sync"

	"github.com/trelixedu/trelix/core/activity"
	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/course"
	"github.com/trelixedu/trelix/core/event"
	"github.com/trelixedu/trelix/core/exam"
	"github.com/trelixedu/trelix/core/goal"
	"github.com/trelixedu/trelix/core/person"
	"github.com/trelixedu/trelix/core/preference"
	"github.com/trelixedu/trelix/core/product"
	"github.com/trelixedu/trelix/core/quiz"
)

// Namespace is the ontology namespace in-memory resources are minted under.
// Tests point their Config's store namespace here.
const Namespace = "http://inmem.test/ns#"

type DB struct {
	mu  sync.RWMutex
	seq int

	persons     map[string]*person.Person
	roles       []person.Role
	activities  map[string]*activity.Activity
	events      map[string]*event.Event
	goals       map[string]*goal.Goal
	quizzes     map[string]*quiz.Quiz
	scores      map[string]*quiz.Score
	exams       map[string]*exam.Exam
	courses     map[string]*course.Course
	products    map[string]*product.Product
	preferences map[string]*preference.Preference
}

func NewDB() *DB {
	return &DB{
		persons: make(map[string]*person.Person),
		roles: []person.Role{
			{IRI: Namespace + "administrator", Label: auth.RoleAdministrator},
			{IRI: Namespace + "instructor", Label: auth.RoleInstructor},
			{IRI: Namespace + "student", Label: auth.RoleStudent},
		},
		activities:  make(map[string]*activity.Activity),
		events:      make(map[string]*event.Event),
		goals:       make(map[string]*goal.Goal),
		quizzes:     make(map[string]*quiz.Quiz),
		scores:      make(map[string]*quiz.Score),
		exams:       make(map[string]*exam.Exam),
		courses:     make(map[string]*course.Course),
		products:    make(map[string]*product.Product),
		preferences: make(map[string]*preference.Preference),
	}
}

// mint must be called with the write lock held.
func (db *DB) mint(kind string) string {
	db.seq++
	return fmt.Sprintf("%s%s_%d", Namespace, kind, db.seq)
}

// Clear empties every table; tests use it between cases.
func (db *DB) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.persons = make(map[string]*person.Person)
	db.activities = make(map[string]*activity.Activity)
	db.events = make(map[string]*event.Event)
	db.goals = make(map[string]*goal.Goal)
	db.quizzes = make(map[string]*quiz.Quiz)
	db.scores = make(map[string]*quiz.Score)
	db.exams = make(map[string]*exam.Exam)
	db.courses = make(map[string]*course.Course)
	db.products = make(map[string]*product.Product)
	db.preferences = make(map[string]*preference.Preference)
}
