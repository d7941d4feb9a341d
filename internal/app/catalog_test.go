package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kwikquiz/internal/app"
	"kwikquiz/internal/domain"
	"kwikquiz/internal/infra/memory"
	"kwikquiz/internal/store"
)

func validQuestions() []domain.Question {
	return []domain.Question{
		{Prompt: "Largest planet?", Options: []string{"Mars", "Jupiter", "Venus", "Saturn"}, CorrectIndex: 1},
	}
}

func TestCreateAndFindByCode(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewQuizCatalog(memory.NewKVStore())
	creator := domain.Account{ID: "u1", Username: "dana"}

	quiz, err := catalog.Create(ctx, "  Planets  ", 15, validQuestions(), creator)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.Title != "Planets" {
		t.Fatalf("expected trimmed title, got %q", quiz.Title)
	}
	if quiz.CreatorName != "dana" || quiz.CreatorID != "u1" {
		t.Fatalf("expected creator snapshot, got %+v", quiz)
	}
	if len(quiz.JoinCode) != 6 || quiz.JoinCode != strings.ToUpper(quiz.JoinCode) {
		t.Fatalf("expected 6-char uppercase join code, got %q", quiz.JoinCode)
	}

	found, err := catalog.FindByCode(ctx, strings.ToLower(quiz.JoinCode))
	if err != nil {
		t.Fatalf("find by code: %v", err)
	}
	if found.Title != quiz.Title || found.SecondsPerQuestion != 15 {
		t.Fatalf("round-trip mismatch: %+v", found)
	}
	if len(found.Questions) != 1 || found.Questions[0].Prompt != "Largest planet?" {
		t.Fatalf("round-trip questions mismatch: %+v", found.Questions)
	}
}

func TestFindByCodeUnknown(t *testing.T) {
	catalog := app.NewQuizCatalog(memory.NewKVStore())
	if _, err := catalog.FindByCode(context.Background(), "ZZZZZZ"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz-not-found, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewQuizCatalog(memory.NewKVStore())
	creator := domain.Account{ID: "u1", Username: "dana"}

	cases := []struct {
		name      string
		title     string
		seconds   int
		questions []domain.Question
	}{
		{"blank title", "   ", 10, validQuestions()},
		{"bad time option", "Planets", 7, validQuestions()},
		{"no questions", "Planets", 10, nil},
		{"empty prompt", "Planets", 10, []domain.Question{
			{Prompt: " ", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		}},
		{"empty option", "Planets", 10, []domain.Question{
			{Prompt: "Q", Options: []string{"a", "", "c", "d"}, CorrectIndex: 0},
		}},
		{"three options", "Planets", 10, []domain.Question{
			{Prompt: "Q", Options: []string{"a", "b", "c"}, CorrectIndex: 0},
		}},
		{"correct index out of range", "Planets", 10, []domain.Question{
			{Prompt: "Q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 4},
		}},
	}
	for _, tc := range cases {
		if _, err := catalog.Create(ctx, tc.title, tc.seconds, tc.questions, creator); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	// Failed creates must not leave partial state behind.
	if _, err := catalog.FindByCode(ctx, "ABCDEF"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected empty catalog after rejected creates, got %v", err)
	}
}

func TestCreatePersistsStoredShape(t *testing.T) {
	ctx := context.Background()
	st := memory.NewKVStore()
	catalog := app.NewQuizCatalog(st)

	if _, err := catalog.Create(ctx, "Planets", 10, validQuestions(), domain.Account{ID: "u1", Username: "dana"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	raw, err := st.Get(ctx, store.KeyQuizzes)
	if err != nil {
		t.Fatalf("get blob: %v", err)
	}
	for _, field := range []string{`"timePerQuestion"`, `"code"`, `"correctAnswer"`, `"question"`, `"creatorName"`} {
		if !strings.Contains(raw, field) {
			t.Fatalf("persisted blob missing %s field: %s", field, raw)
		}
	}
}
