package app_test

import (
	"context"
	"reflect"
	"testing"

	"kwikquiz/internal/app"
	"kwikquiz/internal/domain"
	"kwikquiz/internal/infra/memory"
)

func TestLedgerRanksByScore(t *testing.T) {
	ctx := context.Background()
	ledger := app.NewResultLedger(memory.NewKVStore())

	for i, score := range []int{3, 5, 1} {
		result := domain.QuizResult{
			ID:             string(rune('a' + i)),
			PlayerName:     "p",
			Score:          score,
			TotalQuestions: 5,
		}
		if err := ledger.Record(ctx, result); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := ledger.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	scores := make([]int, len(all))
	for i, r := range all {
		scores[i] = r.Score
	}
	if !reflect.DeepEqual(scores, []int{5, 3, 1}) {
		t.Fatalf("expected ranked [5 3 1], got %v", scores)
	}
}

func TestLedgerStableTies(t *testing.T) {
	ctx := context.Background()
	ledger := app.NewResultLedger(memory.NewKVStore())

	for _, id := range []string{"first", "second"} {
		if err := ledger.Record(ctx, domain.QuizResult{ID: id, Score: 4, TotalQuestions: 5}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := ledger.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all[0].ID != "first" || all[1].ID != "second" {
		t.Fatalf("equal scores must keep insertion order, got %+v", all)
	}
}

func TestLedgerAggregate(t *testing.T) {
	ctx := context.Background()
	ledger := app.NewResultLedger(memory.NewKVStore())

	empty, err := ledger.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate empty: %v", err)
	}
	if empty != (domain.LeaderboardStats{}) {
		t.Fatalf("expected zero stats on empty ledger, got %+v", empty)
	}

	// 3/4 = 75% and 5/5 = 100%; mean rounds to 88%.
	if err := ledger.Record(ctx, domain.QuizResult{ID: "r1", Score: 3, TotalQuestions: 4}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := ledger.Record(ctx, domain.QuizResult{ID: "r2", Score: 5, TotalQuestions: 5}); err != nil {
		t.Fatalf("record: %v", err)
	}

	stats, err := ledger.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := domain.LeaderboardStats{Count: 2, AveragePercentage: 88, MaxScore: 5}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	again, err := ledger.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate again: %v", err)
	}
	if again != stats {
		t.Fatalf("aggregate must be idempotent, got %+v then %+v", stats, again)
	}
}

func TestAllEmptyLedger(t *testing.T) {
	ledger := app.NewResultLedger(memory.NewKVStore())
	all, err := ledger.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty slice, got %+v", all)
	}
}
