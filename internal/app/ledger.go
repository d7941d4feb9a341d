package app

import (
	"context"
	"math"
	"sort"

	"kwikquiz/internal/domain"
	"kwikquiz/internal/store"
)

// ResultLedger owns the append-only collection of quiz results and serves
// the ranked leaderboard view.
type ResultLedger struct {
	results *collection[domain.QuizResult]
}

func NewResultLedger(st store.Store) *ResultLedger {
	return &ResultLedger{
		results: newCollection[domain.QuizResult](st, store.KeyResults),
	}
}

// Record appends result and persists the view re-ranked by score descending.
// The sort is stable, so equal scores keep insertion order.
func (l *ResultLedger) Record(ctx context.Context, result domain.QuizResult) error {
	existing, err := l.results.load(ctx)
	if err != nil {
		return err
	}
	updated := append(append([]domain.QuizResult(nil), existing...), result)
	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Score > updated[j].Score
	})
	return l.results.save(ctx, updated)
}

// All returns the ranked results. An empty ledger yields an empty slice.
func (l *ResultLedger) All(ctx context.Context) ([]domain.QuizResult, error) {
	results, err := l.results.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.QuizResult, len(results))
	copy(out, results)
	return out, nil
}

// Aggregate summarizes the ledger. With no results every field is zero.
func (l *ResultLedger) Aggregate(ctx context.Context) (domain.LeaderboardStats, error) {
	results, err := l.results.load(ctx)
	if err != nil {
		return domain.LeaderboardStats{}, err
	}
	if len(results) == 0 {
		return domain.LeaderboardStats{}, nil
	}

	var ratioSum float64
	maxScore := results[0].Score
	for _, r := range results {
		if r.TotalQuestions > 0 {
			ratioSum += float64(r.Score) / float64(r.TotalQuestions)
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	return domain.LeaderboardStats{
		Count:             len(results),
		AveragePercentage: int(math.Round(ratioSum / float64(len(results)) * 100)),
		MaxScore:          maxScore,
	}, nil
}
