package app

import (
	"context"
	"log"

	"kwikquiz/internal/domain"
	"kwikquiz/internal/store"
)

// Service bundles the use cases over a single persistence provider.
type Service struct {
	Accounts *AccountDirectory
	Catalog  *QuizCatalog
	Results  *ResultLedger
}

func NewService(st store.Store) *Service {
	return &Service{
		Accounts: NewAccountDirectory(st),
		Catalog:  NewQuizCatalog(st),
		Results:  NewResultLedger(st),
	}
}

// StartSession begins a play-through of quiz. The completing transition does
// not wait on durability: the result is recorded after the state has moved
// to completed, and a persistence failure is logged rather than replayed.
func (s *Service) StartSession(quiz domain.Quiz, playerName string) (*PlaySession, error) {
	session := NewPlaySession(quiz, playerName, func(result domain.QuizResult) {
		if err := s.Results.Record(context.Background(), result); err != nil {
			log.Printf("record result for quiz %s: %v", result.QuizID, err)
		}
	})
	if err := session.Start(); err != nil {
		return nil, err
	}
	return session, nil
}
