package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"kwikquiz/internal/domain"
	"kwikquiz/internal/store"
)

const (
	joinCodeLength   = 6
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// QuizCatalog owns the quiz collection. Quizzes are write-once; there are no
// update or delete operations.
type QuizCatalog struct {
	quizzes *collection[domain.Quiz]
	newID   func() string
	now     func() time.Time
	rnd     *rand.Rand
}

func NewQuizCatalog(st store.Store) *QuizCatalog {
	return &QuizCatalog{
		quizzes: newCollection[domain.Quiz](st, store.KeyQuizzes),
		newID:   uuid.NewString,
		now:     time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create validates and persists a new quiz, generating its join code.
// Join codes are random with no uniqueness check; FindByCode resolves a
// collision by returning the first match in storage order.
func (c *QuizCatalog) Create(ctx context.Context, title string, secondsPerQuestion int, questions []domain.Question, creator domain.Account) (domain.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Quiz{}, fmt.Errorf("%w: quiz title must not be empty", domain.ErrValidation)
	}
	if !domain.ValidTimeOption(secondsPerQuestion) {
		return domain.Quiz{}, fmt.Errorf("%w: time per question must be one of %v seconds", domain.ErrValidation, domain.TimeOptions)
	}
	if len(questions) == 0 {
		return domain.Quiz{}, fmt.Errorf("%w: quiz needs at least one question", domain.ErrValidation)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return domain.Quiz{}, fmt.Errorf("%w: question %d has an empty prompt", domain.ErrValidation, i+1)
		}
		if len(q.Options) != 4 {
			return domain.Quiz{}, fmt.Errorf("%w: question %d must have exactly 4 options", domain.ErrValidation, i+1)
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return domain.Quiz{}, fmt.Errorf("%w: question %d option %d is empty", domain.ErrValidation, i+1, j+1)
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return domain.Quiz{}, fmt.Errorf("%w: question %d has an out-of-range correct answer", domain.ErrValidation, i+1)
		}
	}

	saved := make([]domain.Question, len(questions))
	copy(saved, questions)
	for i := range saved {
		if saved[i].ID == "" {
			saved[i].ID = c.newID()
		}
	}

	quiz := domain.Quiz{
		ID:                 c.newID(),
		Title:              title,
		CreatorID:          creator.ID,
		CreatorName:        creator.Username,
		Questions:          saved,
		SecondsPerQuestion: secondsPerQuestion,
		JoinCode:           c.generateJoinCode(),
		CreatedAt:          c.now().UTC(),
	}

	existing, err := c.quizzes.load(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	updated := append(append([]domain.Quiz(nil), existing...), quiz)
	if err := c.quizzes.save(ctx, updated); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// FindByCode resolves a join code case-insensitively. Unknown codes are
// ErrQuizNotFound, a normal outcome.
func (c *QuizCatalog) FindByCode(ctx context.Context, code string) (domain.Quiz, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Quiz{}, fmt.Errorf("%w: join code must not be empty", domain.ErrValidation)
	}

	quizzes, err := c.quizzes.load(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	for _, quiz := range quizzes {
		if strings.EqualFold(quiz.JoinCode, code) {
			return quiz, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *QuizCatalog) generateJoinCode() string {
	buf := make([]byte, joinCodeLength)
	for i := range buf {
		buf[i] = joinCodeAlphabet[c.rnd.Intn(len(joinCodeAlphabet))]
	}
	return string(buf)
}
