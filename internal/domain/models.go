package domain

import (
	"math"
	"time"
)

// NoAnswer is recorded when a player lets the countdown run out without
// committing an option. It is out of range for every question, so it can
// never match a correct option index.
const NoAnswer = -1

// TimeOptions are the allowed per-question countdown lengths, in seconds.
var TimeOptions = []int{5, 10, 15, 30, 60}

// ValidTimeOption reports whether secs is one of TimeOptions.
func ValidTimeOption(secs int) bool {
	for _, opt := range TimeOptions {
		if secs == opt {
			return true
		}
	}
	return false
}

// Account is a registered user. The credential secret is persisted but never
// carried on this struct once it leaves the account directory.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Question is a multiple-choice question with exactly four options.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
}

// Quiz is an immutable set of questions shared via a short join code.
// CreatorName is a snapshot of the creator's username at save time.
type Quiz struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	CreatorID          string     `json:"creatorId"`
	CreatorName        string     `json:"creatorName"`
	Questions          []Question `json:"questions"`
	SecondsPerQuestion int        `json:"timePerQuestion"`
	JoinCode           string     `json:"code"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// QuizResult is emitted once per completed play-through. QuizTitle is a
// snapshot; PlayerName is free text and not tied to an Account.
type QuizResult struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Percentage returns the rounded percent of questions answered correctly.
func (r QuizResult) Percentage() int {
	if r.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.TotalQuestions) * 100))
}

// LeaderboardStats aggregates the result ledger. All fields are zero when
// Count is zero.
type LeaderboardStats struct {
	Count             int `json:"count"`
	AveragePercentage int `json:"averagePercentage"`
	MaxScore          int `json:"maxScore"`
}
